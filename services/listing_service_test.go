package services

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2582034744-ui/yisu-hotel-platform/models"
)

func listIDs(rows []models.HotelSummary) []int {
	ids := make([]int, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

func query(raw string) models.HotelQuery {
	v, _ := url.ParseQuery(raw)
	return models.ParseHotelQuery(v)
}

func TestListOnlyShowsPublicHotels(t *testing.T) {
	svc := NewListingService(fixtureStore())

	rows, page := svc.List(query(""))
	assert.Equal(t, []int{1, 2, 7}, listIDs(rows))
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.TotalPages)
}

func TestListFilters(t *testing.T) {
	svc := NewListingService(fixtureStore())

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"keyword matches english name case-insensitively", "keyword=grand", []int{7}},
		{"keyword matches address", "keyword=road+b", []int{2}},
		{"city", "city=北京", []int{7}},
		{"star rating", "star_rating=4", []int{1, 2, 7}},
		{"non numeric star is ignored", "star_rating=four", []int{1, 2, 7}},
		{"min price only", "min_price=250", []int{1, 7}},
		{"max price only", "max_price=300", []int{1, 2}},
		{"price range inclusive", "min_price=200&max_price=300", []int{1, 2}},
		{"nearby type", "nearby_type=transport", []int{2}},
		{"unknown nearby type is ignored", "nearby_type=zoo", []int{1, 2, 7}},
		{"sort price asc", "sort_by=price_asc", []int{2, 1, 7}},
		{"sort price desc", "sort_by=price_desc", []int{7, 1, 2}},
		{"sort rating", "sort_by=rating", []int{2, 1, 7}},
		{"sort id", "sort_by=id", []int{1, 2, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, page := svc.List(query(tt.query))
			assert.Equal(t, tt.want, listIDs(rows))
			assert.Equal(t, len(tt.want), page.Total)
		})
	}
}

func TestListPaginationCountsFilteredSet(t *testing.T) {
	svc := NewListingService(fixtureStore())

	rows, page := svc.List(query("page=2&pageSize=2"))
	assert.Equal(t, []int{7}, listIDs(rows))
	assert.Equal(t, models.Pagination{Total: 3, Page: 2, PageSize: 2, TotalPages: 2}, page)

	rows, page = svc.List(query("page=9&pageSize=2"))
	assert.Empty(t, rows)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, int(math.Ceil(3.0/2.0)), page.TotalPages)

	assert.NotPanics(t, func() {
		rows, page = svc.List(query("page=100000000000000000&pageSize=100"))
	})
	assert.Empty(t, rows)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.TotalPages)
}

func TestAdminListHugePageIsEmpty(t *testing.T) {
	svc := NewListingService(fixtureStore())

	var (
		rows []models.AdminHotelRow
		page models.Pagination
	)
	assert.NotPanics(t, func() {
		rows, page = svc.AdminList(models.ParseAdminHotelQuery(url.Values{"page": {"100000000000000000"}}))
	})
	assert.Empty(t, rows)
	assert.Equal(t, 7, page.Total)
}

func TestListPriceSortsAreReversed(t *testing.T) {
	svc := NewListingService(fixtureStore())

	asc, _ := svc.List(query("sort_by=price_asc"))
	desc, _ := svc.List(query("sort_by=price_desc"))
	ascIDs, descIDs := listIDs(asc), listIDs(desc)
	for i := range ascIDs {
		assert.Equal(t, ascIDs[i], descIDs[len(descIDs)-1-i])
	}
}

func TestListSummaryTruncatesImages(t *testing.T) {
	rows, _ := NewListingService(fixtureStore()).List(query(""))
	require.NotEmpty(t, rows)
	assert.Len(t, rows[0].Images, 2)
}

func TestSearch(t *testing.T) {
	svc := NewListingService(fixtureStore())

	_, err := svc.Search("  ")
	assert.Equal(t, KindValidation, KindOf(err))

	rows, err := svc.Search("上海")
	require.NoError(t, err)
	ids := []int{}
	for _, r := range rows {
		ids = append(ids, r.ID)
		assert.LessOrEqual(t, len(r.Images), 1)
	}
	assert.Equal(t, []int{1, 2}, ids, "city matches, non-public hotels excluded")
}

func TestRecommended(t *testing.T) {
	rows := NewListingService(fixtureStore()).Recommended()
	require.Len(t, rows, 3)
	assert.Equal(t, 2, rows[0].ID)
	assert.Equal(t, 1, rows[1].ID)
	assert.Len(t, rows[0].Images, 1)
}

func TestDetail(t *testing.T) {
	svc := NewListingService(fixtureStore())

	h, err := svc.Detail(1)
	require.NoError(t, err)
	require.Len(t, h.Rooms, 2)
	assert.Equal(t, 101, h.Rooms[0].ID, "rooms sorted by list price")

	h, err = svc.Detail(2)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, h.Status)

	for _, id := range []int{3, 4, 5, 6, 999} {
		_, err := svc.Detail(id)
		assert.Equal(t, KindNotFound, KindOf(err), "hotel %d", id)
	}
}

func TestAdminList(t *testing.T) {
	svc := NewListingService(fixtureStore())

	rows, page := svc.AdminList(models.AdminHotelQuery{Page: 1, PageSize: 10})
	assert.Len(t, rows, 7)
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, "上海商户", rows[0].MerchantName)
	assert.Equal(t, "商户1002", rows[1].MerchantName)
	assert.Equal(t, models.StatusPublished, rows[1].Status)

	published := models.StatusPublished
	rows, _ = svc.AdminList(models.AdminHotelQuery{Page: 1, PageSize: 10, Status: &published})
	ids := []int{}
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int{1, 2, 7}, ids)
}

func TestMerchantList(t *testing.T) {
	svc := NewListingService(fixtureStore())

	rows := svc.MerchantList(1002)
	require.Len(t, rows, 2)
	assert.Equal(t, models.StatusRejected, rows[1].Status)

	assert.Empty(t, svc.MerchantList(4242))
}

func TestStatusReport(t *testing.T) {
	report := NewListingService(fixtureStore()).StatusReport()
	assert.Equal(t, 7, report.Total)
	require.NotNil(t, report.FirstHotel)
	assert.Equal(t, 1, report.FirstHotel.ID)
	assert.Equal(t, models.StatusApproved, report.AllStatuses[1].Status)
}
