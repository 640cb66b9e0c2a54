package models

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discount(v float64) *float64 { return &v }

func TestRecomputeMinPriceUsesEffectiveRate(t *testing.T) {
	h := Hotel{MinPrice: 999, Rooms: []Room{
		{ID: 1, Price: 100, DiscountPrice: discount(80)},
		{ID: 2, Price: 120},
	}}
	h.RecomputeMinPrice()
	assert.Equal(t, 80.0, h.MinPrice)
}

func TestRecomputeMinPriceWithoutRoomsKeepsValue(t *testing.T) {
	h := Hotel{MinPrice: 450}
	h.RecomputeMinPrice()
	assert.Equal(t, 450.0, h.MinPrice)
}

func TestEffectiveRateIgnoresZeroDiscount(t *testing.T) {
	assert.Equal(t, 120.0, Room{Price: 120, DiscountPrice: discount(0)}.EffectiveRate())
}

func TestCloneIsDeep(t *testing.T) {
	h := Hotel{
		Images: []string{"a"},
		Rooms:  []Room{{ID: 1, Price: 10, DiscountPrice: discount(8), Images: []string{"r"}}},
	}
	c := h.Clone()
	c.Images[0] = "changed"
	c.Rooms[0].Images[0] = "changed"
	*c.Rooms[0].DiscountPrice = 1

	assert.Equal(t, "a", h.Images[0])
	assert.Equal(t, "r", h.Rooms[0].Images[0])
	assert.Equal(t, 8.0, *h.Rooms[0].DiscountPrice)
}

func TestDetailSortsRoomsByListPrice(t *testing.T) {
	h := Hotel{Status: StatusApproved, Rooms: []Room{
		{ID: 1, Price: 300, DiscountPrice: discount(100)},
		{ID: 2, Price: 200},
		{ID: 3, Price: 200},
	}}
	d := h.Detail()
	ids := []int{d.Rooms[0].ID, d.Rooms[1].ID, d.Rooms[2].ID}
	assert.Equal(t, []int{2, 3, 1}, ids)
	assert.Equal(t, StatusPublished, d.Status)
	assert.Equal(t, 1, h.Rooms[0].ID, "stored order untouched")
}

func TestHotelStatus(t *testing.T) {
	s, ok := ParseHotelStatus(" Approved ")
	require.True(t, ok)
	assert.Equal(t, StatusApproved, s)
	assert.True(t, s.IsPublic())
	assert.True(t, s.Is(StatusPublished))
	assert.False(t, StatusOffline.IsPublic())

	_, ok = ParseHotelStatus("archived")
	assert.False(t, ok)
}

func TestParseHotelQuery(t *testing.T) {
	v, err := url.ParseQuery("page=0&pageSize=500&keyword=+外滩+&star_rating=x&min_price=100&sort_by=cheapest&nearby_type=shopping")
	require.NoError(t, err)

	q := ParseHotelQuery(v)
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, MaxPageSize, q.PageSize)
	assert.Equal(t, "外滩", q.Keyword)
	assert.Nil(t, q.StarRating)
	require.NotNil(t, q.MinPrice)
	assert.Equal(t, 100, *q.MinPrice)
	assert.Nil(t, q.MaxPrice)
	assert.Equal(t, SortNone, q.SortBy)
	assert.Equal(t, NearbyShopping, q.NearbyType)
}

func TestParseAdminHotelQuery(t *testing.T) {
	q := ParseAdminHotelQuery(url.Values{"status": {"approved"}, "pageSize": {"abc"}})
	require.NotNil(t, q.Status)
	assert.Equal(t, StatusApproved, *q.Status)
	assert.Equal(t, DefaultPageSize, q.PageSize)

	q = ParseAdminHotelQuery(url.Values{"status": {"unknown"}})
	assert.Nil(t, q.Status)
}

func TestWindowAndPagination(t *testing.T) {
	start, end := Window(2, 10, 15)
	assert.Equal(t, 10, start)
	assert.Equal(t, 15, end)

	start, end = Window(5, 10, 15)
	assert.Equal(t, 15, start)
	assert.Equal(t, 15, end)

	start, end = Window(100000000000000000, 100, 15)
	assert.Equal(t, 15, start)
	assert.Equal(t, 15, end)

	start, end = Window(1, 10, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)

	assert.Equal(t, Pagination{Total: 15, Page: 2, PageSize: 10, TotalPages: 2}, NewPagination(15, 2, 10))
	assert.Equal(t, 0, NewPagination(0, 1, 10).TotalPages)
}

func TestProjectionsTruncateImages(t *testing.T) {
	h := Hotel{Images: []string{"1", "2", "3"}, Status: StatusApproved}
	assert.Equal(t, []string{"1", "2"}, h.Summary().Images)
	assert.Equal(t, []string{"1"}, h.Recommended().Images)
	assert.Equal(t, []string{"1"}, h.SearchResult().Images)
	assert.Equal(t, StatusPublished, h.AdminRow("x").Status)
	assert.Empty(t, Hotel{}.Summary().Images)
}
