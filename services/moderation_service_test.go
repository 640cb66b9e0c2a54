package services

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2582034744-ui/yisu-hotel-platform/models"
	"github.com/2582034744-ui/yisu-hotel-platform/store"
)

func newModeration(t *testing.T) (*ModerationService, *store.Store) {
	t.Helper()
	st := fixtureStore()
	svc := NewModerationService(st, NewImageService(t.TempDir()), false)
	svc.clock = fixedClock
	return svc, st
}

func storedHotel(t *testing.T, st *store.Store, id int) models.Hotel {
	t.Helper()
	var (
		out   models.Hotel
		found bool
	)
	st.Read(func(d *store.Data) {
		for _, h := range d.Hotels {
			if h.ID == id {
				out, found = h.Clone(), true
			}
		}
	})
	require.True(t, found, "hotel %d", id)
	return out
}

func newHotelRequest() CreateHotelRequest {
	return CreateHotelRequest{Hotel: models.Hotel{
		Name:       "New Hotel",
		Address:    "1 Bund Road",
		City:       "上海",
		StarRating: 5,
		MerchantID: 1001,
		Status:     models.StatusPublished,
		Rooms: []models.Room{
			{Name: "Deluxe", Price: 100, DiscountPrice: ptr(80.0), Area: 30, MaxGuests: 2},
			{ID: 101, Name: "Twin", Price: 120, Area: 28, MaxGuests: 2},
		},
		NearbyPlaces: []models.NearbyPlace{{Name: "Park", Type: models.NearbyAttraction, Distance: "300m"}},
	}}
}

func TestCreateEntersPendingAndDerivesFields(t *testing.T) {
	svc, st := newModeration(t)

	h, err := svc.Create(context.Background(), newHotelRequest())
	require.NoError(t, err)

	assert.Equal(t, 8, h.ID)
	assert.Equal(t, models.StatusPending, h.Status, "client status is ignored")
	assert.Equal(t, 80.0, h.MinPrice)
	assert.Equal(t, "2025-01-05 09:30:00", h.CreatedAt)
	assert.Equal(t, h.CreatedAt, h.UpdatedAt)

	// 101 belongs to hotel 1, 102 is the highest room id in the store
	assert.Equal(t, 103, h.Rooms[0].ID)
	assert.Equal(t, 104, h.Rooms[1].ID)
	assert.Equal(t, 22, h.NearbyPlaces[0].ID)

	assert.Equal(t, h, storedHotel(t, st, 8))
}

func TestCreateAsDraft(t *testing.T) {
	svc, _ := newModeration(t)
	req := newHotelRequest()
	req.SaveAsDraft = true

	h, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, h.Status)
}

func TestCreateValidation(t *testing.T) {
	svc, st := newModeration(t)

	tests := []struct {
		name   string
		mutate func(r *CreateHotelRequest)
	}{
		{"missing name", func(r *CreateHotelRequest) { r.Name = " " }},
		{"missing star", func(r *CreateHotelRequest) { r.StarRating = 0 }},
		{"star out of range", func(r *CreateHotelRequest) { r.StarRating = 6 }},
		{"zero room price", func(r *CreateHotelRequest) { r.Rooms[1].Price = 0 }},
		{"discount above price", func(r *CreateHotelRequest) { r.Rooms[0].DiscountPrice = ptr(150.0) }},
		{"no guests", func(r *CreateHotelRequest) { r.Rooms[0].MaxGuests = 0 }},
		{"bad nearby type", func(r *CreateHotelRequest) { r.NearbyPlaces[0].Type = "zoo" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newHotelRequest()
			tt.mutate(&req)
			_, err := svc.Create(context.Background(), req)
			assert.Equal(t, KindValidation, KindOf(err))
		})
	}

	st.Read(func(d *store.Data) { assert.Len(t, d.Hotels, 7) })
}

func TestCreateMaterializesDataURLImages(t *testing.T) {
	svc, _ := newModeration(t)
	req := newHotelRequest()
	req.Images = []string{
		"data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes")),
		"/uploads/existing.jpg",
	}

	h, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, h.Images, 2)
	assert.True(t, strings.HasPrefix(h.Images[0], "/uploads/hotels/"))
	assert.True(t, strings.HasSuffix(h.Images[0], ".png"))
	assert.Equal(t, "/uploads/existing.jpg", h.Images[1])

	saved, err := os.ReadFile(filepath.Join(svc.Images.Dir, "hotels", filepath.Base(h.Images[0])))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(saved))
}

func pngDataURL(payload string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(payload))
}

func uploadedFiles(t *testing.T, svc *ModerationService) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(svc.Images.Dir, "hotels"))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return entries
}

func TestCreateLeavesNoFilesWhenAnImageIsBad(t *testing.T) {
	svc, st := newModeration(t)
	req := newHotelRequest()
	req.Images = []string{pngDataURL("cover")}
	req.Rooms[0].Images = []string{pngDataURL("room"), "data:image/png;base64,%%%"}

	_, err := svc.Create(context.Background(), req)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Empty(t, uploadedFiles(t, svc))
	st.Read(func(d *store.Data) { assert.Len(t, d.Hotels, 7) })
}

func TestEditLeavesNoFilesWhenAnImageIsBad(t *testing.T) {
	svc, _ := newModeration(t)
	patch := `{"images":["` + pngDataURL("cover") + `","data:image/bmp;base64,AAAA"]}`

	_, err := svc.Edit(context.Background(), 1, []byte(patch))
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Empty(t, uploadedFiles(t, svc))
}

func TestDiscardRemovesWrittenImages(t *testing.T) {
	svc, _ := newModeration(t)
	h := models.Hotel{
		Images: []string{pngDataURL("a"), "/uploads/existing.jpg"},
		Rooms:  []models.Room{{Images: []string{pngDataURL("b")}}},
	}

	written, err := svc.Images.MaterializeHotel(&h)
	require.NoError(t, err)
	require.Len(t, written, 2)
	assert.Len(t, uploadedFiles(t, svc), 2)

	svc.Images.Discard(append(written, "/uploads/existing.jpg"))
	assert.Empty(t, uploadedFiles(t, svc))
}

func TestEditAlwaysResubmits(t *testing.T) {
	for _, id := range []int{1, 2, 3, 4, 5, 6} {
		svc, st := newModeration(t)
		before := storedHotel(t, st, id)

		h, err := svc.Edit(context.Background(), id, []byte(`{"name":"Renamed","status":"published","created_at":"1999-01-01 00:00:00","merchant_id":9}`))
		require.NoError(t, err, "hotel %d", id)

		assert.Equal(t, models.StatusPending, h.Status)
		assert.Equal(t, "Renamed", h.Name)
		assert.Equal(t, before.CreatedAt, h.CreatedAt)
		assert.Equal(t, before.MerchantID, h.MerchantID)
		assert.Equal(t, "2025-01-05 09:30:00", h.UpdatedAt)
		assert.NotEqual(t, before.UpdatedAt, h.UpdatedAt)
		assert.Equal(t, before.Address, h.Address, "fields absent from the patch are kept")
	}
}

func TestEditReplacesRoomsAndRecomputesMinPrice(t *testing.T) {
	svc, st := newModeration(t)

	h, err := svc.Edit(context.Background(), 1, []byte(`{"rooms":[{"id":101,"name":"King","price":100,"discount_price":80,"area":30,"max_guests":2},{"id":0,"name":"Twin","price":120,"area":25,"max_guests":2}]}`))
	require.NoError(t, err)

	require.Len(t, h.Rooms, 2)
	assert.Equal(t, 80.0, h.MinPrice)
	assert.Equal(t, 101, h.Rooms[0].ID, "own room id kept")
	assert.Equal(t, 103, h.Rooms[1].ID)
	assert.Empty(t, h.Rooms[1].Images)
	assert.Nil(t, h.Rooms[1].DiscountPrice)

	assert.Equal(t, h, storedHotel(t, st, 1))
}

func TestEditClearsRejectReason(t *testing.T) {
	svc, _ := newModeration(t)
	_, err := svc.Review(context.Background(), 3, "rejected", "照片模糊")
	require.NoError(t, err)

	h, err := svc.Edit(context.Background(), 3, []byte(`{"description":"new photos"}`))
	require.NoError(t, err)
	assert.Empty(t, h.RejectReason)
}

func TestEditErrors(t *testing.T) {
	svc, _ := newModeration(t)

	_, err := svc.Edit(context.Background(), 999, []byte(`{}`))
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = svc.Edit(context.Background(), 1, []byte(`not json`))
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.Edit(context.Background(), 1, []byte(`{"star_rating":9}`))
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestDelete(t *testing.T) {
	svc, st := newModeration(t)

	require.NoError(t, svc.Delete(context.Background(), 4))
	st.Read(func(d *store.Data) {
		assert.Len(t, d.Hotels, 6)
		for _, h := range d.Hotels {
			assert.NotEqual(t, 4, h.ID)
		}
	})

	assert.Equal(t, KindNotFound, KindOf(svc.Delete(context.Background(), 4)))
}

func TestReview(t *testing.T) {
	svc, st := newModeration(t)

	h, err := svc.Review(context.Background(), 3, "approved", "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, h.Status)
	assert.Equal(t, "2025-01-05 09:30:00", storedHotel(t, st, 3).UpdatedAt)

	_, err = svc.Review(context.Background(), 3, "rejected", "too late")
	assert.Equal(t, KindConflict, KindOf(err), "published hotels are not re-reviewed")
}

func TestReviewReject(t *testing.T) {
	svc, st := newModeration(t)

	_, err := svc.Review(context.Background(), 3, "rejected", "  ")
	assert.Equal(t, KindValidation, KindOf(err))

	h, err := svc.Review(context.Background(), 3, "rejected", "信息不全")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, h.Status)
	assert.Equal(t, "信息不全", storedHotel(t, st, 3).RejectReason)
}

func TestReviewErrors(t *testing.T) {
	svc, _ := newModeration(t)

	_, err := svc.Review(context.Background(), 3, "pending", "")
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.Review(context.Background(), 3, "bogus", "")
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.Review(context.Background(), 999, "published", "")
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = svc.Review(context.Background(), 6, "published", "")
	assert.Equal(t, KindConflict, KindOf(err), "drafts must be submitted first")
}

func TestSetOnline(t *testing.T) {
	svc, _ := newModeration(t)
	ctx := context.Background()

	h, err := svc.SetOnline(ctx, 1, false, Owner{MerchantID: 1001})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOffline, h.Status)

	h, err = svc.SetOnline(ctx, 1, true, Owner{Admin: true})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, h.Status)

	// approved counts as published
	h, err = svc.SetOnline(ctx, 2, false, Owner{Admin: true})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOffline, h.Status)
}

func TestSetOnlineErrors(t *testing.T) {
	svc, _ := newModeration(t)
	ctx := context.Background()

	_, err := svc.SetOnline(ctx, 1, false, Owner{})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.SetOnline(ctx, 1, false, Owner{MerchantID: 1002})
	assert.Equal(t, KindNotFound, KindOf(err), "other merchants cannot see the hotel")

	_, err = svc.SetOnline(ctx, 3, true, Owner{MerchantID: 1001})
	assert.Equal(t, KindConflict, KindOf(err), "pending listings need review")
}

func TestSubmitDraft(t *testing.T) {
	svc, _ := newModeration(t)

	h, err := svc.Submit(context.Background(), 6, 1001)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, h.Status)

	_, err = svc.Submit(context.Background(), 1, 1001)
	assert.Equal(t, KindConflict, KindOf(err))
}
