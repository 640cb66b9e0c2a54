package services

import (
	"time"

	"github.com/2582034744-ui/yisu-hotel-platform/models"
	"github.com/2582034744-ui/yisu-hotel-platform/store"
)

var fixedNow = time.Date(2025, 1, 5, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func ptr[T any](v T) *T { return &v }

func hotel(id int, status models.HotelStatus, merchantID int, minPrice, rating float64) models.Hotel {
	return models.Hotel{
		ID:           id,
		Name:         "Hotel " + string(rune('A'+id-1)),
		Address:      "Road " + string(rune('A'+id-1)),
		City:         "上海",
		StarRating:   4,
		Images:       []string{"/uploads/1.jpg", "/uploads/2.jpg", "/uploads/3.jpg"},
		Status:       status,
		MerchantID:   merchantID,
		MinPrice:     minPrice,
		Rating:       rating,
		CreatedAt:    "2024-01-01 10:00:00",
		UpdatedAt:    "2024-01-01 10:00:00",
		Rooms:        []models.Room{},
		NearbyPlaces: []models.NearbyPlace{},
	}
}

// fixtureStore holds a small mixed-status catalog:
//
//	1 published 300  4.5  rooms 101(300) 102(400, discount 350)
//	2 approved  200  4.8  nearby transport
//	3 pending   100  4.9
//	4 rejected  150  3.0
//	5 offline   250  4.0
//	6 draft     120  4.1
//	7 published 500  4.2  city 北京, name_en Grand
func fixtureStore() *store.Store {
	h1 := hotel(1, models.StatusPublished, 1001, 300, 4.5)
	h1.Rooms = []models.Room{
		{ID: 102, Name: "Suite", Price: 400, DiscountPrice: ptr(350.0), Area: 50, MaxGuests: 3, Images: []string{}},
		{ID: 101, Name: "King", Price: 300, Area: 30, MaxGuests: 2, Images: []string{}},
	}
	h1.NearbyPlaces = []models.NearbyPlace{{ID: 11, Name: "Museum", Type: models.NearbyAttraction, Distance: "1km"}}

	h2 := hotel(2, models.StatusApproved, 1002, 200, 4.8)
	h2.NearbyPlaces = []models.NearbyPlace{{ID: 21, Name: "Metro", Type: models.NearbyTransport, Distance: "200m"}}

	h7 := hotel(7, models.StatusPublished, 1001, 500, 4.2)
	h7.City = "北京"
	h7.NameEn = "Grand Palace"

	return store.New(store.Data{
		Hotels: []models.Hotel{
			h1,
			h2,
			hotel(3, models.StatusPending, 1001, 100, 4.9),
			hotel(4, models.StatusRejected, 1002, 150, 3.0),
			hotel(5, models.StatusOffline, 1001, 250, 4.0),
			hotel(6, models.StatusDraft, 1001, 120, 4.1),
			h7,
		},
		Users: []models.User{
			{ID: 1, Username: "admin", Password: "admin123", Name: "管理员", Role: models.RoleAdmin},
			{ID: 1001, Username: "shanghai", Password: "123456", Name: "上海商户", Role: models.RoleMerchant, MerchantID: ptr(1001)},
		},
	}, nil)
}
