package models

import (
	"cmp"
	"slices"
)

// NearbyPlaceType classifies a point of interest next to a hotel.
type NearbyPlaceType string

const (
	NearbyAttraction NearbyPlaceType = "attraction"
	NearbyTransport  NearbyPlaceType = "transport"
	NearbyShopping   NearbyPlaceType = "shopping"
)

func (t NearbyPlaceType) Valid() bool {
	return t == NearbyAttraction || t == NearbyTransport || t == NearbyShopping
}

type Hotel struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	NameEn       string        `json:"name_en,omitempty"`
	Address      string        `json:"address"`
	City         string        `json:"city"`
	StarRating   int           `json:"star_rating"`
	Images       []string      `json:"images"`
	Description  string        `json:"description"`
	Facilities   string        `json:"facilities"`
	Phone        string        `json:"phone"`
	Email        string        `json:"email"`
	Rating       float64       `json:"rating"`
	ReviewCount  int           `json:"review_count"`
	Status       HotelStatus   `json:"status"`
	RejectReason string        `json:"reject_reason,omitempty"`
	MerchantID   int           `json:"merchant_id"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    string        `json:"updated_at"`
	MinPrice     float64       `json:"min_price"`
	Distance     string        `json:"distance"`
	Latitude     float64       `json:"latitude"`
	Longitude    float64       `json:"longitude"`
	Rooms        []Room        `json:"rooms"`
	NearbyPlaces []NearbyPlace `json:"nearby_places"`
}

// Room is owned by exactly one hotel; its id is unique across all hotels.
type Room struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discount_price,omitempty"`
	BedType       string   `json:"bed_type"`
	Area          float64  `json:"area"`
	MaxGuests     int      `json:"max_guests"`
	Description   string   `json:"description"`
	Images        []string `json:"images"`
}

type NearbyPlace struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Type     NearbyPlaceType `json:"type"`
	Distance string          `json:"distance"`
}

// EffectiveRate is the nightly price a guest pays: the discount when set,
// otherwise the list price.
func (r Room) EffectiveRate() float64 {
	if r.DiscountPrice != nil && *r.DiscountPrice > 0 {
		return *r.DiscountPrice
	}
	return r.Price
}

// RecomputeMinPrice sets MinPrice to the lowest effective rate of the rooms.
// A hotel without rooms keeps its current value.
func (h *Hotel) RecomputeMinPrice() {
	if len(h.Rooms) == 0 {
		return
	}
	lowest := h.Rooms[0].EffectiveRate()
	for _, r := range h.Rooms[1:] {
		if rate := r.EffectiveRate(); rate < lowest {
			lowest = rate
		}
	}
	h.MinPrice = lowest
}

func (h *Hotel) FindRoom(id int) (Room, bool) {
	for _, r := range h.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}

func (h *Hotel) HasNearby(t NearbyPlaceType) bool {
	for _, p := range h.NearbyPlaces {
		if p.Type == t {
			return true
		}
	}
	return false
}

// RoomsByPrice returns a copy of the rooms ordered by list price, ties kept
// in storage order.
func (h *Hotel) RoomsByPrice() []Room {
	rooms := slices.Clone(h.Rooms)
	slices.SortStableFunc(rooms, func(a, b Room) int { return cmp.Compare(a.Price, b.Price) })
	return rooms
}

// Clone returns a deep copy so callers can hand the value out of the store.
func (h Hotel) Clone() Hotel {
	out := h
	out.Images = slices.Clone(h.Images)
	out.NearbyPlaces = slices.Clone(h.NearbyPlaces)
	if h.Rooms != nil {
		out.Rooms = make([]Room, len(h.Rooms))
		for i, r := range h.Rooms {
			out.Rooms[i] = r.clone()
		}
	}
	return out
}

func (r Room) clone() Room {
	out := r
	out.Images = slices.Clone(r.Images)
	if r.DiscountPrice != nil {
		d := *r.DiscountPrice
		out.DiscountPrice = &d
	}
	return out
}
