package models

import "math"

// HotelSummary is the row shape of the public listing.
type HotelSummary struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	NameEn       string        `json:"name_en,omitempty"`
	Address      string        `json:"address"`
	City         string        `json:"city"`
	StarRating   int           `json:"star_rating"`
	Images       []string      `json:"images"`
	MinPrice     float64       `json:"min_price"`
	Rating       float64       `json:"rating"`
	ReviewCount  int           `json:"review_count"`
	Distance     string        `json:"distance"`
	Facilities   string        `json:"facilities"`
	Description  string        `json:"description"`
	Phone        string        `json:"phone"`
	Email        string        `json:"email"`
	Latitude     float64       `json:"latitude"`
	Longitude    float64       `json:"longitude"`
	NearbyPlaces []NearbyPlace `json:"nearby_places"`
}

// RecommendedHotel is the home-page card: one image, no nearby places.
type RecommendedHotel struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	NameEn      string   `json:"name_en,omitempty"`
	Address     string   `json:"address"`
	StarRating  int      `json:"star_rating"`
	Images      []string `json:"images"`
	MinPrice    float64  `json:"min_price"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Distance    string   `json:"distance"`
	Facilities  string   `json:"facilities"`
	Description string   `json:"description"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
}

// SearchResult is the narrow projection of the keyword search.
type SearchResult struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	City       string   `json:"city"`
	StarRating int      `json:"star_rating"`
	Images     []string `json:"images"`
	MinPrice   float64  `json:"min_price"`
	Rating     float64  `json:"rating"`
}

// AdminHotelRow is a back-office listing row.
type AdminHotelRow struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	MerchantID   int         `json:"merchantId"`
	MerchantName string      `json:"merchantName"`
	City         string      `json:"city"`
	Stars        int         `json:"stars"`
	Price        float64     `json:"price"`
	Status       HotelStatus `json:"status"`
	RejectReason string      `json:"rejectReason,omitempty"`
	CreatedAt    string      `json:"createdAt"`
}

// MerchantHotelRow is the owner's view of one of their listings.
type MerchantHotelRow struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	City         string      `json:"city"`
	Stars        int         `json:"stars"`
	Price        float64     `json:"price"`
	Status       HotelStatus `json:"status"`
	RejectReason string      `json:"rejectReason,omitempty"`
	CreatedAt    string      `json:"createdAt"`
	UpdatedAt    string      `json:"updatedAt"`
}

type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

func NewPagination(total, page, size int) Pagination {
	return Pagination{
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: int(math.Ceil(float64(total) / float64(size))),
	}
}

func firstImages(images []string, n int) []string {
	if len(images) < n {
		n = len(images)
	}
	out := make([]string, n)
	copy(out, images[:n])
	return out
}

func (h Hotel) Summary() HotelSummary {
	nearby := make([]NearbyPlace, len(h.NearbyPlaces))
	copy(nearby, h.NearbyPlaces)
	return HotelSummary{
		ID:           h.ID,
		Name:         h.Name,
		NameEn:       h.NameEn,
		Address:      h.Address,
		City:         h.City,
		StarRating:   h.StarRating,
		Images:       firstImages(h.Images, 2),
		MinPrice:     h.MinPrice,
		Rating:       h.Rating,
		ReviewCount:  h.ReviewCount,
		Distance:     h.Distance,
		Facilities:   h.Facilities,
		Description:  h.Description,
		Phone:        h.Phone,
		Email:        h.Email,
		Latitude:     h.Latitude,
		Longitude:    h.Longitude,
		NearbyPlaces: nearby,
	}
}

func (h Hotel) Recommended() RecommendedHotel {
	return RecommendedHotel{
		ID:          h.ID,
		Name:        h.Name,
		NameEn:      h.NameEn,
		Address:     h.Address,
		StarRating:  h.StarRating,
		Images:      firstImages(h.Images, 1),
		MinPrice:    h.MinPrice,
		Rating:      h.Rating,
		ReviewCount: h.ReviewCount,
		Distance:    h.Distance,
		Facilities:  h.Facilities,
		Description: h.Description,
		Phone:       h.Phone,
		Email:       h.Email,
	}
}

func (h Hotel) SearchResult() SearchResult {
	return SearchResult{
		ID:         h.ID,
		Name:       h.Name,
		Address:    h.Address,
		City:       h.City,
		StarRating: h.StarRating,
		Images:     firstImages(h.Images, 1),
		MinPrice:   h.MinPrice,
		Rating:     h.Rating,
	}
}

// Detail is the full record with rooms ordered by list price and the status
// canonicalised.
func (h Hotel) Detail() Hotel {
	out := h.Clone()
	out.Rooms = out.RoomsByPrice()
	out.Status = out.Status.Canonical()
	return out
}

func (h Hotel) AdminRow(merchantName string) AdminHotelRow {
	return AdminHotelRow{
		ID:           h.ID,
		Name:         h.Name,
		MerchantID:   h.MerchantID,
		MerchantName: merchantName,
		City:         h.City,
		Stars:        h.StarRating,
		Price:        h.MinPrice,
		Status:       h.Status.Canonical(),
		RejectReason: h.RejectReason,
		CreatedAt:    h.CreatedAt,
	}
}

func (h Hotel) MerchantRow() MerchantHotelRow {
	return MerchantHotelRow{
		ID:           h.ID,
		Name:         h.Name,
		City:         h.City,
		Stars:        h.StarRating,
		Price:        h.MinPrice,
		Status:       h.Status.Canonical(),
		RejectReason: h.RejectReason,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}
