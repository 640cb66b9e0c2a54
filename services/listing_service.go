package services

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/2582034744-ui/yisu-hotel-platform/models"
	"github.com/2582034744-ui/yisu-hotel-platform/store"
)

const recommendedLimit = 6

// ListingService answers every read path over the hotel collection: the
// public catalog, search, detail, and the back-office lists.
type ListingService struct {
	Store *store.Store
}

func NewListingService(s *store.Store) *ListingService {
	return &ListingService{Store: s}
}

// List runs the catalog pipeline: visibility, keyword, city, star, price
// and nearby filters, then sort, paginate and project.
func (s *ListingService) List(q models.HotelQuery) ([]models.HotelSummary, models.Pagination) {
	var (
		rows  []models.HotelSummary
		total int
	)
	s.Store.Read(func(d *store.Data) {
		hotels := filterHotels(d.Hotels,
			isPublic,
			matchKeyword(q.Keyword, false),
			matchCity(q.City),
			matchStars(q.StarRating),
			matchPrice(q.MinPrice, q.MaxPrice),
			matchNearby(q.NearbyType),
		)
		sortHotels(hotels, q.SortBy)

		total = len(hotels)
		start, end := models.Window(q.Page, q.PageSize, total)
		rows = make([]models.HotelSummary, 0, end-start)
		for _, h := range hotels[start:end] {
			rows = append(rows, h.Summary())
		}
	})
	return rows, models.NewPagination(total, q.Page, q.PageSize)
}

// Search matches the keyword against name, English name, address and city
// of public hotels. There is no pagination.
func (s *ListingService) Search(keyword string) ([]models.SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, NewValidationError("请提供搜索关键词")
	}

	var rows []models.SearchResult
	s.Store.Read(func(d *store.Data) {
		hotels := filterHotels(d.Hotels, isPublic, matchKeyword(keyword, true))
		rows = make([]models.SearchResult, 0, len(hotels))
		for _, h := range hotels {
			rows = append(rows, h.SearchResult())
		}
	})
	return rows, nil
}

// Recommended returns the best rated public hotels for the home page.
func (s *ListingService) Recommended() []models.RecommendedHotel {
	var rows []models.RecommendedHotel
	s.Store.Read(func(d *store.Data) {
		hotels := filterHotels(d.Hotels, isPublic)
		sortHotels(hotels, models.SortByRating)
		if len(hotels) > recommendedLimit {
			hotels = hotels[:recommendedLimit]
		}
		rows = make([]models.RecommendedHotel, 0, len(hotels))
		for _, h := range hotels {
			rows = append(rows, h.Recommended())
		}
	})
	return rows
}

// Detail returns the full public record. Hotels that exist but are not
// public are reported exactly like missing ones.
func (s *ListingService) Detail(id int) (models.Hotel, error) {
	var (
		out   models.Hotel
		found bool
	)
	s.Store.Read(func(d *store.Data) {
		if i := indexOfHotel(d.Hotels, id); i >= 0 && d.Hotels[i].Status.IsPublic() {
			out = d.Hotels[i].Detail()
			found = true
		}
	})
	if !found {
		return models.Hotel{}, NewNotFoundError("酒店不存在")
	}
	return out, nil
}

// AdminList sees every status. The status filter compares canonical values
// so approved and published select the same rows.
func (s *ListingService) AdminList(q models.AdminHotelQuery) ([]models.AdminHotelRow, models.Pagination) {
	var (
		rows  []models.AdminHotelRow
		total int
	)
	s.Store.Read(func(d *store.Data) {
		hotels := filterHotels(d.Hotels,
			matchKeyword(q.Keyword, false),
			matchCity(q.City),
			matchStatus(q.Status),
		)

		total = len(hotels)
		start, end := models.Window(q.Page, q.PageSize, total)
		rows = make([]models.AdminHotelRow, 0, end-start)
		for _, h := range hotels[start:end] {
			rows = append(rows, h.AdminRow(merchantName(d.Users, h.MerchantID)))
		}
	})
	return rows, models.NewPagination(total, q.Page, q.PageSize)
}

// MerchantList returns every hotel owned by merchantID, in any status.
func (s *ListingService) MerchantList(merchantID int) []models.MerchantHotelRow {
	rows := []models.MerchantHotelRow{}
	s.Store.Read(func(d *store.Data) {
		for _, h := range d.Hotels {
			if h.MerchantID == merchantID {
				rows = append(rows, h.MerchantRow())
			}
		}
	})
	return rows
}

// HotelStatusEntry is one row of the status dump used while debugging
// moderation.
type HotelStatusEntry struct {
	ID     int                `json:"id"`
	Name   string             `json:"name,omitempty"`
	Status models.HotelStatus `json:"status"`
}

type StatusReport struct {
	Total       int                `json:"total"`
	FirstHotel  *HotelStatusEntry  `json:"firstHotel"`
	AllStatuses []HotelStatusEntry `json:"allStatuses"`
}

// StatusReport lists the raw stored status of every hotel.
func (s *ListingService) StatusReport() StatusReport {
	var report StatusReport
	s.Store.Read(func(d *store.Data) {
		report.Total = len(d.Hotels)
		report.AllStatuses = make([]HotelStatusEntry, 0, len(d.Hotels))
		for _, h := range d.Hotels {
			report.AllStatuses = append(report.AllStatuses, HotelStatusEntry{ID: h.ID, Status: h.Status})
		}
		if len(d.Hotels) > 0 {
			h := d.Hotels[0]
			report.FirstHotel = &HotelStatusEntry{ID: h.ID, Name: h.Name, Status: h.Status}
		}
	})
	return report
}

type hotelFilter func(h *models.Hotel) bool

// filterHotels applies the filters in order and returns shallow copies of
// the survivors. nil filters are skipped.
func filterHotels(hotels []models.Hotel, filters ...hotelFilter) []models.Hotel {
	out := make([]models.Hotel, 0, len(hotels))
next:
	for i := range hotels {
		for _, f := range filters {
			if f != nil && !f(&hotels[i]) {
				continue next
			}
		}
		out = append(out, hotels[i])
	}
	return out
}

func isPublic(h *models.Hotel) bool {
	return h.Status.IsPublic()
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func matchKeyword(keyword string, withCity bool) hotelFilter {
	if keyword == "" {
		return nil
	}
	return func(h *models.Hotel) bool {
		return containsFold(h.Name, keyword) ||
			containsFold(h.NameEn, keyword) ||
			containsFold(h.Address, keyword) ||
			(withCity && containsFold(h.City, keyword))
	}
}

func matchCity(city string) hotelFilter {
	if city == "" {
		return nil
	}
	return func(h *models.Hotel) bool {
		return containsFold(h.City, city)
	}
}

func matchStars(stars *int) hotelFilter {
	if stars == nil {
		return nil
	}
	return func(h *models.Hotel) bool {
		return h.StarRating == *stars
	}
}

func matchPrice(lo, hi *int) hotelFilter {
	if lo == nil && hi == nil {
		return nil
	}
	return func(h *models.Hotel) bool {
		if lo != nil && h.MinPrice < float64(*lo) {
			return false
		}
		if hi != nil && h.MinPrice > float64(*hi) {
			return false
		}
		return true
	}
}

func matchNearby(t models.NearbyPlaceType) hotelFilter {
	if t == "" {
		return nil
	}
	return func(h *models.Hotel) bool {
		return h.HasNearby(t)
	}
}

func matchStatus(status *models.HotelStatus) hotelFilter {
	if status == nil {
		return nil
	}
	return func(h *models.Hotel) bool {
		return h.Status.Is(*status)
	}
}

// sortHotels orders in place. Ties keep storage order.
func sortHotels(hotels []models.Hotel, key models.SortKey) {
	var less func(a, b models.Hotel) int
	switch key {
	case models.SortByID:
		less = func(a, b models.Hotel) int { return cmp.Compare(a.ID, b.ID) }
	case models.SortPriceAsc:
		less = func(a, b models.Hotel) int { return cmp.Compare(a.MinPrice, b.MinPrice) }
	case models.SortPriceDesc:
		less = func(a, b models.Hotel) int { return cmp.Compare(b.MinPrice, a.MinPrice) }
	case models.SortByRating:
		less = func(a, b models.Hotel) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		return
	}
	slices.SortStableFunc(hotels, less)
}

func indexOfHotel(hotels []models.Hotel, id int) int {
	return slices.IndexFunc(hotels, func(h models.Hotel) bool { return h.ID == id })
}

// merchantName resolves the display name of the account owning merchantID.
func merchantName(users []models.User, merchantID int) string {
	for _, u := range users {
		if u.MerchantID != nil && *u.MerchantID == merchantID {
			return u.Name
		}
	}
	for _, u := range users {
		if u.ID == merchantID {
			return u.Name
		}
	}
	return fmt.Sprintf("商户%d", merchantID)
}
