package models

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// SortKey selects the ordering of a hotel listing.
type SortKey string

const (
	SortNone      SortKey = ""
	SortByID      SortKey = "id"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortByRating  SortKey = "rating"
)

// HotelQuery is the validated form of the public listing query string.
// Nil pointers mean the filter is absent.
type HotelQuery struct {
	Page       int
	PageSize   int
	Keyword    string
	City       string
	StarRating *int
	MinPrice   *int
	MaxPrice   *int
	SortBy     SortKey
	NearbyType NearbyPlaceType
}

// AdminHotelQuery is the back-office listing query; it sees every status.
type AdminHotelQuery struct {
	Page     int
	PageSize int
	Keyword  string
	City     string
	Status   *HotelStatus
}

// ParseHotelQuery never fails: malformed numbers are treated as absent and
// unknown sort keys or nearby types are ignored.
func ParseHotelQuery(values url.Values) HotelQuery {
	q := HotelQuery{
		Page:       positiveOr(values.Get("page"), DefaultPage),
		PageSize:   pageSize(values.Get("pageSize")),
		Keyword:    strings.TrimSpace(values.Get("keyword")),
		City:       strings.TrimSpace(values.Get("city")),
		StarRating: optionalInt(values.Get("star_rating")),
		MinPrice:   optionalInt(values.Get("min_price")),
		MaxPrice:   optionalInt(values.Get("max_price")),
	}

	switch k := SortKey(strings.TrimSpace(values.Get("sort_by"))); k {
	case SortByID, SortPriceAsc, SortPriceDesc, SortByRating:
		q.SortBy = k
	}

	if t := NearbyPlaceType(strings.TrimSpace(values.Get("nearby_type"))); t.Valid() {
		q.NearbyType = t
	}
	return q
}

func ParseAdminHotelQuery(values url.Values) AdminHotelQuery {
	q := AdminHotelQuery{
		Page:     positiveOr(values.Get("page"), DefaultPage),
		PageSize: pageSize(values.Get("pageSize")),
		Keyword:  strings.TrimSpace(values.Get("keyword")),
		City:     strings.TrimSpace(values.Get("city")),
	}
	if s, ok := ParseHotelStatus(values.Get("status")); ok {
		q.Status = &s
	}
	return q
}

// Offset is the index of the first row of the requested page.
func pageOffset(page, size int) int {
	return (page - 1) * size
}

// Window returns the [start, end) slice bounds of a page within total rows.
// Pages past the end yield an empty window.
func Window(page, size, total int) (int, int) {
	if size < 1 || page-1 >= (total+size-1)/size {
		return total, total
	}
	start := pageOffset(page, size)
	end := start + size
	if end > total {
		end = total
	}
	return start, end
}

func positiveOr(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}

func pageSize(raw string) int {
	n := positiveOr(raw, DefaultPageSize)
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

func optionalInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
