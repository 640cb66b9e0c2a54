package models

import "strings"

// HotelStatus is the moderation state of a listing.
type HotelStatus string

const (
	StatusDraft     HotelStatus = "draft"
	StatusPending   HotelStatus = "pending"
	StatusPublished HotelStatus = "published"
	// StatusApproved is the legacy spelling of StatusPublished. It is still
	// accepted on input and may exist in persisted snapshots.
	StatusApproved HotelStatus = "approved"
	StatusRejected HotelStatus = "rejected"
	StatusOffline  HotelStatus = "offline"
)

// ParseHotelStatus accepts any known status (case-insensitive) and reports
// whether the input was recognised. The result is not canonicalised.
func ParseHotelStatus(raw string) (HotelStatus, bool) {
	s := HotelStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", false
	}
	return s, true
}

func (s HotelStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPublished, StatusApproved, StatusRejected, StatusOffline:
		return true
	}
	return false
}

// Canonical folds the approved synonym into published.
func (s HotelStatus) Canonical() HotelStatus {
	if s == StatusApproved {
		return StatusPublished
	}
	return s
}

// Is compares two statuses after canonicalisation.
func (s HotelStatus) Is(other HotelStatus) bool {
	return s.Canonical() == other.Canonical()
}

// IsPublic reports whether the listing may appear on consumer read paths.
func (s HotelStatus) IsPublic() bool {
	return s.Canonical() == StatusPublished
}

// BookingStatus of a reservation. Only confirmed is produced today.
type BookingStatus string

const BookingConfirmed BookingStatus = "confirmed"

// UserRole defines the account roles of the back office.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleMerchant UserRole = "merchant"
)
