package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/2582034744-ui/yisu-hotel-platform/models"
	"github.com/2582034744-ui/yisu-hotel-platform/store"
	"github.com/2582034744-ui/yisu-hotel-platform/utils"
)

const maxBookingIDAttempts = 20

// FlexibleInt decodes a JSON number or a numeric string. Anything else
// decodes to zero, which callers treat as missing.
type FlexibleInt int

func (f *FlexibleInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			n = 0
		}
		*f = FlexibleInt(n)
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexibleInt(math.Trunc(n))
	return nil
}

// BookingRequest is the body of POST /bookings.
type BookingRequest struct {
	HotelID      FlexibleInt    `json:"hotel_id"`
	RoomID       FlexibleInt    `json:"room_id"`
	CheckinDate  string         `json:"checkin_date"`
	CheckoutDate string         `json:"checkout_date"`
	GuestInfo    map[string]any `json:"guest_info"`
}

// BookingService allocates reservations against a hotel's rooms. It does
// not track inventory.
type BookingService struct {
	Store *store.Store

	persister
	clock clock
}

func NewBookingService(s *store.Store, autosave bool) *BookingService {
	return &BookingService{
		Store:     s,
		persister: newPersister(s, autosave, "booking"),
	}
}

// Create validates the request in a fixed order: presence of every field,
// hotel, room, then the date range. Nothing is stored on failure.
func (s *BookingService) Create(ctx context.Context, req BookingRequest) (models.BookingConfirmation, error) {
	if req.HotelID <= 0 || req.RoomID <= 0 ||
		strings.TrimSpace(req.CheckinDate) == "" ||
		strings.TrimSpace(req.CheckoutDate) == "" ||
		req.GuestInfo == nil {
		return models.BookingConfirmation{}, NewValidationError("请提供完整的预订信息")
	}

	var booking models.Booking
	err := s.Store.Write(func(d *store.Data) error {
		i := indexOfHotel(d.Hotels, int(req.HotelID))
		if i < 0 || !d.Hotels[i].Status.IsPublic() {
			return NewNotFoundError("酒店不存在")
		}
		hotel := &d.Hotels[i]
		room, ok := hotel.FindRoom(int(req.RoomID))
		if !ok {
			return NewNotFoundError("房型不存在")
		}

		checkin, checkout, nights, err := stayNights(req.CheckinDate, req.CheckoutDate)
		if err != nil {
			return err
		}

		now := s.clock.now()
		id, err := uniqueBookingID(d.Bookings, now)
		if err != nil {
			return err
		}

		booking = models.Booking{
			BookingID:    id,
			HotelID:      hotel.ID,
			HotelName:    hotel.Name,
			RoomID:       room.ID,
			RoomName:     room.Name,
			CheckinDate:  checkin.Format(models.DateLayout),
			CheckoutDate: checkout.Format(models.DateLayout),
			Nights:       nights,
			GuestInfo:    maps.Clone(req.GuestInfo),
			TotalPrice:   room.EffectiveRate() * float64(nights),
			Status:       models.BookingConfirmed,
			CreatedAt:    models.FormatTimestamp(now),
		}
		d.Bookings = append(d.Bookings, booking)
		return nil
	})
	if err != nil {
		return models.BookingConfirmation{}, err
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": booking.BookingID,
		"hotel_id":   booking.HotelID,
		"room_id":    booking.RoomID,
		"nights":     booking.Nights,
	}).Info("booking confirmed")
	s.persist(ctx)
	return booking.Confirmation(), nil
}

// Get returns the stored booking record.
func (s *BookingService) Get(id string) (models.Booking, error) {
	var (
		out   models.Booking
		found bool
	)
	s.Store.Read(func(d *store.Data) {
		for _, b := range d.Bookings {
			if b.BookingID == id {
				out = b
				out.GuestInfo = maps.Clone(b.GuestInfo)
				found = true
				return
			}
		}
	})
	if !found {
		return models.Booking{}, NewNotFoundError("订单不存在")
	}
	return out, nil
}

// stayNights parses both dates as calendar days and returns the number of
// nights between them, rounded up. A non-positive stay is invalid.
func stayNights(rawCheckin, rawCheckout string) (time.Time, time.Time, int, error) {
	checkin, err := parseStayDate(rawCheckin)
	if err != nil {
		return time.Time{}, time.Time{}, 0, &AppError{Kind: KindValidation, Message: "入住日期无效", Err: err}
	}
	checkout, err := parseStayDate(rawCheckout)
	if err != nil {
		return time.Time{}, time.Time{}, 0, &AppError{Kind: KindValidation, Message: "入住日期无效", Err: err}
	}
	nights := int(math.Ceil(checkout.Sub(checkin).Hours() / 24))
	if nights <= 0 {
		return time.Time{}, time.Time{}, 0, NewValidationError("入住日期无效")
	}
	return checkin, checkout, nights, nil
}

// parseStayDate accepts YYYY-MM-DD or RFC3339 and truncates to UTC midnight.
func parseStayDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	t, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse date %q: %w", raw, err)
		}
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// uniqueBookingID must run under the store's write lock so the collision
// check is exact.
func uniqueBookingID(existing []models.Booking, now time.Time) (string, error) {
	taken := make(map[string]bool, len(existing))
	for _, b := range existing {
		taken[b.BookingID] = true
	}
	for attempt := 0; attempt < maxBookingIDAttempts; attempt++ {
		id := utils.NewBookingID(now)
		if !taken[id] {
			return id, nil
		}
	}
	return "", NewInternalError("创建预订失败", fmt.Errorf("no free booking id after %d attempts", maxBookingIDAttempts))
}
