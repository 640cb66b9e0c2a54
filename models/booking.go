package models

type Booking struct {
	BookingID    string         `json:"booking_id"`
	HotelID      int            `json:"hotel_id"`
	HotelName    string         `json:"hotel_name"`
	RoomID       int            `json:"room_id"`
	RoomName     string         `json:"room_name"`
	CheckinDate  string         `json:"checkin_date"`
	CheckoutDate string         `json:"checkout_date"`
	Nights       int            `json:"nights"`
	GuestInfo    map[string]any `json:"guest_info"`
	TotalPrice   float64        `json:"total_price"`
	Status       BookingStatus  `json:"status"`
	CreatedAt    string         `json:"created_at"`
}

// BookingConfirmation is what the guest gets back after booking.
type BookingConfirmation struct {
	BookingID  string        `json:"booking_id"`
	Status     BookingStatus `json:"status"`
	TotalPrice float64       `json:"total_price"`
	CreatedAt  string        `json:"created_at"`
}

func (b Booking) Confirmation() BookingConfirmation {
	return BookingConfirmation{
		BookingID:  b.BookingID,
		Status:     b.Status,
		TotalPrice: b.TotalPrice,
		CreatedAt:  b.CreatedAt,
	}
}
