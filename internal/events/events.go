package events

import (
	"encoding/json"
	"fmt"
)

const RKBookingConfirmed = "booking.confirmed"

// BookingConfirmed carries enough of the committed booking for a
// human-readable notification; consumers never need to read the database.
type BookingConfirmed struct {
	EventID        string  `json:"event_id"`
	BookingID      int64   `json:"booking_id"`
	BookingType    string  `json:"booking_type"`
	SupplierID     int64   `json:"supplier_id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email,omitempty"`
	ContactMethod  string  `json:"contact_method"`
	Language       string  `json:"language"`
	PeopleCount    int     `json:"people_count"`
	Date           string  `json:"date"`
	EndDate        string  `json:"end_date,omitempty"`
	ExcursionTitle string  `json:"excursion_title,omitempty"`
	CarID          *int64  `json:"car_id,omitempty"`
	TotalPrice     float64 `json:"total_price"`
	PickupLocation string  `json:"pickup_location,omitempty"`
}

func Decode[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload failed: %w", err)
	}
	return t, nil
}
