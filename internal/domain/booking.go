package domain

import "time"

// DateLayout is the wire format for all booking dates. Dates are stored as
// UTC midnight; ranges are inclusive on both ends.
const DateLayout = "2006-01-02"

type BookingType string

const (
	BookingExcursion BookingType = "excursion"
	BookingCar       BookingType = "car"
)

// ConfirmedBooking is append-only: created once per successful payment
// attempt, never mutated or deleted by normal flow.
type ConfirmedBooking struct {
	ID             int64       `gorm:"primaryKey" json:"id"`
	BookingID      int64       `gorm:"uniqueIndex" json:"booking_id"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	Phone          string      `json:"phone"`
	Email          string      `json:"email"`
	DocumentNumber string      `json:"document_number"`
	ContactMethod  string      `json:"contact_method"`
	Language       string      `json:"language"`
	PeopleCount    int         `json:"people_count"`
	Date           time.Time   `json:"date"`
	TotalPrice     float64     `json:"total_price"`
	PickupLocation string      `json:"pickup_location"`
	SupplierID     int64       `gorm:"index" json:"supplier_id"`
	BookingType    BookingType `gorm:"index" json:"booking_type"`
	CarID          *int64      `gorm:"index" json:"car_id"`
	CreatedAt      time.Time   `json:"created_at"`
}

// CarReservation blocks a car for an inclusive date range.
type CarReservation struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	CarID     int64     `gorm:"index" json:"car_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Overlaps reports whether the inclusive ranges share at least one day.
func (r CarReservation) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !r.EndDate.Before(start)
}

// Days expands the interval into its daily sequence, both endpoints included.
func (r CarReservation) Days() []time.Time {
	var out []time.Time
	for d := r.StartDate; !d.After(r.EndDate); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// ExcursionReservation records a slot consumed on a given day. Capacity is
// unbounded, so inserting never conflicts.
type ExcursionReservation struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	ExcursionID int64     `gorm:"index" json:"excursion_id"`
	Date        time.Time `json:"date"`
}
