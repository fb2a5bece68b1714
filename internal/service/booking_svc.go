package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/you/excursion-booking/internal/domain"
	"github.com/you/excursion-booking/internal/events"
	"github.com/you/excursion-booking/internal/repository"
)

// Publisher is the notification seam; pkg/mq.Publisher satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// BookingRequest is the /api/pay payload. Field names follow the public
// contract; the date pair uses the inclusive YYYY-MM-DD layout, end_date only
// for car bookings.
type BookingRequest struct {
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Phone          string  `json:"phone"`
	ContactMethod  string  `json:"contact_method"`
	Email          string  `json:"email"`
	DocumentNumber string  `json:"document_number"`
	Language       string  `json:"language"`
	Adults         int     `json:"adults"`
	Children       int     `json:"children"`
	Infants        int     `json:"infants"`
	ExcursionTitle string  `json:"excursion_title"`
	ExcursionID    *int64  `json:"excursion_id"`
	Date           string  `json:"date"`
	EndDate        string  `json:"end_date"`
	TotalPrice     float64 `json:"total_price"`
	PickupLocation string  `json:"pickup_location"`
	SupplierID     int64   `json:"supplier_id"`
	BookingType    string  `json:"booking_type"`
	CarID          *int64  `json:"car_id"`
}

// BookingSvc orchestrates a booking from request to committed ledger rows:
// validate, price, commit atomically, then notify best-effort.
type BookingSvc struct {
	ledger  *repository.BookingRepo
	pub     Publisher
	log     *zap.Logger
	timeout time.Duration

	// per-car serialization ahead of the ledger transaction, so two requests
	// for overlapping ranges never both observe "available"
	mu       sync.Mutex
	carLocks map[int64]*sync.Mutex
}

func NewBookingSvc(ledger *repository.BookingRepo, pub Publisher, log *zap.Logger, timeout time.Duration) *BookingSvc {
	return &BookingSvc{
		ledger:   ledger,
		pub:      pub,
		log:      log,
		timeout:  timeout,
		carLocks: map[int64]*sync.Mutex{},
	}
}

func (s *BookingSvc) carLock(carID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.carLocks[carID]
	if !ok {
		l = &sync.Mutex{}
		s.carLocks[carID] = l
	}
	return l
}

// Submit runs the full booking flow and returns the committed record.
// A notification failure after commit is logged, never surfaced: the booking
// is authoritative once the transaction lands.
func (s *BookingSvc) Submit(ctx context.Context, req BookingRequest) (*domain.ConfirmedBooking, error) {
	start, end, err := validate(req)
	if err != nil {
		return nil, err
	}

	b := &domain.ConfirmedBooking{
		BookingID:      newBookingID(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Email:          req.Email,
		DocumentNumber: req.DocumentNumber,
		ContactMethod:  req.ContactMethod,
		Language:       req.Language,
		Date:           start,
		TotalPrice:     req.TotalPrice, // client-supplied, stored as-is
		PickupLocation: req.PickupLocation,
		SupplierID:     req.SupplierID,
		BookingType:    domain.BookingType(req.BookingType),
		CarID:          req.CarID,
	}

	switch b.BookingType {
	case domain.BookingExcursion:
		// people count is always recomputed server-side
		b.PeopleCount = req.Adults + req.Children + req.Infants
		err = s.commitExcursion(ctx, b, req.ExcursionID, start)
	case domain.BookingCar:
		b.PeopleCount = 1
		err = s.commitCar(ctx, b, start, end)
	}
	if err != nil {
		return nil, err
	}

	s.notify(ctx, b, req, end)
	return b, nil
}

func (s *BookingSvc) commitCar(ctx context.Context, b *domain.ConfirmedBooking, start, end time.Time) error {
	l := s.carLock(*b.CarID)
	l.Lock()
	defer l.Unlock()

	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	res := &domain.CarReservation{CarID: *b.CarID, StartDate: start, EndDate: end}
	return mapTimeout(s.ledger.CreateCarBooking(ctx, b, res))
}

func (s *BookingSvc) commitExcursion(ctx context.Context, b *domain.ConfirmedBooking, excursionID *int64, date time.Time) error {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	var res *domain.ExcursionReservation
	if excursionID != nil {
		res = &domain.ExcursionReservation{ExcursionID: *excursionID, Date: date}
	}
	return mapTimeout(s.ledger.CreateExcursionBooking(ctx, b, res))
}

// notify publishes the confirmed-booking event detached from the request's
// cancellation scope; a client disconnect after commit must not lose it.
func (s *BookingSvc) notify(ctx context.Context, b *domain.ConfirmedBooking, req BookingRequest, end time.Time) {
	ev := events.BookingConfirmed{
		EventID:        uuid.NewString(),
		BookingID:      b.BookingID,
		BookingType:    string(b.BookingType),
		SupplierID:     b.SupplierID,
		FirstName:      b.FirstName,
		LastName:       b.LastName,
		Phone:          b.Phone,
		Email:          b.Email,
		ContactMethod:  b.ContactMethod,
		Language:       b.Language,
		PeopleCount:    b.PeopleCount,
		Date:           b.Date.Format(domain.DateLayout),
		ExcursionTitle: req.ExcursionTitle,
		CarID:          b.CarID,
		TotalPrice:     b.TotalPrice,
		PickupLocation: b.PickupLocation,
	}
	if b.BookingType == domain.BookingCar {
		ev.EndDate = end.Format(domain.DateLayout)
	}

	bg := context.WithoutCancel(ctx)
	go func() {
		if err := s.pub.PublishJSON(bg, events.RKBookingConfirmed, ev); err != nil {
			s.log.Warn("booking notification failed",
				zap.Int64("booking_id", b.BookingID), zap.Error(err))
		}
	}()
}

// CarAvailable answers the admissibility question outside the commit path.
func (s *BookingSvc) CarAvailable(ctx context.Context, carID int64, start, end time.Time) (bool, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	ok, err := s.ledger.CarAvailable(ctx, carID, start, end)
	return ok, mapTimeout(err)
}

// UnavailableDates expands every reservation interval of the car into its
// daily sequence, insertion order first, chronological within each interval.
func (s *BookingSvc) UnavailableDates(ctx context.Context, carID int64) ([]string, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	intervals, err := s.ledger.CarReservations(ctx, carID)
	if err != nil {
		return nil, mapTimeout(err)
	}
	out := []string{}
	for _, iv := range intervals {
		for _, d := range iv.Days() {
			out = append(out, d.Format(domain.DateLayout))
		}
	}
	return out, nil
}

func (s *BookingSvc) ExcursionReservations(ctx context.Context, excursionID int64) ([]domain.ExcursionReservation, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	out, err := s.ledger.ExcursionReservations(ctx, excursionID)
	return out, mapTimeout(err)
}

func (s *BookingSvc) Bookings(ctx context.Context, supplierID *int64) ([]domain.ConfirmedBooking, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	out, err := s.ledger.List(ctx, supplierID)
	return out, mapTimeout(err)
}

// BookingsFor is the tenant-scoped admin listing.
func (s *BookingSvc) BookingsFor(ctx context.Context, u *domain.User, requested *int64) ([]domain.ConfirmedBooking, error) {
	if u.IsSuperuser {
		return s.Bookings(ctx, requested)
	}
	return s.Bookings(ctx, u.SupplierID)
}

func validate(req BookingRequest) (start, end time.Time, err error) {
	bad := func(msg string) error { return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg) }

	if req.SupplierID == 0 {
		return start, end, bad("supplier_id is required")
	}
	start, err = time.Parse(domain.DateLayout, req.Date)
	if err != nil {
		return start, end, bad("date must be YYYY-MM-DD")
	}

	switch domain.BookingType(req.BookingType) {
	case domain.BookingExcursion:
		if req.ExcursionTitle == "" {
			return start, end, bad("excursion_title is required")
		}
		if req.Adults < 0 || req.Children < 0 || req.Infants < 0 {
			return start, end, bad("people counts must not be negative")
		}
		if req.Adults+req.Children+req.Infants == 0 {
			return start, end, bad("at least one participant is required")
		}
		return start, start, nil
	case domain.BookingCar:
		if req.CarID == nil {
			return start, end, bad("car_id is required")
		}
		end, err = time.Parse(domain.DateLayout, req.EndDate)
		if err != nil {
			return start, end, bad("end_date must be YYYY-MM-DD")
		}
		if end.Before(start) {
			return start, end, bad("end_date must not precede date")
		}
		return start, end, nil
	default:
		return start, end, bad("booking_type must be excursion or car")
	}
}

// newBookingID draws the externally visible booking id at random from the
// positive 63-bit space; the unique index is the collision backstop.
func newBookingID() int64 {
	for {
		if id := rand.Int63(); id != 0 {
			return id
		}
	}
}
