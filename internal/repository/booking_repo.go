package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/you/excursion-booking/internal/domain"
)

// BookingRepo is the reservation ledger: it owns confirmed bookings and their
// reservation records and decides whether a new car booking is admissible.
type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Migrate() error {
	return r.db.AutoMigrate(
		&domain.ConfirmedBooking{},
		&domain.CarReservation{},
		&domain.ExcursionReservation{},
	)
}

// CarAvailable reports whether no stored interval for the car shares a day
// with [start, end]. Ranges are inclusive: an interval ending the day before
// start does not block, an interval sharing a single endpoint day does.
func (r *BookingRepo) CarAvailable(ctx context.Context, carID int64, start, end time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.CarReservation{}).
		Where("car_id = ?", carID).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// CreateCarBooking commits the booking and its reservation interval in one
// transaction. The car row is locked first so that two concurrent requests
// for the same car serialize even when no reservation rows exist yet, then
// availability is re-checked under the lock. Overlap returns ErrConflict and
// nothing is written.
func (r *BookingRepo) CreateCarBooking(ctx context.Context, b *domain.ConfirmedBooking, res *domain.CarReservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var car domain.Car
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&car, "id = ?", res.CarID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}

		var existing domain.CarReservation
		err = tx.Model(&domain.CarReservation{}).
			Where("car_id = ?", res.CarID).
			Where("start_date <= ? AND end_date >= ?", res.EndDate, res.StartDate).
			Take(&existing).Error
		if err == nil {
			return domain.ErrConflict
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(b).Error; err != nil {
			return mapDuplicate(err)
		}
		return tx.Create(res).Error
	})
}

// CreateExcursionBooking commits the booking together with its daily slot
// record when one is wanted (nil res skips it). Excursion capacity is
// unbounded, so there is no admissibility check.
func (r *BookingRepo) CreateExcursionBooking(ctx context.Context, b *domain.ConfirmedBooking, res *domain.ExcursionReservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return mapDuplicate(err)
		}
		if res == nil {
			return nil
		}
		return tx.Create(res).Error
	})
}

// CarReservations returns the car's intervals in insertion order.
func (r *BookingRepo) CarReservations(ctx context.Context, carID int64) ([]domain.CarReservation, error) {
	var out []domain.CarReservation
	err := r.db.WithContext(ctx).
		Where("car_id = ?", carID).Order("id ASC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingRepo) ExcursionReservations(ctx context.Context, excursionID int64) ([]domain.ExcursionReservation, error) {
	var out []domain.ExcursionReservation
	err := r.db.WithContext(ctx).
		Where("excursion_id = ?", excursionID).Order("id ASC").Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns all bookings, or only one supplier's when supplierID is set.
func (r *BookingRepo) List(ctx context.Context, supplierID *int64) ([]domain.ConfirmedBooking, error) {
	qb := r.db.WithContext(ctx).Model(&domain.ConfirmedBooking{})
	if supplierID != nil {
		qb = qb.Where("supplier_id = ?", *supplierID)
	}
	var out []domain.ConfirmedBooking
	if err := qb.Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// mapDuplicate turns a unique-index violation on booking_id into ErrConflict.
// With random 63-bit ids that is the collision backstop, not an expected path.
func mapDuplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConflict
	}
	return err
}
