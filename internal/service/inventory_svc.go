package service

import (
	"context"
	"fmt"
	"time"

	"github.com/you/excursion-booking/internal/domain"
	"github.com/you/excursion-booking/internal/repository"
)

// InventorySvc is tenant-scoped CRUD over suppliers, excursions and cars.
// Every mutation is authorized against the target's supplier; admin listings
// are forced to the caller's supplier unless the caller is a superuser.
type InventorySvc struct {
	suppliers  *repository.SupplierRepo
	excursions *repository.ExcursionRepo
	cars       *repository.CarRepo
	timeout    time.Duration
}

func NewInventorySvc(sup *repository.SupplierRepo, exc *repository.ExcursionRepo, cars *repository.CarRepo, timeout time.Duration) *InventorySvc {
	return &InventorySvc{suppliers: sup, excursions: exc, cars: cars, timeout: timeout}
}

// scopeFilter resolves the supplier filter an admin listing actually runs
// with. Scoped callers always get their own supplier regardless of the
// requested filter; superusers get the requested filter, or everything.
func scopeFilter(u *domain.User, requested *int64) *int64 {
	if u.IsSuperuser {
		return requested
	}
	return u.SupplierID
}

// --- public reads (no session) ---

func (s *InventorySvc) Suppliers(ctx context.Context) ([]domain.Supplier, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	out, err := s.suppliers.List(ctx)
	return out, mapTimeout(err)
}

func (s *InventorySvc) Cars(ctx context.Context) ([]domain.Car, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	out, err := s.cars.List(ctx, nil)
	return out, mapTimeout(err)
}

func (s *InventorySvc) Car(ctx context.Context, id int64) (*domain.Car, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	out, err := s.cars.ByID(ctx, id)
	return out, mapTimeout(err)
}

func (s *InventorySvc) ExcursionsByOperator(ctx context.Context, operatorID int64) ([]domain.Excursion, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	out, err := s.excursions.List(ctx, &operatorID)
	return out, mapTimeout(err)
}

// --- tenant-scoped admin surface ---

func (s *InventorySvc) CarsFor(ctx context.Context, u *domain.User, requested *int64) ([]domain.Car, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	out, err := s.cars.List(ctx, scopeFilter(u, requested))
	return out, mapTimeout(err)
}

func (s *InventorySvc) ExcursionsFor(ctx context.Context, u *domain.User, requested *int64) ([]domain.Excursion, error) {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	out, err := s.excursions.List(ctx, scopeFilter(u, requested))
	return out, mapTimeout(err)
}

func (s *InventorySvc) CreateCar(ctx context.Context, u *domain.User, c *domain.Car) error {
	if c.SupplierID == 0 && u.SupplierID != nil {
		c.SupplierID = *u.SupplierID
	}
	if !u.CanAccess(c.SupplierID) {
		return domain.ErrForbidden
	}
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	return mapTimeout(s.cars.Create(ctx, c))
}

func (s *InventorySvc) UpdateCar(ctx context.Context, u *domain.User, id int64, upd domain.CarUpdate) error {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	c, err := s.cars.ByID(ctx, id)
	if err != nil {
		return mapTimeout(err)
	}
	if !u.CanAccess(c.SupplierID) {
		return domain.ErrForbidden
	}
	return mapTimeout(s.cars.Update(ctx, id, upd))
}

func (s *InventorySvc) DeleteCar(ctx context.Context, u *domain.User, id int64) error {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	c, err := s.cars.ByID(ctx, id)
	if err != nil {
		return mapTimeout(err)
	}
	if !u.CanAccess(c.SupplierID) {
		return domain.ErrForbidden
	}
	return mapTimeout(s.cars.Delete(ctx, id))
}

func (s *InventorySvc) CreateExcursion(ctx context.Context, u *domain.User, e *domain.Excursion) error {
	if e.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if e.SupplierID == 0 && u.SupplierID != nil {
		e.SupplierID = *u.SupplierID
	}
	if !u.CanAccess(e.SupplierID) {
		return domain.ErrForbidden
	}
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	return mapTimeout(s.excursions.Create(ctx, e))
}

func (s *InventorySvc) UpdateExcursion(ctx context.Context, u *domain.User, id int64, upd domain.ExcursionUpdate) error {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	e, err := s.excursions.ByID(ctx, id)
	if err != nil {
		return mapTimeout(err)
	}
	if !u.CanAccess(e.SupplierID) {
		return domain.ErrForbidden
	}
	return mapTimeout(s.excursions.Update(ctx, id, upd))
}

func (s *InventorySvc) DeleteExcursion(ctx context.Context, u *domain.User, id int64) error {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	e, err := s.excursions.ByID(ctx, id)
	if err != nil {
		return mapTimeout(err)
	}
	if !u.CanAccess(e.SupplierID) {
		return domain.ErrForbidden
	}
	return mapTimeout(s.excursions.Delete(ctx, id))
}

// --- superuser-only supplier surface ---

func (s *InventorySvc) CreateSupplier(ctx context.Context, sup *domain.Supplier) error {
	if sup.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if sup.Type != domain.SupplierTour && sup.Type != domain.SupplierCar {
		return fmt.Errorf("%w: type must be tour or car", domain.ErrInvalidInput)
	}
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	return mapTimeout(s.suppliers.Create(ctx, sup))
}

func (s *InventorySvc) UpdateSupplier(ctx context.Context, sup *domain.Supplier) error {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	return mapTimeout(s.suppliers.Update(ctx, sup))
}

// DeleteSupplier refuses while dependent inventory or bookings reference the
// supplier; the repo surfaces that as Conflict.
func (s *InventorySvc) DeleteSupplier(ctx context.Context, id int64) error {
	ctx, cancel := opCtx(ctx, s.timeout)
	defer cancel()
	return mapTimeout(s.suppliers.Delete(ctx, id))
}
