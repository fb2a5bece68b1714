package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/you/excursion-booking/internal/domain"
)

type SupplierRepo struct{ db *gorm.DB }

func NewSupplierRepo(db *gorm.DB) *SupplierRepo {
	return &SupplierRepo{db: db}
}

func (r *SupplierRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Supplier{})
}

func (r *SupplierRepo) Create(ctx context.Context, s *domain.Supplier) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SupplierRepo) ByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	var s domain.Supplier
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &s, nil
}

func (r *SupplierRepo) List(ctx context.Context) ([]domain.Supplier, error) {
	var out []domain.Supplier
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SupplierRepo) Update(ctx context.Context, s *domain.Supplier) error {
	res := r.db.WithContext(ctx).Model(&domain.Supplier{}).Where("id = ?", s.ID).
		Updates(map[string]any{
			"name":     s.Name,
			"type":     s.Type,
			"phone":    s.Phone,
			"email":    s.Email,
			"logo_url": s.LogoURL,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a supplier only when nothing references it. Dependent cars,
// excursions or bookings keep the row alive (no cascade).
func (r *SupplierRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&domain.Car{}, &domain.Excursion{}, &domain.ConfirmedBooking{}} {
			var n int64
			if err := tx.Model(model).Where("supplier_id = ?", id).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return domain.ErrConflict
			}
		}
		res := tx.Delete(&domain.Supplier{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
