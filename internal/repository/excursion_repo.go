package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/you/excursion-booking/internal/domain"
)

type ExcursionRepo struct{ db *gorm.DB }

func NewExcursionRepo(db *gorm.DB) *ExcursionRepo {
	return &ExcursionRepo{db: db}
}

func (r *ExcursionRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Excursion{})
}

func (r *ExcursionRepo) Create(ctx context.Context, e *domain.Excursion) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ExcursionRepo) ByID(ctx context.Context, id int64) (*domain.Excursion, error) {
	var e domain.Excursion
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &e, nil
}

// List returns all excursions, or only one supplier's when supplierID is set.
func (r *ExcursionRepo) List(ctx context.Context, supplierID *int64) ([]domain.Excursion, error) {
	qb := r.db.WithContext(ctx).Model(&domain.Excursion{})
	if supplierID != nil {
		qb = qb.Where("supplier_id = ?", *supplierID)
	}
	var out []domain.Excursion
	if err := qb.Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ExcursionRepo) Update(ctx context.Context, id int64, upd domain.ExcursionUpdate) error {
	fields := upd.Fields()
	if len(fields) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&domain.Excursion{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ExcursionRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Excursion{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
