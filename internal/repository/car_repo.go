package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/you/excursion-booking/internal/domain"
)

type CarRepo struct{ db *gorm.DB }

func NewCarRepo(db *gorm.DB) *CarRepo {
	return &CarRepo{db: db}
}

func (r *CarRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Car{})
}

func (r *CarRepo) Create(ctx context.Context, c *domain.Car) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CarRepo) ByID(ctx context.Context, id int64) (*domain.Car, error) {
	var c domain.Car
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &c, nil
}

func (r *CarRepo) List(ctx context.Context, supplierID *int64) ([]domain.Car, error) {
	qb := r.db.WithContext(ctx).Model(&domain.Car{})
	if supplierID != nil {
		qb = qb.Where("supplier_id = ?", *supplierID)
	}
	var out []domain.Car
	if err := qb.Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CarRepo) Update(ctx context.Context, id int64, upd domain.CarUpdate) error {
	fields := upd.Fields()
	if len(fields) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&domain.Car{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CarRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Car{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
