package repository

import (
	"context"

	"gorm.io/gorm"

	"scooter-rental/internal/apperr"
	"scooter-rental/internal/models"
)

type Products struct {
	db     *gorm.DB
	policy Policy
}

func NewProducts(db *gorm.DB, p Policy) *Products {
	return &Products{db: db, policy: p}
}

func (r *Products) Create(ctx context.Context, p *models.Product) error {
	return r.policy.run(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Create(p).Error
	})
}

func (r *Products) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	err := r.policy.run(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).First(&p, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Products) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.policy.run(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Order("id").Find(&products).Error
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *Products) Update(ctx context.Context, id uint, c ProductChanges) error {
	cols := c.columns()
	if len(cols) == 0 {
		_, err := r.FindByID(ctx, id)
		return err
	}
	return r.policy.run(ctx, func(ctx context.Context) error {
		res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrNotFound
		}
		return nil
	})
}

func (r *Products) Delete(ctx context.Context, id uint) error {
	return r.policy.run(ctx, func(ctx context.Context) error {
		res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrNotFound
		}
		return nil
	})
}
