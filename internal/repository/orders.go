package repository

import (
	"context"

	"gorm.io/gorm"

	"scooter-rental/internal/apperr"
	"scooter-rental/internal/models"
)

type Orders struct {
	db     *gorm.DB
	policy Policy
}

func NewOrders(db *gorm.DB, p Policy) *Orders {
	return &Orders{db: db, policy: p}
}

// Reserve relies on the conditional update being the only writer that can
// move is_available from true to false: of two racing transactions the
// second one blocks on the row lock and then matches zero rows.
func (r *Orders) Reserve(ctx context.Context, o *models.Order) error {
	return r.policy.run(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND is_available = ?", o.ProductID, true).
				UpdateColumn("is_available", false)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperr.ErrUnavailable
			}
			return tx.Create(o).Error
		})
	})
}

func (r *Orders) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.policy.run(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("created_at DESC, id DESC").
			Find(&orders).Error
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}
