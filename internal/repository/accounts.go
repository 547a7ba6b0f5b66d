package repository

import (
	"context"

	"gorm.io/gorm"

	"scooter-rental/internal/models"
)

type Accounts struct {
	db     *gorm.DB
	policy Policy
}

func NewAccounts(db *gorm.DB, p Policy) *Accounts {
	return &Accounts{db: db, policy: p}
}

func (r *Accounts) Create(ctx context.Context, a *models.Account) error {
	return r.policy.run(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Create(a).Error
	})
}

func (r *Accounts) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	err := r.policy.run(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Accounts) FindByID(ctx context.Context, id uint) (*models.Account, error) {
	var a models.Account
	err := r.policy.run(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).First(&a, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Accounts) List(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	err := r.policy.run(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Order("id").Find(&accounts).Error
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *Accounts) Save(ctx context.Context, a *models.Account) error {
	return r.policy.run(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Save(a).Error
	})
}

func (r *Accounts) Delete(ctx context.Context, id uint) (*models.Account, error) {
	var a models.Account
	err := r.policy.run(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&a, id).Error; err != nil {
				return err
			}
			return tx.Delete(&a).Error
		})
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}
