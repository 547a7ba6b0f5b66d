// Package repository persists accounts, products and orders through gorm.
// Every method runs under the store Policy: a per-attempt deadline and a
// bounded number of retries for transient failures. Errors come back in the
// apperr taxonomy.
package repository

import (
	"context"

	"scooter-rental/internal/models"
)

type AccountRepository interface {
	// Create inserts a new account; a taken email yields apperr.ErrConflict.
	Create(ctx context.Context, a *models.Account) error
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByID(ctx context.Context, id uint) (*models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	Save(ctx context.Context, a *models.Account) error
	// Delete removes the account and returns the removed row.
	Delete(ctx context.Context, id uint) (*models.Account, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	// Update writes only the non-nil fields of c, so it never overwrites a
	// reservation made concurrently by an order. A missing id is
	// apperr.ErrNotFound.
	Update(ctx context.Context, id uint, c ProductChanges) error
	Delete(ctx context.Context, id uint) error
}

// ProductChanges is a partial product update; nil fields are left alone.
type ProductChanges struct {
	Lat         *float64
	Long        *float64
	IsAvailable *bool
	Battery     *int
}

func (c ProductChanges) columns() map[string]interface{} {
	cols := make(map[string]interface{}, 4)
	if c.Lat != nil {
		cols["current_location_lat"] = *c.Lat
	}
	if c.Long != nil {
		cols["current_location_long"] = *c.Long
	}
	if c.IsAvailable != nil {
		cols["is_available"] = *c.IsAvailable
	}
	if c.Battery != nil {
		cols["battery"] = *c.Battery
	}
	return cols
}

type OrderRepository interface {
	// Reserve flips the product named by o.ProductID from available to
	// unavailable and inserts o, both or neither. When the product is not
	// available at the moment of the write it returns apperr.ErrUnavailable.
	Reserve(ctx context.Context, o *models.Order) error
	ListByUser(ctx context.Context, userID uint) ([]models.Order, error)
}

var (
	_ AccountRepository = (*Accounts)(nil)
	_ ProductRepository = (*Products)(nil)
	_ OrderRepository   = (*Orders)(nil)
)
