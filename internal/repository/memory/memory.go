// Package memory is an in-process store with the same contracts as the gorm
// repositories. It backs DB_DRIVER=memory for local runs and the service
// tests. All state sits behind one mutex, which makes Reserve atomic.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"scooter-rental/internal/apperr"
	"scooter-rental/internal/models"
	"scooter-rental/internal/repository"
)

type Store struct {
	mu       sync.Mutex
	accounts map[uint]models.Account
	products map[uint]models.Product
	orders   []models.Order

	nextAccount uint
	nextProduct uint
	nextOrder   uint
}

func New() *Store {
	return &Store{
		accounts: make(map[uint]models.Account),
		products: make(map[uint]models.Product),
	}
}

func (s *Store) Accounts() repository.AccountRepository { return accounts{s} }
func (s *Store) Products() repository.ProductRepository { return products{s} }
func (s *Store) Orders() repository.OrderRepository     { return orders{s} }

type accounts struct{ s *Store }

func (r accounts) Create(_ context.Context, a *models.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.accounts {
		if strings.EqualFold(existing.Email, a.Email) {
			return apperr.ErrConflict
		}
	}
	r.s.nextAccount++
	now := time.Now()
	a.ID = r.s.nextAccount
	a.CreatedAt, a.UpdatedAt = now, now
	r.s.accounts[a.ID] = *a
	return nil
}

func (r accounts) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r accounts) FindByID(_ context.Context, id uint) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &a, nil
}

func (r accounts) List(_ context.Context) ([]models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Account, 0, len(r.s.accounts))
	for _, a := range r.s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r accounts) Save(_ context.Context, a *models.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[a.ID]; !ok {
		return apperr.ErrNotFound
	}
	a.UpdatedAt = time.Now()
	r.s.accounts[a.ID] = *a
	return nil
}

func (r accounts) Delete(_ context.Context, id uint) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	delete(r.s.accounts, id)
	return &a, nil
}

type products struct{ s *Store }

func (r products) Create(_ context.Context, p *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextProduct++
	now := time.Now()
	p.ID = r.s.nextProduct
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.products[p.ID] = *p
	return nil
}

func (r products) FindByID(_ context.Context, id uint) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &p, nil
}

func (r products) List(_ context.Context) ([]models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r products) Update(_ context.Context, id uint, c repository.ProductChanges) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return apperr.ErrNotFound
	}
	if c.Lat != nil {
		p.Lat = *c.Lat
	}
	if c.Long != nil {
		p.Long = *c.Long
	}
	if c.IsAvailable != nil {
		p.IsAvailable = *c.IsAvailable
	}
	if c.Battery != nil {
		p.Battery = *c.Battery
	}
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return nil
}

func (r products) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

type orders struct{ s *Store }

func (r orders) Reserve(_ context.Context, o *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[o.ProductID]
	if !ok || !p.IsAvailable {
		return apperr.ErrUnavailable
	}
	p.IsAvailable = false
	p.UpdatedAt = time.Now()
	r.s.products[p.ID] = p

	r.s.nextOrder++
	o.ID = r.s.nextOrder
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	r.s.orders = append(r.s.orders, *o)
	return nil
}

func (r orders) ListByUser(_ context.Context, userID uint) ([]models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Order{}
	for i := len(r.s.orders) - 1; i >= 0; i-- {
		if r.s.orders[i].UserID == userID {
			out = append(out, r.s.orders[i])
		}
	}
	return out, nil
}
