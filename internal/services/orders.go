package services

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"scooter-rental/internal/apperr"
	"scooter-rental/internal/models"
	"scooter-rental/internal/repository"
)

type OrderService struct {
	accounts repository.AccountRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	log      log.FieldLogger
	now      func() time.Time
}

func NewOrderService(
	accounts repository.AccountRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	logger log.FieldLogger,
) *OrderService {
	return &OrderService{
		accounts: accounts,
		products: products,
		orders:   orders,
		log:      logger,
		now:      time.Now,
	}
}

// CreateOrder rents productID to the account owning email. The availability
// read only short-cuts the common case; the decision is made by the store's
// conditional reservation, so two concurrent calls cannot both succeed.
func (s *OrderService) CreateOrder(ctx context.Context, email string, productID uint) (*models.Order, error) {
	a, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.IsAvailable {
		return nil, apperr.ErrUnavailable
	}

	o := &models.Order{
		UserID:       a.ID,
		UserFN:       a.FirstName,
		UserLN:       a.LastName,
		ProductID:    p.ID,
		ProductType:  p.ProductType,
		ProductModel: p.ProductModel,
		CreatedAt:    s.now(),
	}
	if err := s.orders.Reserve(ctx, o); err != nil {
		return nil, err
	}

	s.log.WithFields(log.Fields{
		"order_id":   o.ID,
		"account_id": a.ID,
		"product_id": p.ID,
	}).Info("order created")
	return o, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}
