package services

import (
	"context"
	"sort"

	"scooter-rental/internal/geo"
	"scooter-rental/internal/models"
	"scooter-rental/internal/repository"
)

type AddProductInput struct {
	ProductType string
	Model       string
	Lat         float64
	Long        float64
}

// UpdateProductInput leaves nil fields untouched.
type UpdateProductInput struct {
	Lat         *float64
	Long        *float64
	IsAvailable *bool
	Battery     *int
}

type ProductService struct {
	products   repository.ProductRepository
	sortNearby bool
}

// NewProductService; with sortNearby false ListNearby keeps store order.
func NewProductService(products repository.ProductRepository, sortNearby bool) *ProductService {
	return &ProductService{products: products, sortNearby: sortNearby}
}

// ListNearby returns every product with its distance in miles from the
// given point.
func (s *ProductService) ListNearby(ctx context.Context, lat, long float64) ([]models.NearbyProduct, error) {
	all, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	from := geo.Point{Lat: lat, Long: long}
	out := make([]models.NearbyProduct, 0, len(all))
	for _, p := range all {
		out = append(out, models.NearbyProduct{
			ID:       p.ID,
			Model:    p.ProductModel,
			Battery:  p.Battery,
			Distance: geo.Distance(from, geo.Point{Lat: p.Lat, Long: p.Long}),
		})
	}
	if s.sortNearby {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	}
	return out, nil
}

// Add registers a fully charged, available product.
func (s *ProductService) Add(ctx context.Context, in AddProductInput) (*models.Product, error) {
	p := &models.Product{
		ProductType:  in.ProductType,
		ProductModel: in.Model,
		Lat:          in.Lat,
		Long:         in.Long,
		Battery:      100,
		IsAvailable:  true,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, in UpdateProductInput) (*models.Product, error) {
	err := s.products.Update(ctx, id, repository.ProductChanges{
		Lat:         in.Lat,
		Long:        in.Long,
		IsAvailable: in.IsAvailable,
		Battery:     in.Battery,
	})
	if err != nil {
		return nil, err
	}
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	return s.products.Delete(ctx, id)
}
