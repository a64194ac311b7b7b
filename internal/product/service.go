package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

var ErrInvalidInput = errors.New("invalid product input")

// defaultMinOrder applies when a listing is created without a minimum order
// quantity.
const defaultMinOrder = 10

type CreateInput struct {
	Name        string
	Price       int64
	Category    string
	FabricType  string
	Width       string
	MinOrder    int
	Description string
	Colors      []string
	InStock     *bool
}

type Service interface {
	Create(ctx context.Context, input CreateInput) (Product, error)
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (Product, error)
	Update(ctx context.Context, id int64, upd Update) (Product, error)
	Delete(ctx context.Context, id int64) (Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input CreateInput) (Product, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)

	if name == "" {
		return Product{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.Price <= 0 {
		return Product{}, fmt.Errorf("%w: price must be greater than zero", ErrInvalidInput)
	}
	if category == "" {
		return Product{}, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}

	minOrder := input.MinOrder
	if minOrder <= 0 {
		minOrder = defaultMinOrder
	}

	inStock := true
	if input.InStock != nil {
		inStock = *input.InStock
	}

	created, err := s.repo.Create(ctx, &Product{
		Name:        name,
		Price:       input.Price,
		Category:    category,
		FabricType:  strings.TrimSpace(input.FabricType),
		Width:       strings.TrimSpace(input.Width),
		MinOrder:    minOrder,
		Description: strings.TrimSpace(input.Description),
		Colors:      input.Colors,
		InStock:     inStock,
	})
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create product in repository")
		return Product{}, fmt.Errorf("service: failed to create product: %w", err)
	}

	log.Info().Int64("product_id", created.ID).Str("name", created.Name).Msg("service: product created")
	return *created, nil
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list products")
		return nil, fmt.Errorf("service: failed to list products: %w", err)
	}
	return products, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Product{}, ErrNotFound
		}
		log.Error().Err(err).Int64("product_id", id).Msg("service: failed to get product by id")
		return Product{}, fmt.Errorf("service: failed to get product by id %d: %w", id, err)
	}
	return *p, nil
}

func (s *service) Update(ctx context.Context, id int64, upd Update) (Product, error) {
	upd.Name = strings.TrimSpace(upd.Name)
	upd.Category = strings.TrimSpace(upd.Category)
	upd.FabricType = strings.TrimSpace(upd.FabricType)
	upd.Width = strings.TrimSpace(upd.Width)
	upd.Description = strings.TrimSpace(upd.Description)

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Product{}, ErrNotFound
		}
		log.Error().Err(err).Int64("product_id", id).Msg("service: failed to update product")
		return Product{}, fmt.Errorf("service: failed to update product %d: %w", id, err)
	}

	log.Info().Int64("product_id", id).Msg("service: product updated")
	return *updated, nil
}

func (s *service) Delete(ctx context.Context, id int64) (Product, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Product{}, ErrNotFound
		}
		log.Error().Err(err).Int64("product_id", id).Msg("service: failed to delete product")
		return Product{}, fmt.Errorf("service: failed to delete product %d: %w", id, err)
	}

	log.Info().Int64("product_id", id).Msg("service: product deleted")
	return *removed, nil
}
