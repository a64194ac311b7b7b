package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidInput  = errors.New("invalid order input")
	ErrTotalMismatch = errors.New("total amount does not match order items")
)

type CreateInput struct {
	CustomerName  string
	CustomerPhone string
	Items         []Item
	TotalAmount   int64
}

type Service interface {
	Create(ctx context.Context, input CreateInput) (Order, error)
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id int64) (Order, error)
	Advance(ctx context.Context, id int64, next Status) (Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input CreateInput) (Order, error) {
	name := strings.TrimSpace(input.CustomerName)
	phone := strings.TrimSpace(input.CustomerPhone)

	if name == "" {
		return Order{}, fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if phone == "" {
		return Order{}, fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}
	if len(input.Items) == 0 {
		return Order{}, fmt.Errorf("%w: order must contain at least one item", ErrInvalidInput)
	}

	var total int64
	for i, item := range input.Items {
		if strings.TrimSpace(item.Name) == "" {
			return Order{}, fmt.Errorf("%w: item %d has no name", ErrInvalidInput, i)
		}
		if item.Quantity <= 0 {
			return Order{}, fmt.Errorf("%w: quantity for %q must be greater than zero", ErrInvalidInput, item.Name)
		}
		if item.Price < 0 {
			return Order{}, fmt.Errorf("%w: price for %q cannot be negative", ErrInvalidInput, item.Name)
		}
		total += item.Price * int64(item.Quantity)
	}

	// The total is recomputed from the item snapshots; a caller that
	// disagrees is sending corrupted or stale cart data.
	if total != input.TotalAmount {
		log.Warn().Int64("claimed", input.TotalAmount).Int64("computed", total).Msg("service: rejected order with mismatched total")
		return Order{}, fmt.Errorf("%w: claimed %d, computed %d", ErrTotalMismatch, input.TotalAmount, total)
	}

	created, err := s.repo.Create(ctx, &Order{
		CustomerName:  name,
		CustomerPhone: phone,
		Items:         input.Items,
		TotalAmount:   total,
	})
	if err != nil {
		log.Error().Err(err).Msg("service: failed to create order in repository")
		return Order{}, fmt.Errorf("service: failed to create order: %w", err)
	}

	log.Info().Int64("order_id", created.ID).Int64("total_amount", created.TotalAmount).Msg("service: order created")
	return *created, nil
}

func (s *service) List(ctx context.Context) ([]Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list orders")
		return nil, fmt.Errorf("service: failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Order{}, ErrNotFound
		}
		log.Error().Err(err).Int64("order_id", id).Msg("service: failed to get order by id")
		return Order{}, fmt.Errorf("service: failed to get order by id %d: %w", id, err)
	}
	return *o, nil
}

func (s *service) Advance(ctx context.Context, id int64, next Status) (Order, error) {
	updated, err := s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidTransition) {
			log.Warn().Err(err).Int64("order_id", id).Stringer("new_status", next).Msg("service: status update rejected")
			return Order{}, err
		}
		log.Error().Err(err).Int64("order_id", id).Stringer("new_status", next).Msg("service: failed to update order status")
		return Order{}, fmt.Errorf("service: failed to update order status: %w", err)
	}

	log.Info().Int64("order_id", id).Stringer("new_status", next).Msg("service: order status updated")
	return *updated, nil
}
