package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meghdad1234/fabric-microservices/internal/docstore"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrUnknownStatus     = errors.New("unknown order status")
)

// Repository persists orders in the service's document store.
type Repository interface {
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	Create(ctx context.Context, o *Order) (*Order, error)
	UpdateStatus(ctx context.Context, id int64, next Status) (*Order, error)
}

type fileRepository struct {
	store *docstore.Store[Order]
}

func NewRepository(store *docstore.Store[Order]) Repository {
	return &fileRepository{store: store}
}

func (r *fileRepository) List(_ context.Context) ([]Order, error) {
	return r.store.Load()
}

func (r *fileRepository) GetByID(_ context.Context, id int64) (*Order, error) {
	orders, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *fileRepository) Create(_ context.Context, o *Order) (*Order, error) {
	var created Order
	err := r.store.Mutate(func(orders []Order) ([]Order, error) {
		created = *o
		created.ID = docstore.NextID(orders, func(o Order) int64 { return o.ID })
		created.Status = StatusPending
		created.CreatedAt = time.Now().UTC()
		return append(orders, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStatus checks the transition table against the current status and
// writes the new one in the same locked mutation, so two racing advances
// cannot both pass the check.
func (r *fileRepository) UpdateStatus(_ context.Context, id int64, next Status) (*Order, error) {
	var updated Order
	err := r.store.Mutate(func(orders []Order) ([]Order, error) {
		for i := range orders {
			if orders[i].ID != id {
				continue
			}
			if !CanTransition(orders[i].Status, next) {
				return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, orders[i].Status, next)
			}
			orders[i].Status = next
			updated = orders[i]
			return orders, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
