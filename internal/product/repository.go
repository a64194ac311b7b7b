package product

import (
	"context"
	"errors"
	"time"

	"github.com/meghdad1234/fabric-microservices/internal/docstore"
)

var ErrNotFound = errors.New("product not found")

// Repository persists products in the service's document store.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, p *Product) (*Product, error)
	Update(ctx context.Context, id int64, upd Update) (*Product, error)
	Delete(ctx context.Context, id int64) (*Product, error)
}

// Update carries a partial product edit. Empty strings, zero numbers, and nil
// slices leave the stored value untouched; InStock is applied only when the
// caller supplied it.
type Update struct {
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

type fileRepository struct {
	store *docstore.Store[Product]
}

func NewRepository(store *docstore.Store[Product]) Repository {
	return &fileRepository{store: store}
}

func (r *fileRepository) List(_ context.Context) ([]Product, error) {
	return r.store.Load()
}

func (r *fileRepository) GetByID(_ context.Context, id int64) (*Product, error) {
	products, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *fileRepository) Create(_ context.Context, p *Product) (*Product, error) {
	var created Product
	err := r.store.Mutate(func(products []Product) ([]Product, error) {
		created = *p
		created.ID = docstore.NextID(products, func(p Product) int64 { return p.ID })
		created.CreatedAt = time.Now().UTC()
		return append(products, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *fileRepository) Update(_ context.Context, id int64, upd Update) (*Product, error) {
	var updated Product
	err := r.store.Mutate(func(products []Product) ([]Product, error) {
		for i := range products {
			if products[i].ID != id {
				continue
			}
			apply(&products[i], upd)
			updated = products[i]
			return products, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *fileRepository) Delete(_ context.Context, id int64) (*Product, error) {
	var removed Product
	err := r.store.Mutate(func(products []Product) ([]Product, error) {
		for i := range products {
			if products[i].ID == id {
				removed = products[i]
				return append(products[:i], products[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

func apply(p *Product, upd Update) {
	if upd.Name != "" {
		p.Name = upd.Name
	}
	if upd.Price > 0 {
		p.Price = upd.Price
	}
	if upd.Category != "" {
		p.Category = upd.Category
	}
	if upd.FabricType != "" {
		p.FabricType = upd.FabricType
	}
	if upd.Width != "" {
		p.Width = upd.Width
	}
	if upd.MinOrder > 0 {
		p.MinOrder = upd.MinOrder
	}
	if upd.Description != "" {
		p.Description = upd.Description
	}
	if upd.Colors != nil {
		p.Colors = upd.Colors
	}
	if upd.InStock != nil {
		p.InStock = *upd.InStock
	}
}
