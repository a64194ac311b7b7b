package product

import "time"

// Product is a fabric listing. Price is in whole currency units; MinOrder is
// the minimum quantity (meters) a customer may order.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Category    string    `json:"category"`
	FabricType  string    `json:"fabricType,omitempty"`
	Width       string    `json:"width,omitempty"`
	MinOrder    int       `json:"minOrder"`
	Description string    `json:"description,omitempty"`
	Colors      []string  `json:"colors,omitempty"`
	InStock     bool      `json:"inStock"`
	CreatedAt   time.Time `json:"createdAt"`
}
