package models

// Product is the store backend's view of a catalog entry. The terminal never
// mutates products directly; admin changes go through the backend API.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
}

// ProductInput is the admin-facing payload for creating or updating a
// product. A zero price is allowed: giveaway items still go through the till.
type ProductInput struct {
	Name          string  `json:"name" validate:"required,min=1,max=100"`
	Price         float64 `json:"price" validate:"gte=0"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
}
