package model

// Product is a menu item offered by the pizzeria.
type Product struct {
	ID          int64   `json:"id" validate:"gte=0"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
}
