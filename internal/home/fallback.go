package home

import "github.com/tuanvumaihuynh/storefront/internal/model"

// FallbackProducts are displayed when the catalog answers with no products.
var FallbackProducts = []model.Product{
	{
		Name:        "Margherita",
		Description: "Tomato sauce, fresh mozzarella, basil and olive oil",
		Price:       25.90,
	},
	{
		Name:        "Pepperoni",
		Description: "Tomato sauce, mozzarella and spicy pepperoni",
		Price:       32.90,
	},
	{
		Name:        "Calabresa",
		Description: "Tomato sauce, mozzarella, calabresa sausage and onion",
		Price:       28.90,
	},
}
