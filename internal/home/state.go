package home

import (
	"github.com/tuanvumaihuynh/storefront/internal/model"
	"github.com/tuanvumaihuynh/storefront/pkg/ptr"
)

const (
	// ErrorMessage is shown instead of the product grid when loading fails.
	ErrorMessage = "could not load products; verify the backend is reachable"

	// PopularLimit is the number of product cards shown on the page.
	PopularLimit = 3
)

// ViewState is the render basis of a single page instance.
type ViewState struct {
	Products     []model.Product
	IsLoading    bool
	ErrorMessage *string
}

// NewViewState returns the state of a freshly mounted page.
func NewViewState() ViewState {
	return ViewState{
		Products:  []model.Product{},
		IsLoading: true,
	}
}

func (s ViewState) withProducts(products []model.Product) ViewState {
	if products == nil {
		products = []model.Product{}
	}
	s.Products = products
	s.ErrorMessage = nil
	return s
}

// withError keeps the previous products.
func (s ViewState) withError(msg string) ViewState {
	s.ErrorMessage = ptr.New(msg)
	return s
}

func (s ViewState) loaded() ViewState {
	s.IsLoading = false
	return s
}

// Popular returns at most PopularLimit products, in service order.
func (s ViewState) Popular() []model.Product {
	if len(s.Products) > PopularLimit {
		return s.Products[:PopularLimit]
	}
	return s.Products
}

func (s ViewState) clone() ViewState {
	c := s
	c.Products = append([]model.Product(nil), s.Products...)
	if s.ErrorMessage != nil {
		c.ErrorMessage = ptr.New(*s.ErrorMessage)
	}
	return c
}
