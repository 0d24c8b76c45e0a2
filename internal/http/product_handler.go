package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tuanvumaihuynh/storefront/internal/catalog"
	"github.com/tuanvumaihuynh/storefront/internal/model"
	"github.com/tuanvumaihuynh/storefront/internal/service"
)

const maxRequestBodyBytes = 1 << 20 // 1 MB

type productResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type productHandler struct {
	s          *Service
	productSvc service.ProductService
}

func newProductHandler(s *Service, productSvc service.ProductService) *productHandler {
	return &productHandler{
		s:          s,
		productSvc: productSvc,
	}
}

func (h *productHandler) register(r chi.Router) {
	r.Get(catalog.ProductsPath, h.ListProducts)
	r.Post(catalog.ProductsPath, h.CreateProduct)
}

func (h *productHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productSvc.ListAllProducts(r.Context())
	if err != nil {
		h.s.handleResponseError(w, r, fmt.Errorf("product service list all products: %w", err))
		return
	}

	items := make([]productResponse, 0, len(products))
	for _, product := range products {
		items = append(items, toProductResponse(product))
	}

	h.s.writeJSON(w, r, http.StatusOK, items)
}

func (h *productHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var params service.CreateProductParams
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&params); err != nil {
		h.s.handleRequestError(w, r, fmt.Errorf("decode request body: %w", err))
		return
	}

	product, err := h.productSvc.CreateProduct(r.Context(), params)
	if err != nil {
		h.s.handleResponseError(w, r, fmt.Errorf("product service create product: %w", err))
		return
	}

	h.s.writeJSON(w, r, http.StatusCreated, toProductResponse(product))
}

func toProductResponse(product model.Product) productResponse {
	return productResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
	}
}
