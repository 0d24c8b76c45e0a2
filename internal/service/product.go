package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/tuanvumaihuynh/storefront/internal/model"
	"github.com/tuanvumaihuynh/storefront/internal/repository"
	"github.com/tuanvumaihuynh/storefront/pkg/validator"
)

type CreateProductParams struct {
	Name        string  `json:"name" validate:"notblank,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Price       float64 `json:"price" validate:"gte=0,cents"`
}

type ProductService interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	ListAllProducts(ctx context.Context) ([]model.Product, error)
}

type productService struct {
	validator   validator.Validator
	productRepo repository.ProductRepository
}

func NewProductService(
	validator validator.Validator,
	productRepo repository.ProductRepository,
) ProductService {
	return &productService{
		validator:   validator,
		productRepo: productRepo,
	}
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Description = strings.TrimSpace(params.Description)

	if err := s.validator.Validate(params); err != nil {
		return model.Product{}, fmt.Errorf("validate params: %w", err)
	}

	product, err := s.productRepo.CreateProduct(ctx, repository.CreateProductParams{
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository create product: %w", err)
	}

	return product, nil
}

func (s *productService) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("product repository list all products: %w", err)
	}

	return products, nil
}
