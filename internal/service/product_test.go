package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/storefront/internal/model"
	"github.com/tuanvumaihuynh/storefront/internal/repository"
	"github.com/tuanvumaihuynh/storefront/internal/service"
	"github.com/tuanvumaihuynh/storefront/pkg/validator"
)

type fakeProductRepository struct {
	created  []repository.CreateProductParams
	products []model.Product
	err      error
}

func (f *fakeProductRepository) CreateProduct(_ context.Context, params repository.CreateProductParams) (model.Product, error) {
	if f.err != nil {
		return model.Product{}, f.err
	}
	f.created = append(f.created, params)
	return model.Product{
		ID:          int64(len(f.created)),
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
	}, nil
}

func (f *fakeProductRepository) ListAllProducts(context.Context) ([]model.Product, error) {
	return f.products, f.err
}

func TestProductService(t *testing.T) {
	v := validator.MustNewDefaultValidator()

	t.Run("Should create trimmed product", func(t *testing.T) {
		repo := &fakeProductRepository{}
		svc := service.NewProductService(v, repo)

		product, err := svc.CreateProduct(context.Background(), service.CreateProductParams{
			Name:        "  Margherita ",
			Description: "Tomato sauce, fresh mozzarella, basil and olive oil",
			Price:       25.9,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1), product.ID)
		assert.Equal(t, "Margherita", product.Name)
		require.Len(t, repo.created, 1)
		assert.Equal(t, 25.9, repo.created[0].Price)
	})

	t.Run("Should reject invalid params before reaching repository", func(t *testing.T) {
		repo := &fakeProductRepository{}
		svc := service.NewProductService(v, repo)

		_, err := svc.CreateProduct(context.Background(), service.CreateProductParams{
			Name:  " ",
			Price: -1,
		})

		assert.True(t, validator.IsValidationError(err))
		assert.Empty(t, repo.created)
	})

	t.Run("Should wrap repository errors", func(t *testing.T) {
		repoErr := errors.New("connection reset")
		svc := service.NewProductService(v, &fakeProductRepository{err: repoErr})

		_, err := svc.ListAllProducts(context.Background())

		assert.ErrorIs(t, err, repoErr)
	})

	t.Run("Should list products in repository order", func(t *testing.T) {
		products := []model.Product{{ID: 2, Name: "B"}, {ID: 1, Name: "A"}}
		svc := service.NewProductService(v, &fakeProductRepository{products: products})

		got, err := svc.ListAllProducts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, products, got)
	})
}
