package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tuanvumaihuynh/storefront/internal/model"
	"github.com/tuanvumaihuynh/storefront/internal/storage/db"
)

type CreateProductParams struct {
	Name        string
	Description string
	Price       float64
}

type ProductRepository interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	ListAllProducts(ctx context.Context) ([]model.Product, error)
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{
		db: db,
	}
}

type productRow struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Price       pgtype.Numeric `db:"price"`
}

func (r productRepository) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	var price pgtype.Numeric
	if err := price.Scan(strconv.FormatFloat(params.Price, 'f', 2, 64)); err != nil {
		return model.Product{}, fmt.Errorf("scan price: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		INSERT INTO products (name, description, price)
		VALUES (@name, @description, @price)
		RETURNING id, name, description, price;
	`, pgx.NamedArgs{
		"name":        params.Name,
		"description": params.Description,
		"price":       price,
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("insert product: %w", err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		return model.Product{}, fmt.Errorf("collect inserted product: %w", err)
	}

	return rowToModelProduct(row)
}

func (r productRepository) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, price
		FROM products
		ORDER BY id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}

	productRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		return nil, fmt.Errorf("collect products: %w", err)
	}

	products := make([]model.Product, 0, len(productRows))
	for _, row := range productRows {
		product, err := rowToModelProduct(row)
		if err != nil {
			return nil, fmt.Errorf("convert product %d: %w", row.ID, err)
		}
		products = append(products, product)
	}

	return products, nil
}

func rowToModelProduct(row productRow) (model.Product, error) {
	price, err := row.Price.Float64Value()
	if err != nil {
		return model.Product{}, fmt.Errorf("convert price to float64: %w", err)
	}

	return model.Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Price:       price.Float64,
	}, nil
}
