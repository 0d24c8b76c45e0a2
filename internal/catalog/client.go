package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/storefront/internal/apperr"
	"github.com/tuanvumaihuynh/storefront/internal/config"
	"github.com/tuanvumaihuynh/storefront/internal/model"
	"github.com/tuanvumaihuynh/storefront/pkg/correlationid"
	"github.com/tuanvumaihuynh/storefront/pkg/validator"
)

const (
	ProductsPath = "/pizzas"

	maxBodyBytes = 1 << 20 // 1 MB
)

var tracer = otel.Tracer("internal/catalog")

// ProductService reads the product list of the catalog API.
type ProductService interface {
	// GetAll returns every product in the order the catalog lists them.
	// Any failure is reported as apperr.FetchFailureErr.
	GetAll(ctx context.Context) ([]model.Product, error)
}

var _ ProductService = (*Client)(nil)

type Client struct {
	httpClient *http.Client
	baseURL    string
	validator  validator.Validator
}

func NewClient(cfg config.Catalog, v validator.Validator) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   cfg.BaseURL,
		validator: v,
	}
}

func (c *Client) GetAll(ctx context.Context) ([]model.Product, error) {
	ctx, span := tracer.Start(ctx, "Client.GetAll",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("catalog.base_url", c.baseURL)),
	)
	defer span.End()

	products, err := c.getAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get products")
		return nil, apperr.FetchFailureErr.WrapParent(err)
	}

	span.SetAttributes(attribute.Int("catalog.products", len(products)))
	span.SetStatus(codes.Ok, "")
	return products, nil
}

func (c *Client) getAll(ctx context.Context) ([]model.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+ProductsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	if correlationID, ok := correlationid.FromContext(ctx); ok {
		req.Header.Set(correlationid.Header, correlationID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var products []model.Product
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	for i, product := range products {
		if err := c.validator.Validate(product); err != nil {
			return nil, fmt.Errorf("validate product at index %d: %w", i, err)
		}
	}

	if products == nil {
		products = []model.Product{}
	}

	return products, nil
}

// Port returns the port the catalog API is expected on, as derived from
// baseURL. It falls back to the scheme default when the URL has no port.
func Port(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return ""
	}

	if _, port, err := net.SplitHostPort(u.Host); err == nil {
		return port
	}

	if u.Scheme == "https" {
		return "443"
	}
	return "80"
}
