package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/storefront/internal/apperr"
	"github.com/tuanvumaihuynh/storefront/internal/config"
	"github.com/tuanvumaihuynh/storefront/internal/home"
	httpsvc "github.com/tuanvumaihuynh/storefront/internal/http"
	"github.com/tuanvumaihuynh/storefront/internal/http/apierr"
	"github.com/tuanvumaihuynh/storefront/internal/model"
	"github.com/tuanvumaihuynh/storefront/internal/service"
	"github.com/tuanvumaihuynh/storefront/pkg/correlationid"
	"github.com/tuanvumaihuynh/storefront/pkg/validator"
)

type fakeCatalog struct {
	products []model.Product
	err      error
	delay    time.Duration
}

func (f fakeCatalog) GetAll(ctx context.Context) ([]model.Product, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.products, f.err
}

type fakeProductService struct {
	products []model.Product
	err      error
	v        validator.Validator
}

func (f *fakeProductService) CreateProduct(_ context.Context, params service.CreateProductParams) (model.Product, error) {
	if err := f.v.Validate(params); err != nil {
		return model.Product{}, err
	}
	return model.Product{ID: 10, Name: params.Name, Description: params.Description, Price: params.Price}, nil
}

func (f *fakeProductService) ListAllProducts(context.Context) ([]model.Product, error) {
	return f.products, f.err
}

type fakeHealthChecker struct {
	err error
}

func (f fakeHealthChecker) IsHealthy(context.Context) (bool, error) {
	return f.err == nil, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHandler(t *testing.T, opts ...httpsvc.Option) http.Handler {
	t.Helper()

	svc := httpsvc.New(config.HTTP{Swagger: true, CorsOrigins: []string{"http://localhost:3000"}}, discardLogger(), opts...)
	h, err := svc.Handler()
	require.NoError(t, err)
	return h
}

func newStorefront(t *testing.T, products fakeCatalog, renderWait time.Duration) http.Handler {
	t.Helper()

	renderer, err := home.NewRenderer("8080")
	require.NoError(t, err)

	return newHandler(t, httpsvc.WithHomePage(config.Home{RenderWait: renderWait}, products, renderer))
}

func serve(h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestHomePage(t *testing.T) {
	t.Run("Should render fetched products", func(t *testing.T) {
		h := newStorefront(t, fakeCatalog{products: []model.Product{
			{ID: 1, Name: "Portuguesa", Description: "ham and eggs", Price: 30},
		}}, time.Second)

		resp := serve(h, http.MethodGet, "/", nil)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "text/html; charset=utf-8", resp.Header().Get("Content-Type"))
		assert.Contains(t, resp.Body.String(), "<h3>Portuguesa</h3>")
		assert.Contains(t, resp.Body.String(), "R$ 30.00")
		assert.NotEmpty(t, resp.Header().Get(correlationid.Header))
	})

	t.Run("Should render fallback cards for empty catalog", func(t *testing.T) {
		h := newStorefront(t, fakeCatalog{products: []model.Product{}}, time.Second)

		resp := serve(h, http.MethodGet, "/", nil)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, 3, strings.Count(resp.Body.String(), `class="pizza-card"`))
		assert.Contains(t, resp.Body.String(), "Margherita")
	})

	t.Run("Should render error view when catalog fails", func(t *testing.T) {
		h := newStorefront(t, fakeCatalog{err: apperr.FetchFailureErr}, time.Second)

		resp := serve(h, http.MethodGet, "/", nil)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), home.ErrorMessage)
		assert.Zero(t, strings.Count(resp.Body.String(), `class="pizza-card"`))
		assert.Contains(t, resp.Body.String(), `href="/pizzas"`)
	})

	t.Run("Should render loading view when catalog is slow", func(t *testing.T) {
		h := newStorefront(t, fakeCatalog{delay: 200 * time.Millisecond}, 10*time.Millisecond)

		resp := serve(h, http.MethodGet, "/", nil)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "Loading pizzas...")
		assert.Zero(t, strings.Count(resp.Body.String(), `class="pizza-card"`))
	})

	t.Run("Should serve static assets", func(t *testing.T) {
		h := newStorefront(t, fakeCatalog{}, time.Second)

		resp := serve(h, http.MethodGet, "/static/pizza.svg", nil)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "<svg")
	})
}

func TestProductAPI(t *testing.T) {
	v := validator.MustNewDefaultValidator()

	t.Run("Should list products", func(t *testing.T) {
		h := newHandler(t, httpsvc.WithProductAPI(&fakeProductService{v: v, products: []model.Product{
			{ID: 1, Name: "Margherita", Description: "basil", Price: 25.9},
		}}))

		resp := serve(h, http.MethodGet, "/pizzas", nil)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `[{"id":1,"name":"Margherita","description":"basil","price":25.9}]`, resp.Body.String())
	})

	t.Run("Should list empty catalog as empty array", func(t *testing.T) {
		h := newHandler(t, httpsvc.WithProductAPI(&fakeProductService{v: v}))

		resp := serve(h, http.MethodGet, "/pizzas", nil)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `[]`, resp.Body.String())
	})

	t.Run("Should hide internal errors", func(t *testing.T) {
		h := newHandler(t, httpsvc.WithProductAPI(&fakeProductService{v: v, err: errors.New("db down")}))

		resp := serve(h, http.MethodGet, "/pizzas", nil)

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.NotContains(t, resp.Body.String(), "db down")
	})

	t.Run("Should create product", func(t *testing.T) {
		h := newHandler(t, httpsvc.WithProductAPI(&fakeProductService{v: v}))

		resp := serve(h, http.MethodPost, "/pizzas", strings.NewReader(`{"name":"Calabresa","description":"onion","price":28.9}`))

		assert.Equal(t, http.StatusCreated, resp.Code)
		assert.JSONEq(t, `{"id":10,"name":"Calabresa","description":"onion","price":28.9}`, resp.Body.String())
	})

	t.Run("Should reject invalid product with field details", func(t *testing.T) {
		h := newHandler(t, httpsvc.WithProductAPI(&fakeProductService{v: v}))

		resp := serve(h, http.MethodPost, "/pizzas", strings.NewReader(`{"name":"","price":-1}`))

		assert.Equal(t, http.StatusBadRequest, resp.Code)

		var res apierr.ErrorResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &res))
		assert.Equal(t, "validationError", res.Code)
		require.NotNil(t, res.Details)
		assert.ElementsMatch(t, []apierr.FieldError{
			{Field: "name", Message: "must not be blank"},
			{Field: "price", Message: "must be greater than or equal to 0"},
		}, *res.Details)
	})

	t.Run("Should reject malformed body", func(t *testing.T) {
		h := newHandler(t, httpsvc.WithProductAPI(&fakeProductService{v: v}))

		resp := serve(h, http.MethodPost, "/pizzas", strings.NewReader(`{"name":`))

		assert.Equal(t, http.StatusBadRequest, resp.Code)

		var res apierr.ErrorResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &res))
		assert.Equal(t, apperr.ValidationErrorCode, res.Code)
	})

	t.Run("Should serve swagger docs", func(t *testing.T) {
		h := newHandler(t, httpsvc.WithProductAPI(&fakeProductService{v: v}))

		resp := serve(h, http.MethodGet, "/docs", nil)

		assert.Equal(t, http.StatusOK, resp.Code)
	})
}

func TestOperationalRoutes(t *testing.T) {
	t.Run("Should report healthy without checker", func(t *testing.T) {
		resp := serve(newHandler(t), http.MethodGet, "/healthz", nil)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "ok", resp.Body.String())
	})

	t.Run("Should report unhealthy database", func(t *testing.T) {
		h := newHandler(t, httpsvc.WithHealthChecker(fakeHealthChecker{err: errors.New("ping timeout")}))

		resp := serve(h, http.MethodGet, "/healthz", nil)

		assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	})

	t.Run("Should expose request metrics", func(t *testing.T) {
		h := newHandler(t)
		serve(h, http.MethodGet, "/healthz", nil)

		resp := serve(h, http.MethodGet, "/metrics", nil)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `storefront_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
	})

	t.Run("Should keep incoming correlation id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(correlationid.Header, "from-client")
		resp := httptest.NewRecorder()

		newHandler(t).ServeHTTP(resp, req)

		assert.Equal(t, "from-client", resp.Header().Get(correlationid.Header))
	})
}
