package home_test

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/storefront/internal/home"
	"github.com/tuanvumaihuynh/storefront/internal/model"
	"github.com/tuanvumaihuynh/storefront/pkg/ptr"
)

const cardMarker = `class="pizza-card"`

func render(t *testing.T, state home.ViewState) string {
	t.Helper()

	r, err := home.NewRenderer("8080")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, state))
	return buf.String()
}

func loadedState(products []model.Product) home.ViewState {
	return home.ViewState{Products: products}
}

func TestRendererRender(t *testing.T) {
	t.Run("Should render only loading indicator while loading", func(t *testing.T) {
		out := render(t, home.NewViewState())

		assert.Contains(t, out, "Loading pizzas...")
		assert.Contains(t, out, `http-equiv="refresh"`)
		assert.Zero(t, strings.Count(out, cardMarker))
		assert.NotContains(t, out, home.ErrorMessage)
	})

	t.Run("Should render first three products in order", func(t *testing.T) {
		out := render(t, loadedState([]model.Product{
			{ID: 1, Name: "A", Description: "d", Price: 10.5},
			{ID: 2, Name: "B", Description: "e", Price: 32.9},
			{ID: 3, Name: "C", Description: "f", Price: 25},
			{ID: 4, Name: "D", Description: "g", Price: 1},
		}))

		assert.Equal(t, 3, strings.Count(out, cardMarker))
		assert.Contains(t, out, "R$ 10.50")
		assert.Contains(t, out, "R$ 32.90")
		assert.Contains(t, out, "R$ 25.00")
		assert.NotContains(t, out, "<h3>D</h3>")

		a := strings.Index(out, "<h3>A</h3>")
		b := strings.Index(out, "<h3>B</h3>")
		c := strings.Index(out, "<h3>C</h3>")
		require.True(t, a >= 0 && b >= 0 && c >= 0)
		assert.Less(t, a, b)
		assert.Less(t, b, c)
		assert.NotContains(t, out, "Loading pizzas...")
		assert.NotContains(t, out, `http-equiv="refresh"`)
	})

	t.Run("Should render fallback cards when catalog is empty", func(t *testing.T) {
		out := render(t, loadedState([]model.Product{}))

		assert.Equal(t, 3, strings.Count(out, cardMarker))
		for _, want := range []string{
			"<h3>Margherita</h3>", "R$ 25.90",
			"<h3>Pepperoni</h3>", "R$ 32.90",
			"<h3>Calabresa</h3>", "R$ 28.90",
		} {
			assert.Contains(t, out, want)
		}
	})

	t.Run("Should render error and hint without cards", func(t *testing.T) {
		out := render(t, home.ViewState{
			Products:     []model.Product{{ID: 1, Name: "A", Price: 1}},
			ErrorMessage: ptr.New(home.ErrorMessage),
		})

		assert.Contains(t, out, home.ErrorMessage)
		assert.Contains(t, out, "make sure the backend is running on port 8080")
		assert.Zero(t, strings.Count(out, cardMarker))
		assert.NotContains(t, out, "Margherita")
	})

	t.Run("Should escape product text", func(t *testing.T) {
		out := render(t, loadedState([]model.Product{
			{ID: 1, Name: "<script>alert(1)</script>", Price: 1},
		}))

		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "&lt;script&gt;")
	})

	t.Run("Should render identical output for identical state", func(t *testing.T) {
		state := loadedState([]model.Product{
			{ID: 1, Name: "A", Description: "d", Price: 10.5},
		})

		assert.Equal(t, render(t, state), render(t, state))
	})

	t.Run("Should always render static content and links", func(t *testing.T) {
		states := []home.ViewState{
			home.NewViewState(),
			{ErrorMessage: ptr.New(home.ErrorMessage)},
			loadedState(nil),
			loadedState([]model.Product{{ID: 1, Name: "A", Price: 1}}),
		}

		for _, state := range states {
			out := render(t, state)

			assert.Contains(t, out, "Welcome to Pizzaria Deliciosa")
			assert.Contains(t, out, `href="/pizzas"`)
			assert.Contains(t, out, `href="/carrinho"`)
			assert.Equal(t, 3, strings.Count(out, `class="feature-card"`))
		}
	})

	t.Run("Should default hint port", func(t *testing.T) {
		r, err := home.NewRenderer("")
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, home.ViewState{ErrorMessage: ptr.New(home.ErrorMessage)}))
		assert.Contains(t, buf.String(), "port 8080")
	})
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{25.9, "R$ 25.90"},
		{32.9, "R$ 32.90"},
		{25, "R$ 25.00"},
		{10.5, "R$ 10.50"},
		{0, "R$ 0.00"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, home.FormatPrice(tc.price))
		})
	}
}

func TestStatic(t *testing.T) {
	for _, name := range []string{"pizza.svg", "home.css"} {
		_, err := fs.Stat(home.Static(), name)
		assert.NoError(t, err, name)
	}
}
