package home

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strconv"

	"github.com/tuanvumaihuynh/storefront/internal/model"
)

const (
	CatalogPath = "/pizzas"
	CartPath    = "/carrinho"

	// StaticPath is where Static is expected to be mounted.
	StaticPath = "/static"

	defaultBackendPort = "8080"
)

var (
	//go:embed templates/home.html.tmpl
	templatesFS embed.FS

	//go:embed static
	staticFS embed.FS
)

// Static returns the assets referenced by the rendered page.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

type Feature struct {
	Title string
	Text  string
}

var features = []Feature{
	{
		Title: "🍕 Fresh Ingredients",
		Text:  "We only use fresh, high quality ingredients, carefully selected to guarantee the best flavour.",
	},
	{
		Title: "⚡ Fast Delivery",
		Text:  "Delivered in up to 30 minutes or your pizza is free! Your pizza arrives hot and tasty.",
	},
	{
		Title: "🎯 Guaranteed Quality",
		Text:  "Our pizzas are handmade by experienced pizzaiolos following traditional Italian recipes.",
	},
}

type card struct {
	Name        string
	Description string
	Price       string
}

type view struct {
	Loading     bool
	Error       string
	Hint        string
	Cards       []card
	Features    []Feature
	CatalogPath string
	CartPath    string
	StaticPath  string
}

// Renderer turns a ViewState into the HTML of the home page.
type Renderer struct {
	tmpl *template.Template
	hint string
}

// NewRenderer parses the page template. backendPort is the port mentioned in
// the hint shown next to the error message.
func NewRenderer(backendPort string) (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/home.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse home template: %w", err)
	}

	if backendPort == "" {
		backendPort = defaultBackendPort
	}

	return &Renderer{
		tmpl: tmpl,
		hint: fmt.Sprintf("make sure the backend is running on port %s", backendPort),
	}, nil
}

// Render writes the page for state to w. It only reads state.
func (r *Renderer) Render(w io.Writer, state ViewState) error {
	v := view{
		Features:    features,
		CatalogPath: CatalogPath,
		CartPath:    CartPath,
		StaticPath:  StaticPath,
	}

	switch {
	case state.IsLoading:
		v.Loading = true
	case state.ErrorMessage != nil:
		v.Error = *state.ErrorMessage
		v.Hint = r.hint
	default:
		products := state.Popular()
		if len(products) == 0 {
			products = FallbackProducts
		}
		v.Cards = toCards(products)
	}

	if err := r.tmpl.Execute(w, v); err != nil {
		return fmt.Errorf("execute home template: %w", err)
	}

	return nil
}

func toCards(products []model.Product) []card {
	cards := make([]card, 0, len(products))
	for _, p := range products {
		cards = append(cards, card{
			Name:        p.Name,
			Description: p.Description,
			Price:       FormatPrice(p.Price),
		})
	}
	return cards
}

// FormatPrice formats an amount in reais with exactly two decimals.
func FormatPrice(price float64) string {
	return "R$ " + strconv.FormatFloat(price, 'f', 2, 64)
}
