package home

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/tuanvumaihuynh/storefront/internal/catalog"
)

// Page is one mounted instance of the home page. It loads the product list
// once and keeps the resulting ViewState local to the instance.
type Page struct {
	products catalog.ProductService
	logger   *slog.Logger

	mountOnce sync.Once
	done      chan struct{}

	mu    sync.RWMutex
	state ViewState
}

func NewPage(products catalog.ProductService, logger *slog.Logger) *Page {
	return &Page{
		products: products,
		logger:   logger.With(slog.String("component", "home_page")),
		done:     make(chan struct{}),
		state:    NewViewState(),
	}
}

// Mount starts loading the product list in the background. Only the first
// call has an effect.
func (p *Page) Mount(ctx context.Context) {
	p.mountOnce.Do(func() {
		go p.load(ctx)
	})
}

// Done is closed once the product list has been loaded or failed to load.
func (p *Page) Done() <-chan struct{} {
	return p.done
}

// State returns a snapshot of the current view state.
func (p *Page) State() ViewState {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.state.clone()
}

func (p *Page) load(ctx context.Context) {
	defer close(p.done)
	defer p.update(ViewState.loaded)
	defer func() {
		if rvr := recover(); rvr != nil {
			p.logger.ErrorContext(ctx, "panic loading products", slog.Any("recover", rvr),
				slog.String("stack", string(debug.Stack())))
			p.update(func(s ViewState) ViewState {
				return s.withError(ErrorMessage)
			})
		}
	}()

	products, err := p.products.GetAll(ctx)
	if err != nil {
		p.logger.ErrorContext(ctx, "error loading products", slog.Any("error", err))
		p.update(func(s ViewState) ViewState {
			return s.withError(ErrorMessage)
		})
		return
	}

	p.logger.DebugContext(ctx, "products loaded", slog.Int("count", len(products)))
	p.update(func(s ViewState) ViewState {
		return s.withProducts(products)
	})
}

func (p *Page) update(fn func(ViewState) ViewState) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state = fn(p.state)
}
