package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tuanvumaihuynh/storefront/internal/catalog"
	"github.com/tuanvumaihuynh/storefront/internal/config"
	"github.com/tuanvumaihuynh/storefront/internal/home"
)

type homeHandler struct {
	cfg      config.Home
	logger   *slog.Logger
	products catalog.ProductService
	renderer *home.Renderer
}

func newHomeHandler(
	cfg config.Home,
	logger *slog.Logger,
	products catalog.ProductService,
	renderer *home.Renderer,
) *homeHandler {
	return &homeHandler{
		cfg:      cfg,
		logger:   logger,
		products: products,
		renderer: renderer,
	}
}

func (h *homeHandler) register(r chi.Router) {
	r.Get("/", h.ServeHome)
	r.Handle(home.StaticPath+"/*", http.StripPrefix(home.StaticPath, http.FileServerFS(home.Static())))
}

// ServeHome mounts a fresh page, gives the product fetch RenderWait to
// resolve and renders whatever state the page is in by then. A fetch that
// resolves later only updates a page nobody renders again.
func (h *homeHandler) ServeHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := home.NewPage(h.products, h.logger)
	page.Mount(context.WithoutCancel(ctx))

	timer := time.NewTimer(h.cfg.RenderWait)
	defer timer.Stop()

	select {
	case <-page.Done():
	case <-timer.C:
		h.logger.WarnContext(ctx, "products not loaded in time, rendering loading view",
			slog.Duration("render_wait", h.cfg.RenderWait))
	case <-ctx.Done():
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, page.State()); err != nil {
		h.logger.ErrorContext(ctx, "error rendering home page", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}
