package catalog

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-pos/meridian-pos/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes attaches catalog routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/search", h.Search)
}

// Search handles GET /products/search?code=<code>.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")

	product, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("product search failed", slog.String("code", code), slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, product)
}
