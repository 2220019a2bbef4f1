package purchase

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-pos/meridian-pos/internal/observability"
	"github.com/meridian-pos/meridian-pos/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
	metrics *observability.Metrics
}

func NewHandler(logger *slog.Logger, service *Service, metrics *observability.Metrics) *Handler {
	return &Handler{logger: logger, service: service, metrics: metrics}
}

// MountRoutes attaches purchase routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.Record)
}

// Record handles POST /purchases.
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var req RecordPurchaseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		h.metrics.PurchaseRecorded("rejected")
		httpx.RespondError(w, fmt.Errorf("%w: malformed request body", httpx.ErrValidation))
		return
	}

	receipt, err := h.service.Record(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, httpx.ErrValidation), errors.Is(err, httpx.ErrNotFound):
			h.metrics.PurchaseRecorded("rejected")
		default:
			h.metrics.PurchaseRecorded("failed")
			if h.logger != nil {
				h.logger.Error("record purchase failed", slog.Any("error", err))
			}
		}
		httpx.RespondError(w, err)
		return
	}

	h.metrics.PurchaseRecorded("ok")
	httpx.JSON(w, http.StatusCreated, receipt)
}
