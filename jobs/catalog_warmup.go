package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/meridian-pos/meridian-pos/internal/catalog"
)

const defaultWarmupLimit = 200

// NewCatalogWarmupHandler returns an Asynq handler that preloads recent
// product codes into the lookup cache.
func NewCatalogWarmupHandler(service *catalog.Service, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload CatalogWarmupPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		limit := defaultWarmupLimit
		if payload.Limit > 0 {
			limit = payload.Limit
		}
		warmed, err := service.WarmCache(ctx, limit)
		if err != nil {
			return err
		}
		if logger != nil {
			logger.Info("catalog warmup finished", slog.Int("warmed", warmed))
		}
		return nil
	}
}
