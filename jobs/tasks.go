package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTradeIntegrity re-checks that detail sums match header totals.
	TaskTradeIntegrity = "trade:integrity"
	// TaskCatalogWarmup preloads hot products into the lookup cache.
	TaskCatalogWarmup = "catalog:warmup"
)

// TradeIntegrityPayload bounds the integrity scan.
type TradeIntegrityPayload struct {
	LookbackHours int `json:"lookback_hours"`
}

// CatalogWarmupPayload bounds the warmup batch.
type CatalogWarmupPayload struct {
	Limit int `json:"limit"`
}

// NewTradeIntegrityTask constructs an Asynq task.
func NewTradeIntegrityTask(payload TradeIntegrityPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTradeIntegrity, data), nil
}

// NewCatalogWarmupTask constructs an Asynq task.
func NewCatalogWarmupTask(payload CatalogWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCatalogWarmup, data), nil
}
