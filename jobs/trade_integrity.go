package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const integrityScanConcurrency = 4

// TradeIntegrityChecker verifies that the sum of a trade's detail prices
// equals the header's tax-exclusive total. The purchase engine writes both
// in one transaction, so a mismatch means storage corruption or a write
// path bypassing the engine.
type TradeIntegrityChecker struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewTradeIntegrityChecker constructs the checker.
func NewTradeIntegrityChecker(pool *pgxpool.Pool, logger *slog.Logger) *TradeIntegrityChecker {
	return &TradeIntegrityChecker{pool: pool, logger: logger}
}

// Run scans trades recorded within the lookback window and returns the ids
// whose details do not sum to the header total.
func (c *TradeIntegrityChecker) Run(ctx context.Context, lookback time.Duration) ([]int64, error) {
	const query = `SELECT trd_id, ttl_amt_ex_tax FROM trades WHERE trade_at >= $1 ORDER BY trd_id`

	since := time.Now().Add(-lookback)
	rows, err := c.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type header struct {
		id    int64
		total int64
	}
	var headers []header
	for rows.Next() {
		var h header
		if err := rows.Scan(&h.id, &h.total); err != nil {
			return nil, err
		}
		headers = append(headers, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var (
		mu         sync.Mutex
		mismatched []int64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(integrityScanConcurrency)
	for _, h := range headers {
		h := h
		g.Go(func() error {
			const sumQuery = `SELECT COALESCE(SUM(prd_price), 0) FROM trade_details WHERE trd_id = $1`
			var sum int64
			if err := c.pool.QueryRow(ctx, sumQuery, h.id).Scan(&sum); err != nil {
				return err
			}
			if sum != h.total {
				mu.Lock()
				mismatched = append(mismatched, h.id)
				mu.Unlock()
				if c.logger != nil {
					c.logger.Error("trade totals mismatch",
						slog.Int64("trd_id", h.id),
						slog.Int64("header_total", h.total),
						slog.Int64("detail_sum", sum))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return mismatched, nil
}

// NewTradeIntegrityHandler adapts the checker into an Asynq handler.
func NewTradeIntegrityHandler(checker *TradeIntegrityChecker, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload TradeIntegrityPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		lookback := 24 * time.Hour
		if payload.LookbackHours > 0 {
			lookback = time.Duration(payload.LookbackHours) * time.Hour
		}
		mismatched, err := checker.Run(ctx, lookback)
		if err != nil {
			return err
		}
		if logger != nil {
			logger.Info("trade integrity scan finished", slog.Int("mismatched", len(mismatched)))
		}
		return nil
	}
}
