package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/meubentin/bentin/internal/jobs"
	"github.com/meubentin/bentin/internal/store"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// Inventory provides the product snapshot the scan runs over.
type Inventory interface {
	ListProducts() []store.Product
}

// LowStockScanJob reports products at or below their minimum stock level.
type LowStockScanJob struct {
	Inventory Inventory
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
	clock     func() time.Time
}

// NewLowStockScanJob wires dependencies for the scan handler.
func NewLowStockScanJob(inventory Inventory, logger *slog.Logger) *LowStockScanJob {
	return &LowStockScanJob{
		Inventory: inventory,
		Logger:    logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes TaskLowStockScan tasks.
func (j *LowStockScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Inventory == nil {
		return errors.New("low stock scan: handler not configured")
	}
	var payload LowStockScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskLowStockScan)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	start := j.now()

	scanned := 0
	low := 0
	depleted := 0
	for _, p := range j.Inventory.ListProducts() {
		scanned++
		if p.Quantity == 0 && !payload.IncludeZero {
			continue
		}
		if !p.LowStock() {
			continue
		}
		if p.Quantity == 0 {
			depleted++
		} else {
			low++
		}
		logger.Warn("product below minimum stock",
			slog.String("product_id", p.ID),
			slog.String("nome", p.Name),
			slog.Int("quantidade", p.Quantity),
			slog.Int("estoque_minimo", p.MinStock),
		)
	}
	j.metrics().AddLowStock("baixo", low)
	j.metrics().AddLowStock("esgotado", depleted)

	logger.Info("completed low stock scan",
		slog.Int("scanned", scanned),
		slog.Int("flagged", low+depleted),
		slog.Duration("duration", time.Since(start)),
	)
	return resultErr
}

func (j *LowStockScanJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *LowStockScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskLowStockScan))
	}
	return slog.Default().With(slog.String("job", TaskLowStockScan))
}

func (j *LowStockScanJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
