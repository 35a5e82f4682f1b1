package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLowStockScan is the task type for the nightly low stock scan.
	TaskLowStockScan = "estoque:scan"
	// TaskInsightsWarmup is the task type for pre-computing dashboard aggregates.
	TaskInsightsWarmup = "analytics:warmup"
)

// LowStockScanPayload configures a low stock scan run.
type LowStockScanPayload struct {
	// IncludeZero also reports products that are fully out of stock.
	IncludeZero bool `json:"include_zero"`
}

// NewLowStockScanTask constructs an Asynq task for the low stock scan.
func NewLowStockScanTask(payload LowStockScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockScan, data), nil
}

// InsightsWarmupPayload configures an analytics warmup run.
type InsightsWarmupPayload struct {
	// Window is the aggregation window in days; zero means the default window.
	Window int `json:"window"`
}

// NewInsightsWarmupTask constructs an Asynq task for the analytics warmup.
func NewInsightsWarmupTask(payload InsightsWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInsightsWarmup, data), nil
}
