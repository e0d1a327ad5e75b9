// Package jobs holds the background tasks of the accounting engine: warming
// the balance sheet cache and checking general ledger integrity.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportsWarmup pre-computes balance sheets and stores them in Redis.
	TaskReportsWarmup = "reports:warmup"
	// TaskGLIntegrity re-derives the accounting identity and reports drift.
	TaskGLIntegrity = "gl:integrity"
)

// ReportsWarmupPayload selects the reporting date to warm. An empty AsOf
// means today.
type ReportsWarmupPayload struct {
	AsOf string `json:"as_of,omitempty"`
}

// NewReportsWarmupTask constructs an Asynq task for the warmup job.
func NewReportsWarmupTask(payload ReportsWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportsWarmup, data), nil
}

// GLIntegrityPayload selects the reporting date to check. An empty AsOf
// means today.
type GLIntegrityPayload struct {
	AsOf string `json:"as_of,omitempty"`
}

// NewGLIntegrityTask constructs an Asynq task for the integrity check.
func NewGLIntegrityTask(payload GLIntegrityPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskGLIntegrity, data), nil
}
