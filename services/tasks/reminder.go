package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"sahayata/models"
)

const TypeReminderScan = "reminder:scan"

// scanTimeout keeps a stuck scan from overlapping too many later ticks.
const scanTimeout = 4 * time.Minute

// NewReminderScanTask builds the task that runs one reminder cycle for kind.
// Scans are never retried: the next tick covers a failed one.
func NewReminderScanTask(kind models.ItemKind) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(models.ReminderScanPayload{Kind: kind})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReminderScan, b)
	opts := []asynq.Option{asynq.MaxRetry(0), asynq.Timeout(scanTimeout)}

	return task, opts, nil
}

// ParseReminderScanTask decodes the task payload.
func ParseReminderScanTask(task *asynq.Task) (models.ReminderScanPayload, error) {
	var p models.ReminderScanPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %w", TypeReminderScan, err)
	}
	if p.Kind == "" {
		return p, fmt.Errorf("invalid %s payload: missing kind", TypeReminderScan)
	}
	return p, nil
}
