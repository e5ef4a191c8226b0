// Package scheduler runs the background maintenance of the service: deleting
// transient report copies past their TTL and pruning old check history.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskReportsCleanup removes report copies older than the report TTL.
const TaskReportsCleanup = "reports.cleanup"

// TaskHistoryPrune deletes vat_checks rows past the retention window.
const TaskHistoryPrune = "history.prune"

// ReportsCleanupPayload carries no fields today; kept as a struct so a future
// per-directory override stays wire compatible.
type ReportsCleanupPayload struct{}

// HistoryPrunePayload carries no fields today.
type HistoryPrunePayload struct{}

func NewReportsCleanupTask() (*asynq.Task, error) {
	data, err := json.Marshal(ReportsCleanupPayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportsCleanup, data), nil
}

func NewHistoryPruneTask() (*asynq.Task, error) {
	data, err := json.Marshal(HistoryPrunePayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskHistoryPrune, data), nil
}
