// Package scheduler runs the background jobs of the freight leads backend on
// asynq. The only recurring job today is the daily lead digest; it lives off
// the request path so quote submissions never wait on Redis.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskDailyDigest emails the operator a summary of the last day's leads.
const TaskDailyDigest = "leads.daily_digest"

// DailyDigestPayload identifies the day the digest covers.
type DailyDigestPayload struct {
	Date string `json:"date"` // 2006-01-02, the day being summarized
}

// NewDailyDigestTask builds the asynq task for a digest run.
func NewDailyDigestTask(payload DailyDigestPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDailyDigest, data), nil
}

// ParseDailyDigestPayload decodes a digest task payload.
func ParseDailyDigestPayload(task *asynq.Task) (DailyDigestPayload, error) {
	var payload DailyDigestPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DailyDigestPayload{}, err
	}
	return payload, nil
}
