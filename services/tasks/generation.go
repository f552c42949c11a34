package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"shiffy/models"

	"github.com/hibiken/asynq"
)

const TypeGenerateSchedule = "schedule:generate"

// GenerationUniqueTTL bounds how long a queued or failed generation blocks a
// new one for the same shop and week. A successful run releases it at once.
const GenerationUniqueTTL = 10 * time.Minute

// NewGenerationTask builds a generation task. Tasks with the same payload are
// deduplicated with asynq.Unique while one is pending or running.
func NewGenerationTask(payload models.GenerationPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeGenerateSchedule, b)
	opts := []asynq.Option{
		asynq.Unique(GenerationUniqueTTL),
		asynq.MaxRetry(3),
		asynq.Timeout(2 * time.Minute),
	}

	return task, opts, nil
}

// ParseGenerationPayload decodes and checks a task payload.
func ParseGenerationPayload(task *asynq.Task) (models.GenerationPayload, error) {
	var p models.GenerationPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid generation payload: %w", err)
	}
	if p.ShopID == "" || p.WeekStart == "" {
		return p, fmt.Errorf("invalid generation payload: shopId and week_start are required")
	}
	return p, nil
}
