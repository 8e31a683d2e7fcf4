package cron

import (
	"context"
	"time"

	"github.com/wellura/staff-scheduling-go/internal/service/schedule"
)

// GenerationJobs keeps every active recurring template materialized out to
// the configured horizon. Materialization is idempotent, so overlapping runs
// are harmless.
type GenerationJobs struct {
	scheduleService *schedule.Service
}

func NewGenerationJobs(scheduleService *schedule.Service) *GenerationJobs {
	return &GenerationJobs{
		scheduleService: scheduleService,
	}
}

func (j *GenerationJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("materialize_recurring_templates", 6*time.Hour, j.MaterializeTemplates)
}

func (j *GenerationJobs) MaterializeTemplates(ctx context.Context) error {
	return j.scheduleService.MaterializeAll(ctx)
}
