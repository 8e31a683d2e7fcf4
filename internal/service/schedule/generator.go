package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wellura/staff-scheduling-go/internal/domain/schedule"
	"github.com/wellura/staff-scheduling-go/internal/pkg/dateutil"
	"github.com/wellura/staff-scheduling-go/internal/pkg/recurrence"
)

// Materialize expands the template's recurrence rule and creates the missing
// child schedules, one per occurrence date. The first occurrence is the
// template itself and is skipped. Dates that already have a child are skipped
// rather than duplicated, so re-running with the same horizon is idempotent.
// A conflict on one date is captured in that date's result and the batch
// continues.
func (s *Service) Materialize(ctx context.Context, templateID string, upTo *time.Time) ([]schedule.GenerationResult, error) {
	template, err := s.scheduleRepo.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if !template.IsTemplate() {
		return nil, schedule.ErrNotTemplate
	}

	horizon := time.Now().AddDate(0, 0, s.cfg.GenerationHorizonDays)
	if upTo != nil {
		horizon = *upTo
	}

	occurrences, err := recurrence.Expand(*template.RecurrenceRule, template.StartTime, horizon, s.cfg.MaxOccurrences)
	if err != nil {
		return nil, err
	}
	if len(occurrences) == 0 {
		return nil, nil
	}

	duration := template.Duration()
	results := make([]schedule.GenerationResult, 0, len(occurrences)-1)
	generated := 0

	// occurrences[0] is the template's own start.
	for _, occ := range occurrences[1:] {
		if ctx.Err() != nil {
			// Abandoned between occurrences: children created so far stay
			// valid and a retry picks up where this run stopped.
			return results, ctx.Err()
		}

		exists, err := s.scheduleRepo.ChildExistsOnDate(ctx, templateID, dateutil.Day(occ))
		if err != nil {
			return results, fmt.Errorf("failed to check existing child: %w", err)
		}
		if exists {
			continue
		}

		child, err := s.createChild(ctx, template, occ, occ.Add(duration))
		if err != nil {
			results = append(results, schedule.GenerationResult{Date: occ, Err: err})
			continue
		}

		generated++
		results = append(results, schedule.GenerationResult{Date: occ, Schedule: &child})
	}

	if generated > 0 {
		if err := s.scheduleRepo.AddGenerated(ctx, templateID, generated); err != nil {
			slog.Warn("failed to bump template generated counter",
				"template_id", templateID, "error", err)
		}
	}

	return results, nil
}

func (s *Service) createChild(ctx context.Context, template schedule.Schedule, start, end time.Time) (schedule.Schedule, error) {
	parentID := template.ID
	child := schedule.Schedule{
		ID:               uuid.NewString(),
		StaffID:          template.StaffID,
		Type:             template.Type,
		StartTime:        start,
		EndTime:          end,
		Status:           schedule.StatusScheduled,
		ParentScheduleID: &parentID,
		Location:         template.Location,
		Notes:            template.Notes,
		CreatedBy:        template.CreatedBy,
		UpdatedBy:        template.CreatedBy,
	}

	var created schedule.Schedule
	err := s.scheduleRepo.WithStaffLock(ctx, template.StaffID, func(lockCtx context.Context) error {
		if err := s.CheckConflict(lockCtx, template.StaffID, start, end, ""); err != nil {
			return err
		}
		var createErr error
		created, createErr = s.scheduleRepo.Create(lockCtx, child)
		return createErr
	})
	if err != nil {
		return schedule.Schedule{}, err
	}
	return created, nil
}

// MaterializeAll generates children for every active template, used by the
// background job that keeps the horizon filled.
func (s *Service) MaterializeAll(ctx context.Context) error {
	templates, err := s.scheduleRepo.ListActiveTemplates(ctx)
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	for _, template := range templates {
		results, err := s.Materialize(ctx, template.ID, nil)
		if err != nil {
			slog.Error("template generation failed", "template_id", template.ID, "error", err)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		for _, r := range results {
			if r.Err != nil {
				slog.Warn("occurrence not generated",
					"template_id", template.ID,
					"date", r.Date.Format("2006-01-02"),
					"error", r.Err)
			}
		}
	}
	return nil
}
