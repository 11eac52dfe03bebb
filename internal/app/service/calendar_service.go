package service

import (
	"context"
	"time"

	"eisenq/internal/core/calendar"
	"eisenq/internal/core/domain"
	"eisenq/internal/core/ports"
)

type CalendarService struct {
	taskRepository ports.TaskRepository
	now            func() time.Time
}

// NewCalendarService builds the calendar view. A nil clock reads the wall
// clock.
func NewCalendarService(taskRepository ports.TaskRepository, now func() time.Time) *CalendarService {
	if now == nil {
		now = time.Now
	}
	return &CalendarService{
		taskRepository: taskRepository,
		now:            now,
	}
}

// View renders the owner's dated tasks into the cells of a day, week or
// month view. The reference only consults the clock when query.Today is set.
func (s *CalendarService) View(ctx context.Context, userID string, query domain.CalendarQuery) (domain.CalendarView, error) {
	mode, err := calendar.ParseViewMode(query.Mode)
	if err != nil {
		return domain.CalendarView{}, domain.NewValidationError("view", domain.RuleOneOf)
	}

	loc := query.Reference.Location()
	reference := query.Reference
	if query.Today {
		reference = calendar.Today(s.now(), loc)
	} else if query.Step != 0 {
		reference = calendar.Step(reference, mode, query.Step)
	}

	tasks, err := s.taskRepository.ListTasks(ctx, userID, domain.TaskFilter{})
	if err != nil {
		return domain.CalendarView{}, err
	}

	cells := calendar.Days(reference, mode)
	buckets := calendar.Bucket(cells, tasks, func(task domain.Task) *time.Time { return task.DueDate })

	days := make([]domain.CalendarDay, len(cells))
	for i, cell := range cells {
		days[i] = domain.CalendarDay{Date: cell, Tasks: buckets[i]}
	}

	return domain.CalendarView{
		Mode:      string(mode),
		Reference: reference,
		Days:      days,
	}, nil
}

var _ ports.CalendarService = (*CalendarService)(nil)
