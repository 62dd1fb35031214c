package onboarding

import (
	"context"
	"time"
)

type Service struct {
	Store StoreAPI
	Now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store, Now: time.Now}
}

func (s *Service) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, error) {
	return s.Store.ListTasks(ctx, filter)
}

func (s *Service) GetTask(ctx context.Context, id int64) (Task, error) {
	return s.Store.GetTask(ctx, id)
}

func (s *Service) CreateTask(ctx context.Context, in TaskInput) (Task, error) {
	if in.Status == "" {
		in.Status = StatusPending
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	var completedAt *time.Time
	if in.Status == StatusCompleted {
		now := s.Now()
		completedAt = &now
	}
	return s.Store.CreateTask(ctx, in, completedAt)
}

// UpdateTask keeps completed_at consistent with status: moving to completed
// stamps it, moving away clears it.
func (s *Service) UpdateTask(ctx context.Context, id int64, patch TaskPatch) (Task, error) {
	completion := CompletionUnchanged
	if patch.Status != nil {
		if *patch.Status == StatusCompleted {
			current, err := s.Store.GetTask(ctx, id)
			if err != nil {
				return Task{}, err
			}
			if current.Status != StatusCompleted {
				completion = CompletionStamp
			}
		} else {
			completion = CompletionClear
		}
	}
	return s.Store.UpdateTask(ctx, id, patch, completion)
}

func (s *Service) CompleteTask(ctx context.Context, id int64) (Task, error) {
	status := StatusCompleted
	return s.UpdateTask(ctx, id, TaskPatch{Status: &status})
}

func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	return s.Store.DeleteTask(ctx, id)
}

func (s *Service) MarkOverdue(ctx context.Context) (int64, error) {
	return s.Store.MarkOverdue(ctx, s.Now())
}
