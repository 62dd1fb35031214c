package memstore

import (
	"context"
	"time"

	"hrflow/internal/domain/onboarding"
	"hrflow/internal/domain/performance"
	"hrflow/internal/platform/db"
)

var (
	_ onboarding.StoreAPI  = (*Store)(nil)
	_ performance.StoreAPI = (*Store)(nil)
)

func (s *Store) ListTasks(_ context.Context, filter onboarding.TaskFilter) ([]onboarding.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListTasks"); err != nil {
		return nil, err
	}
	out := []onboarding.Task{}
	for _, id := range sortedKeys(s.tasks, false) {
		task := s.tasks[id]
		if filter.EmployeeID > 0 && task.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (s *Store) GetTask(_ context.Context, id int64) (onboarding.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("GetTask"); err != nil {
		return onboarding.Task{}, err
	}
	task, ok := s.tasks[id]
	if !ok {
		return onboarding.Task{}, db.ErrNotFound
	}
	return task, nil
}

func (s *Store) CreateTask(_ context.Context, in onboarding.TaskInput, completedAt *time.Time) (onboarding.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateTask"); err != nil {
		return onboarding.Task{}, err
	}
	if _, ok := s.users[in.EmployeeID]; !ok {
		return onboarding.Task{}, db.ErrInvalidReference
	}
	now := s.now()
	task := onboarding.Task{
		ID:          s.nextID(),
		EmployeeID:  in.EmployeeID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		DueDate:     in.DueDate,
		Status:      in.Status,
		Priority:    in.Priority,
		AssignedBy:  in.AssignedBy,
		CompletedAt: completedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks[task.ID] = task
	return task, nil
}

func (s *Store) UpdateTask(_ context.Context, id int64, patch onboarding.TaskPatch, completion onboarding.Completion) (onboarding.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpdateTask"); err != nil {
		return onboarding.Task{}, err
	}
	task, ok := s.tasks[id]
	if !ok {
		return onboarding.Task{}, db.ErrNotFound
	}
	if patch.EmployeeID != nil {
		if _, ok := s.users[*patch.EmployeeID]; !ok {
			return onboarding.Task{}, db.ErrInvalidReference
		}
	}
	set(&task.EmployeeID, patch.EmployeeID)
	set(&task.Title, patch.Title)
	setPtr(&task.Description, patch.Description)
	set(&task.Category, patch.Category)
	setPtr(&task.DueDate, patch.DueDate)
	set(&task.Status, patch.Status)
	set(&task.Priority, patch.Priority)
	now := s.now()
	switch completion {
	case onboarding.CompletionStamp:
		task.CompletedAt = &now
	case onboarding.CompletionClear:
		task.CompletedAt = nil
	}
	task.UpdatedAt = now
	s.tasks[id] = task
	return task, nil
}

func (s *Store) DeleteTask(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("DeleteTask"); err != nil {
		return err
	}
	if _, ok := s.tasks[id]; !ok {
		return db.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *Store) MarkOverdue(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("MarkOverdue"); err != nil {
		return 0, err
	}
	var n int64
	for id, task := range s.tasks {
		open := task.Status == onboarding.StatusPending || task.Status == onboarding.StatusInProgress
		if open && task.DueDate != nil && task.DueDate.Before(now) {
			task.Status = onboarding.StatusOverdue
			task.UpdatedAt = s.now()
			s.tasks[id] = task
			n++
		}
	}
	return n, nil
}

func (s *Store) ListReviews(_ context.Context, filter performance.ReviewFilter) ([]performance.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListReviews"); err != nil {
		return nil, err
	}
	out := []performance.Review{}
	for _, id := range sortedKeys(s.reviews, true) {
		review := s.reviews[id]
		if filter.EmployeeID > 0 && review.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.ReviewerID > 0 && review.ReviewerID != filter.ReviewerID {
			continue
		}
		out = append(out, review)
	}
	return out, nil
}

func (s *Store) GetReview(_ context.Context, id int64) (performance.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("GetReview"); err != nil {
		return performance.Review{}, err
	}
	review, ok := s.reviews[id]
	if !ok {
		return performance.Review{}, db.ErrNotFound
	}
	return review, nil
}

func (s *Store) CreateReview(_ context.Context, in performance.ReviewInput, completedAt *time.Time) (performance.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateReview"); err != nil {
		return performance.Review{}, err
	}
	if _, ok := s.users[in.EmployeeID]; !ok {
		return performance.Review{}, db.ErrInvalidReference
	}
	if _, ok := s.users[in.ReviewerID]; !ok {
		return performance.Review{}, db.ErrInvalidReference
	}
	now := s.now()
	review := performance.Review{
		ID:                  s.nextID(),
		EmployeeID:          in.EmployeeID,
		ReviewerID:          in.ReviewerID,
		ReviewPeriod:        in.ReviewPeriod,
		Goals:               append([]performance.Goal{}, in.Goals...),
		Achievements:        in.Achievements,
		AreasForImprovement: in.AreasForImprovement,
		Feedback:            in.Feedback,
		Rating:              in.Rating,
		Status:              in.Status,
		DueDate:             in.DueDate,
		CompletedAt:         completedAt,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	s.reviews[review.ID] = review
	return review, nil
}

func (s *Store) UpdateReview(_ context.Context, id int64, patch performance.ReviewPatch, completedAt **time.Time) (performance.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpdateReview"); err != nil {
		return performance.Review{}, err
	}
	review, ok := s.reviews[id]
	if !ok {
		return performance.Review{}, db.ErrNotFound
	}
	set(&review.EmployeeID, patch.EmployeeID)
	set(&review.ReviewerID, patch.ReviewerID)
	set(&review.ReviewPeriod, patch.ReviewPeriod)
	if patch.Goals != nil {
		review.Goals = append([]performance.Goal{}, *patch.Goals...)
	}
	setPtr(&review.Achievements, patch.Achievements)
	setPtr(&review.AreasForImprovement, patch.AreasForImprovement)
	setPtr(&review.Feedback, patch.Feedback)
	setPtr(&review.Rating, patch.Rating)
	set(&review.Status, patch.Status)
	setPtr(&review.DueDate, patch.DueDate)
	if completedAt != nil {
		review.CompletedAt = *completedAt
	}
	review.UpdatedAt = s.now()
	s.reviews[id] = review
	return review, nil
}

func (s *Store) DeleteReview(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("DeleteReview"); err != nil {
		return err
	}
	if _, ok := s.reviews[id]; !ok {
		return db.ErrNotFound
	}
	delete(s.reviews, id)
	return nil
}

func (s *Store) ReviewParticipants(_ context.Context, id int64) (performance.Participants, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ReviewParticipants"); err != nil {
		return performance.Participants{}, err
	}
	review, ok := s.reviews[id]
	if !ok {
		return performance.Participants{}, db.ErrNotFound
	}
	return performance.Participants{
		Employee: s.users[review.EmployeeID].User.Name,
		Reviewer: s.users[review.ReviewerID].User.Name,
	}, nil
}
