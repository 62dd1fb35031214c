package performance

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

func (s *Service) ListReviews(ctx context.Context, filter ReviewFilter) ([]Review, error) {
	return s.Store.ListReviews(ctx, filter)
}

func (s *Service) GetReview(ctx context.Context, id int64) (Review, error) {
	return s.Store.GetReview(ctx, id)
}

func (s *Service) CreateReview(ctx context.Context, in ReviewInput) (Review, error) {
	if in.Status == "" {
		in.Status = StatusDraft
	}
	in.Goals = normalizeGoals(in.Goals)
	var completedAt *time.Time
	if in.Status == StatusCompleted {
		now := s.Now()
		completedAt = &now
	}
	return s.Store.CreateReview(ctx, in, completedAt)
}

func (s *Service) UpdateReview(ctx context.Context, id int64, patch ReviewPatch) (Review, error) {
	if patch.Goals != nil {
		goals := normalizeGoals(*patch.Goals)
		patch.Goals = &goals
	}
	var completedAt **time.Time
	if patch.Status != nil {
		if *patch.Status == StatusCompleted {
			current, err := s.Store.GetReview(ctx, id)
			if err != nil {
				return Review{}, err
			}
			if current.Status != StatusCompleted {
				now := s.Now()
				stamp := &now
				completedAt = &stamp
			}
		} else {
			var cleared *time.Time
			completedAt = &cleared
		}
	}
	return s.Store.UpdateReview(ctx, id, patch, completedAt)
}

func (s *Service) DeleteReview(ctx context.Context, id int64) error {
	return s.Store.DeleteReview(ctx, id)
}

// ExportReview renders the review as a PDF document.
func (s *Service) ExportReview(ctx context.Context, id int64) (Review, []byte, error) {
	review, err := s.Store.GetReview(ctx, id)
	if err != nil {
		return Review{}, nil, err
	}
	people, err := s.Store.ReviewParticipants(ctx, id)
	if err != nil {
		return Review{}, nil, err
	}
	doc, err := RenderPDF(review, people)
	if err != nil {
		return Review{}, nil, err
	}
	return review, doc, nil
}

func normalizeGoals(goals []Goal) []Goal {
	out := make([]Goal, 0, len(goals))
	for _, goal := range goals {
		if goal.Title == "" {
			continue
		}
		if goal.Status == "" {
			goal.Status = GoalStatusNotStarted
		}
		out = append(out, goal)
	}
	return out
}
