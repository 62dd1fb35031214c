package performance

import (
	"context"
	"time"
)

type StoreAPI interface {
	ListReviews(ctx context.Context, filter ReviewFilter) ([]Review, error)
	GetReview(ctx context.Context, id int64) (Review, error)
	CreateReview(ctx context.Context, in ReviewInput, completedAt *time.Time) (Review, error)
	UpdateReview(ctx context.Context, id int64, patch ReviewPatch, completedAt **time.Time) (Review, error)
	DeleteReview(ctx context.Context, id int64) error
	ReviewParticipants(ctx context.Context, id int64) (Participants, error)
}
