package onboarding

import (
	"context"
	"time"
)

type StoreAPI interface {
	ListTasks(ctx context.Context, filter TaskFilter) ([]Task, error)
	GetTask(ctx context.Context, id int64) (Task, error)
	CreateTask(ctx context.Context, in TaskInput, completedAt *time.Time) (Task, error)
	UpdateTask(ctx context.Context, id int64, patch TaskPatch, completion Completion) (Task, error)
	DeleteTask(ctx context.Context, id int64) error
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

// Completion describes what happens to completed_at in an update.
type Completion int

const (
	CompletionUnchanged Completion = iota
	CompletionStamp
	CompletionClear
)
