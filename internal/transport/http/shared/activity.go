package shared

import (
	"context"
	"log/slog"

	"hrflow/internal/domain/activity"
	"hrflow/internal/requestctx"
)

type ActivityRecorder interface {
	Record(ctx context.Context, entry activity.Entry) error
}

// RecordActivity appends one entry for a completed mutation. The acting user
// and request id come from ctx. Write failures are logged, never returned.
func RecordActivity(ctx context.Context, recorder ActivityRecorder, entry activity.Entry) {
	if recorder == nil {
		return
	}
	if entry.UserID == nil {
		if user, ok := requestctx.GetUser(ctx); ok {
			id := user.ID
			entry.UserID = &id
		}
	}
	if entry.RequestID == "" {
		entry.RequestID = requestctx.GetRequestID(ctx)
	}
	if err := recorder.Record(ctx, entry); err != nil {
		slog.Warn("activity log write failed",
			"action", entry.Action,
			"entityType", entry.EntityType,
			"requestId", entry.RequestID,
			"err", err,
		)
	}
}

func Entry(action, entityType string, entityID int64, description string) activity.Entry {
	return activity.Entry{
		Action:      action,
		EntityType:  entityType,
		EntityID:    &entityID,
		Description: description,
	}
}
