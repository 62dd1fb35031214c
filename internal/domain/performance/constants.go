package performance

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusReviewed  = "reviewed"
	StatusCompleted = "completed"

	GoalStatusNotStarted = "not_started"
	GoalStatusInProgress = "in_progress"
	GoalStatusCompleted  = "completed"

	MinRating = 1
	MaxRating = 5
)

var Statuses = []string{StatusDraft, StatusSubmitted, StatusReviewed, StatusCompleted}
