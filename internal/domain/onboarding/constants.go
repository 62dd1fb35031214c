package onboarding

const (
	CategoryHR            = "hr"
	CategoryIT            = "it"
	CategoryAdmin         = "admin"
	CategoryTraining      = "training"
	CategoryDocumentation = "documentation"

	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusOverdue    = "overdue"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var (
	Categories = []string{CategoryHR, CategoryIT, CategoryAdmin, CategoryTraining, CategoryDocumentation}
	Statuses   = []string{StatusPending, StatusInProgress, StatusCompleted, StatusOverdue}
	Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}
)
