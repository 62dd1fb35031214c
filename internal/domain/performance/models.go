package performance

import "time"

type Goal struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

type Review struct {
	ID                  int64      `json:"id"`
	EmployeeID          int64      `json:"employeeId"`
	ReviewerID          int64      `json:"reviewerId"`
	ReviewPeriod        string     `json:"reviewPeriod"`
	Goals               []Goal     `json:"goals"`
	Achievements        *string    `json:"achievements"`
	AreasForImprovement *string    `json:"areasForImprovement"`
	Feedback            *string    `json:"feedback"`
	Rating              *int       `json:"rating"`
	Status              string     `json:"status"`
	DueDate             *time.Time `json:"dueDate"`
	CompletedAt         *time.Time `json:"completedAt"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

type ReviewInput struct {
	EmployeeID          int64
	ReviewerID          int64
	ReviewPeriod        string
	Goals               []Goal
	Achievements        *string
	AreasForImprovement *string
	Feedback            *string
	Rating              *int
	Status              string
	DueDate             *time.Time
}

type ReviewPatch struct {
	EmployeeID          *int64
	ReviewerID          *int64
	ReviewPeriod        *string
	Goals               *[]Goal
	Achievements        *string
	AreasForImprovement *string
	Feedback            *string
	Rating              *int
	Status              *string
	DueDate             *time.Time
}

type ReviewFilter struct {
	EmployeeID int64
	ReviewerID int64
}

// Participants carries the display names printed on an exported review.
type Participants struct {
	Employee string
	Reviewer string
}
