package onboarding

import "time"

type Task struct {
	ID          int64      `json:"id"`
	EmployeeID  int64      `json:"employeeId"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Category    string     `json:"category"`
	DueDate     *time.Time `json:"dueDate"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssignedBy  *int64     `json:"assignedBy"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type TaskInput struct {
	EmployeeID  int64
	Title       string
	Description *string
	Category    string
	DueDate     *time.Time
	Status      string
	Priority    string
	AssignedBy  *int64
}

type TaskPatch struct {
	EmployeeID  *int64
	Title       *string
	Description *string
	Category    *string
	DueDate     *time.Time
	Status      *string
	Priority    *string
}

type TaskFilter struct {
	EmployeeID int64
	Status     string
}
