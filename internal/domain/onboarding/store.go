package onboarding

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrflow/internal/platform/db"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

const taskColumns = "id, employee_id, title, description, category, due_date, status, priority, assigned_by, completed_at, created_at, updated_at"

func scanTask(row pgx.Row) (Task, error) {
	var t Task
	err := row.Scan(&t.ID, &t.EmployeeID, &t.Title, &t.Description, &t.Category, &t.DueDate, &t.Status, &t.Priority, &t.AssignedBy, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt)
	return t, db.Classify(err)
}

func (s *Store) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, error) {
	var q db.Query
	if filter.EmployeeID > 0 {
		q.Eq("employee_id", filter.EmployeeID)
	}
	if filter.Status != "" {
		q.Eq("status", filter.Status)
	}
	query := "SELECT " + taskColumns + " FROM onboarding_tasks" + q.WhereClause() + " ORDER BY due_date NULLS LAST, id"
	return db.Collect(ctx, s.DB, query, q.Args(), scanTask)
}

func (s *Store) GetTask(ctx context.Context, id int64) (Task, error) {
	return scanTask(s.DB.QueryRow(ctx, "SELECT "+taskColumns+" FROM onboarding_tasks WHERE id = $1", id))
}

func (s *Store) CreateTask(ctx context.Context, in TaskInput, completedAt *time.Time) (Task, error) {
	return scanTask(s.DB.QueryRow(ctx, `
    INSERT INTO onboarding_tasks (employee_id, title, description, category, due_date, status, priority, assigned_by, completed_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING `+taskColumns,
		in.EmployeeID, in.Title, in.Description, in.Category, in.DueDate, in.Status, in.Priority, in.AssignedBy, completedAt))
}

func (s *Store) UpdateTask(ctx context.Context, id int64, patch TaskPatch, completion Completion) (Task, error) {
	var a db.Assignments
	db.SetIf(&a, "employee_id", patch.EmployeeID)
	db.SetIf(&a, "title", patch.Title)
	db.SetIf(&a, "description", patch.Description)
	db.SetIf(&a, "category", patch.Category)
	db.SetIf(&a, "due_date", patch.DueDate)
	db.SetIf(&a, "status", patch.Status)
	db.SetIf(&a, "priority", patch.Priority)
	switch completion {
	case CompletionStamp:
		a.Set("completed_at", time.Now())
	case CompletionClear:
		a.Set("completed_at", nil)
	}
	query, args := a.Update("onboarding_tasks", id, taskColumns)
	return scanTask(s.DB.QueryRow(ctx, query, args...))
}

func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	return db.DeleteByID(ctx, s.DB, "onboarding_tasks", id)
}

func (s *Store) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE onboarding_tasks
    SET status = $1, updated_at = now()
    WHERE status IN ($2, $3) AND due_date IS NOT NULL AND due_date < $4
  `, StatusOverdue, StatusPending, StatusInProgress, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
