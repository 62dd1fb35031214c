package performance

import (
	"context"
	"encoding/json"
	"log/slog"
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

const reviewColumns = "id, employee_id, reviewer_id, review_period, goals, achievements, areas_for_improvement, feedback, rating, status, due_date, completed_at, created_at, updated_at"

func scanReview(row pgx.Row) (Review, error) {
	var r Review
	var goals []byte
	err := row.Scan(&r.ID, &r.EmployeeID, &r.ReviewerID, &r.ReviewPeriod, &goals, &r.Achievements, &r.AreasForImprovement, &r.Feedback, &r.Rating, &r.Status, &r.DueDate, &r.CompletedAt, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return Review{}, db.Classify(err)
	}
	r.Goals = DecodeGoals(goals)
	return r, nil
}

// DecodeGoals reads the goals document, tolerating null or malformed values.
func DecodeGoals(raw []byte) []Goal {
	goals := []Goal{}
	if len(raw) == 0 {
		return goals
	}
	if err := json.Unmarshal(raw, &goals); err != nil {
		slog.Warn("performance review goals malformed", "err", err)
		return []Goal{}
	}
	if goals == nil {
		return []Goal{}
	}
	return goals
}

func encodeGoals(goals []Goal) ([]byte, error) {
	if goals == nil {
		goals = []Goal{}
	}
	return json.Marshal(goals)
}

func (s *Store) ListReviews(ctx context.Context, filter ReviewFilter) ([]Review, error) {
	var q db.Query
	if filter.EmployeeID > 0 {
		q.Eq("employee_id", filter.EmployeeID)
	}
	if filter.ReviewerID > 0 {
		q.Eq("reviewer_id", filter.ReviewerID)
	}
	query := "SELECT " + reviewColumns + " FROM performance_reviews" + q.WhereClause() + " ORDER BY created_at DESC, id DESC"
	return db.Collect(ctx, s.DB, query, q.Args(), scanReview)
}

func (s *Store) GetReview(ctx context.Context, id int64) (Review, error) {
	return scanReview(s.DB.QueryRow(ctx, "SELECT "+reviewColumns+" FROM performance_reviews WHERE id = $1", id))
}

func (s *Store) CreateReview(ctx context.Context, in ReviewInput, completedAt *time.Time) (Review, error) {
	goals, err := encodeGoals(in.Goals)
	if err != nil {
		return Review{}, err
	}
	return scanReview(s.DB.QueryRow(ctx, `
    INSERT INTO performance_reviews (employee_id, reviewer_id, review_period, goals, achievements, areas_for_improvement, feedback, rating, status, due_date, completed_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    RETURNING `+reviewColumns,
		in.EmployeeID, in.ReviewerID, in.ReviewPeriod, goals, in.Achievements, in.AreasForImprovement, in.Feedback, in.Rating, in.Status, in.DueDate, completedAt))
}

// UpdateReview applies patch. A non-nil completedAt overwrites completed_at
// with the value it points at, which may itself be nil.
func (s *Store) UpdateReview(ctx context.Context, id int64, patch ReviewPatch, completedAt **time.Time) (Review, error) {
	var a db.Assignments
	db.SetIf(&a, "employee_id", patch.EmployeeID)
	db.SetIf(&a, "reviewer_id", patch.ReviewerID)
	db.SetIf(&a, "review_period", patch.ReviewPeriod)
	if patch.Goals != nil {
		goals, err := encodeGoals(*patch.Goals)
		if err != nil {
			return Review{}, err
		}
		a.Set("goals", goals)
	}
	db.SetIf(&a, "achievements", patch.Achievements)
	db.SetIf(&a, "areas_for_improvement", patch.AreasForImprovement)
	db.SetIf(&a, "feedback", patch.Feedback)
	db.SetIf(&a, "rating", patch.Rating)
	db.SetIf(&a, "status", patch.Status)
	db.SetIf(&a, "due_date", patch.DueDate)
	if completedAt != nil {
		a.Set("completed_at", *completedAt)
	}
	query, args := a.Update("performance_reviews", id, reviewColumns)
	return scanReview(s.DB.QueryRow(ctx, query, args...))
}

func (s *Store) DeleteReview(ctx context.Context, id int64) error {
	return db.DeleteByID(ctx, s.DB, "performance_reviews", id)
}

func (s *Store) ReviewParticipants(ctx context.Context, id int64) (Participants, error) {
	var p Participants
	err := s.DB.QueryRow(ctx, `
    SELECT e.name, r.name
    FROM performance_reviews pr
    JOIN users e ON pr.employee_id = e.id
    JOIN users r ON pr.reviewer_id = r.id
    WHERE pr.id = $1
  `, id).Scan(&p.Employee, &p.Reviewer)
	return p, db.Classify(err)
}
