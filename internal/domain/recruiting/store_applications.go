package recruiting

import (
	"context"

	"github.com/jackc/pgx/v5"

	"hrflow/internal/platform/db"
)

const applicationColumns = "id, job_id, candidate_id, status, cover_letter, ai_match_score, notes, applied_at, created_at, updated_at"

func scanApplication(row pgx.Row) (Application, error) {
	var a Application
	err := row.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.CoverLetter, &a.AIMatchScore, &a.Notes, &a.AppliedAt, &a.CreatedAt, &a.UpdatedAt)
	return a, db.Classify(err)
}

func (s *Store) ListApplications(ctx context.Context, filter ApplicationFilter) ([]Application, error) {
	var q db.Query
	if filter.JobID > 0 {
		q.Eq("job_id", filter.JobID)
	}
	if filter.CandidateID > 0 {
		q.Eq("candidate_id", filter.CandidateID)
	}
	if filter.Status != "" {
		q.Eq("status", filter.Status)
	}
	query := "SELECT " + applicationColumns + " FROM applications" + q.WhereClause() + " ORDER BY applied_at DESC, id DESC"
	return db.Collect(ctx, s.DB, query, q.Args(), scanApplication)
}

func (s *Store) GetApplication(ctx context.Context, id int64) (Application, error) {
	return scanApplication(s.DB.QueryRow(ctx, "SELECT "+applicationColumns+" FROM applications WHERE id = $1", id))
}

func (s *Store) CreateApplication(ctx context.Context, in ApplicationInput) (Application, error) {
	return scanApplication(s.DB.QueryRow(ctx, `
    INSERT INTO applications (job_id, candidate_id, status, cover_letter, ai_match_score, notes)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING `+applicationColumns,
		in.JobID, in.CandidateID, in.Status, in.CoverLetter, in.AIMatchScore, in.Notes))
}

func (s *Store) UpdateApplication(ctx context.Context, id int64, patch ApplicationPatch) (Application, error) {
	var a db.Assignments
	db.SetIf(&a, "status", patch.Status)
	db.SetIf(&a, "cover_letter", patch.CoverLetter)
	db.SetIf(&a, "ai_match_score", patch.AIMatchScore)
	db.SetIf(&a, "notes", patch.Notes)
	query, args := a.Update("applications", id, applicationColumns)
	return scanApplication(s.DB.QueryRow(ctx, query, args...))
}

func (s *Store) DeleteApplication(ctx context.Context, id int64) error {
	return db.DeleteByID(ctx, s.DB, "applications", id)
}
