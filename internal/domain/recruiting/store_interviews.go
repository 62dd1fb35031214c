package recruiting

import (
	"context"

	"github.com/jackc/pgx/v5"

	"hrflow/internal/platform/db"
)

const interviewColumns = `id, application_id, interviewer_id, scheduled_at, duration_minutes, type, status,
  location, meeting_link, rating, recommendation, feedback, notes, created_at, updated_at`

func scanInterview(row pgx.Row) (Interview, error) {
	var i Interview
	err := row.Scan(&i.ID, &i.ApplicationID, &i.InterviewerID, &i.ScheduledAt, &i.DurationMinutes, &i.Type, &i.Status,
		&i.Location, &i.MeetingLink, &i.Rating, &i.Recommendation, &i.Feedback, &i.Notes, &i.CreatedAt, &i.UpdatedAt)
	return i, db.Classify(err)
}

func (s *Store) ListInterviews(ctx context.Context, filter InterviewFilter) ([]Interview, error) {
	var q db.Query
	if filter.Date != nil {
		from, to := db.DayRange(*filter.Date)
		q.Range("scheduled_at", from, to)
	}
	if filter.InterviewerID > 0 {
		q.Eq("interviewer_id", filter.InterviewerID)
	}
	if filter.Status != "" {
		q.Eq("status", filter.Status)
	}
	if filter.ApplicationID > 0 {
		q.Eq("application_id", filter.ApplicationID)
	}
	query := "SELECT " + interviewColumns + " FROM interviews" + q.WhereClause() + " ORDER BY scheduled_at, id"
	return db.Collect(ctx, s.DB, query, q.Args(), scanInterview)
}

func (s *Store) GetInterview(ctx context.Context, id int64) (Interview, error) {
	return scanInterview(s.DB.QueryRow(ctx, "SELECT "+interviewColumns+" FROM interviews WHERE id = $1", id))
}

func (s *Store) CreateInterview(ctx context.Context, in InterviewInput) (Interview, error) {
	return scanInterview(s.DB.QueryRow(ctx, `
    INSERT INTO interviews (application_id, interviewer_id, scheduled_at, duration_minutes, type, status,
      location, meeting_link, notes)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING `+interviewColumns,
		in.ApplicationID, in.InterviewerID, in.ScheduledAt, in.DurationMinutes, in.Type, in.Status,
		in.Location, in.MeetingLink, in.Notes))
}

func (s *Store) UpdateInterview(ctx context.Context, id int64, patch InterviewPatch) (Interview, error) {
	var a db.Assignments
	db.SetIf(&a, "interviewer_id", patch.InterviewerID)
	db.SetIf(&a, "scheduled_at", patch.ScheduledAt)
	db.SetIf(&a, "duration_minutes", patch.DurationMinutes)
	db.SetIf(&a, "type", patch.Type)
	db.SetIf(&a, "status", patch.Status)
	db.SetIf(&a, "location", patch.Location)
	db.SetIf(&a, "meeting_link", patch.MeetingLink)
	db.SetIf(&a, "rating", patch.Rating)
	db.SetIf(&a, "recommendation", patch.Recommendation)
	db.SetIf(&a, "feedback", patch.Feedback)
	db.SetIf(&a, "notes", patch.Notes)
	query, args := a.Update("interviews", id, interviewColumns)
	return scanInterview(s.DB.QueryRow(ctx, query, args...))
}

func (s *Store) DeleteInterview(ctx context.Context, id int64) error {
	return db.DeleteByID(ctx, s.DB, "interviews", id)
}
