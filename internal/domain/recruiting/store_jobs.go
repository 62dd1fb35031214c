package recruiting

import (
	"context"

	"github.com/jackc/pgx/v5"

	"hrflow/internal/platform/db"
)

const jobColumns = `id, title, description, requirements, responsibilities, department, location,
  employment_type, work_location, experience_level, salary_min, salary_max, status,
  application_deadline, posted_by, ai_score, created_at, updated_at`

func scanJob(row pgx.Row) (Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.Title, &j.Description, &j.Requirements, &j.Responsibilities, &j.Department, &j.Location,
		&j.EmploymentType, &j.WorkLocation, &j.ExperienceLevel, &j.SalaryMin, &j.SalaryMax, &j.Status,
		&j.ApplicationDeadline, &j.PostedBy, &j.AIScore, &j.CreatedAt, &j.UpdatedAt)
	return j, db.Classify(err)
}

func (s *Store) ListJobs(ctx context.Context, filter JobFilter) ([]Job, error) {
	var q db.Query
	if filter.Status != "" {
		q.Eq("status", filter.Status)
	}
	if filter.Department != "" {
		q.Eq("department", filter.Department)
	}
	query := "SELECT " + jobColumns + " FROM jobs" + q.WhereClause() + " ORDER BY created_at DESC, id DESC"
	query += q.LimitClause(filter.Limit)
	return db.Collect(ctx, s.DB, query, q.Args(), scanJob)
}

func (s *Store) GetJob(ctx context.Context, id int64) (Job, error) {
	return scanJob(s.DB.QueryRow(ctx, "SELECT "+jobColumns+" FROM jobs WHERE id = $1", id))
}

func (s *Store) CreateJob(ctx context.Context, in JobInput) (Job, error) {
	return scanJob(s.DB.QueryRow(ctx, `
    INSERT INTO jobs (title, description, requirements, responsibilities, department, location,
      employment_type, work_location, experience_level, salary_min, salary_max, status,
      application_deadline, posted_by)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
    RETURNING `+jobColumns,
		in.Title, in.Description, in.Requirements, in.Responsibilities, in.Department, in.Location,
		in.EmploymentType, in.WorkLocation, in.ExperienceLevel, in.SalaryMin, in.SalaryMax, in.Status,
		in.ApplicationDeadline, in.PostedBy))
}

func (s *Store) UpdateJob(ctx context.Context, id int64, patch JobPatch) (Job, error) {
	var a db.Assignments
	db.SetIf(&a, "title", patch.Title)
	db.SetIf(&a, "description", patch.Description)
	db.SetIf(&a, "requirements", patch.Requirements)
	db.SetIf(&a, "responsibilities", patch.Responsibilities)
	db.SetIf(&a, "department", patch.Department)
	db.SetIf(&a, "location", patch.Location)
	db.SetIf(&a, "employment_type", patch.EmploymentType)
	db.SetIf(&a, "work_location", patch.WorkLocation)
	db.SetIf(&a, "experience_level", patch.ExperienceLevel)
	db.SetIf(&a, "salary_min", patch.SalaryMin)
	db.SetIf(&a, "salary_max", patch.SalaryMax)
	db.SetIf(&a, "status", patch.Status)
	db.SetIf(&a, "application_deadline", patch.ApplicationDeadline)
	db.SetIf(&a, "ai_score", patch.AIScore)
	query, args := a.Update("jobs", id, jobColumns)
	return scanJob(s.DB.QueryRow(ctx, query, args...))
}

func (s *Store) DeleteJob(ctx context.Context, id int64) error {
	return db.DeleteByID(ctx, s.DB, "jobs", id)
}
