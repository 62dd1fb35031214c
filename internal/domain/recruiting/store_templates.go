package recruiting

import (
	"context"

	"github.com/jackc/pgx/v5"

	"hrflow/internal/platform/db"
)

const templateColumns = `id, name, title, department, description, requirements, responsibilities,
  employment_type, experience_level, skills, benefits, created_by, created_at, updated_at`

func scanTemplate(row pgx.Row) (JobTemplate, error) {
	var t JobTemplate
	err := row.Scan(&t.ID, &t.Name, &t.Title, &t.Department, &t.Description, &t.Requirements, &t.Responsibilities,
		&t.EmploymentType, &t.ExperienceLevel, &t.Skills, &t.Benefits, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return JobTemplate{}, db.Classify(err)
	}
	if t.Skills == nil {
		t.Skills = []string{}
	}
	if t.Benefits == nil {
		t.Benefits = []string{}
	}
	return t, nil
}

func (s *Store) ListJobTemplates(ctx context.Context, filter JobTemplateFilter) ([]JobTemplate, error) {
	var q db.Query
	if filter.Department != "" {
		q.Eq("department", filter.Department)
	}
	query := "SELECT " + templateColumns + " FROM job_templates" + q.WhereClause() + " ORDER BY name"
	return db.Collect(ctx, s.DB, query, q.Args(), scanTemplate)
}

func (s *Store) GetJobTemplate(ctx context.Context, id int64) (JobTemplate, error) {
	return scanTemplate(s.DB.QueryRow(ctx, "SELECT "+templateColumns+" FROM job_templates WHERE id = $1", id))
}

func (s *Store) CreateJobTemplate(ctx context.Context, in JobTemplateInput) (JobTemplate, error) {
	return scanTemplate(s.DB.QueryRow(ctx, `
    INSERT INTO job_templates (name, title, department, description, requirements, responsibilities,
      employment_type, experience_level, skills, benefits, created_by)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
    RETURNING `+templateColumns,
		in.Name, in.Title, in.Department, in.Description, in.Requirements, in.Responsibilities,
		in.EmploymentType, in.ExperienceLevel, nonNil(in.Skills), nonNil(in.Benefits), in.CreatedBy))
}

func (s *Store) UpdateJobTemplate(ctx context.Context, id int64, patch JobTemplatePatch) (JobTemplate, error) {
	var a db.Assignments
	db.SetIf(&a, "name", patch.Name)
	db.SetIf(&a, "title", patch.Title)
	db.SetIf(&a, "department", patch.Department)
	db.SetIf(&a, "description", patch.Description)
	db.SetIf(&a, "requirements", patch.Requirements)
	db.SetIf(&a, "responsibilities", patch.Responsibilities)
	db.SetIf(&a, "employment_type", patch.EmploymentType)
	db.SetIf(&a, "experience_level", patch.ExperienceLevel)
	if patch.Skills != nil {
		a.Set("skills", nonNil(*patch.Skills))
	}
	if patch.Benefits != nil {
		a.Set("benefits", nonNil(*patch.Benefits))
	}
	query, args := a.Update("job_templates", id, templateColumns)
	return scanTemplate(s.DB.QueryRow(ctx, query, args...))
}

func (s *Store) DeleteJobTemplate(ctx context.Context, id int64) error {
	return db.DeleteByID(ctx, s.DB, "job_templates", id)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
