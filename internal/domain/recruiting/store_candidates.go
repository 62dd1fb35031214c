package recruiting

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"

	"hrflow/internal/platform/db"
)

const candidateColumns = `id, first_name, last_name, email, phone, location, current_position, current_company,
  experience, skills, education, resume_url, linkedin_url, portfolio_url, status, source, notes,
  created_at, updated_at`

func scanCandidate(row pgx.Row) (Candidate, error) {
	var c Candidate
	var skills, education []byte
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Location, &c.CurrentPosition, &c.CurrentCompany,
		&c.Experience, &skills, &education, &c.ResumeURL, &c.LinkedInURL, &c.PortfolioURL, &c.Status, &c.Source, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return Candidate{}, db.Classify(err)
	}
	c.Skills = DecodeSkills(skills)
	c.Education = DecodeEducation(education)
	return c, nil
}

// DecodeSkills never trusts stored documents: anything that is not an array
// of non-empty strings is dropped.
func DecodeSkills(raw []byte) []string {
	out := []string{}
	var values []any
	if err := json.Unmarshal(raw, &values); err != nil {
		return out
	}
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func DecodeEducation(raw []byte) []Education {
	out := []Education{}
	var values []json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil {
		return out
	}
	for _, v := range values {
		var e Education
		if err := json.Unmarshal(v, &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out
}

func encodeSkills(skills []string) ([]byte, error) {
	return json.Marshal(nonNil(skills))
}

func encodeEducation(education []Education) ([]byte, error) {
	if education == nil {
		education = []Education{}
	}
	return json.Marshal(education)
}

func (s *Store) ListCandidates(ctx context.Context, filter CandidateFilter) ([]Candidate, error) {
	var q db.Query
	if filter.Status != "" {
		q.Eq("status", filter.Status)
	}
	if filter.Experience != "" {
		q.Eq("experience", filter.Experience)
	}
	if len(filter.Skills) > 0 {
		skills, err := encodeSkills(filter.Skills)
		if err != nil {
			return nil, err
		}
		q.Where("skills @> " + q.Arg(skills) + "::jsonb")
	}
	query := "SELECT " + candidateColumns + " FROM candidates" + q.WhereClause() + " ORDER BY created_at DESC, id DESC"
	return db.Collect(ctx, s.DB, query, q.Args(), scanCandidate)
}

func (s *Store) GetCandidate(ctx context.Context, id int64) (Candidate, error) {
	return scanCandidate(s.DB.QueryRow(ctx, "SELECT "+candidateColumns+" FROM candidates WHERE id = $1", id))
}

func (s *Store) CreateCandidate(ctx context.Context, in CandidateInput) (Candidate, error) {
	skills, err := encodeSkills(in.Skills)
	if err != nil {
		return Candidate{}, err
	}
	education, err := encodeEducation(in.Education)
	if err != nil {
		return Candidate{}, err
	}
	return scanCandidate(s.DB.QueryRow(ctx, `
    INSERT INTO candidates (first_name, last_name, email, phone, location, current_position, current_company,
      experience, skills, education, resume_url, linkedin_url, portfolio_url, status, source, notes)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
    RETURNING `+candidateColumns,
		in.FirstName, in.LastName, in.Email, in.Phone, in.Location, in.CurrentPosition, in.CurrentCompany,
		in.Experience, skills, education, in.ResumeURL, in.LinkedInURL, in.PortfolioURL, in.Status, in.Source, in.Notes))
}

func (s *Store) UpdateCandidate(ctx context.Context, id int64, patch CandidatePatch) (Candidate, error) {
	var a db.Assignments
	db.SetIf(&a, "first_name", patch.FirstName)
	db.SetIf(&a, "last_name", patch.LastName)
	db.SetIf(&a, "email", patch.Email)
	db.SetIf(&a, "phone", patch.Phone)
	db.SetIf(&a, "location", patch.Location)
	db.SetIf(&a, "current_position", patch.CurrentPosition)
	db.SetIf(&a, "current_company", patch.CurrentCompany)
	db.SetIf(&a, "experience", patch.Experience)
	if patch.Skills != nil {
		skills, err := encodeSkills(*patch.Skills)
		if err != nil {
			return Candidate{}, err
		}
		a.Set("skills", skills)
	}
	if patch.Education != nil {
		education, err := encodeEducation(*patch.Education)
		if err != nil {
			return Candidate{}, err
		}
		a.Set("education", education)
	}
	db.SetIf(&a, "resume_url", patch.ResumeURL)
	db.SetIf(&a, "linkedin_url", patch.LinkedInURL)
	db.SetIf(&a, "portfolio_url", patch.PortfolioURL)
	db.SetIf(&a, "status", patch.Status)
	db.SetIf(&a, "source", patch.Source)
	db.SetIf(&a, "notes", patch.Notes)
	query, args := a.Update("candidates", id, candidateColumns)
	return scanCandidate(s.DB.QueryRow(ctx, query, args...))
}

func (s *Store) DeleteCandidate(ctx context.Context, id int64) error {
	return db.DeleteByID(ctx, s.DB, "candidates", id)
}
