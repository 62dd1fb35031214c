package recruiting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hrflow/internal/platform/ai"
	"hrflow/internal/platform/db"
)

// Scorer is the slice of the AI adapter recruiting depends on.
type Scorer interface {
	ScoreJob(ctx context.Context, job ai.JobBrief) ai.Result[int]
	MatchCandidate(ctx context.Context, job ai.JobBrief, candidate ai.CandidateBrief) ai.Result[int]
}

type Service struct {
	Store StoreAPI
	AI    Scorer
}

func NewService(store StoreAPI, scorer Scorer) *Service {
	return &Service{Store: store, AI: scorer}
}

func (s *Service) ListJobs(ctx context.Context, filter JobFilter) ([]Job, error) {
	return s.Store.ListJobs(ctx, filter)
}

func (s *Service) GetJob(ctx context.Context, id int64) (Job, error) {
	return s.Store.GetJob(ctx, id)
}

func (s *Service) CreateJob(ctx context.Context, in JobInput) (Job, error) {
	in.Status = defaultString(in.Status, JobStatusDraft)
	in.EmploymentType = defaultString(in.EmploymentType, EmploymentFullTime)
	in.WorkLocation = defaultString(in.WorkLocation, WorkLocationOnsite)
	in.ExperienceLevel = defaultString(in.ExperienceLevel, ExperienceMid)
	return s.Store.CreateJob(ctx, in)
}

func (s *Service) UpdateJob(ctx context.Context, id int64, patch JobPatch) (Job, error) {
	return s.Store.UpdateJob(ctx, id, patch)
}

func (s *Service) DeleteJob(ctx context.Context, id int64) error {
	return s.Store.DeleteJob(ctx, id)
}

// ScoreJob rates the posting and stores the score. The returned result
// reports whether the model or the placeholder produced it.
func (s *Service) ScoreJob(ctx context.Context, id int64) (Job, ai.Result[int], error) {
	job, err := s.Store.GetJob(ctx, id)
	if err != nil {
		return Job{}, ai.Result[int]{}, err
	}
	score := s.scoreJob(ctx, job)
	updated, err := s.Store.UpdateJob(ctx, id, JobPatch{AIScore: &score.Value})
	if err != nil {
		return Job{}, score, err
	}
	return updated, score, nil
}

func (s *Service) scoreJob(ctx context.Context, job Job) ai.Result[int] {
	if s.AI == nil {
		return ai.Result[int]{Value: ai.FallbackScore, Source: ai.SourceFallback, Err: ai.ErrDisabled}
	}
	return s.AI.ScoreJob(ctx, JobBrief(job))
}

func (s *Service) ListJobTemplates(ctx context.Context, filter JobTemplateFilter) ([]JobTemplate, error) {
	return s.Store.ListJobTemplates(ctx, filter)
}

func (s *Service) GetJobTemplate(ctx context.Context, id int64) (JobTemplate, error) {
	return s.Store.GetJobTemplate(ctx, id)
}

func (s *Service) CreateJobTemplate(ctx context.Context, in JobTemplateInput) (JobTemplate, error) {
	in.EmploymentType = defaultString(in.EmploymentType, EmploymentFullTime)
	in.ExperienceLevel = defaultString(in.ExperienceLevel, ExperienceMid)
	if strings.TrimSpace(in.Name) == "" {
		in.Name = in.Title
	}
	return s.Store.CreateJobTemplate(ctx, in)
}

func (s *Service) UpdateJobTemplate(ctx context.Context, id int64, patch JobTemplatePatch) (JobTemplate, error) {
	return s.Store.UpdateJobTemplate(ctx, id, patch)
}

func (s *Service) DeleteJobTemplate(ctx context.Context, id int64) error {
	return s.Store.DeleteJobTemplate(ctx, id)
}

func (s *Service) ListCandidates(ctx context.Context, filter CandidateFilter) ([]Candidate, error) {
	return s.Store.ListCandidates(ctx, filter)
}

func (s *Service) GetCandidate(ctx context.Context, id int64) (Candidate, error) {
	return s.Store.GetCandidate(ctx, id)
}

func (s *Service) CreateCandidate(ctx context.Context, in CandidateInput) (Candidate, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Status = defaultString(in.Status, CandidateStatusNew)
	in.Source = defaultString(in.Source, SourceDirect)
	return s.Store.CreateCandidate(ctx, in)
}

func (s *Service) UpdateCandidate(ctx context.Context, id int64, patch CandidatePatch) (Candidate, error) {
	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		patch.Email = &email
	}
	return s.Store.UpdateCandidate(ctx, id, patch)
}

func (s *Service) DeleteCandidate(ctx context.Context, id int64) error {
	return s.Store.DeleteCandidate(ctx, id)
}

func (s *Service) ListApplications(ctx context.Context, filter ApplicationFilter) ([]Application, error) {
	return s.Store.ListApplications(ctx, filter)
}

func (s *Service) GetApplication(ctx context.Context, id int64) (Application, error) {
	return s.Store.GetApplication(ctx, id)
}

// CreateApplication resolves the job and candidate so the match score can
// be computed. A missing job or candidate is reported as
// db.ErrInvalidReference.
func (s *Service) CreateApplication(ctx context.Context, in ApplicationInput) (Application, Job, Candidate, error) {
	job, err := s.Store.GetJob(ctx, in.JobID)
	if err != nil {
		return Application{}, Job{}, Candidate{}, referenceError("job", in.JobID, err)
	}
	candidate, err := s.Store.GetCandidate(ctx, in.CandidateID)
	if err != nil {
		return Application{}, Job{}, Candidate{}, referenceError("candidate", in.CandidateID, err)
	}
	in.Status = defaultString(in.Status, ApplicationStatusApplied)
	if in.AIMatchScore == nil {
		score := ai.FallbackScore
		if s.AI != nil {
			score = s.AI.MatchCandidate(ctx, JobBrief(job), CandidateBrief(candidate)).Value
		}
		in.AIMatchScore = &score
	}
	app, err := s.Store.CreateApplication(ctx, in)
	if err != nil {
		return Application{}, Job{}, Candidate{}, err
	}
	return app, job, candidate, nil
}

func (s *Service) UpdateApplication(ctx context.Context, id int64, patch ApplicationPatch) (Application, error) {
	return s.Store.UpdateApplication(ctx, id, patch)
}

func (s *Service) DeleteApplication(ctx context.Context, id int64) error {
	return s.Store.DeleteApplication(ctx, id)
}

func (s *Service) ListInterviews(ctx context.Context, filter InterviewFilter) ([]Interview, error) {
	return s.Store.ListInterviews(ctx, filter)
}

func (s *Service) GetInterview(ctx context.Context, id int64) (Interview, error) {
	return s.Store.GetInterview(ctx, id)
}

func (s *Service) CreateInterview(ctx context.Context, in InterviewInput) (Interview, error) {
	in.Status = defaultString(in.Status, InterviewStatusScheduled)
	if in.DurationMinutes <= 0 {
		in.DurationMinutes = 60
	}
	return s.Store.CreateInterview(ctx, in)
}

func (s *Service) UpdateInterview(ctx context.Context, id int64, patch InterviewPatch) (Interview, error) {
	return s.Store.UpdateInterview(ctx, id, patch)
}

func (s *Service) DeleteInterview(ctx context.Context, id int64) error {
	return s.Store.DeleteInterview(ctx, id)
}

func JobBrief(job Job) ai.JobBrief {
	return ai.JobBrief{
		Title:            job.Title,
		Department:       job.Department,
		Location:         job.Location,
		EmploymentType:   job.EmploymentType,
		WorkLocation:     job.WorkLocation,
		ExperienceLevel:  job.ExperienceLevel,
		Description:      job.Description,
		Requirements:     job.Requirements,
		Responsibilities: job.Responsibilities,
		SalaryMin:        job.SalaryMin,
		SalaryMax:        job.SalaryMax,
	}
}

func CandidateBrief(c Candidate) ai.CandidateBrief {
	brief := ai.CandidateBrief{
		Name:            c.FullName(),
		CurrentPosition: deref(c.CurrentPosition),
		Experience:      deref(c.Experience),
		Skills:          c.Skills,
	}
	for _, e := range c.Education {
		brief.Education = append(brief.Education, ai.Education(e))
	}
	return brief
}

func referenceError(kind string, id int64, err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("%s %d: %w", kind, id, db.ErrInvalidReference)
	}
	return err
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
