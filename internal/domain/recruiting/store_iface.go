package recruiting

import "context"

type StoreAPI interface {
	ListJobs(ctx context.Context, filter JobFilter) ([]Job, error)
	GetJob(ctx context.Context, id int64) (Job, error)
	CreateJob(ctx context.Context, in JobInput) (Job, error)
	UpdateJob(ctx context.Context, id int64, patch JobPatch) (Job, error)
	DeleteJob(ctx context.Context, id int64) error

	ListJobTemplates(ctx context.Context, filter JobTemplateFilter) ([]JobTemplate, error)
	GetJobTemplate(ctx context.Context, id int64) (JobTemplate, error)
	CreateJobTemplate(ctx context.Context, in JobTemplateInput) (JobTemplate, error)
	UpdateJobTemplate(ctx context.Context, id int64, patch JobTemplatePatch) (JobTemplate, error)
	DeleteJobTemplate(ctx context.Context, id int64) error

	ListCandidates(ctx context.Context, filter CandidateFilter) ([]Candidate, error)
	GetCandidate(ctx context.Context, id int64) (Candidate, error)
	CreateCandidate(ctx context.Context, in CandidateInput) (Candidate, error)
	UpdateCandidate(ctx context.Context, id int64, patch CandidatePatch) (Candidate, error)
	DeleteCandidate(ctx context.Context, id int64) error

	ListApplications(ctx context.Context, filter ApplicationFilter) ([]Application, error)
	GetApplication(ctx context.Context, id int64) (Application, error)
	CreateApplication(ctx context.Context, in ApplicationInput) (Application, error)
	UpdateApplication(ctx context.Context, id int64, patch ApplicationPatch) (Application, error)
	DeleteApplication(ctx context.Context, id int64) error

	ListInterviews(ctx context.Context, filter InterviewFilter) ([]Interview, error)
	GetInterview(ctx context.Context, id int64) (Interview, error)
	CreateInterview(ctx context.Context, in InterviewInput) (Interview, error)
	UpdateInterview(ctx context.Context, id int64, patch InterviewPatch) (Interview, error)
	DeleteInterview(ctx context.Context, id int64) error
}
