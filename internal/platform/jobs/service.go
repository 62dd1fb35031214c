package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"hrflow/internal/platform/db"
)

const (
	JobOnboardingOverdue = "onboarding_overdue"
	JobSessionCleanup    = "session_cleanup"

	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// RunStore records each job execution.
type RunStore interface {
	StartRun(ctx context.Context, jobType string) (int64, error)
	FinishRun(ctx context.Context, id int64, status string, details []byte) error
}

type OverdueMarker interface {
	MarkOverdue(ctx context.Context) (int64, error)
}

type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

type Service struct {
	Runs       RunStore
	Onboarding OverdueMarker
	Sessions   SessionPurger
	Interval   time.Duration
	queue      chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(runs RunStore, onboarding OverdueMarker, sessions SessionPurger, interval time.Duration) *Service {
	return &Service{
		Runs:       runs,
		Onboarding: onboarding,
		Sessions:   sessions,
		Interval:   interval,
		queue:      make(chan job, 128),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Interval > 0 {
		go s.schedule(ctx, s.Interval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) bool {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
		return true
	default:
		slog.Warn("job queue full", "jobType", jobType)
		return false
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

// EnqueueMaintenance queues one run of every maintenance job.
func (s *Service) EnqueueMaintenance() {
	if s.Onboarding != nil {
		s.Enqueue(JobOnboardingOverdue, func(ctx context.Context) (any, error) {
			n, err := s.Onboarding.MarkOverdue(ctx)
			return map[string]any{"markedOverdue": n}, err
		})
	}
	if s.Sessions != nil {
		s.Enqueue(JobSessionCleanup, func(ctx context.Context) (any, error) {
			n, err := s.Sessions.PurgeExpiredSessions(ctx)
			return map[string]any{"deleted": n}, err
		})
	}
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	var runID int64
	if s.Runs != nil {
		id, err := s.Runs.StartRun(ctx, j.Type)
		if err != nil {
			slog.Warn("job run insert failed", "jobType", j.Type, "err", err)
		}
		runID = id
	}

	details, err := j.Run(ctx)
	status := StatusCompleted
	if err != nil {
		status = StatusFailed
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != 0 {
		if updErr := s.Runs.FinishRun(ctx, runID, status, detailsJSON); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

func (s *Service) schedule(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.EnqueueMaintenance()
		}
	}
}

type PoolRuns struct {
	DB db.Querier
}

func NewPoolRuns(q db.Querier) *PoolRuns {
	return &PoolRuns{DB: q}
}

func (p *PoolRuns) StartRun(ctx context.Context, jobType string) (int64, error) {
	var id int64
	err := p.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1,$2)
    RETURNING id
  `, jobType, StatusRunning).Scan(&id)
	return id, err
}

func (p *PoolRuns) FinishRun(ctx context.Context, id int64, status string, details []byte) error {
	_, err := p.DB.Exec(ctx, `
    UPDATE job_runs
    SET status = $1, details_json = $2, completed_at = now()
    WHERE id = $3
  `, status, details, id)
	return err
}
