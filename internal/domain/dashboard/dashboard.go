package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"hrflow/internal/platform/db"
)

const newHireWindow = 30 * 24 * time.Hour

type Stats struct {
	OpenPositions    int `json:"openPositions"`
	ActiveCandidates int `json:"activeCandidates"`
	InterviewsToday  int `json:"interviewsToday"`
	NewHires         int `json:"newHires"`
}

type JobRun struct {
	ID          int64           `json:"id"`
	JobType     string          `json:"jobType"`
	Status      string          `json:"status"`
	Details     json.RawMessage `json:"details"`
	StartedAt   time.Time       `json:"startedAt"`
	CompletedAt *time.Time      `json:"completedAt"`
}

type StoreAPI interface {
	OpenPositions(ctx context.Context) (int, error)
	ActiveCandidates(ctx context.Context) (int, error)
	InterviewsBetween(ctx context.Context, from, to time.Time) (int, error)
	HiredSince(ctx context.Context, since time.Time) (int, error)
	JobRuns(ctx context.Context, jobType string, limit int) ([]JobRun, error)
}

type Store struct {
	DB db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{DB: q}
}

func (s *Store) OpenPositions(ctx context.Context) (int, error) {
	var q db.Query
	q.Eq("status", "active")
	return db.Count(ctx, s.DB, "jobs", q)
}

func (s *Store) ActiveCandidates(ctx context.Context) (int, error) {
	var q db.Query
	q.Where("status NOT IN (" + q.Arg("hired") + ", " + q.Arg("rejected") + ")")
	return db.Count(ctx, s.DB, "candidates", q)
}

func (s *Store) InterviewsBetween(ctx context.Context, from, to time.Time) (int, error) {
	var q db.Query
	q.Range("scheduled_at", from, to)
	return db.Count(ctx, s.DB, "interviews", q)
}

func (s *Store) HiredSince(ctx context.Context, since time.Time) (int, error) {
	var q db.Query
	q.Eq("status", "hired")
	q.Where("updated_at >= " + q.Arg(since))
	return db.Count(ctx, s.DB, "candidates", q)
}

func (s *Store) JobRuns(ctx context.Context, jobType string, limit int) ([]JobRun, error) {
	var q db.Query
	if jobType != "" {
		q.Eq("job_type", jobType)
	}
	query := "SELECT id, job_type, status, details_json, started_at, completed_at FROM job_runs" +
		q.WhereClause() + " ORDER BY started_at DESC, id DESC"
	query += q.LimitClause(limit)
	return db.Collect(ctx, s.DB, query, q.Args(), func(row pgx.Row) (JobRun, error) {
		var run JobRun
		var details []byte
		if err := row.Scan(&run.ID, &run.JobType, &run.Status, &details, &run.StartedAt, &run.CompletedAt); err != nil {
			return JobRun{}, err
		}
		if len(details) > 0 {
			run.Details = json.RawMessage(details)
		}
		return run, nil
	})
}

type Service struct {
	Store StoreAPI
	Now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store, Now: time.Now}
}

// Stats runs the four counts concurrently. Any failed count fails the whole
// aggregate.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	now := s.Now()
	dayStart, dayEnd := db.DayRange(now)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.Store.OpenPositions(ctx)
		stats.OpenPositions = n
		return err
	})
	g.Go(func() error {
		n, err := s.Store.ActiveCandidates(ctx)
		stats.ActiveCandidates = n
		return err
	})
	g.Go(func() error {
		n, err := s.Store.InterviewsBetween(ctx, dayStart, dayEnd)
		stats.InterviewsToday = n
		return err
	})
	g.Go(func() error {
		n, err := s.Store.HiredSince(ctx, now.Add(-newHireWindow))
		stats.NewHires = n
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func (s *Service) JobRuns(ctx context.Context, jobType string, limit int) ([]JobRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Store.JobRuns(ctx, jobType, limit)
}
