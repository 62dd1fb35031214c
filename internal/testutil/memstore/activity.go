package memstore

import (
	"context"
	"encoding/json"
	"time"

	"hrflow/internal/domain/activity"
	"hrflow/internal/domain/dashboard"
	"hrflow/internal/domain/recruiting"
	"hrflow/internal/platform/db"
	"hrflow/internal/platform/jobs"
)

var (
	_ activity.StoreAPI  = (*Store)(nil)
	_ dashboard.StoreAPI = (*Store)(nil)
	_ jobs.RunStore      = (*Store)(nil)
)

func (s *Store) Insert(_ context.Context, entry activity.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["Insert"]++
	log := activity.Log{
		ID:          s.nextID(),
		UserID:      entry.UserID,
		Action:      entry.Action,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		Description: entry.Description,
		CreatedAt:   s.now(),
	}
	if entry.Metadata != nil {
		raw, err := json.Marshal(entry.Metadata)
		if err != nil {
			return err
		}
		log.Metadata = raw
	}
	if entry.RequestID != "" {
		requestID := entry.RequestID
		log.RequestID = &requestID
	}
	s.logs = append(s.logs, log)
	return nil
}

func (s *Store) List(_ context.Context, filter activity.Filter) ([]activity.Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("List"); err != nil {
		return nil, err
	}
	out := []activity.Log{}
	for i := len(s.logs) - 1; i >= 0; i-- {
		log := s.logs[i]
		if filter.UserID > 0 && (log.UserID == nil || *log.UserID != filter.UserID) {
			continue
		}
		if filter.EntityType != "" && log.EntityType != filter.EntityType {
			continue
		}
		out = append(out, log)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (s *Store) OpenPositions(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("OpenPositions"); err != nil {
		return 0, err
	}
	n := 0
	for _, job := range s.jobs {
		if job.Status == recruiting.JobStatusActive {
			n++
		}
	}
	return n, nil
}

func (s *Store) ActiveCandidates(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ActiveCandidates"); err != nil {
		return 0, err
	}
	n := 0
	for _, c := range s.cands {
		if c.Status != recruiting.CandidateStatusHired && c.Status != recruiting.CandidateStatusRejected {
			n++
		}
	}
	return n, nil
}

func (s *Store) InterviewsBetween(_ context.Context, from, to time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("InterviewsBetween"); err != nil {
		return 0, err
	}
	n := 0
	for _, view := range s.views {
		if !view.ScheduledAt.Before(from) && view.ScheduledAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func (s *Store) HiredSince(_ context.Context, since time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("HiredSince"); err != nil {
		return 0, err
	}
	n := 0
	for _, c := range s.cands {
		if c.Status == recruiting.CandidateStatusHired && !c.UpdatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (s *Store) StartRun(_ context.Context, jobType string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	run := dashboard.JobRun{ID: s.nextID(), JobType: jobType, Status: jobs.StatusRunning, StartedAt: s.now()}
	s.runs = append(s.runs, run)
	return run.ID, nil
}

func (s *Store) FinishRun(_ context.Context, id int64, status string, details []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.runs {
		if s.runs[i].ID == id {
			now := s.now()
			s.runs[i].Status = status
			s.runs[i].Details = details
			s.runs[i].CompletedAt = &now
			return nil
		}
	}
	return db.ErrNotFound
}

func (s *Store) JobRuns(_ context.Context, jobType string, limit int) ([]dashboard.JobRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("JobRuns"); err != nil {
		return nil, err
	}
	out := []dashboard.JobRun{}
	for i := len(s.runs) - 1; i >= 0; i-- {
		if jobType != "" && s.runs[i].JobType != jobType {
			continue
		}
		out = append(out, s.runs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
