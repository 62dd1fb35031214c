package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"
)

type memoryRuns struct {
	mu       sync.Mutex
	started  []string
	finished map[int64]string
	details  map[int64][]byte
	done     chan string
}

func newMemoryRuns() *memoryRuns {
	return &memoryRuns{finished: map[int64]string{}, details: map[int64][]byte{}}
}

func (m *memoryRuns) StartRun(_ context.Context, jobType string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = append(m.started, jobType)
	return int64(len(m.started)), nil
}

func (m *memoryRuns) FinishRun(_ context.Context, id int64, status string, details []byte) error {
	m.mu.Lock()
	m.finished[id] = status
	m.details[id] = details
	m.mu.Unlock()
	if m.done != nil {
		m.done <- status
	}
	return nil
}

type overdue struct{ n int64 }

func (o overdue) MarkOverdue(context.Context) (int64, error) { return o.n, nil }

type sessions struct{ err error }

func (s sessions) PurgeExpiredSessions(context.Context) (int64, error) { return 0, s.err }

func TestRunNowRecordsRun(t *testing.T) {
	runs := newMemoryRuns()
	svc := New(runs, nil, nil, 0)
	details, err := svc.RunNow(context.Background(), JobOnboardingOverdue, func(context.Context) (any, error) {
		return map[string]any{"markedOverdue": 3}, nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if details == nil {
		t.Fatal("expected details")
	}
	if runs.finished[1] != StatusCompleted {
		t.Fatalf("expected completed run, got %q", runs.finished[1])
	}
	var decoded map[string]int
	if err := json.Unmarshal(runs.details[1], &decoded); err != nil || decoded["markedOverdue"] != 3 {
		t.Fatalf("unexpected details %s", runs.details[1])
	}
}

func TestRunNowRecordsFailure(t *testing.T) {
	runs := newMemoryRuns()
	svc := New(runs, nil, nil, 0)
	_, err := svc.RunNow(context.Background(), JobSessionCleanup, func(context.Context) (any, error) {
		return nil, errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if runs.finished[1] != StatusFailed {
		t.Fatalf("expected failed run, got %q", runs.finished[1])
	}
}

func TestWorkerDrainsMaintenanceJobs(t *testing.T) {
	runs := newMemoryRuns()
	runs.done = make(chan string, 2)
	svc := New(runs, overdue{n: 2}, sessions{errors.New("db down")}, 0)
	svc.EnqueueMaintenance()
	if len(svc.queue) != 2 {
		t.Fatalf("expected two queued jobs, got %d", len(svc.queue))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)

	var statuses []string
	for len(statuses) < 2 {
		select {
		case status := <-runs.done:
			statuses = append(statuses, status)
		case <-time.After(2 * time.Second):
			t.Fatal("maintenance jobs were not processed")
		}
	}
	if statuses[0] != StatusCompleted || statuses[1] != StatusFailed {
		t.Fatalf("unexpected statuses %v", statuses)
	}

	runs.mu.Lock()
	defer runs.mu.Unlock()
	if runs.started[0] != JobOnboardingOverdue || runs.started[1] != JobSessionCleanup {
		t.Fatalf("unexpected job order %v", runs.started)
	}
}

func TestEnqueueReportsFullQueue(t *testing.T) {
	svc := New(nil, nil, nil, 0)
	for i := 0; i < cap(svc.queue); i++ {
		if !svc.Enqueue(JobSessionCleanup, func(context.Context) (any, error) { return nil, nil }) {
			t.Fatalf("enqueue %d unexpectedly rejected", i)
		}
	}
	if svc.Enqueue(JobSessionCleanup, func(context.Context) (any, error) { return nil, nil }) {
		t.Fatal("expected a full queue to reject the job")
	}
}
