// Package memstore is an in-memory implementation of every domain StoreAPI,
// used by handler and router tests that run without Postgres.
package memstore

import (
	"slices"
	"sync"
	"time"

	"hrflow/internal/domain/activity"
	"hrflow/internal/domain/auth"
	"hrflow/internal/domain/dashboard"
	"hrflow/internal/domain/onboarding"
	"hrflow/internal/domain/performance"
	"hrflow/internal/domain/recruiting"
)

type session struct {
	userID    int64
	expiresAt time.Time
}

type Store struct {
	mu    sync.Mutex
	Now   func() time.Time
	fault error
	calls map[string]int
	seq   int64

	users     map[int64]auth.Credentials
	sessions  map[string]session
	jobs      map[int64]recruiting.Job
	templates map[int64]recruiting.JobTemplate
	cands     map[int64]recruiting.Candidate
	apps      map[int64]recruiting.Application
	views     map[int64]recruiting.Interview
	tasks     map[int64]onboarding.Task
	reviews   map[int64]performance.Review
	logs      []activity.Log
	runs      []dashboard.JobRun
}

func New() *Store {
	return &Store{
		Now:       time.Now,
		calls:     map[string]int{},
		users:     map[int64]auth.Credentials{},
		sessions:  map[string]session{},
		jobs:      map[int64]recruiting.Job{},
		templates: map[int64]recruiting.JobTemplate{},
		cands:     map[int64]recruiting.Candidate{},
		apps:      map[int64]recruiting.Application{},
		views:     map[int64]recruiting.Interview{},
		tasks:     map[int64]onboarding.Task{},
		reviews:   map[int64]performance.Review{},
	}
}

// Fail makes every subsequent data call return err. Session and activity
// calls are unaffected. Pass nil to clear.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fault = err
}

// Calls reports how many times method was invoked.
func (s *Store) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// ActivityEntries returns every recorded entry, oldest first.
func (s *Store) ActivityEntries() []activity.Log {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]activity.Log, len(s.logs))
	copy(out, s.logs)
	return out
}

// enter must be called with mu held.
func (s *Store) enter(method string) error {
	s.calls[method]++
	return s.fault
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *Store) now() time.Time {
	return s.Now().UTC()
}

func set[T any](dst *T, value *T) {
	if value != nil {
		*dst = *value
	}
}

func setPtr[T any](dst **T, value *T) {
	if value != nil {
		v := *value
		*dst = &v
	}
}

func cloneStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// sortedKeys returns ids ascending, or descending when desc is set. Ids are
// allocated in creation order, so this doubles as creation ordering.
func sortedKeys[V any](m map[int64]V, desc bool) []int64 {
	keys := make([]int64, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	slices.Sort(keys)
	if desc {
		slices.Reverse(keys)
	}
	return keys
}
