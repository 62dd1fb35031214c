package memstore

import (
	"context"
	"time"

	"hrflow/internal/domain/auth"
	"hrflow/internal/platform/db"
)

var _ auth.StoreAPI = (*Store)(nil)

func (s *Store) CreateUser(_ context.Context, in auth.NewUser) (auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["CreateUser"]++
	for _, existing := range s.users {
		if existing.User.Email == in.Email {
			return auth.User{}, db.ErrDuplicate
		}
	}
	now := s.now()
	user := auth.User{
		ID:         s.nextID(),
		Email:      in.Email,
		Name:       in.Name,
		Role:       in.Role,
		Department: in.Department,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.users[user.ID] = auth.Credentials{User: user, PasswordHash: in.PasswordHash}
	return user, nil
}

func (s *Store) CredentialsByEmail(_ context.Context, email string) (auth.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["CredentialsByEmail"]++
	for _, creds := range s.users {
		if creds.User.Email == email {
			return creds, nil
		}
	}
	return auth.Credentials{}, db.ErrNotFound
}

func (s *Store) UserByID(_ context.Context, id int64) (auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["UserByID"]++
	creds, ok := s.users[id]
	if !ok {
		return auth.User{}, db.ErrNotFound
	}
	return creds.User, nil
}

func (s *Store) ListUsers(_ context.Context, filter auth.UserFilter) ([]auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["ListUsers"]++
	out := []auth.User{}
	for _, id := range sortedKeys(s.users, false) {
		user := s.users[id].User
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if filter.Department != "" && (user.Department == nil || *user.Department != filter.Department) {
			continue
		}
		if filter.Active != nil && user.Active != *filter.Active {
			continue
		}
		out = append(out, user)
	}
	return out, nil
}

func (s *Store) UpdateUser(_ context.Context, id int64, patch auth.UserPatch) (auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["UpdateUser"]++
	creds, ok := s.users[id]
	if !ok {
		return auth.User{}, db.ErrNotFound
	}
	set(&creds.User.Name, patch.Name)
	setPtr(&creds.User.Department, patch.Department)
	set(&creds.User.Role, patch.Role)
	set(&creds.User.Active, patch.Active)
	creds.User.UpdatedAt = s.now()
	s.users[id] = creds
	return creds.User, nil
}

func (s *Store) TouchLastLogin(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	creds, ok := s.users[id]
	if !ok {
		return db.ErrNotFound
	}
	now := s.now()
	creds.User.LastLoginAt = &now
	s.users[id] = creds
	return nil
}

func (s *Store) CreateSession(_ context.Context, tokenHash string, userID int64, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return db.ErrInvalidReference
	}
	s.sessions[tokenHash] = session{userID: userID, expiresAt: expiresAt}
	return nil
}

func (s *Store) SessionUser(_ context.Context, tokenHash string) (auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["SessionUser"]++
	sess, ok := s.sessions[tokenHash]
	if !ok || !sess.expiresAt.After(s.now()) {
		return auth.User{}, db.ErrNotFound
	}
	creds, ok := s.users[sess.userID]
	if !ok {
		return auth.User{}, db.ErrNotFound
	}
	return creds.User, nil
}

func (s *Store) DeleteSession(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, tokenHash)
	return nil
}

func (s *Store) DeleteExpiredSessions(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	now := s.now()
	for hash, sess := range s.sessions {
		if !sess.expiresAt.After(now) {
			delete(s.sessions, hash)
			n++
		}
	}
	return n, nil
}
