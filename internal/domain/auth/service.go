package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hrflow/internal/platform/db"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
)

type Service struct {
	Store  StoreAPI
	Secret string
	TTL    time.Duration
}

func NewService(store StoreAPI, secret string, ttl time.Duration) *Service {
	return &Service{Store: store, Secret: secret, TTL: ttl}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates the account and opens a session for it.
func (s *Service) Signup(ctx context.Context, in NewUser, password string) (User, Session, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return User{}, Session{}, fmt.Errorf("hash password: %w", err)
	}
	in.Email = NormalizeEmail(in.Email)
	in.PasswordHash = hash
	if in.Role == "" {
		in.Role = RoleEmployee
	}
	user, err := s.Store.CreateUser(ctx, in)
	if err != nil {
		return User{}, Session{}, err
	}
	session, err := s.openSession(ctx, user.ID)
	if err != nil {
		return User{}, Session{}, err
	}
	return user, session, nil
}

// Login never reveals whether the email exists: unknown, inactive, and
// wrong-password attempts all return ErrInvalidCredentials after a bcrypt
// comparison.
func (s *Service) Login(ctx context.Context, email, password string) (User, Session, error) {
	creds, err := s.Store.CredentialsByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			return User{}, Session{}, err
		}
		burnPasswordCheck(password)
		return User{}, Session{}, ErrInvalidCredentials
	}
	if err := CheckPassword(creds.PasswordHash, password); err != nil || !creds.User.Active {
		return User{}, Session{}, ErrInvalidCredentials
	}

	session, err := s.openSession(ctx, creds.User.ID)
	if err != nil {
		return User{}, Session{}, err
	}
	if err := s.Store.TouchLastLogin(ctx, creds.User.ID); err != nil {
		slog.Warn("update last_login failed", "userId", creds.User.ID, "err", err)
	}
	return creds.User, session, nil
}

func (s *Service) openSession(ctx context.Context, userID int64) (Session, error) {
	sessionID, err := NewSessionID()
	if err != nil {
		return Session{}, fmt.Errorf("session id: %w", err)
	}
	expires := time.Now().Add(s.TTL)
	if err := s.Store.CreateSession(ctx, HashToken(sessionID), userID, expires); err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}
	token, err := GenerateToken(s.Secret, Claims{UserID: userID, SessionID: sessionID}, s.TTL)
	if err != nil {
		return Session{}, fmt.Errorf("sign session: %w", err)
	}
	return Session{Token: token, ExpiresAt: expires}, nil
}

// Authenticate resolves a cookie value to its active user with a single
// store read.
func (s *Service) Authenticate(ctx context.Context, token string) (User, error) {
	claims, err := ParseToken(s.Secret, token)
	if err != nil || claims.SessionID == "" {
		return User{}, ErrUnauthenticated
	}
	user, err := s.Store.SessionUser(ctx, HashToken(claims.SessionID))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return User{}, ErrUnauthenticated
		}
		return User{}, err
	}
	if !user.Active || user.ID != claims.UserID {
		return User{}, ErrUnauthenticated
	}
	return user, nil
}

// Logout is best effort: an unparseable token has no server-side state.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := ParseToken(s.Secret, token)
	if err != nil || claims.SessionID == "" {
		return nil
	}
	return s.Store.DeleteSession(ctx, HashToken(claims.SessionID))
}

func (s *Service) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.Store.DeleteExpiredSessions(ctx)
}

func (s *Service) ListUsers(ctx context.Context, filter UserFilter) ([]User, error) {
	return s.Store.ListUsers(ctx, filter)
}

func (s *Service) GetUser(ctx context.Context, id int64) (User, error) {
	return s.Store.UserByID(ctx, id)
}

func (s *Service) UpdateUser(ctx context.Context, id int64, patch UserPatch) (User, error) {
	return s.Store.UpdateUser(ctx, id, patch)
}

// DeactivateUser is the only form of user deletion; sessions of the user
// stop authenticating on their next request.
func (s *Service) DeactivateUser(ctx context.Context, id int64) (User, error) {
	inactive := false
	return s.Store.UpdateUser(ctx, id, UserPatch{Active: &inactive})
}
