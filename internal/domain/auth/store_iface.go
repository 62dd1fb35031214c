package auth

import (
	"context"
	"time"
)

type StoreAPI interface {
	CreateUser(ctx context.Context, in NewUser) (User, error)
	CredentialsByEmail(ctx context.Context, email string) (Credentials, error)
	UserByID(ctx context.Context, id int64) (User, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]User, error)
	UpdateUser(ctx context.Context, id int64, patch UserPatch) (User, error)
	TouchLastLogin(ctx context.Context, id int64) error
	CreateSession(ctx context.Context, tokenHash string, userID int64, expiresAt time.Time) error
	SessionUser(ctx context.Context, tokenHash string) (User, error)
	DeleteSession(ctx context.Context, tokenHash string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}
