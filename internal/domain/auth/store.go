package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrflow/internal/platform/db"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

const userColumns = "id, email, name, role, department, active, last_login_at, created_at, updated_at"

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Department, &u.Active, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	return u, db.Classify(err)
}

func (s *Store) CreateUser(ctx context.Context, in NewUser) (User, error) {
	return scanUser(s.DB.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, name, role, department)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING `+userColumns, in.Email, in.PasswordHash, in.Name, in.Role, in.Department))
}

func (s *Store) CredentialsByEmail(ctx context.Context, email string) (Credentials, error) {
	var c Credentials
	u := &c.User
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, name, role, department, active, last_login_at, created_at, updated_at, password_hash
    FROM users
    WHERE email = $1
  `, email).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Department, &u.Active, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt, &c.PasswordHash)
	return c, db.Classify(err)
}

func (s *Store) UserByID(ctx context.Context, id int64) (User, error) {
	return scanUser(s.DB.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

func (s *Store) ListUsers(ctx context.Context, filter UserFilter) ([]User, error) {
	var q db.Query
	if filter.Role != "" {
		q.Eq("role", filter.Role)
	}
	if filter.Department != "" {
		q.Eq("department", filter.Department)
	}
	if filter.Active != nil {
		q.Eq("active", *filter.Active)
	}
	rows, err := s.DB.Query(ctx, "SELECT "+userColumns+" FROM users"+q.WhereClause()+" ORDER BY name", q.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) UpdateUser(ctx context.Context, id int64, patch UserPatch) (User, error) {
	var a db.Assignments
	db.SetIf(&a, "name", patch.Name)
	db.SetIf(&a, "department", patch.Department)
	db.SetIf(&a, "role", patch.Role)
	db.SetIf(&a, "active", patch.Active)
	query, args := a.Update("users", id, userColumns)
	return scanUser(s.DB.QueryRow(ctx, query, args...))
}

func (s *Store) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login_at = now() WHERE id = $1", id)
	return err
}

func (s *Store) CreateSession(ctx context.Context, tokenHash string, userID int64, expiresAt time.Time) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO sessions (token_hash, user_id, expires_at)
    VALUES ($1,$2,$3)
  `, tokenHash, userID, expiresAt)
	return db.Classify(err)
}

func (s *Store) SessionUser(ctx context.Context, tokenHash string) (User, error) {
	return scanUser(s.DB.QueryRow(ctx, `
    SELECT u.id, u.email, u.name, u.role, u.department, u.active, u.last_login_at, u.created_at, u.updated_at
    FROM sessions s
    JOIN users u ON u.id = s.user_id
    WHERE s.token_hash = $1 AND s.expires_at > now()
  `, tokenHash))
}

func (s *Store) DeleteSession(ctx context.Context, tokenHash string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM sessions WHERE token_hash = $1", tokenHash)
	return err
}

func (s *Store) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM sessions WHERE expires_at <= now()")
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
