package activity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrflow/internal/platform/db"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Entry is a single mutation to be appended to the log. Action is a verb
// and entity pair such as "create_job".
type Entry struct {
	UserID      *int64
	Action      string
	EntityType  string
	EntityID    *int64
	Description string
	Metadata    map[string]any
	RequestID   string
}

type Log struct {
	ID          int64           `json:"id"`
	UserID      *int64          `json:"userId"`
	Action      string          `json:"action"`
	EntityType  string          `json:"entityType"`
	EntityID    *int64          `json:"entityId"`
	Description string          `json:"description"`
	Metadata    json.RawMessage `json:"metadata"`
	RequestID   *string         `json:"requestId"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type Filter struct {
	UserID     int64
	EntityType string
	Limit      int
}

type StoreAPI interface {
	Insert(ctx context.Context, entry Entry) error
	List(ctx context.Context, filter Filter) ([]Log, error)
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) Insert(ctx context.Context, entry Entry) error {
	var metadata []byte
	if entry.Metadata != nil {
		payload, err := json.Marshal(entry.Metadata)
		if err != nil {
			return err
		}
		metadata = payload
	}
	var requestID *string
	if entry.RequestID != "" {
		requestID = &entry.RequestID
	}
	_, err := s.DB.Exec(ctx, `
    INSERT INTO activity_logs (user_id, action, entity_type, entity_id, description, metadata, request_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, entry.UserID, entry.Action, entry.EntityType, entry.EntityID, entry.Description, metadata, requestID)
	return db.Classify(err)
}

func (s *Store) List(ctx context.Context, filter Filter) ([]Log, error) {
	var q db.Query
	if filter.UserID > 0 {
		q.Eq("user_id", filter.UserID)
	}
	if filter.EntityType != "" {
		q.Eq("entity_type", filter.EntityType)
	}
	query := "SELECT id, user_id, action, entity_type, entity_id, description, metadata, request_id, created_at FROM activity_logs" +
		q.WhereClause() + " ORDER BY created_at DESC, id DESC"
	query += q.LimitClause(filter.Limit)
	return db.Collect(ctx, s.DB, query, q.Args(), scanLog)
}

func scanLog(row pgx.Row) (Log, error) {
	var l Log
	var metadata []byte
	if err := row.Scan(&l.ID, &l.UserID, &l.Action, &l.EntityType, &l.EntityID, &l.Description, &metadata, &l.RequestID, &l.CreatedAt); err != nil {
		return Log{}, err
	}
	if len(metadata) > 0 {
		l.Metadata = json.RawMessage(metadata)
	}
	return l, nil
}

type Service struct {
	Store StoreAPI
}

func New(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) Record(ctx context.Context, entry Entry) error {
	return s.Store.Insert(ctx, entry)
}

// List returns the most recent entries first, applying the default limit and
// capping larger requests.
func (s *Service) List(ctx context.Context, filter Filter) ([]Log, error) {
	filter.Limit = NormalizeLimit(filter.Limit)
	return s.Store.List(ctx, filter)
}

func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
