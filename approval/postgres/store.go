package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/marcelsud/approval-bridge/approval"
)

/*
PostgreSQL implementation of approval.Store

Consumption is a single DELETE ... RETURNING statement, so two callbacks
racing on the same id cannot both get the row back.
*/

const schema = `
	CREATE TABLE IF NOT EXISTS approval_requests (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		channel TEXT NOT NULL,
		fields JSONB NOT NULL,
		payload JSONB NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)
`

type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to PostgreSQL and makes sure the schema exists
func NewStore(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the approval_requests table if needed
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating approval_requests table: %w", err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, request approval.Request) error {
	fields, err := json.Marshal(request.Fields)
	if err != nil {
		return fmt.Errorf("marshaling fields: %w", err)
	}
	payload, err := json.Marshal(request.Payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	query := `INSERT INTO approval_requests (id, type, title, channel, fields, payload, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (id) DO NOTHING`

	tag, err := s.pool.Exec(ctx, query,
		request.ID,
		request.Type,
		request.Title,
		request.Channel,
		fields,
		payload,
		approval.Pending.String(),
		request.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting approval request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", approval.ErrDuplicateKey, request.ID)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (approval.Request, error) {
	query := `SELECT id, type, title, channel, fields, payload, status, created_at
	          FROM approval_requests WHERE id = $1`

	request, err := scan(s.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return approval.Request{}, fmt.Errorf("%w: %s", approval.ErrNotFound, id)
	}
	if err != nil {
		return approval.Request{}, fmt.Errorf("selecting approval request: %w", err)
	}
	return request, nil
}

// Consume deletes the row and hands back what it held
func (s *Store) Consume(ctx context.Context, id string) (approval.Request, error) {
	query := `DELETE FROM approval_requests WHERE id = $1
	          RETURNING id, type, title, channel, fields, payload, status, created_at`

	request, err := scan(s.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return approval.Request{}, fmt.Errorf("%w: %s", approval.ErrNotFound, id)
	}
	if err != nil {
		return approval.Request{}, fmt.Errorf("consuming approval request: %w", err)
	}
	request.Status = approval.Consumed
	return request, nil
}

// PendingByType counts the requests awaiting a decision per approval type
func (s *Store) PendingByType(ctx context.Context) (map[string]int64, error) {
	rows, err := s.pool.Query(ctx, "SELECT type, COUNT(*) FROM approval_requests GROUP BY type")
	if err != nil {
		return nil, fmt.Errorf("counting approval requests: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			approvalType string
			count        int64
		)
		if err := rows.Scan(&approvalType, &count); err != nil {
			return nil, fmt.Errorf("scanning approval count: %w", err)
		}
		counts[approvalType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating approval counts: %w", err)
	}
	return counts, nil
}

func (s *Store) Close(ctx context.Context) error {
	s.pool.Close()
	return nil
}

func scan(row pgx.Row) (approval.Request, error) {
	var (
		r       approval.Request
		fields  []byte
		payload []byte
		status  string
	)
	err := row.Scan(&r.ID, &r.Type, &r.Title, &r.Channel, &fields, &payload, &status, &r.CreatedAt)
	if err != nil {
		return approval.Request{}, err
	}
	if err := json.Unmarshal(fields, &r.Fields); err != nil {
		return approval.Request{}, fmt.Errorf("unmarshaling fields: %w", err)
	}
	if err := json.Unmarshal(payload, &r.Payload); err != nil {
		return approval.Request{}, fmt.Errorf("unmarshaling payload: %w", err)
	}
	r.Status = approval.NewStatus(status)
	return r, nil
}
