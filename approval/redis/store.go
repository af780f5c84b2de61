package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/marcelsud/approval-bridge/approval"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of approval.Store
 * Each pending request is a single string key holding the JSON record
 * SET NX guards creation, GETDEL makes consumption a single atomic command
 */

const (
	keyPrefix = "approval" // Key naming: approval:{id}

	// KeyPattern matches every pending request key
	KeyPattern = keyPrefix + ":*"
)

// record is the JSON layout stored in Redis
type record struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Channel   string         `json:"channel"`
	Fields    []string       `json:"fields"`
	Payload   map[string]any `json:"payload"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a new Redis store
// A zero ttl keeps pending requests until they are consumed
func NewStore(addr, password string, db int, ttl time.Duration) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Store{
		client: client,
		ttl:    ttl,
	}, nil
}

// Create stores the request unless the key already exists
func (s *Store) Create(ctx context.Context, request approval.Request) error {
	data, err := json.Marshal(record{
		ID:        request.ID,
		Type:      request.Type,
		Title:     request.Title,
		Channel:   request.Channel,
		Fields:    request.Fields,
		Payload:   request.Payload,
		Status:    approval.Pending.String(),
		CreatedAt: request.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshaling approval request: %w", err)
	}

	created, err := s.client.SetNX(ctx, key(request.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("storing approval request: %w", err)
	}
	if !created {
		return fmt.Errorf("%w: %s", approval.ErrDuplicateKey, request.ID)
	}

	return nil
}

// Get reads a pending request without removing it
func (s *Store) Get(ctx context.Context, id string) (approval.Request, error) {
	data, err := s.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return approval.Request{}, fmt.Errorf("%w: %s", approval.ErrNotFound, id)
	}
	if err != nil {
		return approval.Request{}, fmt.Errorf("getting approval request: %w", err)
	}

	return decode(data)
}

// Consume reads and deletes a pending request with GETDEL
func (s *Store) Consume(ctx context.Context, id string) (approval.Request, error) {
	data, err := s.client.GetDel(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return approval.Request{}, fmt.Errorf("%w: %s", approval.ErrNotFound, id)
	}
	if err != nil {
		return approval.Request{}, fmt.Errorf("consuming approval request: %w", err)
	}

	request, err := decode(data)
	if err != nil {
		return approval.Request{}, err
	}
	request.Status = approval.Consumed
	return request, nil
}

// Close closes the Redis connection
func (s *Store) Close(ctx context.Context) error {
	return s.client.Close()
}

// GetClient returns the underlying Redis client for advanced operations
func (s *Store) GetClient() *redis.Client {
	return s.client
}

// Helper functions

func key(id string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, id)
}

func decode(data []byte) (approval.Request, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return approval.Request{}, fmt.Errorf("unmarshaling approval request: %w", err)
	}

	return approval.Request{
		ID:        r.ID,
		Type:      r.Type,
		Title:     r.Title,
		Channel:   r.Channel,
		Fields:    r.Fields,
		Payload:   r.Payload,
		Status:    approval.NewStatus(r.Status),
		CreatedAt: r.CreatedAt,
	}, nil
}
