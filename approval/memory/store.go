package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/marcelsud/approval-bridge/approval"
)

// Store keeps pending requests in process memory
// Suitable for a single instance; use the redis or postgres store otherwise
type Store struct {
	mu       sync.Mutex
	requests map[string]approval.Request
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		requests: make(map[string]approval.Request),
	}
}

// Create stores a copy of the request
func (s *Store) Create(ctx context.Context, request approval.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.requests[request.ID]; exists {
		return fmt.Errorf("%w: %s", approval.ErrDuplicateKey, request.ID)
	}
	s.requests[request.ID] = clone(request)
	return nil
}

// Get returns a copy of a pending request
func (s *Store) Get(ctx context.Context, id string) (approval.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.requests[id]
	if !ok {
		return approval.Request{}, fmt.Errorf("%w: %s", approval.ErrNotFound, id)
	}
	return clone(request), nil
}

// Consume removes the request and returns it
func (s *Store) Consume(ctx context.Context, id string) (approval.Request, error) {
	s.mu.Lock()
	request, ok := s.requests[id]
	delete(s.requests, id)
	s.mu.Unlock()

	if !ok {
		return approval.Request{}, fmt.Errorf("%w: %s", approval.ErrNotFound, id)
	}
	request.Status = approval.Consumed
	return request, nil
}

// PendingByType counts stored requests per approval type
func (s *Store) PendingByType(ctx context.Context) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int64)
	for _, r := range s.requests {
		counts[r.Type]++
	}
	return counts, nil
}

// Close is a no-op
func (s *Store) Close(ctx context.Context) error {
	return nil
}

func clone(r approval.Request) approval.Request {
	r.Fields = slices.Clone(r.Fields)
	r.Payload = maps.Clone(r.Payload)
	return r
}
