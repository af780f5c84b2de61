package metrics

import (
	"context"
	"time"
)

// Snapshot represents the current state of the pending request store.
type Snapshot struct {
	// PendingByType maps approval type to the number of requests awaiting a decision
	PendingByType map[string]int64 `json:"pending_by_type"`

	// Timestamp when the snapshot was taken
	Timestamp time.Time `json:"timestamp"`
}

// Total returns the number of pending requests across all types
func (s Snapshot) Total() int64 {
	var total int64
	for _, n := range s.PendingByType {
		total += n
	}
	return total
}

// Collector reads pending request counts from a store backend.
// The memory and postgres stores implement it directly.
type Collector interface {
	// PendingByType returns the number of pending requests per approval type
	PendingByType(ctx context.Context) (map[string]int64, error)
}

// Collect takes a Snapshot from a collector
func Collect(ctx context.Context, c Collector) (Snapshot, error) {
	counts, err := c.PendingByType(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{PendingByType: counts, Timestamp: time.Now()}, nil
}

// Rejection reasons reported by RecordRejected
const (
	ReasonContentType  = "content_type"
	ReasonSignature    = "signature"
	ReasonMalformed    = "malformed"
	ReasonConsumed     = "unknown_or_consumed"
	ReasonUnauthorized = "unauthorized"
)
