package secrets

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned when a provider has no value for a secret
var ErrNotFound = errors.New("secret not found")

// Provider fetches a secret by name from a backing store
type Provider interface {
	GetSecret(ctx context.Context, project, name string) (string, error)
}

/* Cache resolves each secret once per process
 * A failed fetch is not remembered, the next Get tries again
 * Values are never refreshed
 */
type Cache struct {
	Provider Provider
	Project  string

	mu     sync.Mutex
	values map[string]string
	locks  map[string]*sync.Mutex
}

// NewCache creates a Cache in front of a provider
func NewCache(provider Provider, project string) *Cache {
	return &Cache{
		Provider: provider,
		Project:  project,
		values:   make(map[string]string),
		locks:    make(map[string]*sync.Mutex),
	}
}

// Get returns the cached value or fetches it
// Concurrent callers for the same name share one fetch
func (c *Cache) Get(ctx context.Context, name string) (string, error) {
	c.mu.Lock()
	if value, ok := c.values[name]; ok {
		c.mu.Unlock()
		return value, nil
	}
	lock, ok := c.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[name] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	// Another caller may have filled it while we waited
	c.mu.Lock()
	value, ok := c.values[name]
	c.mu.Unlock()
	if ok {
		return value, nil
	}

	value, err := c.Provider.GetSecret(ctx, c.Project, name)
	if err != nil {
		return "", fmt.Errorf("fetching secret %s: %w", name, err)
	}

	c.mu.Lock()
	c.values[name] = value
	c.mu.Unlock()

	return value, nil
}
