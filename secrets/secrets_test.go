package secrets_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/marcelsud/approval-bridge/secrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	calls  atomic.Int32
	value  string
	err    error
	delay  time.Duration
	params chan [2]string
}

func (p *countingProvider) GetSecret(ctx context.Context, project, name string) (string, error) {
	p.calls.Add(1)
	if p.params != nil {
		p.params <- [2]string{project, name}
	}
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	return p.value, p.err
}

func TestCache(t *testing.T) {
	ctx := context.Background()

	t.Run("success - fetches once", func(t *testing.T) {
		provider := &countingProvider{value: "s3cret", params: make(chan [2]string, 1)}
		cache := secrets.NewCache(provider, "my-project")

		for i := 0; i < 3; i++ {
			value, err := cache.Get(ctx, "slack-token")
			require.NoError(t, err)
			assert.Equal(t, "s3cret", value)
		}

		assert.Equal(t, int32(1), provider.calls.Load())
		assert.Equal(t, [2]string{"my-project", "slack-token"}, <-provider.params)
	})

	t.Run("success - names are cached separately", func(t *testing.T) {
		provider := &countingProvider{value: "v"}
		cache := secrets.NewCache(provider, "")

		_, err := cache.Get(ctx, "a")
		require.NoError(t, err)
		_, err = cache.Get(ctx, "b")
		require.NoError(t, err)

		assert.Equal(t, int32(2), provider.calls.Load())
	})

	t.Run("error - failures are not cached", func(t *testing.T) {
		provider := &countingProvider{err: errors.New("unavailable")}
		cache := secrets.NewCache(provider, "")

		_, err := cache.Get(ctx, "slack-token")
		require.Error(t, err)

		provider.err = nil
		provider.value = "recovered"

		value, err := cache.Get(ctx, "slack-token")
		require.NoError(t, err)
		assert.Equal(t, "recovered", value)
		assert.Equal(t, int32(2), provider.calls.Load())
	})

	t.Run("success - concurrent callers share one fetch", func(t *testing.T) {
		provider := &countingProvider{value: "v", delay: 20 * time.Millisecond}
		cache := secrets.NewCache(provider, "")

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				value, err := cache.Get(ctx, "slack-token")
				assert.NoError(t, err)
				assert.Equal(t, "v", value)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), provider.calls.Load())
	})
}
