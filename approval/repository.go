package approval

import "context"

/* Small, focused interfaces following "The Go Way"
 * Interfaces abstract behavior, not things
 */

// Reader provides read-only access to pending requests
type Reader interface {
	Get(ctx context.Context, id string) (Request, error)
}

// Writer persists new pending requests
type Writer interface {
	/* Create stores the request under its ID
	 * Returns ErrDuplicateKey if the ID is already present
	 */
	Create(ctx context.Context, request Request) error
}

// Consumer removes pending requests
type Consumer interface {
	/* Consume fetches and deletes the request in one atomic step
	 * Only one of any number of concurrent callers gets the request,
	 * every other caller gets ErrNotFound
	 */
	Consume(ctx context.Context, id string) (Request, error)
}

// Store is the pending request store
type Store interface {
	Reader
	Writer
	Consumer
	Close(ctx context.Context) error
}
