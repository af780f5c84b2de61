package secrets

import (
	"context"
	"fmt"
)

// Backend names accepted by Open
const (
	BackendEnv  = "env"
	BackendFile = "file"
	BackendGCP  = "gcp"
)

// Options selects and configures a provider
type Options struct {
	Backend   string
	File      string
	EnvPrefix string
}

// Open creates the provider named by opts.Backend
// The returned close function is never nil
func Open(ctx context.Context, opts Options) (Provider, func() error, error) {
	noop := func() error { return nil }

	switch opts.Backend {
	case BackendEnv, "":
		return NewEnvProvider(opts.EnvPrefix), noop, nil
	case BackendFile:
		p, err := NewFileProvider(opts.File)
		if err != nil {
			return nil, noop, err
		}
		return p, noop, nil
	case BackendGCP:
		p, err := NewGCPProvider(ctx)
		if err != nil {
			return nil, noop, err
		}
		return p, p.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown secrets backend: %q", opts.Backend)
	}
}
