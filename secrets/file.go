package secrets

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

/* FileProvider serves secrets from a YAML file loaded once at startup
 *
 *	slack-signing-secret: 8f742231b10e8888abcd99yyyzzz85a5
 *	slack-token: xoxb-...
 *
 * The project is ignored
 */
type FileProvider struct {
	values map[string]string
}

// NewFileProvider loads the YAML file at path
func NewFileProvider(path string) (*FileProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading secrets file: %w", err)
	}

	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing secrets file: %w", err)
	}

	return &FileProvider{values: values}, nil
}

func (p *FileProvider) GetSecret(ctx context.Context, project, name string) (string, error) {
	value, ok := p.values[name]
	if !ok || value == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return value, nil
}
