package secrets

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

/* EnvProvider reads secrets from environment variables
 * slack-signing-secret is read from SLACK_SIGNING_SECRET, or PREFIX_SLACK_SIGNING_SECRET when a prefix is set
 * The project is ignored
 */
type EnvProvider struct {
	v *viper.Viper
}

// NewEnvProvider creates an EnvProvider with an optional variable prefix
func NewEnvProvider(prefix string) *EnvProvider {
	v := viper.New()
	if prefix != "" {
		v.SetEnvPrefix(prefix)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &EnvProvider{v: v}
}

func (p *EnvProvider) GetSecret(ctx context.Context, project, name string) (string, error) {
	value := p.v.GetString(name)
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return value, nil
}
