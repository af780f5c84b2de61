package secrets

import (
	"context"
	"errors"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// LatestVersion is the version alias read by GCPProvider
const LatestVersion = "latest"

// VersionAccessor is the part of the Secret Manager client GCPProvider uses
type VersionAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// GCPProvider reads secrets from Google Cloud Secret Manager
type GCPProvider struct {
	Client VersionAccessor

	closer func() error
}

// NewGCPProvider creates a Secret Manager client with application default credentials
func NewGCPProvider(ctx context.Context) (*GCPProvider, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating secret manager client: %w", err)
	}
	return &GCPProvider{Client: client, closer: client.Close}, nil
}

// VersionName builds the resource name of a secret version
func VersionName(project, name, version string) string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/%s", project, name, version)
}

func (p *GCPProvider) GetSecret(ctx context.Context, project, name string) (string, error) {
	if project == "" {
		return "", errors.New("gcp project is required")
	}

	resp, err := p.Client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: VersionName(project, name, LatestVersion),
	})
	if status.Code(err) == codes.NotFound {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("accessing secret version: %w", err)
	}

	return string(resp.GetPayload().GetData()), nil
}

// Close releases the underlying client
func (p *GCPProvider) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer()
}
