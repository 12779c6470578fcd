// internal/infra/secret/secret_manager.go
package secretinfra

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

var ErrEmptyPayload = errors.New("secret: empty payload")

// Client は sm:// 参照を Secret Manager の最新（または指定）バージョンに解決する。
// config.SecretResolver を満たす。
type Client struct {
	sm        *secretmanager.Client
	projectID string
}

func NewClient(ctx context.Context, projectID string, opts ...option.ClientOption) (*Client, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, errors.New("secret: projectID is empty")
	}
	sm, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("secret: secretmanager.NewClient: %w", err)
	}
	return &Client{sm: sm, projectID: projectID}, nil
}

// Access は ref を解決して値を返す。
//
//   - "jwt-secret"                               → projects/<p>/secrets/jwt-secret/versions/latest
//   - "jwt-secret/versions/3"                    → projects/<p>/secrets/jwt-secret/versions/3
//   - "projects/x/secrets/jwt-secret/versions/1" → そのまま
func (c *Client) Access(ctx context.Context, ref string) (string, error) {
	if c == nil || c.sm == nil {
		return "", errors.New("secret: client is nil")
	}
	name, err := VersionName(c.projectID, ref)
	if err != nil {
		return "", err
	}
	resp, err := c.sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("secret: AccessSecretVersion(%s): %w", name, err)
	}
	if resp == nil || resp.Payload == nil || len(resp.Payload.Data) == 0 {
		return "", fmt.Errorf("%w (%s)", ErrEmptyPayload, name)
	}
	return strings.TrimSpace(string(resp.Payload.Data)), nil
}

func (c *Client) Close() error {
	if c == nil || c.sm == nil {
		return nil
	}
	return c.sm.Close()
}

// VersionName は ref を完全なリソース名に展開する。
func VersionName(projectID, ref string) (string, error) {
	ref = strings.Trim(strings.TrimSpace(ref), "/")
	if ref == "" {
		return "", errors.New("secret: reference is empty")
	}
	if strings.HasPrefix(ref, "projects/") {
		if !strings.Contains(ref, "/versions/") {
			ref += "/versions/latest"
		}
		return ref, nil
	}
	if strings.TrimSpace(projectID) == "" {
		return "", errors.New("secret: projectID is empty")
	}
	secretID, version, found := strings.Cut(ref, "/versions/")
	if !found || version == "" {
		version = "latest"
	}
	if secretID == "" || strings.Contains(secretID, "/") {
		return "", fmt.Errorf("secret: invalid reference %q", ref)
	}
	return "projects/" + projectID + "/secrets/" + secretID + "/versions/" + version, nil
}
