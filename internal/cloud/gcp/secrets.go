// Package gcp resolves store credentials from GCP Secret Manager.
package gcp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

// SecretFetcher defines the interface for fetching secrets
type SecretFetcher interface {
	FetchSecret(ctx context.Context, secretPath string) (string, error)
	Close() error
}

// SecretManagerClient wraps the GCP Secret Manager client
type SecretManagerClient struct {
	client    *secretmanager.Client
	projectID string
	timeout   time.Duration
}

// NewSecretManagerClient creates a new Secret Manager client. projectID is
// used for bare secret names; when empty it is taken from the environment or
// the metadata server.
func NewSecretManagerClient(ctx context.Context, projectID string, opts ...option.ClientOption) (*SecretManagerClient, error) {
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret manager client: %w", err)
	}

	if projectID == "" {
		projectID, err = getProjectID(ctx)
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to get project ID: %w", err)
		}
	}

	return &SecretManagerClient{
		client:    client,
		projectID: projectID,
		timeout:   10 * time.Second,
	}, nil
}

// getProjectID retrieves the GCP project ID from environment variable or metadata server
func getProjectID(ctx context.Context) (string, error) {
	for _, key := range []string{"GOOGLE_CLOUD_PROJECT", "GCP_PROJECT", "GCLOUD_PROJECT"} {
		if projectID := os.Getenv(key); projectID != "" {
			return projectID, nil
		}
	}
	return getProjectIDFromMetadata(ctx, metadataProjectURL)
}

const metadataProjectURL = "http://metadata.google.internal/computeMetadata/v1/project/project-id"

// getProjectIDFromMetadata fetches the project ID from the GCP metadata server
func getProjectIDFromMetadata(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create metadata request: %w", err)
	}
	req.Header.Set("Metadata-Flavor", "Google")

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch project ID from metadata server: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("metadata server returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read metadata response: %w", err)
	}

	projectID := strings.TrimSpace(string(body))
	if projectID == "" {
		return "", fmt.Errorf("empty project ID from metadata server")
	}
	return projectID, nil
}

// FetchSecret retrieves a secret from GCP Secret Manager
// secretPath can be in one of the following formats:
// - projects/PROJECT_ID/secrets/SECRET_NAME/versions/VERSION
// - projects/PROJECT_ID/secrets/SECRET_NAME (defaults to latest)
// - SECRET_NAME (uses the client's project)
func (c *SecretManagerClient) FetchSecret(ctx context.Context, secretPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: normalizeSecretPath(c.projectID, secretPath),
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret version: %w", err)
	}
	return strings.TrimRight(string(result.Payload.Data), "\r\n"), nil
}

// normalizeSecretPath expands secretPath to a full version resource name
func normalizeSecretPath(projectID, secretPath string) string {
	if strings.HasPrefix(secretPath, "projects/") && strings.Contains(secretPath, "/versions/") {
		return secretPath
	}
	if strings.HasPrefix(secretPath, "projects/") && strings.Contains(secretPath, "/secrets/") {
		return secretPath + "/versions/latest"
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, path.Base(secretPath))
}

// Close closes the Secret Manager client
func (c *SecretManagerClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// ResolvePassword returns the secret at secretPath when one is configured,
// and fallback otherwise.
func ResolvePassword(ctx context.Context, fetcher SecretFetcher, secretPath, fallback string) (string, error) {
	if secretPath == "" {
		return fallback, nil
	}
	if fetcher == nil {
		return "", fmt.Errorf("secret %s configured but no secret fetcher available", secretPath)
	}
	secret, err := fetcher.FetchSecret(ctx, secretPath)
	if err != nil {
		return "", fmt.Errorf("failed to fetch secret %s: %w", secretPath, err)
	}
	return secret, nil
}
