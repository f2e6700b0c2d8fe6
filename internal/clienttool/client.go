// Package clienttool implements the auto-update lookup against the
// client-tool release endpoint. Given a tool name and platform, the
// service reports the latest (or a pinned) release of that tool and where
// to download it from.
package clienttool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the default HTTP request timeout for lookups
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is the User-Agent header sent with requests
	DefaultUserAgent = "vsts-cli"
)

// ErrReleaseNotFound indicates the service has no release matching the
// requested tool, platform, and version.
var ErrReleaseNotFound = errors.New("no matching release found")

// Release describes a downloadable build of a client tool.
type Release struct {
	// Name is the tool name, e.g. "ArtifactTool"
	Name string `json:"name"`
	// Rid is the runtime identifier, e.g. "win-x64" or "linux-x64"
	Rid string `json:"rid"`
	// Version is the release version, e.g. "1.2.3"
	Version string `json:"version"`
	// URI is the archive download location
	URI string `json:"uri"`
}

// Client looks up client-tool releases.
//
// GetRelease returns ErrReleaseNotFound (possibly wrapped) when the
// service has no release for the requested platform; any other error is a
// transport or protocol failure. An empty version requests the latest
// release.
type Client interface {
	GetRelease(ctx context.Context, toolName, osName, arch, version string) (*Release, error)
}

// RESTClient implements Client against the client-tool REST endpoint.
type RESTClient struct {
	instance   string
	httpClient *http.Client
	userAgent  string
}

// NewRESTClient creates a lookup client for a service instance, e.g.
// "https://fabrikam.visualstudio.com".
func NewRESTClient(instance string) *RESTClient {
	return &RESTClient{
		instance: strings.TrimRight(instance, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent: DefaultUserAgent,
	}
}

// GetRelease fetches the release descriptor for a tool.
// Endpoint shape: {instance}/_apis/clienttools/{tool}/release?osName=&arch=&version=
func (c *RESTClient) GetRelease(ctx context.Context, toolName, osName, arch, version string) (*Release, error) {
	if c.instance == "" {
		return nil, fmt.Errorf("service instance is required")
	}

	query := url.Values{}
	query.Set("osName", osName)
	query.Set("arch", arch)
	if version != "" {
		query.Set("version", version)
	}

	endpoint := fmt.Sprintf("%s/_apis/clienttools/%s/release?%s",
		c.instance, url.PathEscape(toolName), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent:
		if version != "" {
			return nil, fmt.Errorf("%s %s/%s %s: %w", toolName, osName, arch, version, ErrReleaseNotFound)
		}
		return nil, fmt.Errorf("%s %s/%s: %w", toolName, osName, arch, ErrReleaseNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, fmt.Errorf("decode release descriptor: %w", err)
	}

	// A 200 with an empty descriptor means the service matched nothing
	if release.URI == "" {
		return nil, fmt.Errorf("%s %s/%s: empty descriptor: %w", toolName, osName, arch, ErrReleaseNotFound)
	}

	return &release, nil
}
