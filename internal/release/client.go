// Package release fetches the Bun release catalog from the GitHub
// Releases API and knows the naming scheme of Bun's release artifacts.
package release

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

const (
	defaultAPIURL = "https://api.github.com/repos/oven-sh/bun/releases"
	// DefaultDownloadBase is the release asset host; --mirror replaces
	// only this base, the path structure after it is fixed.
	DefaultDownloadBase = "https://github.com/oven-sh/bun/releases/download"

	tagPrefix      = "bun-v"
	defaultTimeout = 30 * time.Second
	userAgent      = "bunenv/1.0 (+https://github.com/bunenv/bunenv)"
)

// Client fetches the ordered list of available Bun versions.
type Client struct {
	apiURL     string
	httpClient *http.Client
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithAPIURL overrides the releases API endpoint (used by tests and mirrors).
func WithAPIURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.apiURL = url
		}
	}
}

// WithToken sets a GitHub API token to avoid rate limits.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithInsecureTLS disables TLS certificate verification. This is
// threaded from the resolved configuration rather than read from
// process-global state.
func WithInsecureTLS(insecure bool) Option {
	return func(c *Client) {
		if insecure {
			c.httpClient.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 -- explicit --ignore_ssl_certs opt-in
			}
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// NewClient creates a release catalog client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		apiURL:     defaultAPIURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchVersions returns all available Bun versions, newest first.
// Tags that do not follow the bun-v prefix or do not parse as semantic
// versions are skipped. The catalog is fetched once per invocation and
// not persisted.
func (c *Client) FetchVersions(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch release catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch release catalog: unexpected status %d from %s", resp.StatusCode, c.apiURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}

	return parseCatalog(body)
}

// githubRelease is the subset of the GitHub release record we consume.
type githubRelease struct {
	TagName string `json:"tag_name"`
}

// parseCatalog extracts bun-v tagged versions and sorts them descending.
func parseCatalog(data []byte) ([]string, error) {
	var releases []githubRelease
	if err := json.Unmarshal(data, &releases); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	parsed := make([]*semver.Version, 0, len(releases))
	for _, rel := range releases {
		if !strings.HasPrefix(rel.TagName, tagPrefix) {
			continue
		}
		v, err := semver.NewVersion(strings.TrimPrefix(rel.TagName, tagPrefix))
		if err != nil {
			continue
		}
		parsed = append(parsed, v)
	}

	sort.Sort(sort.Reverse(semver.Collection(parsed)))

	versions := make([]string, len(parsed))
	for i, v := range parsed {
		versions[i] = v.Original()
	}
	return versions, nil
}
