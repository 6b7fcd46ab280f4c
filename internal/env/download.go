package env

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	// downloadAttempts bounds retries for transient network failures.
	downloadAttempts = 3
	downloadTimeout  = 5 * time.Minute
	userAgent        = "bunenv/1.0 (+https://github.com/bunenv/bunenv)"
)

// Downloader performs HTTP downloads with bounded retries. TLS and
// authentication behavior are fixed at construction from the resolved
// configuration; nothing is read from process-global state.
type Downloader struct {
	client   *http.Client
	token    string
	attempts int
}

// NewDownloader creates a downloader. token, when non-empty, is sent as
// a GitHub authorization header; insecureTLS disables certificate
// verification for downloads.
func NewDownloader(token string, insecureTLS bool) *Downloader {
	client := &http.Client{
		Timeout: downloadTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}
	if insecureTLS {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 -- explicit --ignore_ssl_certs opt-in
		}
	}
	return &Downloader{
		client:   client,
		token:    token,
		attempts: downloadAttempts,
	}
}

// DownloadToFile downloads url to destPath, retrying transient failures
// with exponential backoff (1s, 2s) up to the attempt bound. The write
// is atomic: content goes to a temp file that is renamed into place.
func (d *Downloader) DownloadToFile(ctx context.Context, url, destPath string) error {
	var lastErr error
	attemptsUsed := 0

	for attempt := 1; attempt <= d.attempts; attempt++ {
		attemptsUsed = attempt
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if attempt > 1 {
			backoff := time.Duration(1<<uint(attempt-2)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := d.downloadOnce(ctx, url, destPath)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return ctx.Err()
		}
		// Deterministic HTTP errors will not improve on retry.
		if isPermanent(err) {
			break
		}
	}

	return &DownloadError{URL: url, Attempts: attemptsUsed, Err: lastErr}
}

// FetchOptional retrieves url into memory. A 404 is not an error: it
// reports found=false so that optional release artifacts (checksums,
// signatures) can be skipped.
func (d *Downloader) FetchOptional(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := d.newRequest(ctx, url)
	if err != nil {
		return nil, false, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", url, err)
	}
	return body, true, nil
}

func (d *Downloader) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if d.token != "" {
		req.Header.Set("Authorization", "token "+d.token)
	}
	return req, nil
}

// permanentError marks HTTP failures that retrying cannot fix.
type permanentError struct {
	status int
	url    string
}

func (e *permanentError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.status, e.url)
}

func isPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

func (d *Downloader) downloadOnce(ctx context.Context, url, destPath string) error {
	req, err := d.newRequest(ctx, url)
	if err != nil {
		return err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return &permanentError{status: resp.StatusCode, url: url}
		}
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	tmpPath := destPath + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return fmt.Errorf("copy response body: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	cleanupNeeded = false
	return nil
}
