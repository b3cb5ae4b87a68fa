// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves remote reference examples: directory listings
// from the contents API and raw file bodies. Every failure is returned as a
// *Error that matches ErrRemoteUnavailable; callers degrade the affected
// example instead of aborting.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/example-docs/internal/httputil"
	"github.com/pdiddy/example-docs/pkg/types"
)

// ErrRemoteUnavailable is matched by every error this package returns.
var ErrRemoteUnavailable = errors.New("remote content unavailable")

// Reason classifies why a fetch failed.
type Reason string

const (
	ReasonTransport Reason = "transport"
	ReasonStatus    Reason = "status"
	ReasonDecode    Reason = "decode"
)

// Error is the failure side of a fetch: which operation, which URL, and why.
type Error struct {
	Op         string
	URL        string
	Reason     Reason
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Reason == ReasonStatus {
		return fmt.Sprintf("%s %s: HTTP %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.URL, e.Reason, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes every *Error match ErrRemoteUnavailable.
func (e *Error) Is(target error) bool { return target == ErrRemoteUnavailable }

// listingEntry is one element of a contents API directory listing.
type listingEntry struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Client fetches from the remote content service. It is a thin adapter over
// an *http.Client: one request per call, no caching, no retry.
type Client struct {
	http *http.Client
	cfg  types.RemoteConfig
	log  *zap.Logger
}

// NewClient creates a Client. A nil logger disables debug tracing.
func NewClient(client *http.Client, cfg types.RemoteConfig, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{http: client, cfg: cfg, log: log}
}

// ListExamples returns the stems of the example files in a remote directory
// listing: entries of type "file" with the configured extension whose name
// does not start with the exclusion prefix.
func (c *Client) ListExamples(ctx context.Context, directoryURL string) ([]string, error) {
	body, err := c.get(ctx, "list", directoryURL)
	if err != nil {
		return nil, err
	}

	var entries []listingEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, &Error{Op: "list", URL: directoryURL, Reason: ReasonDecode, Err: err}
	}

	var names []string
	for _, e := range entries {
		if e.Type != "file" || !strings.HasSuffix(e.Name, c.cfg.Extension) {
			continue
		}
		if c.cfg.ExcludePrefix != "" && strings.HasPrefix(e.Name, c.cfg.ExcludePrefix) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name, c.cfg.Extension))
	}
	return names, nil
}

// FetchRaw returns the raw text at fileURL.
func (c *Client) FetchRaw(ctx context.Context, fileURL string) (string, error) {
	body, err := c.get(ctx, "fetch", fileURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchExample returns the remote example named stem from the configured
// raw examples directory.
func (c *Client) FetchExample(ctx context.Context, stem string) (string, error) {
	return c.FetchRaw(ctx, strings.TrimSuffix(c.cfg.RawExamplesURL, "/")+"/"+stem+c.cfg.Extension)
}

// FetchByCoordinates returns the file at path in owner/repo at commit.
func (c *Client) FetchByCoordinates(ctx context.Context, owner, repo, commit, path string) (string, error) {
	return c.FetchRaw(ctx, RawURL(c.cfg.RawBaseURL, owner, repo, commit, path))
}

// RawURL joins raw-content coordinates onto base.
func RawURL(base, owner, repo, commit, path string) string {
	return strings.Join([]string{strings.TrimSuffix(base, "/"), owner, repo, commit, path}, "/")
}

// header builds the request headers for op. Listings ask for the contents
// API's JSON media type.
func (c *Client) header(op string) http.Header {
	h := http.Header{}
	if c.cfg.UserAgent != "" {
		h.Set("User-Agent", c.cfg.UserAgent)
	}
	if op == "list" {
		h.Set("Accept", "application/vnd.github+json")
	}
	return h
}

func (c *Client) get(ctx context.Context, op, url string) ([]byte, error) {
	start := time.Now()
	body, err := httputil.Get(ctx, c.http, url, c.header(op))
	if err != nil {
		var se *httputil.StatusError
		if errors.As(err, &se) {
			c.log.Debug("remote request rejected",
				zap.String("op", op), zap.String("url", url), zap.Int("status", se.StatusCode))
			return nil, &Error{Op: op, URL: url, Reason: ReasonStatus, StatusCode: se.StatusCode, Err: err}
		}
		c.log.Debug("remote request failed",
			zap.String("op", op), zap.String("url", url), zap.Error(err))
		return nil, &Error{Op: op, URL: url, Reason: ReasonTransport, Err: err}
	}
	c.log.Debug("remote request",
		zap.String("op", op), zap.String("url", url),
		zap.Int("bytes", len(body)), zap.Duration("elapsed", time.Since(start)))
	return body, nil
}
