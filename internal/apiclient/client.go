// Package apiclient wraps the bookstore backend's REST endpoints.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/oauth2"

	apperrors "github.com/bookstore/bookstore-admin/internal/errors"
)

const (
	// DefaultBaseURL is the backend address used when none is configured.
	DefaultBaseURL = "http://localhost:5000/api"
	// DefaultTimeout bounds each request when no HTTP client is supplied.
	DefaultTimeout = 10 * time.Second

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 8 << 20
	defaultUserAgent = "bookstore-admin"
)

// Credentials supplies the bearer token and accepts credential rejections.
// session.Session implements it.
type Credentials interface {
	oauth2.TokenSource
	// Expire reports a 401 for token; it must be safe for concurrent use.
	Expire(ctx context.Context, token string) bool
}

// Options configures a Client.
type Options struct {
	BaseURL     string
	HTTPClient  *http.Client
	Credentials Credentials
	Logger      *slog.Logger
	UserAgent   string
	Timeout     time.Duration
}

// Client performs JSON requests against the backend and exposes one wrapper per resource.
type Client struct {
	base      *url.URL
	http      *http.Client
	creds     Credentials
	logger    *slog.Logger
	userAgent string

	Auth        *Auth
	Books       *Books
	Sales       *Sales
	Procurement *Procurement
	Finance     *Finance
	Users       *Users
}

// New constructs a Client. BaseURL must be absolute.
func New(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", raw)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc, err = newHTTPClient(opts.Timeout)
		if err != nil {
			return nil, err
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	c := &Client{
		base:      base,
		http:      hc,
		creds:     opts.Credentials,
		logger:    logger,
		userAgent: ua,
	}
	c.Auth = &Auth{c: c}
	c.Books = &Books{c: c}
	c.Sales = &Sales{c: c}
	c.Procurement = &Procurement{c: c}
	c.Finance = &Finance{c: c}
	c.Users = &Users{c: c}
	return c, nil
}

func newHTTPClient(timeout time.Duration) (*http.Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &http.Client{Timeout: timeout, Jar: jar}, nil
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string { return c.base.String() }

// call describes one round trip.
type call struct {
	method    string
	path      string
	query     url.Values
	body      any
	anonymous bool
	fallback  string
}

// do performs the call and returns the raw 2xx body.
// Every failure is an *apperrors.AppError; a 401 on an authenticated call expires the credential.
func (c *Client) do(ctx context.Context, in call) ([]byte, error) {
	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + in.path
	u.RawQuery = ""
	if len(in.query) > 0 {
		u.RawQuery = in.query.Encode()
	}

	var body io.Reader
	if in.body != nil {
		buf, err := json.Marshal(in.body)
		if err != nil {
			return nil, apperrors.Request("encode request body", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, in.method, u.String(), body)
	if err != nil {
		return nil, apperrors.Request("build request", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, reqID)
	if in.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	var sent string
	if !in.anonymous && c.creds != nil {
		if tok, tokErr := c.creds.Token(); tokErr == nil && tok.Valid() {
			tok.SetAuthHeader(req)
			sent = tok.AccessToken
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "api request failed",
			"method", in.method,
			"path", in.path,
			"request_id", reqID,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err)
		return nil, apperrors.FromTransport(err, in.fallback)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	c.logger.DebugContext(ctx, "api request",
		"method", in.method,
		"path", in.path,
		"status", resp.StatusCode,
		"request_id", reqID,
		"duration_ms", time.Since(start).Milliseconds())
	if err != nil {
		return nil, apperrors.FromTransport(err, in.fallback)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		appErr := apperrors.FromResponse(resp.StatusCode, raw, in.fallback)
		if resp.StatusCode == http.StatusUnauthorized && sent != "" {
			c.creds.Expire(ctx, sent)
		}
		return nil, appErr
	}
	return raw, nil
}

// doJSON performs the call and decodes the body into out.
func (c *Client) doJSON(ctx context.Context, in call, out any) error {
	raw, err := c.do(ctx, in)
	if err != nil {
		return err
	}
	return decode(raw, out)
}

func decode(raw []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDecode, "unreadable server response")
	}
	return nil
}

func idPath(prefix string, id int64) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}

func validation(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Validation(err.Error())
}
