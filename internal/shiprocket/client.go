// Package shiprocket wraps the Shiprocket external REST API: authentication,
// order listing, AWB assignment, label generation, and wallet queries.
// It is a thin pass-through client; the label sorting pipeline never calls
// the network and interacts with this package only by convention.
package shiprocket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// DefaultBaseURL is the production Shiprocket external API root.
const DefaultBaseURL = "https://apiv2.shiprocket.in/v1/external"

const (
	// tokenValidity is how long an issued token is treated as usable.
	// Shiprocket tokens last 10 days; a day is shaved off for safety.
	tokenValidity = 9 * 24 * time.Hour

	// expiryBuffer triggers re-authentication ahead of actual expiry.
	expiryBuffer = time.Hour
)

// ErrNoCredentials is returned when the client is constructed without an
// email/password pair.
var ErrNoCredentials = errors.New("shiprocket credentials not provided")

// Session is an authenticated API session. It is always explicit: every
// call checks expiry and re-authenticates through the client's credentials
// rather than relying on ambient state.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Valid reports whether the session token can still be used, leaving the
// refresh buffer before real expiry.
func (s Session) Valid(now time.Time) bool {
	if s.Token == "" {
		return false
	}
	return now.Before(s.ExpiresAt.Add(-expiryBuffer))
}

// Config holds client construction parameters.
type Config struct {
	// Email and Password are the Shiprocket account credentials.
	Email    string
	Password string
	// BaseURL overrides the API root, mainly for tests.
	BaseURL string
	// RateDelay is the pause between sequential calls in bulk operations.
	// Zero disables the delay.
	RateDelay time.Duration
	// Logger defaults to slog.Default.
	Logger *slog.Logger
	// HTTPClient defaults to a client with a 30s timeout.
	HTTPClient *http.Client
}

// Client is a Shiprocket API client. It is safe for concurrent use; the
// session is guarded and refreshed at most once per expiry.
type Client struct {
	baseURL    string
	email      string
	password   string
	rateDelay  time.Duration
	httpClient *http.Client
	logger     *slog.Logger

	mu      sync.Mutex
	session Session

	// now and sleep are swappable for tests.
	now   func() time.Time
	sleep func(time.Duration)
}

// New creates a Shiprocket client. Credentials are required up front so
// that misconfiguration surfaces at startup, not on the first call.
func New(cfg Config) (*Client, error) {
	if cfg.Email == "" || cfg.Password == "" {
		return nil, ErrNoCredentials
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		email:      cfg.Email,
		password:   cfg.Password,
		rateDelay:  cfg.RateDelay,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
		now:        time.Now,
		sleep:      time.Sleep,
	}, nil
}

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// Authenticate logs in and stores the session. Most callers never need
// this directly; every API call refreshes the session as needed.
func (c *Client) Authenticate(ctx context.Context) (Session, error) {
	var resp authResponse
	if err := c.post(ctx, "/auth/login", authRequest{Email: c.email, Password: c.password}, &resp, false); err != nil {
		return Session{}, fmt.Errorf("authentication failed: %w", err)
	}
	if resp.Token == "" {
		return Session{}, errors.New("authentication succeeded but no token returned")
	}

	session := Session{Token: resp.Token, ExpiresAt: c.now().Add(tokenValidity)}

	c.mu.Lock()
	c.session = session
	c.mu.Unlock()

	c.logger.Info("shiprocket session established", "email", resp.Email, "expires_at", session.ExpiresAt)
	return session, nil
}

// CurrentSession returns the stored session, which may be expired or empty.
func (c *Client) CurrentSession() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// ensureSession returns a usable token, re-authenticating when the stored
// session is missing or inside the expiry buffer.
func (c *Client) ensureSession(ctx context.Context) (string, error) {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()

	if session.Valid(c.now()) {
		return session.Token, nil
	}

	session, err := c.Authenticate(ctx)
	if err != nil {
		return "", err
	}
	return session.Token, nil
}

// get performs an authenticated GET and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, result, true)
}

// post performs a POST with a JSON body. Authentication is skipped for the
// login call itself.
func (c *Client) post(ctx context.Context, path string, body, result any, auth bool) error {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, result, auth)
}

func (c *Client) do(req *http.Request, result any, auth bool) error {
	req.Header.Set("Content-Type", "application/json")
	if auth {
		token, err := c.ensureSession(req.Context())
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// APIError is an HTTP-level failure from the Shiprocket API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("shiprocket API error (status %d): %s", e.StatusCode, body)
}
