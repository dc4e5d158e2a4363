// Package api implements the REST client for the WastePay PSP API.
package api

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
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// TokenSource supplies bearer credentials and accepts rotated pairs. The
// session store implements it; the client never persists tokens itself.
type TokenSource interface {
	AccessToken() string
	RefreshToken() string
	UpdateTokens(access, refresh string) error
}

// Options configures the Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second, client-side throttle
	Logger    *slog.Logger
}

// Client is the PSP API client with tuned HTTP transport.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a PSP API client.
func New(opts Options, tokens TokenSource) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	rps := opts.RateLimit
	if rps <= 0 {
		rps = 10
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http: &http.Client{
			Transport: transport,
		},
		tokens:  tokens,
		limiter: rate.NewLimiter(rate.Limit(rps), int(rps)),
		timeout: timeout,
		logger:  logger,
	}
}

// get performs an authenticated GET and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, true)
}

// post performs an authenticated POST and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, true)
}

// postPublic performs an unauthenticated POST (login, refresh).
func (c *Client) postPublic(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, false)
}

// do sends one request, transparently refreshing the token pair and retrying
// once on a 401 when a refresh token is available.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, authed bool) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}

	err := c.send(ctx, method, path, query, payload, out, authed)
	if !errors.Is(err, ErrUnauthorized) || !authed || c.tokens.RefreshToken() == "" {
		return err
	}

	// Access token rejected but we hold a refresh token: rotate and retry once.
	if rerr := c.refreshTokens(ctx); rerr != nil {
		c.logger.Debug("token refresh failed", "error", rerr)
		return ErrUnauthorized
	}
	return c.send(ctx, method, path, query, payload, out, authed)
}

// RefreshSession forces a token rotation using the stored refresh token.
func (c *Client) RefreshSession(ctx context.Context) error {
	if c.tokens.RefreshToken() == "" {
		return ErrUnauthorized
	}
	return c.refreshTokens(ctx)
}

// refreshTokens exchanges the refresh token for a new pair and commits both
// through the token source in one call.
func (c *Client) refreshTokens(ctx context.Context) error {
	var resp struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	body := map[string]string{"refreshToken": c.tokens.RefreshToken()}
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, body, &resp, false); err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return fmt.Errorf("refresh response missing access token")
	}
	return c.tokens.UpdateTokens(resp.AccessToken, resp.RefreshToken)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload []byte, out any, authed bool) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token := c.tokens.AccessToken()
		if token == "" {
			return ErrUnauthorized
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode >= 400 {
		return c.mapError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// mapError converts an error response into the client error taxonomy. Bad
// credentials and deactivated accounts get distinct errors so commands can
// show distinct messages.
func (c *Client) mapError(resp *http.Response) error {
	var body errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if body.Code == "INVALID_CREDENTIALS" {
			return ErrBadCredentials
		}
		return ErrUnauthorized
	case http.StatusForbidden:
		if body.Code == "ACCOUNT_INACTIVE" {
			return ErrAccountInactive
		}
		return ErrForbidden
	default:
		if resp.StatusCode >= 500 {
			return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Code: body.Code, Message: body.text()}
	}
}
