package horoscopus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"horoscopus-web/internal/apperr"
	"horoscopus-web/internal/types"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultLimit = 6

// TokenSource supplies the bearer token for authenticated calls.
// An empty token means the request goes out with cookies only.
type TokenSource interface {
	Token() string
}

// Client talks to the Horoscopus REST API
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	logger     *slog.Logger
}

// NewClient creates an API client. Cookies set by the API are kept in a jar
// and sent back on later calls, matching a browser's credentials mode.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *slog.Logger) *Client {
	jar, _ := cookiejar.New(nil)
	return NewClientWithHTTPClient(baseURL, &http.Client{
		Timeout:   timeout,
		Jar:       jar,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}, tokens, logger)
}

func NewClientWithHTTPClient(baseURL string, httpClient *http.Client, tokens TokenSource, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		logger:     logger.With("component", "horoscopus-client"),
	}
}

// Search returns location suggestions in the server's relevance order.
// Any failure to complete the call is reported as a network error.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]types.LocationSuggestion, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	u, err := url.Parse(c.baseURL + pathLocationAutocomplete)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	c.logger.Debug("fetching location suggestions",
		"query", query,
		"limit", limit,
		"url", u.String(),
	)

	var suggestions []types.LocationSuggestion
	if err := c.do(ctx, http.MethodGet, u.String(), nil, &suggestions); err != nil {
		c.logger.Warn("location autocomplete failed",
			"query", query,
			"error", err,
		)
		return nil, apperr.Network("location autocomplete failed", err)
	}

	c.logger.Debug("fetched location suggestions",
		"query", query,
		"count", len(suggestions),
	)

	return suggestions, nil
}

// CreateProfile stores the onboarding birth data as a user profile
func (c *Client) CreateProfile(ctx context.Context, req ProfileRequest) (*ProfileResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}

	var resp ProfileResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+pathProfiles, body, &resp); err != nil {
		c.logger.Error("failed to create profile",
			"birth_location", req.BirthLocation,
			"error", err,
		)
		return nil, apperr.Network("profile request failed", err)
	}

	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, rawURL string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
