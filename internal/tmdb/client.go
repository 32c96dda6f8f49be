package tmdb

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

// Searcher defines the catalog search used by the selection store.
// This interface is implemented by *Client and can be replaced in tests.
type Searcher interface {
	SearchMovies(ctx context.Context, query string) ([]Movie, error)
}

// Ensure Client implements Searcher at compile time.
var _ Searcher = (*Client)(nil)

// ErrMissingAPIKey is returned by NewClient when no API key is configured.
var ErrMissingAPIKey = errors.New("tmdb api key is not configured")

// Client talks to the TMDB v3 HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	apiKey    string
	language  string
	userAgent string
}

// Options configure a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL    string
	APIKey     string
	Language   string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
}

// StatusError reports a non-2xx response from the API.
type StatusError struct {
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.StatusCode)
}

const (
	DefaultBaseURL   = "https://api.themoviedb.org/3"
	DefaultLanguage  = "en-US"
	defaultUserAgent = "marquee/0.1"
	requestTimeout   = 10 * time.Second
	searchPage       = "1"
	maxErrorBody     = 64 << 10
)

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = requestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	language := strings.TrimSpace(opts.Language)
	if language == "" {
		language = DefaultLanguage
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		baseURL:   base,
		http:      httpClient,
		apiKey:    apiKey,
		language:  language,
		userAgent: userAgent,
	}, nil
}

// SearchMovies runs a free-text movie search and returns the first page of
// results.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]Movie, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query is empty")
	}

	values := url.Values{}
	values.Set("api_key", c.apiKey)
	values.Set("query", query)
	values.Set("language", c.language)
	values.Set("page", searchPage)
	values.Set("include_adult", "false")

	var payload SearchResponse
	if err := c.get(ctx, []string{"search", "movie"}, values, &payload); err != nil {
		return nil, err
	}
	if payload.Results == nil {
		return []Movie{}, nil
	}
	return payload.Results, nil
}

func (c *Client) get(ctx context.Context, segments []string, values url.Values, dest any) error {
	reqURL := c.baseURL.JoinPath(segments...)
	reqURL.RawQuery = values.Encode()
	path := "/" + strings.Join(segments, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", redactKey(err, c.apiKey))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{Path: path, StatusCode: resp.StatusCode}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil {
			statusErr.Message = strings.TrimSpace(apiErr.StatusMessage)
		}
		return statusErr
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// redactKey strips the api key from transport errors, which embed the full
// request URL.
func redactKey(err error, apiKey string) error {
	var urlErr *url.Error
	if apiKey == "" || !errors.As(err, &urlErr) {
		return err
	}
	redacted := *urlErr
	redacted.URL = strings.ReplaceAll(urlErr.URL, apiKey, "REDACTED")
	return &redacted
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base_url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
