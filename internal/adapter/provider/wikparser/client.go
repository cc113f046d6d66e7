// Package wikparser is the HTTP adapter for the structured dictionary
// source: a wiktionary-parser service that returns a JSON array of
// pre-parsed entries for a word.
package wikparser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yiddishlab/wordlist/internal/domain"
	"github.com/yiddishlab/wordlist/internal/provider"
)

const defaultBaseURL = "http://localhost:5000/api/v1/entries"

// Client fetches raw entries from the wiktionary-parser service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client for the given base URL. An empty baseURL falls
// back to the default local service address.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "wikparser"),
	}
}

// Fetch retrieves the raw entry list for word in the given language, with
// the named relations included. Returns domain.ErrNotFound on HTTP 404.
func (c *Client) Fetch(ctx context.Context, word, language string, relations []string) ([]provider.RawEntry, error) {
	query := url.Values{}
	query.Set("lang", language)
	if len(relations) > 0 {
		query.Set("relations", strings.Join(relations, ","))
	}
	reqURL := c.baseURL + "/" + url.PathEscape(word) + "?" + query.Encode()

	c.log.DebugContext(ctx, "wikparser request", slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("wikparser: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.doWithRetry(ctx, req, word)
	if err != nil {
		c.log.ErrorContext(ctx, "wikparser request failed",
			slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("wikparser: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("wikparser: %q: %w", word, domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikparser: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("wikparser: read body: %w", err)
	}

	var entries []provider.RawEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("wikparser: decode json: %w", err)
	}

	c.log.DebugContext(ctx, "wikparser response",
		slog.String("word", word),
		slog.Int("entries", len(entries)),
	)

	return entries, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, word string) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "wikparser retry", slog.String("word", word), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	return c.httpClient.Do(req)
}
