package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Scraper is the inbound collaborator: it supplies raw tabular rows for a
// hashtag, or fails the whole invocation. No partial dataset is returned.
type Scraper interface {
	ScrapeHashtag(ctx context.Context, hashtag string, limit int) ([]map[string]any, error)
}

// ErrNoToken is returned before any network call when the API token is empty.
var ErrNoToken = errors.New("apify: missing API token")

// HTTPClient runs the TikTok scraper actor synchronously and returns its
// dataset items. One POST per scrape with a fixed transport timeout; a
// transport error, auth failure or non-2xx status surfaces immediately.
// There is no retry: scrape credits are paid per run.
type HTTPClient struct {
	baseURL    string
	token      string
	actor      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewHTTPClient(token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    "https://api.apify.com",
		token:      token,
		actor:      "clockworks~tiktok-scraper",
		httpClient: &http.Client{Timeout: 120 * time.Second},
		// Actor runs are slow and billed; one concurrent run is plenty.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

// WithBaseURL overrides the API host, for tests.
func (c *HTTPClient) WithBaseURL(u string) *HTTPClient { c.baseURL = u; return c }

// WithActor overrides the actor identifier.
func (c *HTTPClient) WithActor(a string) *HTTPClient { c.actor = a; return c }

// WithTimeout overrides the transport timeout.
func (c *HTTPClient) WithTimeout(d time.Duration) *HTTPClient {
	c.httpClient.Timeout = d
	return c
}

// ScrapeHashtag runs the actor for one hashtag and flattens the returned
// dataset items into dotted-key rows for the cleaner.
func (c *HTTPClient) ScrapeHashtag(ctx context.Context, hashtag string, limit int) ([]map[string]any, error) {
	if c.token == "" {
		return nil, ErrNoToken
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"hashtags":               []string{hashtag},
		"resultsPerPage":         limit,
		"shouldDownloadVideos":   false,
		"shouldDownloadCovers":   false,
		"shouldDownloadComments": false,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v2/acts/%s/run-sync-get-dataset-items?token=%s",
		c.baseURL, url.PathEscape(c.actor), url.QueryEscape(c.token))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apify: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("apify: authentication failed (status %d)", resp.StatusCode)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("apify: status %d", resp.StatusCode)
	}

	var items []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("apify: decoding dataset items: %w", err)
	}
	rows := make([]map[string]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, Flatten(it))
	}
	return rows, nil
}

// Flatten turns nested objects into a single-level row with dotted keys,
// the tabular shape the cleaner's column contract expects
// (authorMeta.name, videoMeta.duration). Arrays are kept as values.
func Flatten(item map[string]any) map[string]any {
	out := make(map[string]any, len(item))
	flattenInto(out, "", item)
	return out
}

func flattenInto(dst map[string]any, prefix string, m map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flattenInto(dst, key, nested)
			continue
		}
		dst[key] = v
	}
}
