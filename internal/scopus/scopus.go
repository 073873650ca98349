// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scopus queries the Elsevier Scopus Search API: it builds query
// strings, paginates through results, and normalizes raw entries into
// Records. Each search is independent; no state is carried between calls.
package scopus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lmartins/bibliostat/internal/httputil"
	"github.com/lmartins/bibliostat/pkg/types"
)

// scopusSearchBase is the Scopus Search API endpoint. Declared as a var so
// tests can substitute an httptest server.
var scopusSearchBase = "https://api.elsevier.com/content/search/scopus"

const (
	defaultPageSize   = 25
	maxPageSize       = 200
	defaultMaxRecords = 200
	defaultTimeout    = 40 * time.Second
	defaultUserAgent  = "bibliostat/0.1"
)

// Client fetches paginated search results from Scopus. Page requests are
// issued sequentially, one in flight at a time.
type Client struct {
	httpClient *http.Client
	cfg        types.ScopusConfig
}

// NewClient validates the configuration and returns a ready client. A
// missing API key is rejected here, before any request is issued.
func NewClient(cfg types.ScopusConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.PageSize > maxPageSize {
		cfg.PageSize = maxPageSize
	}
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = defaultMaxRecords
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
	}, nil
}

// Search runs the full paginated fetch for q. It requests pages of
// cfg.PageSize records, advancing the offset until the declared total or
// cfg.MaxRecords is reached. Any page failure aborts the whole search; no
// partial results are returned.
func (c *Client) Search(ctx context.Context, q Query) (types.FetchOutput, error) {
	if q.IsEmpty() {
		return types.FetchOutput{}, fmt.Errorf("query is empty: provide a search expression")
	}
	expr := q.Build()

	var out types.FetchOutput
	seen := make(map[string]bool)
	consumed := 0
	limit := c.cfg.MaxRecords

	for start := 0; ; start += c.cfg.PageSize {
		page, err := c.fetchPage(ctx, expr, c.cfg.PageSize, start)
		if err != nil {
			return types.FetchOutput{}, err
		}

		if start == 0 {
			out.TotalMatches = page.total
			if page.total < limit {
				limit = page.total
			}
		}

		for _, e := range page.entries {
			if consumed >= limit {
				break
			}
			consumed++

			rec, ok := normalizeEntry(e)
			if !ok {
				out.Skipped++
				continue
			}
			if seen[rec.ID] {
				out.DupsRemoved++
				continue
			}
			seen[rec.ID] = true
			out.Records = append(out.Records, rec)
		}

		// An empty page before the limit means the API ran out early.
		if consumed >= limit || len(page.entries) == 0 {
			break
		}
	}

	return out, nil
}

// pageData holds one decoded page: the declared total and its raw entries.
type pageData struct {
	total   int
	entries []rawEntry
}

func (c *Client) fetchPage(ctx context.Context, query string, count, start int) (pageData, error) {
	params := url.Values{
		"query": {query},
		"count": {strconv.Itoa(count)},
		"start": {strconv.Itoa(start)},
	}
	reqURL := scopusSearchBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return pageData{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-ELS-APIKey", c.cfg.APIKey)
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.cfg.MaxRetries)
	if err != nil {
		if isTimeout(err) {
			return pageData{}, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return pageData{}, fmt.Errorf("Scopus API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return pageData{}, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return pageData{}, &StatusError{Code: resp.StatusCode}
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return pageData{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	total, _ := looseInt(sr.SearchResults.TotalResults)

	// Scopus signals an empty result set with a single error placeholder
	// entry; it is not a document and not counted as skipped.
	entries := sr.SearchResults.Entries[:0:0]
	for _, e := range sr.SearchResults.Entries {
		if e.Error != "" {
			continue
		}
		entries = append(entries, e)
	}

	return pageData{total: total, entries: entries}, nil
}

// isTimeout reports whether err was caused by a request deadline expiring.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// Scopus API JSON envelope. Numeric fields arrive as JSON strings, so they
// are held raw and parsed leniently.
type searchResponse struct {
	SearchResults searchResults `json:"search-results"`
}

type searchResults struct {
	TotalResults json.RawMessage `json:"opensearch:totalResults"`
	StartIndex   json.RawMessage `json:"opensearch:startIndex"`
	ItemsPerPage json.RawMessage `json:"opensearch:itemsPerPage"`
	Entries      []rawEntry      `json:"entry"`
}
