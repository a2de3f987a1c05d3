// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package uspto is a client for the USPTO Open Data Portal patent
// applications search endpoint.
package uspto

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/pdiddy/uspto-lookup/internal/httputil"
	"github.com/pdiddy/uspto-lookup/internal/record"
)

// DefaultEndpoint is the patent applications search URL.
const DefaultEndpoint = "https://api.uspto.gov/api/v1/patent/applications/search"

// ErrNotFound is returned for HTTP 404, which the API uses for "no match".
var ErrNotFound = errors.New("USPTO API returned HTTP 404")

// HTTPError is a non-404, non-2xx response. Body holds at most
// httputil.ErrorBodyLimit characters of the response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d - %s", e.StatusCode, e.Body)
}

// Query is one filtered search: a single value matched against Field.
type Query struct {
	APIKey string
	Field  string
	Value  string
}

// Page is a decoded 2xx response.
type Page struct {
	// Body is the raw response document.
	Body gjson.Result

	// Records are the results found by record.ExtractFrom.
	Records []gjson.Result

	// Count is the top-level "count" when it is a number; HasCount tells
	// whether it was present.
	Count    int
	HasCount bool
}

// Client posts search requests. The zero value is usable.
type Client struct {
	HTTP      *http.Client
	Endpoint  string
	UserAgent string
	Log       *zap.SugaredLogger
}

// Search runs one filtered query. A 404 yields ErrNotFound, any other
// non-2xx status an *HTTPError.
func (c *Client) Search(ctx context.Context, q Query) (*Page, error) {
	log := c.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	header := http.Header{}
	header.Set("x-api-key", q.APIKey)
	if c.UserAgent != "" {
		header.Set("User-Agent", c.UserAgent)
	}

	log.Debugw("searching", "field", q.Field, "value", q.Value)
	resp, err := httputil.PostJSON(ctx, c.HTTP, endpoint, header, NewSearchRequest(q.Field, q.Value))
	if err != nil {
		return nil, fmt.Errorf("USPTO API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		log.Debugw("no match", "value", q.Value, "status", resp.StatusCode)
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		herr := &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       httputil.Snippet(resp.Body, httputil.ErrorBodyLimit),
		}
		log.Warnw("search failed", "value", q.Value, "status", resp.StatusCode)
		return nil, herr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading USPTO response: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parsing USPTO response: invalid JSON")
	}

	root := gjson.ParseBytes(data)
	page := &Page{Body: root, Records: record.ExtractFrom(root)}
	if cnt := root.Get("count"); cnt.Type == gjson.Number {
		page.Count = int(cnt.Int())
		page.HasCount = true
	}
	log.Debugw("search done", "value", q.Value, "records", len(page.Records), "count", page.Count)
	return page, nil
}
