// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for JSON APIs.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"
)

// ErrorBodyLimit is the number of characters of a failed response body kept
// for error messages.
const ErrorBodyLimit = 400

// PostJSON encodes payload as JSON and POSTs it to url with the given
// headers. Accept and Content-Type are set to application/json unless the
// caller overrides them. The request is sent once; there is no retry.
func PostJSON(ctx context.Context, client *http.Client, url string, header http.Header, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	if client == nil {
		client = http.DefaultClient
	}
	return client.Do(req)
}

// Snippet reads r to the end and returns at most limit characters of it.
// Read errors are ignored; whatever was read is returned.
func Snippet(r io.Reader, limit int) string {
	data, _ := io.ReadAll(r)
	return truncateRunes(string(data), limit)
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
