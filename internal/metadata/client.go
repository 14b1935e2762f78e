package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"unfurl/internal/httputil"
)

// Client talks to a metadata-extraction endpoint that accepts the target
// URL as a query parameter and answers with a JSON Raw payload.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a metadata client for the given endpoint.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http:     httputil.NewClient(timeout),
	}
}

// Fetch performs a single GET against the endpoint for the target URL.
// One outstanding request per call; no retry. A non-success status or a
// malformed body yields a *FetchError.
func (c *Client) Fetch(ctx context.Context, target string) (Raw, error) {
	fetchURL := fmt.Sprintf("%s?url=%s", c.endpoint, url.QueryEscape(target))

	body, status, err := httputil.GetJSON(ctx, c.http, fetchURL)
	if err != nil {
		return Raw{}, &FetchError{Target: target, Status: status, Err: err}
	}
	if status < 200 || status > 299 {
		return Raw{}, &FetchError{Target: target, Status: status}
	}

	var raw Raw
	if err := json.Unmarshal(body, &raw); err != nil {
		return Raw{}, &FetchError{Target: target, Status: status, Err: fmt.Errorf("decoding payload: %w", err)}
	}

	return raw, nil
}
