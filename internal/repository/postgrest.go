package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	xhttp "CryptoIntel/pkg/http"
)

// PostgRESTClient talks to a PostgREST (Supabase) REST endpoint with a service key.
type PostgRESTClient struct {
	baseURL string
	key     string
	client  *xhttp.Client
}

func NewPostgRESTClient(baseURL, key string, timeout time.Duration) *PostgRESTClient {
	return &PostgRESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (c *PostgRESTClient) headers(write bool) map[string]string {
	h := map[string]string{
		"Authorization": "Bearer " + c.key,
		"apikey":        c.key,
	}
	if write {
		h["Content-Type"] = "application/json"
		h["Prefer"] = "return=representation"
	}
	return h
}

func (c *PostgRESTClient) do(ctx context.Context, method, table string, query map[string][]string, body, dest interface{}) error {
	return c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      method,
		URL:         c.baseURL + "/rest/v1/" + table,
		Headers:     c.headers(method != xhttp.MethodGet),
		QueryParams: query,
		Body:        body,
	}, dest)
}

func eq(v string) []string { return []string{"eq." + v} }

// dbError renders a PostgREST failure as "<action> failed: <reason>".
// Insert failures carry the response body, the others the status text.
func dbError(action string, err error, withBody bool) error {
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		if withBody {
			return fmt.Errorf("Database %s failed: %s", action, se.Body)
		}
		return fmt.Errorf("Database %s failed: %s", action, http.StatusText(se.StatusCode))
	}
	return fmt.Errorf("Database %s failed: %w", action, err)
}
