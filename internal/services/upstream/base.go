package upstream

import (
	"context"
	"errors"
	"fmt"
	"time"

	drepo "CryptoIntel/internal/domain/repository"
	"CryptoIntel/pkg/config"
	xhttp "CryptoIntel/pkg/http"

	"golang.org/x/time/rate"
)

const (
	ProviderCoinGecko     = "coingecko"
	ProviderDexscreener   = "dexscreener"
	ProviderCryptoCompare = "cryptocompare"
)

// HTTPServiceBase provides the shared foundation for the upstream API clients.
// It centralizes client construction, per-provider throttling and request metrics.
type HTTPServiceBase struct {
	name    string
	baseURL string
	headers map[string]string
	client  *xhttp.Client
	limiter *rate.Limiter
	metrics drepo.Metrics
}

// NewHTTPServiceBase builds a client for one provider. A zero RPS disables throttling.
func NewHTTPServiceBase(name string, p config.Provider, timeout time.Duration, m drepo.Metrics) *HTTPServiceBase {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	b := &HTTPServiceBase{
		name:    name,
		baseURL: p.BaseURL,
		headers: map[string]string{"Accept": "application/json"},
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		metrics: m,
	}
	if p.RPS > 0 {
		burst := p.Burst
		if burst <= 0 {
			burst = 1
		}
		b.limiter = rate.NewLimiter(rate.Limit(p.RPS), burst)
	}
	return b
}

// SetHeader adds a header sent with every request.
func (b *HTTPServiceBase) SetHeader(key, value string) {
	b.headers[key] = value
}

// GetJSON issues GET baseURL+path and decodes the JSON body into dest.
func (b *HTTPServiceBase) GetJSON(ctx context.Context, path string, query map[string][]string, dest interface{}) error {
	if b.client == nil || b.baseURL == "" {
		return fmt.Errorf("%s http client not initialized", b.name)
	}
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			b.record("throttled")
			return fmt.Errorf("%s throttle: %w", b.name, err)
		}
	}

	start := time.Now()
	err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         b.baseURL + path,
		Headers:     b.headers,
		QueryParams: query,
	}, dest)
	if b.metrics != nil {
		b.metrics.RecordLatency(b.name+"_request", time.Since(start).Seconds())
	}
	b.record(outcome(err))
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	return nil
}

func (b *HTTPServiceBase) record(outcome string) {
	if b.metrics != nil {
		b.metrics.RecordUpstreamRequest(b.name, outcome)
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		return "bad_status"
	}
	return "error"
}
