package upstream

import (
	"context"
	"encoding/json"
	"strings"

	"CryptoIntel/internal/domain/models"
	drepo "CryptoIntel/internal/domain/repository"
	"CryptoIntel/pkg/config"
	xutil "CryptoIntel/pkg/util"
)

// CryptoCompareClient reads the CryptoCompare news feed.
type CryptoCompareClient struct{ base *HTTPServiceBase }

func NewCryptoCompareClient(cfg *config.Config, m drepo.Metrics) *CryptoCompareClient {
	base := NewHTTPServiceBase(ProviderCryptoCompare, cfg.Upstream.CryptoCompare, cfg.Upstream.Timeout, m)
	if key := cfg.Upstream.CryptoCompare.APIKey; key != "" {
		base.SetHeader("Authorization", "Apikey "+key)
	}
	return &CryptoCompareClient{base: base}
}

type ccArticle struct {
	ID          json.RawMessage `json:"id"`
	PublishedOn int64           `json:"published_on"`
	Title       string          `json:"title"`
	URL         string          `json:"url"`
	Body        string          `json:"body"`
	Tags        string          `json:"tags"`
	Source      string          `json:"source"`
}

type ccNewsResponse struct {
	Data []ccArticle `json:"Data"`
}

// LatestNews returns the latest English articles, newest first.
func (c *CryptoCompareClient) LatestNews(ctx context.Context) ([]models.Article, error) {
	var resp ccNewsResponse
	q := map[string][]string{"lang": {"EN"}}
	if err := c.base.GetJSON(ctx, "/data/v2/news/", q, &resp); err != nil {
		return nil, models.UpstreamUnavailable("Failed to fetch from CryptoCompare", err)
	}

	out := make([]models.Article, 0, len(resp.Data))
	for _, a := range resp.Data {
		out = append(out, models.Article{
			ID:          rawID(a.ID),
			Title:       a.Title,
			Body:        a.Body,
			Source:      a.Source,
			URL:         a.URL,
			Tags:        a.Tags,
			PublishedAt: xutil.FromUnix(a.PublishedOn),
		})
	}
	return out, nil
}

// rawID accepts both numeric and string ids.
func rawID(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "null" {
		return ""
	}
	return strings.Trim(s, `"`)
}

var _ drepo.NewsSource = (*CryptoCompareClient)(nil)
