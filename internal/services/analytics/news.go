package analytics

import (
	"strconv"
	"strings"
	"time"

	"CryptoIntel/internal/domain/models"
	domsvc "CryptoIntel/internal/domain/service"
	xutil "CryptoIntel/pkg/util"
)

const summaryRunes = 200

var (
	positiveWords = []string{"surge", "rally", "boom", "gain", "profit", "high", "bullish", "growth", "up", "rise", "increase", "adoption", "breakthrough"}
	negativeWords = []string{"crash", "fall", "drop", "loss", "bearish", "decline", "down", "decrease", "hack", "scam", "fraud", "ban"}
)

// NewsClassifier tags articles with a keyword sentiment and a topic.
type NewsClassifier struct{}

func NewNewsClassifier() *NewsClassifier { return &NewsClassifier{} }

// Sentiment counts distinct keyword hits. Matching is by substring, so "up" also hits "update".
func (n *NewsClassifier) Sentiment(text string) string {
	lower := strings.ToLower(text)
	pos, neg := 0, 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}
	switch {
	case pos > neg:
		return "positive"
	case neg > pos:
		return "negative"
	default:
		return "neutral"
	}
}

func (n *NewsClassifier) Category(text string) string {
	lower := strings.ToLower(text)
	switch {
	case xutil.ContainsAny(lower, "bitcoin", "btc"):
		return "bitcoin"
	case xutil.ContainsAny(lower, "ethereum", "eth"):
		return "ethereum"
	case strings.Contains(lower, "defi"):
		return "defi"
	case strings.Contains(lower, "nft"):
		return "nft"
	case xutil.ContainsAny(lower, "regulation", "sec"):
		return "regulation"
	case xutil.ContainsAny(lower, "security", "hack"):
		return "security"
	default:
		return "market"
	}
}

// Item converts the i-th upstream article into a news item.
func (n *NewsClassifier) Item(i int, a models.Article) models.NewsItem {
	id := a.ID
	if id == "" {
		id = strconv.Itoa(i)
	}
	return models.NewsItem{
		ID:          id,
		Title:       a.Title,
		Summary:     xutil.Truncate(a.Body, summaryRunes) + "...",
		Source:      a.Source,
		URL:         a.URL,
		PublishedAt: a.PublishedAt,
		Sentiment:   n.Sentiment(a.Title + " " + a.Body),
		Category:    n.Category(a.Title + " " + a.Tags),
	}
}

func (n *NewsClassifier) Fallback(now time.Time, limit int) []models.NewsItem {
	return FallbackNews(now, limit)
}

// FallbackNews returns the curated headlines served when the feed is unavailable.
func FallbackNews(now time.Time, limit int) []models.NewsItem {
	items := []models.NewsItem{
		{
			ID:          "1",
			Title:       "Bitcoin ETF Inflows Reach Record Highs",
			Summary:     "Institutional investors continue showing strong interest in Bitcoin ETFs with record-breaking inflows this month.",
			Source:      "Market Updates",
			URL:         "https://www.coindesk.com",
			PublishedAt: now.Add(-1 * time.Hour),
			Sentiment:   "positive",
			Category:    "bitcoin",
		},
		{
			ID:          "2",
			Title:       "Ethereum Network Upgrade Successfully Completed",
			Summary:     "Latest Ethereum network upgrade brings improvements to scalability and transaction efficiency.",
			Source:      "Tech News",
			URL:         "https://www.coindesk.com",
			PublishedAt: now.Add(-2 * time.Hour),
			Sentiment:   "positive",
			Category:    "ethereum",
		},
		{
			ID:          "3",
			Title:       "Global Cryptocurrency Adoption Continues Rising",
			Summary:     "New data shows cryptocurrency adoption rates increasing across emerging markets worldwide.",
			Source:      "Industry Reports",
			URL:         "https://www.coindesk.com",
			PublishedAt: now.Add(-3 * time.Hour),
			Sentiment:   "positive",
			Category:    "market",
		},
	}
	if limit < 0 {
		limit = 0
	}
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}

var _ domsvc.NewsClassifier = (*NewsClassifier)(nil)
