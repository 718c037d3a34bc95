package models

import "time"

// Article is a raw upstream news item before classification.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	Tags        string    `json:"tags"`
	PublishedAt time.Time `json:"publishedAt"`
}

type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	Sentiment   string    `json:"sentiment"`
	Category    string    `json:"category"`
}

type NewsFeed struct {
	Category  string     `json:"category"`
	Total     int        `json:"total"`
	News      []NewsItem `json:"news"`
	Timestamp time.Time  `json:"timestamp"`
}
