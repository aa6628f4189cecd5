package model

// NewsItem is one headline extracted from an RSS feed.
type NewsItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	PubDate string `json:"pubDate,omitempty"`
}

// NewsSnapshot is the JSON artifact backing the headlines column.
type NewsSnapshot struct {
	GeneratedAt string     `json:"generatedAt"`
	Source      string     `json:"source"`
	Feed        string     `json:"feed"`
	Items       []NewsItem `json:"items"`
}
