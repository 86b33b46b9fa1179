package models

// NewsArticle is one article in the /api/news payload. Timestamp is unix
// seconds, nil when the publish time is unknown.
type NewsArticle struct {
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	Timestamp *int64 `json:"timestamp"`
	Time      string `json:"time"` // "HH:MM" render of the publish time, "" if unknown
	Link      string `json:"link"`
}

// NewsResponse is the full /api/news/{ticker} payload.
type NewsResponse struct {
	Ticker string        `json:"ticker"`
	News   []NewsArticle `json:"news"`
}
