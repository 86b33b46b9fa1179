package models

// ChartPoint is one intraday bar in the /api/chart payload.
type ChartPoint struct {
	Time      string   `json:"time"` // "HH:MM" render of the bar timestamp
	Timestamp int64    `json:"timestamp"`
	Open      *float64 `json:"open"`
	High      *float64 `json:"high"`
	Low       *float64 `json:"low"`
	Close     *float64 `json:"close"`
	Volume    *float64 `json:"volume"`
}

// ChartResponse is the full /api/chart/{ticker} payload.
type ChartResponse struct {
	Ticker string       `json:"ticker"`
	Name   string       `json:"name"`
	Points []ChartPoint `json:"points"`
}
