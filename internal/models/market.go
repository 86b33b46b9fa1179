package models

import "time"

// FastQuote is a live per-symbol snapshot from the upstream quote endpoint.
// Any field may be absent; the scanner decides what it can use.
type FastQuote struct {
	Symbol      string
	Name        string
	LastPrice   *float64
	PrevClose   *float64
	LastVolume  *float64
	AvgVolume3M *float64
	MarketCap   *float64
}

// DailyBar is one daily session of close/volume data.
type DailyBar struct {
	Date   time.Time
	Close  *float64
	Volume *float64
}

// IntradayBar is one minute-granularity OHLCV bar.
type IntradayBar struct {
	Timestamp time.Time
	Open      *float64
	High      *float64
	Low       *float64
	Close     *float64
	Volume    *float64
}
