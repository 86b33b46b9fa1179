// Package models defines data structures for the Anti-Gravity API.
package models

import (
	"math"
	"time"
)

// Response source tags, in degradation order.
const (
	SourceLive          = "live"
	SourcePreviousClose = "previous_close"
	SourceCached        = "cached"
)

// Mover is one row of the top-movers result set.
//
// Optional numeric fields are pointers so that an absent value serialises as
// JSON null rather than zero. Sparkline is always non-nil, possibly empty.
type Mover struct {
	Ticker      string    `json:"ticker"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	PrevClose   float64   `json:"prevClose"`
	GapPct      float64   `json:"gapPct"`
	Volume      *float64  `json:"volume"`
	AvgVolume   *float64  `json:"avgVolume"`
	VolumeRatio *float64  `json:"volumeRatio"`
	MarketCap   *float64  `json:"marketCap"`
	Sparkline   []float64 `json:"sparkline"`
}

// MoversResponse is the full /api/movers payload. Movers are sorted by
// absolute gap descending; the timestamp reflects capture time, not serve
// time.
type MoversResponse struct {
	Movers    []Mover   `json:"movers"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// Round2 rounds v to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SafeFloat converts an optional upstream numeric into a finite, rounded
// value, or nil. NaN and infinities are treated as absent so they can never
// leak into a response.
func SafeFloat(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	r := Round2(*v)
	return &r
}

// Float64Ptr returns a pointer to v. Convenience for literals in tests and
// client decoding.
func Float64Ptr(v float64) *float64 {
	return &v
}
