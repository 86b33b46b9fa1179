package movers

import (
	"context"

	"github.com/antigravity-io/antigravity/internal/models"
)

// scanResult ties one scanned symbol back to its watchlist position so the
// collected output preserves watchlist order regardless of completion order.
type scanResult struct {
	index int
	mover *models.Mover
}

// scanLive queries the upstream once per watchlist symbol, concurrently but
// bounded, and keeps every symbol that classifies as a usable mover. A bad
// symbol is dropped, never an error.
func (s *Service) scanLive(ctx context.Context) []models.Mover {
	semaphore := make(chan struct{}, maxConcurrentScans)
	results := make(chan scanResult, len(s.watchlist))

	for i, symbol := range s.watchlist {
		go func(idx int, sym string) {
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			mover, dropReason := s.scanSymbol(ctx, sym)
			if mover == nil {
				s.logger.Debug().Str("symbol", sym).Str("reason", dropReason).Msg("Symbol dropped from live scan")
			}
			results <- scanResult{index: idx, mover: mover}
		}(i, symbol)
	}

	slots := make([]*models.Mover, len(s.watchlist))
	for range s.watchlist {
		r := <-results
		slots[r.index] = r.mover
	}

	movers := make([]models.Mover, 0, len(slots))
	for _, m := range slots {
		if m != nil {
			movers = append(movers, *m)
		}
	}
	return movers
}

// scanSymbol classifies one symbol: it returns the record to keep, or nil
// with the drop reason. Sparkline and display name degrade independently and
// never fail the record.
func (s *Service) scanSymbol(ctx context.Context, symbol string) (*models.Mover, string) {
	quote, err := s.client.GetFastQuote(ctx, symbol)
	if err != nil {
		return nil, "quote failed: " + err.Error()
	}

	price := models.SafeFloat(quote.LastPrice)
	prevClose := models.SafeFloat(quote.PrevClose)
	if price == nil || prevClose == nil {
		return nil, "missing price or previous close"
	}
	if *prevClose == 0 {
		return nil, "previous close is zero"
	}

	mover := &models.Mover{
		Ticker:    symbol,
		Name:      symbol,
		Price:     *price,
		PrevClose: *prevClose,
		GapPct:    models.Round2((*price - *prevClose) / *prevClose * 100),
		Volume:    models.SafeFloat(quote.LastVolume),
		AvgVolume: models.SafeFloat(quote.AvgVolume3M),
		MarketCap: models.SafeFloat(quote.MarketCap),
		Sparkline: []float64{},
	}

	if mover.Volume != nil && *mover.Volume > 0 && mover.AvgVolume != nil && *mover.AvgVolume > 0 {
		mover.VolumeRatio = models.Float64Ptr(models.Round2(*mover.Volume / *mover.AvgVolume))
	}

	if bars, err := s.client.GetDailyHistory(ctx, symbol, sparklineSessions); err != nil {
		s.logger.Debug().Str("symbol", symbol).Err(err).Msg("Sparkline lookup failed")
	} else {
		mover.Sparkline = closesFromBars(bars)
	}

	if quote.Name != "" {
		mover.Name = quote.Name
	} else if name, err := s.client.GetDisplayName(ctx, symbol); err == nil && name != "" {
		mover.Name = name
	}

	return mover, ""
}

// closesFromBars extracts the valid closes from a bar series, oldest first,
// rounded. The result is never nil.
func closesFromBars(bars []models.DailyBar) []float64 {
	closes := make([]float64, 0, len(bars))
	for _, bar := range bars {
		if c := models.SafeFloat(bar.Close); c != nil {
			closes = append(closes, *c)
		}
	}
	return closes
}
