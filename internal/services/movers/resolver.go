package movers

import (
	"context"
	"math"

	"github.com/antigravity-io/antigravity/internal/models"
)

// resolvePreviousClose reconstructs the mover set from one batched
// multi-symbol history query covering the last few daily sessions. Used only
// when the live scan yields nothing (off-hours). Average volume, market cap
// and volume ratio are unavailable in this mode and stay absent.
func (s *Service) resolvePreviousClose(ctx context.Context) []models.Mover {
	history, err := s.client.GetDailyHistoryBatch(ctx, s.watchlist, sparklineSessions)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Batch history fetch failed")
		return nil
	}
	if len(history) == 0 {
		return nil
	}

	names := s.resolveNames(ctx)

	var movers []models.Mover
	for _, symbol := range s.watchlist {
		mover, dropReason := buildBatchMover(symbol, history[symbol])
		if mover == nil {
			s.logger.Debug().Str("symbol", symbol).Str("reason", dropReason).Msg("Symbol dropped from batch resolution")
			continue
		}
		if name, ok := names[symbol]; ok {
			mover.Name = name
		}
		movers = append(movers, *mover)
	}
	return movers
}

// buildBatchMover derives one mover from a symbol's daily bars: the most
// recent close is the current price, the one before it the previous close.
func buildBatchMover(symbol string, bars []models.DailyBar) (*models.Mover, string) {
	var closes []float64
	var volumes []float64
	for _, bar := range bars {
		if c := models.SafeFloat(bar.Close); c != nil {
			closes = append(closes, *c)
		}
		if bar.Volume != nil && !math.IsNaN(*bar.Volume) && !math.IsInf(*bar.Volume, 0) {
			volumes = append(volumes, *bar.Volume)
		}
	}

	if len(closes) < 2 {
		return nil, "fewer than 2 valid closes"
	}

	current := closes[len(closes)-1]
	prevClose := closes[len(closes)-2]
	if prevClose == 0 {
		return nil, "previous close is zero"
	}

	mover := &models.Mover{
		Ticker:    symbol,
		Name:      symbol,
		Price:     current,
		PrevClose: prevClose,
		GapPct:    models.Round2((current - prevClose) / prevClose * 100),
		Sparkline: closes,
	}

	if len(volumes) > 0 {
		mover.Volume = models.Float64Ptr(math.Round(volumes[len(volumes)-1]))
	}

	return mover, ""
}

// resolveNames resolves display names for the whole watchlist, best-effort.
// A symbol with no resolvable name is simply missing from the map; the whole
// pass can fail without aborting batch resolution.
func (s *Service) resolveNames(ctx context.Context) map[string]string {
	names := make(map[string]string, len(s.watchlist))
	for _, symbol := range s.watchlist {
		name, err := s.client.GetDisplayName(ctx, symbol)
		if err != nil || name == "" {
			continue
		}
		names[symbol] = name
	}
	return names
}
