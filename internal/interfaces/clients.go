// Package interfaces defines service and client contracts for Anti-Gravity.
package interfaces

import (
	"context"

	"github.com/antigravity-io/antigravity/internal/models"
)

// MarketDataClient provides access to the upstream market-data feed. All six
// operations are fallible and latent; callers must tolerate partial and total
// failure of each independently.
type MarketDataClient interface {
	// GetFastQuote retrieves a live quote snapshot for one symbol.
	GetFastQuote(ctx context.Context, symbol string) (*models.FastQuote, error)

	// GetDailyHistory retrieves up to days recent daily bars for one symbol,
	// oldest first.
	GetDailyHistory(ctx context.Context, symbol string, days int) ([]models.DailyBar, error)

	// GetDisplayName retrieves the display name for a symbol.
	GetDisplayName(ctx context.Context, symbol string) (string, error)

	// GetDailyHistoryBatch retrieves daily bars for several symbols in one
	// request, grouped per symbol, oldest first.
	GetDailyHistoryBatch(ctx context.Context, symbols []string, days int) (map[string][]models.DailyBar, error)

	// GetIntradayBars retrieves 1-minute bars covering the last lookbackDays
	// sessions, oldest first.
	GetIntradayBars(ctx context.Context, symbol string, lookbackDays int) ([]models.IntradayBar, error)

	// GetNews retrieves up to limit recent news articles for a symbol.
	GetNews(ctx context.Context, symbol string, limit int) ([]models.NewsArticle, error)
}
