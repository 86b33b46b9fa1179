package interfaces

import (
	"context"

	"github.com/antigravity-io/antigravity/internal/models"
)

// MoversService produces the top-movers ranking with tiered degradation.
type MoversService interface {
	// GetMovers never fails: it degrades live → previous_close → cached and,
	// at worst, returns an empty response tagged with the last attempted
	// stage.
	GetMovers(ctx context.Context) *models.MoversResponse
}

// ChartService serves intraday chart series for a single symbol.
type ChartService interface {
	// GetChart returns 1-minute bars for the current session, falling back to
	// the prior session. Returns ErrNoChartData when neither has bars.
	GetChart(ctx context.Context, ticker string) (*models.ChartResponse, error)
}

// NewsService serves recent news for a single symbol.
type NewsService interface {
	GetNews(ctx context.Context, ticker string) (*models.NewsResponse, error)
}
