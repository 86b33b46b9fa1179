// Package chart serves intraday chart series for a single symbol.
package chart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/antigravity-io/antigravity/internal/common"
	"github.com/antigravity-io/antigravity/internal/interfaces"
	"github.com/antigravity-io/antigravity/internal/models"
)

// ErrNoChartData is returned when neither the current nor the prior session
// has any intraday bars.
var ErrNoChartData = errors.New("no chart data available")

// Service implements ChartService.
type Service struct {
	client interfaces.MarketDataClient
	logger *common.Logger
}

// NewService creates a new chart service.
func NewService(client interfaces.MarketDataClient, logger *common.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// GetChart returns 1-minute bars for the current session, falling back to a
// 2-day window when today has no bars yet (e.g. before the open).
func (s *Service) GetChart(ctx context.Context, ticker string) (*models.ChartResponse, error) {
	ticker = strings.ToUpper(ticker)

	bars, err := s.client.GetIntradayBars(ctx, ticker, 1)
	if err != nil {
		return nil, fmt.Errorf("intraday fetch for %s: %w", ticker, err)
	}

	if len(bars) == 0 {
		bars, err = s.client.GetIntradayBars(ctx, ticker, 2)
		if err != nil {
			return nil, fmt.Errorf("intraday fetch for %s: %w", ticker, err)
		}
	}

	if len(bars) == 0 {
		return nil, ErrNoChartData
	}

	points := make([]models.ChartPoint, 0, len(bars))
	for _, bar := range bars {
		points = append(points, models.ChartPoint{
			Time:      bar.Timestamp.Format("15:04"),
			Timestamp: bar.Timestamp.Unix(),
			Open:      models.SafeFloat(bar.Open),
			High:      models.SafeFloat(bar.High),
			Low:       models.SafeFloat(bar.Low),
			Close:     models.SafeFloat(bar.Close),
			Volume:    models.SafeFloat(bar.Volume),
		})
	}

	// Name lookup is best-effort: failure falls back to the raw ticker.
	name := ticker
	if n, err := s.client.GetDisplayName(ctx, ticker); err == nil && n != "" {
		name = n
	}

	return &models.ChartResponse{
		Ticker: ticker,
		Name:   name,
		Points: points,
	}, nil
}

var _ interfaces.ChartService = (*Service)(nil)
