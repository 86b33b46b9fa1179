package chart

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity-io/antigravity/internal/common"
	"github.com/antigravity-io/antigravity/internal/models"
)

type mockMarketClient struct {
	intradayFn    func(ctx context.Context, symbol string, lookbackDays int) ([]models.IntradayBar, error)
	displayNameFn func(ctx context.Context, symbol string) (string, error)
}

func (m *mockMarketClient) GetFastQuote(_ context.Context, _ string) (*models.FastQuote, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockMarketClient) GetDailyHistory(_ context.Context, _ string, _ int) ([]models.DailyBar, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockMarketClient) GetDisplayName(ctx context.Context, symbol string) (string, error) {
	if m.displayNameFn != nil {
		return m.displayNameFn(ctx, symbol)
	}
	return "", fmt.Errorf("not implemented")
}

func (m *mockMarketClient) GetDailyHistoryBatch(_ context.Context, _ []string, _ int) (map[string][]models.DailyBar, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockMarketClient) GetIntradayBars(ctx context.Context, symbol string, lookbackDays int) ([]models.IntradayBar, error) {
	if m.intradayFn != nil {
		return m.intradayFn(ctx, symbol, lookbackDays)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockMarketClient) GetNews(_ context.Context, _ string, _ int) ([]models.NewsArticle, error) {
	return nil, fmt.Errorf("not implemented")
}

func intradayBar(ts time.Time, o, h, l, c, v float64) models.IntradayBar {
	return models.IntradayBar{
		Timestamp: ts,
		Open:      &o,
		High:      &h,
		Low:       &l,
		Close:     &c,
		Volume:    &v,
	}
}

func TestGetChart_CurrentSession(t *testing.T) {
	open := time.Date(2025, 6, 6, 13, 30, 0, 0, time.UTC)
	client := &mockMarketClient{
		intradayFn: func(_ context.Context, symbol string, lookbackDays int) ([]models.IntradayBar, error) {
			assert.Equal(t, "AAPL", symbol)
			assert.Equal(t, 1, lookbackDays)
			return []models.IntradayBar{
				intradayBar(open, 200, 201, 199.5, 200.5, 120000),
				intradayBar(open.Add(time.Minute), 200.5, 202, 200.5, 201.8, 95000),
			}, nil
		},
		displayNameFn: func(_ context.Context, _ string) (string, error) {
			return "Apple Inc.", nil
		},
	}

	resp, err := NewService(client, common.NewSilentLogger()).GetChart(context.Background(), "aapl")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", resp.Ticker)
	assert.Equal(t, "Apple Inc.", resp.Name)
	require.Len(t, resp.Points, 2)
	assert.Equal(t, "13:30", resp.Points[0].Time)
	assert.Equal(t, open.Unix(), resp.Points[0].Timestamp)
	require.NotNil(t, resp.Points[0].Open)
	assert.Equal(t, 200.0, *resp.Points[0].Open)
	require.NotNil(t, resp.Points[1].Close)
	assert.Equal(t, 201.8, *resp.Points[1].Close)
	require.NotNil(t, resp.Points[1].Volume)
	assert.Equal(t, 95000.0, *resp.Points[1].Volume)
}

func TestGetChart_FallsBackToPriorSession(t *testing.T) {
	open := time.Date(2025, 6, 5, 13, 30, 0, 0, time.UTC)
	var windows []int
	client := &mockMarketClient{
		intradayFn: func(_ context.Context, _ string, lookbackDays int) ([]models.IntradayBar, error) {
			windows = append(windows, lookbackDays)
			if lookbackDays == 1 {
				return nil, nil
			}
			return []models.IntradayBar{intradayBar(open, 100, 101, 99, 100.5, 50000)}, nil
		},
		displayNameFn: func(_ context.Context, _ string) (string, error) {
			return "", fmt.Errorf("unavailable")
		},
	}

	resp, err := NewService(client, common.NewSilentLogger()).GetChart(context.Background(), "MSFT")
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, windows)
	require.Len(t, resp.Points, 1)
	assert.Equal(t, "MSFT", resp.Name) // name lookup failed → raw ticker
}

func TestGetChart_NoData(t *testing.T) {
	client := &mockMarketClient{
		intradayFn: func(_ context.Context, _ string, _ int) ([]models.IntradayBar, error) {
			return nil, nil
		},
	}

	_, err := NewService(client, common.NewSilentLogger()).GetChart(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrNoChartData)
}

func TestGetChart_UpstreamError(t *testing.T) {
	client := &mockMarketClient{
		intradayFn: func(_ context.Context, _ string, _ int) ([]models.IntradayBar, error) {
			return nil, fmt.Errorf("rate limited")
		},
	}

	_, err := NewService(client, common.NewSilentLogger()).GetChart(context.Background(), "AAPL")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoChartData)
}

func TestGetChart_MissingValuesStayNull(t *testing.T) {
	open := time.Date(2025, 6, 6, 14, 0, 0, 0, time.UTC)
	client := &mockMarketClient{
		intradayFn: func(_ context.Context, _ string, _ int) ([]models.IntradayBar, error) {
			return []models.IntradayBar{{Timestamp: open, Close: models.Float64Ptr(42)}}, nil
		},
		displayNameFn: func(_ context.Context, _ string) (string, error) {
			return "", fmt.Errorf("unavailable")
		},
	}

	resp, err := NewService(client, common.NewSilentLogger()).GetChart(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, resp.Points, 1)
	assert.Nil(t, resp.Points[0].Open)
	require.NotNil(t, resp.Points[0].Close)
	assert.Equal(t, 42.0, *resp.Points[0].Close)
	assert.Nil(t, resp.Points[0].Volume)
}
