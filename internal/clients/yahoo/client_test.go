package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(
		WithBaseURL(server.URL),
		WithRateLimit(1000),
	)
	return client, server
}

func TestGetFastQuote(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v7/finance/quote", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbols"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"quoteResponse": {
				"result": [{
					"symbol": "AAPL",
					"shortName": "Apple Inc.",
					"longName": "Apple Inc. (Cupertino)",
					"regularMarketPrice": 201.5,
					"regularMarketPreviousClose": 199.2,
					"regularMarketVolume": 52000000,
					"averageDailyVolume3Month": 61000000,
					"marketCap": 3100000000000
				}]
			}
		}`))
	})
	defer server.Close()

	quote, err := client.GetFastQuote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, "Apple Inc.", quote.Name) // shortName wins over longName
	require.NotNil(t, quote.LastPrice)
	assert.Equal(t, 201.5, *quote.LastPrice)
	require.NotNil(t, quote.PrevClose)
	assert.Equal(t, 199.2, *quote.PrevClose)
	require.NotNil(t, quote.AvgVolume3M)
	assert.Equal(t, 61000000.0, *quote.AvgVolume3M)
}

func TestGetFastQuote_MissingFields(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"quoteResponse": {"result": [{"symbol": "NEWIPO", "longName": "Fresh Listing Corp"}]}}`))
	})
	defer server.Close()

	quote, err := client.GetFastQuote(context.Background(), "NEWIPO")
	require.NoError(t, err)

	assert.Equal(t, "Fresh Listing Corp", quote.Name)
	assert.Nil(t, quote.LastPrice)
	assert.Nil(t, quote.PrevClose)
	assert.Nil(t, quote.MarketCap)
}

func TestGetFastQuote_EmptyResult(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"quoteResponse": {"result": []}}`))
	})
	defer server.Close()

	_, err := client.GetFastQuote(context.Background(), "BOGUS")
	assert.Error(t, err)
}

func TestGetFastQuote_APIError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited"))
	})
	defer server.Close()

	_, err := client.GetFastQuote(context.Background(), "AAPL")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "/v7/finance/quote", apiErr.Endpoint)
	assert.Contains(t, apiErr.Message, "rate limited")
}

func TestGetDailyHistory(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		assert.Equal(t, "5d", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))

		w.Write([]byte(`{
			"chart": {
				"result": [{
					"timestamp": [1749000000, 1749086400, 1749172800],
					"indicators": {
						"quote": [{
							"close": [100.1, null, 102.3],
							"volume": [1000000, 1100000, null]
						}]
					}
				}],
				"error": null
			}
		}`))
	})
	defer server.Close()

	bars, err := client.GetDailyHistory(context.Background(), "AAPL", 5)
	require.NoError(t, err)

	require.Len(t, bars, 3)
	assert.Equal(t, time.Unix(1749000000, 0), bars[0].Date)
	require.NotNil(t, bars[0].Close)
	assert.Equal(t, 100.1, *bars[0].Close)
	assert.Nil(t, bars[1].Close) // null close survives as nil
	require.NotNil(t, bars[2].Close)
	assert.Equal(t, 102.3, *bars[2].Close)
	assert.Nil(t, bars[2].Volume)
}

func TestGetDailyHistory_ChartError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found"}}}`))
	})
	defer server.Close()

	_, err := client.GetDailyHistory(context.Background(), "BOGUS", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}

func TestGetIntradayBars(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1d", r.URL.Query().Get("range"))
		assert.Equal(t, "1m", r.URL.Query().Get("interval"))

		w.Write([]byte(`{
			"chart": {
				"result": [{
					"timestamp": [1749216600, 1749216660],
					"indicators": {
						"quote": [{
							"open": [200.0, 200.5],
							"high": [200.6, 201.0],
							"low": [199.8, 200.4],
							"close": [200.5, 200.9],
							"volume": [150000, 90000]
						}]
					}
				}]
			}
		}`))
	})
	defer server.Close()

	bars, err := client.GetIntradayBars(context.Background(), "AAPL", 1)
	require.NoError(t, err)

	require.Len(t, bars, 2)
	assert.Equal(t, time.Unix(1749216600, 0), bars[0].Timestamp)
	require.NotNil(t, bars[0].Open)
	assert.Equal(t, 200.0, *bars[0].Open)
	require.NotNil(t, bars[1].Close)
	assert.Equal(t, 200.9, *bars[1].Close)
}

func TestGetIntradayBars_NoQuoteIndicators(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"chart": {"result": [{"timestamp": [], "indicators": {"quote": []}}]}}`))
	})
	defer server.Close()

	bars, err := client.GetIntradayBars(context.Background(), "AAPL", 1)
	require.NoError(t, err)
	assert.Empty(t, bars)
}

func TestGetDailyHistoryBatch_GroupedShape(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/spark", r.URL.Path)
		assert.Equal(t, "AAPL,MSFT", r.URL.Query().Get("symbols"))

		w.Write([]byte(`{
			"spark": {
				"result": [
					{
						"symbol": "AAPL",
						"response": [{
							"timestamp": [1749000000, 1749086400],
							"indicators": {"quote": [{"close": [100.0, 101.0], "volume": [1000, 1100]}]}
						}]
					},
					{
						"symbol": "MSFT",
						"response": [{
							"timestamp": [1749000000, 1749086400],
							"indicators": {"quote": [{"close": [50.0, 49.0], "volume": [2000, 2100]}]}
						}]
					}
				]
			}
		}`))
	})
	defer server.Close()

	histories, err := client.GetDailyHistoryBatch(context.Background(), []string{"AAPL", "MSFT"}, 5)
	require.NoError(t, err)

	require.Len(t, histories, 2)
	require.Len(t, histories["AAPL"], 2)
	assert.Equal(t, 101.0, *histories["AAPL"][1].Close)
	require.Len(t, histories["MSFT"], 2)
	assert.Equal(t, 49.0, *histories["MSFT"][1].Close)
}

func TestGetDailyHistoryBatch_FlatShape(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"AAPL": {
				"timestamp": [1749000000, 1749086400],
				"close": [100.0, 101.0],
				"volume": [1000, 1100]
			}
		}`))
	})
	defer server.Close()

	histories, err := client.GetDailyHistoryBatch(context.Background(), []string{"AAPL"}, 5)
	require.NoError(t, err)

	require.Len(t, histories, 1)
	bars := histories["AAPL"]
	require.Len(t, bars, 2)
	assert.Equal(t, 100.0, *bars[0].Close)
	assert.Equal(t, 1100.0, *bars[1].Volume)
}

func TestGetNews(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/finance/search", r.URL.Path)
		assert.Equal(t, "AAPL", r.URL.Query().Get("q"))
		assert.Equal(t, "10", r.URL.Query().Get("newsCount"))

		w.Write([]byte(`{
			"news": [
				{"title": "Apple story", "publisher": "Reuters", "link": "https://example.com/a", "providerPublishTime": 1749218400},
				{"title": "Undated story", "publisher": "Wire", "link": "https://example.com/b"}
			]
		}`))
	})
	defer server.Close()

	articles, err := client.GetNews(context.Background(), "AAPL", 10)
	require.NoError(t, err)

	require.Len(t, articles, 2)
	assert.Equal(t, "Apple story", articles[0].Title)
	require.NotNil(t, articles[0].Timestamp)
	assert.Equal(t, int64(1749218400), *articles[0].Timestamp)
	assert.Nil(t, articles[1].Timestamp)
}

func TestGetDisplayName_Empty(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"quoteResponse": {"result": [{"symbol": "XYZ"}]}}`))
	})
	defer server.Close()

	_, err := client.GetDisplayName(context.Background(), "XYZ")
	assert.Error(t, err)
}
