// Package yahoo provides a client for the public Yahoo Finance JSON API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/antigravity-io/antigravity/internal/common"
	"github.com/antigravity-io/antigravity/internal/interfaces"
	"github.com/antigravity-io/antigravity/internal/models"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second

	// Yahoo rejects requests without a browser-like User-Agent.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Client implements the MarketDataClient interface against Yahoo Finance.
// No API key is required; these are public endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithLogger sets the logger.
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Yahoo Finance client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an upstream API error.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yahoo API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request and decodes the JSON body.
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Yahoo API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// quoteResponse represents the /v7/finance/quote response.
type quoteResponse struct {
	QuoteResponse struct {
		Result []quoteResult `json:"result"`
	} `json:"quoteResponse"`
}

type quoteResult struct {
	Symbol                     string   `json:"symbol"`
	ShortName                  string   `json:"shortName"`
	LongName                   string   `json:"longName"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
	RegularMarketVolume        *float64 `json:"regularMarketVolume"`
	AverageDailyVolume3Month   *float64 `json:"averageDailyVolume3Month"`
	MarketCap                  *float64 `json:"marketCap"`
}

func (q *quoteResult) displayName() string {
	if q.ShortName != "" {
		return q.ShortName
	}
	return q.LongName
}

// GetFastQuote retrieves a live quote snapshot for one symbol.
func (c *Client) GetFastQuote(ctx context.Context, symbol string) (*models.FastQuote, error) {
	params := url.Values{}
	params.Set("symbols", symbol)

	var resp quoteResponse
	if err := c.get(ctx, "/v7/finance/quote", params, &resp); err != nil {
		return nil, err
	}

	if len(resp.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("no quote returned for %s", symbol)
	}

	q := resp.QuoteResponse.Result[0]
	return &models.FastQuote{
		Symbol:      symbol,
		Name:        q.displayName(),
		LastPrice:   q.RegularMarketPrice,
		PrevClose:   q.RegularMarketPreviousClose,
		LastVolume:  q.RegularMarketVolume,
		AvgVolume3M: q.AverageDailyVolume3Month,
		MarketCap:   q.MarketCap,
	}, nil
}

// GetDisplayName retrieves the display name for a symbol.
func (c *Client) GetDisplayName(ctx context.Context, symbol string) (string, error) {
	params := url.Values{}
	params.Set("symbols", symbol)

	var resp quoteResponse
	if err := c.get(ctx, "/v7/finance/quote", params, &resp); err != nil {
		return "", err
	}

	if len(resp.QuoteResponse.Result) == 0 {
		return "", fmt.Errorf("no quote returned for %s", symbol)
	}

	name := resp.QuoteResponse.Result[0].displayName()
	if name == "" {
		return "", fmt.Errorf("no display name for %s", symbol)
	}
	return name, nil
}

// chartResponse represents the /v8/finance/chart response.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []chartQuote `json:"quote"`
	} `json:"indicators"`
}

type chartQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

// GetDailyHistory retrieves up to days recent daily bars for one symbol,
// oldest first.
func (c *Client) GetDailyHistory(ctx context.Context, symbol string, days int) ([]models.DailyBar, error) {
	params := url.Values{}
	params.Set("range", fmt.Sprintf("%dd", days))
	params.Set("interval", "1d")

	var resp chartResponse
	if err := c.get(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), params, &resp); err != nil {
		return nil, err
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart error for %s: %s", symbol, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart result for %s", symbol)
	}

	return dailyBarsFromChart(resp.Chart.Result[0]), nil
}

// GetIntradayBars retrieves 1-minute bars covering the last lookbackDays
// sessions, oldest first.
func (c *Client) GetIntradayBars(ctx context.Context, symbol string, lookbackDays int) ([]models.IntradayBar, error) {
	params := url.Values{}
	params.Set("range", fmt.Sprintf("%dd", lookbackDays))
	params.Set("interval", "1m")

	var resp chartResponse
	if err := c.get(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), params, &resp); err != nil {
		return nil, err
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart error for %s: %s", symbol, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart result for %s", symbol)
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := result.Indicators.Quote[0]

	bars := make([]models.IntradayBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		bars = append(bars, models.IntradayBar{
			Timestamp: time.Unix(ts, 0),
			Open:      indexOrNil(quote.Open, i),
			High:      indexOrNil(quote.High, i),
			Low:       indexOrNil(quote.Low, i),
			Close:     indexOrNil(quote.Close, i),
			Volume:    indexOrNil(quote.Volume, i),
		})
	}

	return bars, nil
}

// sparkEnvelope represents the modern /v8/finance/spark response, where
// per-symbol series are grouped under spark.result.
type sparkEnvelope struct {
	Spark struct {
		Result []struct {
			Symbol   string        `json:"symbol"`
			Response []chartResult `json:"response"`
		} `json:"result"`
	} `json:"spark"`
}

// sparkSeries represents the legacy flat spark shape: a top-level object
// keyed by symbol, used when a single symbol is requested.
type sparkSeries struct {
	Timestamp []int64    `json:"timestamp"`
	Close     []*float64 `json:"close"`
	Volume    []*float64 `json:"volume"`
}

// GetDailyHistoryBatch retrieves daily bars for several symbols in one spark
// request. The endpoint answers in two shapes, a grouped result array or a
// flat per-symbol object, and both are handled here.
func (c *Client) GetDailyHistoryBatch(ctx context.Context, symbols []string, days int) (map[string][]models.DailyBar, error) {
	params := url.Values{}
	params.Set("symbols", strings.Join(symbols, ","))
	params.Set("range", fmt.Sprintf("%dd", days))
	params.Set("interval", "1d")

	var raw json.RawMessage
	if err := c.get(ctx, "/v8/finance/spark", params, &raw); err != nil {
		return nil, err
	}

	out := make(map[string][]models.DailyBar)

	// Grouped shape first.
	var envelope sparkEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Spark.Result) > 0 {
		for _, entry := range envelope.Spark.Result {
			if len(entry.Response) == 0 {
				continue
			}
			out[entry.Symbol] = dailyBarsFromChart(entry.Response[0])
		}
		return out, nil
	}

	// Flat shape: top-level object keyed by symbol.
	var flat map[string]sparkSeries
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("failed to decode spark response: %w", err)
	}
	for symbol, series := range flat {
		bars := make([]models.DailyBar, 0, len(series.Timestamp))
		for i, ts := range series.Timestamp {
			bars = append(bars, models.DailyBar{
				Date:   time.Unix(ts, 0),
				Close:  indexOrNil(series.Close, i),
				Volume: indexOrNil(series.Volume, i),
			})
		}
		out[symbol] = bars
	}

	return out, nil
}

// searchResponse represents the /v1/finance/search response.
type searchResponse struct {
	News []struct {
		Title               string `json:"title"`
		Publisher           string `json:"publisher"`
		Link                string `json:"link"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
	} `json:"news"`
}

// GetNews retrieves up to limit recent news articles for a symbol.
func (c *Client) GetNews(ctx context.Context, symbol string, limit int) ([]models.NewsArticle, error) {
	params := url.Values{}
	params.Set("q", symbol)
	params.Set("newsCount", strconv.Itoa(limit))
	params.Set("quotesCount", "0")

	var resp searchResponse
	if err := c.get(ctx, "/v1/finance/search", params, &resp); err != nil {
		return nil, err
	}

	articles := make([]models.NewsArticle, 0, len(resp.News))
	for _, item := range resp.News {
		article := models.NewsArticle{
			Title:     item.Title,
			Publisher: item.Publisher,
			Link:      item.Link,
		}
		if item.ProviderPublishTime > 0 {
			ts := item.ProviderPublishTime
			article.Timestamp = &ts
		}
		articles = append(articles, article)
	}

	return articles, nil
}

// dailyBarsFromChart flattens one chart result into daily bars, oldest first.
func dailyBarsFromChart(result chartResult) []models.DailyBar {
	var quote chartQuote
	if len(result.Indicators.Quote) > 0 {
		quote = result.Indicators.Quote[0]
	}

	bars := make([]models.DailyBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		bars = append(bars, models.DailyBar{
			Date:   time.Unix(ts, 0),
			Close:  indexOrNil(quote.Close, i),
			Volume: indexOrNil(quote.Volume, i),
		})
	}
	return bars
}

func indexOrNil(vals []*float64, i int) *float64 {
	if i < len(vals) {
		return vals[i]
	}
	return nil
}

// Ensure Client implements MarketDataClient.
var _ interfaces.MarketDataClient = (*Client)(nil)
