// Package news serves recent news articles for a single symbol.
package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/antigravity-io/antigravity/internal/common"
	"github.com/antigravity-io/antigravity/internal/interfaces"
	"github.com/antigravity-io/antigravity/internal/models"
)

// maxArticles caps the number of articles returned per ticker.
const maxArticles = 10

// Service implements NewsService.
type Service struct {
	client interfaces.MarketDataClient
	logger *common.Logger
}

// NewService creates a new news service.
func NewService(client interfaces.MarketDataClient, logger *common.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// GetNews returns recent articles for a ticker. Articles with no title are
// skipped; all other fields are best-effort.
func (s *Service) GetNews(ctx context.Context, ticker string) (*models.NewsResponse, error) {
	ticker = strings.ToUpper(ticker)

	raw, err := s.client.GetNews(ctx, ticker, maxArticles)
	if err != nil {
		return nil, fmt.Errorf("news fetch for %s: %w", ticker, err)
	}

	articles := make([]models.NewsArticle, 0, len(raw))
	for _, item := range raw {
		if len(articles) == maxArticles {
			break
		}
		if item.Title == "" {
			continue
		}

		article := models.NewsArticle{
			Title:     item.Title,
			Publisher: item.Publisher,
			Timestamp: item.Timestamp,
			Link:      item.Link,
		}
		if item.Timestamp != nil {
			article.Time = time.Unix(*item.Timestamp, 0).Format("15:04")
		}
		articles = append(articles, article)
	}

	return &models.NewsResponse{
		Ticker: ticker,
		News:   articles,
	}, nil
}

var _ interfaces.NewsService = (*Service)(nil)
