// Package app wires configuration, clients, storage, and services into a
// single application core shared by cmd/antigravity-server and tests.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/antigravity-io/antigravity/internal/clients/yahoo"
	"github.com/antigravity-io/antigravity/internal/common"
	"github.com/antigravity-io/antigravity/internal/interfaces"
	"github.com/antigravity-io/antigravity/internal/services/chart"
	"github.com/antigravity-io/antigravity/internal/services/movers"
	"github.com/antigravity-io/antigravity/internal/services/news"
	"github.com/antigravity-io/antigravity/internal/storage"
)

// App holds all initialized services and clients.
type App struct {
	Config        *common.Config
	Logger        *common.Logger
	MarketClient  interfaces.MarketDataClient
	Snapshots     interfaces.SnapshotStore
	MoversService interfaces.MoversService
	ChartService  interfaces.ChartService
	NewsService   interfaces.NewsService
	StartupTime   time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes all services, clients, and storage.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Resolve config: provided path, ANTIGRAVITY_CONFIG, binary dir, then
	// development fallback.
	if configPath == "" {
		configPath = os.Getenv("ANTIGRAVITY_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "antigravity.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/antigravity.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative snapshot path to the binary directory.
	if config.Cache.Path != "" && !filepath.IsAbs(config.Cache.Path) {
		config.Cache.Path = filepath.Join(binDir, config.Cache.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	snapshots, err := storage.NewFileSnapshotStore(config.Cache.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize snapshot store: %w", err)
	}

	marketClient := yahoo.NewClient(
		yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yahoo.WithLogger(logger),
		yahoo.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
	)

	a := &App{
		Config:        config,
		Logger:        logger,
		MarketClient:  marketClient,
		Snapshots:     snapshots,
		MoversService: movers.NewService(marketClient, snapshots, config.Watchlist, logger),
		ChartService:  chart.NewService(marketClient, logger),
		NewsService:   news.NewService(marketClient, logger),
		StartupTime:   startupStart,
	}

	logger.Info().
		Int("watchlist", len(config.Watchlist)).
		Str("snapshot", config.Cache.Path).
		Dur("startup", time.Since(startupStart)).
		Msg("App initialized")

	return a, nil
}
