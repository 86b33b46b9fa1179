// Package movers implements the tiered top-movers pipeline: a live watchlist
// scan, a batched previous-close fallback, and a last-known-good snapshot.
package movers

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/antigravity-io/antigravity/internal/common"
	"github.com/antigravity-io/antigravity/internal/interfaces"
	"github.com/antigravity-io/antigravity/internal/models"
)

const (
	// sparklineSessions is the daily close history length used for the trend
	// glyph and for the batch fallback window.
	sparklineSessions = 5

	// maxConcurrentScans bounds the per-symbol fan-out of the live scan.
	maxConcurrentScans = 5

	// defaultStageTimeout bounds each pipeline stage independently.
	defaultStageTimeout = 30 * time.Second
)

// Service implements MoversService.
type Service struct {
	client       interfaces.MarketDataClient
	snapshots    interfaces.SnapshotStore
	watchlist    []string
	logger       *common.Logger
	now          func() time.Time // injectable clock for testing
	stageTimeout time.Duration
}

// NewService creates a new movers service scanning the given watchlist.
// Watchlist order is the tie-break order for equal-magnitude gaps.
func NewService(
	client interfaces.MarketDataClient,
	snapshots interfaces.SnapshotStore,
	watchlist []string,
	logger *common.Logger,
) *Service {
	return &Service{
		client:       client,
		snapshots:    snapshots,
		watchlist:    watchlist,
		logger:       logger,
		now:          time.Now,
		stageTimeout: defaultStageTimeout,
	}
}

// stage is one tier of the fallback chain. The orchestrator folds over the
// stage list and stops at the first non-empty result.
type stage struct {
	source string
	run    func(ctx context.Context) []models.Mover
}

// GetMovers runs the pipeline: live scan, then batch fallback, then the disk
// snapshot. It never fails; at worst it returns an empty response tagged
// with the last attempted stage.
func (s *Service) GetMovers(ctx context.Context) *models.MoversResponse {
	stages := []stage{
		{source: models.SourceLive, run: s.scanLive},
		{source: models.SourcePreviousClose, run: s.resolvePreviousClose},
	}

	source := models.SourceLive
	var rows []models.Mover
	for _, st := range stages {
		source = st.source

		// Each stage runs detached from the caller with its own deadline, so
		// a caller that has already timed out still gets the fallback tiers.
		stageCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.stageTimeout)
		rows = st.run(stageCtx)
		cancel()

		if len(rows) > 0 {
			break
		}
		s.logger.Info().Str("stage", st.source).Msg("Stage yielded no movers, degrading")
	}

	if len(rows) > 0 {
		sortByAbsGap(rows)
		response := &models.MoversResponse{
			Movers:    rows,
			Source:    source,
			Timestamp: s.now().UTC(),
		}
		if err := s.snapshots.Save(ctx, response); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to save movers snapshot")
		}
		return response
	}

	// Final stage: serve the last-known-good snapshot, relabelled. Cached
	// rows were sorted at capture time and keep their original timestamp.
	if cached, err := s.snapshots.Load(ctx); err == nil && len(cached.Movers) > 0 {
		s.logger.Info().Time("captured", cached.Timestamp).Msg("Serving movers from snapshot")
		cached.Source = models.SourceCached
		return cached
	}

	return &models.MoversResponse{
		Movers:    []models.Mover{},
		Source:    source,
		Timestamp: s.now().UTC(),
	}
}

// sortByAbsGap sorts movers by absolute gap descending. The sort is stable:
// equal-magnitude gaps keep watchlist order.
func sortByAbsGap(rows []models.Mover) {
	sort.SliceStable(rows, func(i, j int) bool {
		return math.Abs(rows[i].GapPct) > math.Abs(rows[j].GapPct)
	})
}

var _ interfaces.MoversService = (*Service)(nil)
