package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/antigravity-io/antigravity/internal/services/chart"
)

// handleMovers handles GET /api/movers. The movers pipeline cannot fail:
// the worst case is an empty, degraded response, so this always answers 200.
func (s *Server) handleMovers(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	response := s.app.MoversService.GetMovers(r.Context())
	WriteJSON(w, http.StatusOK, response)
}

// handleChart handles GET /api/chart/{ticker}.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := strings.ToUpper(PathParam(r, "/api/chart/"))
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required in path")
		return
	}

	response, err := s.app.ChartService.GetChart(r.Context(), ticker)
	if err != nil {
		if errors.Is(err, chart.ErrNoChartData) {
			WriteError(w, http.StatusNotFound, "No chart data available")
			return
		}
		s.logger.Error().Str("ticker", ticker).Err(err).Msg("Chart fetch failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, response)
}

// handleNews handles GET /api/news/{ticker}.
func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := strings.ToUpper(PathParam(r, "/api/news/"))
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required in path")
		return
	}

	response, err := s.app.NewsService.GetNews(r.Context(), ticker)
	if err != nil {
		s.logger.Error().Str("ticker", ticker).Err(err).Msg("News fetch failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, response)
}
