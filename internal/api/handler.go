package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coldrink/pwhl-data/internal/store"
)

// handler holds shared dependencies for all endpoint handlers. Handlers read
// through the store's prepared lookup queries; the ops API never touches the
// feed.
type handler struct {
	store  *store.Store
	logger *slog.Logger
}

func newHandler(st *store.Store, logger *slog.Logger) *handler {
	return &handler{store: st, logger: logger}
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Root serves service info at /.
func (h *handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "PWHL Data Mirror",
		"version": "1.0.0",
		"status":  "running",
	})
}

// HealthCheck returns basic health status.
func (h *handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
func (h *handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Error("database health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Freshness reports how current the mirror is: entity counts, the current
// season, the most recent finished game, and the play-by-play backlog.
func (h *handler) Freshness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	seasons, err := h.store.SeasonIDs(ctx)
	if err != nil {
		h.freshnessError(w, err)
		return
	}
	teams, err := h.store.TeamIDs(ctx)
	if err != nil {
		h.freshnessError(w, err)
		return
	}
	players, err := h.store.PlayerCount(ctx)
	if err != nil {
		h.freshnessError(w, err)
		return
	}
	games, err := h.store.GameCount(ctx)
	if err != nil {
		h.freshnessError(w, err)
		return
	}
	currentSeason, err := h.store.CurrentSeasonID(ctx)
	if err != nil {
		h.freshnessError(w, err)
		return
	}
	latestGameDate, err := h.store.LatestGameDate(ctx)
	if err != nil {
		h.freshnessError(w, err)
		return
	}
	missingPBP, err := h.store.GamesMissingPlayByPlay(ctx)
	if err != nil {
		h.freshnessError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"seasons":                len(seasons),
		"teams":                  len(teams),
		"players":                players,
		"games":                  games,
		"current_season_id":      currentSeason,
		"latest_final_game_date": latestGameDate,
		"missing_play_by_play":   len(missingPBP),
		"timestamp":              time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *handler) freshnessError(w http.ResponseWriter, err error) {
	h.logger.Error("freshness query failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"error":     "freshness query failed",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
