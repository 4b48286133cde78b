// Package config provides centralized configuration loaded from environment
// variables. Shared by every pwhl-sync subcommand.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Table names — single source of truth, matches the DDL in internal/db
// --------------------------------------------------------------------------

const (
	LeaguesTable     = "leagues"
	ConferencesTable = "conferences"
	DivisionsTable   = "divisions"
	SeasonsTable     = "seasons"
	TeamsTable       = "teams"
	PlayersTable     = "players"
	GamesTable       = "games"

	GameStatsSkatersTable = "game_stats_skaters"
	GameStatsGoaliesTable = "game_stats_goalies"
	GameStatsTeamsTable   = "game_stats_teams"

	SeasonStatsSkatersTable = "season_stats_skaters"
	SeasonStatsGoaliesTable = "season_stats_goalies"
	SeasonStatsTeamsTable   = "season_stats_teams"

	PlayoffRoundsTable = "playoff_rounds"
	PlayoffSeriesTable = "playoff_series"
	PlayoffGamesTable  = "playoff_games"

	PBPGoalsTable         = "pbp_goals"
	PBPGoalsPlusTable     = "pbp_goals_plus"
	PBPGoalsMinusTable    = "pbp_goals_minus"
	PBPShotsTable         = "pbp_shots"
	PBPBlockedShotsTable  = "pbp_blocked_shots"
	PBPFaceoffsTable      = "pbp_faceoffs"
	PBPHitsTable          = "pbp_hits"
	PBPPenaltiesTable     = "pbp_penalties"
	PBPGoalieChangesTable = "pbp_goalie_changes"
	PBPShootoutsTable     = "pbp_shootouts"
	PBPOtherTable         = "pbp_other"
)

// ClockMode selects how play-by-play clock times are converted to the
// elapsed-seconds ordering column.
type ClockMode string

const (
	// ClockModePeriod stores seconds elapsed within the event's period.
	ClockModePeriod ClockMode = "period"
	// ClockModeRunning stores seconds elapsed since the opening faceoff,
	// assuming 20-minute periods.
	ClockModeRunning ClockMode = "running"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// HockeyTech feed
	FeedBaseURL    string
	FeedKey        string
	FeedClientCode string
	FeedRatePerSec float64
	FeedMaxRetries int
	FeedTimeout    time.Duration

	// Sync
	FetchWorkers int
	PBPClockMode ClockMode

	// Ops API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("PWHL_DATABASE_URL", envOr("DATABASE_URL", ""))
	if dbURL == "" {
		return nil, fmt.Errorf("PWHL_DATABASE_URL or DATABASE_URL must be set")
	}

	feedKey := envOr("HOCKEYTECH_KEY", "")
	if feedKey == "" {
		return nil, fmt.Errorf("HOCKEYTECH_KEY must be set")
	}

	clockMode := ClockMode(envOr("PBP_CLOCK_MODE", string(ClockModePeriod)))
	switch clockMode {
	case ClockModePeriod, ClockModeRunning:
	default:
		return nil, fmt.Errorf("PBP_CLOCK_MODE must be %q or %q, got %q",
			ClockModePeriod, ClockModeRunning, clockMode)
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		FeedBaseURL:    envOr("HOCKEYTECH_BASE_URL", "https://lscluster.hockeytech.com/feed/"),
		FeedKey:        feedKey,
		FeedClientCode: envOr("HOCKEYTECH_CLIENT_CODE", "pwhl"),
		FeedRatePerSec: envFloat("HOCKEYTECH_RATE_PER_SEC", 5),
		FeedMaxRetries: envInt("HOCKEYTECH_MAX_RETRIES", 3),
		FeedTimeout:    time.Duration(envInt("HOCKEYTECH_TIMEOUT_SECONDS", 30)) * time.Second,

		FetchWorkers: envInt("FETCH_WORKERS", 4),
		PBPClockMode: clockMode,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
