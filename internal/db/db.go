// Package db provides a pgxpool-based connection pool with prepared statement
// registration, health checking and the mirror schema DDL.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coldrink/pwhl-data/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers the hot lookup queries the sync
// orchestrator and the ops API use to resolve scope. Upserts use inline SQL
// inside transactions and are not prepared here.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Scope resolution: seasons
		"season_ids":         "SELECT id FROM " + config.SeasonsTable + " ORDER BY id",
		"playoff_season_ids": "SELECT id FROM " + config.SeasonsTable + " WHERE playoff ORDER BY id",
		"current_season_id":  "SELECT id FROM " + config.SeasonsTable + " WHERE current LIMIT 1",
		"season_exists":      "SELECT 1 FROM " + config.SeasonsTable + " WHERE id = $1",

		// Scope resolution: teams
		"team_ids":    "SELECT id FROM " + config.TeamsTable + " ORDER BY id",
		"team_exists": "SELECT 1 FROM " + config.TeamsTable + " WHERE id = $1",

		// Scope resolution: prerequisite checks
		"player_count": "SELECT COUNT(*) FROM " + config.PlayersTable,
		"game_count":   "SELECT COUNT(*) FROM " + config.GamesTable,

		// Scope resolution: games
		"games_for_season":  "SELECT id FROM " + config.GamesTable + " WHERE season_id = $1 ORDER BY id",
		"final_game_ids":    "SELECT id FROM " + config.GamesTable + " WHERE season_id = $1 AND status = 'final' ORDER BY id",
		"game_season":       "SELECT season_id FROM " + config.GamesTable + " WHERE id = $1",
		"games_missing_pbp": `SELECT g.id FROM ` + config.GamesTable + ` g
			WHERE g.status = 'final'
			  AND NOT EXISTS (SELECT 1 FROM ` + config.PBPFaceoffsTable + ` f WHERE f.game_id = g.id)
			  AND NOT EXISTS (SELECT 1 FROM ` + config.PBPShotsTable + ` s WHERE s.game_id = g.id)
			ORDER BY g.id`,

		// Ops API: freshness
		"latest_game_date": "SELECT COALESCE(MAX(date), '') FROM " + config.GamesTable + " WHERE status = 'final'",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
