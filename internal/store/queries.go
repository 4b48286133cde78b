package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// The lookup queries below run through the prepared statements registered in
// internal/db. The orchestrator uses them to resolve scope (which seasons,
// which games) without refetching from the feed.

func (s *Store) intColumn(ctx context.Context, stmt string, args ...any) ([]int, error) {
	rows, err := s.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", stmt, err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("%s: %w", stmt, err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// SeasonIDs returns every known season id.
func (s *Store) SeasonIDs(ctx context.Context) ([]int, error) {
	return s.intColumn(ctx, "season_ids")
}

// PlayoffSeasonIDs returns the ids of playoff seasons.
func (s *Store) PlayoffSeasonIDs(ctx context.Context) ([]int, error) {
	return s.intColumn(ctx, "playoff_season_ids")
}

// CurrentSeasonID returns the current season id, or 0 when no season is
// flagged current yet.
func (s *Store) CurrentSeasonID(ctx context.Context) (int, error) {
	var id int
	err := s.pool.QueryRow(ctx, "current_season_id").Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("current_season_id: %w", err)
	}
	return id, nil
}

// SeasonExists reports whether a season is already mirrored.
func (s *Store) SeasonExists(ctx context.Context, seasonID int) (bool, error) {
	return s.exists(ctx, "season_exists", seasonID)
}

// TeamIDs returns every known team id.
func (s *Store) TeamIDs(ctx context.Context) ([]int, error) {
	return s.intColumn(ctx, "team_ids")
}

// TeamExists reports whether a team is already mirrored.
func (s *Store) TeamExists(ctx context.Context, teamID int) (bool, error) {
	return s.exists(ctx, "team_exists", teamID)
}

func (s *Store) exists(ctx context.Context, stmt string, id int) (bool, error) {
	var one int
	err := s.pool.QueryRow(ctx, stmt, id).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", stmt, err)
	}
	return true, nil
}

// PlayerCount returns the number of mirrored players.
func (s *Store) PlayerCount(ctx context.Context) (int, error) {
	return s.count(ctx, "player_count")
}

// GameCount returns the number of mirrored games.
func (s *Store) GameCount(ctx context.Context) (int, error) {
	return s.count(ctx, "game_count")
}

func (s *Store) count(ctx context.Context, stmt string) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, stmt).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", stmt, err)
	}
	return n, nil
}

// GamesForSeason returns every mirrored game id of a season.
func (s *Store) GamesForSeason(ctx context.Context, seasonID int) ([]int, error) {
	return s.intColumn(ctx, "games_for_season", seasonID)
}

// FinalGameIDs returns the finished games of a season.
func (s *Store) FinalGameIDs(ctx context.Context, seasonID int) ([]int, error) {
	return s.intColumn(ctx, "final_game_ids", seasonID)
}

// GameSeason returns the season a mirrored game belongs to, or 0 when the
// game is not mirrored yet.
func (s *Store) GameSeason(ctx context.Context, gameID int) (int, error) {
	var seasonID int
	err := s.pool.QueryRow(ctx, "game_season", gameID).Scan(&seasonID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("game_season: %w", err)
	}
	return seasonID, nil
}

// GamesMissingPlayByPlay returns finished games with no mirrored events yet.
func (s *Store) GamesMissingPlayByPlay(ctx context.Context) ([]int, error) {
	return s.intColumn(ctx, "games_missing_pbp")
}

// LatestGameDate returns the date of the most recent finished game, empty
// when no game has finished.
func (s *Store) LatestGameDate(ctx context.Context) (string, error) {
	var date string
	if err := s.pool.QueryRow(ctx, "latest_game_date").Scan(&date); err != nil {
		return "", fmt.Errorf("latest_game_date: %w", err)
	}
	return date, nil
}
