package db

import (
	"context"
	"fmt"

	"github.com/coldrink/pwhl-data/internal/config"
)

// Migrate creates the mirror schema. Statements are idempotent and run in
// foreign-key dependency order.
func (p *Pool) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := p.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS `+config.LeaguesTable+` (
		id          INTEGER PRIMARY KEY,
		name        TEXT NOT NULL DEFAULT '',
		short_name  TEXT NOT NULL DEFAULT '',
		code        TEXT NOT NULL DEFAULT '',
		logo_url    TEXT NOT NULL DEFAULT '',
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS `+config.ConferencesTable+` (
		id          INTEGER PRIMARY KEY,
		league_id   INTEGER REFERENCES `+config.LeaguesTable+`(id),
		name        TEXT NOT NULL DEFAULT '',
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS `+config.DivisionsTable+` (
		id            INTEGER PRIMARY KEY,
		league_id     INTEGER REFERENCES `+config.LeaguesTable+`(id),
		conference_id INTEGER REFERENCES `+config.ConferencesTable+`(id),
		name          TEXT NOT NULL DEFAULT '',
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS `+config.SeasonsTable+` (
		id          INTEGER PRIMARY KEY,
		name        TEXT NOT NULL DEFAULT '',
		career      BOOLEAN NOT NULL DEFAULT FALSE,
		playoff     BOOLEAN NOT NULL DEFAULT FALSE,
		current     BOOLEAN NOT NULL DEFAULT FALSE,
		start_date  TEXT NOT NULL DEFAULT '',
		end_date    TEXT NOT NULL DEFAULT '',
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	// At most one season may be current.
	`CREATE UNIQUE INDEX IF NOT EXISTS seasons_single_current
		ON `+config.SeasonsTable+` ((TRUE)) WHERE current`,

	`CREATE TABLE IF NOT EXISTS `+config.TeamsTable+` (
		id          INTEGER PRIMARY KEY,
		division_id INTEGER REFERENCES `+config.DivisionsTable+`(id),
		name        TEXT NOT NULL DEFAULT '',
		nickname    TEXT NOT NULL DEFAULT '',
		code        TEXT NOT NULL DEFAULT '',
		city        TEXT NOT NULL DEFAULT '',
		logo_url    TEXT NOT NULL DEFAULT '',
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS `+config.PlayersTable+` (
		id             INTEGER PRIMARY KEY,
		first_name     TEXT NOT NULL DEFAULT '',
		last_name      TEXT NOT NULL DEFAULT '',
		jersey_number  INTEGER NOT NULL DEFAULT 0,
		active         BOOLEAN NOT NULL DEFAULT FALSE,
		rookie         BOOLEAN NOT NULL DEFAULT FALSE,
		position_id    INTEGER NOT NULL DEFAULT 0,
		position       TEXT NOT NULL DEFAULT '',
		height         TEXT NOT NULL DEFAULT '',
		weight         INTEGER NOT NULL DEFAULT 0,
		birthdate      TEXT NOT NULL DEFAULT '',
		shoots         TEXT NOT NULL DEFAULT '',
		catches        TEXT NOT NULL DEFAULT '',
		image_url      TEXT NOT NULL DEFAULT '',
		birth_town     TEXT NOT NULL DEFAULT '',
		birth_prov     TEXT NOT NULL DEFAULT '',
		birth_country  TEXT NOT NULL DEFAULT '',
		nationality    TEXT NOT NULL DEFAULT '',
		draft_type     TEXT NOT NULL DEFAULT '',
		latest_team_id INTEGER REFERENCES `+config.TeamsTable+`(id),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS `+config.GamesTable+` (
		id              INTEGER PRIMARY KEY,
		season_id       INTEGER NOT NULL REFERENCES `+config.SeasonsTable+`(id),
		game_number     INTEGER NOT NULL DEFAULT 0,
		date            TEXT NOT NULL DEFAULT '',
		home_team_id    INTEGER NOT NULL REFERENCES `+config.TeamsTable+`(id),
		visitor_team_id INTEGER NOT NULL REFERENCES `+config.TeamsTable+`(id),
		home_goals      INTEGER NOT NULL DEFAULT 0,
		visitor_goals   INTEGER NOT NULL DEFAULT 0,
		periods         INTEGER NOT NULL DEFAULT 0,
		overtime        BOOLEAN NOT NULL DEFAULT FALSE,
		shootout        BOOLEAN NOT NULL DEFAULT FALSE,
		status          TEXT NOT NULL CHECK (status IN
			('scheduled', 'in_progress', 'final', 'postponed', 'cancelled')),
		venue_name      TEXT NOT NULL DEFAULT '',
		venue_location  TEXT NOT NULL DEFAULT '',
		attendance      INTEGER NOT NULL DEFAULT 0,
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (home_team_id <> visitor_team_id)
	)`,
	`CREATE INDEX IF NOT EXISTS games_season_idx ON `+config.GamesTable+` (season_id)`,
	`CREATE INDEX IF NOT EXISTS games_status_idx ON `+config.GamesTable+` (status)`,

	`CREATE TABLE IF NOT EXISTS `+config.GameStatsSkatersTable+` (
		game_id          INTEGER NOT NULL REFERENCES `+config.GamesTable+`(id),
		player_id        INTEGER NOT NULL REFERENCES `+config.PlayersTable+`(id),
		team_id          INTEGER NOT NULL REFERENCES `+config.TeamsTable+`(id),
		season_id        INTEGER NOT NULL REFERENCES `+config.SeasonsTable+`(id),
		jersey_number    INTEGER NOT NULL DEFAULT 0,
		position         TEXT NOT NULL DEFAULT '',
		goals            INTEGER NOT NULL DEFAULT 0,
		assists          INTEGER NOT NULL DEFAULT 0,
		points           INTEGER NOT NULL DEFAULT 0,
		plus_minus       INTEGER NOT NULL DEFAULT 0,
		penalty_minutes  INTEGER NOT NULL DEFAULT 0,
		shots            INTEGER NOT NULL DEFAULT 0,
		shots_on         INTEGER NOT NULL DEFAULT 0,
		shots_blocked    INTEGER NOT NULL DEFAULT 0,
		faceoff_wins     INTEGER NOT NULL DEFAULT 0,
		faceoff_attempts INTEGER NOT NULL DEFAULT 0,
		hits             INTEGER NOT NULL DEFAULT 0,
		power_play_goals INTEGER NOT NULL DEFAULT 0,
		shorthand_goals  INTEGER NOT NULL DEFAULT 0,
		game_winning_goal BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (game_id, player_id)
	)`,
	`CREATE INDEX IF NOT EXISTS game_stats_skaters_player_idx ON `+config.GameStatsSkatersTable+` (player_id)`,

	`CREATE TABLE IF NOT EXISTS `+config.GameStatsGoaliesTable+` (
		game_id         INTEGER NOT NULL REFERENCES `+config.GamesTable+`(id),
		player_id       INTEGER NOT NULL REFERENCES `+config.PlayersTable+`(id),
		team_id         INTEGER NOT NULL REFERENCES `+config.TeamsTable+`(id),
		season_id       INTEGER NOT NULL REFERENCES `+config.SeasonsTable+`(id),
		jersey_number   INTEGER NOT NULL DEFAULT 0,
		seconds_played  INTEGER NOT NULL DEFAULT 0,
		shots_against   INTEGER NOT NULL DEFAULT 0,
		goals_against   INTEGER NOT NULL DEFAULT 0,
		saves           INTEGER NOT NULL DEFAULT 0,
		goals           INTEGER NOT NULL DEFAULT 0,
		assists         INTEGER NOT NULL DEFAULT 0,
		penalty_minutes INTEGER NOT NULL DEFAULT 0,
		started         BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (game_id, player_id)
	)`,
	`CREATE INDEX IF NOT EXISTS game_stats_goalies_player_idx ON `+config.GameStatsGoaliesTable+` (player_id)`,

	`CREATE TABLE IF NOT EXISTS `+config.GameStatsTeamsTable+` (
		game_id          INTEGER NOT NULL REFERENCES `+config.GamesTable+`(id),
		team_id          INTEGER NOT NULL REFERENCES `+config.TeamsTable+`(id),
		season_id        INTEGER NOT NULL REFERENCES `+config.SeasonsTable+`(id),
		goals            INTEGER NOT NULL DEFAULT 0,
		shots_on_goal    INTEGER NOT NULL DEFAULT 0,
		power_play_total INTEGER NOT NULL DEFAULT 0,
		power_play_goals INTEGER NOT NULL DEFAULT 0,
		faceoff_wins     INTEGER NOT NULL DEFAULT 0,
		hits             INTEGER NOT NULL DEFAULT 0,
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (game_id, team_id)
	)`,

	`CREATE TABLE IF NOT EXISTS `+config.SeasonStatsSkatersTable+` (
		season_id          INTEGER NOT NULL REFERENCES `+config.SeasonsTable+`(id),
		player_id          INTEGER NOT NULL REFERENCES `+config.PlayersTable+`(id),
		team_id            INTEGER,
		games_played       INTEGER NOT NULL DEFAULT 0,
		goals              INTEGER NOT NULL DEFAULT 0,
		assists            INTEGER NOT NULL DEFAULT 0,
		points             INTEGER NOT NULL DEFAULT 0,
		points_per_game    DOUBLE PRECISION NOT NULL DEFAULT 0,
		plus_minus         INTEGER NOT NULL DEFAULT 0,
		penalty_minutes    INTEGER NOT NULL DEFAULT 0,
		power_play_goals   INTEGER NOT NULL DEFAULT 0,
		power_play_assists INTEGER NOT NULL DEFAULT 0,
		shorthand_goals    INTEGER NOT NULL DEFAULT 0,
		shots              INTEGER NOT NULL DEFAULT 0,
		shooting_pct       DOUBLE PRECISION NOT NULL DEFAULT 0,
		faceoff_wins       INTEGER NOT NULL DEFAULT 0,
		faceoff_attempts   INTEGER NOT NULL DEFAULT 0,
		faceoff_pct        DOUBLE PRECISION NOT NULL DEFAULT 0,
		shootout_goals     INTEGER NOT NULL DEFAULT 0,
		shootout_attempts  INTEGER NOT NULL DEFAULT 0,
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (season_id, player_id)
	)`,
	`CREATE INDEX IF NOT EXISTS season_stats_skaters_player_idx ON `+config.SeasonStatsSkatersTable+` (player_id)`,

	`CREATE TABLE IF NOT EXISTS `+config.SeasonStatsGoaliesTable+` (
		season_id         INTEGER NOT NULL REFERENCES `+config.SeasonsTable+`(id),
		player_id         INTEGER NOT NULL REFERENCES `+config.PlayersTable+`(id),
		team_id           INTEGER,
		games_played      INTEGER NOT NULL DEFAULT 0,
		seconds_played    INTEGER NOT NULL DEFAULT 0,
		saves             INTEGER NOT NULL DEFAULT 0,
		shots_against     INTEGER NOT NULL DEFAULT 0,
		save_pct          DOUBLE PRECISION NOT NULL DEFAULT 0,
		goals_against     INTEGER NOT NULL DEFAULT 0,
		goals_against_avg DOUBLE PRECISION NOT NULL DEFAULT 0,
		shutouts          INTEGER NOT NULL DEFAULT 0,
		wins              INTEGER NOT NULL DEFAULT 0,
		losses            INTEGER NOT NULL DEFAULT 0,
		ot_losses         INTEGER NOT NULL DEFAULT 0,
		shootout_wins     INTEGER NOT NULL DEFAULT 0,
		shootout_losses   INTEGER NOT NULL DEFAULT 0,
		penalty_minutes   INTEGER NOT NULL DEFAULT 0,
		assists           INTEGER NOT NULL DEFAULT 0,
		points            INTEGER NOT NULL DEFAULT 0,
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (season_id, player_id)
	)`,
	`CREATE INDEX IF NOT EXISTS season_stats_goalies_player_idx ON `+config.SeasonStatsGoaliesTable+` (player_id)`,

	`CREATE TABLE IF NOT EXISTS `+config.SeasonStatsTeamsTable+` (
		season_id           INTEGER NOT NULL REFERENCES `+config.SeasonsTable+`(id),
		team_id             INTEGER NOT NULL REFERENCES `+config.TeamsTable+`(id),
		division_id         INTEGER,
		games_played        INTEGER NOT NULL DEFAULT 0,
		wins                INTEGER NOT NULL DEFAULT 0,
		losses              INTEGER NOT NULL DEFAULT 0,
		ot_losses           INTEGER NOT NULL DEFAULT 0,
		shootout_wins       INTEGER NOT NULL DEFAULT 0,
		shootout_losses     INTEGER NOT NULL DEFAULT 0,
		regulation_wins     INTEGER NOT NULL DEFAULT 0,
		points              INTEGER NOT NULL DEFAULT 0,
		win_pct             DOUBLE PRECISION NOT NULL DEFAULT 0,
		goals_for           INTEGER NOT NULL DEFAULT 0,
		goals_against       INTEGER NOT NULL DEFAULT 0,
		power_play_goals    INTEGER NOT NULL DEFAULT 0,
		power_play_pct      DOUBLE PRECISION NOT NULL DEFAULT 0,
		penalty_kill_pct    DOUBLE PRECISION NOT NULL DEFAULT 0,
		penalty_minutes     INTEGER NOT NULL DEFAULT 0,
		shorthand_goals_for INTEGER NOT NULL DEFAULT 0,
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (season_id, team_id)
	)`,

	`CREATE TABLE IF NOT EXISTS `+config.PlayoffRoundsTable+` (
		id         TEXT PRIMARY KEY,
		season_id  INTEGER NOT NULL REFERENCES `+config.SeasonsTable+`(id),
		round      INTEGER NOT NULL,
		name       TEXT NOT NULL DEFAULT '',
		type_name  TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (season_id, round)
	)`,

	`CREATE TABLE IF NOT EXISTS `+config.PlayoffSeriesTable+` (
		id             TEXT PRIMARY KEY,
		round_id       TEXT NOT NULL REFERENCES `+config.PlayoffRoundsTable+`(id),
		season_id      INTEGER NOT NULL REFERENCES `+config.SeasonsTable+`(id),
		letter         TEXT NOT NULL,
		team1_id       INTEGER REFERENCES `+config.TeamsTable+`(id),
		team2_id       INTEGER REFERENCES `+config.TeamsTable+`(id),
		team1_wins     INTEGER NOT NULL DEFAULT 0,
		team2_wins     INTEGER NOT NULL DEFAULT 0,
		winner_team_id INTEGER REFERENCES `+config.TeamsTable+`(id),
		feeder_series  TEXT NOT NULL DEFAULT '',
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (round_id, letter)
	)`,

	`CREATE TABLE IF NOT EXISTS `+config.PlayoffGamesTable+` (
		id         TEXT PRIMARY KEY,
		series_id  TEXT NOT NULL REFERENCES `+config.PlayoffSeriesTable+`(id),
		season_id  INTEGER NOT NULL REFERENCES `+config.SeasonsTable+`(id),
		game_id    INTEGER NOT NULL REFERENCES `+config.GamesTable+`(id),
		number     INTEGER NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (series_id, game_id)
	)`,

	`CREATE TABLE IF NOT EXISTS `+config.PBPGoalsTable+` (
		id               TEXT PRIMARY KEY,
		game_id          INTEGER NOT NULL REFERENCES `+config.GamesTable+`(id),
		season_id        INTEGER NOT NULL,
		period           INTEGER NOT NULL,
		time             TEXT NOT NULL DEFAULT '',
		seconds          INTEGER NOT NULL DEFAULT 0,
		team_id          INTEGER NOT NULL,
		home             BOOLEAN NOT NULL DEFAULT FALSE,
		scorer_id        INTEGER NOT NULL,
		assist1_id       INTEGER,
		assist2_id       INTEGER,
		opponent_team_id INTEGER NOT NULL DEFAULT 0,
		location_x       INTEGER NOT NULL DEFAULT 0,
		location_y       INTEGER NOT NULL DEFAULT 0,
		scorer_goal_num  INTEGER NOT NULL DEFAULT 0,
		goal_type        TEXT NOT NULL DEFAULT '',
		power_play       BOOLEAN NOT NULL DEFAULT FALSE,
		empty_net        BOOLEAN NOT NULL DEFAULT FALSE,
		penalty_shot     BOOLEAN NOT NULL DEFAULT FALSE,
		short_handed     BOOLEAN NOT NULL DEFAULT FALSE,
		insurance        BOOLEAN NOT NULL DEFAULT FALSE,
		game_winning     BOOLEAN NOT NULL DEFAULT FALSE,
		game_tieing      BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS pbp_goals_game_idx ON `+config.PBPGoalsTable+` (game_id, period, seconds)`,

	`CREATE TABLE IF NOT EXISTS `+config.PBPGoalsPlusTable+` (
		goal_id       TEXT NOT NULL REFERENCES `+config.PBPGoalsTable+`(id) ON DELETE CASCADE,
		player_id     INTEGER NOT NULL,
		jersey_number INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (goal_id, player_id)
	)`,

	`CREATE TABLE IF NOT EXISTS `+config.PBPGoalsMinusTable+` (
		goal_id       TEXT NOT NULL REFERENCES `+config.PBPGoalsTable+`(id) ON DELETE CASCADE,
		player_id     INTEGER NOT NULL,
		jersey_number INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (goal_id, player_id)
	)`,

	`CREATE TABLE IF NOT EXISTS `+config.PBPShotsTable+` (
		id               TEXT PRIMARY KEY,
		game_id          INTEGER NOT NULL REFERENCES `+config.GamesTable+`(id),
		season_id        INTEGER NOT NULL,
		period           INTEGER NOT NULL,
		time             TEXT NOT NULL DEFAULT '',
		seconds          INTEGER NOT NULL DEFAULT 0,
		team_id          INTEGER NOT NULL,
		home             BOOLEAN NOT NULL DEFAULT FALSE,
		shooter_id       INTEGER NOT NULL,
		goalie_id        INTEGER,
		opponent_team_id INTEGER NOT NULL DEFAULT 0,
		location_x       INTEGER NOT NULL DEFAULT 0,
		location_y       INTEGER NOT NULL DEFAULT 0,
		shot_type        TEXT NOT NULL DEFAULT '',
		quality          TEXT NOT NULL DEFAULT '',
		is_goal          BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS pbp_shots_game_idx ON `+config.PBPShotsTable+` (game_id, period, seconds)`,

	`CREATE TABLE IF NOT EXISTS `+config.PBPBlockedShotsTable+` (
		id               TEXT PRIMARY KEY,
		game_id          INTEGER NOT NULL REFERENCES `+config.GamesTable+`(id),
		season_id        INTEGER NOT NULL,
		period           INTEGER NOT NULL,
		time             TEXT NOT NULL DEFAULT '',
		seconds          INTEGER NOT NULL DEFAULT 0,
		team_id          INTEGER NOT NULL,
		home             BOOLEAN NOT NULL DEFAULT FALSE,
		shooter_id       INTEGER NOT NULL,
		blocker_id       INTEGER NOT NULL,
		opponent_team_id INTEGER NOT NULL DEFAULT 0,
		location_x       INTEGER NOT NULL DEFAULT 0,
		location_y       INTEGER NOT NULL DEFAULT 0,
		shot_type        TEXT NOT NULL DEFAULT '',
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS pbp_blocked_shots_game_idx ON `+config.PBPBlockedShotsTable+` (game_id, period, seconds)`,

	`CREATE TABLE IF NOT EXISTS `+config.PBPFaceoffsTable+` (
		id                TEXT PRIMARY KEY,
		game_id           INTEGER NOT NULL REFERENCES `+config.GamesTable+`(id),
		season_id         INTEGER NOT NULL,
		period            INTEGER NOT NULL,
		time              TEXT NOT NULL DEFAULT '',
		seconds           INTEGER NOT NULL DEFAULT 0,
		team_id           INTEGER NOT NULL,
		home              BOOLEAN NOT NULL DEFAULT FALSE,
		home_player_id    INTEGER NOT NULL DEFAULT 0,
		visitor_player_id INTEGER NOT NULL DEFAULT 0,
		home_win          BOOLEAN NOT NULL DEFAULT FALSE,
		location_x        INTEGER NOT NULL DEFAULT 0,
		location_y        INTEGER NOT NULL DEFAULT 0,
		location_id       INTEGER NOT NULL DEFAULT 0,
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS pbp_faceoffs_game_idx ON `+config.PBPFaceoffsTable+` (game_id, period, seconds)`,

	`CREATE TABLE IF NOT EXISTS `+config.PBPHitsTable+` (
		id         TEXT PRIMARY KEY,
		game_id    INTEGER NOT NULL REFERENCES `+config.GamesTable+`(id),
		season_id  INTEGER NOT NULL,
		period     INTEGER NOT NULL,
		time       TEXT NOT NULL DEFAULT '',
		seconds    INTEGER NOT NULL DEFAULT 0,
		team_id    INTEGER NOT NULL,
		home       BOOLEAN NOT NULL DEFAULT FALSE,
		player_id  INTEGER NOT NULL,
		location_x INTEGER NOT NULL DEFAULT 0,
		location_y INTEGER NOT NULL DEFAULT 0,
		plus       BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS pbp_hits_game_idx ON `+config.PBPHitsTable+` (game_id, period, seconds)`,

	`CREATE TABLE IF NOT EXISTS `+config.PBPPenaltiesTable+` (
		id            TEXT PRIMARY KEY,
		game_id       INTEGER NOT NULL REFERENCES `+config.GamesTable+`(id),
		season_id     INTEGER NOT NULL,
		period        INTEGER NOT NULL,
		time          TEXT NOT NULL DEFAULT '',
		seconds       INTEGER NOT NULL DEFAULT 0,
		team_id       INTEGER NOT NULL,
		home          BOOLEAN NOT NULL DEFAULT FALSE,
		player_id     INTEGER,
		served_by_id  INTEGER,
		minutes       DOUBLE PRECISION NOT NULL DEFAULT 0,
		description   TEXT NOT NULL DEFAULT '',
		penalty_class TEXT NOT NULL DEFAULT '',
		offence_code  TEXT NOT NULL DEFAULT '',
		power_play    BOOLEAN NOT NULL DEFAULT FALSE,
		bench_penalty BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS pbp_penalties_game_idx ON `+config.PBPPenaltiesTable+` (game_id, period, seconds)`,

	`CREATE TABLE IF NOT EXISTS `+config.PBPGoalieChangesTable+` (
		id            TEXT PRIMARY KEY,
		game_id       INTEGER NOT NULL REFERENCES `+config.GamesTable+`(id),
		season_id     INTEGER NOT NULL,
		period        INTEGER NOT NULL,
		time          TEXT NOT NULL DEFAULT '',
		seconds       INTEGER NOT NULL DEFAULT 0,
		team_id       INTEGER NOT NULL,
		home          BOOLEAN NOT NULL DEFAULT FALSE,
		goalie_in_id  INTEGER,
		goalie_out_id INTEGER,
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS pbp_goalie_changes_game_idx ON `+config.PBPGoalieChangesTable+` (game_id, period, seconds)`,

	`CREATE TABLE IF NOT EXISTS `+config.PBPShootoutsTable+` (
		id           TEXT PRIMARY KEY,
		game_id      INTEGER NOT NULL REFERENCES `+config.GamesTable+`(id),
		season_id    INTEGER NOT NULL,
		period       INTEGER NOT NULL,
		time         TEXT NOT NULL DEFAULT '',
		seconds      INTEGER NOT NULL DEFAULT 0,
		team_id      INTEGER NOT NULL,
		home         BOOLEAN NOT NULL DEFAULT FALSE,
		shooter_id   INTEGER NOT NULL,
		goalie_id    INTEGER,
		shot_order   INTEGER NOT NULL DEFAULT 0,
		is_goal      BOOLEAN NOT NULL DEFAULT FALSE,
		game_winning BOOLEAN NOT NULL DEFAULT FALSE,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS pbp_shootouts_game_idx ON `+config.PBPShootoutsTable+` (game_id, shot_order)`,

	`CREATE TABLE IF NOT EXISTS `+config.PBPOtherTable+` (
		id         TEXT PRIMARY KEY,
		game_id    INTEGER NOT NULL REFERENCES `+config.GamesTable+`(id),
		season_id  INTEGER NOT NULL,
		period     INTEGER NOT NULL DEFAULT 0,
		time       TEXT NOT NULL DEFAULT '',
		seconds    INTEGER NOT NULL DEFAULT 0,
		team_id    INTEGER NOT NULL DEFAULT 0,
		home       BOOLEAN NOT NULL DEFAULT FALSE,
		event_type TEXT NOT NULL DEFAULT '',
		payload    JSONB,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS pbp_other_game_idx ON `+config.PBPOtherTable+` (game_id, period, seconds)`,
}
