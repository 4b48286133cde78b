package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/coldrink/pwhl-data/internal/config"
	"github.com/coldrink/pwhl-data/internal/model"
)

// nullableID maps the feed's "0 means none" convention to NULL so loose
// references stay honest.
func nullableID(id int) *int {
	if id == 0 {
		return nil
	}
	return &id
}

func badRecord(kind model.Kind, rec model.Record) error {
	return fmt.Errorf("expected %s record, got %T", kind, rec)
}

func upsertLeague(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	l, ok := rec.(model.League)
	if !ok {
		return badRecord(model.KindLeague, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.LeaguesTable+` (id, name, short_name, code, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			short_name = EXCLUDED.short_name,
			code = EXCLUDED.code,
			logo_url = EXCLUDED.logo_url,
			updated_at = NOW()`,
		l.ID, l.Name, l.ShortName, l.Code, l.LogoURL)
	return err
}

func upsertConference(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	c, ok := rec.(model.Conference)
	if !ok {
		return badRecord(model.KindConference, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.ConferencesTable+` (id, league_id, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			league_id = EXCLUDED.league_id,
			name = EXCLUDED.name,
			updated_at = NOW()`,
		c.ID, nullableID(c.LeagueID), c.Name)
	return err
}

func upsertDivision(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	d, ok := rec.(model.Division)
	if !ok {
		return badRecord(model.KindDivision, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.DivisionsTable+` (id, league_id, conference_id, name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			league_id = EXCLUDED.league_id,
			conference_id = EXCLUDED.conference_id,
			name = EXCLUDED.name,
			updated_at = NOW()`,
		d.ID, nullableID(d.LeagueID), d.ConferenceID, d.Name)
	return err
}

// upsertSeason clears any other current flag first so the single-current
// invariant holds within the transaction.
func upsertSeason(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	s, ok := rec.(model.Season)
	if !ok {
		return badRecord(model.KindSeason, rec)
	}
	if s.Current {
		if _, err := tx.Exec(ctx, `UPDATE `+config.SeasonsTable+` SET current = FALSE WHERE current AND id <> $1`, s.ID); err != nil {
			return err
		}
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.SeasonsTable+` (id, name, career, playoff, current, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			career = EXCLUDED.career,
			playoff = EXCLUDED.playoff,
			current = EXCLUDED.current,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			updated_at = NOW()`,
		s.ID, s.Name, s.Career, s.Playoff, s.Current, s.StartDate, s.EndDate)
	return err
}

func upsertTeam(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	t, ok := rec.(model.Team)
	if !ok {
		return badRecord(model.KindTeam, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.TeamsTable+` (id, division_id, name, nickname, code, city, logo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			division_id = EXCLUDED.division_id,
			name = EXCLUDED.name,
			nickname = EXCLUDED.nickname,
			code = EXCLUDED.code,
			city = EXCLUDED.city,
			logo_url = EXCLUDED.logo_url,
			updated_at = NOW()`,
		t.ID, t.DivisionID, t.Name, t.Nickname, t.Code, t.City, t.LogoURL)
	return err
}

func upsertPlayer(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	p, ok := rec.(model.Player)
	if !ok {
		return badRecord(model.KindPlayer, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.PlayersTable+` (id, first_name, last_name, jersey_number, active, rookie,
			position_id, position, height, weight, birthdate, shoots, catches,
			image_url, birth_town, birth_prov, birth_country, nationality,
			draft_type, latest_team_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			jersey_number = EXCLUDED.jersey_number,
			active = EXCLUDED.active,
			rookie = EXCLUDED.rookie,
			position_id = EXCLUDED.position_id,
			position = EXCLUDED.position,
			height = EXCLUDED.height,
			weight = EXCLUDED.weight,
			birthdate = EXCLUDED.birthdate,
			shoots = EXCLUDED.shoots,
			catches = EXCLUDED.catches,
			image_url = EXCLUDED.image_url,
			birth_town = EXCLUDED.birth_town,
			birth_prov = EXCLUDED.birth_prov,
			birth_country = EXCLUDED.birth_country,
			nationality = EXCLUDED.nationality,
			draft_type = EXCLUDED.draft_type,
			latest_team_id = COALESCE(EXCLUDED.latest_team_id, `+config.PlayersTable+`.latest_team_id),
			updated_at = NOW()`,
		p.ID, p.FirstName, p.LastName, p.JerseyNumber, p.Active, p.Rookie,
		p.PositionID, p.Position, p.Height, p.Weight, p.Birthdate, p.Shoots,
		p.Catches, p.ImageURL, p.BirthTown, p.BirthProv, p.BirthCountry,
		p.Nationality, p.DraftType, p.LatestTeamID)
	return err
}

func upsertGame(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	g, ok := rec.(model.Game)
	if !ok {
		return badRecord(model.KindGame, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.GamesTable+` (id, season_id, game_number, date, home_team_id,
			visitor_team_id, home_goals, visitor_goals, periods, overtime,
			shootout, status, venue_name, venue_location, attendance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			season_id = EXCLUDED.season_id,
			game_number = EXCLUDED.game_number,
			date = EXCLUDED.date,
			home_team_id = EXCLUDED.home_team_id,
			visitor_team_id = EXCLUDED.visitor_team_id,
			home_goals = EXCLUDED.home_goals,
			visitor_goals = EXCLUDED.visitor_goals,
			periods = EXCLUDED.periods,
			overtime = EXCLUDED.overtime,
			shootout = EXCLUDED.shootout,
			status = EXCLUDED.status,
			venue_name = EXCLUDED.venue_name,
			venue_location = EXCLUDED.venue_location,
			attendance = EXCLUDED.attendance,
			updated_at = NOW()`,
		g.ID, g.SeasonID, g.GameNumber, g.Date, g.HomeTeamID, g.VisitorTeamID,
		g.HomeGoals, g.VisitorGoals, g.Periods, g.Overtime, g.Shootout,
		string(g.Status), g.VenueName, g.VenueLocation, g.Attendance)
	return err
}

func upsertGameStatSkater(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	s, ok := rec.(model.GameStatSkater)
	if !ok {
		return badRecord(model.KindGameStatSkater, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.GameStatsSkatersTable+` (game_id, player_id, team_id, season_id,
			jersey_number, position, goals, assists, points, plus_minus,
			penalty_minutes, shots, shots_on, shots_blocked, faceoff_wins,
			faceoff_attempts, hits, power_play_goals, shorthand_goals,
			game_winning_goal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20)
		ON CONFLICT (game_id, player_id) DO UPDATE SET
			team_id = EXCLUDED.team_id,
			season_id = EXCLUDED.season_id,
			jersey_number = EXCLUDED.jersey_number,
			position = EXCLUDED.position,
			goals = EXCLUDED.goals,
			assists = EXCLUDED.assists,
			points = EXCLUDED.points,
			plus_minus = EXCLUDED.plus_minus,
			penalty_minutes = EXCLUDED.penalty_minutes,
			shots = EXCLUDED.shots,
			shots_on = EXCLUDED.shots_on,
			shots_blocked = EXCLUDED.shots_blocked,
			faceoff_wins = EXCLUDED.faceoff_wins,
			faceoff_attempts = EXCLUDED.faceoff_attempts,
			hits = EXCLUDED.hits,
			power_play_goals = EXCLUDED.power_play_goals,
			shorthand_goals = EXCLUDED.shorthand_goals,
			game_winning_goal = EXCLUDED.game_winning_goal,
			updated_at = NOW()`,
		s.GameID, s.PlayerID, s.TeamID, s.SeasonID, s.JerseyNumber, s.Position,
		s.Goals, s.Assists, s.Points, s.PlusMinus, s.PenaltyMinutes, s.Shots,
		s.ShotsOn, s.ShotsBlocked, s.FaceoffWins, s.FaceoffAttempts, s.Hits,
		s.PowerPlayGoals, s.ShorthandGoals, s.GameWinningGoal)
	return err
}

func upsertGameStatGoalie(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	g, ok := rec.(model.GameStatGoalie)
	if !ok {
		return badRecord(model.KindGameStatGoalie, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.GameStatsGoaliesTable+` (game_id, player_id, team_id, season_id,
			jersey_number, seconds_played, shots_against, goals_against, saves,
			goals, assists, penalty_minutes, started)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (game_id, player_id) DO UPDATE SET
			team_id = EXCLUDED.team_id,
			season_id = EXCLUDED.season_id,
			jersey_number = EXCLUDED.jersey_number,
			seconds_played = EXCLUDED.seconds_played,
			shots_against = EXCLUDED.shots_against,
			goals_against = EXCLUDED.goals_against,
			saves = EXCLUDED.saves,
			goals = EXCLUDED.goals,
			assists = EXCLUDED.assists,
			penalty_minutes = EXCLUDED.penalty_minutes,
			started = EXCLUDED.started,
			updated_at = NOW()`,
		g.GameID, g.PlayerID, g.TeamID, g.SeasonID, g.JerseyNumber,
		g.SecondsPlayed, g.ShotsAgainst, g.GoalsAgainst, g.Saves, g.Goals,
		g.Assists, g.PenaltyMinutes, g.Started)
	return err
}

func upsertGameStatTeam(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	t, ok := rec.(model.GameStatTeam)
	if !ok {
		return badRecord(model.KindGameStatTeam, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.GameStatsTeamsTable+` (game_id, team_id, season_id, goals,
			shots_on_goal, power_play_total, power_play_goals, faceoff_wins, hits)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (game_id, team_id) DO UPDATE SET
			season_id = EXCLUDED.season_id,
			goals = EXCLUDED.goals,
			shots_on_goal = EXCLUDED.shots_on_goal,
			power_play_total = EXCLUDED.power_play_total,
			power_play_goals = EXCLUDED.power_play_goals,
			faceoff_wins = EXCLUDED.faceoff_wins,
			hits = EXCLUDED.hits,
			updated_at = NOW()`,
		t.GameID, t.TeamID, t.SeasonID, t.Goals, t.ShotsOnGoal,
		t.PowerPlayTotal, t.PowerPlayGoals, t.FaceoffWins, t.Hits)
	return err
}

func upsertSeasonStatSkater(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	s, ok := rec.(model.SeasonStatSkater)
	if !ok {
		return badRecord(model.KindSeasonStatSkater, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.SeasonStatsSkatersTable+` (season_id, player_id, team_id,
			games_played, goals, assists, points, points_per_game, plus_minus,
			penalty_minutes, power_play_goals, power_play_assists,
			shorthand_goals, shots, shooting_pct, faceoff_wins,
			faceoff_attempts, faceoff_pct, shootout_goals, shootout_attempts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20)
		ON CONFLICT (season_id, player_id) DO UPDATE SET
			team_id = EXCLUDED.team_id,
			games_played = EXCLUDED.games_played,
			goals = EXCLUDED.goals,
			assists = EXCLUDED.assists,
			points = EXCLUDED.points,
			points_per_game = EXCLUDED.points_per_game,
			plus_minus = EXCLUDED.plus_minus,
			penalty_minutes = EXCLUDED.penalty_minutes,
			power_play_goals = EXCLUDED.power_play_goals,
			power_play_assists = EXCLUDED.power_play_assists,
			shorthand_goals = EXCLUDED.shorthand_goals,
			shots = EXCLUDED.shots,
			shooting_pct = EXCLUDED.shooting_pct,
			faceoff_wins = EXCLUDED.faceoff_wins,
			faceoff_attempts = EXCLUDED.faceoff_attempts,
			faceoff_pct = EXCLUDED.faceoff_pct,
			shootout_goals = EXCLUDED.shootout_goals,
			shootout_attempts = EXCLUDED.shootout_attempts,
			updated_at = NOW()`,
		s.SeasonID, s.PlayerID, nullableID(s.TeamID), s.GamesPlayed, s.Goals,
		s.Assists, s.Points, s.PointsPerGame, s.PlusMinus, s.PenaltyMinutes,
		s.PowerPlayGoals, s.PowerPlayAssists, s.ShorthandGoals, s.Shots,
		s.ShootingPct, s.FaceoffWins, s.FaceoffAttempts, s.FaceoffPct,
		s.ShootoutGoals, s.ShootoutAttempts)
	return err
}

func upsertSeasonStatGoalie(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	g, ok := rec.(model.SeasonStatGoalie)
	if !ok {
		return badRecord(model.KindSeasonStatGoalie, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.SeasonStatsGoaliesTable+` (season_id, player_id, team_id,
			games_played, seconds_played, saves, shots_against, save_pct,
			goals_against, goals_against_avg, shutouts, wins, losses,
			ot_losses, shootout_wins, shootout_losses, penalty_minutes,
			assists, points)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19)
		ON CONFLICT (season_id, player_id) DO UPDATE SET
			team_id = EXCLUDED.team_id,
			games_played = EXCLUDED.games_played,
			seconds_played = EXCLUDED.seconds_played,
			saves = EXCLUDED.saves,
			shots_against = EXCLUDED.shots_against,
			save_pct = EXCLUDED.save_pct,
			goals_against = EXCLUDED.goals_against,
			goals_against_avg = EXCLUDED.goals_against_avg,
			shutouts = EXCLUDED.shutouts,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			ot_losses = EXCLUDED.ot_losses,
			shootout_wins = EXCLUDED.shootout_wins,
			shootout_losses = EXCLUDED.shootout_losses,
			penalty_minutes = EXCLUDED.penalty_minutes,
			assists = EXCLUDED.assists,
			points = EXCLUDED.points,
			updated_at = NOW()`,
		g.SeasonID, g.PlayerID, nullableID(g.TeamID), g.GamesPlayed,
		g.SecondsPlayed, g.Saves, g.ShotsAgainst, g.SavePct, g.GoalsAgainst,
		g.GoalsAgainstAvg, g.Shutouts, g.Wins, g.Losses, g.OTLosses,
		g.ShootoutWins, g.ShootoutLosses, g.PenaltyMinutes, g.Assists, g.Points)
	return err
}

func upsertSeasonStatTeam(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	t, ok := rec.(model.SeasonStatTeam)
	if !ok {
		return badRecord(model.KindSeasonStatTeam, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.SeasonStatsTeamsTable+` (season_id, team_id, division_id,
			games_played, wins, losses, ot_losses, shootout_wins,
			shootout_losses, regulation_wins, points, win_pct, goals_for,
			goals_against, power_play_goals, power_play_pct, penalty_kill_pct,
			penalty_minutes, shorthand_goals_for)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19)
		ON CONFLICT (season_id, team_id) DO UPDATE SET
			division_id = EXCLUDED.division_id,
			games_played = EXCLUDED.games_played,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			ot_losses = EXCLUDED.ot_losses,
			shootout_wins = EXCLUDED.shootout_wins,
			shootout_losses = EXCLUDED.shootout_losses,
			regulation_wins = EXCLUDED.regulation_wins,
			points = EXCLUDED.points,
			win_pct = EXCLUDED.win_pct,
			goals_for = EXCLUDED.goals_for,
			goals_against = EXCLUDED.goals_against,
			power_play_goals = EXCLUDED.power_play_goals,
			power_play_pct = EXCLUDED.power_play_pct,
			penalty_kill_pct = EXCLUDED.penalty_kill_pct,
			penalty_minutes = EXCLUDED.penalty_minutes,
			shorthand_goals_for = EXCLUDED.shorthand_goals_for,
			updated_at = NOW()`,
		t.SeasonID, t.TeamID, t.DivisionID, t.GamesPlayed, t.Wins, t.Losses,
		t.OTLosses, t.ShootoutWins, t.ShootoutLosses, t.RegulationWins,
		t.Points, t.WinPct, t.GoalsFor, t.GoalsAgainst, t.PowerPlayGoals,
		t.PowerPlayPct, t.PenaltyKillPct, t.PenaltyMinutes, t.ShorthandGoalsFor)
	return err
}

func upsertPlayoffRound(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	r, ok := rec.(model.PlayoffRound)
	if !ok {
		return badRecord(model.KindPlayoffRound, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.PlayoffRoundsTable+` (id, season_id, round, name, type_name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			round = EXCLUDED.round,
			name = EXCLUDED.name,
			type_name = EXCLUDED.type_name,
			updated_at = NOW()`,
		r.ID, r.SeasonID, r.Round, r.Name, r.TypeName)
	return err
}

func upsertPlayoffSeries(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	s, ok := rec.(model.PlayoffSeries)
	if !ok {
		return badRecord(model.KindPlayoffSeries, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.PlayoffSeriesTable+` (id, round_id, season_id, letter, team1_id,
			team2_id, team1_wins, team2_wins, winner_team_id, feeder_series)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			team1_id = EXCLUDED.team1_id,
			team2_id = EXCLUDED.team2_id,
			team1_wins = EXCLUDED.team1_wins,
			team2_wins = EXCLUDED.team2_wins,
			winner_team_id = EXCLUDED.winner_team_id,
			feeder_series = EXCLUDED.feeder_series,
			updated_at = NOW()`,
		s.ID, s.RoundID, s.SeasonID, s.Letter, s.Team1ID, s.Team2ID,
		s.Team1Wins, s.Team2Wins, s.WinnerTeamID, s.FeederSeries)
	return err
}

func upsertPlayoffGame(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	g, ok := rec.(model.PlayoffGame)
	if !ok {
		return badRecord(model.KindPlayoffGame, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.PlayoffGamesTable+` (id, series_id, season_id, game_id, number)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			number = EXCLUDED.number,
			updated_at = NOW()`,
		g.ID, g.SeriesID, g.SeasonID, g.GameID, g.Number)
	return err
}
