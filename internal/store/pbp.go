package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/coldrink/pwhl-data/internal/config"
	"github.com/coldrink/pwhl-data/internal/model"
)

// upsertPBPGoal writes the goal row and replaces its plus/minus on-ice rows
// as a set. The on-ice rows have no stable upstream identity, so delete and
// reinsert inside the same transaction is the only idempotent option.
func upsertPBPGoal(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	g, ok := rec.(model.GoalEvent)
	if !ok {
		return badRecord(model.KindPBPGoal, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.PBPGoalsTable+` (id, game_id, season_id, period, time, seconds,
			team_id, home, scorer_id, assist1_id, assist2_id, opponent_team_id,
			location_x, location_y, scorer_goal_num, goal_type, power_play,
			empty_net, penalty_shot, short_handed, insurance, game_winning,
			game_tieing)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23)
		ON CONFLICT (id) DO UPDATE SET
			period = EXCLUDED.period,
			time = EXCLUDED.time,
			seconds = EXCLUDED.seconds,
			team_id = EXCLUDED.team_id,
			home = EXCLUDED.home,
			scorer_id = EXCLUDED.scorer_id,
			assist1_id = EXCLUDED.assist1_id,
			assist2_id = EXCLUDED.assist2_id,
			opponent_team_id = EXCLUDED.opponent_team_id,
			location_x = EXCLUDED.location_x,
			location_y = EXCLUDED.location_y,
			scorer_goal_num = EXCLUDED.scorer_goal_num,
			goal_type = EXCLUDED.goal_type,
			power_play = EXCLUDED.power_play,
			empty_net = EXCLUDED.empty_net,
			penalty_shot = EXCLUDED.penalty_shot,
			short_handed = EXCLUDED.short_handed,
			insurance = EXCLUDED.insurance,
			game_winning = EXCLUDED.game_winning,
			game_tieing = EXCLUDED.game_tieing,
			updated_at = NOW()`,
		g.ID, g.GameID, g.SeasonID, g.Period, g.Time, g.Seconds, g.TeamID,
		g.Home, g.ScorerID, g.Assist1ID, g.Assist2ID, g.OpponentTeamID,
		g.LocationX, g.LocationY, g.ScorerGoalNum, g.GoalType, g.PowerPlay,
		g.EmptyNet, g.PenaltyShot, g.ShortHanded, g.Insurance, g.GameWinning,
		g.GameTieing)
	if err != nil {
		return err
	}

	for table, players := range map[string][]model.OnIce{
		config.PBPGoalsPlusTable:  g.Plus,
		config.PBPGoalsMinusTable: g.Minus,
	} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE goal_id = $1`, g.ID); err != nil {
			return err
		}
		for _, p := range players {
			if _, err := tx.Exec(ctx,
				`INSERT INTO `+table+` (goal_id, player_id, jersey_number) VALUES ($1, $2, $3)`,
				g.ID, p.PlayerID, p.JerseyNumber); err != nil {
				return err
			}
		}
	}
	return nil
}

func upsertPBPShot(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	s, ok := rec.(model.ShotEvent)
	if !ok {
		return badRecord(model.KindPBPShot, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.PBPShotsTable+` (id, game_id, season_id, period, time, seconds,
			team_id, home, shooter_id, goalie_id, opponent_team_id, location_x,
			location_y, shot_type, quality, is_goal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			period = EXCLUDED.period,
			time = EXCLUDED.time,
			seconds = EXCLUDED.seconds,
			team_id = EXCLUDED.team_id,
			home = EXCLUDED.home,
			shooter_id = EXCLUDED.shooter_id,
			goalie_id = EXCLUDED.goalie_id,
			opponent_team_id = EXCLUDED.opponent_team_id,
			location_x = EXCLUDED.location_x,
			location_y = EXCLUDED.location_y,
			shot_type = EXCLUDED.shot_type,
			quality = EXCLUDED.quality,
			is_goal = EXCLUDED.is_goal,
			updated_at = NOW()`,
		s.ID, s.GameID, s.SeasonID, s.Period, s.Time, s.Seconds, s.TeamID,
		s.Home, s.ShooterID, s.GoalieID, s.OpponentTeamID, s.LocationX,
		s.LocationY, s.ShotType, s.Quality, s.IsGoal)
	return err
}

func upsertPBPBlockedShot(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	b, ok := rec.(model.BlockedShotEvent)
	if !ok {
		return badRecord(model.KindPBPBlockedShot, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.PBPBlockedShotsTable+` (id, game_id, season_id, period, time,
			seconds, team_id, home, shooter_id, blocker_id, opponent_team_id,
			location_x, location_y, shot_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			period = EXCLUDED.period,
			time = EXCLUDED.time,
			seconds = EXCLUDED.seconds,
			team_id = EXCLUDED.team_id,
			home = EXCLUDED.home,
			shooter_id = EXCLUDED.shooter_id,
			blocker_id = EXCLUDED.blocker_id,
			opponent_team_id = EXCLUDED.opponent_team_id,
			location_x = EXCLUDED.location_x,
			location_y = EXCLUDED.location_y,
			shot_type = EXCLUDED.shot_type,
			updated_at = NOW()`,
		b.ID, b.GameID, b.SeasonID, b.Period, b.Time, b.Seconds, b.TeamID,
		b.Home, b.ShooterID, b.BlockerID, b.OpponentTeamID, b.LocationX,
		b.LocationY, b.ShotType)
	return err
}

func upsertPBPFaceoff(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	f, ok := rec.(model.FaceoffEvent)
	if !ok {
		return badRecord(model.KindPBPFaceoff, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.PBPFaceoffsTable+` (id, game_id, season_id, period, time,
			seconds, team_id, home, home_player_id, visitor_player_id,
			home_win, location_x, location_y, location_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			period = EXCLUDED.period,
			time = EXCLUDED.time,
			seconds = EXCLUDED.seconds,
			team_id = EXCLUDED.team_id,
			home = EXCLUDED.home,
			home_player_id = EXCLUDED.home_player_id,
			visitor_player_id = EXCLUDED.visitor_player_id,
			home_win = EXCLUDED.home_win,
			location_x = EXCLUDED.location_x,
			location_y = EXCLUDED.location_y,
			location_id = EXCLUDED.location_id,
			updated_at = NOW()`,
		f.ID, f.GameID, f.SeasonID, f.Period, f.Time, f.Seconds, f.TeamID,
		f.Home, f.HomePlayerID, f.VisitorPlayerID, f.HomeWin, f.LocationX,
		f.LocationY, f.LocationID)
	return err
}

func upsertPBPHit(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	h, ok := rec.(model.HitEvent)
	if !ok {
		return badRecord(model.KindPBPHit, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.PBPHitsTable+` (id, game_id, season_id, period, time, seconds,
			team_id, home, player_id, location_x, location_y, plus)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			period = EXCLUDED.period,
			time = EXCLUDED.time,
			seconds = EXCLUDED.seconds,
			team_id = EXCLUDED.team_id,
			home = EXCLUDED.home,
			player_id = EXCLUDED.player_id,
			location_x = EXCLUDED.location_x,
			location_y = EXCLUDED.location_y,
			plus = EXCLUDED.plus,
			updated_at = NOW()`,
		h.ID, h.GameID, h.SeasonID, h.Period, h.Time, h.Seconds, h.TeamID,
		h.Home, h.PlayerID, h.LocationX, h.LocationY, h.Plus)
	return err
}

func upsertPBPPenalty(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	p, ok := rec.(model.PenaltyEvent)
	if !ok {
		return badRecord(model.KindPBPPenalty, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.PBPPenaltiesTable+` (id, game_id, season_id, period, time,
			seconds, team_id, home, player_id, served_by_id, minutes,
			description, penalty_class, offence_code, power_play, bench_penalty)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			period = EXCLUDED.period,
			time = EXCLUDED.time,
			seconds = EXCLUDED.seconds,
			team_id = EXCLUDED.team_id,
			home = EXCLUDED.home,
			player_id = EXCLUDED.player_id,
			served_by_id = EXCLUDED.served_by_id,
			minutes = EXCLUDED.minutes,
			description = EXCLUDED.description,
			penalty_class = EXCLUDED.penalty_class,
			offence_code = EXCLUDED.offence_code,
			power_play = EXCLUDED.power_play,
			bench_penalty = EXCLUDED.bench_penalty,
			updated_at = NOW()`,
		p.ID, p.GameID, p.SeasonID, p.Period, p.Time, p.Seconds, p.TeamID,
		p.Home, p.PlayerID, p.ServedByID, p.Minutes, p.Description,
		p.PenaltyClass, p.OffenceCode, p.PowerPlay, p.BenchPenalty)
	return err
}

func upsertPBPGoalieChange(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	g, ok := rec.(model.GoalieChangeEvent)
	if !ok {
		return badRecord(model.KindPBPGoalieChange, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.PBPGoalieChangesTable+` (id, game_id, season_id, period, time,
			seconds, team_id, home, goalie_in_id, goalie_out_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			period = EXCLUDED.period,
			time = EXCLUDED.time,
			seconds = EXCLUDED.seconds,
			team_id = EXCLUDED.team_id,
			home = EXCLUDED.home,
			goalie_in_id = EXCLUDED.goalie_in_id,
			goalie_out_id = EXCLUDED.goalie_out_id,
			updated_at = NOW()`,
		g.ID, g.GameID, g.SeasonID, g.Period, g.Time, g.Seconds, g.TeamID,
		g.Home, g.GoalieInID, g.GoalieOutID)
	return err
}

func upsertPBPShootout(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	s, ok := rec.(model.ShootoutAttemptEvent)
	if !ok {
		return badRecord(model.KindPBPShootout, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.PBPShootoutsTable+` (id, game_id, season_id, period, time,
			seconds, team_id, home, shooter_id, goalie_id, shot_order,
			is_goal, game_winning)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			team_id = EXCLUDED.team_id,
			home = EXCLUDED.home,
			shooter_id = EXCLUDED.shooter_id,
			goalie_id = EXCLUDED.goalie_id,
			shot_order = EXCLUDED.shot_order,
			is_goal = EXCLUDED.is_goal,
			game_winning = EXCLUDED.game_winning,
			updated_at = NOW()`,
		s.ID, s.GameID, s.SeasonID, s.Period, s.Time, s.Seconds, s.TeamID,
		s.Home, s.ShooterID, s.GoalieID, s.ShotOrder, s.IsGoal, s.GameWinning)
	return err
}

func upsertPBPOther(ctx context.Context, tx pgx.Tx, rec model.Record) error {
	o, ok := rec.(model.OtherEvent)
	if !ok {
		return badRecord(model.KindPBPOther, rec)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO `+config.PBPOtherTable+` (id, game_id, season_id, period, time, seconds,
			team_id, home, event_type, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			period = EXCLUDED.period,
			time = EXCLUDED.time,
			seconds = EXCLUDED.seconds,
			team_id = EXCLUDED.team_id,
			home = EXCLUDED.home,
			event_type = EXCLUDED.event_type,
			payload = EXCLUDED.payload,
			updated_at = NOW()`,
		o.ID, o.GameID, o.SeasonID, o.Period, o.Time, o.Seconds, o.TeamID,
		o.Home, o.EventType, o.Payload)
	return err
}
