package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/coldrink/pwhl-data/internal/model"
)

// The statview players/teams views return an array of views, each with
// sections, each with data rows. statviewRows flattens that envelope.
func statviewRows(payload []byte, what string) ([]obj, error) {
	var views []obj
	if err := json.Unmarshal(payload, &views); err != nil {
		// Some deployments wrap the array in a single object.
		var single obj
		if err2 := json.Unmarshal(payload, &single); err2 != nil {
			return nil, fmt.Errorf("decode %s payload: %w", what, err)
		}
		views = []obj{single}
	}

	var rows []obj
	for _, view := range views {
		for _, section := range view.list("sections") {
			for _, item := range section.list("data") {
				if row := item.obj("row"); len(row) > 0 {
					rows = append(rows, row)
				} else {
					rows = append(rows, item)
				}
			}
		}
	}
	if rows == nil {
		return nil, fmt.Errorf("%s payload: no data rows", what)
	}
	return rows, nil
}

// NormalizeSkaterStats shapes league-wide skater season totals. Derived
// ratios (shooting and faceoff percentages, points per game) are computed
// locally when the feed omits them, so refreshes are deterministic.
func NormalizeSkaterStats(payload []byte, seasonID int) ([]model.SeasonStatSkater, []error, error) {
	rows, err := statviewRows(payload, "skater stats")
	if err != nil {
		return nil, nil, err
	}

	var stats []model.SeasonStatSkater
	var warns []error
	for _, raw := range rows {
		id, err := raw.requireID("season_stat_skater", "player_id")
		if err != nil {
			warns = append(warns, err)
			continue
		}

		goals := raw.num("goals")
		assists := raw.num("assists")
		points := raw.num("points")
		if points == 0 {
			points = goals + assists
		}
		games := raw.num("games_played")
		shots := raw.num("shots")
		foAttempts := raw.num("faceoff_attempts")
		foWins := raw.num("faceoff_wins")

		ppg := raw.f64("points_per_game")
		if ppg == 0 && games > 0 {
			ppg = ratio(points, games)
		}
		shootPct := raw.f64("shooting_percentage")
		if shootPct == 0 && shots > 0 {
			shootPct = ratio(goals, shots) * 100
		}
		foPct := raw.f64("faceoff_pct")
		if foPct == 0 && foAttempts > 0 {
			foPct = ratio(foWins, foAttempts) * 100
		}

		stats = append(stats, model.SeasonStatSkater{
			SeasonID:         seasonID,
			PlayerID:         id,
			TeamID:           raw.num("team_id"),
			GamesPlayed:      games,
			Goals:            goals,
			Assists:          assists,
			Points:           points,
			PointsPerGame:    ppg,
			PlusMinus:        raw.num("plus_minus"),
			PenaltyMinutes:   raw.num("penalty_minutes"),
			PowerPlayGoals:   raw.num("power_play_goals"),
			PowerPlayAssists: raw.num("power_play_assists"),
			ShorthandGoals:   raw.num("short_handed_goals"),
			Shots:            shots,
			ShootingPct:      shootPct,
			FaceoffWins:      foWins,
			FaceoffAttempts:  foAttempts,
			FaceoffPct:       foPct,
			ShootoutGoals:    raw.num("shootout_goals"),
			ShootoutAttempts: raw.num("shootout_attempts"),
		})
	}
	return stats, warns, nil
}

// NormalizeGoalieStats shapes league-wide goalie season totals.
func NormalizeGoalieStats(payload []byte, seasonID int) ([]model.SeasonStatGoalie, []error, error) {
	rows, err := statviewRows(payload, "goalie stats")
	if err != nil {
		return nil, nil, err
	}

	var stats []model.SeasonStatGoalie
	var warns []error
	for _, raw := range rows {
		id, err := raw.requireID("season_stat_goalie", "player_id")
		if err != nil {
			warns = append(warns, err)
			continue
		}

		saves := raw.num("saves")
		shotsAgainst := raw.num("shots")
		if shotsAgainst == 0 {
			shotsAgainst = raw.num("shots_against")
		}
		goalsAgainst := raw.num("goals_against")
		seconds := raw.num("seconds_played")
		if seconds == 0 {
			seconds = raw.num("ice_time")
		}

		savePct := raw.f64("save_percentage")
		if savePct == 0 && shotsAgainst > 0 {
			savePct = ratio(saves, shotsAgainst)
		}
		gaa := raw.f64("goals_against_average")
		if gaa == 0 && seconds > 0 {
			gaa = float64(goalsAgainst) * 3600 / float64(seconds)
		}

		assists := raw.num("assists")
		goals := raw.num("goals")

		stats = append(stats, model.SeasonStatGoalie{
			SeasonID:        seasonID,
			PlayerID:        id,
			TeamID:          raw.num("team_id"),
			GamesPlayed:     raw.num("games_played"),
			SecondsPlayed:   seconds,
			Saves:           saves,
			ShotsAgainst:    shotsAgainst,
			SavePct:         savePct,
			GoalsAgainst:    goalsAgainst,
			GoalsAgainstAvg: gaa,
			Shutouts:        raw.num("shutouts"),
			Wins:            raw.num("wins"),
			Losses:          raw.num("losses"),
			OTLosses:        raw.num("ot_losses"),
			ShootoutWins:    raw.num("shootout_wins"),
			ShootoutLosses:  raw.num("shootout_losses"),
			PenaltyMinutes:  raw.num("penalty_minutes"),
			Assists:         assists,
			Points:          goals + assists,
		})
	}
	return stats, warns, nil
}

// NormalizeTeamStats shapes the standings lines of one season.
func NormalizeTeamStats(payload []byte, seasonID int) ([]model.SeasonStatTeam, []error, error) {
	rows, err := statviewRows(payload, "team stats")
	if err != nil {
		return nil, nil, err
	}

	var stats []model.SeasonStatTeam
	var warns []error
	for _, raw := range rows {
		id, err := raw.requireID("season_stat_team", "team_id")
		if err != nil {
			warns = append(warns, err)
			continue
		}

		games := raw.num("games_played")
		wins := raw.num("wins")
		winPct := raw.f64("win_percentage")
		if winPct == 0 && games > 0 {
			winPct = ratio(wins, games)
		}

		stats = append(stats, model.SeasonStatTeam{
			SeasonID:          seasonID,
			TeamID:            id,
			DivisionID:        raw.numPtr("division_id"),
			GamesPlayed:       games,
			Wins:              wins,
			Losses:            raw.num("losses"),
			OTLosses:          raw.num("ot_losses"),
			ShootoutWins:      raw.num("shootout_wins"),
			ShootoutLosses:    raw.num("shootout_losses"),
			RegulationWins:    raw.num("regulation_wins"),
			Points:            raw.num("points"),
			WinPct:            winPct,
			GoalsFor:          raw.num("goals_for"),
			GoalsAgainst:      raw.num("goals_against"),
			PowerPlayGoals:    raw.num("power_play_goals"),
			PowerPlayPct:      raw.f64("power_play_pct"),
			PenaltyKillPct:    raw.f64("penalty_kill_pct"),
			PenaltyMinutes:    raw.num("penalty_minutes"),
			ShorthandGoalsFor: raw.num("short_handed_goals_for"),
		})
	}
	return stats, warns, nil
}
