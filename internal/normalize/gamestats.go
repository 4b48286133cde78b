package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/coldrink/pwhl-data/internal/model"
)

// GameStats is the normalized game-center summary of one game: per-team
// aggregate lines plus every dressed skater and goalie.
type GameStats struct {
	SeasonID      int
	HomeTeamID    int
	VisitorTeamID int
	Teams         []model.GameStatTeam
	Skaters       []model.GameStatSkater
	Goalies       []model.GameStatGoalie
}

// NormalizeGameStats shapes a game-center summary payload. Goalies who never
// took the ice (zero seconds) are omitted, matching how the feed reports
// backup goalies.
func NormalizeGameStats(payload []byte, gameID int) (*GameStats, []error, error) {
	var root obj
	if err := json.Unmarshal(payload, &root); err != nil {
		return nil, nil, fmt.Errorf("decode game summary payload: %w", err)
	}
	summary := root.obj("GC").obj("Gamesummary")
	if len(summary) == 0 {
		return nil, nil, fmt.Errorf("game summary payload: missing GC.Gamesummary")
	}

	meta := summary.obj("meta")
	gs := &GameStats{
		SeasonID:      meta.num("season_id"),
		HomeTeamID:    meta.num("home_team"),
		VisitorTeamID: meta.num("visiting_team"),
	}
	if gs.HomeTeamID <= 0 || gs.VisitorTeamID <= 0 {
		return nil, nil, fmt.Errorf("game summary payload: missing participant teams")
	}

	var warns []error
	for _, side := range []struct {
		key    string
		teamID int
		goals  int
	}{
		{"home", gs.HomeTeamID, meta.num("home_goal_count")},
		{"visitor", gs.VisitorTeamID, meta.num("visiting_goal_count")},
	} {
		gs.Teams = append(gs.Teams, model.GameStatTeam{
			GameID:         gameID,
			TeamID:         side.teamID,
			SeasonID:       gs.SeasonID,
			Goals:          side.goals,
			ShotsOnGoal:    sumPeriodShots(summary.obj("shotsByPeriod").obj(side.key)),
			PowerPlayTotal: summary.obj("powerPlayCount").num(side.key),
			PowerPlayGoals: summary.obj("powerPlayGoals").num(side.key),
			FaceoffWins:    summary.obj("totalFaceoffs").obj(side.key).num("won"),
			Hits:           summary.obj("totalHits").num(side.key),
		})
	}

	for _, side := range []struct {
		lineup string
		teamID int
	}{
		{"home_team_lineup", gs.HomeTeamID},
		{"visitor_team_lineup", gs.VisitorTeamID},
	} {
		lineup := summary.obj(side.lineup)
		for _, raw := range lineup.list("players") {
			if raw.str("position_str") == "G" {
				continue
			}
			skater, err := lineupSkater(raw, gameID, side.teamID, gs.SeasonID)
			if err != nil {
				warns = append(warns, err)
				continue
			}
			gs.Skaters = append(gs.Skaters, skater)
		}
		for _, raw := range lineup.list("goalies") {
			if raw.num("seconds") == 0 {
				continue
			}
			goalie, err := lineupGoalie(raw, gameID, side.teamID, gs.SeasonID)
			if err != nil {
				warns = append(warns, err)
				continue
			}
			gs.Goalies = append(gs.Goalies, goalie)
		}
	}

	return gs, warns, nil
}

// sumPeriodShots totals the per-period shot counts, overtime included.
func sumPeriodShots(periods obj) int {
	total := 0
	for key := range periods {
		total += periods.num(key)
	}
	return total
}

func lineupSkater(raw obj, gameID, teamID, seasonID int) (model.GameStatSkater, error) {
	id, err := raw.requireID("game_stat_skater", "player_id")
	if err != nil {
		return model.GameStatSkater{}, err
	}
	goals := raw.num("goals")
	assists := raw.num("assists")
	return model.GameStatSkater{
		GameID:          gameID,
		PlayerID:        id,
		TeamID:          teamID,
		SeasonID:        seasonID,
		JerseyNumber:    raw.num("jersey_number"),
		Position:        raw.str("position_str"),
		Goals:           goals,
		Assists:         assists,
		Points:          goals + assists,
		PlusMinus:       raw.num("plusminus"),
		PenaltyMinutes:  raw.num("pim"),
		Shots:           raw.num("shots"),
		ShotsOn:         raw.num("shots_on"),
		ShotsBlocked:    raw.num("shots_blocked_by_player"),
		FaceoffWins:     raw.num("faceoff_wins"),
		FaceoffAttempts: raw.num("faceoff_attempts"),
		Hits:            raw.num("hits"),
		PowerPlayGoals:  raw.num("power_play_goals"),
		ShorthandGoals:  raw.num("short_handed_goals"),
		GameWinningGoal: raw.flag("game_winning_goal"),
	}, nil
}

func lineupGoalie(raw obj, gameID, teamID, seasonID int) (model.GameStatGoalie, error) {
	id, err := raw.requireID("game_stat_goalie", "player_id")
	if err != nil {
		return model.GameStatGoalie{}, err
	}
	shotsAgainst := raw.num("shots_against")
	goalsAgainst := raw.num("goals_against")
	saves := raw.num("saves")
	if saves == 0 && shotsAgainst > 0 {
		saves = shotsAgainst - goalsAgainst
	}
	return model.GameStatGoalie{
		GameID:         gameID,
		PlayerID:       id,
		TeamID:         teamID,
		SeasonID:       seasonID,
		JerseyNumber:   raw.num("jersey_number"),
		SecondsPlayed:  raw.num("seconds"),
		ShotsAgainst:   shotsAgainst,
		GoalsAgainst:   goalsAgainst,
		Saves:          saves,
		Goals:          raw.num("goals"),
		Assists:        raw.num("assists"),
		PenaltyMinutes: raw.num("pim"),
		Started:        raw.flag("start"),
	}, nil
}
