package normalize

import (
	"github.com/coldrink/pwhl-data/internal/model"
)

// gameStatuses maps the feed's numeric status codes to the canonical enum.
// Code 3 is "final (unofficial)", 4 is "final (official)"; both are final
// for mirroring purposes.
var gameStatuses = map[string]model.GameStatus{
	"1": model.StatusScheduled,
	"2": model.StatusInProgress,
	"3": model.StatusFinal,
	"4": model.StatusFinal,
	"5": model.StatusPostponed,
	"6": model.StatusCancelled,
}

// ParseGameStatus maps a feed status code. Unknown codes are a
// NormalizationError, never stored raw.
func ParseGameStatus(code string) (model.GameStatus, error) {
	if s, ok := gameStatuses[code]; ok {
		return s, nil
	}
	return "", &NormalizationError{Entity: "game", Field: "status", Raw: code}
}

// NormalizeSchedule shapes one season's schedule into game records.
// seasonID is the fetch scope, used when a row omits its season.
func NormalizeSchedule(payload []byte, seasonID int) ([]model.Game, []error, error) {
	root, err := siteKit(payload, "Schedule")
	if err != nil {
		return nil, nil, err
	}

	var games []model.Game
	var warns []error
	for _, raw := range root {
		g, err := scheduleGame(raw, seasonID)
		if err != nil {
			warns = append(warns, err)
			continue
		}
		games = append(games, g)
	}
	return games, warns, nil
}

func scheduleGame(raw obj, seasonID int) (model.Game, error) {
	id, err := raw.requireID("game", "game_id")
	if err != nil {
		return model.Game{}, err
	}

	season := raw.num("season_id")
	if season == 0 {
		season = seasonID
	}

	home := raw.num("home_team")
	visitor := raw.num("visiting_team")
	if home <= 0 || visitor <= 0 || home == visitor {
		return model.Game{}, &NormalizationError{
			Entity: "game",
			Field:  "home_team/visiting_team",
			Raw:    raw.str("home_team") + "/" + raw.str("visiting_team"),
		}
	}

	status, err := ParseGameStatus(raw.str("status"))
	if err != nil {
		return model.Game{}, err
	}

	date := raw.str("GameDateISO8601")
	if len(date) > 10 {
		date = date[:10]
	}

	return model.Game{
		ID:            id,
		SeasonID:      season,
		GameNumber:    raw.num("game_number"),
		Date:          date,
		HomeTeamID:    home,
		VisitorTeamID: visitor,
		HomeGoals:     raw.num("home_goal_count"),
		VisitorGoals:  raw.num("visiting_goal_count"),
		Periods:       raw.num("period"),
		Overtime:      raw.flag("overtime"),
		Shootout:      raw.flag("shootout"),
		Status:        status,
		VenueName:     raw.str("venue_name"),
		VenueLocation: raw.str("venue_location"),
		Attendance:    raw.num("attendance"),
	}, nil
}
