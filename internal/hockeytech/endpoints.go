package hockeytech

import (
	"net/url"
	"strconv"
)

// The feed serves every view from index.php; the view is selected entirely
// by query parameters. Each builder returns the default parameter set for
// one view, mirroring the upstream contract. The client merges in the key
// and client code before sending.

func basicInfoParams() url.Values {
	return url.Values{
		"feed":       {"statviewfeed"},
		"view":       {"bootstrap"},
		"season":     {"latest"},
		"pageName":   {"scorebar"},
		"site_id":    {"0"},
		"league_id":  {"1"},
		"conference": {"-1"},
		"division":   {"-1"},
		"lang":       {"en"},
	}
}

func seasonsParams() url.Values {
	return url.Values{
		"feed": {"modulekit"},
		"view": {"seasons"},
		"fmt":  {"json"},
	}
}

func teamsBySeasonParams(seasonID int) url.Values {
	return url.Values{
		"feed":   {"modulekit"},
		"view":   {"teamsbyseason"},
		"fmt":    {"json"},
		"season": {strconv.Itoa(seasonID)},
	}
}

func rosterParams(seasonID, teamID int) url.Values {
	return url.Values{
		"feed":      {"modulekit"},
		"view":      {"roster"},
		"fmt":       {"json"},
		"season_id": {strconv.Itoa(seasonID)},
		"team_id":   {strconv.Itoa(teamID)},
	}
}

func playerInfoParams(playerID int) url.Values {
	return url.Values{
		"feed":      {"modulekit"},
		"view":      {"player"},
		"fmt":       {"json"},
		"category":  {"profile"},
		"player_id": {strconv.Itoa(playerID)},
	}
}

func scheduleParams(seasonID int) url.Values {
	return url.Values{
		"feed":      {"modulekit"},
		"view":      {"schedule"},
		"fmt":       {"json"},
		"season_id": {strconv.Itoa(seasonID)},
	}
}

func gameSummaryParams(gameID int) url.Values {
	return url.Values{
		"feed":    {"gc"},
		"tab":     {"gamesummary"},
		"game_id": {strconv.Itoa(gameID)},
	}
}

func skaterStatsParams(seasonID int) url.Values {
	return url.Values{
		"feed":      {"statviewfeed"},
		"view":      {"players"},
		"team":      {"all"},
		"position":  {"skaters"},
		"rookies":   {"0"},
		"statsType": {"standard"},
		"sort":      {"points"},
		"limit":     {"500"},
		"league_id": {"1"},
		"lang":      {"en"},
		"season":    {strconv.Itoa(seasonID)},
	}
}

func goalieStatsParams(seasonID int) url.Values {
	return url.Values{
		"feed":      {"statviewfeed"},
		"view":      {"players"},
		"team":      {"all"},
		"position":  {"goalies"},
		"rookies":   {"0"},
		"statsType": {"standard"},
		"sort":      {"goals_against_average"},
		"limit":     {"500"},
		"league_id": {"1"},
		"lang":      {"en"},
		"season":    {strconv.Itoa(seasonID)},
	}
}

func teamStatsParams(seasonID int) url.Values {
	return url.Values{
		"feed":         {"statviewfeed"},
		"view":         {"teams"},
		"groupTeamsBy": {"division"},
		"context":      {"overall"},
		"site_id":      {"0"},
		"special":      {"false"},
		"league_id":    {"1"},
		"sort":         {"points"},
		"lang":         {"en"},
		"season":       {strconv.Itoa(seasonID)},
	}
}

func playoffsParams(seasonID int) url.Values {
	return url.Values{
		"feed":      {"modulekit"},
		"view":      {"brackets"},
		"fmt":       {"json"},
		"league_id": {"1"},
		"season_id": {strconv.Itoa(seasonID)},
	}
}

func playByPlayParams(gameID int) url.Values {
	return url.Values{
		"feed":    {"statviewfeed"},
		"view":    {"gameCenterPlayByPlay"},
		"game_id": {strconv.Itoa(gameID)},
	}
}
