package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/coldrink/pwhl-data/internal/model"
)

// BasicInfo is the normalized bootstrap payload.
type BasicInfo struct {
	CurrentLeagueID int
	Leagues         []model.League
	Conferences     []model.Conference
	Divisions       []model.Division
}

// NormalizeBasicInfo shapes the bootstrap payload into leagues, conferences
// and divisions. Records with unusable ids are skipped and reported in the
// returned warnings.
func NormalizeBasicInfo(payload []byte) (*BasicInfo, []error, error) {
	var root obj
	if err := json.Unmarshal(payload, &root); err != nil {
		return nil, nil, fmt.Errorf("decode basic info payload: %w", err)
	}

	info := &BasicInfo{CurrentLeagueID: root.num("current_league_id")}
	var warns []error

	for _, league := range root.list("leagues") {
		id, err := league.requireID("league", "id")
		if err != nil {
			warns = append(warns, err)
			continue
		}
		info.Leagues = append(info.Leagues, model.League{
			ID:        id,
			Name:      league.str("name"),
			ShortName: league.str("short_name"),
			Code:      league.str("code"),
			LogoURL:   league.str("logo_image"),
		})
	}

	for _, conf := range root.list("conferences") {
		id, err := conf.requireID("conference", "conference_id")
		if err != nil {
			warns = append(warns, err)
			continue
		}
		info.Conferences = append(info.Conferences, model.Conference{
			ID:       id,
			LeagueID: conf.num("league_id"),
			Name:     conf.str("conference_name"),
		})
	}

	for _, div := range root.list("divisions") {
		id, err := div.requireID("division", "id")
		if err != nil {
			warns = append(warns, err)
			continue
		}
		info.Divisions = append(info.Divisions, model.Division{
			ID:           id,
			LeagueID:     div.num("league_id"),
			ConferenceID: div.numPtr("conference_id"),
			Name:         div.str("name"),
		})
	}

	return info, warns, nil
}

// NormalizeSeasons shapes the seasons list. The newest season that is
// neither a career aggregate nor a playoff window is marked current; the
// store enforces that at most one row keeps the flag.
func NormalizeSeasons(payload []byte) ([]model.Season, []error, error) {
	root, err := siteKit(payload, "Seasons")
	if err != nil {
		return nil, nil, err
	}

	var seasons []model.Season
	var warns []error
	for _, raw := range root {
		id, err := raw.requireID("season", "season_id")
		if err != nil {
			warns = append(warns, err)
			continue
		}
		seasons = append(seasons, model.Season{
			ID:        id,
			Name:      raw.str("season_name"),
			Career:    raw.flag("career"),
			Playoff:   raw.flag("playoff"),
			StartDate: raw.str("start_date"),
			EndDate:   raw.str("end_date"),
		})
	}

	markCurrent(seasons)
	return seasons, warns, nil
}

// markCurrent flags the regular season with the latest start date.
func markCurrent(seasons []model.Season) {
	best := -1
	for i, s := range seasons {
		if s.Career || s.Playoff || s.StartDate == "" {
			continue
		}
		if best == -1 || s.StartDate > seasons[best].StartDate {
			best = i
		}
	}
	if best >= 0 {
		seasons[best].Current = true
	}
}

// NormalizeTeams shapes the teams-by-season list.
func NormalizeTeams(payload []byte) ([]model.Team, []error, error) {
	root, err := siteKit(payload, "Teamsbyseason")
	if err != nil {
		return nil, nil, err
	}

	var teams []model.Team
	var warns []error
	for _, raw := range root {
		id, err := raw.requireID("team", "id")
		if err != nil {
			warns = append(warns, err)
			continue
		}
		teams = append(teams, model.Team{
			ID:         id,
			DivisionID: raw.numPtr("division_id"),
			Name:       raw.str("name"),
			Nickname:   raw.str("nickname"),
			Code:       raw.str("code"),
			City:       raw.str("city"),
			LogoURL:    raw.str("team_logo_url"),
		})
	}
	return teams, warns, nil
}

// siteKit unwraps the modulekit envelope and returns the named list.
func siteKit(payload []byte, key string) ([]obj, error) {
	var root obj
	if err := json.Unmarshal(payload, &root); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", key, err)
	}
	kit := root.obj("SiteKit")
	items := kit.list(key)
	if items == nil {
		return nil, fmt.Errorf("%s payload: missing SiteKit.%s", key, key)
	}
	return items, nil
}
