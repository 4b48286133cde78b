package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/coldrink/pwhl-data/internal/model"
)

// NormalizeRoster shapes one team's roster for a season. teamID is the
// fetch scope; it becomes each player's latest observed team when the
// payload does not name one itself.
func NormalizeRoster(payload []byte, teamID int) ([]model.Player, []error, error) {
	root, err := siteKit(payload, "Roster")
	if err != nil {
		return nil, nil, err
	}

	var players []model.Player
	var warns []error
	for _, raw := range root {
		p, err := rosterPlayer(raw, teamID)
		if err != nil {
			warns = append(warns, err)
			continue
		}
		players = append(players, p)
	}
	return players, warns, nil
}

func rosterPlayer(raw obj, teamID int) (model.Player, error) {
	id, err := raw.requireID("player", "player_id")
	if err != nil {
		return model.Player{}, err
	}

	latestTeam := raw.numPtr("latest_team_id")
	if latestTeam == nil && teamID > 0 {
		latestTeam = &teamID
	}

	draftType := ""
	if draft := raw.list("draftinfo"); len(draft) > 0 {
		draftType = draft[0].str("draft_type")
	}

	return model.Player{
		ID:           id,
		FirstName:    raw.str("first_name"),
		LastName:     raw.str("last_name"),
		JerseyNumber: raw.num("tp_jersey_number"),
		Active:       raw.flag("active"),
		Rookie:       raw.flag("rookie"),
		PositionID:   raw.num("position_id"),
		Position:     raw.str("position"),
		Height:       raw.str("height"),
		Weight:       raw.num("weight"),
		Birthdate:    raw.str("birthdate"),
		Shoots:       raw.str("shoots"),
		Catches:      raw.str("catches"),
		ImageURL:     raw.str("player_image"),
		BirthTown:    raw.str("birthtown"),
		BirthProv:    raw.str("birthprov"),
		BirthCountry: raw.str("birthcntry"),
		Nationality:  raw.str("nationality"),
		DraftType:    draftType,
		LatestTeamID: latestTeam,
	}, nil
}

// NormalizePlayerInfo shapes a single player profile payload. The profile
// view uses slightly different key names than the roster view.
func NormalizePlayerInfo(payload []byte, playerID int) (model.Player, error) {
	var root obj
	if err := json.Unmarshal(payload, &root); err != nil {
		return model.Player{}, fmt.Errorf("decode player payload: %w", err)
	}
	raw := root.obj("SiteKit").obj("Player")
	if len(raw) == 0 {
		return model.Player{}, fmt.Errorf("player payload: missing SiteKit.Player")
	}

	id := raw.num("player_id")
	if id == 0 {
		id = playerID
	}
	if id <= 0 {
		return model.Player{}, &NormalizationError{Entity: "player", Field: "player_id", Raw: raw.str("player_id")}
	}

	return model.Player{
		ID:           id,
		FirstName:    raw.str("first_name"),
		LastName:     raw.str("last_name"),
		JerseyNumber: raw.num("jersey_number"),
		Active:       raw.flag("active"),
		Rookie:       raw.flag("rookie"),
		PositionID:   raw.num("position_id"),
		Position:     raw.str("position"),
		Height:       raw.str("height"),
		Weight:       raw.num("weight"),
		Birthdate:    raw.str("birthdate"),
		Shoots:       raw.str("shoots"),
		Catches:      raw.str("catches"),
		ImageURL:     raw.str("image"),
		BirthTown:    raw.str("birthtown"),
		BirthProv:    raw.str("birthprov"),
		BirthCountry: raw.str("birthcntry"),
		Nationality:  raw.str("nationality"),
		DraftType:    raw.str("draft_type"),
		LatestTeamID: raw.numPtr("latest_team_id"),
	}, nil
}
