package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/coldrink/pwhl-data/internal/model"
)

// Playoffs is one season's normalized bracket. Rounds, series and the games
// slotted into each series come back in bracket order so the store can
// persist parents before children.
type Playoffs struct {
	Rounds []model.PlayoffRound
	Series []model.PlayoffSeries
	Games  []model.PlayoffGame
}

// NormalizePlayoffs shapes a bracket payload. Row ids are derived from the
// natural keys ("{season}_{round}", "{round_id}_{letter}") so every refresh
// lands on the same rows.
func NormalizePlayoffs(payload []byte, seasonID int) (*Playoffs, []error, error) {
	var root obj
	if err := json.Unmarshal(payload, &root); err != nil {
		return nil, nil, fmt.Errorf("decode playoffs payload: %w", err)
	}
	brackets := root.obj("SiteKit").obj("Brackets")
	if len(brackets) == 0 {
		return nil, nil, fmt.Errorf("playoffs payload: missing SiteKit.Brackets")
	}

	p := &Playoffs{}
	var warns []error
	for _, rawRound := range brackets.list("rounds") {
		roundNum := rawRound.num("round")
		if roundNum <= 0 {
			warns = append(warns, &NormalizationError{
				Entity: "playoff_round", Field: "round", Raw: rawRound.str("round")})
			continue
		}
		roundID := fmt.Sprintf("%d_%d", seasonID, roundNum)
		p.Rounds = append(p.Rounds, model.PlayoffRound{
			ID:       roundID,
			SeasonID: seasonID,
			Round:    roundNum,
			Name:     rawRound.str("round_name"),
			TypeName: rawRound.str("round_type_name"),
		})

		for _, rawSeries := range rawRound.list("matchups") {
			series, games, err := bracketSeries(rawSeries, roundID, seasonID)
			if err != nil {
				warns = append(warns, err)
				continue
			}
			p.Series = append(p.Series, series)
			p.Games = append(p.Games, games...)
		}
	}
	return p, warns, nil
}

func bracketSeries(raw obj, roundID string, seasonID int) (model.PlayoffSeries, []model.PlayoffGame, error) {
	letter := raw.str("series_letter")
	if letter == "" {
		return model.PlayoffSeries{}, nil, &NormalizationError{
			Entity: "playoff_series", Field: "series_letter", Raw: ""}
	}
	seriesID := roundID + "_" + letter

	team1 := raw.numPtr("team1")
	team2 := raw.numPtr("team2")

	// The feed reports the winner as "1" or "2"; resolve to a team id.
	var winner *int
	switch raw.str("winner") {
	case "1":
		winner = team1
	case "2":
		winner = team2
	}

	var feeders []string
	for _, key := range []string{"feeder_series1", "feeder_series2"} {
		if f := raw.str(key); f != "" {
			feeders = append(feeders, f)
		}
	}

	series := model.PlayoffSeries{
		ID:           seriesID,
		RoundID:      roundID,
		SeasonID:     seasonID,
		Letter:       letter,
		Team1ID:      team1,
		Team2ID:      team2,
		Team1Wins:    raw.num("team1_wins"),
		Team2Wins:    raw.num("team2_wins"),
		WinnerTeamID: winner,
		FeederSeries: strings.Join(feeders, ","),
	}

	var games []model.PlayoffGame
	for i, rawGame := range raw.list("games") {
		gameID := rawGame.num("game_id")
		if gameID <= 0 {
			continue
		}
		games = append(games, model.PlayoffGame{
			ID:       seriesID + "_" + strconv.Itoa(gameID),
			SeriesID: seriesID,
			SeasonID: seasonID,
			GameID:   gameID,
			Number:   i + 1,
		})
	}
	return series, games, nil
}
