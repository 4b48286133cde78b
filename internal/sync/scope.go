package sync

import "fmt"

// Scope selects which categories a run refreshes and optionally narrows the
// run to a single season, game or player. Narrowing restricts which feed
// calls are made; it never bypasses dependency order.
type Scope struct {
	Basic       bool
	Players     bool
	Games       bool
	GameStats   bool
	SeasonStats bool
	Playoffs    bool
	PlayByPlay  bool

	SeasonID int
	GameID   int
	PlayerID int
}

// All is the full-refresh scope: every category, every known season.
func All() Scope {
	return Scope{
		Basic:       true,
		Players:     true,
		Games:       true,
		GameStats:   true,
		SeasonStats: true,
		Playoffs:    true,
		PlayByPlay:  true,
	}
}

// Validate rejects contradictory narrowing.
func (s Scope) Validate() error {
	if !s.Basic && !s.Players && !s.Games && !s.GameStats && !s.SeasonStats &&
		!s.Playoffs && !s.PlayByPlay {
		return fmt.Errorf("empty scope: no category selected")
	}
	if s.GameID != 0 && s.PlayerID != 0 {
		return fmt.Errorf("scope cannot narrow to both a game and a player")
	}
	return nil
}

// requested returns the category set selected by the flags.
func (s Scope) requested() map[Category]bool {
	return map[Category]bool{
		CategoryBasic:       s.Basic,
		CategoryPlayers:     s.Players,
		CategoryGames:       s.Games,
		CategoryGameStats:   s.GameStats,
		CategorySeasonStats: s.SeasonStats,
		CategoryPlayoffs:    s.Playoffs,
		CategoryPlayByPlay:  s.PlayByPlay,
	}
}
