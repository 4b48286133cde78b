package normalize

import "testing"

func TestNormalizePlayoffs(t *testing.T) {
	payload := []byte(`{"SiteKit": {"Brackets": {"rounds": [
		{
			"round": "1", "round_name": "Semifinals", "round_type_name": "Best of 5",
			"matchups": [
				{
					"series_letter": "A", "team1": "1", "team2": "4",
					"team1_wins": "3", "team2_wins": "1", "winner": "1",
					"games": [{"game_id": "201"}, {"game_id": "202"}, {"game_id": "0"}]
				},
				{
					"series_letter": "B", "team1": "2", "team2": "3",
					"team1_wins": "2", "team2_wins": "3", "winner": "2"
				}
			]
		},
		{
			"round": "2", "round_name": "Final", "round_type_name": "Best of 5",
			"matchups": [
				{
					"series_letter": "C", "team1": "1", "team2": "",
					"feeder_series1": "A", "feeder_series2": "B"
				},
				{"series_letter": ""}
			]
		}
	]}}}`)

	p, warns, err := NormalizePlayoffs(payload, 2)
	if err != nil {
		t.Fatalf("NormalizePlayoffs: %v", err)
	}
	if len(warns) != 1 {
		t.Errorf("got %d warnings, want 1 (missing series letter)", len(warns))
	}

	if len(p.Rounds) != 2 {
		t.Fatalf("got %d rounds, want 2", len(p.Rounds))
	}
	if p.Rounds[0].ID != "2_1" || p.Rounds[1].ID != "2_2" {
		t.Errorf("round ids = %q, %q", p.Rounds[0].ID, p.Rounds[1].ID)
	}
	if p.Rounds[0].Round >= p.Rounds[1].Round {
		t.Errorf("round numbers = %d, %d, want increasing toward the final", p.Rounds[0].Round, p.Rounds[1].Round)
	}

	if len(p.Series) != 3 {
		t.Fatalf("got %d series, want 3", len(p.Series))
	}
	a := p.Series[0]
	if a.ID != "2_1_A" || a.RoundID != "2_1" {
		t.Errorf("series A ids = %q/%q", a.ID, a.RoundID)
	}
	if a.WinnerTeamID == nil || *a.WinnerTeamID != 1 {
		t.Errorf("series A winner = %v, want 1", a.WinnerTeamID)
	}
	b := p.Series[1]
	if b.WinnerTeamID == nil || *b.WinnerTeamID != 3 {
		t.Errorf("series B winner = %v, want 3 (winner \"2\" resolves to team2)", b.WinnerTeamID)
	}
	c := p.Series[2]
	if c.Team2ID != nil {
		t.Errorf("series C team2 = %v, want nil (not yet decided)", c.Team2ID)
	}
	if c.FeederSeries != "A,B" {
		t.Errorf("series C feeders = %q", c.FeederSeries)
	}

	if len(p.Games) != 2 {
		t.Fatalf("got %d playoff games, want 2 (zero game id skipped)", len(p.Games))
	}
	if p.Games[0].ID != "2_1_A_201" || p.Games[0].Number != 1 {
		t.Errorf("playoff game = %+v", p.Games[0])
	}
	if p.Games[1].GameID != 202 || p.Games[1].Number != 2 {
		t.Errorf("playoff game = %+v", p.Games[1])
	}
}
