package normalize

import (
	"math"
	"testing"
)

func statviewPayload(rows string) []byte {
	return []byte(`[{"sections": [{"data": [` + rows + `]}]}]`)
}

func TestNormalizeSkaterStatsDerivations(t *testing.T) {
	payload := statviewPayload(`
		{"row": {"player_id": "32", "team_id": "1", "games_played": "10",
			"goals": "6", "assists": "9", "points": "0",
			"shots": "40", "faceoff_wins": "55", "faceoff_attempts": "100",
			"plus_minus": "+7", "penalty_minutes": "4"}},
		{"row": {"player_id": "0"}}`)

	stats, warns, err := NormalizeSkaterStats(payload, 5)
	if err != nil {
		t.Fatalf("NormalizeSkaterStats: %v", err)
	}
	if len(stats) != 1 || len(warns) != 1 {
		t.Fatalf("stats/warns = %d/%d, want 1/1", len(stats), len(warns))
	}

	s := stats[0]
	if s.SeasonID != 5 || s.PlayerID != 32 {
		t.Errorf("keys = %d/%d", s.SeasonID, s.PlayerID)
	}
	if s.Points != 15 {
		t.Errorf("points = %d, want 15 (derived from 6G+9A)", s.Points)
	}
	if s.PointsPerGame != 1.5 {
		t.Errorf("points per game = %v, want 1.5", s.PointsPerGame)
	}
	if s.ShootingPct != 15.0 {
		t.Errorf("shooting pct = %v, want 15.0", s.ShootingPct)
	}
	if s.FaceoffPct != 55.0 {
		t.Errorf("faceoff pct = %v, want 55.0", s.FaceoffPct)
	}
	if s.PlusMinus != 7 {
		t.Errorf("plus-minus = %d, want 7 (leading + stripped)", s.PlusMinus)
	}
}

func TestNormalizeGoalieStatsDerivations(t *testing.T) {
	payload := statviewPayload(`
		{"row": {"player_id": "61", "team_id": "2", "games_played": "12",
			"saves": "270", "shots": "300", "goals_against": "30",
			"seconds_played": "43200", "wins": "8", "losses": "3", "ot_losses": "1",
			"shutouts": "2", "assists": "1"}}`)

	stats, _, err := NormalizeGoalieStats(payload, 5)
	if err != nil {
		t.Fatalf("NormalizeGoalieStats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("got %d stats, want 1", len(stats))
	}

	g := stats[0]
	if g.SavePct != 0.9 {
		t.Errorf("save pct = %v, want 0.9", g.SavePct)
	}
	if math.Abs(g.GoalsAgainstAvg-2.5) > 1e-9 {
		t.Errorf("gaa = %v, want 2.5", g.GoalsAgainstAvg)
	}
	if g.Points != 1 {
		t.Errorf("points = %d, want 1", g.Points)
	}
}

func TestNormalizeGoalieStatsFallbackKeys(t *testing.T) {
	payload := statviewPayload(`
		{"row": {"player_id": "61", "saves": "90", "shots_against": "100",
			"goals_against": "10", "ice_time": "7200"}}`)

	stats, _, err := NormalizeGoalieStats(payload, 5)
	if err != nil {
		t.Fatalf("NormalizeGoalieStats: %v", err)
	}
	g := stats[0]
	if g.ShotsAgainst != 100 {
		t.Errorf("shots against = %d, want shots_against fallback", g.ShotsAgainst)
	}
	if g.SecondsPlayed != 7200 {
		t.Errorf("seconds = %d, want ice_time fallback", g.SecondsPlayed)
	}
	if g.GoalsAgainstAvg != 5.0 {
		t.Errorf("gaa = %v, want 5.0", g.GoalsAgainstAvg)
	}
}

func TestNormalizeTeamStats(t *testing.T) {
	payload := statviewPayload(`
		{"row": {"team_id": "1", "division_id": "3", "games_played": "30",
			"wins": "18", "losses": "9", "ot_losses": "3", "points": "57",
			"goals_for": "95", "goals_against": "70"}}`)

	stats, _, err := NormalizeTeamStats(payload, 5)
	if err != nil {
		t.Fatalf("NormalizeTeamStats: %v", err)
	}
	s := stats[0]
	if s.TeamID != 1 || s.SeasonID != 5 {
		t.Errorf("keys = %d/%d", s.TeamID, s.SeasonID)
	}
	if s.DivisionID == nil || *s.DivisionID != 3 {
		t.Errorf("division = %v, want 3", s.DivisionID)
	}
	if s.WinPct != 0.6 {
		t.Errorf("win pct = %v, want 0.6", s.WinPct)
	}
}

func TestStatviewRowsSingleObjectWrap(t *testing.T) {
	payload := []byte(`{"sections": [{"data": [{"row": {"team_id": "1"}}]}]}`)
	rows, err := statviewRows(payload, "team stats")
	if err != nil {
		t.Fatalf("statviewRows: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows, want 1", len(rows))
	}

	if _, err := statviewRows([]byte(`[]`), "team stats"); err == nil {
		t.Error("empty payload should fail")
	}
}
