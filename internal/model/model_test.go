package model

import "testing"

func TestNaturalKeys(t *testing.T) {
	tests := []struct {
		rec  Record
		want string
	}{
		{Team{ID: 3}, "3"},
		{Game{ID: 137}, "137"},
		{GameStatSkater{GameID: 137, PlayerID: 32}, "137/32"},
		{GameStatTeam{GameID: 137, TeamID: 1}, "137/1"},
		{SeasonStatGoalie{SeasonID: 5, PlayerID: 61}, "5/61"},
		{PlayoffSeries{ID: "5_1_A"}, "5_1_A"},
		{GoalEvent{EventBase: EventBase{ID: "137_goal_88"}}, "137_goal_88"},
	}
	for _, tt := range tests {
		if got := tt.rec.NaturalKey(); got != tt.want {
			t.Errorf("%s NaturalKey = %q, want %q", tt.rec.Kind(), got, tt.want)
		}
	}
}

func TestKindsAreDistinct(t *testing.T) {
	seen := make(map[Kind]bool, len(Kinds))
	for _, k := range Kinds {
		if seen[k] {
			t.Errorf("duplicate kind %s", k)
		}
		seen[k] = true
	}
}

func TestGameStatusValid(t *testing.T) {
	for _, s := range []GameStatus{StatusScheduled, StatusInProgress, StatusFinal, StatusPostponed, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if GameStatus("unknown").Valid() {
		t.Error("unknown status should be invalid")
	}
}
