package sync

import "testing"

func TestStagesAndPrereqsAgree(t *testing.T) {
	pos := make(map[Category]int, len(Stages))
	for i, cat := range Stages {
		pos[cat] = i
	}
	if len(pos) != len(Stages) {
		t.Fatal("Stages contains a duplicate category")
	}

	for cat, pres := range Prereqs {
		if _, ok := pos[cat]; !ok {
			t.Errorf("Prereqs names %s, which is not in Stages", cat)
		}
		for _, pre := range pres {
			prePos, ok := pos[pre]
			if !ok {
				t.Errorf("%s requires %s, which is not in Stages", cat, pre)
				continue
			}
			if prePos >= pos[cat] {
				t.Errorf("%s requires %s, but %s runs later in Stages", cat, pre, pre)
			}
		}
	}
	for _, cat := range Stages {
		if _, ok := Prereqs[cat]; !ok {
			t.Errorf("Stages names %s, which has no Prereqs entry", cat)
		}
	}
}

func TestRequiredExpandsTransitively(t *testing.T) {
	tests := []struct {
		name      string
		requested []Category
		want      []Category
	}{
		{"basic alone", []Category{CategoryBasic}, []Category{CategoryBasic}},
		{"games pull basic", []Category{CategoryGames}, []Category{CategoryBasic, CategoryGames}},
		{
			"game stats pull the chain",
			[]Category{CategoryGameStats},
			[]Category{CategoryBasic, CategoryPlayers, CategoryGames, CategoryGameStats},
		},
		{
			"play by play skips players",
			[]Category{CategoryPlayByPlay},
			[]Category{CategoryBasic, CategoryGames, CategoryPlayByPlay},
		},
	}
	for _, tt := range tests {
		requested := make(map[Category]bool)
		for _, c := range tt.requested {
			requested[c] = true
		}
		got := Required(requested)
		if len(got) != len(tt.want) {
			t.Errorf("%s: Required = %v, want %v", tt.name, got, tt.want)
			continue
		}
		for _, c := range tt.want {
			if !got[c] {
				t.Errorf("%s: Required missing %s", tt.name, c)
			}
		}
	}
}

func TestScopeValidate(t *testing.T) {
	if err := (Scope{}).Validate(); err == nil {
		t.Error("empty scope should fail")
	}
	if err := (Scope{Players: true, GameID: 1, PlayerID: 2}).Validate(); err == nil {
		t.Error("game and player narrowing together should fail")
	}
	if err := All().Validate(); err != nil {
		t.Errorf("All scope should validate, got %v", err)
	}
	if err := (Scope{GameStats: true, GameID: 137}).Validate(); err != nil {
		t.Errorf("single-game scope should validate, got %v", err)
	}
}
