package sync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"testing"

	"github.com/coldrink/pwhl-data/internal/config"
	"github.com/coldrink/pwhl-data/internal/hockeytech"
	"github.com/coldrink/pwhl-data/internal/model"
)

// fakeSource serves canned payloads keyed by operation and ids. Operations
// without a fixture report NotFound, like the feed does for absent views.
type fakeSource struct {
	payloads map[string][]byte
	errs     map[string]error
	calls    []string
}

func (s *fakeSource) fetch(op string, ids ...int) ([]byte, error) {
	key := op
	for _, id := range ids {
		key += fmt.Sprintf("_%d", id)
	}
	s.calls = append(s.calls, key)
	if err, ok := s.errs[key]; ok {
		return nil, err
	}
	if p, ok := s.payloads[key]; ok {
		return p, nil
	}
	return nil, &hockeytech.FetchError{Op: op, Kind: hockeytech.NotFound, Err: errors.New("no fixture")}
}

func (s *fakeSource) called(key string) bool {
	for _, c := range s.calls {
		if c == key {
			return true
		}
	}
	return false
}

func (s *fakeSource) FetchBasicInfo(ctx context.Context) ([]byte, error) {
	return s.fetch("basic_info")
}
func (s *fakeSource) FetchSeasons(ctx context.Context) ([]byte, error) {
	return s.fetch("seasons")
}
func (s *fakeSource) FetchTeams(ctx context.Context, seasonID int) ([]byte, error) {
	return s.fetch("teams", seasonID)
}
func (s *fakeSource) FetchRoster(ctx context.Context, seasonID, teamID int) ([]byte, error) {
	return s.fetch("roster", seasonID, teamID)
}
func (s *fakeSource) FetchPlayerInfo(ctx context.Context, playerID int) ([]byte, error) {
	return s.fetch("player_info", playerID)
}
func (s *fakeSource) FetchSchedule(ctx context.Context, seasonID int) ([]byte, error) {
	return s.fetch("schedule", seasonID)
}
func (s *fakeSource) FetchGameSummary(ctx context.Context, gameID int) ([]byte, error) {
	return s.fetch("game_summary", gameID)
}
func (s *fakeSource) FetchSkaterStats(ctx context.Context, seasonID int) ([]byte, error) {
	return s.fetch("skater_stats", seasonID)
}
func (s *fakeSource) FetchGoalieStats(ctx context.Context, seasonID int) ([]byte, error) {
	return s.fetch("goalie_stats", seasonID)
}
func (s *fakeSource) FetchTeamStats(ctx context.Context, seasonID int) ([]byte, error) {
	return s.fetch("team_stats", seasonID)
}
func (s *fakeSource) FetchPlayoffs(ctx context.Context, seasonID int) ([]byte, error) {
	return s.fetch("playoffs", seasonID)
}
func (s *fakeSource) FetchPlayByPlay(ctx context.Context, gameID int) ([]byte, error) {
	return s.fetch("play_by_play", gameID)
}

// fakeMirror is an in-memory Mirror keyed by natural key, so applying the
// same record twice keeps one row, like the real upserts.
type fakeMirror struct {
	pingErr  error
	applyErr map[model.Kind]error
	order    []model.Kind
	records  map[model.Kind]map[string]model.Record
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{records: make(map[model.Kind]map[string]model.Record)}
}

func (m *fakeMirror) Ping(ctx context.Context) error { return m.pingErr }

func (m *fakeMirror) Apply(ctx context.Context, kind model.Kind, records []model.Record) error {
	if err := m.applyErr[kind]; err != nil {
		return err
	}
	byKey := m.records[kind]
	if byKey == nil {
		byKey = make(map[string]model.Record)
		m.records[kind] = byKey
	}
	for _, rec := range records {
		byKey[rec.NaturalKey()] = rec
	}
	m.order = append(m.order, kind)
	return nil
}

func (m *fakeMirror) count(kind model.Kind) int { return len(m.records[kind]) }

func (m *fakeMirror) seasons() []model.Season {
	var out []model.Season
	for _, rec := range m.records[model.KindSeason] {
		out = append(out, rec.(model.Season))
	}
	return out
}

func (m *fakeMirror) games() []model.Game {
	var out []model.Game
	for _, rec := range m.records[model.KindGame] {
		out = append(out, rec.(model.Game))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *fakeMirror) SeasonIDs(ctx context.Context) ([]int, error) {
	var ids []int
	for _, s := range m.seasons() {
		ids = append(ids, s.ID)
	}
	sort.Ints(ids)
	return ids, nil
}

func (m *fakeMirror) SeasonExists(ctx context.Context, seasonID int) (bool, error) {
	_, ok := m.records[model.KindSeason][strconv.Itoa(seasonID)]
	return ok, nil
}

func (m *fakeMirror) PlayoffSeasonIDs(ctx context.Context) ([]int, error) {
	var ids []int
	for _, s := range m.seasons() {
		if s.Playoff {
			ids = append(ids, s.ID)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (m *fakeMirror) CurrentSeasonID(ctx context.Context) (int, error) {
	for _, s := range m.seasons() {
		if s.Current {
			return s.ID, nil
		}
	}
	return 0, nil
}

func (m *fakeMirror) TeamIDs(ctx context.Context) ([]int, error) {
	var ids []int
	for _, rec := range m.records[model.KindTeam] {
		ids = append(ids, rec.(model.Team).ID)
	}
	sort.Ints(ids)
	return ids, nil
}

func (m *fakeMirror) TeamExists(ctx context.Context, teamID int) (bool, error) {
	_, ok := m.records[model.KindTeam][strconv.Itoa(teamID)]
	return ok, nil
}

func (m *fakeMirror) PlayerCount(ctx context.Context) (int, error) {
	return m.count(model.KindPlayer), nil
}

func (m *fakeMirror) GameCount(ctx context.Context) (int, error) {
	return m.count(model.KindGame), nil
}

func (m *fakeMirror) GamesForSeason(ctx context.Context, seasonID int) ([]int, error) {
	var ids []int
	for _, g := range m.games() {
		if g.SeasonID == seasonID {
			ids = append(ids, g.ID)
		}
	}
	return ids, nil
}

func (m *fakeMirror) FinalGameIDs(ctx context.Context, seasonID int) ([]int, error) {
	var ids []int
	for _, g := range m.games() {
		if g.SeasonID == seasonID && g.Status == model.StatusFinal {
			ids = append(ids, g.ID)
		}
	}
	return ids, nil
}

func (m *fakeMirror) GameSeason(ctx context.Context, gameID int) (int, error) {
	for _, g := range m.games() {
		if g.ID == gameID {
			return g.SeasonID, nil
		}
	}
	return 0, nil
}

func (m *fakeMirror) GamesMissingPlayByPlay(ctx context.Context) ([]int, error) {
	hasEvents := func(gameID int) bool {
		for _, kind := range []model.Kind{model.KindPBPFaceoff, model.KindPBPShot} {
			for _, rec := range m.records[kind] {
				switch e := rec.(type) {
				case model.FaceoffEvent:
					if e.GameID == gameID {
						return true
					}
				case model.ShotEvent:
					if e.GameID == gameID {
						return true
					}
				}
			}
		}
		return false
	}
	var ids []int
	for _, g := range m.games() {
		if g.Status == model.StatusFinal && !hasEvents(g.ID) {
			ids = append(ids, g.ID)
		}
	}
	return ids, nil
}

func newTestRunner(src *fakeSource, mirror *fakeMirror) *Runner {
	cfg := &config.Config{FetchWorkers: 1, PBPClockMode: config.ClockModePeriod}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRunner(src, mirror, cfg, logger)
}

// seedBasic puts a current season and two teams in the mirror, the state a
// narrowed run resolves its scope against.
func seedBasic(t *testing.T, m *fakeMirror) {
	t.Helper()
	ctx := context.Background()
	err := m.Apply(ctx, model.KindSeason, []model.Record{
		model.Season{ID: 5, Name: "2024-25 Regular Season", Current: true, StartDate: "2024-11-30"},
	})
	if err != nil {
		t.Fatal(err)
	}
	err = m.Apply(ctx, model.KindTeam, []model.Record{
		model.Team{ID: 1, Name: "Boston Fleet", Code: "BOS"},
		model.Team{ID: 2, Name: "Montreal Victoire", Code: "MTL"},
	})
	if err != nil {
		t.Fatal(err)
	}
	m.order = nil
}

func fullSyncSource() *fakeSource {
	return &fakeSource{payloads: map[string][]byte{
		"basic_info": []byte(`{"current_league_id": "1", "leagues": [
			{"id": "1", "name": "PWHL", "short_name": "PWHL", "code": "pwhl"}]}`),
		"seasons": []byte(`{"SiteKit": {"Seasons": [
			{"season_id": "5", "season_name": "2024-25 Regular Season",
				"career": "0", "playoff": "0", "start_date": "2024-11-30", "end_date": "2025-05-03"}]}}`),
		"teams_5": []byte(`{"SiteKit": {"Teamsbyseason": [
			{"id": "1", "name": "Boston Fleet", "code": "BOS"},
			{"id": "2", "name": "Montreal Victoire", "code": "MTL"}]}}`),
		"roster_5_1": []byte(`{"SiteKit": {"Roster": [
			{"player_id": "32", "first_name": "Hilary", "last_name": "Knight"}]}}`),
		"roster_5_2": []byte(`{"SiteKit": {"Roster": [
			{"player_id": "40", "first_name": "Marie-Philip", "last_name": "Poulin"}]}}`),
		"schedule_5": []byte(`{"SiteKit": {"Schedule": [
			{"game_id": "137", "season_id": "5", "home_team": "1", "visiting_team": "2",
				"home_goal_count": "3", "visiting_goal_count": "2", "status": "4",
				"GameDateISO8601": "2024-12-30T19:00:00-05:00"}]}}`),
		"game_summary_137": []byte(`{"GC": {"Gamesummary": {
			"meta": {"season_id": "5", "home_team": "1", "visiting_team": "2",
				"home_goal_count": "3", "visiting_goal_count": "2"},
			"shotsByPeriod": {"home": {"1": "10"}, "visitor": {"1": "8"}},
			"home_team_lineup": {"players": [
				{"player_id": "32", "position_str": "C", "goals": "2", "assists": "0"}]},
			"visitor_team_lineup": {"players": [
				{"player_id": "40", "position_str": "F", "goals": "1", "assists": "0"}]}
		}}}`),
		"skater_stats_5": []byte(`[{"sections": [{"data": [
			{"row": {"player_id": "32", "team_id": "1", "games_played": "10", "goals": "6", "assists": "9"}}]}]}]`),
		"goalie_stats_5": []byte(`[{"sections": [{"data": [
			{"row": {"player_id": "40", "team_id": "2", "saves": "90", "shots": "100"}}]}]}]`),
		"team_stats_5": []byte(`[{"sections": [{"data": [
			{"row": {"team_id": "1", "games_played": "10", "wins": "6"}},
			{"row": {"team_id": "2", "games_played": "10", "wins": "4"}}]}]}]`),
		"play_by_play_137": []byte(`{"GC": {"Pxpverbose": [
			{"event": "goal", "id": "1", "period": "1", "s": "100", "goal_player_id": "32"},
			{"event": "goal", "id": "2", "period": "1", "s": "400", "goal_player_id": "32"},
			{"event": "goal", "id": "3", "period": "2", "s": "250", "goal_player_id": "40"},
			{"event": "goal", "id": "4", "period": "3", "s": "180", "goal_player_id": "32"},
			{"event": "goal", "id": "5", "period": "3", "s": "900", "goal_player_id": "40"},
			{"event": "shot", "id": "9", "period_id": "2", "s": "30", "player_id": "40"}]}}`),
	}}
}

func TestRunFullSync(t *testing.T) {
	src := fullSyncSource()
	mirror := newFakeMirror()
	runner := newTestRunner(src, mirror)

	report, err := runner.Run(context.Background(), All())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("report errors: %v", report.Errors)
	}

	wantCounts := map[model.Kind]int{
		model.KindLeague:           1,
		model.KindSeason:           1,
		model.KindTeam:             2,
		model.KindPlayer:           2,
		model.KindGame:             1,
		model.KindGameStatTeam:     2,
		model.KindGameStatSkater:   2,
		model.KindSeasonStatSkater: 1,
		model.KindSeasonStatGoalie: 1,
		model.KindSeasonStatTeam:   2,
		model.KindPBPGoal:          5,
		model.KindPBPShot:          1,
	}
	for kind, want := range wantCounts {
		if got := mirror.count(kind); got != want {
			t.Errorf("%s rows = %d, want %d", kind, got, want)
		}
		tally := report.Kinds[kind]
		if tally == nil || tally.Succeeded != want || tally.Failed != 0 {
			t.Errorf("%s tally = %+v, want %d succeeded", kind, tally, want)
		}
	}

	// Commit order follows the dependency stages.
	first := make(map[model.Kind]int)
	for i, kind := range mirror.order {
		if _, ok := first[kind]; !ok {
			first[kind] = i
		}
	}
	chain := []model.Kind{
		model.KindSeason, model.KindTeam, model.KindPlayer, model.KindGame,
		model.KindGameStatTeam, model.KindSeasonStatSkater, model.KindPBPGoal,
	}
	for i := 1; i < len(chain); i++ {
		if first[chain[i-1]] >= first[chain[i]] {
			t.Errorf("%s committed at %d, not before %s at %d",
				chain[i-1], first[chain[i-1]], chain[i], first[chain[i]])
		}
	}

	if report.HasFailures() {
		t.Error("clean run should not report failures")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	src := fullSyncSource()
	mirror := newFakeMirror()
	runner := newTestRunner(src, mirror)

	if _, err := runner.Run(context.Background(), All()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	gamesBefore := mirror.count(model.KindGame)
	playersBefore := mirror.count(model.KindPlayer)
	goalsBefore := mirror.count(model.KindPBPGoal)

	report, err := runner.Run(context.Background(), All())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("second run errors: %v", report.Errors)
	}
	if mirror.count(model.KindGame) != gamesBefore ||
		mirror.count(model.KindPlayer) != playersBefore ||
		mirror.count(model.KindPBPGoal) != goalsBefore {
		t.Error("second run changed row counts")
	}
}

func TestRosterFailureIsIsolated(t *testing.T) {
	src := fullSyncSource()
	src.errs = map[string]error{
		"roster_5_1": &hockeytech.FetchError{Op: "roster", Kind: hockeytech.Transient, Err: errors.New("feed down")},
	}
	mirror := newFakeMirror()
	seedBasic(t, mirror)

	report, err := newTestRunner(src, mirror).Run(context.Background(), Scope{Players: true, Games: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("report errors = %v, want exactly the roster failure", report.Errors)
	}
	if got := mirror.count(model.KindPlayer); got != 1 {
		t.Errorf("players = %d, want 1 (other roster still applied)", got)
	}
	if got := mirror.count(model.KindGame); got != 1 {
		t.Errorf("games = %d, want 1 (later category still ran)", got)
	}
	if !report.HasFailures() {
		t.Error("report should carry the failure")
	}
}

func TestApplyFailureIsTallied(t *testing.T) {
	src := fullSyncSource()
	mirror := newFakeMirror()
	seedBasic(t, mirror)
	mirror.applyErr = map[model.Kind]error{model.KindGame: errors.New("constraint violation")}

	report, err := newTestRunner(src, mirror).Run(context.Background(), Scope{Games: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	tally := report.Kinds[model.KindGame]
	if tally == nil || tally.Failed != 1 || tally.Succeeded != 0 {
		t.Errorf("game tally = %+v, want 1 failed", tally)
	}
	if !report.HasFailures() {
		t.Error("report should carry the failure")
	}
}

func TestSingleGameScopeNarrowsFetches(t *testing.T) {
	src := fullSyncSource()
	src.payloads["schedule_5"] = []byte(`{"SiteKit": {"Schedule": [
		{"game_id": "137", "season_id": "5", "home_team": "1", "visiting_team": "2", "status": "4"},
		{"game_id": "138", "season_id": "5", "home_team": "2", "visiting_team": "1", "status": "1"}]}}`)
	mirror := newFakeMirror()
	seedBasic(t, mirror)

	report, err := newTestRunner(src, mirror).Run(context.Background(), Scope{Games: true, GameID: 137})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("report errors: %v", report.Errors)
	}

	if got := mirror.count(model.KindGame); got != 1 {
		t.Errorf("games = %d, want only the scoped one", got)
	}
	if _, ok := mirror.records[model.KindGame]["137"]; !ok {
		t.Error("game 137 not applied")
	}
	if !src.called("game_summary_137") {
		t.Error("season of an unmirrored game should be resolved from its summary")
	}
	if src.called("basic_info") || src.called("roster_5_1") {
		t.Errorf("narrowed run fetched too much: %v", src.calls)
	}
}

func TestSinglePlayerScope(t *testing.T) {
	src := &fakeSource{payloads: map[string][]byte{
		"player_info_24": []byte(`{"SiteKit": {"Player": {
			"player_id": "24", "first_name": "Natalie", "last_name": "Spooner"}}}`),
	}}
	mirror := newFakeMirror()
	seedBasic(t, mirror)

	report, err := newTestRunner(src, mirror).Run(context.Background(), Scope{Players: true, PlayerID: 24})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("report errors: %v", report.Errors)
	}
	if got := mirror.count(model.KindPlayer); got != 1 {
		t.Errorf("players = %d, want 1", got)
	}
	if src.called("roster_5_1") || src.called("roster_5_2") {
		t.Errorf("player scope fetched rosters: %v", src.calls)
	}
}

func TestPrerequisitesSkippedWhenMirrored(t *testing.T) {
	src := fullSyncSource()
	mirror := newFakeMirror()
	seedBasic(t, mirror)
	if err := mirror.Apply(context.Background(), model.KindPlayer, []model.Record{
		model.Player{ID: 32},
	}); err != nil {
		t.Fatal(err)
	}
	if err := mirror.Apply(context.Background(), model.KindGame, []model.Record{
		model.Game{ID: 137, SeasonID: 5, HomeTeamID: 1, VisitorTeamID: 2, Status: model.StatusFinal},
	}); err != nil {
		t.Fatal(err)
	}

	report, err := newTestRunner(src, mirror).Run(context.Background(), Scope{GameStats: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("report errors: %v", report.Errors)
	}
	for _, key := range []string{"basic_info", "seasons", "roster_5_1", "schedule_5"} {
		if src.called(key) {
			t.Errorf("prerequisite refetched %s; calls: %v", key, src.calls)
		}
	}
	if !src.called("game_summary_137") {
		t.Errorf("requested category not fetched; calls: %v", src.calls)
	}
	if got := mirror.count(model.KindGameStatSkater); got != 2 {
		t.Errorf("skater lines = %d, want 2", got)
	}
}

func TestSeasonScopedPrerequisitesCoverThatSeason(t *testing.T) {
	src := fullSyncSource()
	src.payloads["roster_6_1"] = []byte(`{"SiteKit": {"Roster": [
		{"player_id": "51", "first_name": "Sarah", "last_name": "Nurse"}]}}`)
	src.payloads["roster_6_2"] = []byte(`{"SiteKit": {"Roster": [
		{"player_id": "61", "first_name": "Ann-Renee", "last_name": "Desbiens"}]}}`)
	src.payloads["schedule_6"] = []byte(`{"SiteKit": {"Schedule": [
		{"game_id": "200", "season_id": "6", "home_team": "1", "visiting_team": "2",
			"home_goal_count": "2", "visiting_goal_count": "1", "status": "4",
			"GameDateISO8601": "2025-12-01T19:00:00-05:00"}]}}`)
	src.payloads["game_summary_200"] = []byte(`{"GC": {"Gamesummary": {
		"meta": {"season_id": "6", "home_team": "1", "visiting_team": "2",
			"home_goal_count": "2", "visiting_goal_count": "1"},
		"shotsByPeriod": {"home": {"1": "9"}, "visitor": {"1": "7"}},
		"home_team_lineup": {"players": [
			{"player_id": "51", "position_str": "F", "goals": "1", "assists": "0"}]},
		"visitor_team_lineup": {"players": [
			{"player_id": "61", "position_str": "D", "goals": "0", "assists": "1"}]}
	}}}`)

	ctx := context.Background()
	mirror := newFakeMirror()
	seedBasic(t, mirror)
	if err := mirror.Apply(ctx, model.KindSeason, []model.Record{
		model.Season{ID: 6, Name: "2025-26 Regular Season", StartDate: "2025-11-28"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := mirror.Apply(ctx, model.KindPlayer, []model.Record{
		model.Player{ID: 32},
	}); err != nil {
		t.Fatal(err)
	}
	if err := mirror.Apply(ctx, model.KindGame, []model.Record{
		model.Game{ID: 137, SeasonID: 5, HomeTeamID: 1, VisitorTeamID: 2, Status: model.StatusFinal},
	}); err != nil {
		t.Fatal(err)
	}
	mirror.order = nil

	report, err := newTestRunner(src, mirror).Run(ctx, Scope{GameStats: true, SeasonID: 6})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("report errors: %v", report.Errors)
	}

	// Season 5's mirrored games must not satisfy season 6's prerequisite.
	if !src.called("schedule_6") {
		t.Errorf("scoped season's schedule not fetched; calls: %v", src.calls)
	}
	if !src.called("roster_6_1") || !src.called("roster_6_2") {
		t.Errorf("scoped season's rosters not fetched; calls: %v", src.calls)
	}
	if !src.called("game_summary_200") {
		t.Errorf("scoped season's game stats not fetched; calls: %v", src.calls)
	}
	for _, key := range []string{"basic_info", "seasons", "schedule_5", "game_summary_137"} {
		if src.called(key) {
			t.Errorf("out-of-scope fetch %s; calls: %v", key, src.calls)
		}
	}
	if got := mirror.count(model.KindGameStatSkater); got != 2 {
		t.Errorf("skater lines = %d, want 2", got)
	}
}

func TestSeasonScopedGamesPrereqSkipsWhenMirrored(t *testing.T) {
	src := fullSyncSource()
	ctx := context.Background()
	mirror := newFakeMirror()
	seedBasic(t, mirror)
	if err := mirror.Apply(ctx, model.KindGame, []model.Record{
		model.Game{ID: 137, SeasonID: 5, HomeTeamID: 1, VisitorTeamID: 2, Status: model.StatusFinal},
	}); err != nil {
		t.Fatal(err)
	}
	mirror.order = nil

	report, err := newTestRunner(src, mirror).Run(ctx, Scope{GameStats: true, SeasonID: 5})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("report errors: %v", report.Errors)
	}
	if src.called("schedule_5") {
		t.Errorf("games prerequisite refetched for a mirrored season; calls: %v", src.calls)
	}
	if src.called("basic_info") || src.called("seasons") {
		t.Errorf("basic prerequisite refetched for a mirrored season; calls: %v", src.calls)
	}
	if !src.called("game_summary_137") {
		t.Errorf("requested category not fetched; calls: %v", src.calls)
	}
}

func TestSingleGameRefreshesMissingTeams(t *testing.T) {
	src := fullSyncSource()
	ctx := context.Background()
	mirror := newFakeMirror()
	if err := mirror.Apply(ctx, model.KindSeason, []model.Record{
		model.Season{ID: 5, Name: "2024-25 Regular Season", Current: true, StartDate: "2024-11-30"},
	}); err != nil {
		t.Fatal(err)
	}
	mirror.order = nil

	report, err := newTestRunner(src, mirror).Run(ctx, Scope{Games: true, GameID: 137})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("report errors: %v", report.Errors)
	}
	if !src.called("teams_5") {
		t.Errorf("participant teams not refreshed; calls: %v", src.calls)
	}
	if got := mirror.count(model.KindTeam); got != 2 {
		t.Errorf("teams = %d, want 2", got)
	}
	if _, ok := mirror.records[model.KindGame]["137"]; !ok {
		t.Error("game 137 not applied")
	}
	for i, kind := range mirror.order {
		if kind == model.KindGame {
			if i == 0 || mirror.order[0] != model.KindTeam {
				t.Errorf("teams should commit before the game row; order: %v", mirror.order)
			}
			break
		}
	}
}

func TestRunRejectsInvalidScope(t *testing.T) {
	runner := newTestRunner(&fakeSource{}, newFakeMirror())
	if _, err := runner.Run(context.Background(), Scope{}); err == nil {
		t.Error("empty scope should fail")
	}
	if _, err := runner.Run(context.Background(), Scope{Players: true, GameID: 1, PlayerID: 2}); err == nil {
		t.Error("contradictory narrowing should fail")
	}
}

func TestUnreachableMirrorIsFatal(t *testing.T) {
	mirror := newFakeMirror()
	mirror.pingErr = errors.New("connection refused")
	_, err := newTestRunner(&fakeSource{}, mirror).Run(context.Background(), All())
	if err == nil {
		t.Fatal("unreachable mirror should abort the run")
	}
}

func TestCancellationStopsBetweenCategories(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := newTestRunner(fullSyncSource(), newFakeMirror()).Run(ctx, All())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if report == nil {
		t.Fatal("cancelled run should still return its report")
	}
}
