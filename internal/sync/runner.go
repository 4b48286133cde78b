package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/coldrink/pwhl-data/internal/config"
	"github.com/coldrink/pwhl-data/internal/hockeytech"
	"github.com/coldrink/pwhl-data/internal/model"
	"github.com/coldrink/pwhl-data/internal/normalize"
)

// Source is the feed surface the runner pulls from. *hockeytech.Client
// satisfies it; tests substitute a fake.
type Source interface {
	FetchBasicInfo(ctx context.Context) ([]byte, error)
	FetchSeasons(ctx context.Context) ([]byte, error)
	FetchTeams(ctx context.Context, seasonID int) ([]byte, error)
	FetchRoster(ctx context.Context, seasonID, teamID int) ([]byte, error)
	FetchPlayerInfo(ctx context.Context, playerID int) ([]byte, error)
	FetchSchedule(ctx context.Context, seasonID int) ([]byte, error)
	FetchGameSummary(ctx context.Context, gameID int) ([]byte, error)
	FetchSkaterStats(ctx context.Context, seasonID int) ([]byte, error)
	FetchGoalieStats(ctx context.Context, seasonID int) ([]byte, error)
	FetchTeamStats(ctx context.Context, seasonID int) ([]byte, error)
	FetchPlayoffs(ctx context.Context, seasonID int) ([]byte, error)
	FetchPlayByPlay(ctx context.Context, gameID int) ([]byte, error)
}

// Mirror is the persistence surface the runner writes to and resolves scope
// against. *store.Store satisfies it.
type Mirror interface {
	Ping(ctx context.Context) error
	Apply(ctx context.Context, kind model.Kind, records []model.Record) error

	SeasonIDs(ctx context.Context) ([]int, error)
	SeasonExists(ctx context.Context, seasonID int) (bool, error)
	PlayoffSeasonIDs(ctx context.Context) ([]int, error)
	CurrentSeasonID(ctx context.Context) (int, error)
	TeamIDs(ctx context.Context) ([]int, error)
	TeamExists(ctx context.Context, teamID int) (bool, error)
	PlayerCount(ctx context.Context) (int, error)
	GameCount(ctx context.Context) (int, error)
	GamesForSeason(ctx context.Context, seasonID int) ([]int, error)
	FinalGameIDs(ctx context.Context, seasonID int) ([]int, error)
	GameSeason(ctx context.Context, gameID int) (int, error)
	GamesMissingPlayByPlay(ctx context.Context) ([]int, error)
}

// Runner drives one sync run: fetch, normalize, apply, in dependency order.
type Runner struct {
	source  Source
	mirror  Mirror
	clock   normalize.Clock
	workers int
	logger  *slog.Logger
}

// NewRunner wires a runner from its collaborators.
func NewRunner(source Source, mirror Mirror, cfg *config.Config, logger *slog.Logger) *Runner {
	workers := cfg.FetchWorkers
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		source:  source,
		mirror:  mirror,
		clock:   normalize.Clock{Mode: cfg.PBPClockMode},
		workers: workers,
		logger:  logger,
	}
}

// Run executes the scoped categories in Stages order. Unit failures are
// isolated into the report; Run itself returns an error only when the scope
// is invalid, the mirror is unreachable, or the context is cancelled.
func (r *Runner) Run(ctx context.Context, scope Scope) (*Report, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	if err := r.mirror.Ping(ctx); err != nil {
		return nil, fmt.Errorf("mirror unreachable: %w", err)
	}

	requested := scope.requested()
	required := Required(requested)
	report := NewReport()
	defer func() { report.Finished = time.Now() }()

	for _, cat := range Stages {
		if !required[cat] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}
		r.logger.Info("syncing category", "category", string(cat), "requested", requested[cat])

		var err error
		switch cat {
		case CategoryBasic:
			err = r.syncBasic(ctx, scope, requested[cat], report)
		case CategoryPlayers:
			err = r.syncPlayers(ctx, scope, requested[cat], report)
		case CategoryGames:
			err = r.syncGames(ctx, scope, requested[cat], report)
		case CategoryGameStats:
			err = r.syncGameStats(ctx, scope, report)
		case CategorySeasonStats:
			err = r.syncSeasonStats(ctx, scope, report)
		case CategoryPlayoffs:
			err = r.syncPlayoffs(ctx, scope, report)
		case CategoryPlayByPlay:
			err = r.syncPlayByPlay(ctx, scope, report)
		}
		if err != nil {
			return report, fmt.Errorf("category %s: %w", cat, err)
		}
	}
	return report, nil
}

// --------------------------------------------------------------------------
// Basic info
// --------------------------------------------------------------------------

func (r *Runner) syncBasic(ctx context.Context, scope Scope, requested bool, report *Report) error {
	if !requested {
		mirrored, err := r.basicMirrored(ctx, scope)
		if err != nil {
			return err
		}
		if mirrored {
			r.logger.Debug("basic info already mirrored, skipping prerequisite refresh")
			return nil
		}
	}

	if payload, err := r.source.FetchBasicInfo(ctx); err != nil {
		report.AddErrorf("fetch basic info: %v", err)
	} else if info, warns, err := normalize.NormalizeBasicInfo(payload); err != nil {
		report.AddErrorf("normalize basic info: %v", err)
	} else {
		r.warn(report, "basic info", warns)
		r.apply(ctx, report, model.KindLeague, toRecords(info.Leagues))
		r.apply(ctx, report, model.KindConference, toRecords(info.Conferences))
		r.apply(ctx, report, model.KindDivision, toRecords(info.Divisions))
	}

	if payload, err := r.source.FetchSeasons(ctx); err != nil {
		report.AddErrorf("fetch seasons: %v", err)
	} else if seasons, warns, err := normalize.NormalizeSeasons(payload); err != nil {
		report.AddErrorf("normalize seasons: %v", err)
	} else {
		r.warn(report, "seasons", warns)
		r.apply(ctx, report, model.KindSeason, toRecords(seasons))
	}

	seasonID, err := r.teamSeason(ctx, scope)
	if err != nil {
		return err
	}
	if seasonID == 0 {
		report.AddErrorf("fetch teams: no season known yet")
		return nil
	}
	if payload, err := r.source.FetchTeams(ctx, seasonID); err != nil {
		report.AddErrorf("fetch teams for season %d: %v", seasonID, err)
	} else if teams, warns, err := normalize.NormalizeTeams(payload); err != nil {
		report.AddErrorf("normalize teams for season %d: %v", seasonID, err)
	} else {
		r.warn(report, "teams", warns)
		r.apply(ctx, report, model.KindTeam, toRecords(teams))
	}
	return nil
}

// teamSeason picks the season whose team list defines the mirror's teams:
// the scoped season, the current season, or the newest known season.
func (r *Runner) teamSeason(ctx context.Context, scope Scope) (int, error) {
	if scope.SeasonID != 0 {
		return scope.SeasonID, nil
	}
	current, err := r.mirror.CurrentSeasonID(ctx)
	if err != nil {
		return 0, err
	}
	if current != 0 {
		return current, nil
	}
	ids, err := r.mirror.SeasonIDs(ctx)
	if err != nil || len(ids) == 0 {
		return 0, err
	}
	max := ids[0]
	for _, id := range ids[1:] {
		if id > max {
			max = id
		}
	}
	return max, nil
}

// basicMirrored reports whether the basic prerequisite is satisfied: the
// scoped season must be mirrored when one is named, any season otherwise.
func (r *Runner) basicMirrored(ctx context.Context, scope Scope) (bool, error) {
	if scope.SeasonID != 0 {
		return r.mirror.SeasonExists(ctx, scope.SeasonID)
	}
	ids, err := r.mirror.SeasonIDs(ctx)
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// --------------------------------------------------------------------------
// Players
// --------------------------------------------------------------------------

func (r *Runner) syncPlayers(ctx context.Context, scope Scope, requested bool, report *Report) error {
	if scope.PlayerID != 0 {
		payload, err := r.source.FetchPlayerInfo(ctx, scope.PlayerID)
		if err != nil {
			report.AddErrorf("fetch player %d: %v", scope.PlayerID, err)
			return nil
		}
		player, err := normalize.NormalizePlayerInfo(payload, scope.PlayerID)
		if err != nil {
			report.AddErrorf("normalize player %d: %v", scope.PlayerID, err)
			return nil
		}
		r.apply(ctx, report, model.KindPlayer, []model.Record{player})
		return nil
	}

	// A season-narrowed prerequisite refreshes that season's rosters;
	// mirrored players may all belong to other seasons.
	if !requested && scope.SeasonID == 0 {
		n, err := r.mirror.PlayerCount(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			r.logger.Debug("players already mirrored, skipping prerequisite refresh")
			return nil
		}
	}

	seasons, err := r.scopeSeasons(ctx, scope)
	if err != nil {
		return err
	}
	teams, err := r.mirror.TeamIDs(ctx)
	if err != nil {
		return err
	}

	type rosterUnit struct {
		seasonID int
		teamID   int
	}
	units := make([]rosterUnit, 0, len(seasons)*len(teams))
	for _, seasonID := range seasons {
		for _, teamID := range teams {
			units = append(units, rosterUnit{seasonID, teamID})
		}
	}

	runUnits(ctx, r.workers, units,
		func(ctx context.Context, u rosterUnit) ([]byte, error) {
			return r.source.FetchRoster(ctx, u.seasonID, u.teamID)
		},
		func(u rosterUnit, payload []byte, err error) {
			if hockeytech.IsNotFound(err) {
				r.logger.Debug("no roster", "season_id", u.seasonID, "team_id", u.teamID)
				return
			}
			if err != nil {
				report.AddErrorf("fetch roster season=%d team=%d: %v", u.seasonID, u.teamID, err)
				return
			}
			players, warns, err := normalize.NormalizeRoster(payload, u.teamID)
			if err != nil {
				report.AddErrorf("normalize roster season=%d team=%d: %v", u.seasonID, u.teamID, err)
				return
			}
			r.warn(report, "roster", warns)
			r.apply(ctx, report, model.KindPlayer, toRecords(players))
		})
	return nil
}

// --------------------------------------------------------------------------
// Games
// --------------------------------------------------------------------------

func (r *Runner) syncGames(ctx context.Context, scope Scope, requested bool, report *Report) error {
	if scope.GameID != 0 {
		return r.syncSingleGame(ctx, scope.GameID, report)
	}

	if !requested {
		mirrored, err := r.gamesMirrored(ctx, scope)
		if err != nil {
			return err
		}
		if mirrored {
			r.logger.Debug("games already mirrored, skipping prerequisite refresh")
			return nil
		}
	}

	seasons, err := r.scopeSeasons(ctx, scope)
	if err != nil {
		return err
	}
	for _, seasonID := range seasons {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := r.source.FetchSchedule(ctx, seasonID)
		if hockeytech.IsNotFound(err) {
			r.logger.Debug("no schedule", "season_id", seasonID)
			continue
		}
		if err != nil {
			report.AddErrorf("fetch schedule season=%d: %v", seasonID, err)
			continue
		}
		games, warns, err := normalize.NormalizeSchedule(payload, seasonID)
		if err != nil {
			report.AddErrorf("normalize schedule season=%d: %v", seasonID, err)
			continue
		}
		r.warn(report, "schedule", warns)
		r.apply(ctx, report, model.KindGame, toRecords(games))
	}
	return nil
}

// gamesMirrored reports whether the games prerequisite is satisfied: the
// scoped season must have mirrored games when one is named, any game
// otherwise.
func (r *Runner) gamesMirrored(ctx context.Context, scope Scope) (bool, error) {
	if scope.SeasonID != 0 {
		ids, err := r.mirror.GamesForSeason(ctx, scope.SeasonID)
		if err != nil {
			return false, err
		}
		return len(ids) > 0, nil
	}
	n, err := r.mirror.GameCount(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// syncSingleGame refreshes one game's schedule row. When the game is not
// mirrored yet its season is resolved from the game summary first.
func (r *Runner) syncSingleGame(ctx context.Context, gameID int, report *Report) error {
	seasonID, err := r.mirror.GameSeason(ctx, gameID)
	if err != nil {
		return err
	}
	if seasonID == 0 {
		payload, err := r.source.FetchGameSummary(ctx, gameID)
		if err != nil {
			report.AddErrorf("fetch game %d summary: %v", gameID, err)
			return nil
		}
		gs, _, err := normalize.NormalizeGameStats(payload, gameID)
		if err != nil {
			report.AddErrorf("resolve season of game %d: %v", gameID, err)
			return nil
		}
		seasonID = gs.SeasonID
	}

	payload, err := r.source.FetchSchedule(ctx, seasonID)
	if err != nil {
		report.AddErrorf("fetch schedule season=%d: %v", seasonID, err)
		return nil
	}
	games, warns, err := normalize.NormalizeSchedule(payload, seasonID)
	if err != nil {
		report.AddErrorf("normalize schedule season=%d: %v", seasonID, err)
		return nil
	}
	r.warn(report, "schedule", warns)
	for _, game := range games {
		if game.ID == gameID {
			if err := r.ensureTeams(ctx, seasonID, report, game.HomeTeamID, game.VisitorTeamID); err != nil {
				return err
			}
			r.apply(ctx, report, model.KindGame, []model.Record{game})
			return nil
		}
	}
	report.AddErrorf("game %d not found in season %d schedule", gameID, seasonID)
	return nil
}

// ensureTeams refreshes the season's team list when any of the given teams
// is not mirrored yet. Game rows reference both participants.
func (r *Runner) ensureTeams(ctx context.Context, seasonID int, report *Report, teamIDs ...int) error {
	for _, id := range teamIDs {
		ok, err := r.mirror.TeamExists(ctx, id)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		payload, err := r.source.FetchTeams(ctx, seasonID)
		if err != nil {
			report.AddErrorf("fetch teams for season %d: %v", seasonID, err)
			return nil
		}
		teams, warns, err := normalize.NormalizeTeams(payload)
		if err != nil {
			report.AddErrorf("normalize teams for season %d: %v", seasonID, err)
			return nil
		}
		r.warn(report, "teams", warns)
		r.apply(ctx, report, model.KindTeam, toRecords(teams))
		return nil
	}
	return nil
}

// --------------------------------------------------------------------------
// Game stats
// --------------------------------------------------------------------------

func (r *Runner) syncGameStats(ctx context.Context, scope Scope, report *Report) error {
	games, err := r.scopeFinalGames(ctx, scope)
	if err != nil {
		return err
	}
	single := scope.GameID != 0

	runUnits(ctx, r.workers, games,
		func(ctx context.Context, gameID int) ([]byte, error) {
			return r.source.FetchGameSummary(ctx, gameID)
		},
		func(gameID int, payload []byte, err error) {
			if hockeytech.IsNotFound(err) {
				if single {
					report.AddErrorf("game %d: summary not available", gameID)
				} else {
					r.logger.Debug("no game summary", "game_id", gameID)
				}
				return
			}
			if err != nil {
				report.AddErrorf("fetch game %d summary: %v", gameID, err)
				return
			}
			gs, warns, err := normalize.NormalizeGameStats(payload, gameID)
			if err != nil {
				report.AddErrorf("normalize game %d summary: %v", gameID, err)
				return
			}
			r.warn(report, "game summary", warns)
			r.apply(ctx, report, model.KindGameStatTeam, toRecords(gs.Teams))
			r.apply(ctx, report, model.KindGameStatSkater, toRecords(gs.Skaters))
			r.apply(ctx, report, model.KindGameStatGoalie, toRecords(gs.Goalies))
		})
	return nil
}

// --------------------------------------------------------------------------
// Season stats
// --------------------------------------------------------------------------

func (r *Runner) syncSeasonStats(ctx context.Context, scope Scope, report *Report) error {
	seasons, err := r.scopeSeasons(ctx, scope)
	if err != nil {
		return err
	}

	sheets := []struct {
		name  string
		fetch func(context.Context, int) ([]byte, error)
		norm  func([]byte, int) (model.Kind, []model.Record, []error, error)
	}{
		{"skater season stats", r.source.FetchSkaterStats,
			func(p []byte, s int) (model.Kind, []model.Record, []error, error) {
				recs, warns, err := normalize.NormalizeSkaterStats(p, s)
				return model.KindSeasonStatSkater, toRecords(recs), warns, err
			}},
		{"goalie season stats", r.source.FetchGoalieStats,
			func(p []byte, s int) (model.Kind, []model.Record, []error, error) {
				recs, warns, err := normalize.NormalizeGoalieStats(p, s)
				return model.KindSeasonStatGoalie, toRecords(recs), warns, err
			}},
		{"team season stats", r.source.FetchTeamStats,
			func(p []byte, s int) (model.Kind, []model.Record, []error, error) {
				recs, warns, err := normalize.NormalizeTeamStats(p, s)
				return model.KindSeasonStatTeam, toRecords(recs), warns, err
			}},
	}

	for _, seasonID := range seasons {
		for _, sheet := range sheets {
			if err := ctx.Err(); err != nil {
				return err
			}
			payload, err := sheet.fetch(ctx, seasonID)
			if hockeytech.IsNotFound(err) {
				r.logger.Debug("no stats sheet", "sheet", sheet.name, "season_id", seasonID)
				continue
			}
			if err != nil {
				report.AddErrorf("fetch %s season=%d: %v", sheet.name, seasonID, err)
				continue
			}
			kind, recs, warns, err := sheet.norm(payload, seasonID)
			if err != nil {
				report.AddErrorf("normalize %s season=%d: %v", sheet.name, seasonID, err)
				continue
			}
			r.warn(report, sheet.name, warns)
			r.apply(ctx, report, kind, recs)
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Playoffs
// --------------------------------------------------------------------------

func (r *Runner) syncPlayoffs(ctx context.Context, scope Scope, report *Report) error {
	var seasons []int
	var err error
	if scope.SeasonID != 0 {
		seasons = []int{scope.SeasonID}
	} else if seasons, err = r.mirror.PlayoffSeasonIDs(ctx); err != nil {
		return err
	}

	for _, seasonID := range seasons {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := r.source.FetchPlayoffs(ctx, seasonID)
		if hockeytech.IsNotFound(err) {
			r.logger.Debug("no bracket", "season_id", seasonID)
			continue
		}
		if err != nil {
			report.AddErrorf("fetch playoffs season=%d: %v", seasonID, err)
			continue
		}
		bracket, warns, err := normalize.NormalizePlayoffs(payload, seasonID)
		if err != nil {
			report.AddErrorf("normalize playoffs season=%d: %v", seasonID, err)
			continue
		}
		r.warn(report, "playoffs", warns)
		if !r.apply(ctx, report, model.KindPlayoffRound, toRecords(bracket.Rounds)) {
			continue
		}
		if !r.apply(ctx, report, model.KindPlayoffSeries, toRecords(bracket.Series)) {
			continue
		}
		r.apply(ctx, report, model.KindPlayoffGame, toRecords(bracket.Games))
	}
	return nil
}

// --------------------------------------------------------------------------
// Play by play
// --------------------------------------------------------------------------

func (r *Runner) syncPlayByPlay(ctx context.Context, scope Scope, report *Report) error {
	var games []int
	var err error
	switch {
	case scope.GameID != 0:
		games = []int{scope.GameID}
	case scope.SeasonID != 0:
		missing, err := r.mirror.GamesMissingPlayByPlay(ctx)
		if err != nil {
			return err
		}
		finals, err := r.mirror.FinalGameIDs(ctx, scope.SeasonID)
		if err != nil {
			return err
		}
		games = intersect(missing, finals)
	default:
		if games, err = r.mirror.GamesMissingPlayByPlay(ctx); err != nil {
			return err
		}
	}
	single := scope.GameID != 0

	runUnits(ctx, r.workers, games,
		func(ctx context.Context, gameID int) ([]byte, error) {
			return r.source.FetchPlayByPlay(ctx, gameID)
		},
		func(gameID int, payload []byte, err error) {
			if hockeytech.IsNotFound(err) {
				if single {
					report.AddErrorf("game %d: play-by-play not available", gameID)
				} else {
					r.logger.Debug("no play-by-play", "game_id", gameID)
				}
				return
			}
			if err != nil {
				report.AddErrorf("fetch play-by-play game=%d: %v", gameID, err)
				return
			}
			seasonID, err := r.mirror.GameSeason(ctx, gameID)
			if err != nil {
				report.AddErrorf("resolve season of game %d: %v", gameID, err)
				return
			}
			if seasonID == 0 {
				report.AddErrorf("game %d is not mirrored yet, refresh games first", gameID)
				return
			}
			events, warns, err := normalize.NormalizePlayByPlay(payload, gameID, seasonID, r.clock)
			if err != nil {
				report.AddErrorf("normalize play-by-play game=%d: %v", gameID, err)
				return
			}
			r.warn(report, "play-by-play", warns)
			for _, batch := range events.Batches() {
				r.apply(ctx, report, batch.Kind, batch.Records)
			}
		})
	return nil
}

// --------------------------------------------------------------------------
// Shared helpers
// --------------------------------------------------------------------------

// scopeSeasons resolves the seasons a category iterates: the scoped season,
// or every mirrored one.
func (r *Runner) scopeSeasons(ctx context.Context, scope Scope) ([]int, error) {
	if scope.SeasonID != 0 {
		return []int{scope.SeasonID}, nil
	}
	return r.mirror.SeasonIDs(ctx)
}

// scopeFinalGames resolves the finished games a category iterates.
func (r *Runner) scopeFinalGames(ctx context.Context, scope Scope) ([]int, error) {
	if scope.GameID != 0 {
		return []int{scope.GameID}, nil
	}
	seasons, err := r.scopeSeasons(ctx, scope)
	if err != nil {
		return nil, err
	}
	var games []int
	for _, seasonID := range seasons {
		ids, err := r.mirror.FinalGameIDs(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		games = append(games, ids...)
	}
	return games, nil
}

// apply commits one batch and tallies the outcome. It reports whether the
// batch was committed.
func (r *Runner) apply(ctx context.Context, report *Report, kind model.Kind, records []model.Record) bool {
	if len(records) == 0 {
		return true
	}
	if err := r.mirror.Apply(ctx, kind, records); err != nil {
		report.AddFailed(kind, len(records), err)
		return false
	}
	report.AddSucceeded(kind, len(records))
	return true
}

func (r *Runner) warn(report *Report, entity string, warns []error) {
	if len(warns) == 0 {
		return
	}
	report.AddWarnings(len(warns))
	for _, w := range warns {
		r.logger.Warn("record skipped", "entity", entity, "reason", w.Error())
	}
}

func toRecords[T model.Record](items []T) []model.Record {
	out := make([]model.Record, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func intersect(a, b []int) []int {
	set := make(map[int]bool, len(b))
	for _, n := range b {
		set[n] = true
	}
	var out []int
	for _, n := range a {
		if set[n] {
			out = append(out, n)
		}
	}
	return out
}

type unitResult[T, R any] struct {
	item T
	out  R
	err  error
}

// runUnits fans items out to a bounded pool of fetch workers and funnels the
// results back to commit, which runs on the calling goroutine only. Exactly
// one commit happens per item.
func runUnits[T, R any](ctx context.Context, workers int, items []T,
	fetch func(context.Context, T) (R, error),
	commit func(T, R, error),
) {
	if len(items) == 0 {
		return
	}
	if workers > len(items) {
		workers = len(items)
	}

	work := make(chan T, len(items))
	for _, item := range items {
		work <- item
	}
	close(work)

	results := make(chan unitResult[T, R])
	for i := 0; i < workers; i++ {
		go func() {
			for item := range work {
				out, err := fetch(ctx, item)
				results <- unitResult[T, R]{item: item, out: out, err: err}
			}
		}()
	}

	for range items {
		res := <-results
		commit(res.item, res.out, res.err)
	}
}
