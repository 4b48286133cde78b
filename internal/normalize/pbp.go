package normalize

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/coldrink/pwhl-data/internal/model"
)

// Events is one game's normalized play-by-play stream, demultiplexed by
// event kind. Every slice is sorted by (period, elapsed seconds).
type Events struct {
	Goals         []model.GoalEvent
	Shots         []model.ShotEvent
	BlockedShots  []model.BlockedShotEvent
	Faceoffs      []model.FaceoffEvent
	Hits          []model.HitEvent
	Penalties     []model.PenaltyEvent
	GoalieChanges []model.GoalieChangeEvent
	Shootouts     []model.ShootoutAttemptEvent
	Other         []model.OtherEvent
}

// Batch is one entity kind's worth of records, ready for a single Apply.
type Batch struct {
	Kind    model.Kind
	Records []model.Record
}

// Batches returns the per-kind record batches in a fixed commit order.
// Kinds with no events are omitted.
func (e *Events) Batches() []Batch {
	out := make([]Batch, 0, 9)
	add := func(kind model.Kind, n int, rec func(i int) model.Record) {
		if n == 0 {
			return
		}
		b := Batch{Kind: kind, Records: make([]model.Record, n)}
		for i := 0; i < n; i++ {
			b.Records[i] = rec(i)
		}
		out = append(out, b)
	}
	add(model.KindPBPGoal, len(e.Goals), func(i int) model.Record { return e.Goals[i] })
	add(model.KindPBPShot, len(e.Shots), func(i int) model.Record { return e.Shots[i] })
	add(model.KindPBPBlockedShot, len(e.BlockedShots), func(i int) model.Record { return e.BlockedShots[i] })
	add(model.KindPBPFaceoff, len(e.Faceoffs), func(i int) model.Record { return e.Faceoffs[i] })
	add(model.KindPBPHit, len(e.Hits), func(i int) model.Record { return e.Hits[i] })
	add(model.KindPBPPenalty, len(e.Penalties), func(i int) model.Record { return e.Penalties[i] })
	add(model.KindPBPGoalieChange, len(e.GoalieChanges), func(i int) model.Record { return e.GoalieChanges[i] })
	add(model.KindPBPShootout, len(e.Shootouts), func(i int) model.Record { return e.Shootouts[i] })
	add(model.KindPBPOther, len(e.Other), func(i int) model.Record { return e.Other[i] })
	return out
}

// NormalizePlayByPlay shapes a game's event stream. Unrecognized event kinds
// land in Other with their raw JSON preserved; events whose period or clock
// cannot be parsed are skipped with a warning.
func NormalizePlayByPlay(payload []byte, gameID, seasonID int, clock Clock) (*Events, []error, error) {
	var root obj
	if err := json.Unmarshal(payload, &root); err != nil {
		return nil, nil, fmt.Errorf("decode play-by-play payload: %w", err)
	}
	raw := root.obj("GC")["Pxpverbose"]
	items, ok := raw.([]any)
	if !ok {
		return nil, nil, fmt.Errorf("play-by-play payload: missing GC.Pxpverbose")
	}

	events := &Events{}
	var warns []error
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		ev := obj(m)
		if err := appendEvent(events, ev, gameID, seasonID, clock); err != nil {
			warns = append(warns, err)
		}
	}

	sortEvents(events)
	return events, warns, nil
}

func appendEvent(events *Events, ev obj, gameID, seasonID int, clock Clock) error {
	eventType := ev.str("event")
	switch eventType {
	case "goal":
		e, err := goalEvent(ev, gameID, seasonID, clock)
		if err != nil {
			return err
		}
		events.Goals = append(events.Goals, e)
	case "shot":
		e, err := shotEvent(ev, gameID, seasonID, clock)
		if err != nil {
			return err
		}
		events.Shots = append(events.Shots, e)
	case "blocked_shot":
		e, err := blockedShotEvent(ev, gameID, seasonID, clock)
		if err != nil {
			return err
		}
		events.BlockedShots = append(events.BlockedShots, e)
	case "faceoff":
		e, err := faceoffEvent(ev, gameID, seasonID, clock)
		if err != nil {
			return err
		}
		events.Faceoffs = append(events.Faceoffs, e)
	case "hit":
		e, err := hitEvent(ev, gameID, seasonID, clock)
		if err != nil {
			return err
		}
		events.Hits = append(events.Hits, e)
	case "penalty":
		e, err := penaltyEvent(ev, gameID, seasonID, clock)
		if err != nil {
			return err
		}
		events.Penalties = append(events.Penalties, e)
	case "goalie_change":
		e, err := goalieChangeEvent(ev, gameID, seasonID, clock)
		if err != nil {
			return err
		}
		events.GoalieChanges = append(events.GoalieChanges, e)
	case "shootout":
		e, err := shootoutEvent(ev, gameID, seasonID)
		if err != nil {
			return err
		}
		events.Shootouts = append(events.Shootouts, e)
	default:
		e, err := otherEvent(ev, gameID, seasonID, clock, eventType)
		if err != nil {
			return err
		}
		events.Other = append(events.Other, e)
	}
	return nil
}

// eventBase extracts the shared fields. periodKeys lists the keys to try,
// since the feed is inconsistent about "period" versus "period_id".
func eventBase(ev obj, entity, id string, gameID, seasonID int, clock Clock, periodKeys ...string) (model.EventBase, error) {
	var rawPeriod string
	period := 0
	for _, key := range periodKeys {
		rawPeriod = ev.str(key)
		if p, ok := parsePeriod(rawPeriod); ok {
			period = p
			break
		}
	}
	if period == 0 {
		return model.EventBase{}, &NormalizationError{Entity: entity, Field: periodKeys[0], Raw: rawPeriod}
	}

	timeStr := ev.str("time")
	if tf := ev.str("time_formatted"); timeStr == "" {
		timeStr = tf
	}
	seconds, err := clock.Elapsed(period, ev.num("s"), timeStr)
	if err != nil {
		return model.EventBase{}, &NormalizationError{Entity: entity, Field: "time", Raw: timeStr}
	}

	return model.EventBase{
		ID:       id,
		GameID:   gameID,
		SeasonID: seasonID,
		Period:   period,
		Time:     timeStr,
		Seconds:  seconds,
		TeamID:   ev.num("team_id"),
		Home:     ev.flag("home"),
	}, nil
}

func goalEvent(ev obj, gameID, seasonID int, clock Clock) (model.GoalEvent, error) {
	id := fmt.Sprintf("%d_goal_%s", gameID, ev.str("id"))
	base, err := eventBase(ev, "pbp_goal", id, gameID, seasonID, clock, "period", "period_id")
	if err != nil {
		return model.GoalEvent{}, err
	}
	scorer := ev.num("goal_player_id")
	if scorer <= 0 {
		return model.GoalEvent{}, &NormalizationError{Entity: "pbp_goal", Field: "goal_player_id", Raw: ev.str("goal_player_id")}
	}
	return model.GoalEvent{
		EventBase:      base,
		ScorerID:       scorer,
		Assist1ID:      ev.numPtr("assist1_player_id"),
		Assist2ID:      ev.numPtr("assist2_player_id"),
		OpponentTeamID: ev.num("opponent_team_id"),
		LocationX:      ev.num("x_location"),
		LocationY:      ev.num("y_location"),
		ScorerGoalNum:  ev.num("scorer_goal_num"),
		GoalType:       ev.str("goal_type"),
		PowerPlay:      ev.flag("power_play"),
		EmptyNet:       ev.flag("empty_net"),
		PenaltyShot:    ev.flag("penalty_shot"),
		ShortHanded:    ev.flag("short_handed"),
		Insurance:      ev.flag("insurance_goal"),
		GameWinning:    ev.flag("game_winning"),
		GameTieing:     ev.flag("game_tieing"),
		Plus:           onIce(ev.list("plus")),
		Minus:          onIce(ev.list("minus")),
	}, nil
}

func onIce(raw []obj) []model.OnIce {
	out := make([]model.OnIce, 0, len(raw))
	for _, p := range raw {
		id := p.num("player_id")
		if id <= 0 {
			continue
		}
		out = append(out, model.OnIce{PlayerID: id, JerseyNumber: p.num("jersey_number")})
	}
	return out
}

func shotEvent(ev obj, gameID, seasonID int, clock Clock) (model.ShotEvent, error) {
	id := fmt.Sprintf("%d_shot_%s", gameID, ev.str("id"))
	base, err := eventBase(ev, "pbp_shot", id, gameID, seasonID, clock, "period_id", "period")
	if err != nil {
		return model.ShotEvent{}, err
	}
	if teamID := ev.num("player_team_id"); teamID > 0 {
		base.TeamID = teamID
	}
	shooter := ev.num("player_id")
	if shooter <= 0 {
		return model.ShotEvent{}, &NormalizationError{Entity: "pbp_shot", Field: "player_id", Raw: ev.str("player_id")}
	}
	return model.ShotEvent{
		EventBase:      base,
		ShooterID:      shooter,
		GoalieID:       ev.numPtr("goalie_id"),
		OpponentTeamID: ev.num("opponent_team_id"),
		LocationX:      ev.num("x_location"),
		LocationY:      ev.num("y_location"),
		ShotType:       ev.str("shot_type_description"),
		Quality:        ev.str("shot_quality_description"),
		IsGoal:         ev.str("game_goal_id") != "",
	}, nil
}

func blockedShotEvent(ev obj, gameID, seasonID int, clock Clock) (model.BlockedShotEvent, error) {
	id := fmt.Sprintf("%d_blocked_%s", gameID, ev.str("id"))
	base, err := eventBase(ev, "pbp_blocked_shot", id, gameID, seasonID, clock, "period", "period_id")
	if err != nil {
		return model.BlockedShotEvent{}, err
	}
	if teamID := ev.num("player_team_id"); teamID > 0 {
		base.TeamID = teamID
	}
	shooter := ev.num("player_id")
	blocker := ev.num("blocker_player_id")
	if shooter <= 0 || blocker <= 0 {
		return model.BlockedShotEvent{}, &NormalizationError{Entity: "pbp_blocked_shot", Field: "player_id", Raw: ev.str("player_id")}
	}
	return model.BlockedShotEvent{
		EventBase:      base,
		ShooterID:      shooter,
		BlockerID:      blocker,
		OpponentTeamID: ev.num("blocker_team_id"),
		LocationX:      ev.num("x_location"),
		LocationY:      ev.num("y_location"),
		ShotType:       ev.str("shot_type_description"),
	}, nil
}

func faceoffEvent(ev obj, gameID, seasonID int, clock Clock) (model.FaceoffEvent, error) {
	id := fmt.Sprintf("%d_faceoff_%s_%s", gameID, ev.str("period"), safeClock(ev.str("time_formatted")))
	base, err := eventBase(ev, "pbp_faceoff", id, gameID, seasonID, clock, "period", "period_id")
	if err != nil {
		return model.FaceoffEvent{}, err
	}
	// The winning team is the event's team.
	if winTeam := ev.num("win_team_id"); winTeam > 0 {
		base.TeamID = winTeam
	}
	return model.FaceoffEvent{
		EventBase:       base,
		HomePlayerID:    ev.num("home_player_id"),
		VisitorPlayerID: ev.num("visitor_player_id"),
		HomeWin:         ev.flag("home_win"),
		LocationX:       ev.num("x_location"),
		LocationY:       ev.num("y_location"),
		LocationID:      ev.num("location_id"),
	}, nil
}

func hitEvent(ev obj, gameID, seasonID int, clock Clock) (model.HitEvent, error) {
	id := fmt.Sprintf("%d_hit_%s", gameID, ev.str("id"))
	base, err := eventBase(ev, "pbp_hit", id, gameID, seasonID, clock, "period", "period_id")
	if err != nil {
		return model.HitEvent{}, err
	}
	player := ev.num("player_id")
	if player <= 0 {
		return model.HitEvent{}, &NormalizationError{Entity: "pbp_hit", Field: "player_id", Raw: ev.str("player_id")}
	}
	return model.HitEvent{
		EventBase: base,
		PlayerID:  player,
		LocationX: ev.num("x_location"),
		LocationY: ev.num("y_location"),
		Plus:      ev.num("hit_type") > 0,
	}, nil
}

func penaltyEvent(ev obj, gameID, seasonID int, clock Clock) (model.PenaltyEvent, error) {
	id := fmt.Sprintf("%d_penalty_%s", gameID, ev.str("id"))
	base, err := eventBase(ev, "pbp_penalty", id, gameID, seasonID, clock, "period", "period_id")
	if err != nil {
		return model.PenaltyEvent{}, err
	}
	return model.PenaltyEvent{
		EventBase:    base,
		PlayerID:     ev.numPtr("player_id"),
		ServedByID:   ev.numPtr("player_served"),
		Minutes:      ev.f64("minutes"),
		Description:  ev.str("lang_penalty_description"),
		PenaltyClass: ev.str("penalty_class"),
		OffenceCode:  ev.str("offence"),
		PowerPlay:    ev.flag("pp"),
		BenchPenalty: ev.flag("bench"),
	}, nil
}

func goalieChangeEvent(ev obj, gameID, seasonID int, clock Clock) (model.GoalieChangeEvent, error) {
	id := fmt.Sprintf("%d_goalie_%s_%s_%s",
		gameID, ev.str("period_id"), safeClock(ev.str("time")), ev.str("team_code"))
	base, err := eventBase(ev, "pbp_goalie_change", id, gameID, seasonID, clock, "period_id", "period")
	if err != nil {
		return model.GoalieChangeEvent{}, err
	}
	return model.GoalieChangeEvent{
		EventBase:   base,
		GoalieInID:  ev.numPtr("goalie_in_id"),
		GoalieOutID: ev.numPtr("goalie_out_id"),
	}, nil
}

func shootoutEvent(ev obj, gameID, seasonID int) (model.ShootoutAttemptEvent, error) {
	shooter := ev.num("player_id")
	if shooter <= 0 {
		return model.ShootoutAttemptEvent{}, &NormalizationError{Entity: "pbp_shootout", Field: "player_id", Raw: ev.str("player_id")}
	}
	// Shootout attempts are ordered by shot order, not by a clock.
	return model.ShootoutAttemptEvent{
		EventBase: model.EventBase{
			ID:       fmt.Sprintf("%d_shootout_%s", gameID, ev.str("id")),
			GameID:   gameID,
			SeasonID: seasonID,
			Period:   periodShootout,
			Seconds:  ev.num("shot_order"),
			TeamID:   ev.num("team_id"),
			Home:     ev.flag("home"),
		},
		ShooterID:   shooter,
		GoalieID:    ev.numPtr("goalie_id"),
		ShotOrder:   ev.num("shot_order"),
		IsGoal:      ev.flag("goal"),
		GameWinning: ev.flag("winning_goal"),
	}, nil
}

func otherEvent(ev obj, gameID, seasonID int, clock Clock, eventType string) (model.OtherEvent, error) {
	raw, err := json.Marshal(map[string]any(ev))
	if err != nil {
		return model.OtherEvent{}, fmt.Errorf("re-encode %s event: %w", eventType, err)
	}
	base := model.EventBase{
		ID:       fmt.Sprintf("%d_%s_%s_%s", gameID, eventType, ev.str("period"), safeClock(ev.str("time"))),
		GameID:   gameID,
		SeasonID: seasonID,
		TeamID:   ev.num("team_id"),
		Home:     ev.flag("home"),
		Time:     ev.str("time"),
	}
	if p, ok := parsePeriod(ev.str("period")); ok {
		base.Period = p
		if secs, err := clock.Elapsed(p, ev.num("s"), ev.str("time")); err == nil {
			base.Seconds = secs
		}
	}
	return model.OtherEvent{EventBase: base, EventType: eventType, Payload: raw}, nil
}

// safeClock makes a clock string usable inside a derived row id.
func safeClock(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			out[i] = '_'
		} else {
			out[i] = s[i]
		}
	}
	return string(out)
}

func sortEvents(e *Events) {
	byClock := func(a, b model.EventBase) bool {
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		return a.Seconds < b.Seconds
	}
	sort.SliceStable(e.Goals, func(i, j int) bool { return byClock(e.Goals[i].EventBase, e.Goals[j].EventBase) })
	sort.SliceStable(e.Shots, func(i, j int) bool { return byClock(e.Shots[i].EventBase, e.Shots[j].EventBase) })
	sort.SliceStable(e.BlockedShots, func(i, j int) bool { return byClock(e.BlockedShots[i].EventBase, e.BlockedShots[j].EventBase) })
	sort.SliceStable(e.Faceoffs, func(i, j int) bool { return byClock(e.Faceoffs[i].EventBase, e.Faceoffs[j].EventBase) })
	sort.SliceStable(e.Hits, func(i, j int) bool { return byClock(e.Hits[i].EventBase, e.Hits[j].EventBase) })
	sort.SliceStable(e.Penalties, func(i, j int) bool { return byClock(e.Penalties[i].EventBase, e.Penalties[j].EventBase) })
	sort.SliceStable(e.GoalieChanges, func(i, j int) bool { return byClock(e.GoalieChanges[i].EventBase, e.GoalieChanges[j].EventBase) })
	sort.SliceStable(e.Shootouts, func(i, j int) bool { return e.Shootouts[i].ShotOrder < e.Shootouts[j].ShotOrder })
	sort.SliceStable(e.Other, func(i, j int) bool { return byClock(e.Other[i].EventBase, e.Other[j].EventBase) })
}
