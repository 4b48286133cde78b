package model

// Kind identifies one entity kind mirrored from the feed. The set is closed:
// every kind maps to exactly one table and one upsert routine.
type Kind string

const (
	KindLeague     Kind = "league"
	KindConference Kind = "conference"
	KindDivision   Kind = "division"
	KindSeason     Kind = "season"
	KindTeam       Kind = "team"
	KindPlayer     Kind = "player"
	KindGame       Kind = "game"

	KindGameStatSkater Kind = "game_stat_skater"
	KindGameStatGoalie Kind = "game_stat_goalie"
	KindGameStatTeam   Kind = "game_stat_team"

	KindSeasonStatSkater Kind = "season_stat_skater"
	KindSeasonStatGoalie Kind = "season_stat_goalie"
	KindSeasonStatTeam   Kind = "season_stat_team"

	KindPlayoffRound  Kind = "playoff_round"
	KindPlayoffSeries Kind = "playoff_series"
	KindPlayoffGame   Kind = "playoff_game"

	KindPBPGoal         Kind = "pbp_goal"
	KindPBPShot         Kind = "pbp_shot"
	KindPBPBlockedShot  Kind = "pbp_blocked_shot"
	KindPBPFaceoff      Kind = "pbp_faceoff"
	KindPBPHit          Kind = "pbp_hit"
	KindPBPPenalty      Kind = "pbp_penalty"
	KindPBPGoalieChange Kind = "pbp_goalie_change"
	KindPBPShootout     Kind = "pbp_shootout"
	KindPBPOther        Kind = "pbp_other"
)

// Kinds lists every entity kind in no particular order. Ordering for
// persistence purposes lives in the sync package's dependency table.
var Kinds = []Kind{
	KindLeague, KindConference, KindDivision, KindSeason, KindTeam,
	KindPlayer, KindGame,
	KindGameStatSkater, KindGameStatGoalie, KindGameStatTeam,
	KindSeasonStatSkater, KindSeasonStatGoalie, KindSeasonStatTeam,
	KindPlayoffRound, KindPlayoffSeries, KindPlayoffGame,
	KindPBPGoal, KindPBPShot, KindPBPBlockedShot, KindPBPFaceoff,
	KindPBPHit, KindPBPPenalty, KindPBPGoalieChange, KindPBPShootout,
	KindPBPOther,
}

// Record is the contract between the normalizer and the upsert engine.
// NaturalKey renders the record's natural key as a comparable string so the
// engine can reject duplicates within a single batch.
type Record interface {
	Kind() Kind
	NaturalKey() string
}
