package model

// EventBase carries the fields shared by every play-by-play variant. ID is
// derived deterministically from the event's natural key (game plus the
// upstream event id when present, otherwise period/time discriminators) so
// that re-syncing a game lands on the same rows.
//
// Period is canonical: overtime periods are 4..6 and shootouts are 7
// regardless of how the feed labels them. Seconds is the elapsed-seconds
// ordering value produced by the configured clock mode; events within a game
// sort by (Period, Seconds).
type EventBase struct {
	ID       string
	GameID   int
	SeasonID int
	Period   int
	Time     string // MM:SS as reported
	Seconds  int
	TeamID   int
	Home     bool
}

// OnIce identifies one skater on the ice for a goal, for the plus/minus
// child rows.
type OnIce struct {
	PlayerID     int
	JerseyNumber int
}

// GoalEvent is a scored goal, including the on-ice plus/minus sets. The
// plus/minus rows have no stable upstream identity, so the upsert replaces
// them as a set whenever the goal row is written.
type GoalEvent struct {
	EventBase
	ScorerID       int
	Assist1ID      *int
	Assist2ID      *int
	OpponentTeamID int
	LocationX      int
	LocationY      int
	ScorerGoalNum  int
	GoalType       string
	PowerPlay      bool
	EmptyNet       bool
	PenaltyShot    bool
	ShortHanded    bool
	Insurance      bool
	GameWinning    bool
	GameTieing     bool
	Plus           []OnIce
	Minus          []OnIce
}

func (GoalEvent) Kind() Kind { return KindPBPGoal }
func (e GoalEvent) NaturalKey() string { return e.ID }

// ShotEvent is a shot on goal.
type ShotEvent struct {
	EventBase
	ShooterID      int
	GoalieID       *int
	OpponentTeamID int
	LocationX      int
	LocationY      int
	ShotType       string
	Quality        string
	IsGoal         bool
}

func (ShotEvent) Kind() Kind { return KindPBPShot }
func (e ShotEvent) NaturalKey() string { return e.ID }

// BlockedShotEvent is a shot blocked by a skater.
type BlockedShotEvent struct {
	EventBase
	ShooterID      int
	BlockerID      int
	OpponentTeamID int
	LocationX      int
	LocationY      int
	ShotType       string
}

func (BlockedShotEvent) Kind() Kind { return KindPBPBlockedShot }
func (e BlockedShotEvent) NaturalKey() string { return e.ID }

// FaceoffEvent is one faceoff. TeamID on the base is the winning team.
type FaceoffEvent struct {
	EventBase
	HomePlayerID    int
	VisitorPlayerID int
	HomeWin         bool
	LocationX       int
	LocationY       int
	LocationID      int
}

func (FaceoffEvent) Kind() Kind { return KindPBPFaceoff }
func (e FaceoffEvent) NaturalKey() string { return e.ID }

// HitEvent is a recorded body check. TeamID on the base is the hitter's team.
type HitEvent struct {
	EventBase
	PlayerID  int
	LocationX int
	LocationY int
	Plus      bool // credited as a positive hit in the feed
}

func (HitEvent) Kind() Kind { return KindPBPHit }
func (e HitEvent) NaturalKey() string { return e.ID }

// PenaltyEvent is an assessed penalty.
type PenaltyEvent struct {
	EventBase
	PlayerID     *int // nil for bench penalties
	ServedByID   *int
	Minutes      float64
	Description  string
	PenaltyClass string
	OffenceCode  string
	PowerPlay    bool
	BenchPenalty bool
}

func (PenaltyEvent) Kind() Kind { return KindPBPPenalty }
func (e PenaltyEvent) NaturalKey() string { return e.ID }

// GoalieChangeEvent records a goalie entering or leaving the net. Either
// pointer may be nil (empty net in, or net vacated).
type GoalieChangeEvent struct {
	EventBase
	GoalieInID  *int
	GoalieOutID *int
}

func (GoalieChangeEvent) Kind() Kind { return KindPBPGoalieChange }
func (e GoalieChangeEvent) NaturalKey() string { return e.ID }

// ShootoutAttemptEvent is one attempt in a shootout.
type ShootoutAttemptEvent struct {
	EventBase
	ShooterID   int
	GoalieID    *int
	ShotOrder   int
	IsGoal      bool
	GameWinning bool
}

func (ShootoutAttemptEvent) Kind() Kind { return KindPBPShootout }
func (e ShootoutAttemptEvent) NaturalKey() string { return e.ID }

// OtherEvent preserves event kinds the normalizer does not recognize so a
// feed addition never silently drops data.
type OtherEvent struct {
	EventBase
	EventType string
	Payload   []byte // raw JSON of the event object
}

func (OtherEvent) Kind() Kind { return KindPBPOther }
func (e OtherEvent) NaturalKey() string { return e.ID }
