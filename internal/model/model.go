// Package model defines the canonical records mirrored from the HockeyTech
// feed. These structs are the contract between the normalizer and the upsert
// engine: normalizers produce them, the store persists them. Field sets track
// the relational schema, not the raw feed shapes.
package model

import "strconv"

// League is the top-level competition (the PWHL itself in practice, but the
// bootstrap payload can describe more than one).
type League struct {
	ID        int
	Name      string
	ShortName string
	Code      string
	LogoURL   string
}

func (League) Kind() Kind { return KindLeague }
func (l League) NaturalKey() string { return strconv.Itoa(l.ID) }

// Conference groups divisions inside a league.
type Conference struct {
	ID       int
	LeagueID int
	Name     string
}

func (Conference) Kind() Kind { return KindConference }
func (c Conference) NaturalKey() string { return strconv.Itoa(c.ID) }

// Division groups teams inside a conference.
type Division struct {
	ID           int
	LeagueID     int
	ConferenceID *int
	Name         string
}

func (Division) Kind() Kind { return KindDivision }
func (d Division) NaturalKey() string { return strconv.Itoa(d.ID) }

// Season is one competition window. Career seasons aggregate across years;
// playoff seasons cover postseason play. At most one season is current at a
// time, which the upsert engine enforces transactionally.
type Season struct {
	ID        int
	Name      string
	Career    bool
	Playoff   bool
	Current   bool
	StartDate string // YYYY-MM-DD, empty when the feed omits it
	EndDate   string
}

func (Season) Kind() Kind { return KindSeason }
func (s Season) NaturalKey() string { return strconv.Itoa(s.ID) }

// Team is a franchise.
type Team struct {
	ID         int
	DivisionID *int
	Name       string
	Nickname   string
	Code       string
	City       string
	LogoURL    string
}

func (Team) Kind() Kind { return KindTeam }
func (t Team) NaturalKey() string { return strconv.Itoa(t.ID) }

// Player is a person who has appeared on a roster. LatestTeamID is the most
// recently observed roster assignment and may be nil for historical players.
type Player struct {
	ID           int
	FirstName    string
	LastName     string
	JerseyNumber int
	Active       bool
	Rookie       bool
	PositionID   int
	Position     string
	Height       string
	Weight       int
	Birthdate    string
	Shoots       string
	Catches      string
	ImageURL     string
	BirthTown    string
	BirthProv    string
	BirthCountry string
	Nationality  string
	DraftType    string
	LatestTeamID *int
}

func (Player) Kind() Kind { return KindPlayer }
func (p Player) NaturalKey() string { return strconv.Itoa(p.ID) }

// Game is one scheduled or played game.
type Game struct {
	ID            int
	SeasonID      int
	GameNumber    int
	Date          string // YYYY-MM-DD
	HomeTeamID    int
	VisitorTeamID int
	HomeGoals     int
	VisitorGoals  int
	Periods       int
	Overtime      bool
	Shootout      bool
	Status        GameStatus
	VenueName     string
	VenueLocation string
	Attendance    int
}

func (Game) Kind() Kind { return KindGame }
func (g Game) NaturalKey() string { return strconv.Itoa(g.ID) }

// GameStatSkater is one skater's line for one game.
type GameStatSkater struct {
	GameID          int
	PlayerID        int
	TeamID          int
	SeasonID        int
	JerseyNumber    int
	Position        string
	Goals           int
	Assists         int
	Points          int
	PlusMinus       int
	PenaltyMinutes  int
	Shots           int
	ShotsOn         int
	ShotsBlocked    int
	FaceoffWins     int
	FaceoffAttempts int
	Hits            int
	PowerPlayGoals  int
	ShorthandGoals  int
	GameWinningGoal bool
}

func (GameStatSkater) Kind() Kind { return KindGameStatSkater }
func (s GameStatSkater) NaturalKey() string {
	return strconv.Itoa(s.GameID) + "/" + strconv.Itoa(s.PlayerID)
}

// GameStatGoalie is one goalie's line for one game.
type GameStatGoalie struct {
	GameID         int
	PlayerID       int
	TeamID         int
	SeasonID       int
	JerseyNumber   int
	SecondsPlayed  int
	ShotsAgainst   int
	GoalsAgainst   int
	Saves          int
	Goals          int
	Assists        int
	PenaltyMinutes int
	Started        bool
}

func (GameStatGoalie) Kind() Kind { return KindGameStatGoalie }
func (g GameStatGoalie) NaturalKey() string {
	return strconv.Itoa(g.GameID) + "/" + strconv.Itoa(g.PlayerID)
}

// GameStatTeam is one team's aggregate line for one game.
type GameStatTeam struct {
	GameID         int
	TeamID         int
	SeasonID       int
	Goals          int
	ShotsOnGoal    int
	PowerPlayTotal int
	PowerPlayGoals int
	FaceoffWins    int
	Hits           int
}

func (GameStatTeam) Kind() Kind { return KindGameStatTeam }
func (t GameStatTeam) NaturalKey() string {
	return strconv.Itoa(t.GameID) + "/" + strconv.Itoa(t.TeamID)
}

// SeasonStatSkater is one skater's season totals. Refreshes replace the row
// wholesale; nothing is ever summed locally.
type SeasonStatSkater struct {
	SeasonID         int
	PlayerID         int
	TeamID           int
	GamesPlayed      int
	Goals            int
	Assists          int
	Points           int
	PointsPerGame    float64
	PlusMinus        int
	PenaltyMinutes   int
	PowerPlayGoals   int
	PowerPlayAssists int
	ShorthandGoals   int
	Shots            int
	ShootingPct      float64
	FaceoffWins      int
	FaceoffAttempts  int
	FaceoffPct       float64
	ShootoutGoals    int
	ShootoutAttempts int
}

func (SeasonStatSkater) Kind() Kind { return KindSeasonStatSkater }
func (s SeasonStatSkater) NaturalKey() string {
	return strconv.Itoa(s.SeasonID) + "/" + strconv.Itoa(s.PlayerID)
}

// SeasonStatGoalie is one goalie's season totals.
type SeasonStatGoalie struct {
	SeasonID        int
	PlayerID        int
	TeamID          int
	GamesPlayed     int
	SecondsPlayed   int
	Saves           int
	ShotsAgainst    int
	SavePct         float64
	GoalsAgainst    int
	GoalsAgainstAvg float64
	Shutouts        int
	Wins            int
	Losses          int
	OTLosses        int
	ShootoutWins    int
	ShootoutLosses  int
	PenaltyMinutes  int
	Assists         int
	Points          int
}

func (SeasonStatGoalie) Kind() Kind { return KindSeasonStatGoalie }
func (g SeasonStatGoalie) NaturalKey() string {
	return strconv.Itoa(g.SeasonID) + "/" + strconv.Itoa(g.PlayerID)
}

// SeasonStatTeam is one team's standings line for a season.
type SeasonStatTeam struct {
	SeasonID          int
	TeamID            int
	DivisionID        *int
	GamesPlayed       int
	Wins              int
	Losses            int
	OTLosses          int
	ShootoutWins      int
	ShootoutLosses    int
	RegulationWins    int
	Points            int
	WinPct            float64
	GoalsFor          int
	GoalsAgainst      int
	PowerPlayGoals    int
	PowerPlayPct      float64
	PenaltyKillPct    float64
	PenaltyMinutes    int
	ShorthandGoalsFor int
}

func (SeasonStatTeam) Kind() Kind { return KindSeasonStatTeam }
func (t SeasonStatTeam) NaturalKey() string {
	return strconv.Itoa(t.SeasonID) + "/" + strconv.Itoa(t.TeamID)
}

// PlayoffRound is one round of a season's bracket. Round numbers strictly
// increase toward the final. The ID is derived from the natural key
// (season, round) so refreshes land on the same row.
type PlayoffRound struct {
	ID       string // "{season_id}_{round}"
	SeasonID int
	Round    int
	Name     string
	TypeName string
}

func (PlayoffRound) Kind() Kind { return KindPlayoffRound }
func (r PlayoffRound) NaturalKey() string { return r.ID }

// PlayoffSeries is one series within a round.
type PlayoffSeries struct {
	ID           string // "{round_id}_{letter}"
	RoundID      string
	SeasonID     int
	Letter       string
	Team1ID      *int
	Team2ID      *int
	Team1Wins    int
	Team2Wins    int
	WinnerTeamID *int
	FeederSeries string // e.g. "A,B" for a series fed by earlier winners
}

func (PlayoffSeries) Kind() Kind { return KindPlayoffSeries }
func (s PlayoffSeries) NaturalKey() string { return s.ID }

// PlayoffGame ties a scheduled game to its series slot.
type PlayoffGame struct {
	ID       string // "{series_id}_{game_id}"
	SeriesID string
	SeasonID int
	GameID   int
	Number   int
}

func (PlayoffGame) Kind() Kind { return KindPlayoffGame }
func (g PlayoffGame) NaturalKey() string { return g.ID }
