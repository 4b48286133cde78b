// Package sync orchestrates mirror refreshes: it decides what to fetch,
// runs fetch/normalize/apply units in foreign-key dependency order, and
// tallies the outcome into a Report.
package sync

// Category is one schedulable slice of the mirror. Categories are coarser
// than entity kinds: "basic" covers leagues through teams, which always
// refresh together.
type Category string

const (
	CategoryBasic       Category = "basic"
	CategoryPlayers     Category = "players"
	CategoryGames       Category = "games"
	CategoryGameStats   Category = "game_stats"
	CategorySeasonStats Category = "season_stats"
	CategoryPlayoffs    Category = "playoffs"
	CategoryPlayByPlay  Category = "play_by_play"
)

// Stages is the commit order. Running categories in this order guarantees
// every foreign key target exists before its dependents are written.
var Stages = []Category{
	CategoryBasic,
	CategoryPlayers,
	CategoryGames,
	CategoryGameStats,
	CategorySeasonStats,
	CategoryPlayoffs,
	CategoryPlayByPlay,
}

// Prereqs maps each category to the categories that must be mirrored before
// it can resolve its foreign keys. The table is static and exported so its
// shape can be asserted against Stages.
var Prereqs = map[Category][]Category{
	CategoryBasic:       nil,
	CategoryPlayers:     {CategoryBasic},
	CategoryGames:       {CategoryBasic},
	CategoryGameStats:   {CategoryBasic, CategoryPlayers, CategoryGames},
	CategorySeasonStats: {CategoryBasic, CategoryPlayers},
	CategoryPlayoffs:    {CategoryBasic, CategoryGames},
	CategoryPlayByPlay:  {CategoryBasic, CategoryGames},
}

// Required expands a requested category set with every transitive
// prerequisite. Prerequisite categories are processed only far enough to
// resolve ids; they are not re-fetched when the mirror already has them.
func Required(requested map[Category]bool) map[Category]bool {
	out := make(map[Category]bool, len(requested))
	var visit func(Category)
	visit = func(c Category) {
		if out[c] {
			return
		}
		out[c] = true
		for _, pre := range Prereqs[c] {
			visit(pre)
		}
	}
	for c, on := range requested {
		if on {
			visit(c)
		}
	}
	return out
}
