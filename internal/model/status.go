package model

// GameStatus is the canonical game lifecycle state. Feed payloads carry
// numeric status codes; the normalizer maps them here and rejects unknown
// codes rather than storing raw integers.
type GameStatus string

const (
	StatusScheduled  GameStatus = "scheduled"
	StatusInProgress GameStatus = "in_progress"
	StatusFinal      GameStatus = "final"
	StatusPostponed  GameStatus = "postponed"
	StatusCancelled  GameStatus = "cancelled"
)

// Valid reports whether s is one of the canonical statuses.
func (s GameStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusFinal, StatusPostponed, StatusCancelled:
		return true
	}
	return false
}
