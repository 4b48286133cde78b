// Package store is the upsert engine and relational mirror. Apply writes one
// entity kind per call inside a single transaction, using ON CONFLICT
// full-replace upserts keyed on each table's natural key, so re-running any
// sync is idempotent.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/coldrink/pwhl-data/internal/db"
	"github.com/coldrink/pwhl-data/internal/model"
)

// ErrDuplicateKey reports two records in one Apply call sharing a natural
// key. The whole call is rejected; the caller's batch is malformed.
var ErrDuplicateKey = errors.New("duplicate natural key in batch")

// UpsertError wraps a failed Apply transaction.
type UpsertError struct {
	Kind model.Kind
	Err  error
}

func (e *UpsertError) Error() string {
	return fmt.Sprintf("upsert %s: %v", e.Kind, e.Err)
}

func (e *UpsertError) Unwrap() error { return e.Err }

// Store persists canonical records and answers the scope lookups the sync
// orchestrator needs.
type Store struct {
	pool   *db.Pool
	logger *slog.Logger
}

// New creates a Store on an existing pool.
func New(pool *db.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{pool: pool, logger: logger}
}

// Ping verifies the mirror is reachable. A failed ping is the one fatal
// condition a sync run aborts on.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.HealthCheck(ctx)
}

// upsertFunc writes one record inside the call's transaction.
type upsertFunc func(ctx context.Context, tx pgx.Tx, rec model.Record) error

// upserts is the closed dispatch table: one upsert target per entity kind.
var upserts = map[model.Kind]upsertFunc{
	model.KindLeague:     upsertLeague,
	model.KindConference: upsertConference,
	model.KindDivision:   upsertDivision,
	model.KindSeason:     upsertSeason,
	model.KindTeam:       upsertTeam,
	model.KindPlayer:     upsertPlayer,
	model.KindGame:       upsertGame,

	model.KindGameStatSkater: upsertGameStatSkater,
	model.KindGameStatGoalie: upsertGameStatGoalie,
	model.KindGameStatTeam:   upsertGameStatTeam,

	model.KindSeasonStatSkater: upsertSeasonStatSkater,
	model.KindSeasonStatGoalie: upsertSeasonStatGoalie,
	model.KindSeasonStatTeam:   upsertSeasonStatTeam,

	model.KindPlayoffRound:  upsertPlayoffRound,
	model.KindPlayoffSeries: upsertPlayoffSeries,
	model.KindPlayoffGame:   upsertPlayoffGame,

	model.KindPBPGoal:         upsertPBPGoal,
	model.KindPBPShot:         upsertPBPShot,
	model.KindPBPBlockedShot:  upsertPBPBlockedShot,
	model.KindPBPFaceoff:      upsertPBPFaceoff,
	model.KindPBPHit:          upsertPBPHit,
	model.KindPBPPenalty:      upsertPBPPenalty,
	model.KindPBPGoalieChange: upsertPBPGoalieChange,
	model.KindPBPShootout:     upsertPBPShootout,
	model.KindPBPOther:        upsertPBPOther,
}

// Apply writes a batch of records of one kind in a single transaction.
// Either every record lands or none do. Records whose Kind disagrees with
// kind, and batches with duplicate natural keys, fail the call before any
// write happens.
func (s *Store) Apply(ctx context.Context, kind model.Kind, records []model.Record) error {
	if len(records) == 0 {
		return nil
	}
	up, ok := upserts[kind]
	if !ok {
		return &UpsertError{Kind: kind, Err: fmt.Errorf("unknown entity kind")}
	}

	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if rec.Kind() != kind {
			return &UpsertError{Kind: kind, Err: fmt.Errorf("record of kind %s in %s batch", rec.Kind(), kind)}
		}
		key := rec.NaturalKey()
		if _, dup := seen[key]; dup {
			return &UpsertError{Kind: kind, Err: fmt.Errorf("%w: %s", ErrDuplicateKey, key)}
		}
		seen[key] = struct{}{}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return &UpsertError{Kind: kind, Err: fmt.Errorf("begin: %w", err)}
	}
	defer tx.Rollback(ctx)

	for _, rec := range records {
		if err := up(ctx, tx, rec); err != nil {
			return &UpsertError{Kind: kind, Err: fmt.Errorf("record %s: %w", rec.NaturalKey(), err)}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return &UpsertError{Kind: kind, Err: fmt.Errorf("commit: %w", err)}
	}

	s.logger.Debug("Applied batch", "kind", kind, "count", len(records))
	return nil
}
