package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"log/slog"

	"starforge-server/internal/shared/errors"
	"starforge-server/internal/universe"

	"github.com/lib/pq"
)

type Repository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewRepository(db *sql.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing snapshot repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Create stores a snapshot. The universe is serialized verbatim into a
// JSONB column so a fetched snapshot replays byte for byte.
func (r *Repository) Create(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Universe)
	if err != nil {
		return errors.WrapInternal("failed to serialize universe", err)
	}

	query := `
		INSERT INTO snapshots (id, name, seed, body_count, group_count, data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err = r.db.QueryRowContext(ctx, query,
		snap.ID,
		snap.Name,
		snap.Seed,
		snap.BodyCount,
		snap.GroupCount,
		data,
	).Scan(&snap.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return errors.Conflictf("snapshot %s already exists", snap.ID)
		}
		r.logger.Error("Failed to create snapshot", "snapshot_id", snap.ID, "error", err)
		return errors.WrapInternal("failed to create snapshot", err)
	}

	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*Snapshot, error) {
	query := `
		SELECT id, name, seed, body_count, group_count, data, created_at
		FROM snapshots
		WHERE id = $1`

	snap := &Snapshot{}
	var data []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&snap.ID,
		&snap.Name,
		&snap.Seed,
		&snap.BodyCount,
		&snap.GroupCount,
		&data,
		&snap.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("snapshot %s not found", id)
		}
		r.logger.Error("Failed to get snapshot", "snapshot_id", id, "error", err)
		return nil, errors.WrapInternal("failed to get snapshot", err)
	}

	snap.Universe = &universe.Universe{}
	if err := json.Unmarshal(data, snap.Universe); err != nil {
		return nil, errors.WrapInternal("failed to deserialize universe", err)
	}

	return snap, nil
}

// List retrieves snapshot metadata, newest first. The stored universes are
// not loaded.
func (r *Repository) List(ctx context.Context) ([]*Snapshot, error) {
	query := `
		SELECT id, name, seed, body_count, group_count, created_at
		FROM snapshots
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list snapshots", "error", err)
		return nil, errors.WrapInternal("failed to list snapshots", err)
	}
	defer rows.Close()

	snapshots := []*Snapshot{}
	for rows.Next() {
		snap := &Snapshot{}
		err := rows.Scan(
			&snap.ID,
			&snap.Name,
			&snap.Seed,
			&snap.BodyCount,
			&snap.GroupCount,
			&snap.CreatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan snapshot", "error", err)
			return nil, errors.WrapInternal("failed to scan snapshot", err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapInternal("failed to iterate snapshots", err)
	}

	return snapshots, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete snapshot", "snapshot_id", id, "error", err)
		return errors.WrapInternal("failed to delete snapshot", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.WrapInternal("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return errors.NotFoundf("snapshot %s not found", id)
	}

	return nil
}
