// Package snapshot persists the ledger state so a restart can
// reconstruct the marketplace. Durability is optional and advisory: the
// ledger never depends on it for correctness.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/lmjin/marketplace-dapp/internal/ledger"
)

// ErrNoSnapshot means no snapshot has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

// PostgresStore saves ledger snapshots as jsonb rows, newest last.
type PostgresStore struct{ db *sql.DB }

// NewPostgresStore creates a snapshot store and its table if missing.
func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS ledger_snapshots (
			id         BIGSERIAL PRIMARY KEY,
			state      JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

// Save appends the snapshot and prunes older rows.
func (s *PostgresStore) Save(ctx context.Context, snap ledger.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO ledger_snapshots (state) VALUES ($1)`, payload); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM ledger_snapshots
		WHERE id < (SELECT MAX(id) FROM ledger_snapshots)`); err != nil {
		return err
	}
	return tx.Commit()
}

// Load returns the most recent snapshot.
func (s *PostgresStore) Load(ctx context.Context) (ledger.Snapshot, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT state FROM ledger_snapshots ORDER BY id DESC LIMIT 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return ledger.Snapshot{}, err
	}
	var snap ledger.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return ledger.Snapshot{}, err
	}
	return snap, nil
}
