package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/lib/pq"

	domain "github.com/bryanwahyu/cyberlens-console/internal/domain/cases"
)

const snapshotKey = "console-session"

type StateRepository struct{ db *sql.DB }

func NewStateRepository(db *sql.DB) *StateRepository { return &StateRepository{db: db} }

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		return nil, err
	}
	return db, nil
}

// Save upsert snapshot di bawah key tunggal
func (r *StateRepository) Save(ctx context.Context, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO console_state (state_key, snapshot, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (state_key) DO UPDATE SET
 snapshot = EXCLUDED.snapshot,
 updated_at = NOW();`
	_, err = r.db.ExecContext(ctx, q, snapshotKey, data)
	return err
}

func (r *StateRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	const q = `SELECT snapshot FROM console_state WHERE state_key=$1 LIMIT 1;`
	var data []byte
	if err := r.db.QueryRowContext(ctx, q, snapshotKey).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
