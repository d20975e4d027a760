package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	domain "github.com/bryanwahyu/cyberlens-console/internal/domain/cases"
)

// snapshotKey satu baris per console; seluruh snapshot masuk satu kolom
// JSON, mengikuti layout "satu key durable" dari state browser.
const snapshotKey = "console-session"

type StateRepository struct {
	db *sql.DB
}

func NewStateRepository(db *sql.DB) *StateRepository {
	return &StateRepository{db: db}
}

// Save upsert snapshot di bawah key tunggal
func (r *StateRepository) Save(ctx context.Context, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO console_state (state_key, snapshot, updated_at)
VALUES (?, ?, NOW())
ON DUPLICATE KEY UPDATE snapshot=VALUES(snapshot), updated_at=NOW();
`
	_, err = r.db.ExecContext(ctx, q, snapshotKey, data)
	return err
}

func (r *StateRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	const q = `SELECT snapshot FROM console_state WHERE state_key=? LIMIT 1;`
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
