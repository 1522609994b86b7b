// Package journal stores the field changes made while saving so that they
// can be reviewed or undone later.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "github.com/lib/pq"              // registers "postgres"
	_ "github.com/mattn/go-sqlite3"    // registers "sqlite3"

	"github.com/conduit-lang/bibkit/internal/model"
)

// Record is one stored field change.
type Record struct {
	SaveID     string
	Seq        int
	Key        string
	Field      string
	OldValue   string
	NewValue   string
	RecordedAt time.Time
}

// Save summarizes one recorded save.
type Save struct {
	ID         string
	Changes    int
	RecordedAt time.Time
}

// DriverFor picks the database/sql driver for a DSN. PostgreSQL URLs use
// pgx; anything else is a sqlite3 file name.
func DriverFor(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "pgx"
	}
	return "sqlite3"
}

// Open opens the journal database. An empty driver is derived from dsn.
func Open(driver, dsn string) (*sql.DB, error) {
	if driver == "" {
		driver = DriverFor(dsn)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// Tracker manages the change journal table.
type Tracker struct {
	db  *sql.DB
	now func() time.Time
}

// NewTracker creates a tracker on db.
func NewTracker(db *sql.DB) *Tracker {
	return &Tracker{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Initialize ensures the field_changes table exists.
func (t *Tracker) Initialize(ctx context.Context) error {
	query := `
CREATE TABLE IF NOT EXISTS field_changes (
	save_id VARCHAR(36) NOT NULL,
	seq INTEGER NOT NULL,
	entry_key TEXT NOT NULL,
	field VARCHAR(255) NOT NULL,
	old_value TEXT NOT NULL,
	new_value TEXT NOT NULL,
	recorded_at TIMESTAMP NOT NULL,
	PRIMARY KEY (save_id, seq)
)`
	if _, err := t.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to initialize journal table: %w", err)
	}
	return nil
}

// Record stores changes under a new save id in one transaction. Nothing is
// stored for an empty change list and the returned id is empty.
func (t *Tracker) Record(ctx context.Context, changes []model.FieldChange) (string, error) {
	if len(changes) == 0 {
		return "", nil
	}
	saveID := uuid.NewString()
	at := t.now()

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin journal transaction: %w", err)
	}
	query := `
INSERT INTO field_changes (save_id, seq, entry_key, field, old_value, new_value, recorded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i, c := range changes {
		key := ""
		if c.Entry != nil {
			key = c.Entry.Key()
		}
		if _, err := tx.ExecContext(ctx, query, saveID, i+1, key, c.Field, c.OldValue, c.NewValue, at); err != nil {
			_ = tx.Rollback()
			return "", fmt.Errorf("failed to record change %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit journal: %w", err)
	}
	return saveID, nil
}

// List returns the changes of one save, or of every save when saveID is
// empty, oldest first.
func (t *Tracker) List(ctx context.Context, saveID string) ([]Record, error) {
	query := `
SELECT save_id, seq, entry_key, field, old_value, new_value, recorded_at
FROM field_changes`
	var args []any
	if saveID != "" {
		query += "\nWHERE save_id = $1"
		args = append(args, saveID)
	}
	query += "\nORDER BY recorded_at ASC, save_id ASC, seq ASC"

	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.SaveID, &r.Seq, &r.Key, &r.Field, &r.OldValue, &r.NewValue, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan change: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal: %w", err)
	}
	return records, nil
}

// Saves returns one summary per recorded save, oldest first.
func (t *Tracker) Saves(ctx context.Context) ([]Save, error) {
	query := `
SELECT save_id, COUNT(*), MIN(recorded_at)
FROM field_changes
GROUP BY save_id
ORDER BY MIN(recorded_at) ASC, save_id ASC`
	rows, err := t.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query saves: %w", err)
	}
	defer rows.Close()

	var saves []Save
	for rows.Next() {
		var s Save
		var at any
		if err := rows.Scan(&s.ID, &s.Changes, &at); err != nil {
			return nil, fmt.Errorf("failed to scan save: %w", err)
		}
		s.RecordedAt = asTime(at)
		saves = append(saves, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating saves: %w", err)
	}
	return saves, nil
}

// asTime converts aggregated timestamps, which sqlite3 returns as text.
func asTime(v any) time.Time {
	switch at := v.(type) {
	case time.Time:
		return at
	case string:
		return parseTime(at)
	case []byte:
		return parseTime(string(at))
	}
	return time.Time{}
}

func parseTime(s string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02T15:04:05.999999999-07:00",
		"2006-01-02 15:04:05.999999999",
		time.RFC3339Nano,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
