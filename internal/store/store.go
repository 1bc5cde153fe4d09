// Package store handles SQLite persistence of counts-only summaries and the
// audit trail. Nothing here may hold student-authored text.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/accesstwin/accesstwin/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout sorts lexically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for snapshots and audit events.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY,
			run_id TEXT NOT NULL,
			profile_id INTEGER NOT NULL,
			recorded_at TEXT NOT NULL,
			udl_pct INTEGER NOT NULL,
			pour_pct INTEGER NOT NULL,
			active_supports INTEGER NOT NULL,
			summary_json TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS snapshot_categories (
			snapshot_id INTEGER NOT NULL,
			category TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (snapshot_id, category)
		);`,
		`CREATE TABLE IF NOT EXISTS audit_events (
			id INTEGER PRIMARY KEY,
			run_id TEXT NOT NULL,
			profile_id INTEGER NOT NULL,
			action TEXT NOT NULL,
			detail TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_profile ON snapshots(profile_id, recorded_at);`,
		`CREATE INDEX IF NOT EXISTS idx_audit_events_profile ON audit_events(profile_id, recorded_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSnapshot stores a summary and its per-category counts.
func (s *Store) InsertSnapshot(ctx context.Context, snap model.Snapshot) (id int64, err error) {
	summaryJSON, err := json.Marshal(snap.Summary)
	if err != nil {
		return 0, fmt.Errorf("failed to encode summary: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (run_id, profile_id, recorded_at, udl_pct, pour_pct, active_supports, summary_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snap.RunID,
		snap.ProfileID,
		snap.RecordedAt.UTC().Format(timeLayout),
		snap.Summary.UDLCoveragePct,
		snap.Summary.POURCoveragePct,
		snap.Summary.ActiveSupports,
		string(summaryJSON),
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(snap.Summary.CategoryCounts) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO snapshot_categories (snapshot_id, category, count) VALUES (?, ?, ?)`)
		if perr != nil {
			err = perr
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for category, count := range snap.Summary.CategoryCounts {
			if _, err = stmt.ExecContext(ctx, id, string(category), count); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListSnapshots returns a profile's snapshots, oldest first. last > 0 keeps
// only the most recent ones.
func (s *Store) ListSnapshots(ctx context.Context, profileID int64, last int) ([]model.Snapshot, error) {
	query := `SELECT id, run_id, profile_id, recorded_at, summary_json FROM (
		SELECT * FROM snapshots
		WHERE profile_id = ?
		ORDER BY recorded_at DESC, id DESC
		%s
	) ORDER BY recorded_at ASC, id ASC`
	args := []any{profileID}
	limit := ""
	if last > 0 {
		limit = "LIMIT ?"
		args = append(args, last)
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(query, limit), args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var snapshots []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		var recordedAt, summaryJSON string
		if err := rows.Scan(&snap.ID, &snap.RunID, &snap.ProfileID, &recordedAt, &summaryJSON); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, recordedAt)
		if err != nil {
			return nil, err
		}
		snap.RecordedAt = parsed
		if err := json.Unmarshal([]byte(summaryJSON), &snap.Summary); err != nil {
			return nil, fmt.Errorf("snapshot %d: %w", snap.ID, err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

// CategoryTotals sums category counts over a profile's most recent window
// snapshots.
func (s *Store) CategoryTotals(ctx context.Context, profileID int64, window int) (map[model.SupportCategory]int, error) {
	if window <= 0 {
		return map[model.SupportCategory]int{}, nil
	}
	query := `WITH recent AS (
		SELECT id FROM snapshots
		WHERE profile_id = ?
		ORDER BY recorded_at DESC, id DESC
		LIMIT ?
	)
	SELECT sc.category, SUM(sc.count)
	FROM snapshot_categories sc
	JOIN recent r ON r.id = sc.snapshot_id
	GROUP BY sc.category`

	rows, err := s.db.QueryContext(ctx, query, profileID, window)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	result := map[model.SupportCategory]int{}
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		result[model.SupportCategory(category)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// InsertAuditEvent records an action. Detail must be a fixed-vocabulary
// description such as "kind=coach".
func (s *Store) InsertAuditEvent(ctx context.Context, ev model.AuditEvent) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_events (run_id, profile_id, action, detail, recorded_at) VALUES (?, ?, ?, ?, ?)`,
		ev.RunID,
		ev.ProfileID,
		ev.Action,
		ev.Detail,
		ev.RecordedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListAuditEvents returns a profile's audit events, newest first, optionally
// filtered by action.
func (s *Store) ListAuditEvents(ctx context.Context, profileID int64, actions []string, limit int) ([]model.AuditEvent, error) {
	clauses := []string{"profile_id = ?"}
	args := []any{profileID}
	if len(actions) > 0 {
		placeholders := make([]string, len(actions))
		for i, a := range actions {
			placeholders[i] = "?"
			args = append(args, a)
		}
		clauses = append(clauses, fmt.Sprintf("action IN (%s)", strings.Join(placeholders, ",")))
	}
	query := fmt.Sprintf(`SELECT id, run_id, profile_id, action, detail, recorded_at
		FROM audit_events
		WHERE %s
		ORDER BY recorded_at DESC, id DESC`, strings.Join(clauses, " AND "))
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var events []model.AuditEvent
	for rows.Next() {
		var ev model.AuditEvent
		var recordedAt string
		if err := rows.Scan(&ev.ID, &ev.RunID, &ev.ProfileID, &ev.Action, &ev.Detail, &recordedAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, recordedAt)
		if err != nil {
			return nil, err
		}
		ev.RecordedAt = parsed
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
