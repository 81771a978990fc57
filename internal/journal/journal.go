// Package journal persists state snapshots, the transition log, and plan
// outcomes in SQLite. It is the externalized retention layer behind the
// in-memory environment's capped history.
package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS state_snapshots (
	snapshot_id  TEXT PRIMARY KEY,
	parent_id    TEXT,
	state_json   TEXT NOT NULL,
	created_at   TEXT NOT NULL,
	FOREIGN KEY (parent_id) REFERENCES state_snapshots(snapshot_id)
);

CREATE TABLE IF NOT EXISTS transition_log (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	snapshot_id  TEXT,
	action_name  TEXT NOT NULL,
	applied_json TEXT NOT NULL,
	created_at   TEXT NOT NULL,
	FOREIGN KEY (snapshot_id) REFERENCES state_snapshots(snapshot_id)
);

CREATE TABLE IF NOT EXISTS plan_outcomes (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	request_hash   TEXT NOT NULL,
	algorithm      TEXT NOT NULL,
	success        INTEGER NOT NULL,
	cost           REAL NOT NULL,
	length         INTEGER NOT NULL,
	nodes_expanded INTEGER NOT NULL,
	planning_ms    REAL NOT NULL,
	reason         TEXT,
	created_at     TEXT NOT NULL
);
`
// #endregion schema

// #region store

// Store manages planning persistence in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages.
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion store

// #region snapshots

// RecordSnapshot persists a state snapshot and returns its generated id.
// parentID may be empty for a root snapshot.
func (s *Store) RecordSnapshot(parentID string, state map[string]any) (string, error) {
	id := uuid.New().String()
	blob, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("marshal state: %w", err)
	}

	var parentPtr any
	if parentID != "" {
		parentPtr = parentID
	}

	_, err = s.db.Exec(
		`INSERT INTO state_snapshots (snapshot_id, parent_id, state_json, created_at)
		 VALUES (?, ?, ?, ?)`,
		id, parentPtr, string(blob), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert snapshot: %w", err)
	}
	return id, nil
}

// GetSnapshot retrieves a stored snapshot by id.
func (s *Store) GetSnapshot(id string) (Snapshot, error) {
	var rec Snapshot
	var parentID sql.NullString
	var blob string
	var createdStr string

	err := s.db.QueryRow(
		`SELECT snapshot_id, parent_id, state_json, created_at
		 FROM state_snapshots WHERE snapshot_id = ?`, id,
	).Scan(&rec.ID, &parentID, &blob, &createdStr)
	if err != nil {
		return Snapshot{}, fmt.Errorf("get snapshot %s: %w", id, err)
	}

	if parentID.Valid {
		rec.ParentID = parentID.String
	}
	if err := json.Unmarshal([]byte(blob), &rec.State); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal state: %w", err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return rec, nil
}

// ListSnapshots returns the most recent snapshots, newest first.
func (s *Store) ListSnapshots(limit int) ([]Snapshot, error) {
	rows, err := s.db.Query(
		`SELECT snapshot_id, parent_id, state_json, created_at
		 FROM state_snapshots ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var records []Snapshot
	for rows.Next() {
		var rec Snapshot
		var parentID sql.NullString
		var blob string
		var createdStr string
		if err := rows.Scan(&rec.ID, &parentID, &blob, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if parentID.Valid {
			rec.ParentID = parentID.String
		}
		if err := json.Unmarshal([]byte(blob), &rec.State); err != nil {
			return nil, fmt.Errorf("unmarshal state: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion snapshots

// #region transitions

// RecordTransition appends a committed transition to the persistent log.
// snapshotID links the entry to the snapshot taken before the merge; it may
// be empty when snapshot recording is disabled.
func (s *Store) RecordTransition(snapshotID, actionName string, applied map[string]any) error {
	blob, err := json.Marshal(applied)
	if err != nil {
		return fmt.Errorf("marshal applied: %w", err)
	}

	var snapPtr any
	if snapshotID != "" {
		snapPtr = snapshotID
	}

	_, err = s.db.Exec(
		`INSERT INTO transition_log (snapshot_id, action_name, applied_json, created_at)
		 VALUES (?, ?, ?, ?)`,
		snapPtr, actionName, string(blob), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log transition: %w", err)
	}
	return nil
}

// #endregion transitions

// #region outcomes

// RecordOutcome persists the result of one planning call.
func (s *Store) RecordOutcome(o Outcome) error {
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO plan_outcomes (request_hash, algorithm, success, cost, length, nodes_expanded, planning_ms, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.RequestHash,
		o.Algorithm,
		boolToInt(o.Success),
		o.Cost,
		o.Length,
		o.NodesExpanded,
		o.PlanningMs,
		nullIfEmpty(o.Reason),
		o.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record outcome: %w", err)
	}
	return nil
}

// ListOutcomes returns the most recent plan outcomes, newest first.
func (s *Store) ListOutcomes(limit int) ([]Outcome, error) {
	rows, err := s.db.Query(
		`SELECT request_hash, algorithm, success, cost, length, nodes_expanded, planning_ms, reason, created_at
		 FROM plan_outcomes ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []Outcome
	for rows.Next() {
		var o Outcome
		var success int
		var reason sql.NullString
		var createdStr string
		if err := rows.Scan(&o.RequestHash, &o.Algorithm, &success, &o.Cost,
			&o.Length, &o.NodesExpanded, &o.PlanningMs, &reason, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		o.Success = success != 0
		if reason.Valid {
			o.Reason = reason.String
		}
		o.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

// #endregion outcomes

// #region helpers

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
