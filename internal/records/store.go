package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"datadeck/internal/config"
	"datadeck/internal/dataset"
	"datadeck/internal/value"
)

// Store manages record persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the record database and applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.StorePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Append inserts a single record and returns its identifier.
func (s *Store) Append(ctx context.Context, rec dataset.Record, batchID string) (int64, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO records (agent_type, output_json, batch_id, created_at) VALUES (?, ?, ?, ?)`,
		rec.AgentType,
		string(dataset.ValueJSON(rec.Output)),
		nullableString(batchID),
		timestamp,
	)
	if err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// ReplaceAll discards the stored dataset and writes the provided one in
// a single transaction.
func (s *Store) ReplaceAll(ctx context.Context, d dataset.Dataset, batchID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	for _, rec := range d.Results {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO records (agent_type, output_json, batch_id, created_at) VALUES (?, ?, ?, ?)`,
			rec.AgentType,
			string(dataset.ValueJSON(rec.Output)),
			nullableString(batchID),
			timestamp,
		); err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

// Entry pairs a record with its storage metadata.
type Entry struct {
	ID        int64
	Record    dataset.Record
	BatchID   string
	CreatedAt time.Time
}

// Load returns the full stored dataset ordered by insertion.
func (s *Store) Load(ctx context.Context) (dataset.Dataset, error) {
	return s.query(ctx, `SELECT agent_type, output_json FROM records ORDER BY id`)
}

// Entries returns stored records with metadata, ordered by insertion.
// An agentType filter narrows the listing when non-empty.
func (s *Store) Entries(ctx context.Context, agentType string) ([]Entry, error) {
	query := `SELECT id, agent_type, output_json, batch_id, created_at FROM records`
	args := []any{}
	if agentType != "" {
		query += ` WHERE agent_type = ?`
		args = append(args, agentType)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry      Entry
			agentType  string
			outputJSON string
			batchID    sql.NullString
			createdRaw string
		)
		if err := rows.Scan(&entry.ID, &agentType, &outputJSON, &batchID, &createdRaw); err != nil {
			return nil, err
		}
		entry.Record = rehydrate(agentType, outputJSON)
		entry.BatchID = batchID.String
		if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
			entry.CreatedAt = created
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ByType returns records for a single agent type ordered by insertion.
func (s *Store) ByType(ctx context.Context, agentType string) (dataset.Dataset, error) {
	return s.query(ctx, `SELECT agent_type, output_json FROM records WHERE agent_type = ? ORDER BY id`, agentType)
}

// Latest returns the most recently inserted record, or nil when the
// store is empty.
func (s *Store) Latest(ctx context.Context) (*dataset.Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT agent_type, output_json FROM records ORDER BY id DESC LIMIT 1`)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest record: %w", err)
	}
	return &rec, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

// Clear removes all records.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records`)
	if err != nil {
		return 0, fmt.Errorf("clear records: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) query(ctx context.Context, query string, args ...any) (dataset.Dataset, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return dataset.Empty(), fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	out := dataset.Empty()
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return dataset.Empty(), err
		}
		out.Results = append(out.Results, rec)
	}
	return out, rows.Err()
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (dataset.Record, error) {
	var (
		agentType  string
		outputJSON string
	)
	if err := scanner.Scan(&agentType, &outputJSON); err != nil {
		return dataset.Record{}, err
	}

	return rehydrate(agentType, outputJSON), nil
}

func rehydrate(agentType, outputJSON string) dataset.Record {
	output, err := dataset.ParseValue([]byte(outputJSON))
	if err != nil {
		// Tolerate rows written by older tooling; keep the raw text.
		output = value.String(outputJSON)
	}
	return dataset.Record{AgentType: agentType, Output: output}
}

func nullableString(v string) any {
	if v == "" {
		return nil
	}
	return v
}
