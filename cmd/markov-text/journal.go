package main

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const journalSchema = `
CREATE TABLE IF NOT EXISTS generation_runs (
    run_id            TEXT PRIMARY KEY,
    started_at        INTEGER NOT NULL,
    input_path        TEXT NOT NULL,
    output_path       TEXT NOT NULL,
    size              INTEGER NOT NULL,
    seed              TEXT NOT NULL,
    weighting         TEXT NOT NULL,
    input_tokens      INTEGER NOT NULL,
    states            INTEGER NOT NULL,
    total_transitions INTEGER NOT NULL,
    generated         INTEGER NOT NULL,
    restarts          INTEGER NOT NULL,
    duration_ms       INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_generation_runs_started_at ON generation_runs (started_at);
`

const runColumns = `run_id, started_at, input_path, output_path, size, seed, weighting,
	input_tokens, states, total_transitions, generated, restarts, duration_ms`

// RunRecord describes one generate run. The seed is kept so a run can be
// reproduced from the same input.
type RunRecord struct {
	ID               string
	StartedAt        time.Time
	InputPath        string
	OutputPath       string
	Size             int
	Seed             uint64
	Weighting        string
	InputTokens      int
	States           int
	TotalTransitions int
	Generated        int
	Restarts         int
	Duration         time.Duration
}

// Journal is an append-only SQLite log of generate runs.
type Journal struct {
	db         *sql.DB
	stmtInsert *sql.Stmt
	stmtList   *sql.Stmt
	stmtGet    *sql.Stmt
}

func setupJournalSchema(db *sql.DB) error {
	_, err := db.Exec(journalSchema)
	return err
}

// OpenJournal opens (creating if needed) the journal database at path.
func OpenJournal(path string) (*Journal, error) {
	db, err := initDB(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %s: %w", path, err)
	}
	if err = setupJournalSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set up journal schema: %w", err)
	}
	j, err := NewJournal(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

// NewJournal prepares the journal statements on an initialized database.
// The Journal takes ownership of db.
func NewJournal(db *sql.DB) (*Journal, error) {
	stmtInsert, err := db.Prepare(`INSERT INTO generation_runs (` + runColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare journal insert: %w", err)
	}

	stmtList, err := db.Prepare(`SELECT ` + runColumns + ` FROM generation_runs ORDER BY started_at DESC, run_id LIMIT ?;`)
	if err != nil {
		_ = stmtInsert.Close()
		return nil, fmt.Errorf("failed to prepare journal list: %w", err)
	}

	stmtGet, err := db.Prepare(`SELECT ` + runColumns + ` FROM generation_runs WHERE run_id = ?;`)
	if err != nil {
		_ = stmtInsert.Close()
		_ = stmtList.Close()
		return nil, fmt.Errorf("failed to prepare journal lookup: %w", err)
	}

	return &Journal{
		db:         db,
		stmtInsert: stmtInsert,
		stmtList:   stmtList,
		stmtGet:    stmtGet,
	}, nil
}

// Close releases the prepared statements and the database.
func (j *Journal) Close() error {
	_ = j.stmtInsert.Close()
	_ = j.stmtList.Close()
	_ = j.stmtGet.Close()
	return j.db.Close()
}

// Record stores rec and returns its run ID, generating one if rec.ID is empty.
func (j *Journal) Record(ctx context.Context, rec RunRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	_, err := j.stmtInsert.ExecContext(ctx,
		rec.ID,
		rec.StartedAt.UnixMilli(),
		rec.InputPath,
		rec.OutputPath,
		rec.Size,
		strconv.FormatUint(rec.Seed, 10),
		rec.Weighting,
		rec.InputTokens,
		rec.States,
		rec.TotalTransitions,
		rec.Generated,
		rec.Restarts,
		rec.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to record run %s: %w", rec.ID, err)
	}
	return rec.ID, nil
}

// List returns up to limit runs, newest first.
func (j *Journal) List(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := j.stmtList.QueryContext(ctx, limit)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Get returns a single run. A missing ID yields an error wrapping sql.ErrNoRows.
func (j *Journal) Get(ctx context.Context, id string) (RunRecord, error) {
	rec, err := scanRun(j.stmtGet.QueryRowContext(ctx, id))
	if err != nil {
		return RunRecord{}, fmt.Errorf("could not get run %s: %w", id, err)
	}
	return rec, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (RunRecord, error) {
	var (
		rec        RunRecord
		startedAt  int64
		seed       string
		durationMS int64
	)
	err := s.Scan(
		&rec.ID,
		&startedAt,
		&rec.InputPath,
		&rec.OutputPath,
		&rec.Size,
		&seed,
		&rec.Weighting,
		&rec.InputTokens,
		&rec.States,
		&rec.TotalTransitions,
		&rec.Generated,
		&rec.Restarts,
		&durationMS,
	)
	if err != nil {
		return RunRecord{}, err
	}
	if rec.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return RunRecord{}, fmt.Errorf("corrupt seed %q for run %s: %w", seed, rec.ID, err)
	}
	rec.StartedAt = time.UnixMilli(startedAt)
	rec.Duration = time.Duration(durationMS) * time.Millisecond
	return rec, nil
}
