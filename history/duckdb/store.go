// Package duckdb stores finished sessions and their steps in DuckDB.
package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rickchristie/reagent"
)

// ErrNotFound is returned by [Store.Get] for an unknown session id.
var ErrNotFound = errors.New("session not found")

var schemaSQL = []string{`
CREATE TABLE IF NOT EXISTS sessions (
	id           VARCHAR PRIMARY KEY,
	question     VARCHAR NOT NULL,
	status       VARCHAR NOT NULL,
	final_answer VARCHAR,
	reason       VARCHAR,
	error        VARCHAR,
	iterations   INTEGER NOT NULL,
	start_time   TIMESTAMP NOT NULL,
	end_time     TIMESTAMP NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS steps (
	session_id     VARCHAR NOT NULL,
	idx            INTEGER NOT NULL,
	thought        VARCHAR,
	action         VARCHAR,
	action_input   VARCHAR,
	observation    VARCHAR,
	eureka_thought VARCHAR,
	final_answer   VARCHAR,
	PRIMARY KEY (session_id, idx)
)`}

// Store is a DuckDB-backed session history.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema. An
// empty path opens an in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	for _, stmt := range schemaSQL {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists a result and its transcript. Saving the same session again
// replaces it.
func (s *Store) Save(ctx context.Context, result *reagent.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var errText any
	if result.Err != nil {
		errText = result.Err.Error()
	}

	// Upserts rather than delete and re-insert: DuckDB checks unique keys
	// eagerly within a transaction.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (id, question, status, final_answer, reason, error,
		                      iterations, start_time, end_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			question     = excluded.question,
			status       = excluded.status,
			final_answer = excluded.final_answer,
			reason       = excluded.reason,
			error        = excluded.error,
			iterations   = excluded.iterations,
			start_time   = excluded.start_time,
			end_time     = excluded.end_time`,
		result.SessionID,
		result.Question,
		string(result.Status),
		result.FinalAnswer,
		result.Reason,
		errText,
		result.Iterations,
		result.StartTime.UTC(),
		result.EndTime.UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM steps WHERE session_id = ? AND idx >= ?`,
		result.SessionID, len(result.Transcript))
	if err != nil {
		return fmt.Errorf("trim steps: %w", err)
	}

	for i, step := range result.Transcript {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO steps (session_id, idx, thought, action, action_input,
			                   observation, eureka_thought, final_answer)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (session_id, idx) DO UPDATE SET
				thought        = excluded.thought,
				action         = excluded.action,
				action_input   = excluded.action_input,
				observation    = excluded.observation,
				eureka_thought = excluded.eureka_thought,
				final_answer   = excluded.final_answer`,
			result.SessionID,
			i,
			nullable(step.Thought),
			nullable(step.Action),
			nullable(step.ActionInput),
			nullable(step.Observation),
			nullable(step.EurekaThought),
			nullable(step.FinalAnswer),
		)
		if err != nil {
			return fmt.Errorf("upsert step %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// Summary is one row of [Store.List].
type Summary struct {
	ID          string
	Question    string
	Status      reagent.Status
	FinalAnswer string
	Iterations  int
	StartTime   time.Time
}

// List returns the most recent sessions first. A limit of zero or less means
// no limit.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	query := `SELECT id, question, status, COALESCE(final_answer, ''), iterations, start_time
		FROM sessions ORDER BY start_time DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var status string
		if err := rows.Scan(&sum.ID, &sum.Question, &status, &sum.FinalAnswer, &sum.Iterations, &sum.StartTime); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sum.Status = reagent.Status(status)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Get loads a stored session with its transcript. Absent step fields come
// back as nil, present-but-empty ones as "".
func (s *Store) Get(ctx context.Context, id string) (*reagent.Result, error) {
	var (
		r           reagent.Result
		status      string
		finalAnswer sql.NullString
		reason      sql.NullString
		errText     sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, question, status, final_answer, reason, error, iterations, start_time, end_time
		FROM sessions WHERE id = ?`, id).
		Scan(&r.SessionID, &r.Question, &status, &finalAnswer, &reason, &errText,
			&r.Iterations, &r.StartTime, &r.EndTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	r.Status = reagent.Status(status)
	r.FinalAnswer = finalAnswer.String
	r.Reason = reason.String
	if errText.Valid {
		r.Err = errors.New(errText.String)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT thought, action, action_input, observation, eureka_thought, final_answer
		FROM steps WHERE session_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, fmt.Errorf("get steps: %w", err)
	}
	defer rows.Close()

	r.Transcript = reagent.Transcript{}
	for rows.Next() {
		cols := make([]sql.NullString, len(reagent.Fields))
		dest := make([]any, len(cols))
		for i := range cols {
			dest[i] = &cols[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		step := &reagent.Step{}
		for i, f := range reagent.Fields {
			if cols[i].Valid {
				step.Set(f, cols[i].String)
			}
		}
		r.Transcript = append(r.Transcript, step)
	}
	return &r, rows.Err()
}
