package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"audio2num/internal/app/model"
)

// CommonDB implements ResultDAO over any database/sql driver that speaks
// either "?" or "$n" placeholders.
type CommonDB struct {
	db           *sql.DB
	driverName   string
	placeholders PlaceholderFunc
}

// PlaceholderFunc generates parameter placeholders for different SQL dialects
type PlaceholderFunc func(n int) string

// NewCommonDB creates a new CommonDB instance
func NewCommonDB(db *sql.DB, driverName string) *CommonDB {
	var placeholders PlaceholderFunc

	switch driverName {
	case "postgres":
		placeholders = func(n int) string { return fmt.Sprintf("$%d", n) }
	default:
		placeholders = func(n int) string { return "?" }
	}

	return &CommonDB{
		db:           db,
		driverName:   driverName,
		placeholders: placeholders,
	}
}

const resultColumns = "id, file_name, source_path, outcome, transcript, number, audio_duration, error_message, processed_at"

// Record inserts r. Postgres returns the id through RETURNING, other
// drivers through LastInsertId.
func (c *CommonDB) Record(ctx context.Context, r model.Result) (int64, error) {
	params := make([]string, 8)
	for i := range params {
		params[i] = c.placeholders(i + 1)
	}

	query := fmt.Sprintf(
		`INSERT INTO results (file_name, source_path, outcome, transcript, number, audio_duration, error_message, processed_at) VALUES (%s)`,
		strings.Join(params, ", "),
	)

	processedAt := r.ProcessedAt
	if processedAt.IsZero() {
		processedAt = time.Now()
	}
	args := []interface{}{
		r.FileName, r.SourcePath, r.Outcome, r.Transcript, r.Number,
		r.AudioDuration, r.ErrorMessage, processedAt.UTC(),
	}

	if c.driverName == "postgres" {
		var id int64
		if err := c.db.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("insert failed: %w", err)
		}
		return id, nil
	}

	res, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert failed: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert failed: %w", err)
	}
	return id, nil
}

// CheckIfFileProcessed checks if the file at sourcePath already has a transcript.
func (c *CommonDB) CheckIfFileProcessed(ctx context.Context, sourcePath string) (int64, error) {
	query := fmt.Sprintf(
		"SELECT id FROM results WHERE source_path = %s AND outcome = 'transcript' ORDER BY id DESC LIMIT 1",
		c.placeholders(1),
	)

	var id int64
	err := c.db.QueryRowContext(ctx, query, sourcePath).Scan(&id)
	return id, err
}

// ListAll retrieves all results
func (c *CommonDB) ListAll(ctx context.Context) ([]model.Result, error) {
	query := "SELECT " + resultColumns + " FROM results ORDER BY processed_at DESC, id DESC"

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	results := make([]model.Result, 0)
	for rows.Next() {
		var r model.Result
		err := rows.Scan(
			&r.ID,
			&r.FileName,
			&r.SourcePath,
			&r.Outcome,
			&r.Transcript,
			&r.Number,
			&r.AudioDuration,
			&r.ErrorMessage,
			&r.ProcessedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		results = append(results, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return results, nil
}

// Close closes the database connection
func (c *CommonDB) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
