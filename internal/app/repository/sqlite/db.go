package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"audio2num/internal/app/repository"
	"audio2num/internal/app/util/files"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS results (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	file_name      TEXT    NOT NULL,
	source_path    TEXT    NOT NULL DEFAULT '',
	outcome        TEXT    NOT NULL,
	transcript     TEXT    NOT NULL DEFAULT '',
	number         TEXT    NOT NULL DEFAULT '',
	audio_duration REAL    NOT NULL DEFAULT 0,
	error_message  TEXT    NOT NULL DEFAULT '',
	processed_at   TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_source_path ON results (source_path);
`

// SQLiteDB stores results in a local SQLite file.
type SQLiteDB struct {
	*repository.CommonDB
}

// NewSQLiteDB opens (creating if needed) the database at dbFilePath and
// makes sure the results table exists.
func NewSQLiteDB(ctx context.Context, dbFilePath string) (*SQLiteDB, error) {
	if err := files.EnsureDir(filepath.Dir(dbFilePath)); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc&_busy_timeout=5000", dbFilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteDB{CommonDB: repository.NewCommonDB(db, "sqlite3")}, nil
}
