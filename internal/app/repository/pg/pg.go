package pg

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"audio2num/internal/app/repository"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS results (
	id             BIGSERIAL PRIMARY KEY,
	file_name      TEXT             NOT NULL,
	source_path    TEXT             NOT NULL DEFAULT '',
	outcome        TEXT             NOT NULL,
	transcript     TEXT             NOT NULL DEFAULT '',
	number         TEXT             NOT NULL DEFAULT '',
	audio_duration DOUBLE PRECISION NOT NULL DEFAULT 0,
	error_message  TEXT             NOT NULL DEFAULT '',
	processed_at   TIMESTAMPTZ      NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_source_path ON results (source_path)`

// PostgresDB stores results in PostgreSQL.
type PostgresDB struct {
	*repository.CommonDB
}

// NewPostgresDB connects with connectionString and creates the results table.
func NewPostgresDB(ctx context.Context, connectionString string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	pdb, err := newWithDB(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return pdb, nil
}

func newWithDB(ctx context.Context, db *sql.DB) (*PostgresDB, error) {
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return &PostgresDB{CommonDB: repository.NewCommonDB(db, "postgres")}, nil
}
