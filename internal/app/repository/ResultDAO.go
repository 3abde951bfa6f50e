package repository

import (
	"context"

	"audio2num/internal/app/model"
)

// ResultDAO persists pipeline runs.
type ResultDAO interface {
	Close() error

	// Record stores r and returns its id.
	Record(ctx context.Context, r model.Result) (int64, error)

	// CheckIfFileProcessed returns the id of a successful run for the file
	// at sourcePath, or sql.ErrNoRows when there is none.
	CheckIfFileProcessed(ctx context.Context, sourcePath string) (int64, error)

	// ListAll returns every stored run, newest first.
	ListAll(ctx context.Context) ([]model.Result, error)
}
