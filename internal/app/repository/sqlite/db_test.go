package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audio2num/internal/app/model"
	"audio2num/internal/app/repository"
)

func TestSQLiteDB_Interface(t *testing.T) {
	var _ repository.ResultDAO = (*SQLiteDB)(nil)
}

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := NewSQLiteDB(context.Background(), filepath.Join(t.TempDir(), "data", "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	older := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	id1, err := db.Record(ctx, model.Result{
		FileName:      "first.mav",
		SourcePath:    "/in/first.mav",
		Outcome:       "transcript",
		Transcript:    "one two three",
		Number:        "123",
		AudioDuration: 1.5,
		ProcessedAt:   older,
	})
	require.NoError(t, err)

	id2, err := db.Record(ctx, model.Result{
		FileName:     "second.mav",
		SourcePath:   "/in/second.mav",
		Outcome:      "service_error",
		ErrorMessage: "OpenAI Whisper API request failed: timeout",
		ProcessedAt:  newer,
	})
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	results, err := db.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "second.mav", results[0].FileName)
	assert.Equal(t, "service_error", results[0].Outcome)
	assert.Equal(t, "OpenAI Whisper API request failed: timeout", results[0].ErrorMessage)

	assert.Equal(t, id1, results[1].ID)
	assert.Equal(t, "123", results[1].Number)
	assert.Equal(t, "one two three", results[1].Transcript)
	assert.InDelta(t, 1.5, results[1].AudioDuration, 0.0001)
	assert.True(t, older.Equal(results[1].ProcessedAt), "got %v", results[1].ProcessedAt)
}

func TestCheckIfFileProcessed(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	const source = "/audio/day1/clip.mav"

	_, err := db.CheckIfFileProcessed(ctx, source)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = db.Record(ctx, model.Result{FileName: "clip.mav", SourcePath: source, Outcome: "decode_error", ErrorMessage: "bad header"})
	require.NoError(t, err)
	_, err = db.CheckIfFileProcessed(ctx, source)
	assert.ErrorIs(t, err, sql.ErrNoRows, "failed runs do not count as processed")

	id, err := db.Record(ctx, model.Result{FileName: "clip.mav", SourcePath: source, Outcome: "transcript", Transcript: "nine", Number: "9"})
	require.NoError(t, err)

	got, err := db.CheckIfFileProcessed(ctx, source)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = db.CheckIfFileProcessed(ctx, "/audio/day2/clip.mav")
	assert.ErrorIs(t, err, sql.ErrNoRows, "same name in another directory")
}

func TestListAllEmpty(t *testing.T) {
	results, err := newTestDB(t).ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}
