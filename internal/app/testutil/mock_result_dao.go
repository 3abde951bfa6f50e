package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"audio2num/internal/app/model"
)

// MockResultDAO is an in-memory repository.ResultDAO. ErrorMap keys are
// method names ("Record", "CheckIfFileProcessed", "ListAll", "Close").
type MockResultDAO struct {
	mu      sync.Mutex
	results []model.Result
	nextID  int64

	ErrorMap map[string]error
	Closed   bool
}

// NewMockResultDAO creates an empty MockResultDAO.
func NewMockResultDAO() *MockResultDAO {
	return &MockResultDAO{
		nextID:   1,
		ErrorMap: make(map[string]error),
	}
}

// WithProcessedFile seeds a successful run for the file at sourcePath.
func (m *MockResultDAO) WithProcessedFile(sourcePath string) *MockResultDAO {
	_, _ = m.Record(context.Background(), model.Result{
		FileName:   filepath.Base(sourcePath),
		SourcePath: sourcePath,
		Outcome:    "transcript",
		Transcript: "one",
		Number:     "1",
	})
	return m
}

// WithError makes method fail with err.
func (m *MockResultDAO) WithError(method string, err error) *MockResultDAO {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorMap[method] = err
	return m
}

func (m *MockResultDAO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return m.ErrorMap["Close"]
}

func (m *MockResultDAO) Record(ctx context.Context, r model.Result) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ErrorMap["Record"]; err != nil {
		return 0, err
	}
	r.ID = m.nextID
	m.nextID++
	if r.ProcessedAt.IsZero() {
		r.ProcessedAt = time.Now()
	}
	m.results = append(m.results, r)
	return r.ID, nil
}

func (m *MockResultDAO) CheckIfFileProcessed(ctx context.Context, sourcePath string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ErrorMap["CheckIfFileProcessed"]; err != nil {
		return 0, err
	}
	for i := len(m.results) - 1; i >= 0; i-- {
		if m.results[i].SourcePath == sourcePath && m.results[i].Succeeded() {
			return m.results[i].ID, nil
		}
	}
	return 0, sql.ErrNoRows
}

func (m *MockResultDAO) ListAll(ctx context.Context) ([]model.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ErrorMap["ListAll"]; err != nil {
		return nil, err
	}
	out := make([]model.Result, len(m.results))
	copy(out, m.results)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Results returns stored runs in insertion order.
func (m *MockResultDAO) Results() []model.Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Result, len(m.results))
	copy(out, m.results)
	return out
}
