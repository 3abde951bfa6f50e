package testutil

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockTranscriber implements api.Transcriber. Answers are looked up by the
// base name of the transcribed file, then by full path, then fall back to
// the defaults. Set UseExpectations to drive it through testify's On/Return.
type MockTranscriber struct {
	mock.Mock
	mu sync.Mutex

	Name            string
	DefaultResponse string
	DefaultError    error
	UseExpectations bool

	ResponseMap map[string]string
	ErrorMap    map[string]error
	Calls       []string
}

// NewMockTranscriber creates a MockTranscriber answering "one two three".
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{
		Name:            "Mock Speech",
		DefaultResponse: "one two three",
		ResponseMap:     make(map[string]string),
		ErrorMap:        make(map[string]error),
	}
}

// WithResponse answers text for file.
func (m *MockTranscriber) WithResponse(file, text string) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResponseMap[file] = text
	return m
}

// WithError fails transcription of file with err.
func (m *MockTranscriber) WithError(file string, err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorMap[file] = err
	return m
}

// WithDefaultResponse sets the answer for files without a specific one.
func (m *MockTranscriber) WithDefaultResponse(text string) *MockTranscriber {
	m.DefaultResponse = text
	return m
}

// WithDefaultError makes every unmapped file fail with err.
func (m *MockTranscriber) WithDefaultError(err error) *MockTranscriber {
	m.DefaultError = err
	return m
}

// Transcript implements api.Transcriber.
func (m *MockTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	if m.UseExpectations {
		args := m.Called(ctx, inputFilePath)
		return args.String(0), args.Error(1)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, inputFilePath)

	if err := ctx.Err(); err != nil {
		return "", err
	}
	for _, key := range []string{filepath.Base(inputFilePath), inputFilePath} {
		if err, ok := m.ErrorMap[key]; ok {
			return "", err
		}
		if text, ok := m.ResponseMap[key]; ok {
			return text, nil
		}
	}
	if m.DefaultError != nil {
		return "", m.DefaultError
	}
	return m.DefaultResponse, nil
}

// ServiceName implements api.Named.
func (m *MockTranscriber) ServiceName() string {
	return m.Name
}

// CallCount returns how many files were transcribed.
func (m *MockTranscriber) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
