package sheets

import (
	"context"
	"sync"

	"github.com/krkonrad/Calculation-data/internal/model"
)

// MockWriter is a mock implementation of ReportWriter for testing.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, summaries []model.Summary, meta ExportMeta) error
	LastMeta       ExportMeta
	WriteCalls     []WriteCall
	LastSummaries  []model.Summary
	WriteCallCount int
	mu             sync.Mutex
}

// WriteCall represents a single call to Write.
type WriteCall struct {
	Error     error
	Meta      ExportMeta
	Summaries []model.Summary
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		WriteCalls: make([]WriteCall, 0),
	}
}

// Write implements the ReportWriter interface.
func (m *MockWriter) Write(ctx context.Context, summaries []model.Summary, meta ExportMeta) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastSummaries = summaries
	m.LastMeta = meta

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, summaries, meta)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{
		Summaries: summaries,
		Meta:      meta,
		Error:     err,
	})

	return err
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// SetWriteError configures the mock to return err from every Write call.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(context.Context, []model.Summary, ExportMeta) error {
		return err
	}
}
