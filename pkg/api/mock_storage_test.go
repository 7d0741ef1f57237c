package api

import (
	"context"
	"io"
	"sync"

	"github.com/adfharrison1/protondb/pkg/domain"
)

// MockStorageEngine records calls and returns a configured error from every
// operation
type MockStorageEngine struct {
	mu      sync.Mutex
	err     error
	calls   []string
	filters []domain.Filter
	actions []domain.Action
	payload []byte
}

// NewMockStorageEngine creates a mock that fails every call with err (nil for success)
func NewMockStorageEngine(err error) *MockStorageEngine {
	return &MockStorageEngine{err: err}
}

func (m *MockStorageEngine) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *MockStorageEngine) recordFilter(filter domain.Filter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filters = append(m.filters, filter)
}

// Calls returns the operations invoked so far
func (m *MockStorageEngine) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// LastFilter returns the most recent filter passed to the mock
func (m *MockStorageEngine) LastFilter() domain.Filter {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.filters) == 0 {
		return domain.Filter{}
	}
	return m.filters[len(m.filters)-1]
}

func (m *MockStorageEngine) CreateDatabase(name string) error {
	m.record("CreateDatabase")
	return m.err
}

func (m *MockStorageEngine) DropDatabase(name string) error {
	m.record("DropDatabase")
	return m.err
}

func (m *MockStorageEngine) ListDatabases() ([]string, error) {
	m.record("ListDatabases")
	if m.err != nil {
		return nil, m.err
	}
	return []string{}, nil
}

func (m *MockStorageEngine) CreateCollection(dbName, collName string) error {
	m.record("CreateCollection")
	return m.err
}

func (m *MockStorageEngine) DropCollection(dbName, collName string) error {
	m.record("DropCollection")
	return m.err
}

func (m *MockStorageEngine) ListCollections(dbName string) ([]string, error) {
	m.record("ListCollections")
	if m.err != nil {
		return nil, m.err
	}
	return []string{}, nil
}

func (m *MockStorageEngine) InsertDocuments(dbName, collName string, payload []byte) (int, error) {
	m.record("InsertDocuments")
	if m.err != nil {
		return 0, m.err
	}
	return 1, nil
}

func (m *MockStorageEngine) QueryDocuments(dbName, collName string, filter domain.Filter) ([]domain.Document, error) {
	m.record("QueryDocuments")
	m.recordFilter(filter)
	if m.err != nil {
		return nil, m.err
	}
	return []domain.Document{}, nil
}

func (m *MockStorageEngine) StreamDocuments(ctx context.Context, dbName, collName string, filter domain.Filter) (<-chan domain.Document, error) {
	m.record("StreamDocuments")
	m.recordFilter(filter)
	if m.err != nil {
		return nil, m.err
	}
	out := make(chan domain.Document)
	close(out)
	return out, nil
}

func (m *MockStorageEngine) RemoveDocuments(dbName, collName string, filter domain.Filter) (int, error) {
	m.record("RemoveDocuments")
	m.recordFilter(filter)
	if m.err != nil {
		return 0, m.err
	}
	return 0, nil
}

func (m *MockStorageEngine) UpdateDocuments(dbName, collName string, filter domain.Filter, action domain.Action, payload []byte) (int, error) {
	m.record("UpdateDocuments")
	m.recordFilter(filter)
	m.mu.Lock()
	m.actions = append(m.actions, action)
	m.payload = payload
	m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return 0, nil
}

func (m *MockStorageEngine) ExportDatabase(name string, w io.Writer) error {
	m.record("ExportDatabase")
	return m.err
}

func (m *MockStorageEngine) ImportDatabase(name string, r io.Reader) error {
	m.record("ImportDatabase")
	return m.err
}

func (m *MockStorageEngine) GetStats() map[string]interface{} {
	m.record("GetStats")
	return map[string]interface{}{"databases": 0}
}

var _ domain.StorageEngine = (*MockStorageEngine)(nil)
