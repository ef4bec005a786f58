package services

import (
	"context"
	"sync"

	"github.com/vvka-141/myload/internal/files/filesystem"
	"github.com/vvka-141/myload/pkg/myload"
)

// countingFS records every filesystem call made through it.
type countingFS struct {
	*filesystem.MemoryFileSystem

	mu      sync.Mutex
	creates int
	removes int
}

func newCountingFS() *countingFS {
	return &countingFS{MemoryFileSystem: filesystem.NewMemoryFileSystem("/tmp")}
}

func (c *countingFS) CreateTemp(dir, pattern string) (filesystem.WritableFile, error) {
	c.mu.Lock()
	c.creates++
	c.mu.Unlock()
	return c.MemoryFileSystem.CreateTemp(dir, pattern)
}

func (c *countingFS) Remove(path string) error {
	c.mu.Lock()
	c.removes++
	c.mu.Unlock()
	return c.MemoryFileSystem.Remove(path)
}

// mockConnector hands out mockSessions that read the staged file back from
// fs when the statement runs.
type mockConnector struct {
	fs         *countingFS
	connectErr error
	loadErr    error
	rows       int64

	connects int
	session  *mockSession
}

func (m *mockConnector) Connect(_ context.Context) (myload.Session, error) {
	m.connects++
	if m.connectErr != nil {
		return nil, m.connectErr
	}
	m.session = &mockSession{fs: m.fs, loadErr: m.loadErr, rows: m.rows}
	return m.session, nil
}

type mockSession struct {
	fs      *countingFS
	loadErr error
	rows    int64

	path    string
	query   string
	content []byte
	closed  bool
}

func (m *mockSession) LoadLocalFile(_ context.Context, path, query string) (int64, error) {
	m.path = path
	m.query = query
	if content, err := m.fs.ReadFile(path); err == nil {
		m.content = content
	}
	if m.loadErr != nil {
		return 0, m.loadErr
	}
	return m.rows, nil
}

func (m *mockSession) Close() error {
	m.closed = true
	return nil
}

// factoryFor returns a ConnectorFactory that always yields connector and
// counts its invocations.
func factoryFor(connector myload.Connector, calls *int) myload.ConnectorFactory {
	return func(*myload.ConnectionConfig) (myload.Connector, error) {
		*calls++
		return connector, nil
	}
}
