package myload

import (
	"context"
)

// Connector is a unified interface for establishing database connections.
// Different implementations handle various authentication methods
// (standard credentials, cloud IAM tokens, Cloud SQL dialer).
type Connector interface {
	// Connect opens exactly one connection with client-side LOCAL INFILE
	// enabled. The caller must Close the returned Session.
	Connect(ctx context.Context) (Session, error)
}

// Session is a single open database connection.
type Session interface {
	// LoadLocalFile executes query, a LOAD DATA LOCAL INFILE statement whose
	// single placeholder is bound to path, and returns the affected-row
	// count. Only path is readable by the server during the call.
	LoadLocalFile(ctx context.Context, path, query string) (int64, error)

	// Close releases the connection.
	Close() error
}

// ConnectorFactory builds the Connector matching a configuration's AuthMethod.
type ConnectorFactory func(*ConnectionConfig) (Connector, error)
