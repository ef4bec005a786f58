package testing

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/vvka-141/myload/internal/db"
	"github.com/vvka-141/myload/internal/testinfra"
	"github.com/vvka-141/myload/pkg/myload"
)

var (
	testContainerOnce sync.Once
	testContainerDSN  string
	testContainerErr  error
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		dir, err := os.MkdirTemp("", "myload-testdb-*")
		if err != nil {
			testContainerErr = err
			return
		}
		container, err := testinfra.StartMySQL(context.Background(), dir)
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerDSN = container.DSN
	})
	return testContainerDSN, testContainerErr
}

// GetTestDSN returns the DSN of the test server.
// Priority: MYLOAD_TEST_DSN env var > auto-started testcontainer > skip test.
func GetTestDSN(t *testing.T) string {
	t.Helper()

	if dsn := os.Getenv("MYLOAD_TEST_DSN"); dsn != "" {
		return dsn
	}

	dsn, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("MYLOAD_TEST_DSN not set and Docker unavailable: %v", err)
	}
	return dsn
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestDSN and returns the
// parsed connection parameters.
func RequireDatabase(t *testing.T) *myload.ConnectionConfig {
	t.Helper()

	SkipIfShort(t)
	config, err := db.ParseConnectionString(GetTestDSN(t))
	if err != nil {
		t.Fatalf("Failed to parse test DSN: %v", err)
	}
	return config
}

// OpenDB opens a verification pool to the server described by config.
// The pool is closed when the test completes.
func OpenDB(t *testing.T, config *myload.ConnectionConfig) *sql.DB {
	t.Helper()

	cfg := mysql.NewConfig()
	cfg.User = config.Username
	cfg.Passwd = config.Password
	cfg.Net = "tcp"
	cfg.Addr = config.Address()
	cfg.DBName = config.Database

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		t.Fatalf("Failed to create connector: %v", err)
	}
	pool := sql.OpenDB(connector)
	t.Cleanup(func() { pool.Close() })

	if err := pool.PingContext(context.Background()); err != nil {
		t.Fatalf("Failed to reach test database: %v", err)
	}
	return pool
}

// CreateTestTable creates a table with a unique name from columns, a
// column definition list such as "id INT, name VARCHAR(16)". It is dropped
// when the test completes.
func CreateTestTable(t *testing.T, pool *sql.DB, columns string) string {
	t.Helper()

	name := "t_" + uuid.NewString()[:8]
	query := fmt.Sprintf("CREATE TABLE %s (%s)", db.QuoteIdentifier(name), columns)
	if _, err := pool.ExecContext(context.Background(), query); err != nil {
		t.Fatalf("Failed to create test table %s: %v", name, err)
	}

	t.Cleanup(func() {
		drop := fmt.Sprintf("DROP TABLE IF EXISTS %s", db.QuoteIdentifier(name))
		if _, err := pool.ExecContext(context.Background(), drop); err != nil {
			t.Logf("Warning: Failed to drop table %s: %v", name, err)
		}
	})
	return name
}
