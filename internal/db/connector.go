//go:build !nomysql

package db

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/vvka-141/myload/pkg/myload"
)

// Supported reports whether this build includes the MySQL driver.
const Supported = true

// baseDriverConfig converts a ConnectionConfig into a go-sql-driver config.
func baseDriverConfig(config *myload.ConnectionConfig) (*mysql.Config, error) {
	cfg := mysql.NewConfig()
	cfg.User = config.Username
	cfg.Passwd = config.Password
	cfg.Net = "tcp"
	cfg.Addr = config.Address()
	cfg.DBName = config.Database
	// LOAD DATA cannot be prepared; the driver escapes the bound path itself,
	// following the server's NO_BACKSLASH_ESCAPES status.
	cfg.InterpolateParams = true
	if config.TLS != "" {
		cfg.TLSConfig = config.TLS
	}
	if config.TLSCA != "" {
		tlsCfg, err := loadRootCAs(config.TLSCA)
		if err != nil {
			return nil, err
		}
		// The driver fills in ServerName from Addr.
		cfg.TLS = tlsCfg
	}
	return cfg, nil
}

// loadRootCAs builds a verifying TLS config trusting only the CAs in path.
func loadRootCAs(path string) (*tls.Config, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read TLS CA file: %w: %w", myload.ErrInvalidConfig, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no PEM certificates found in %s: %w", path, myload.ErrInvalidConfig)
	}
	return &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}, nil
}

// StandardConnector implements the Connector interface for standard
// username/password authentication.
type StandardConnector struct {
	config *myload.ConnectionConfig
}

// NewStandardConnector creates a new StandardConnector with the given configuration.
func NewStandardConnector(config *myload.ConnectionConfig) *StandardConnector {
	return &StandardConnector{config: config}
}

// Connect opens one connection using the configured password.
func (c *StandardConnector) Connect(ctx context.Context) (myload.Session, error) {
	cfg, err := baseDriverConfig(c.config)
	if err != nil {
		return nil, err
	}
	return openSession(ctx, cfg, c.config, nil)
}

// openSession dials exactly one connection. onClose runs after the
// connection is closed, successful or not.
func openSession(ctx context.Context, cfg *mysql.Config, config *myload.ConnectionConfig, onClose func()) (myload.Session, error) {
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		if onClose != nil {
			onClose()
		}
		return nil, fmt.Errorf("invalid driver configuration: %w: %w", myload.ErrInvalidArgument, err)
	}

	pool := sql.OpenDB(connector)
	pool.SetMaxOpenConns(1)
	pool.SetMaxIdleConns(1)

	conn, err := pool.Conn(ctx)
	if err != nil {
		pool.Close()
		if onClose != nil {
			onClose()
		}
		return nil, wrapConnectionError(err, config.Address(), config.Database)
	}

	return &session{pool: pool, conn: conn, onClose: onClose}, nil
}

// session holds a single dedicated connection. The surrounding *sql.DB is
// capped at one connection and never hands out another.
type session struct {
	pool    *sql.DB
	conn    *sql.Conn
	onClose func()
}

// LoadLocalFile allowlists path in the driver for the duration of the
// statement and binds it to the statement's placeholder. The server echoes
// the unescaped path back when it requests the file, which is what the
// allowlist is keyed on.
func (s *session) LoadLocalFile(ctx context.Context, path, query string) (int64, error) {
	mysql.RegisterLocalFile(path)
	defer mysql.DeregisterLocalFile(path)

	res, err := s.conn.ExecContext(ctx, query, path)
	if err != nil {
		return 0, wrapQueryError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w: %w", myload.ErrQueryFailed, err)
	}
	return n, nil
}

func (s *session) Close() error {
	err := errors.Join(s.conn.Close(), s.pool.Close())
	if s.onClose != nil {
		s.onClose()
	}
	return err
}

// NewConnector is a factory function that creates the appropriate Connector
// based on the ConnectionConfig's AuthMethod.
func NewConnector(config *myload.ConnectionConfig) (myload.Connector, error) {
	switch config.AuthMethod {
	case myload.AuthMethodStandard:
		return NewStandardConnector(config), nil
	case myload.AuthMethodAWSIAM:
		return newAWSConnector(config)
	case myload.AuthMethodGoogleIAM:
		return newGoogleConnector(config)
	case myload.AuthMethodAzureEntraID:
		return newAzureConnector(config)
	default:
		return nil, fmt.Errorf("unsupported auth method %v: %w", config.AuthMethod, myload.ErrUnsupportedAuthMethod)
	}
}

// MySQL server error numbers used for diagnostics.
const (
	erTooManyConnections  = 1040
	erDBAccessDenied      = 1044
	erAccessDenied        = 1045
	erBadDB               = 1049
	erNoSuchTable         = 1146
	erNotAllowedCommand   = 1148
	erBadFieldError       = 1054
	erLoadInfileDisabled  = 3948
	erTableAccessDenied   = 1142
	erTruncatedWrongValue = 1366
)

// wrapConnectionError wraps raw driver connection errors with actionable
// guidance. The result always matches myload.ErrConnectionFailed.
func wrapConnectionError(err error, addr, database string) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case erAccessDenied:
			return fmt.Errorf(`access denied connecting to %s

Possible causes:
  - Wrong password (check $MYSQL_PASS)
  - Wrong username
  - User is not allowed to connect from this host

Original error: %w: %w`, addr, myload.ErrConnectionFailed, err)
		case erDBAccessDenied:
			return fmt.Errorf(`user has no access to database "%s"

Try: GRANT INSERT, SELECT ON %s.* TO '<user>'@'%%';

Original error: %w: %w`, database, database, myload.ErrConnectionFailed, err)
		case erBadDB:
			return fmt.Errorf(`database "%s" does not exist

To create it:
  CREATE DATABASE %s;

Original error: %w: %w`, database, QuoteIdentifier(database), myload.ErrConnectionFailed, err)
		case erTooManyConnections:
			return fmt.Errorf(`too many connections to %s

Possible causes:
  - max_connections limit reached on the server
  - Stale connections from other clients

Original error: %w: %w`, addr, myload.ErrConnectionFailed, err)
		}
	}

	var dnsErr *net.DNSError
	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - MySQL is not running (check: mysqladmin -h <host> -P <port> ping)
  - Wrong host or port
  - Firewall blocking the connection

Original error: %w: %w`, addr, myload.ErrConnectionFailed, err)

	case errors.As(err, &dnsErr) || strings.Contains(errStr, "no such host"):
		return fmt.Errorf(`cannot resolve host of "%s"

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable
  - Network connection issue

Original error: %w: %w`, addr, myload.ErrConnectionFailed, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out") || errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

Original error: %w: %w`, addr, myload.ErrConnectionFailed, err)

	case strings.Contains(errStr, "tls") || strings.Contains(errStr, "x509") || strings.Contains(errStr, "ssl"):
		return fmt.Errorf(`TLS connection error to %s

Possible causes:
  - Server requires TLS (try --tls=true or --tls=skip-verify)
  - Certificate verification failed (try --tls=skip-verify)

Original error: %w: %w`, addr, myload.ErrConnectionFailed, err)

	default:
		return fmt.Errorf("failed to connect to %s: %w: %w", addr, myload.ErrConnectionFailed, err)
	}
}

// wrapQueryError wraps a rejected LOAD DATA statement. The result always
// matches myload.ErrQueryFailed.
func wrapQueryError(err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case erNotAllowedCommand, erLoadInfileDisabled:
			return fmt.Errorf(`LOAD DATA LOCAL INFILE is disabled on the server

Enable it with:
  SET GLOBAL local_infile = 1;

Original error: %w: %w`, myload.ErrQueryFailed, err)
		case erNoSuchTable:
			return fmt.Errorf("target table does not exist: %w: %w", myload.ErrQueryFailed, err)
		case erBadFieldError:
			return fmt.Errorf("target column does not exist: %w: %w", myload.ErrQueryFailed, err)
		case erTableAccessDenied:
			return fmt.Errorf("user may not insert into the target table: %w: %w", myload.ErrQueryFailed, err)
		case erTruncatedWrongValue:
			return fmt.Errorf("data does not match the column types: %w: %w", myload.ErrQueryFailed, err)
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("load interrupted: %w: %w", myload.ErrQueryFailed, err)
	}
	return fmt.Errorf("load statement failed: %w: %w", myload.ErrQueryFailed, err)
}

// NewConnectorFactory returns a myload.ConnectorFactory whose token-based
// connectors report expiry warnings to logger.
func NewConnectorFactory(logger myload.Logger) myload.ConnectorFactory {
	return func(config *myload.ConnectionConfig) (myload.Connector, error) {
		c, err := NewConnector(config)
		if tc, ok := c.(*TokenBasedConnector); ok {
			tc.WithLogger(logger)
		}
		return c, err
	}
}
