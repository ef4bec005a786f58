//go:build !nomysql

package db

import (
	"fmt"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/vvka-141/myload/pkg/myload"
)

// ParseConnectionString parses a go-sql-driver DSN such as
// "user:pass@tcp(host:3306)/dbname?tls=skip-verify". Only TCP is supported.
func ParseConnectionString(dsn string) (*myload.ConnectionConfig, error) {
	parsed, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", myload.ErrInvalidConfig, err)
	}
	if parsed.Net != "tcp" {
		return nil, fmt.Errorf("network %q is not supported, use tcp(host:port): %w", parsed.Net, myload.ErrInvalidConfig)
	}

	host, portStr, err := net.SplitHostPort(parsed.Addr)
	if err != nil {
		return nil, fmt.Errorf("invalid address %q: %w: %w", parsed.Addr, myload.ErrInvalidConfig, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port %q: %w", portStr, myload.ErrInvalidConfig)
	}

	return &myload.ConnectionConfig{
		Host:       host,
		Port:       port,
		Username:   parsed.User,
		Password:   parsed.Passwd,
		Database:   parsed.DBName,
		TLS:        parsed.TLSConfig,
		AuthMethod: myload.AuthMethodStandard,
	}, nil
}
