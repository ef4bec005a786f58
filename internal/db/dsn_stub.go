//go:build nomysql

package db

import (
	"fmt"

	"github.com/vvka-141/myload/pkg/myload"
)

// ParseConnectionString always fails: DSN parsing lives in the MySQL driver.
func ParseConnectionString(dsn string) (*myload.ConnectionConfig, error) {
	return nil, fmt.Errorf("DSN parsing: %w", myload.ErrUnsupported)
}
