//go:build nomysql

package db

import (
	"fmt"

	"github.com/vvka-141/myload/pkg/myload"
)

// Supported reports whether this build includes the MySQL driver.
const Supported = false

// NewConnector always fails: this binary was built with -tags nomysql.
func NewConnector(config *myload.ConnectionConfig) (myload.Connector, error) {
	return nil, fmt.Errorf("rebuild without -tags nomysql to load into MySQL: %w", myload.ErrUnsupported)
}

// NewConnectorFactory returns a factory that always fails with myload.ErrUnsupported.
func NewConnectorFactory(logger myload.Logger) myload.ConnectorFactory {
	return NewConnector
}
