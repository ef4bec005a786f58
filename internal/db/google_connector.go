//go:build !nomysql

package db

import (
	"context"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/vvka-141/myload/pkg/myload"
)

// GoogleCloudSQLConnector implements the Connector interface for Google Cloud SQL
// using IAM database authentication via the Cloud SQL Go Connector.
//
// The dialer lives as long as the session and is closed with it.
type GoogleCloudSQLConnector struct {
	config   *myload.ConnectionConfig
	instance string
}

// NewGoogleCloudSQLConnector creates a connector for Google Cloud SQL IAM authentication.
// instance is the instance connection name in format: project:region:instance
func NewGoogleCloudSQLConnector(config *myload.ConnectionConfig, instance string) *GoogleCloudSQLConnector {
	return &GoogleCloudSQLConnector{
		config:   config,
		instance: instance,
	}
}

// Connect dials through the Cloud SQL connector, which handles IAM login
// and TLS itself, so the driver's own TLS is disabled.
func (c *GoogleCloudSQLConnector) Connect(ctx context.Context) (myload.Session, error) {
	dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud SQL dialer: %w: %w", myload.ErrConnectionFailed, err)
	}

	cfg, err := baseDriverConfig(c.config)
	if err != nil {
		dialer.Close()
		return nil, err
	}
	cfg.Addr = c.instance
	cfg.Passwd = ""
	cfg.TLSConfig = "false"
	cfg.TLS = nil
	cfg.AllowCleartextPasswords = true
	cfg.DialFunc = func(ctx context.Context, _, _ string) (net.Conn, error) {
		return dialer.Dial(ctx, c.instance)
	}

	addrConfig := *c.config
	addrConfig.Host = c.instance
	return openSession(ctx, cfg, &addrConfig, func() { dialer.Close() })
}

// newGoogleConnector creates a GoogleCloudSQLConnector for Google Cloud SQL IAM authentication.
func newGoogleConnector(config *myload.ConnectionConfig) (myload.Connector, error) {
	if config.GoogleInstance == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires --google-instance (project:region:instance): %w", myload.ErrInvalidConfig)
	}
	if config.Username == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires a username: %w", myload.ErrInvalidConfig)
	}

	return NewGoogleCloudSQLConnector(config, config.GoogleInstance), nil
}
