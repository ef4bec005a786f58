//go:build !nomysql

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/vvka-141/myload/pkg/myload"
)

// tokenExpiryWarning is how close to expiry a fresh token may be before a
// warning is written.
const tokenExpiryWarning = 5 * time.Minute

// TokenBasedConnector implements the Connector interface for cloud providers
// that authenticate via short-lived tokens (AWS IAM, Azure Entra ID).
// The token is acquired when the connection is dialed and sent as the MySQL
// password through the cleartext auth plugin, which is why TLS defaults on.
type TokenBasedConnector struct {
	config        *myload.ConnectionConfig
	tokenProvider TokenProvider
	providerName  string
	logger        myload.Logger
}

// NewTokenBasedConnector creates a connector that uses a TokenProvider for authentication.
// providerName is used in error/warning messages (e.g., "AWS IAM", "Azure").
func NewTokenBasedConnector(config *myload.ConnectionConfig, tokenProvider TokenProvider, providerName string) *TokenBasedConnector {
	return &TokenBasedConnector{
		config:        config,
		tokenProvider: tokenProvider,
		providerName:  providerName,
	}
}

// WithLogger sets where token expiry warnings go.
func (c *TokenBasedConnector) WithLogger(logger myload.Logger) *TokenBasedConnector {
	c.logger = logger
	return c
}

func (c *TokenBasedConnector) Connect(ctx context.Context) (myload.Session, error) {
	cfg, err := c.driverConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(mysql.BeforeConnect(c.injectToken)); err != nil {
		return nil, fmt.Errorf("failed to configure %s authentication: %w", c.providerName, err)
	}
	return openSession(ctx, cfg, c.config, nil)
}

func (c *TokenBasedConnector) driverConfig() (*mysql.Config, error) {
	cfg, err := baseDriverConfig(c.config)
	if err != nil {
		return nil, err
	}
	cfg.Passwd = ""
	cfg.AllowCleartextPasswords = true
	if c.config.TLS == "" && cfg.TLS == nil {
		cfg.TLSConfig = "true"
	}
	return cfg, nil
}

// injectToken runs on a copy of the driver config right before dialing.
func (c *TokenBasedConnector) injectToken(ctx context.Context, cfg *mysql.Config) error {
	token, expiresOn, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire %s token from %s: %w", c.providerName, c.tokenProvider, err)
	}

	if remaining := time.Until(expiresOn); remaining < tokenExpiryWarning && c.logger != nil {
		c.logger.Info("Warning: %s token expires in %v", c.providerName, remaining.Round(time.Second))
	}

	cfg.Passwd = token
	return nil
}

// newAWSConnector creates a token-based connector with the AWS IAM token provider.
func newAWSConnector(config *myload.ConnectionConfig) (myload.Connector, error) {
	tokenProvider, err := NewAWSIAMTokenProvider(config.Address(), config.AWSRegion, config.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS IAM token provider: %w: %w", myload.ErrInvalidConfig, err)
	}

	return NewTokenBasedConnector(config, tokenProvider, "AWS IAM"), nil
}

// newAzureConnector creates a token-based connector with the Azure Entra ID token provider.
// If explicit credentials (tenant, client, secret) are provided, uses Service Principal auth.
// Otherwise, falls back to DefaultAzureCredential chain.
func newAzureConnector(config *myload.ConnectionConfig) (myload.Connector, error) {
	var tokenProvider TokenProvider
	var err error

	if config.AzureTenantID != "" && config.AzureClientID != "" && config.AzureClientSecret != "" {
		tokenProvider, err = NewAzureServicePrincipalProvider(
			config.AzureTenantID,
			config.AzureClientID,
			config.AzureClientSecret,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Service Principal provider: %w", err)
		}
	} else {
		tokenProvider, err = NewAzureDefaultCredentialProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Default Credential provider: %w", err)
		}
	}

	return NewTokenBasedConnector(config, tokenProvider, "Azure"), nil
}
