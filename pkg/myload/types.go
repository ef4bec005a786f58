package myload

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ConnectionConfig represents resolved MySQL connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string

	// TLS is passed to the driver's tls parameter ("true", "false",
	// "skip-verify", "preferred"). Empty leaves the driver default.
	TLS string
	// TLSCA is a PEM file of CA certificates used to verify the server.
	// It implies TLS; TLS must then be empty or "true".
	TLSCA string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// AWS RDS IAM authentication (used when AuthMethod is AuthMethodAWSIAM)
	AWSRegion string

	// Azure Entra ID authentication parameters (used when AuthMethod is AuthMethodAzureEntraID)
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// GoogleInstance is the Cloud SQL instance connection name (project:region:instance)
	GoogleInstance string
}

// Address returns host:port for dialing and token signing.
func (c *ConnectionConfig) Address() string {
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("%s:%d", c.Host, port)
}

// Validate checks the fields every load requires before any I/O happens.
// Password is optional. Cloud SQL connections are addressed by instance
// name, so Host may be empty for AuthMethodGoogleIAM.
func (c *ConnectionConfig) Validate() error {
	var errs []error

	if c.Host == "" && c.AuthMethod != AuthMethodGoogleIAM {
		errs = append(errs, fmt.Errorf("host is required: %w", ErrInvalidArgument))
	}
	if c.Username == "" {
		errs = append(errs, fmt.Errorf("user is required: %w", ErrInvalidArgument))
	}
	if c.Database == "" {
		errs = append(errs, fmt.Errorf("database is required: %w", ErrInvalidArgument))
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range: %w", c.Port, ErrInvalidArgument))
	}
	if c.TLSCA != "" && c.TLS != "" && c.TLS != "true" {
		errs = append(errs, fmt.Errorf("tls ca %s cannot be combined with tls=%s: %w", c.TLSCA, c.TLS, ErrInvalidArgument))
	}
	if !c.AuthMethod.IsValid() {
		errs = append(errs, fmt.Errorf("auth method %v is not supported: %w", c.AuthMethod, ErrInvalidArgument))
	}

	return errors.Join(errs...)
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS RDS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}

// ParseAuthMethod maps the config-file spelling of an auth method.
// An empty string selects AuthMethodStandard.
func ParseAuthMethod(s string) (AuthMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "password":
		return AuthMethodStandard, nil
	case "aws", "aws-iam":
		return AuthMethodAWSIAM, nil
	case "google", "google-iam":
		return AuthMethodGoogleIAM, nil
	case "azure", "azure-entra-id":
		return AuthMethodAzureEntraID, nil
	default:
		return AuthMethodStandard, fmt.Errorf("unknown auth method %q: %w", s, ErrInvalidConfig)
	}
}

// CSVUpload is a CSV payload with a header row. Data is never parsed.
type CSVUpload struct {
	Table string
	Data  []byte
}

// Validate checks the request fields.
func (r *CSVUpload) Validate() error {
	if r.Table == "" {
		return fmt.Errorf("table is required: %w", ErrInvalidArgument)
	}
	return checkIdentifier("table", r.Table)
}

// ColumnUpload loads one value per row into a single named column.
type ColumnUpload struct {
	Table  string
	Column string
	Values []float64
}

// Validate checks the request fields. NaN and infinities are rejected
// because MySQL numeric columns cannot store them.
func (r *ColumnUpload) Validate() error {
	var errs []error

	if r.Table == "" {
		errs = append(errs, fmt.Errorf("table is required: %w", ErrInvalidArgument))
	}
	if r.Column == "" {
		errs = append(errs, fmt.Errorf("column is required: %w", ErrInvalidArgument))
	}
	errs = append(errs, checkIdentifier("table", r.Table), checkIdentifier("column", r.Column))
	for i, v := range r.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("value %d is %v: %w", i, v, ErrInvalidArgument))
			break
		}
	}

	return errors.Join(errs...)
}

// checkIdentifier rejects names the driver would take for the path
// placeholder of the load statement.
func checkIdentifier(kind, name string) error {
	if strings.Contains(name, "?") {
		return fmt.Errorf("%s name %q must not contain '?': %w", kind, name, ErrInvalidArgument)
	}
	return nil
}

// LoadResult describes a completed bulk load.
type LoadResult struct {
	// LoadID correlates the log lines of one call
	LoadID string

	// RowsAffected is the count reported by the server
	RowsAffected int64

	// StagingPath is the temp file that was loaded. It no longer exists.
	StagingPath string
}
