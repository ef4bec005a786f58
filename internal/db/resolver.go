package db

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/vvka-141/myload/internal/config"
	"github.com/vvka-141/myload/pkg/myload"
)

// GranularConnFlags represents connection parameters from CLI flags.
//
// Note: Password is NOT included as a CLI flag for security reasons.
// Use one of these methods instead:
//  1. $MYSQL_PASS environment variable
//  2. A DSN with embedded password (--dsn or $MYSQL_DSN)
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	TLS      string
	TLSCA    string
}

// IsEmpty returns true if no connection-related granular flags were provided by the user.
// Note: Database and TLSCA are excluded from this check because they can be
// combined with a DSN.
func (g *GranularConnFlags) IsEmpty() bool {
	return g.Host == "" && g.Port == 0 && g.Username == "" && g.TLS == ""
}

// CloudFlags selects and parameterizes IAM authentication.
// Secrets are never flags; AZURE_CLIENT_SECRET comes from the environment.
type CloudFlags struct {
	AWS            bool
	AWSRegion      string
	Azure          bool
	AzureTenantID  string
	AzureClientID  string
	GoogleInstance string
}

// EnvVars represents the environment variables myload reads.
type EnvVars struct {
	MYSQL_HOST   string
	MYSQL_PORT   string
	MYSQL_USER   string
	MYSQL_PASS   string
	MYSQL_DB     string
	MYSQL_TLS    string
	MYSQL_TLS_CA string
	MYSQL_DSN    string
	AWS_REGION   string

	AZURE_TENANT_ID     string
	AZURE_CLIENT_ID     string
	AZURE_CLIENT_SECRET string
}

// LoadFromEnvironment loads MySQL and cloud provider environment variables.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		MYSQL_HOST:          os.Getenv("MYSQL_HOST"),
		MYSQL_PORT:          os.Getenv("MYSQL_PORT"),
		MYSQL_USER:          os.Getenv("MYSQL_USER"),
		MYSQL_PASS:          os.Getenv("MYSQL_PASS"),
		MYSQL_DB:            os.Getenv("MYSQL_DB"),
		MYSQL_TLS:           os.Getenv("MYSQL_TLS"),
		MYSQL_TLS_CA:        os.Getenv("MYSQL_TLS_CA"),
		MYSQL_DSN:           os.Getenv("MYSQL_DSN"),
		AWS_REGION:          os.Getenv("AWS_REGION"),
		AZURE_TENANT_ID:     os.Getenv("AZURE_TENANT_ID"),
		AZURE_CLIENT_ID:     os.Getenv("AZURE_CLIENT_ID"),
		AZURE_CLIENT_SECRET: os.Getenv("AZURE_CLIENT_SECRET"),
	}
}

// ResolveConnectionParams resolves connection parameters from multiple sources.
//
// Precedence for each parameter: CLI flag > environment variable > myload.yaml > default.
// A DSN (--dsn, or $MYSQL_DSN when no granular flags are set) replaces the
// granular host/port/user sources; --database still overrides its database.
//
// Conflict Detection:
// Returns error if BOTH --dsn flag AND granular flags are provided.
func ResolveConnectionParams(
	dsnFlag string,
	granularFlags *GranularConnFlags,
	cloudFlags *CloudFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*myload.ConnectionConfig, error) {
	if granularFlags == nil {
		granularFlags = &GranularConnFlags{}
	}
	if cloudFlags == nil {
		cloudFlags = &CloudFlags{}
	}
	if envVars == nil {
		envVars = &EnvVars{}
	}
	if projectConfig == nil {
		projectConfig = &config.ProjectConfig{}
	}

	if dsnFlag != "" && !granularFlags.IsEmpty() {
		return nil, fmt.Errorf(
			"cannot specify both --dsn and granular flags (--host, --port, --user, --tls)\n"+
				"Choose one approach:\n"+
				"  1. DSN: --dsn \"loader:secret@tcp(localhost:3306)/shop\"\n"+
				"  2. Granular flags: --host localhost --port 3306 --user loader -d shop\n"+
				"  3. Environment variables: export MYSQL_HOST=localhost MYSQL_USER=loader MYSQL_DB=shop: %w",
			myload.ErrInvalidConfig,
		)
	}

	var cfg *myload.ConnectionConfig
	var err error

	switch {
	case dsnFlag != "":
		cfg, err = resolveFromDSN(dsnFlag, granularFlags, envVars)
	case granularFlags.IsEmpty() && envVars.MYSQL_DSN != "":
		cfg, err = resolveFromDSN(envVars.MYSQL_DSN, granularFlags, envVars)
	default:
		cfg, err = resolveFromGranularParams(granularFlags, envVars, &projectConfig.Connection)
	}
	if err != nil {
		return nil, err
	}

	if err := applyCloudAuth(cfg, cloudFlags, envVars, &projectConfig.Connection); err != nil {
		return nil, err
	}

	if err := checkRequired(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveFromDSN parses a DSN. Password falls back to $MYSQL_PASS when the
// DSN has none.
func resolveFromDSN(dsn string, flags *GranularConnFlags, envVars *EnvVars) (*myload.ConnectionConfig, error) {
	cfg, err := ParseConnectionString(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid DSN: %w", err)
	}

	if flags.Database != "" {
		cfg.Database = flags.Database
	}
	if cfg.Password == "" {
		cfg.Password = envVars.MYSQL_PASS
	}
	cfg.TLSCA = firstNonEmpty(flags.TLSCA, envVars.MYSQL_TLS_CA)
	return cfg, nil
}

// resolveFromGranularParams builds ConnectionConfig from granular flags,
// environment variables and the project file.
func resolveFromGranularParams(
	flags *GranularConnFlags,
	envVars *EnvVars,
	pc *config.ConnectionConfig,
) (*myload.ConnectionConfig, error) {
	cfg := &myload.ConnectionConfig{
		AuthMethod: myload.AuthMethodStandard,
		Host:       firstNonEmpty(flags.Host, envVars.MYSQL_HOST, pc.Host),
		Username:   firstNonEmpty(flags.Username, envVars.MYSQL_USER, pc.Username),
		Password:   envVars.MYSQL_PASS,
		Database:   firstNonEmpty(flags.Database, envVars.MYSQL_DB, pc.Database),
		TLS:        firstNonEmpty(flags.TLS, envVars.MYSQL_TLS, pc.TLS),
		TLSCA:      firstNonEmpty(flags.TLSCA, envVars.MYSQL_TLS_CA, pc.TLSCA),
	}

	// Port: flag > MYSQL_PORT > myload.yaml > default
	switch {
	case flags.Port != 0:
		cfg.Port = flags.Port
	case envVars.MYSQL_PORT != "":
		port, err := strconv.Atoi(envVars.MYSQL_PORT)
		if err != nil {
			return nil, fmt.Errorf("invalid $MYSQL_PORT value '%s': must be an integer: %w", envVars.MYSQL_PORT, myload.ErrInvalidConfig)
		}
		cfg.Port = port
	case pc.Port != 0:
		cfg.Port = pc.Port
	default:
		cfg.Port = myload.DefaultPort
	}

	return cfg, nil
}

// applyCloudAuth selects the auth method. Flags win over myload.yaml;
// environment variables only supply values, never switch the method.
func applyCloudAuth(cfg *myload.ConnectionConfig, flags *CloudFlags, env *EnvVars, pc *config.ConnectionConfig) error {
	method, err := myload.ParseAuthMethod(pc.AuthMethod)
	if err != nil {
		return err
	}

	azureRequested := flags.Azure || flags.AzureTenantID != "" || flags.AzureClientID != ""
	selected := 0
	if flags.AWS {
		method = myload.AuthMethodAWSIAM
		selected++
	}
	if azureRequested {
		method = myload.AuthMethodAzureEntraID
		selected++
	}
	if flags.GoogleInstance != "" {
		method = myload.AuthMethodGoogleIAM
		selected++
	}
	if selected > 1 {
		return fmt.Errorf("--aws, --azure and --google-instance are mutually exclusive: %w", myload.ErrInvalidConfig)
	}

	cfg.AuthMethod = method
	switch method {
	case myload.AuthMethodAWSIAM:
		cfg.AWSRegion = firstNonEmpty(flags.AWSRegion, env.AWS_REGION, pc.AWSRegion)
	case myload.AuthMethodAzureEntraID:
		cfg.AzureTenantID = firstNonEmpty(flags.AzureTenantID, env.AZURE_TENANT_ID, pc.AzureTenantID)
		cfg.AzureClientID = firstNonEmpty(flags.AzureClientID, env.AZURE_CLIENT_ID, pc.AzureClientID)
		cfg.AzureClientSecret = env.AZURE_CLIENT_SECRET
	case myload.AuthMethodGoogleIAM:
		cfg.GoogleInstance = firstNonEmpty(flags.GoogleInstance, pc.GoogleInstance)
	}
	return nil
}

// checkRequired reports every missing required parameter at once.
func checkRequired(cfg *myload.ConnectionConfig) error {
	var errs []error
	if cfg.Host == "" && cfg.AuthMethod != myload.AuthMethodGoogleIAM {
		errs = append(errs, fmt.Errorf("host is required (--host, $MYSQL_HOST or myload.yaml): %w", myload.ErrInvalidConfig))
	}
	if cfg.Username == "" {
		errs = append(errs, fmt.Errorf("user is required (--user, $MYSQL_USER or myload.yaml): %w", myload.ErrInvalidConfig))
	}
	if cfg.Database == "" {
		errs = append(errs, fmt.Errorf("database is required (--database, $MYSQL_DB or myload.yaml): %w", myload.ErrInvalidConfig))
	}
	if cfg.AuthMethod == myload.AuthMethodGoogleIAM && cfg.GoogleInstance == "" {
		errs = append(errs, fmt.Errorf("google-iam auth requires --google-instance: %w", myload.ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
