package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/vvka-141/myload/internal/config"
	"github.com/vvka-141/myload/pkg/myload"
)

// loadProjectConfig loads .env and then the project configuration, from
// path when given, else from myload.yaml in the working directory.
// A missing default file yields an empty config; a missing explicit file is an error.
func loadProjectConfig(path string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	var (
		projectCfg *config.ProjectConfig
		err        error
	)
	if path != "" {
		projectCfg, err = config.LoadFile(path)
	} else {
		projectCfg, err = config.Load(".")
		if errors.Is(err, config.ErrConfigNotFound) {
			return &config.ProjectConfig{}, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w: %w", configDisplayName(path), myload.ErrInvalidConfig, err)
	}
	return projectCfg, nil
}

func configDisplayName(path string) string {
	if path == "" {
		return config.ConfigFileName
	}
	return path
}

// resolveSetting applies flag > environment variable > myload.yaml precedence
// to a required load setting such as the target table.
func resolveSetting(flagValue, envVar, fileValue, flagName string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv(envVar); v != "" {
		return v, nil
	}
	if fileValue != "" {
		return fileValue, nil
	}
	return "", fmt.Errorf("%s is required (--%s, $%s or myload.yaml): %w", flagName, flagName, envVar, myload.ErrInvalidConfig)
}

// logConnectionVerbose logs connection details when verbose mode is enabled.
func logConnectionVerbose(logger myload.Logger, conn *myload.ConnectionConfig) {
	logger.Verbose("Connection resolved:")
	if conn.AuthMethod == myload.AuthMethodGoogleIAM {
		logger.Verbose("  Instance: %s", conn.GoogleInstance)
	} else {
		logger.Verbose("  Address: %s", conn.Address())
	}
	logger.Verbose("  User: %s", conn.Username)
	logger.Verbose("  Database: %s", conn.Database)
	if conn.TLS != "" {
		logger.Verbose("  TLS: %s", conn.TLS)
	}
	if conn.TLSCA != "" {
		logger.Verbose("  TLS CA: %s", conn.TLSCA)
	}
	logger.Verbose("  Auth Method: %s", conn.AuthMethod)
}
