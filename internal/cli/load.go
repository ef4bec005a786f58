package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vvka-141/myload/internal/config"
	"github.com/vvka-141/myload/internal/files/filesystem"
	"github.com/vvka-141/myload/internal/logging"
	"github.com/vvka-141/myload/internal/services"
	"github.com/vvka-141/myload/pkg/myload"
)

// newUploader builds the uploader used by the load commands. Tests replace it.
var newUploader = services.NewDefaultUploader

// loadFlags holds the flags shared by the csv and column commands.
type loadFlags struct {
	connection connectionFlags
	table      string
	stagingDir string
}

func addLoadFlags(cmd *cobra.Command, f *loadFlags) {
	addConnectionFlags(cmd, &f.connection)

	cmd.Flags().StringVarP(&f.table, "table", "t", "",
		"Target table\n"+
			"Precedence: --table > $MYSQL_TABLE > myload.yaml")
	cmd.Flags().StringVar(&f.stagingDir, "staging-dir", "",
		"Directory for the temporary staging file (default: system temp dir)\n"+
			"Must be readable by this process; the server never sees it")

	_ = cmd.RegisterFlagCompletionFunc("staging-dir", completeDirectories)
}

// loadEnv is everything a load command resolves before reading its input.
type loadEnv struct {
	logger     myload.Logger
	fs         filesystem.FileSystemProvider
	projectCfg *config.ProjectConfig
	conn       *myload.ConnectionConfig
	table      string
	stagingDir string
	out        io.Writer
}

// prepareLoad resolves config, connection and target table for cmd.
func prepareLoad(cmd *cobra.Command, f *loadFlags) (*loadEnv, error) {
	logger := logging.NewWriterLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))

	projectCfg, err := loadProjectConfig(configPath)
	if err != nil {
		return nil, err
	}

	conn, err := resolveConnectionFromFlags(f.connection, projectCfg)
	if err != nil {
		return nil, err
	}

	table, err := resolveSetting(f.table, "MYSQL_TABLE", projectCfg.Table, "table")
	if err != nil {
		return nil, err
	}

	stagingDir := f.stagingDir
	if stagingDir == "" {
		stagingDir = projectCfg.StagingDir
	}

	return &loadEnv{
		logger:     logger,
		fs:         filesystem.NewOSFileSystem(),
		projectCfg: projectCfg,
		conn:       conn,
		table:      table,
		stagingDir: stagingDir,
		out:        cmd.OutOrStdout(),
	}, nil
}

func (e *loadEnv) uploader() myload.Uploader {
	logConnectionVerbose(e.logger, e.conn)
	if e.stagingDir != "" {
		e.logger.Verbose("  Staging Dir: %s", e.stagingDir)
	}
	return newUploader(e.logger, e.fs, e.stagingDir)
}

// describeTarget renders the destination the way it is printed before a load.
func describeTarget(conn *myload.ConnectionConfig, table string) string {
	if conn.AuthMethod == myload.AuthMethodGoogleIAM {
		return fmt.Sprintf("%s.%s on %s", conn.Database, table, conn.GoogleInstance)
	}
	return fmt.Sprintf("%s.%s on %s", conn.Database, table, conn.Address())
}
