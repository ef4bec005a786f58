package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vvka-141/myload/pkg/myload"
)

var rootCmd = &cobra.Command{
	Use:   "myload",
	Short: "Bulk-load CSV files and numeric columns into MySQL",
	Long: `myload stages your data in a temporary file and loads it into a MySQL table
with a single LOAD DATA LOCAL INFILE statement. The temporary file is removed
before myload exits, whether the load succeeded or not.

The server must allow local infile (SET GLOBAL local_infile = 1).

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or arguments
  11 - Database connection failed
  13 - LOAD DATA statement failed
  14 - Staging file could not be written
  15 - Built without MySQL support (-tags nomysql)`,
	SilenceUsage: true,
}

// configPath is the --config flag shared by all commands.
var configPath string

// Execute runs the root command. SIGINT and SIGTERM cancel the running load.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a myload.yaml file (default: ./myload.yaml if present)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", err, myload.ErrUsage)
	})
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// commandContext returns the context the command was executed with.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
