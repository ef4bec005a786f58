package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vvka-141/myload/pkg/myload"
)

// RequireInputFile validates that exactly one input file argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireInputFile(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <file>

Usage: %s

Example:
  %s ./data.csv --table products: %w`, cmd.UseLine(), cmd.CommandPath(), myload.ErrUsage)
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d: %w", len(args), myload.ErrUsage)
	}
	return nil
}
