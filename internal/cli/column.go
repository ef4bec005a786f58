package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vvka-141/myload/internal/files/loader"
	"github.com/vvka-141/myload/pkg/myload"
)

var columnFlags struct {
	loadFlags
	column string
}

var columnCmd = &cobra.Command{
	Use:   "column <file>",
	Short: "Load a file of numbers into a single table column",
	Long: `Load one floating-point value per row into a single column.

The input file holds one number per line. Blank lines and lines starting
with '#' are skipped. Values are written with ten significant digits.`,
	Example: `  myload column ./readings.txt -H localhost -u loader -d metrics --table readings --column value

  # Target from myload.yaml (table: readings, column: value)
  myload column ./readings.txt`,
	Args:              RequireInputFile,
	ValidArgsFunction: completeInputFiles,
	RunE:              runColumn,
}

func init() {
	rootCmd.AddCommand(columnCmd)
	addLoadFlags(columnCmd, &columnFlags.loadFlags)
	columnCmd.Flags().StringVarP(&columnFlags.column, "column", "c", "",
		"Target column\n"+
			"Precedence: --column > $MYSQL_COLUMN > myload.yaml")
}

func runColumn(cmd *cobra.Command, args []string) error {
	path := args[0]

	env, err := prepareLoad(cmd, &columnFlags.loadFlags)
	if err != nil {
		return err
	}

	column, err := resolveSetting(columnFlags.column, "MYSQL_COLUMN", env.projectCfg.Column, "column")
	if err != nil {
		return err
	}

	values, err := loader.NewLoader(env.fs).ReadValues(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.out, "Read %d values from %s\n", len(values), path)
	fmt.Fprintf(env.out, "Uploading to %s (%s)\n", describeTarget(env.conn, env.table), column)

	req := myload.ColumnUpload{Table: env.table, Column: column, Values: values}
	if _, err := env.uploader().UploadColumn(commandContext(cmd), *env.conn, req); err != nil {
		return err
	}

	fmt.Fprintln(env.out, "Upload successful!")
	return nil
}
