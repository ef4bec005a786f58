package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vvka-141/myload/internal/files/loader"
	"github.com/vvka-141/myload/pkg/myload"
)

var csvFlags loadFlags

var csvCmd = &cobra.Command{
	Use:   "csv <file>",
	Short: "Load a CSV file with a header row into a table",
	Long: `Load a comma-separated file into an existing table.

The first line is treated as a header and skipped. Fields may be enclosed in
double quotes and rows end with a newline. The file is copied byte for byte
into a staging file and loaded with LOAD DATA LOCAL INFILE; columns are
matched by position.`,
	Example: `  # Granular flags, password from the environment
  MYSQL_PASS=secret myload csv ./products.csv -H localhost -u loader -d shop --table products

  # DSN
  myload csv ./products.csv --dsn "loader:secret@tcp(db:3306)/shop?tls=true" --table products

  # AWS RDS with IAM authentication
  myload csv ./products.csv -H mydb.abc123.us-west-2.rds.amazonaws.com -u iam_user -d shop --aws --table products`,
	Args:              RequireInputFile,
	ValidArgsFunction: completeInputFiles,
	RunE:              runCSV,
}

func init() {
	rootCmd.AddCommand(csvCmd)
	addLoadFlags(csvCmd, &csvFlags)
}

func runCSV(cmd *cobra.Command, args []string) error {
	path := args[0]

	env, err := prepareLoad(cmd, &csvFlags)
	if err != nil {
		return err
	}

	data, err := loader.NewLoader(env.fs).ReadCSV(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(env.out, "Read %d bytes from %s\n", len(data), path)
	fmt.Fprintf(env.out, "Uploading to %s\n", describeTarget(env.conn, env.table))

	req := myload.CSVUpload{Table: env.table, Data: data}
	if _, err := env.uploader().UploadCSV(commandContext(cmd), *env.conn, req); err != nil {
		return err
	}

	fmt.Fprintln(env.out, "Upload successful!")
	return nil
}
