package cli

import (
	"github.com/spf13/cobra"
	"github.com/vvka-141/myload/internal/config"
	"github.com/vvka-141/myload/internal/db"
	"github.com/vvka-141/myload/pkg/myload"
)

// connectionFlags holds the common connection-related flag values.
type connectionFlags struct {
	dsn            string
	host           string
	port           int
	username       string
	database       string
	tls            string
	tlsCA          string
	aws            bool
	awsRegion      string
	azure          bool
	azureTenantID  string
	azureClientID  string
	googleInstance string
}

// addConnectionFlags registers the connection flags on cmd.
func addConnectionFlags(cmd *cobra.Command, f *connectionFlags) {
	flags := cmd.Flags()

	flags.StringVar(&f.dsn, "dsn", "",
		"MySQL DSN in go-sql-driver format, e.g. \"user:pass@tcp(host:3306)/db?tls=true\".\n"+
			"Mutually exclusive with --host, --port, --user and --tls.\n"+
			"Alternative: $MYSQL_DSN")
	flags.StringVarP(&f.host, "host", "H", "",
		"MySQL server host\n"+
			"Precedence: --host > $MYSQL_HOST > myload.yaml")
	flags.IntVarP(&f.port, "port", "P", 0,
		"MySQL server port\n"+
			"Precedence: --port > $MYSQL_PORT > myload.yaml > 3306")
	flags.StringVarP(&f.username, "user", "u", "",
		"MySQL user (or $MYSQL_USER). The password is read from $MYSQL_PASS")
	flags.StringVarP(&f.database, "database", "d", "",
		"Target database (or $MYSQL_DB). Overrides the database of a DSN")
	flags.StringVar(&f.tls, "tls", "",
		"TLS mode: true|false|skip-verify|preferred (or $MYSQL_TLS)")
	flags.StringVar(&f.tlsCA, "tls-ca", "",
		"PEM file with the CA that signed the server certificate (or $MYSQL_TLS_CA)")

	flags.BoolVar(&f.aws, "aws", false,
		"Enable AWS RDS IAM authentication\n"+
			"Uses the default AWS credential chain")
	flags.StringVar(&f.awsRegion, "aws-region", "",
		"AWS region of the RDS instance (overrides $AWS_REGION)")
	flags.BoolVar(&f.azure, "azure", false,
		"Enable Azure Entra ID authentication\n"+
			"Uses DefaultAzureCredential unless $AZURE_CLIENT_SECRET is set")
	flags.StringVar(&f.azureTenantID, "azure-tenant-id", "",
		"Azure AD tenant/directory ID (overrides $AZURE_TENANT_ID)")
	flags.StringVar(&f.azureClientID, "azure-client-id", "",
		"Azure AD application/client ID (overrides $AZURE_CLIENT_ID)")
	flags.StringVar(&f.googleInstance, "google-instance", "",
		"Cloud SQL instance connection name (project:region:instance)\n"+
			"Enables Cloud SQL IAM authentication")

	_ = cmd.RegisterFlagCompletionFunc("tls", completeTLSModes)
}

// resolveConnectionFromFlags resolves connection configuration from flags,
// environment variables and the project config.
func resolveConnectionFromFlags(f connectionFlags, projectCfg *config.ProjectConfig) (*myload.ConnectionConfig, error) {
	granularFlags := &db.GranularConnFlags{
		Host:     f.host,
		Port:     f.port,
		Username: f.username,
		Database: f.database,
		TLS:      f.tls,
		TLSCA:    f.tlsCA,
	}

	cloudFlags := &db.CloudFlags{
		AWS:            f.aws,
		AWSRegion:      f.awsRegion,
		Azure:          f.azure,
		AzureTenantID:  f.azureTenantID,
		AzureClientID:  f.azureClientID,
		GoogleInstance: f.googleInstance,
	}

	return db.ResolveConnectionParams(f.dsn, granularFlags, cloudFlags, db.LoadFromEnvironment(), projectCfg)
}
