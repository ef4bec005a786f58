package testinfra

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
)

const (
	MySQLImage    = "mysql:8.0"
	MySQLUser     = "loader"
	MySQLPassword = "loader"
	MySQLDatabase = "myload"

	containerCertDir = "/etc/mysql/certs"
)

// MySQLContainer is a running server with local_infile enabled. DSN is a
// go-sql-driver DSN for MySQLUser on MySQLDatabase.
type MySQLContainer struct {
	*mysql.MySQLContainer
	DSN string
}

// StartMySQL starts a plain-TCP server. The config file is written to dir;
// each of settings is appended to its [mysqld] section as one line.
func StartMySQL(ctx context.Context, dir string, settings ...string) (*MySQLContainer, error) {
	var extra strings.Builder
	for _, s := range settings {
		extra.WriteString(s + "\n")
	}
	confPath, err := writeServerConfig(dir, extra.String())
	if err != nil {
		return nil, err
	}

	ctr, err := mysql.Run(ctx,
		MySQLImage,
		mysql.WithUsername(MySQLUser),
		mysql.WithPassword(MySQLPassword),
		mysql.WithDatabase(MySQLDatabase),
		mysql.WithConfigFile(confPath),
	)
	if err != nil {
		return nil, fmt.Errorf("start mysql: %w", err)
	}
	return withDSN(ctx, ctr)
}

// StartTLSMySQL starts a server presenting the certificate in certPaths.
func StartTLSMySQL(ctx context.Context, certPaths *CertPaths) (*MySQLContainer, error) {
	confPath, err := writeServerConfig(filepath.Dir(certPaths.CACert), fmt.Sprintf(`ssl_ca=%[1]s/ca.pem
ssl_cert=%[1]s/server-cert.pem
ssl_key=%[1]s/server-key.pem
`, containerCertDir))
	if err != nil {
		return nil, err
	}

	// mysqld runs unprivileged inside the container and must be able to read the key.
	files := []testcontainers.ContainerFile{
		{HostFilePath: certPaths.CACert, ContainerFilePath: containerCertDir + "/ca.pem", FileMode: 0644},
		{HostFilePath: certPaths.ServerCert, ContainerFilePath: containerCertDir + "/server-cert.pem", FileMode: 0644},
		{HostFilePath: certPaths.ServerKey, ContainerFilePath: containerCertDir + "/server-key.pem", FileMode: 0644},
	}

	ctr, err := mysql.Run(ctx,
		MySQLImage,
		mysql.WithUsername(MySQLUser),
		mysql.WithPassword(MySQLPassword),
		mysql.WithDatabase(MySQLDatabase),
		mysql.WithConfigFile(confPath),
		testcontainers.WithFiles(files...),
	)
	if err != nil {
		return nil, fmt.Errorf("start TLS mysql: %w", err)
	}
	return withDSN(ctx, ctr)
}

func withDSN(ctx context.Context, ctr *mysql.MySQLContainer) (*MySQLContainer, error) {
	dsn, err := ctr.ConnectionString(ctx)
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get connection string: %w", err)
	}
	return &MySQLContainer{MySQLContainer: ctr, DSN: dsn}, nil
}

func writeServerConfig(dir, extra string) (string, error) {
	conf := "[mysqld]\nlocal_infile=1\n" + extra

	path := filepath.Join(dir, "my.cnf")
	if err := os.WriteFile(path, []byte(conf), 0644); err != nil {
		return "", fmt.Errorf("write my.cnf: %w", err)
	}
	return path, nil
}
