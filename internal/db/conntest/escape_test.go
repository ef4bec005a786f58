//go:build conntest

package conntest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vvka-141/myload/internal/testinfra"
)

// awkwardName is a staging file name the server must echo back exactly for
// the driver's local-file allowlist to match.
const awkwardName = `o'brien\data.csv`

func TestPathEscaping_DefaultSQLMode(t *testing.T) {
	config := parseConnString(t, stdContainer)
	loadFileSucceeds(t, config, awkwardName)
}

func TestPathEscaping_NoBackslashEscapes(t *testing.T) {
	ctx := context.Background()

	ctr, err := testinfra.StartMySQL(ctx, t.TempDir(), "sql_mode=NO_BACKSLASH_ESCAPES")
	require.NoError(t, err)
	t.Cleanup(func() { ctr.Terminate(ctx) }) //nolint:errcheck

	config := parseConnString(t, ctr)
	loadFileSucceeds(t, config, awkwardName)
}
