package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vvka-141/myload/pkg/myload"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	original := os.Args
	os.Args = append([]string{"myload"}, args...)
	t.Cleanup(func() { os.Args = original })
}

func TestRun_PanicExitCode(t *testing.T) {
	t.Setenv("MYLOAD_TEST_PANIC", "1")
	withArgs(t, "--version")

	assert.Equal(t, myload.ExitPanic, run())
}

func TestRun_VersionSucceeds(t *testing.T) {
	t.Setenv("MYLOAD_TEST_PANIC", "")
	withArgs(t, "--version")

	assert.Equal(t, myload.ExitSuccess, run())
}

func TestRun_MissingArgumentIsUsageError(t *testing.T) {
	t.Setenv("MYLOAD_TEST_PANIC", "")
	t.Chdir(t.TempDir())
	withArgs(t, "csv")

	assert.Equal(t, myload.ExitUsageError, run())
}
