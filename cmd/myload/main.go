package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/myload/internal/cli"
	"github.com/vvka-141/myload/pkg/myload"
)

func main() {
	os.Exit(run())
}

// run executes the command line and turns its outcome into an exit code.
// A panic is reported with its stack and exits with myload.ExitPanic.
func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			code = myload.ExitPanic
		}
	}()

	if os.Getenv("MYLOAD_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	return myload.ExitCodeForError(cli.Execute())
}
