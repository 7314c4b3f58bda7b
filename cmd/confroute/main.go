package main

import (
	"os"

	"github.com/confroute/confroute/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Commands print their own diagnostics; only the exit code remains.
		os.Exit(cli.GetExitCode(err))
	}
}
