// Command numtower evaluates numeric tower operations and runs
// conformance scenarios.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/numtower/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "numtower: %v\n", err)
	}
	os.Exit(cli.GetExitCode(err))
}
