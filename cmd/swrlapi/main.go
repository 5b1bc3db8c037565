// Command swrlapi evaluates SWRL built-ins and builds SQWRL result tables.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sachitrajbhandari/swrlapi/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)

		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		// Flag and argument errors from cobra
		os.Exit(cli.ExitCommandError)
	}
}
