// Command envschema checks that the process environment satisfies one or more schema documents.
//
// Example:
//
//	envschema check deploy/api.yaml deploy/worker.yaml
//	envschema check --output json deploy/api.yaml
package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the command line and returns the process exit code.
// Errors go to stderr because the root command silences cobra's own reporting.
func run(args []string, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "envschema: %v\n", err) //nolint:errcheck
		return 1
	}
	return 0
}
