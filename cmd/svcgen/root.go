package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "svcgen",
	Short: "svcgen generates a Go client library from a service definition",
	Long: `svcgen reads a botocore-style api-2.json document (or a Smithy
model, via --smithy) and emits one Go source file per generated class
(each operation's Input and Result classes and the structures they
reference) plus one method per operation on the shared Client in
client.go, each merged into any existing file of the same name rather
than overwritten.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
