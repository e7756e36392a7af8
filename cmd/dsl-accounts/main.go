// Package main is the entry point for the dsl-accounts CLI.
package main

import (
	"os"

	"github.com/hamishcoleman/dsl-accounts/cmd/dsl-accounts/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
