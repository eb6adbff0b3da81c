// Package main is the entry point for the snip CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/snip/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
