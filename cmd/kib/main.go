// Package main is the entry point for the kib CLI tool.
package main

import (
	"os"

	"github.com/kibrary/kibrary/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
