// Package main is the entry point for the melia terminal client.
package main

import (
	"fmt"
	"os"

	"github.com/riordanpawley/melia/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
