// Package main provides the dfextract CLI application.
// dfextract builds per-request dataset files from an i2b2 clinical
// data warehouse.
package main

import (
	"os"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
