// Package main is the entry point for the pspctl CLI
package main

import (
	"os"

	"github.com/wastepay/pspctl/cmd"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCodeFor(err))
	}
}
