// Package main provides the entry point for the mhccurate CLI tool.
package main

import (
	"github.com/openvax/mhccurate/cmd/mhccurate/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
