// Command portsight is the entry point for the portsight TCP
// reconnaissance tool.
package main

import (
	"github.com/portsight/portsight/cmd/cli"
)

// Build information - set by ldflags during release builds.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

func main() {
	cli.SetVersion(version, commit, buildTime)
	cli.Execute()
}
