// intltel is a CLI tool and HTTP service that resolves telephone numbers to countries.
package main

import (
	"github.com/hightemp/intltel/internal/cli"
)

// Build information (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.BuildTime = buildTime
	cli.Execute()
}
