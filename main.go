package main

import (
	"github.com/sbpo/datapoints/cmd"
	"github.com/sbpo/datapoints/internal/version"
)

// Version may be set at build time via -ldflags "-X main.Version=...".
// If left as "dev", it is derived from the Go build info.
var Version = "dev"

func main() {
	cmd.SetVersion(version.Resolve(Version))
	cmd.Execute()
}
