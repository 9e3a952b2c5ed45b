//go:build linux || darwin || freebsd || windows

package main

import (
	"os"

	"github.com/pranshuparmar/procargs/internal/app"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = ""

func main() {
	if version != "" {
		app.Version = version
	}
	os.Exit(app.Execute())
}
