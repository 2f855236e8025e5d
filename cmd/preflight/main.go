package main

import (
	"os"

	"github.com/preflight/preflight/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
