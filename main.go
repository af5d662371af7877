// Package main is the entry point for propedit.
package main

import (
	"os"

	"github.com/billie-coop/propedit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
