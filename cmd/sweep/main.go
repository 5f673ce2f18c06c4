// Command sweep reports best-action runs in sensitivity-analysis tables.
package main

import (
	"os"

	"github.com/dealscope/sweep/internal/cli"
)

func main() {
	os.Exit(cli.Main())
}
