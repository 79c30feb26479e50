// Command mtstash ingests seismic moment-tensor catalogs into a local stash.
package main

import (
	"os"

	"github.com/seismotools/mtstash/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
