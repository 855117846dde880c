package main

import (
	"os"

	"github.com/lattice-lang/pyfront/cmd/pyfront/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
