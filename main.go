package main

import (
	"os"

	"github.com/verdantlab/gardensense/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
