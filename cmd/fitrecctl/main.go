package main

import (
	"os"

	"github.com/meltforce/fitrec/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
