package main

import (
	"os"

	"github.com/daydemir/herbie/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
