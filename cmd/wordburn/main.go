package main

import (
	"os"

	"github.com/mkotnik/wordburn/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
