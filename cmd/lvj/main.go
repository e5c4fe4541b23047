package main

import (
	"os"

	"github.com/bnema/levent-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
