package main

import (
	"os"

	"github.com/grovetools/assetpipe/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
