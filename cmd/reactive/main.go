package main

import (
	"os"

	"github.com/go-drift/reactive/cmd/reactive/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
