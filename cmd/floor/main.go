package main

import (
	"os"

	"github.com/rustyeddy/autotrader/cmd/floor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
