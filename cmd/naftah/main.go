package main

import (
	"os"

	"github.com/naftah-lang/naftah/cmd/naftah/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
