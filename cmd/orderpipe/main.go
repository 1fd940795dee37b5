package main

import (
	"os"

	"github.com/shivamkr/orderpipe/cmd/orderpipe/commands"
)

// main is the entry point for the orderpipe CLI.
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
