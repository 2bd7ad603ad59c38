package main

import (
	"os"

	"github.com/booksmith-dev/booksmith/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
