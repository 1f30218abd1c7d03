package main

import (
	"os"

	"stencil/cmd/stencil/commands"
	"stencil/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
