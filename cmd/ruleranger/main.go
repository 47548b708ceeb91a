// Package main is the entry point for the ruleranger CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/ruleranger/cmd/ruleranger/commands"
	"github.com/thoreinstein/ruleranger/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	if !errors.Is(err, commands.ErrSilent) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, detail := range errors.GetDetails(err) {
			fmt.Fprintf(os.Stderr, "  %s\n", detail)
		}
		if s := errors.SuggestionOf(err); s != "" {
			fmt.Fprintln(os.Stderr, s)
		}
	}
	os.Exit(errors.ExitCode(err))
}
