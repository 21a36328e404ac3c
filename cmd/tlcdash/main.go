// Package main provides the entry point for the tlcdash CLI.
package main

import (
	"errors"
	"os"

	"github.com/FLFTraining/TLC-Dashboard/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// SilenceErrors suppresses Cobra's own output
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
