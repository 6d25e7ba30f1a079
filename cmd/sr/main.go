// Package main is the entry point for the sr CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ruleshub/sr/cmd/sr/commands"
	srerrors "github.com/ruleshub/sr/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		code := srerrors.ExitSystem
		var exitErr *srerrors.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.Code
			if exitErr.Suggestion != "" {
				fmt.Fprintf(os.Stderr, "%s\n", exitErr.Suggestion)
			}
		}
		os.Exit(code)
	}
}
