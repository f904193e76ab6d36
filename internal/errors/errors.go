// Package errors provides consistent error presentation for the CLI:
// every user-facing failure is logged, printed with one prefix, and
// exits with code 1.
package errors

import (
	"fmt"
	"os"

	"github.com/averyquinn/daybook/internal/logger"
)

// Format renders an error with the standard "Error: " prefix.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs the error and exits with code 1. No-op on nil.
func Fatal(err error) {
	if err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
