// Package logger provides the small set of user-facing output helpers used
// across commands. Output style respects plain mode.
package logger

import (
	"fmt"
	"os"

	"github.com/blueprintvc/bpvc/internal/config"
)

// Debug prints diagnostic output to stderr when debug mode is enabled.
func Debug(format string, args ...any) {
	if config.IsDebug() {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// Info prints a plain informational message to stdout.
func Info(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// Success prints a success message to stdout.
func Success(format string, args ...any) {
	if config.IsPlain() {
		fmt.Printf(format+"\n", args...)
	} else {
		fmt.Printf("✓ "+format+"\n", args...)
	}
}

// Error prints an error message to stderr.
func Error(format string, args ...any) {
	if config.IsPlain() {
		fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	} else {
		fmt.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
	}
}

// Warn prints a warning message to stderr.
func Warn(format string, args ...any) {
	if config.IsPlain() {
		fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
	} else {
		fmt.Fprintf(os.Stderr, "! "+format+"\n", args...)
	}
}
