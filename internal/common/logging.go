// Package common holds small helpers shared by the CLI commands.
package common

import (
	"log/slog"
	"os"
)

// NewLogger builds the JSON logger used by every command. Quiet mode keeps
// only errors.
func NewLogger(quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
