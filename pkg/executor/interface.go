package executor

import "context"

// Executor defines the interface for running external commands.
// Every soffice, pdftoppm, ffmpeg and powershell invocation in the
// pipeline goes through it, so tests can substitute a fake.
type Executor interface {
	// Execute runs a command and returns its stdout.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteInDir runs a command with a specific working directory.
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
	// LookPath reports the resolved path of a binary, or an error if it
	// is not installed.
	LookPath(name string) (string, error)
}
