package shell

import (
	"context"
	"fmt"
	"os/exec"
)

// Result represents the outcome of a command execution
type Result struct {
	Output   string `json:"output"`
	Error    string `json:"error,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// Runner executes a single command line and reports its outcome.
// Implementations must run commands one at a time; the simulator reports
// results through a fixed set of output files, so overlapping invocations
// would race on those paths.
type Runner interface {
	ExecuteCommand(ctx context.Context, command string) (*Result, error)
}

// Local runs commands through the local shell in a fixed working directory.
type Local struct {
	workDir string
}

// NewLocal creates a local command runner rooted at workDir
func NewLocal(workDir string) *Local {
	return &Local{workDir: workDir}
}

// ExecuteCommand runs a command via `sh -c` and captures combined output.
// A non-zero exit code is not an error here; it is reported in the Result.
// An error is returned only when the command could not run to completion,
// including cancellation or timeout of ctx.
func (l *Local) ExecuteCommand(ctx context.Context, command string) (*Result, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = l.workDir

	output, err := cmd.CombinedOutput()
	result := &Result{Output: string(output)}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("command interrupted: %w", ctxErr)
	}

	if err != nil {
		result.Error = err.Error()
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return nil, fmt.Errorf("failed to run command: %w", err)
		}
		result.ExitCode = exitErr.ExitCode()
	}

	return result, nil
}
