package shell

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestLocalExecuteCommand(t *testing.T) {
	local := NewLocal(t.TempDir())

	result, err := local.ExecuteCommand(context.Background(), "echo hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ExitCode != 0 {
		t.Errorf("expected exit code 0, got %d", result.ExitCode)
	}
	if !strings.Contains(result.Output, "hello") {
		t.Errorf("expected output to contain 'hello', got %q", result.Output)
	}
}

func TestLocalNonZeroExit(t *testing.T) {
	local := NewLocal(t.TempDir())

	result, err := local.ExecuteCommand(context.Background(), "exit 3")
	if err != nil {
		t.Fatalf("non-zero exit must not be an error: %v", err)
	}
	if result.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", result.ExitCode)
	}
}

func TestLocalWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	local := NewLocal(dir)

	result, err := local.ExecuteCommand(context.Background(), "pwd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(result.Output, dir) {
		t.Errorf("expected command to run in %s, got %q", dir, result.Output)
	}
}

func TestLocalTimeout(t *testing.T) {
	local := NewLocal(t.TempDir())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := local.ExecuteCommand(ctx, "sleep 5")
	if err == nil {
		t.Fatal("expected a timeout error")
	}
}
