package ffmpeg

import (
	"context"
	"os/exec"
	"strings"
	"testing"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestRunSuccess(t *testing.T) {
	requireShell(t)

	res, err := NewExecRunner("sh").Run(context.Background(), []string{"-c", "echo frame=10; echo progress >&2"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("expected exit 0, got %d", res.ExitCode)
	}
	if strings.TrimSpace(string(res.Stdout)) != "frame=10" {
		t.Errorf("unexpected stdout %q", res.Stdout)
	}
	if strings.TrimSpace(string(res.Stderr)) != "progress" {
		t.Errorf("unexpected stderr %q", res.Stderr)
	}
}

func TestRunNonZeroExitKeepsStderr(t *testing.T) {
	requireShell(t)

	res, err := NewExecRunner("sh").Run(context.Background(), []string{"-c", "echo 'No such filter: drawtxt' >&2; exit 3"})
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if res.ExitCode != 3 {
		t.Errorf("expected exit 3, got %d", res.ExitCode)
	}
	if !strings.Contains(string(res.Stderr), "No such filter: drawtxt") {
		t.Errorf("expected stderr to be captured, got %q", res.Stderr)
	}
}

func TestRunMissingBinary(t *testing.T) {
	res, err := NewExecRunner("/nonexistent/ffmpeg-binary").Run(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if res.ExitCode != -1 {
		t.Errorf("expected exit -1 when the process never started, got %d", res.ExitCode)
	}
}

func TestDefaultBinary(t *testing.T) {
	if NewExecRunner("").bin != "ffmpeg" {
		t.Error("expected ffmpeg as default binary")
	}
}
