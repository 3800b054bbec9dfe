// Package ffmpeg runs the external media tool and captures what it prints.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Result is what one invocation left behind. Stderr is kept verbatim: it is
// the only diagnostic ffmpeg gives when a filter graph or input is rejected.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

type Runner interface {
	Run(ctx context.Context, args []string) (Result, error)
}

// ExecRunner runs a binary from PATH (or an absolute path) with exec.
type ExecRunner struct {
	bin string
}

func NewExecRunner(bin string) *ExecRunner {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &ExecRunner{bin: bin}
}

// Run blocks until the process exits. A non-zero exit returns the
// *exec.ExitError together with the captured output.
func (r *ExecRunner) Run(ctx context.Context, args []string) (Result, error) {
	cmd := exec.CommandContext(ctx, r.bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	case err != nil:
		res.ExitCode = -1
	}
	return res, err
}
