package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/ducminhle1904/freqtrade-launcher/internal/command"
	lerrors "github.com/ducminhle1904/freqtrade-launcher/internal/errors"
)

// Result describes one finished invocation.
// Err is set only when the process could not be started.
type Result struct {
	Started  time.Time
	Duration time.Duration
	ExitCode int
	Err      error
}

// Launched reports whether the child process was started
func (r Result) Launched() bool {
	return r.Err == nil
}

// Runner executes command specs. Implementations never fail the caller.
type Runner interface {
	Run(ctx context.Context, spec command.Spec) Result
}

// ExecRunner runs specs as child processes attached to the operator terminal
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Dir is the child working directory; empty means the current one
	Dir string
}

// NewExecRunner creates a runner inheriting the process standard streams
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run blocks until the child exits. A non-zero exit status is recorded, not
// returned as an error.
func (r *ExecRunner) Run(ctx context.Context, spec command.Spec) Result {
	res := Result{Started: time.Now(), ExitCode: -1}

	if spec.Empty() {
		res.Err = lerrors.NewLaunchError("runner", "run", errors.New("empty command"))
		return res
	}

	cmd := exec.CommandContext(ctx, spec.Program(), spec.Args()...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.Dir = r.Dir

	if err := cmd.Start(); err != nil {
		res.Duration = time.Since(res.Started)
		res.Err = lerrors.NewLaunchError("runner", "start", err)
		return res
	}

	err := cmd.Wait()
	res.Duration = time.Since(res.Started)

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.ExitCode = 0
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		// I/O copy failures after a successful start; the child did run
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	return res
}
