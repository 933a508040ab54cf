package rclone

import (
	"context"
	"io"
	"os/exec"

	"github.com/rotisserie/eris"
)

// Runner abstracts process execution so tests can substitute a fake
// rclone binary.
type Runner interface {
	// LookPath resolves an executable name against PATH.
	LookPath(name string) (string, error)
	// Output runs a command to completion and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Start launches a long-running command with its stderr piped.
	Start(ctx context.Context, name string, args ...string) (Process, error)
}

// Process is a started command.
type Process interface {
	// Stderr streams the process's standard error.
	Stderr() io.Reader
	// Kill terminates the process.
	Kill() error
	// Wait blocks until the process exits.
	Wait() error
}

// NewRunner returns the Runner backed by os/exec.
func NewRunner() Runner {
	return execRunner{}
}

type execRunner struct{}

func (execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return nil, eris.Errorf("%s failed: %s", name, string(exitErr.Stderr))
		}
		return nil, eris.Wrapf(err, "%s failed", name)
	}
	return out, nil
}

func (execRunner) Start(ctx context.Context, name string, args ...string) (Process, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, eris.Wrap(err, "failed to pipe stderr")
	}
	if err := cmd.Start(); err != nil {
		return nil, eris.Wrapf(err, "failed to start %s", name)
	}
	return &execProcess{cmd: cmd, stderr: stderr}, nil
}

type execProcess struct {
	cmd    *exec.Cmd
	stderr io.Reader
}

func (p *execProcess) Stderr() io.Reader {
	return p.stderr
}

func (p *execProcess) Kill() error {
	return p.cmd.Process.Kill()
}

func (p *execProcess) Wait() error {
	return p.cmd.Wait()
}
