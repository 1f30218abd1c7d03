// Package exec provides a stub-friendly interface for running external commands.
package exec

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/rs/zerolog"
)

// Result holds the outcome of a command execution.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Opts holds optional parameters for command execution.
type Opts struct {
	Dir string            // working directory (optional)
	Env map[string]string // extra environment variables (overlay)
}

// Runner runs external commands. Implementations must be safe to stub in
// tests; production code never calls os/exec directly.
type Runner interface {
	// Run executes a command and returns the result.
	// Result.ExitCode is set whenever the process actually ran, even
	// non-zero. An error is returned only for execution failures
	// (binary not found, context canceled, io failure).
	Run(ctx context.Context, name string, args []string, opts Opts) (Result, error)
}

// OSRunner is the production Runner backed by os/exec.
type OSRunner struct {
	log zerolog.Logger
}

// NewOSRunner returns a Runner that executes real processes, tracing each
// invocation at debug level.
func NewOSRunner(log zerolog.Logger) *OSRunner {
	return &OSRunner{log: log}
}

func (r *OSRunner) Run(ctx context.Context, name string, args []string, opts Opts) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = cmd.Environ()
		for k, v := range opts.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	err := cmd.Run()

	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
			r.log.Debug().Str("cmd", name).Strs("args", args).Int("exit", res.ExitCode).Msg("command exited non-zero")
			return res, nil
		}
		return res, err
	}

	r.log.Debug().Str("cmd", name).Strs("args", args).Msg("command ok")
	return res, nil
}

var _ Runner = (*OSRunner)(nil)
