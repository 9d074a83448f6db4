package pipeline

import (
	"context"
	goerrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"gopkg.in/yaml.v3"
)

// Snakemake runs workflows with the snakemake command-line tool.  The
// configuration mapping is written as YAML to the invocation's scratch
// directory and passed with --configfile.  When the context is canceled,
// snakemake is sent an interrupt so it can stop its jobs, and is killed if it
// has not exited after StopTimeout.
type Snakemake struct {
	// Path is the snakemake executable.  If empty, "snakemake" is looked up in
	// $PATH.
	Path string
	// Stdout and Stderr receive the engine's output.  If nil, the process's
	// own streams are used.
	Stdout, Stderr io.Writer
	// StopTimeout bounds the wait for snakemake to exit after an interrupt.
	// If zero, DefaultStopTimeout is used.
	StopTimeout time.Duration
}

// DefaultStopTimeout is the default Snakemake.StopTimeout.
const DefaultStopTimeout = time.Minute

func (s *Snakemake) path() string {
	if s.Path == "" {
		return "snakemake"
	}
	return s.Path
}

// Args returns the snakemake arguments for inv, reading the configuration
// from configPath.
func (s *Snakemake) Args(inv Invocation, configPath string) []string {
	args := []string{
		"--snakefile", inv.Snakefile,
		"--configfile", configPath,
		"--cores", strconv.Itoa(inv.Cores),
	}
	if inv.NoLock {
		args = append(args, "--nolock")
	}
	if inv.PrintShellCmds {
		args = append(args, "--printshellcmds")
	}
	if inv.PrintReason {
		args = append(args, "--reason")
	}
	if inv.DryRun {
		args = append(args, "--dryrun")
	}
	if inv.RestartTimes != nil {
		args = append(args, "--restart-times", strconv.Itoa(*inv.RestartTimes))
	}
	return args
}

// Invoke implements Engine.
func (s *Snakemake) Invoke(ctx context.Context, inv Invocation) (Outcome, error) {
	dir := inv.ScratchDir
	if dir == "" {
		tmp, err := os.MkdirTemp("", "snakemake-config")
		if err != nil {
			return Outcome{ExitCode: 1}, errors.E(err, "create config directory")
		}
		defer os.RemoveAll(tmp) // nolint: errcheck
		dir = tmp
	}

	configPath := filepath.Join(dir, "config.yaml")
	if err := writeConfig(ctx, configPath, inv.Config); err != nil {
		return Outcome{ExitCode: 1}, err
	}
	cmd := exec.CommandContext(ctx, s.path(), s.Args(inv, configPath)...)
	cmd.Stdout, cmd.Stderr = s.Stdout, s.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = s.StopTimeout
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = DefaultStopTimeout
	}
	err := cmd.Run()
	if err == nil {
		return Outcome{}, nil
	}
	code := 1
	var exitErr *exec.ExitError
	if goerrors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		code = exitErr.ExitCode()
	}
	switch {
	case ctx.Err() != nil:
		return Outcome{ExitCode: code}, errors.E(EngineFailure, s.path()+" interrupted", err)
	case exitErr != nil:
		return Outcome{ExitCode: code}, errors.E(EngineFailure,
			fmt.Sprintf("%s exited with status %d", s.path(), code), err)
	}
	return Outcome{ExitCode: 1}, errors.E(EngineFailure, "start "+s.path(), err)
}

func writeConfig(ctx context.Context, path string, config map[string]interface{}) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.E(err, "encode engine config")
	}
	out, err := file.Create(ctx, path)
	if err != nil {
		return errors.E(err, "create", path)
	}
	if _, err := out.Writer(ctx).Write(data); err != nil {
		out.Discard(ctx)
		return errors.E(err, "write", path)
	}
	return out.Close(ctx)
}
