package pipeline

import "context"

// Invocation is everything a workflow engine is given for one run.  It is
// derived from a RunConfig by NewInvocation.
type Invocation struct {
	// Snakefile is the path of the materialized workflow description.
	Snakefile string
	// Config is the configuration mapping, see RunConfig.Map.
	Config map[string]interface{}
	// Cores is the engine's resource limit, equal to RunConfig.Threads.
	Cores int
	// NoLock disables locking of the working directory.  Concurrent runs
	// against one output directory are not protected.
	NoLock         bool
	PrintReason    bool
	PrintShellCmds bool
	DryRun         bool
	// RestartTimes is nil when the schema does not pass a restart count.
	RestartTimes *int
	// ScratchDir is a private directory the engine may write to while it
	// runs.  Its owner removes it afterwards.  If empty, the engine makes its
	// own.
	ScratchDir string
}

// NewInvocation derives the invocation of the workflow at snakefile from cfg.
func NewInvocation(snakefile string, cfg RunConfig) Invocation {
	inv := Invocation{
		Snakefile:      snakefile,
		Config:         cfg.Map(),
		Cores:          cfg.Threads,
		NoLock:         true,
		PrintReason:    true,
		PrintShellCmds: true,
		DryRun:         cfg.DryRun,
	}
	if cfg.Schema.Has(CapRestartTimes) {
		n := cfg.RestartTimes
		inv.RestartTimes = &n
	}
	return inv
}

// Outcome is the final status of an engine run.
type Outcome struct {
	// ExitCode is zero on success.  The process exits with it.
	ExitCode int
}

// Engine runs a workflow.  Implementations block until the workflow has
// finished (or, for a dry run, until the plan has been reported).  A non-nil
// error is returned iff Outcome.ExitCode is non-zero.
type Engine interface {
	Invoke(ctx context.Context, inv Invocation) (Outcome, error)
}
