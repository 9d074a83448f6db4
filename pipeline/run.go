package pipeline

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/grailbio/base/errors"
)

// Run materializes the workflow description of cfg.Schema from bundle and
// hands it to engine together with cfg.  It blocks until the engine returns
// and reports the engine's outcome unchanged.  Run itself never creates,
// modifies or removes anything under cfg.OutDir; the workflow description and
// the engine's private files are written to one scratch directory that is
// removed before Run returns, also when ctx is canceled.
func Run(ctx context.Context, cfg RunConfig, bundle Bundle, engine Engine, log Logger) (Outcome, error) {
	runID := uuid.New().String()
	scratch, err := os.MkdirTemp("", "honeybee-"+runID)
	if err != nil {
		return Outcome{ExitCode: 1}, errors.E(err, "create scratch directory")
	}
	defer os.RemoveAll(scratch) // nolint: errcheck

	snakefile, err := bundle.Materialize(ctx, scratch, cfg.Schema)
	if err != nil {
		return Outcome{ExitCode: 1}, err
	}
	log.Printf("run %s: using snakefile %s (%v)", runID, snakefile, cfg.Schema)
	if cfg.DryRun {
		log.Printf("run %s: dry run, nothing will be executed", runID)
	}
	inv := NewInvocation(snakefile, cfg)
	inv.ScratchDir = scratch
	out, err := engine.Invoke(ctx, inv)
	if err != nil {
		log.Printf("run %s: engine failed with status %d: %v", runID, out.ExitCode, err)
		return out, err
	}
	log.Printf("run %s: done", runID)
	return out, nil
}
