package main

// See doc.go for documentation
import (
	"os"
	"os/signal"
	"syscall"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/honeybee/pipeline"
	"v.io/x/lib/cmdline"
)

func newCmdRoot() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "honeybee-genotype-pipeline",
		Short: "Call genotypes against a reference with the bundled Snakemake workflow",
		Long: `
honeybee-genotype-pipeline resolves its flags into a workflow configuration and
runs the bundled Snakemake workflow with it. The command exits with snakemake's
exit status. With -n, snakemake reports the jobs it would run without running
them.
`,
	}
	flags := pipeline.RegisterFlags(&cmd.Flags)
	snakemakeFlag := cmd.Flags.String("snakemake", "snakemake", "Snakemake executable")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 0 {
			return env.UsageErrorf("unexpected arguments %v", argv)
		}
		// On SIGINT or SIGTERM the engine is interrupted and Run cleans up
		// before the command exits.
		ctx, stop := signal.NotifyContext(vcontext.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		cfg, err := flags.Resolve(ctx, log.Info)
		if err != nil {
			if errors.Is(pipeline.InvalidArguments, err) {
				return env.UsageErrorf("%v", err)
			}
			return err
		}
		engine := &pipeline.Snakemake{
			Path:   *snakemakeFlag,
			Stdout: env.Stdout,
			Stderr: env.Stderr,
		}
		out, err := pipeline.Run(ctx, cfg, pipeline.Bundled, engine, log.Info)
		if err != nil {
			log.Error.Printf("%v", err)
			if out.ExitCode != 0 {
				return cmdline.ErrExitCode(out.ExitCode)
			}
			return err
		}
		return nil
	})
	return cmd
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(newCmdRoot())
}
