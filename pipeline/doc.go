/*Package pipeline configures and launches the bundled genotyping workflow.

  The package has three parts:

  1. Resolving command-line options into an immutable RunConfig
     (RegisterFlags, Flags.Resolve).  Option sets are versioned by Schema;
     each schema names the capabilities it supports (a sample manifest, a
     CNV map, a job restart count) and the bundled workflow description it
     drives.

  2. Locating the bundled workflow description (Bundle).  Descriptions are
     compiled into the binary and written to a scratch directory at run time.

  3. Handing the configuration to a workflow engine (Engine, Run).  The
     Snakemake type adapts the snakemake command-line tool.  All scheduling,
     retrying and output handling belongs to the engine; Run only passes
     parameters through and reports the engine's exit status.
*/
package pipeline
