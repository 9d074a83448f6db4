package pipeline

import (
	"context"
	"flag"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/honeybee/encoding/fasta"
)

// Flags holds the options registered by RegisterFlags.  Call Resolve after the
// flag set has been parsed.
type Flags struct {
	fs           *flag.FlagSet
	workflow     *string
	ref          *string
	outDir       *string
	samplesCSV   *string
	ploidy       *int
	cnvMap       *string
	threads      *int
	restartTimes *int
	dryRun       *bool
}

// RegisterFlags registers the options of every schema on fs.  Options that the
// selected schema does not support are rejected by Resolve.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:           fs,
		workflow:     fs.String("workflow", DefaultSchema.Name, "Bundled workflow to run: single_sample or multi_sample"),
		ref:          fs.String("ref", "", "Reference genome in uncompressed fasta"),
		outDir:       fs.String("outdir", "", "Output directory"),
		samplesCSV:   fs.String("samples_csv", "", "Sample manifest (multi_sample only)"),
		ploidy:       fs.Int("ploidy", DefaultPloidy, "Ploidy for freebayes (e.g. 1 for haploid, 2 for diploid). Mutually exclusive with --cnv_map"),
		cnvMap:       fs.String("cnv_map", "", "Copy-number map for freebayes (multi_sample only). Mutually exclusive with --ploidy"),
		threads:      fs.Int("threads", DefaultThreads, "Number of threads"),
		restartTimes: fs.Int("restart_times", DefaultRestartTimes, "Number of times to restart failing jobs (multi_sample only)"),
		dryRun:       fs.Bool("n", false, "Dry run"),
	}
}

// Resolve validates the parsed options and returns the resulting RunConfig.
// Every validation failure is an InvalidArguments error.  On success the
// resolved configuration is written to log.
func (f *Flags) Resolve(ctx context.Context, log Logger) (RunConfig, error) {
	schema, err := LookupSchema(*f.workflow)
	if err != nil {
		return RunConfig{}, err
	}
	set := map[string]bool{}
	f.fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	for _, cf := range capabilityFlags {
		if set[cf.name] && !schema.Has(cf.cap) {
			return RunConfig{}, invalidf("--%s is not supported by the %s workflow", cf.name, schema.Name)
		}
	}

	cfg := RunConfig{
		Schema:     schema,
		Ref:        *f.ref,
		OutDir:     *f.outDir,
		SamplesCSV: *f.samplesCSV,
		Ploidy:     *f.ploidy,
		CNVMap:     *f.cnvMap,
		Threads:    *f.threads,
		DryRun:     *f.dryRun,
	}
	if schema.Has(CapRestartTimes) {
		cfg.RestartTimes = *f.restartTimes
	}
	switch {
	case cfg.Ref == "":
		return RunConfig{}, invalidf("--ref is required")
	case cfg.OutDir == "":
		return RunConfig{}, invalidf("--outdir is required")
	case schema.Has(CapSampleManifest) && cfg.SamplesCSV == "":
		return RunConfig{}, invalidf("--samples_csv is required by the %s workflow", schema.Name)
	case set["cnv_map"] && cfg.CNVMap == "":
		return RunConfig{}, invalidf("--cnv_map requires a path")
	case set["ploidy"] && cfg.CNVMap != "":
		return RunConfig{}, invalidf("--ploidy and --cnv_map are mutually exclusive")
	case cfg.Ploidy < 1:
		return RunConfig{}, invalidf("--ploidy must be at least 1, got %d", cfg.Ploidy)
	case cfg.Threads < 1:
		return RunConfig{}, invalidf("--threads must be at least 1, got %d", cfg.Threads)
	case cfg.RestartTimes < 0:
		return RunConfig{}, invalidf("--restart_times must not be negative, got %d", cfg.RestartTimes)
	}
	if cfg.CNVMap != "" {
		cfg.Ploidy = 0
	}
	if err := checkInputs(ctx, cfg, log); err != nil {
		return RunConfig{}, err
	}
	log.Printf("Entrypoint args\n%v", cfg)
	return cfg, nil
}

// checkInputs verifies the input files named by cfg.  It only reads; in
// particular it never touches cfg.OutDir.
func checkInputs(ctx context.Context, cfg RunConfig, log Logger) error {
	for _, path := range []string{cfg.Ref, cfg.SamplesCSV, cfg.CNVMap} {
		if path == "" {
			continue
		}
		if _, err := file.Stat(ctx, path); err != nil {
			return errors.E(InvalidArguments, "input file", path, err)
		}
	}
	ref, err := fasta.Inspect(ctx, cfg.Ref)
	if err != nil {
		return errors.E(InvalidArguments, "--ref", err)
	}
	if ref.Sequences != nil {
		log.Printf("Reference %s has %d sequences", ref.Path, len(ref.Sequences))
	}
	if cfg.CNVMap != "" {
		regions, err := readCNVMapFile(ctx, cfg.CNVMap)
		if err != nil {
			return err
		}
		log.Printf("CNV map %s has %d regions", cfg.CNVMap, len(regions))
	}
	return nil
}
