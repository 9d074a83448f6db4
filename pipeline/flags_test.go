package pipeline_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/honeybee/pipeline"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) String() string { return strings.Join(l.lines, "\n") }

// inputs holds paths of valid input files in a temporary directory.
type inputs struct {
	dir, ref, samples, cnvMap, outdir string
}

func newInputs(t *testing.T) (inputs, func()) {
	dir, cleanup := testutil.TempDir(t, "", "pipeline")
	in := inputs{
		dir:     dir,
		ref:     filepath.Join(dir, "ref.fa"),
		samples: filepath.Join(dir, "samples.csv"),
		cnvMap:  filepath.Join(dir, "cnv.tsv"),
		outdir:  filepath.Join(dir, "out"),
	}
	require.NoError(t, os.WriteFile(in.ref, []byte(">chr1\nACGTACGT\n>chr2\nGGGG\n"), 0644))
	require.NoError(t, os.WriteFile(in.samples, []byte("sample,r1_path,r2_path\nbee1,r1.fq.gz,r2.fq.gz\n"), 0644))
	require.NoError(t, os.WriteFile(in.cnvMap, []byte("# seq\tstart\tend\tsample\tcn\nchr1\t0\t8\tbee1\t1\nchr2\t0\t4\tbee1\t2\n"), 0644))
	return in, cleanup
}

func resolve(t *testing.T, log pipeline.Logger, args ...string) (pipeline.RunConfig, error) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := pipeline.RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	if log == nil {
		log = &recordingLogger{}
	}
	return f.Resolve(context.Background(), log)
}

func TestResolveDefaults(t *testing.T) {
	in, cleanup := newInputs(t)
	defer cleanup()

	cfg, err := resolve(t, nil, "--ref", in.ref, "--outdir", in.outdir, "--samples_csv", in.samples)
	require.NoError(t, err)
	assert.Equal(t, pipeline.MultiSample, cfg.Schema)
	assert.Equal(t, map[string]interface{}{
		"ref":           in.ref,
		"outdir":        in.outdir,
		"samples_csv":   in.samples,
		"ploidy":        2,
		"cnv_map":       nil,
		"threads":       1,
		"restart_times": 0,
		"dry_run":       false,
	}, cfg.Map())

	cfg, err = resolve(t, nil, "--workflow=single_sample", "--ref", in.ref, "--outdir", in.outdir)
	require.NoError(t, err)
	assert.Equal(t, pipeline.SingleSample, cfg.Schema)
	assert.Equal(t, map[string]interface{}{
		"ref":     in.ref,
		"outdir":  in.outdir,
		"ploidy":  2,
		"threads": 1,
		"dry_run": false,
	}, cfg.Map())
}

func TestResolveSuppliedValues(t *testing.T) {
	in, cleanup := newInputs(t)
	defer cleanup()

	cfg, err := resolve(t, nil,
		"--ref", in.ref, "--outdir", in.outdir, "--samples_csv", in.samples,
		"--ploidy", "1", "--threads", "8", "--restart_times", "3", "-n")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"ref":           in.ref,
		"outdir":        in.outdir,
		"samples_csv":   in.samples,
		"ploidy":        1,
		"cnv_map":       nil,
		"threads":       8,
		"restart_times": 3,
		"dry_run":       true,
	}, cfg.Map())

	cfg, err = resolve(t, nil,
		"--ref", in.ref, "--outdir", in.outdir, "--samples_csv", in.samples, "--cnv_map", in.cnvMap)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Ploidy)
	assert.Equal(t, in.cnvMap, cfg.CNVMap)
	m := cfg.Map()
	assert.Nil(t, m["ploidy"])
	assert.Equal(t, in.cnvMap, m["cnv_map"])
}

func TestResolveLogsConfig(t *testing.T) {
	in, cleanup := newInputs(t)
	defer cleanup()
	require.NoError(t, os.WriteFile(in.ref+".fai", []byte("chr1\t8\t6\t8\t9\nchr2\t4\t21\t4\t5\n"), 0644))

	log := &recordingLogger{}
	_, err := resolve(t, log, "--ref", in.ref, "--outdir", in.outdir, "--samples_csv", in.samples, "--threads=4")
	require.NoError(t, err)
	out := log.String()
	assert.Contains(t, out, "workflow: multi_sample/v2")
	assert.Contains(t, out, "threads: 4")
	assert.Contains(t, out, "cnv_map: <disabled>")
	assert.Contains(t, out, "has 2 sequences")
}

func TestResolveInvalidArguments(t *testing.T) {
	in, cleanup := newInputs(t)
	defer cleanup()

	gzRef := filepath.Join(in.dir, "ref.fa.gz")
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(">chr1\nACGT\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(gzRef, buf.Bytes(), 0644))

	badCNV := filepath.Join(in.dir, "bad_cnv.tsv")
	require.NoError(t, os.WriteFile(badCNV, []byte("chr1\t10\t5\tbee1\t1\n"), 0644))
	shortCNV := filepath.Join(in.dir, "short_cnv.tsv")
	require.NoError(t, os.WriteFile(shortCNV, []byte("chr1\t0\t8\tbee1\n"), 0644))

	base := []string{"--ref", in.ref, "--outdir", in.outdir, "--samples_csv", in.samples}
	with := func(extra ...string) []string { return append(append([]string{}, base...), extra...) }

	for _, test := range []struct {
		name string
		args []string
		want string
	}{
		{"missing ref", []string{"--outdir", in.outdir, "--samples_csv", in.samples}, "--ref is required"},
		{"missing outdir", []string{"--ref", in.ref, "--samples_csv", in.samples}, "--outdir is required"},
		{"missing manifest", []string{"--ref", in.ref, "--outdir", in.outdir}, "--samples_csv is required"},
		{"ploidy and cnv map", with("--ploidy", "3", "--cnv_map", in.cnvMap), "mutually exclusive"},
		{"default ploidy and cnv map", with("--ploidy", "2", "--cnv_map", in.cnvMap), "mutually exclusive"},
		{"empty cnv map", with("--cnv_map="), "--cnv_map requires a path"},
		{"zero ploidy", with("--ploidy", "0"), "--ploidy must be at least 1"},
		{"zero threads", with("--threads", "0"), "--threads must be at least 1"},
		{"negative threads", with("--threads", "-2"), "--threads must be at least 1"},
		{"negative restarts", with("--restart_times", "-1"), "--restart_times must not be negative"},
		{"unknown workflow", with("--workflow", "trio"), "unknown workflow"},
		{"single sample cnv map", []string{"--workflow", "single_sample", "--ref", in.ref, "--outdir", in.outdir, "--cnv_map", in.cnvMap}, "--cnv_map is not supported"},
		{"single sample restarts", []string{"--workflow", "single_sample", "--ref", in.ref, "--outdir", in.outdir, "--restart_times", "1"}, "--restart_times is not supported"},
		{"single sample manifest", []string{"--workflow", "single_sample", "--ref", in.ref, "--outdir", in.outdir, "--samples_csv", in.samples}, "--samples_csv is not supported"},
		{"missing ref file", []string{"--ref", filepath.Join(in.dir, "nope.fa"), "--outdir", in.outdir, "--samples_csv", in.samples}, "nope.fa"},
		{"missing manifest file", []string{"--ref", in.ref, "--outdir", in.outdir, "--samples_csv", filepath.Join(in.dir, "nope.csv")}, "nope.csv"},
		{"compressed ref", []string{"--ref", gzRef, "--outdir", in.outdir, "--samples_csv", in.samples}, "compressed"},
		{"bad cnv map", with("--cnv_map", badCNV), "invalid region"},
		{"short cnv map row", with("--cnv_map", shortCNV), "got 4 columns"},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := resolve(t, nil, test.args...)
			require.Error(t, err)
			assert.True(t, errors.Is(pipeline.InvalidArguments, err), "%v", err)
			assert.Contains(t, err.Error(), test.want)
		})
	}
}

func TestResolveRejectsNonIntegers(t *testing.T) {
	for _, args := range [][]string{
		{"--threads", "four"},
		{"--restart_times", "1.5"},
		{"--ploidy", "two"},
	} {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		pipeline.RegisterFlags(fs)
		assert.Error(t, fs.Parse(args), "%v", args)
	}
}

func TestLookupSchema(t *testing.T) {
	for _, s := range pipeline.Schemas() {
		got, err := pipeline.LookupSchema(s.Name)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	assert.True(t, pipeline.MultiSample.Has(pipeline.CapCNVMap|pipeline.CapRestartTimes))
	assert.False(t, pipeline.SingleSample.Has(pipeline.CapCNVMap))
	assert.Equal(t, pipeline.MultiSample, pipeline.DefaultSchema)
}
