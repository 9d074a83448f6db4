package pipeline

import (
	"fmt"
	"sort"
	"strings"
)

// Defaults for options that were not given.
const (
	DefaultPloidy       = 2
	DefaultThreads      = 1
	DefaultRestartTimes = 0
)

// RunConfig is the resolved configuration of one invocation.  It is built once
// by Flags.Resolve and not modified afterwards.
type RunConfig struct {
	Schema *Schema
	// Ref is the uncompressed reference FASTA.
	Ref    string
	OutDir string
	// SamplesCSV is the sample manifest.  Set iff Schema has CapSampleManifest.
	SamplesCSV string
	// Ploidy is the uniform ploidy, or 0 when CNVMap replaces it.
	Ploidy int
	CNVMap string
	// Threads bounds the number of cores the engine may use.
	Threads      int
	RestartTimes int
	DryRun       bool
}

// Map returns the configuration mapping handed to the workflow engine.  Keys
// match the option names.  Options of capabilities the schema lacks are
// omitted, and disabled options map to nil.
func (c RunConfig) Map() map[string]interface{} {
	m := map[string]interface{}{
		"ref":     c.Ref,
		"outdir":  c.OutDir,
		"ploidy":  nil,
		"threads": c.Threads,
		"dry_run": c.DryRun,
	}
	if c.Ploidy > 0 {
		m["ploidy"] = c.Ploidy
	}
	if c.Schema.Has(CapSampleManifest) {
		m["samples_csv"] = c.SamplesCSV
	}
	if c.Schema.Has(CapCNVMap) {
		m["cnv_map"] = nil
		if c.CNVMap != "" {
			m["cnv_map"] = c.CNVMap
		}
	}
	if c.Schema.Has(CapRestartTimes) {
		m["restart_times"] = c.RestartTimes
	}
	return m
}

// String renders the configuration mapping one key per line, sorted by key.
func (c RunConfig) String() string {
	m := c.Map()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	fmt.Fprintf(&b, "workflow: %v", c.Schema)
	for _, k := range keys {
		v := m[k]
		if v == nil {
			v = "<disabled>"
		}
		fmt.Fprintf(&b, "\n  %s: %v", k, v)
	}
	return b.String()
}
