package pipeline

import (
	"fmt"
	"strings"
)

// Capability is an optional feature of a Schema.
type Capability uint

const (
	// CapSampleManifest: the workflow reads samples from --samples_csv, which
	// becomes required.
	CapSampleManifest Capability = 1 << iota
	// CapCNVMap: --cnv_map may replace the uniform --ploidy.
	CapCNVMap
	// CapRestartTimes: --restart_times is passed to the engine.
	CapRestartTimes
)

// Schema is a versioned option set.  Every schema drives exactly one bundled
// workflow description.
type Schema struct {
	// Name is the value of --workflow that selects the schema.
	Name    string
	Version int
	// Workflow is the path of the workflow description inside the bundle.
	Workflow string
	Caps     Capability
}

// Has reports whether s supports all of caps.
func (s *Schema) Has(caps Capability) bool { return s.Caps&caps == caps }

func (s *Schema) String() string { return fmt.Sprintf("%s/v%d", s.Name, s.Version) }

var (
	// SingleSample genotypes one sample against a uniform ploidy.
	SingleSample = &Schema{
		Name:     "single_sample",
		Version:  1,
		Workflow: "workflow/single_sample/Snakefile",
	}
	// MultiSample genotypes the samples listed in a manifest, with either a
	// uniform ploidy or a CNV map.
	MultiSample = &Schema{
		Name:     "multi_sample",
		Version:  2,
		Workflow: "workflow/multi_sample/Snakefile",
		Caps:     CapSampleManifest | CapCNVMap | CapRestartTimes,
	}

	// DefaultSchema is used when --workflow is not given.
	DefaultSchema = MultiSample

	schemas = []*Schema{SingleSample, MultiSample}
)

// Schemas returns the registered schemas.
func Schemas() []*Schema { return append([]*Schema(nil), schemas...) }

// LookupSchema finds a registered schema by name.
func LookupSchema(name string) (*Schema, error) {
	var names []string
	for _, s := range schemas {
		if s.Name == name {
			return s, nil
		}
		names = append(names, s.Name)
	}
	return nil, invalidf("unknown workflow %q; must be one of %s", name, strings.Join(names, ", "))
}

// Options that exist only under some capability.  The order is the order in
// which violations are reported.
var capabilityFlags = []struct {
	name string
	cap  Capability
}{
	{"samples_csv", CapSampleManifest},
	{"cnv_map", CapCNVMap},
	{"restart_times", CapRestartTimes},
}
