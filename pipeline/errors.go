package pipeline

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Error kinds reported by this package.  Callers test for them with
// errors.Is from github.com/grailbio/base/errors.
const (
	// InvalidArguments marks missing, malformed or conflicting options.  No
	// engine is invoked once an InvalidArguments error is reported.
	InvalidArguments = errors.Invalid
	// ResourceNotFound marks a workflow description missing from the bundle,
	// which means the installation is broken.
	ResourceNotFound = errors.NotExist
	// EngineFailure marks a failure reported by, or starting, the workflow
	// engine.
	EngineFailure = errors.Unavailable
)

// Logger receives diagnostic lines.  log.Info and log.Debug from
// github.com/grailbio/base/log satisfy it.
type Logger interface {
	Printf(format string, v ...interface{})
}

func invalidf(format string, v ...interface{}) error {
	return errors.E(InvalidArguments, fmt.Sprintf(format, v...))
}
