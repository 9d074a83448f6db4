package pipeline

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
)

//go:embed workflow
var workflowFS embed.FS

// Bundle holds the workflow descriptions shipped with the binary.
type Bundle struct {
	fsys fs.FS
}

// Bundled is the set of workflow descriptions compiled into this package.
var Bundled = NewBundle(workflowFS)

// NewBundle returns a bundle that serves workflow descriptions from fsys.
func NewBundle(fsys fs.FS) Bundle { return Bundle{fsys: fsys} }

// Materialize writes the workflow description of s into dir and returns its
// path.  A description missing from the bundle is a ResourceNotFound error.
func (b Bundle) Materialize(ctx context.Context, dir string, s *Schema) (string, error) {
	data, err := fs.ReadFile(b.fsys, s.Workflow)
	if err != nil {
		return "", errors.E(ResourceNotFound,
			fmt.Sprintf("workflow description %s for %v is not bundled; the installation is broken", s.Workflow, s), err)
	}
	dst := filepath.Join(dir, path.Base(s.Workflow))
	out, err := file.Create(ctx, dst)
	if err != nil {
		return "", errors.E(err, "create", dst)
	}
	if _, err := out.Writer(ctx).Write(data); err != nil {
		out.Discard(ctx)
		return "", errors.E(err, "write", dst)
	}
	if err := out.Close(ctx); err != nil {
		return "", errors.E(err, "close", dst)
	}
	return dst, nil
}
