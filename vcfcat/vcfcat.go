// Package vcfcat concatenates VCF files.
//
// Concatenation is byte-level: the output is exactly the bytes of each input,
// in the order given.  No separators are inserted, header lines are not
// deduplicated and the contents are not validated.  It is meant for joining
// per-region calls made by the same tool from the same header, where the
// caller orders the inputs.
package vcfcat

import (
	"context"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
)

// IOError reports an input that could not be read, or an output that could
// not be written.  Concat wraps every file failure in an *IOError; test for it
// with errors.As.  The kind of the underlying file error is kept, so
// errors.Is(errors.NotExist, err) from github.com/grailbio/base/errors holds
// for a missing input.
type IOError struct {
	// Op is the failed operation: "open", "copy" or "close" for inputs,
	// "create" or "commit" for the output.
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string { return e.Op + " " + e.Path + ": " + e.Err.Error() }

func (e *IOError) Unwrap() error { return e.Err }

func ioError(op, path string, err error) error {
	return errors.E(&IOError{Op: op, Path: path, Err: err})
}

// Concat writes the concatenation of the files in inputs to output.  An empty
// inputs produces an empty output.
//
// The output is staged by file.Create and only appears at output once every
// input has been copied.  If any input is missing or unreadable, the staged
// data is discarded and the returned *IOError names the offending path.
func Concat(ctx context.Context, output string, inputs []string) (err error) {
	out, err := file.Create(ctx, output)
	if err != nil {
		return ioError("create", output, err)
	}
	w := out.Writer(ctx)
	for _, path := range inputs {
		if err = appendFile(ctx, w, path); err != nil {
			out.Discard(ctx)
			return err
		}
	}
	if err = out.Close(ctx); err != nil {
		return ioError("commit", output, err)
	}
	return nil
}

func appendFile(ctx context.Context, w io.Writer, path string) error {
	in, err := file.Open(ctx, path)
	if err != nil {
		return ioError("open", path, err)
	}
	once := errors.Once{}
	if _, err := io.Copy(w, in.Reader(ctx)); err != nil {
		once.Set(ioError("copy", path, err))
	}
	if err := in.Close(ctx); err != nil {
		once.Set(ioError("close", path, err))
	}
	return once.Err()
}
