// Package fasta inspects reference FASTA files before they are handed to a
// workflow.  See http://www.htslib.org/doc/faidx.html.  Briefly, FASTA files
// consist of a number of named sequences that may be interrupted by newlines.
// For example:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// Note: Sequence names are defined to be the stretch of characters excluding
// spaces immediately after '>'.  Any text appear after a space are ignored.
// For example, '>chr1 A viral sequence' becomes 'chr1'.
//
// The checks here read only up to the first non-blank byte of the FASTA file
// and, when present, its .fai index, so they are cheap even for multi-gigabyte
// references.
package fasta

import (
	"bufio"
	"context"
	"io"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
)

// Sequence describes one named sequence of a reference.
type Sequence struct {
	Name string
	// Length is the number of bases in the sequence.
	Length uint64
}

// Reference summarizes a FASTA file on disk.
type Reference struct {
	Path string
	// Sequences lists the sequences in the order of the .fai index.  It is nil
	// when the reference has no index next to it.
	Sequences []Sequence
}

// CheckHeader verifies that r holds uncompressed FASTA data: the stream must
// not carry a gzip, bzip2 or zstd magic number, and its first non-blank line
// must be a '>' sequence header.
func CheckHeader(r io.Reader) error {
	rc, compressed := compress.NewReader(r)
	defer rc.Close() // nolint: errcheck
	if compressed {
		return errors.E(errors.Invalid, "FASTA file is compressed; an uncompressed reference is required")
	}
	br := bufio.NewReader(rc)
	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			return errors.E(errors.Invalid, "empty FASTA file")
		}
		if err != nil {
			return err
		}
		switch c {
		case '\n', '\r':
		case '>':
			return nil
		default:
			return errors.E(errors.Invalid, "malformed FASTA file: first line is not a sequence header")
		}
	}
}

// Inspect checks the FASTA file at path with CheckHeader and, if path+".fai"
// exists, reads the sequence list from the index.
func Inspect(ctx context.Context, path string) (ref Reference, err error) {
	ref.Path = path
	in, err := file.Open(ctx, path)
	if err != nil {
		return ref, errors.E(err, "open reference", path)
	}
	once := errors.Once{}
	once.Set(CheckHeader(in.Reader(ctx)))
	once.Set(in.Close(ctx))
	if err := once.Err(); err != nil {
		return ref, errors.E(err, path)
	}

	indexPath := path + ".fai"
	if _, err := file.Stat(ctx, indexPath); err != nil {
		// No index; the workflow builds one.
		return ref, nil
	}
	idx, err := file.Open(ctx, indexPath)
	if err != nil {
		return ref, errors.E(err, "open reference index", indexPath)
	}
	ref.Sequences, err = ReadIndex(idx.Reader(ctx))
	once.Set(err)
	once.Set(idx.Close(ctx))
	if err := once.Err(); err != nil {
		return ref, errors.E(err, indexPath)
	}
	return ref, nil
}
