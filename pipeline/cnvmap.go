package pipeline

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
)

// CNVRegion is one row of a copy-number map: samples named Sample carry
// CopyNumber copies of the half-open interval [Start, End) of Seq.  Seq is
// empty for sample-level rows, which set the copy number of Sample across the
// whole genome.
type CNVRegion struct {
	Seq        string
	Start      int64
	End        int64
	Sample     string
	CopyNumber int64
}

// ReadCNVMap parses a copy-number map in the format freebayes reads with
// --cnv-map.  The map is tab-separated without a header; lines starting with
// '#' are ignored.  A row is either
//
//	seq  start  end  sample  copy_number
//
// or the sample-level form
//
//	sample  copy_number
func ReadCNVMap(r io.Reader) ([]CNVRegion, error) {
	reader := tsv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	var regions []CNVRegion
	for n := 1; ; n++ {
		rec, err := reader.Reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.E(InvalidArguments, fmt.Sprintf("CNV map row %d", n), err)
		}
		row, err := parseCNVRecord(rec)
		if err != nil {
			return nil, errors.E(InvalidArguments, fmt.Sprintf("CNV map row %d", n), err)
		}
		switch {
		case row.Sample == "" || (len(rec) == 5 && row.Seq == ""):
			return nil, invalidf("CNV map row %d: empty sequence or sample name", n)
		case len(rec) == 5 && (row.Start < 0 || row.End <= row.Start):
			return nil, invalidf("CNV map row %d: invalid region %s:%d-%d", n, row.Seq, row.Start, row.End)
		case row.CopyNumber < 0:
			return nil, invalidf("CNV map row %d: negative copy number %d", n, row.CopyNumber)
		}
		regions = append(regions, row)
	}
	if len(regions) == 0 {
		return nil, invalidf("CNV map has no regions")
	}
	return regions, nil
}

func parseCNVRecord(rec []string) (row CNVRegion, err error) {
	var copyNumber string
	switch len(rec) {
	case 2:
		row.Sample, copyNumber = rec[0], rec[1]
	case 5:
		row.Seq, row.Sample, copyNumber = rec[0], rec[3], rec[4]
		if row.Start, err = strconv.ParseInt(rec[1], 10, 64); err != nil {
			return row, errors.E(err, "start")
		}
		if row.End, err = strconv.ParseInt(rec[2], 10, 64); err != nil {
			return row, errors.E(err, "end")
		}
	default:
		return row, errors.E(fmt.Sprintf("got %d columns, want 5 (seq start end sample copy_number) or 2 (sample copy_number)", len(rec)))
	}
	if row.CopyNumber, err = strconv.ParseInt(copyNumber, 10, 64); err != nil {
		return row, errors.E(err, "copy number")
	}
	return row, nil
}

// readCNVMapFile is ReadCNVMap on a path.
func readCNVMapFile(ctx context.Context, path string) ([]CNVRegion, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(InvalidArguments, "open CNV map", path, err)
	}
	regions, err := ReadCNVMap(in.Reader(ctx))
	once := errors.Once{}
	once.Set(err)
	once.Set(in.Close(ctx))
	if err := once.Err(); err != nil {
		return nil, errors.E(err, path)
	}
	return regions, nil
}
