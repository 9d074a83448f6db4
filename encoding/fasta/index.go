package fasta

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/grailbio/base/errors"
)

// Index files consist of one tab-separated line per sequence in the associated
// FASTA file.  The format is: "<sequence name>\t<length>\t<byte
// offset>\t<bases per line>\t<bytes per line>".
// For example: "chr3\t12345\t9000\t80\t81".
var indexRegExp = regexp.MustCompile(`^(\S+)\t(\d+)\t(\d+)\t(\d+)\t(\d+)$`)

// ReadIndex parses a .fai index and returns its sequences in file order.  Only
// the name and length columns are kept; the remaining columns are validated
// for shape.
func ReadIndex(index io.Reader) ([]Sequence, error) {
	var seqs []Sequence
	scanner := bufio.NewScanner(index)
	scanner.Split(bufio.ScanLines)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if line == "" {
			continue
		}
		matches := indexRegExp.FindStringSubmatch(line)
		if len(matches) != 6 {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("invalid index line %d: %s", n, line))
		}
		length, err := strconv.ParseUint(matches[2], 10, 64)
		if err != nil {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("invalid length on index line %d: %s", n, line), err)
		}
		seqs = append(seqs, Sequence{Name: matches[1], Length: length})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.E(err, "couldn't read FASTA index")
	}
	return seqs, nil
}
