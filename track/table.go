// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package track reads interval annotation tables into shrink.Intervals and
// writes the shrinking results as tab-separated tables for a renderer.
package track

import (
	"bufio"
	"context"
	"io"
	"strconv"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/rangeplot/shrink"
	"github.com/pkg/errors"
)

// Column names of interval tables, shared with the output tables.
const (
	ChromCol   = "Chromosome"
	StartCol   = "Start"
	EndCol     = "End"
	StrandCol  = "Strand"
	FeatureCol = "Feature"
)

// TableOpts controls ReadTable.
type TableOpts struct {
	// IDCol is the name of the column holding the group id.
	IDCol string
	// Source is stored in every interval read, to keep the groups of
	// different tables apart.
	Source int
}

// DefaultTableOpts sets the default values to TableOpts.
var DefaultTableOpts = TableOpts{
	IDCol: "transcript_id",
}

// openInput opens path for reading, decompressing it if its name says so.
// The returned function must be called to close the file.
func openInput(ctx context.Context, path string) (io.Reader, func() error, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open %s", path)
	}
	var r io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		r = u
	}
	return bufio.NewReaderSize(r, 64<<10), func() error { return in.Close(ctx) }, nil
}

// ReadTable reads a tab-separated interval table with a header row.  The
// Chromosome, Start, End and opts.IDCol columns are required; Strand and
// Feature are optional, and any other column is ignored.  Coordinates are
// 0-based, half-open.  Lines starting with '#' are skipped.  Compressed files
// are recognized by their extension.
func ReadTable(ctx context.Context, path string, opts TableOpts) (intervals []shrink.Interval, err error) {
	r, closeIn, err := openInput(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := closeIn(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	if intervals, err = ParseTable(r, path, opts); err != nil {
		return nil, err
	}
	log.Printf("%s: read %d intervals", path, len(intervals))
	return intervals, nil
}

// ParseTable is ReadTable for an already opened table; name is only used in
// error messages.
func ParseTable(in io.Reader, name string, opts TableOpts) ([]shrink.Interval, error) {
	if opts.IDCol == "" {
		opts.IDCol = DefaultTableOpts.IDCol
	}
	r := tsv.NewReader(in)
	r.Comment = '#'
	r.LazyQuotes = true

	header, err := r.Reader.Read()
	if err == io.EOF {
		return nil, errors.Errorf("%s: empty table", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s: header", name)
	}
	cols := make(map[string]int, len(header))
	for i, col := range header {
		cols[col] = i
	}
	colIndex := func(col string, required bool) (int, error) {
		i, ok := cols[col]
		if !ok {
			if required {
				return -1, errors.Errorf("%s: missing column %q", name, col)
			}
			return -1, nil
		}
		return i, nil
	}
	var chromIdx, startIdx, endIdx, idIdx, strandIdx, featureIdx int
	for _, c := range []struct {
		idx      *int
		col      string
		required bool
	}{
		{&chromIdx, ChromCol, true},
		{&startIdx, StartCol, true},
		{&endIdx, EndCol, true},
		{&idIdx, opts.IDCol, true},
		{&strandIdx, StrandCol, false},
		{&featureIdx, FeatureCol, false},
	} {
		if *c.idx, err = colIndex(c.col, c.required); err != nil {
			return nil, err
		}
	}

	parsePos := func(row int, col, s string) (shrink.PosType, error) {
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return 0, errors.Wrapf(err, "%s: row %d: %s", name, row, col)
		}
		return shrink.PosType(v), nil
	}
	var intervals []shrink.Interval
	for row := 1; ; row++ {
		fields, err := r.Reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "%s: row %d", name, row)
		}
		iv := shrink.Interval{
			Chrom:   fields[chromIdx],
			GroupID: fields[idIdx],
			Source:  opts.Source,
		}
		if iv.Start, err = parsePos(row, StartCol, fields[startIdx]); err != nil {
			return nil, err
		}
		if iv.End, err = parsePos(row, EndCol, fields[endIdx]); err != nil {
			return nil, err
		}
		if strandIdx >= 0 {
			iv.Strand = fields[strandIdx]
		}
		if featureIdx >= 0 {
			iv.Feature = fields[featureIdx]
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}
