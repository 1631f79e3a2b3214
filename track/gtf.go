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

package track

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/rangeplot/shrink"
	"github.com/pkg/errors"
)

// GTFOpts controls ReadGTF.
type GTFOpts struct {
	// Feature selects the GTF rows to read, by their third column.
	Feature string
	// IDAttr is the attribute holding the group id.
	IDAttr string
	// Source is stored in every interval read.
	Source int
}

// DefaultGTFOpts sets the default values to GTFOpts.
var DefaultGTFOpts = GTFOpts{
	Feature: "exon",
	IDAttr:  "transcript_id",
}

// gtfRecord stores the data read from one line of a GTF file.
type gtfRecord struct {
	Chrom    string
	Source   string
	Molecule string
	Start    int
	Stop     int
	Score    string // unused floating point value, but may be "."
	Strand   string
	Frame    string
	Fields   string
}

// parseInfoFields parses the attribute column of a GTF record into key/value
// pairs.  parsed is cleared first.
func parseInfoFields(parsed map[string]string, info string) {
	for k := range parsed {
		delete(parsed, k)
	}
	for _, field := range strings.Split(strings.TrimSpace(info), ";") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		pair := strings.SplitN(field, " ", 2)
		if len(pair) < 2 {
			parsed[pair[0]] = ""
			continue
		}
		parsed[pair[0]] = strings.Trim(strings.TrimSpace(pair[1]), "\"")
	}
}

// ReadGTF reads the opts.Feature rows of a GTF file.  GTF coordinates are
// 1-based and closed; they are converted to 0-based half-open ones.  Rows of a
// group are returned together, sorted by start, with groups in order of first
// appearance: GENCODE lists the exons of minus-strand transcripts in
// decreasing order, and shrink requires increasing order.
func ReadGTF(ctx context.Context, path string, opts GTFOpts) (intervals []shrink.Interval, err error) {
	r, closeIn, err := openInput(ctx, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := closeIn(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	if intervals, err = ParseGTF(r, path, opts); err != nil {
		return nil, err
	}
	log.Printf("GTF %s: read %d %s rows", path, len(intervals), opts.Feature)
	return intervals, nil
}

// ParseGTF is ReadGTF for an already opened file; name is only used in error
// messages.
func ParseGTF(in io.Reader, name string, opts GTFOpts) ([]shrink.Interval, error) {
	if opts.Feature == "" {
		opts.Feature = DefaultGTFOpts.Feature
	}
	if opts.IDAttr == "" {
		opts.IDAttr = DefaultGTFOpts.IDAttr
	}
	scanner := tsv.NewReader(in)
	scanner.Comment = '#'
	scanner.LazyQuotes = true

	var (
		order  []string
		groups = map[string][]shrink.Interval{}
		fields = map[string]string{}
		line   gtfRecord
	)
	for nRecord := 1; ; nRecord++ {
		if err := scanner.Read(&line); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrapf(err, "%s: record %d", name, nRecord)
		}
		if line.Molecule != opts.Feature {
			continue
		}
		if line.Start < 1 || line.Stop < line.Start-1 {
			return nil, errors.Errorf("%s: record %d: invalid coordinates %d-%d", name, nRecord, line.Start, line.Stop)
		}
		parseInfoFields(fields, line.Fields)
		id, ok := fields[opts.IDAttr]
		if !ok {
			return nil, errors.Errorf("%s: record %d: no %s attribute", name, nRecord, opts.IDAttr)
		}
		if _, ok := groups[id]; !ok {
			order = append(order, id)
		}
		strand := line.Strand
		if strand == "." {
			strand = ""
		}
		groups[id] = append(groups[id], shrink.Interval{
			Chrom:   line.Chrom,
			Start:   shrink.PosType(line.Start - 1),
			End:     shrink.PosType(line.Stop),
			GroupID: id,
			Feature: line.Molecule,
			Strand:  strand,
			Source:  opts.Source,
		})
	}

	var intervals []shrink.Interval
	for _, id := range order {
		group := groups[id]
		sort.SliceStable(group, func(i, j int) bool { return group[i].Start < group[j].Start })
		intervals = append(intervals, group...)
	}
	return intervals, nil
}
