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

package shrink

import (
	"fmt"

	"github.com/grailbio/rangeplot/interval"
)

// PosType is the coordinate type, shared with the interval package.
type PosType = interval.PosType

// Feature names assigned to derived rows.
const (
	FeatureIntron    = "intron"
	FeatureFixedLine = "FIL"
)

// Interval is one row of an annotation table: a left-closed right-open range
// on a chromosome, belonging to a single group (usually a transcript).
type Interval struct {
	Chrom string
	Start PosType
	End   PosType
	// GroupID is the value of the id column, e.g. the transcript_id.
	GroupID string
	// Feature is the annotation type ("exon", "CDS", ...).  Optional.
	Feature string
	// Strand is "+", "-" or empty.
	Strand string
	// Source identifies the input table the row came from, so that equal
	// GroupIDs from different tables are not treated as one group.
	Source int
}

// Key returns the group the interval belongs to.
func (iv Interval) Key() GroupKey {
	return GroupKey{Source: iv.Source, GroupID: iv.GroupID}
}

// Range returns the coordinates of iv.
func (iv Interval) Range() interval.Range {
	return interval.Range{Start: iv.Start, End: iv.End}
}

func (iv Interval) String() string {
	return fmt.Sprintf("%s:[%d,%d)#%s", iv.Chrom, iv.Start, iv.End, iv.GroupID)
}

// GroupKey identifies a group across all input tables.
type GroupKey struct {
	Source  int
	GroupID string
}

// Region is a block of intron territory, free of exons, which is longer than
// the threshold and is therefore compressed.
type Region struct {
	Chrom string
	Start PosType
	End   PosType
	// Delta is the number of positions removed from this region,
	// (End - Start) - threshold.
	Delta PosType
	// CumDelta is the sum of Delta over this region and every region before it
	// on the chromosome.
	CumDelta PosType
	// StartAdj and EndAdj are the region's boundaries in the compressed
	// coordinate system.  EndAdj - StartAdj is always the threshold.
	StartAdj PosType
	EndAdj   PosType
}

// Len returns the uncompressed length of the region.
func (r Region) Len() PosType {
	return r.End - r.Start
}

// FixedLine is the piece of an intron which overlaps exon territory (usually
// of another group).  It can't be compressed, so it is drawn at original
// scale, shifted by the cumulative delta at its start.
type FixedLine struct {
	Interval
	CumDelta PosType
	StartAdj PosType
	EndAdj   PosType
}

// Adjusted is an input row annotated with its compressed coordinates.
type Adjusted struct {
	Interval
	// Row is the index of the row in the input slice.
	Row      int
	StartAdj PosType
	EndAdj   PosType
	// Delta is the Delta of the region which determines CumDelta, or 0 if no
	// region precedes the row.
	Delta    PosType
	CumDelta PosType
}

// Plan is the compression plan for one chromosome.
type Plan struct {
	Chrom      string
	Regions    []Region
	FixedLines []FixedLine
}

// Result holds everything computed for one chromosome.
type Result struct {
	Chrom      string
	Exons      []Adjusted
	Regions    []Region
	FixedLines []FixedLine
}

// Ticks returns the two parallel tick-position series for the chromosome's
// axis: positions in the compressed coordinate system, and the original
// coordinates to use as their labels.
func (r *Result) Ticks() (ticks, origTicks []PosType) {
	return regionTicks(r.Regions)
}
