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

	"github.com/grailbio/base/errors"
	"github.com/grailbio/rangeplot/interval"
	"v.io/x/lib/vlog"
)

func ranges(ivs []Interval) []interval.Range {
	out := make([]interval.Range, len(ivs))
	for i, iv := range ivs {
		out[i] = iv.Range()
	}
	return out
}

// occupied returns the positions no region may cover.  An empty row still
// pins its position, so it counts as [Start, Start+1) here; otherwise it
// would sit inside a region and be shifted past the rows before it.
func occupied(exons []Interval) []PosType {
	out := make([]interval.Range, len(exons))
	for i, exon := range exons {
		out[i] = exon.Range()
		if out[i].End == out[i].Start {
			out[i].End++
		}
	}
	return interval.Union(out)
}

// NewPlan computes the shrink regions and fixed intron lines for the exons of
// one chromosome.  Only the parts of introns not covered by any exon (of any
// group, on either strand) can be compressed; these are merged, and each
// merged region strictly longer than thresh is collapsed to thresh.  A region
// of length exactly thresh is left alone.  An empty row blocks the single
// position it starts at.
//
// If nothing qualifies, the returned plan has no regions and no fixed lines,
// and Adjust becomes the identity.
func NewPlan(chrom string, exons []Interval, thresh PosType) (*Plan, error) {
	if thresh < 0 {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("shrink.NewPlan: negative threshold %d", thresh))
	}
	plan := &Plan{Chrom: chrom}
	if len(exons) == 0 {
		return plan, nil
	}
	introns, err := DeriveIntrons(exons)
	if err != nil {
		return nil, err
	}
	if len(introns) == 0 {
		vlog.VI(1).Infof("%s: no introns in %d exons", chrom, len(exons))
		return plan, nil
	}

	exonUnion := interval.Union(ranges(exons))
	flexible := interval.Subtract(interval.Union(ranges(introns)), occupied(exons))
	for _, r := range interval.Ranges(flexible) {
		if r.Len() > thresh {
			plan.Regions = append(plan.Regions, Region{Chrom: chrom, Start: r.Start, End: r.End})
		}
	}
	if len(plan.Regions) == 0 {
		vlog.VI(1).Infof("%s: %d introns, none longer than %d", chrom, len(introns), thresh)
		return plan, nil
	}

	checkRegionsSorted(plan.Regions)
	var cumDelta PosType
	for i := range plan.Regions {
		r := &plan.Regions[i]
		r.Delta = r.Len() - thresh
		r.StartAdj = r.Start - cumDelta
		cumDelta += r.Delta
		r.CumDelta = cumDelta
		r.EndAdj = r.End - cumDelta
	}

	idx := newRegionIndex(plan.Regions)
	for _, intron := range introns {
		for _, piece := range interval.IntersectRange(intron.Range(), exonUnion) {
			line := FixedLine{Interval: intron}
			line.Start, line.End = piece.Start, piece.End
			line.Feature = FeatureFixedLine
			if r := idx.lookup(piece.Start); r != nil {
				line.CumDelta = r.CumDelta
			}
			line.StartAdj = line.Start - line.CumDelta
			line.EndAdj = line.End - line.CumDelta
			plan.FixedLines = append(plan.FixedLines, line)
		}
	}
	vlog.VI(1).Infof("%s: %d introns, %d shrink regions, %d fixed lines, %d positions removed",
		chrom, len(introns), len(plan.Regions), len(plan.FixedLines), cumDelta)
	return plan, nil
}

// checkRegionsSorted panics unless regions are sorted by start and pairwise
// disjoint.  The regions come out of a merge, so a violation is a bug.
func checkRegionsSorted(regions []Region) {
	for i := 1; i < len(regions); i++ {
		if regions[i].Start < regions[i-1].End {
			panic(fmt.Sprintf("internal error: shrink regions out of order: %+v before %+v", regions[i-1], regions[i]))
		}
	}
}

// regionIndex finds the last region starting at or before a position.
type regionIndex struct {
	starts  []PosType
	regions []Region
}

func newRegionIndex(regions []Region) regionIndex {
	checkRegionsSorted(regions)
	starts := make([]PosType, len(regions))
	for i, r := range regions {
		starts[i] = r.Start
	}
	return regionIndex{starts: starts, regions: regions}
}

// lookup returns the last region whose Start is <= pos, or nil if there is
// none.
func (idx regionIndex) lookup(pos PosType) *Region {
	// SearchPosTypes(starts, pos+1) is the number of starts <= pos.
	n := interval.SearchPosTypes(idx.starts, pos+1)
	if n == 0 {
		return nil
	}
	return &idx.regions[n-1]
}
