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
)

type chromGroupKey struct {
	chrom string
	key   GroupKey
}

// DeriveIntrons returns the gaps between consecutive exons of each group, in
// order of each group's first appearance in exons.  Within a group, exons must
// be sorted by Start; otherwise an error of kind errors.Precondition is
// returned, since callers rely on the row order of the input.  Overlapping or
// touching exons of the same group are merged first, so every returned intron
// is nonempty.  Groups with fewer than two exons produce nothing.
func DeriveIntrons(exons []Interval) ([]Interval, error) {
	var order []chromGroupKey
	groups := make(map[chromGroupKey][]int)
	for i, exon := range exons {
		k := chromGroupKey{exon.Chrom, exon.Key()}
		rows, ok := groups[k]
		if !ok {
			order = append(order, k)
		} else if prev := exons[rows[len(rows)-1]]; exon.Start < prev.Start {
			return nil, errors.E(errors.Precondition, fmt.Sprintf(
				"shrink.DeriveIntrons: exons of group %q are not sorted by start (row %d starts at %d, after %d)",
				exon.GroupID, i, exon.Start, prev.Start))
		}
		groups[k] = append(rows, i)
	}

	var introns []Interval
	for _, k := range order {
		rows := groups[k]
		if len(rows) < 2 {
			continue
		}
		first := exons[rows[0]]
		curEnd := first.End
		for _, row := range rows[1:] {
			exon := exons[row]
			if exon.Start <= curEnd {
				if exon.End > curEnd {
					curEnd = exon.End
				}
				continue
			}
			introns = append(introns, Interval{
				Chrom:   k.chrom,
				Start:   curEnd,
				End:     exon.Start,
				GroupID: first.GroupID,
				Feature: FeatureIntron,
				Strand:  first.Strand,
				Source:  first.Source,
			})
			curEnd = exon.End
		}
	}
	return introns, nil
}
