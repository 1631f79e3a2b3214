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

// Package layout assigns display rows to the groups of a chromosome after
// shrinking, so that a renderer can stack transcripts without collisions.
package layout

import (
	"fmt"
	"sort"

	"github.com/biogo/store/interval"
	"github.com/grailbio/rangeplot/shrink"
)

// Span is the extent of one group in compressed coordinates.
type Span struct {
	Key   shrink.GroupKey
	Start shrink.PosType
	End   shrink.PosType
	// First is the index, in the chromosome's exons, of the group's first row.
	First int
}

// spanInterval adapts a Span to biogo's integer interval tree.
type spanInterval struct {
	start, end int
	uid        uintptr
}

func (s spanInterval) Overlap(b interval.IntRange) bool {
	// Half-open interval indexing.
	return s.end > b.Start && s.start < b.End
}
func (s spanInterval) ID() uintptr              { return s.uid }
func (s spanInterval) Range() interval.IntRange { return interval.IntRange{Start: s.start, End: s.end} }
func (s spanInterval) String() string           { return fmt.Sprintf("[%d,%d)#%d", s.start, s.end, s.uid) }

// Spans returns the span of every group of result, from the smallest StartAdj
// to the largest EndAdj of its rows, in order of first appearance.
func Spans(result *shrink.Result) []Span {
	var spans []Span
	index := make(map[shrink.GroupKey]int)
	for i, a := range result.Exons {
		key := a.Key()
		j, ok := index[key]
		if !ok {
			index[key] = len(spans)
			spans = append(spans, Span{Key: key, Start: a.StartAdj, End: a.EndAdj, First: i})
			continue
		}
		if a.StartAdj < spans[j].Start {
			spans[j].Start = a.StartAdj
		}
		if a.EndAdj > spans[j].End {
			spans[j].End = a.EndAdj
		}
	}
	return spans
}

// Pack assigns a row number to every group of result.  Without packed, each
// group gets its own row, in order of first appearance.  With packed, groups
// are taken in order of span start and each goes to the lowest row where it
// overlaps no group already placed.
func Pack(result *shrink.Result, packed bool) map[shrink.GroupKey]int {
	spans := Spans(result)
	rows := make(map[shrink.GroupKey]int, len(spans))
	if !packed {
		for i, s := range spans {
			rows[s.Key] = i
		}
		return rows
	}

	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	var trees []*interval.IntTree
	for i, s := range spans {
		iv := spanInterval{start: int(s.Start), end: int(s.End), uid: uintptr(i)}
		if iv.end == iv.start {
			// Give empty spans one position so they still claim a row slot.
			iv.end++
		}
		row := 0
		for ; row < len(trees); row++ {
			if len(trees[row].Get(iv)) == 0 {
				break
			}
		}
		if row == len(trees) {
			trees = append(trees, &interval.IntTree{})
		}
		if err := trees[row].Insert(iv, false); err != nil {
			panic(fmt.Sprintf("internal error: layout.Pack: insert %v: %v", iv, err))
		}
		rows[s.Key] = row
	}
	return rows
}

// PackAll runs Pack on every chromosome of results.
func PackAll(results shrink.Results, packed bool) map[string]map[shrink.GroupKey]int {
	all := make(map[string]map[shrink.GroupKey]int, len(results))
	for chrom, result := range results {
		all[chrom] = Pack(result, packed)
	}
	return all
}
