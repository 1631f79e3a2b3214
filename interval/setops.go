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

package interval

import (
	"fmt"
	"sort"
)

// Range is a single left-closed right-open interval on an implied
// chromosome.
type Range struct {
	Start PosType
	End   PosType
}

// Len returns the number of positions covered by r.
func (r Range) Len() PosType {
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Union returns the endpoint sequence of the union of ranges.  The input does
// not need to be sorted.  Overlapping and touching ranges are merged, and
// empty ranges are dropped.
func Union(ranges []Range) []PosType {
	sorted := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		if r.End > r.Start {
			sorted = append(sorted, r)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})
	endpoints := make([]PosType, 0, 2*len(sorted))
	for _, r := range sorted {
		n := len(endpoints)
		if n > 0 && r.Start <= endpoints[n-1] {
			// Intervals overlap or touch, merge them.
			if r.End > endpoints[n-1] {
				endpoints[n-1] = r.End
			}
			continue
		}
		endpoints = append(endpoints, r.Start, r.End)
	}
	return endpoints
}

// Ranges converts an endpoint sequence back to a []Range.
func Ranges(endpoints []PosType) []Range {
	if len(endpoints)&1 != 0 {
		panic(fmt.Sprintf("internal error: odd endpoint count %d", len(endpoints)))
	}
	ranges := make([]Range, 0, len(endpoints)/2)
	for i := 0; i < len(endpoints); i += 2 {
		ranges = append(ranges, Range{endpoints[i], endpoints[i+1]})
	}
	return ranges
}

// sweep walks the endpoints of a and b in increasing order and emits a new
// endpoint each time keep(inA, inB) changes value.  Both inputs must be valid
// endpoint sequences (strictly increasing, even length); the output is one
// too.
func sweep(a, b []PosType, keep func(inA, inB bool) bool) []PosType {
	var out []PosType
	ia, ib := 0, 0
	inside := false
	for ia < len(a) || ib < len(b) {
		var pos PosType
		switch {
		case ia == len(a):
			pos = b[ib]
		case ib == len(b):
			pos = a[ia]
		case a[ia] <= b[ib]:
			pos = a[ia]
		default:
			pos = b[ib]
		}
		if ia < len(a) && a[ia] == pos {
			ia++
		}
		if ib < len(b) && b[ib] == pos {
			ib++
		}
		// Membership of [pos, next endpoint) is the parity of the number of
		// endpoints passed so far.
		if now := keep(ia&1 == 1, ib&1 == 1); now != inside {
			out = append(out, pos)
			inside = now
		}
	}
	return out
}

// Merge returns the union of two endpoint sequences.
func Merge(a, b []PosType) []PosType {
	return sweep(a, b, func(inA, inB bool) bool { return inA || inB })
}

// Subtract returns the positions of a which are not in b.
func Subtract(a, b []PosType) []PosType {
	return sweep(a, b, func(inA, inB bool) bool { return inA && !inB })
}

// Intersect returns the positions contained in both a and b.
func Intersect(a, b []PosType) []PosType {
	return sweep(a, b, func(inA, inB bool) bool { return inA && inB })
}

// IntersectRange returns the pieces of r which lie inside the union described
// by endpoints, in increasing order.
func IntersectRange(r Range, endpoints []PosType) []Range {
	if r.End <= r.Start {
		return nil
	}
	var out []Range
	idx := NewEndpointIndex(r.Start, endpoints).Begin()
	for ; !idx.Finished(endpoints) && endpoints[idx] < r.End; idx += 2 {
		start, end := endpoints[idx], endpoints[idx+1]
		if start < r.Start {
			start = r.Start
		}
		if end > r.End {
			end = r.End
		}
		if start < end {
			out = append(out, Range{start, end})
		}
	}
	return out
}
