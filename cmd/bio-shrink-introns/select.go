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

package main

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/rangeplot/interval"
	"github.com/grailbio/rangeplot/shrink"
)

// newSelection builds the region restriction from the -region and
// -regions-bed flags.  It returns nil if neither is set.
func newSelection(region, bedPath string) (*interval.BEDUnion, error) {
	var entries []interval.Entry
	if bedPath != "" {
		u, err := interval.NewBEDUnionFromPath(bedPath)
		if err != nil {
			return nil, err
		}
		for _, chr := range u.ChrNames() {
			for _, r := range interval.Ranges(u.Endpoints(chr)) {
				entries = append(entries, interval.Entry{ChrName: chr, Start0: r.Start, End: r.End})
			}
		}
	}
	if region != "" {
		e, err := interval.ParseRegionString(region)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if entries == nil {
		return nil, nil
	}
	u, err := interval.NewBEDUnionFromEntries(entries)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// selectGroups returns the rows of the groups that have at least one row
// intersecting sel, in input order.  Empty rows count as their first base.
func selectGroups(intervals []shrink.Interval, sel *interval.BEDUnion) []shrink.Interval {
	if sel == nil {
		return intervals
	}
	type chromGroup struct {
		chrom string
		key   shrink.GroupKey
	}
	keep := map[chromGroup]bool{}
	for _, iv := range intervals {
		var hit bool
		if iv.End == iv.Start {
			hit = sel.ContainsByName(iv.Chrom, iv.Start)
		} else {
			hit = sel.IntersectsByName(iv.Chrom, iv.Start, iv.End)
		}
		if hit {
			keep[chromGroup{iv.Chrom, iv.Key()}] = true
		}
	}
	var selected []shrink.Interval
	for _, iv := range intervals {
		if keep[chromGroup{iv.Chrom, iv.Key()}] {
			selected = append(selected, iv)
		}
	}
	log.Printf("region restriction kept %d of %d rows", len(selected), len(intervals))
	return selected
}
