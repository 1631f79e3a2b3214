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
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// Opts controls the shrinking transform.
type Opts struct {
	// Threshold is the width every compressed region is collapsed to.  Only
	// regions strictly longer than Threshold are compressed.
	Threshold PosType
}

// DefaultOpts sets the default values to Opts.
var DefaultOpts = Opts{
	Threshold: 0,
}

// Results maps chromosome names to their Result.
type Results map[string]*Result

// Chroms returns the chromosome names in sorted order.
func (rs Results) Chroms() []string {
	chroms := make([]string, 0, len(rs))
	for chrom := range rs {
		chroms = append(chroms, chrom)
	}
	sort.Strings(chroms)
	return chroms
}

// Regions returns the shrink regions of every chromosome, in the form
// RecalcAxis expects.
func (rs Results) Regions() map[string][]Region {
	regions := make(map[string][]Region, len(rs))
	for chrom, r := range rs {
		regions[chrom] = r.Regions
	}
	return regions
}

// ShrinkChrom runs the whole transform on the rows of a single chromosome.
// Row indexes in the result refer to exons.
func ShrinkChrom(chrom string, exons []Interval, opts Opts) (*Result, error) {
	plan, err := NewPlan(chrom, exons, opts.Threshold)
	if err != nil {
		return nil, err
	}
	adjusted, err := Adjust(exons, plan.Regions)
	if err != nil {
		return nil, err
	}
	return &Result{
		Chrom:      chrom,
		Exons:      adjusted,
		Regions:    plan.Regions,
		FixedLines: plan.FixedLines,
	}, nil
}

func validate(i int, iv Interval) error {
	switch {
	case iv.Chrom == "":
		return errors.E(errors.Invalid, fmt.Sprintf("shrink: row %d has no chromosome", i))
	case iv.Start < 0:
		return errors.E(errors.Invalid, fmt.Sprintf("shrink: row %d (%v) has a negative start", i, iv))
	case iv.End < iv.Start:
		return errors.E(errors.Invalid, fmt.Sprintf("shrink: row %d (%v) ends before it starts", i, iv))
	}
	return nil
}

// Shrink splits intervals by chromosome and runs ShrinkChrom on each of them,
// one chromosome after another in sorted order.  Row indexes in the result
// refer to intervals.  Any error aborts the whole call and no partial result
// is returned.
func Shrink(intervals []Interval, opts Opts) (Results, error) {
	byChrom := make(map[string][]int)
	for i, iv := range intervals {
		if err := validate(i, iv); err != nil {
			return nil, err
		}
		byChrom[iv.Chrom] = append(byChrom[iv.Chrom], i)
	}
	chroms := make([]string, 0, len(byChrom))
	for chrom := range byChrom {
		chroms = append(chroms, chrom)
	}
	sort.Strings(chroms)

	results := make(Results, len(chroms))
	var nRegions int
	for _, chrom := range chroms {
		rows := byChrom[chrom]
		exons := make([]Interval, len(rows))
		for j, row := range rows {
			exons[j] = intervals[row]
		}
		result, err := ShrinkChrom(chrom, exons, opts)
		if err != nil {
			return nil, err
		}
		for j := range result.Exons {
			result.Exons[j].Row = rows[result.Exons[j].Row]
		}
		nRegions += len(result.Regions)
		results[chrom] = result
	}
	log.Debug.Printf("shrink: %d rows on %d chromosome(s), %d region(s) compressed to %d",
		len(intervals), len(chroms), nRegions, opts.Threshold)
	return results, nil
}
