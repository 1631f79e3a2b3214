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

// Adjust shifts every row of exons by the cumulative delta of the last region
// starting at or before the row's Start.  Rows before the first region are
// left unchanged.  Regions must belong to the same chromosome as exons and be
// sorted by start, as returned by NewPlan.
//
// The result has one element per input row, in input order, with Row set to
// the row's index.  A row without a GroupID is rejected with an error of kind
// errors.Invalid.
//
// Exons never overlap a region, so the cumulative delta found at Start also
// applies to End; looking End up separately would wrongly include a region
// which starts exactly where the exon ends.
func Adjust(exons []Interval, regions []Region) ([]Adjusted, error) {
	idx := newRegionIndex(regions)
	out := make([]Adjusted, len(exons))
	for i, exon := range exons {
		if exon.GroupID == "" {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("shrink.Adjust: row %d (%v) has no group id", i, exon))
		}
		a := Adjusted{Interval: exon, Row: i}
		if r := idx.lookup(exon.Start); r != nil {
			a.Delta = r.Delta
			a.CumDelta = r.CumDelta
		}
		a.StartAdj = exon.Start - a.CumDelta
		a.EndAdj = exon.End - a.CumDelta
		out[i] = a
	}
	return out, nil
}
