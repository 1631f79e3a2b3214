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

// RecalcAxis computes the axis ticks of every chromosome from its shrink
// regions.  For region i, ticks gets the region's start shifted by the
// cumulative delta of region i-1 and its end shifted by its own cumulative
// delta, while origTicks gets the unshifted start and end.  Chromosomes
// without regions get empty lists, since their axis is linear.
func RecalcAxis(regions map[string][]Region) (ticks, origTicks map[string][]PosType) {
	ticks = make(map[string][]PosType, len(regions))
	origTicks = make(map[string][]PosType, len(regions))
	for chrom, chromRegions := range regions {
		ticks[chrom], origTicks[chrom] = regionTicks(chromRegions)
	}
	return
}

func regionTicks(regions []Region) (ticks, origTicks []PosType) {
	ticks = make([]PosType, 0, 2*len(regions))
	origTicks = make([]PosType, 0, 2*len(regions))
	var prevCumDelta PosType
	for _, r := range regions {
		ticks = append(ticks, r.Start-prevCumDelta, r.End-r.CumDelta)
		origTicks = append(origTicks, r.Start, r.End)
		prevCumDelta = r.CumDelta
	}
	return
}
