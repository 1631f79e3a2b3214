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

/*Package interval implements the interval-set operations used for shrinking
  genomic coordinate systems.

  Interval unions are represented as a sorted []PosType of endpoints: the
  (0-based) start of interval #k is in element [2k] and its end is in element
  [2k+1].  Overlapping and touching intervals are always merged, so the
  sequence is strictly increasing.  Union, Subtract and Intersect combine such
  sequences with a single sweep over both endpoint lists.

  BEDUnion wraps the same representation in a chromosome-keyed map, loaded from
  BED files or region strings, for restricting work to target regions.
*/
package interval
