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

/*Package shrink computes the compressed coordinate system used to draw
  transcripts with long introns.

  Given the exons of every transcript on a chromosome, the introns between
  consecutive exons are derived, the parts of them not covered by any exon are
  merged into shrink regions, and every region longer than a threshold is
  collapsed to exactly the threshold width.  Exons keep their size and order;
  they are only shifted left by the total length removed before them (the
  cumulative delta).  The fixed intron lines (intron pieces which overlap
  another transcript's exons) are shifted the same way, and RecalcAxis
  produces the tick positions a renderer needs to label the compressed axis
  with original coordinates.

  Each chromosome is processed independently, and results are returned as one
  Result per chromosome.
*/
package shrink
