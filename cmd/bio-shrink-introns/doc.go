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

/*Command bio-shrink-introns compresses the long introns of a set of
  transcript tracks so that a track diagram spends its width on exons.

  Each positional argument is a table of exon intervals.  With -format=tsv
  (the default) the table is tab-separated with a header naming the
  Chromosome, Start and End columns (0-based, half-open) and the group id
  column selected by -id-col; Strand and Feature columns are optional.  With
  -format=gtf the inputs are GTF annotations, and the exon rows are grouped
  by the -id-col attribute.  Inputs may be compressed.  Groups from different
  input files never merge, even when they share an id.

  Gaps between exons that no group covers with an exon and that are longer
  than -threshold are shortened to -threshold bases.  Four tables are
  written:

    <out>.exons.tsv    every input row with adjusted coordinates
    <out>.regions.tsv  the shrunk regions with their deltas
    <out>.fil.tsv      intron segments that run through other groups' exons
    <out>.ticks.tsv    axis ticks in adjusted and original coordinates

  The exons table carries a track_row for every group.  By default groups
  that do not overlap after shrinking share a row; -packed=false gives every
  group its own row.

  -region and -regions-bed restrict the output to groups with at least one
  row intersecting the given region or BED file.

  Usage: bio-shrink-introns -threshold=50 -out=/tmp/brca1 brca1.tsv
*/
package main
