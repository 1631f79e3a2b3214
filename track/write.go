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

package track

import (
	"context"
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/rangeplot/shrink"
	"github.com/klauspost/compress/gzip"
)

// Column names specific to the output tables.
const (
	SourceCol   = "source"
	StartAdjCol = "Start_adj"
	EndAdjCol   = "End_adj"
	DeltaCol    = "delta"
	CumDeltaCol = "cumdelta"
	RowCol      = "row"
	TrackRowCol = "track_row"
	TickCol     = "tick"
	OrigTickCol = "original_tick"
)

// Suffixes of the files written by WriteResults.
const (
	ExonsSuffix   = ".exons.tsv"
	RegionsSuffix = ".regions.tsv"
	FixedSuffix   = ".fil.tsv"
	TicksSuffix   = ".ticks.tsv"
)

// WriteOpts controls WriteResults.
type WriteOpts struct {
	// IDCol is the header of the group id column.
	IDCol string
	// Gzip compresses every table and appends ".gz" to the file names.
	Gzip bool
}

// DefaultWriteOpts sets the default values to WriteOpts.
var DefaultWriteOpts = WriteOpts{
	IDCol: DefaultTableOpts.IDCol,
}

// TablePath returns the path of one of the tables written by WriteResults.
func TablePath(prefix, suffix string, opts WriteOpts) string {
	if opts.Gzip {
		return prefix + suffix + ".gz"
	}
	return prefix + suffix
}

// writeTable creates path, writes header and then lets writeRows fill in the
// body.
func writeTable(ctx context.Context, path string, gz bool, header []string, writeRows func(w *tsv.Writer) error) (err error) {
	var out file.File
	if out, err = file.Create(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, out, &err)

	var dst io.Writer = out.Writer(ctx)
	if gz {
		zw := gzip.NewWriter(dst)
		defer func() {
			if e := zw.Close(); e != nil && err == nil {
				err = e
			}
		}()
		dst = zw
	}
	w := tsv.NewWriter(dst)
	for _, col := range header {
		w.WriteString(col)
	}
	if err = w.EndLine(); err != nil {
		return
	}
	if err = writeRows(w); err != nil {
		return
	}
	err = w.Flush()
	return
}

func writePos(w *tsv.Writer, positions ...shrink.PosType) {
	for _, pos := range positions {
		w.WriteInt64(int64(pos))
	}
}

// WriteResults writes the four tables a renderer needs, named after prefix:
//   <prefix>.exons.tsv    input rows with their adjusted coordinates and the
//                         display row of their group (-1 if rows is nil)
//   <prefix>.regions.tsv  shrink regions
//   <prefix>.fil.tsv      fixed intron lines
//   <prefix>.ticks.tsv    axis ticks, one (tick, original_tick) pair per line
// Chromosomes are written in sorted order.
func WriteResults(ctx context.Context, prefix string, results shrink.Results, rows map[string]map[shrink.GroupKey]int, opts WriteOpts) error {
	if opts.IDCol == "" {
		opts.IDCol = DefaultWriteOpts.IDCol
	}
	chroms := results.Chroms()

	exonHeader := []string{ChromCol, StartCol, EndCol, opts.IDCol, FeatureCol, StrandCol, SourceCol, RowCol,
		StartAdjCol, EndAdjCol, DeltaCol, CumDeltaCol, TrackRowCol}
	if err := writeTable(ctx, TablePath(prefix, ExonsSuffix, opts), opts.Gzip, exonHeader, func(w *tsv.Writer) error {
		for _, chrom := range chroms {
			for _, a := range results[chrom].Exons {
				trackRow := -1
				if row, ok := rows[chrom][a.Key()]; ok {
					trackRow = row
				}
				w.WriteString(a.Chrom)
				writePos(w, a.Start, a.End)
				w.WriteString(a.GroupID)
				w.WriteString(a.Feature)
				w.WriteString(a.Strand)
				w.WriteInt64(int64(a.Source))
				w.WriteInt64(int64(a.Row))
				writePos(w, a.StartAdj, a.EndAdj, a.Delta, a.CumDelta)
				w.WriteInt64(int64(trackRow))
				if err := w.EndLine(); err != nil {
					return err
				}
			}
		}
		return nil
	}); err != nil {
		return err
	}

	regionHeader := []string{ChromCol, StartCol, EndCol, DeltaCol, CumDeltaCol, StartAdjCol, EndAdjCol}
	if err := writeTable(ctx, TablePath(prefix, RegionsSuffix, opts), opts.Gzip, regionHeader, func(w *tsv.Writer) error {
		for _, chrom := range chroms {
			for _, r := range results[chrom].Regions {
				w.WriteString(r.Chrom)
				writePos(w, r.Start, r.End, r.Delta, r.CumDelta, r.StartAdj, r.EndAdj)
				if err := w.EndLine(); err != nil {
					return err
				}
			}
		}
		return nil
	}); err != nil {
		return err
	}

	fixedHeader := []string{ChromCol, StartCol, EndCol, opts.IDCol, StrandCol, SourceCol, CumDeltaCol, StartAdjCol, EndAdjCol}
	if err := writeTable(ctx, TablePath(prefix, FixedSuffix, opts), opts.Gzip, fixedHeader, func(w *tsv.Writer) error {
		for _, chrom := range chroms {
			for _, l := range results[chrom].FixedLines {
				w.WriteString(l.Chrom)
				writePos(w, l.Start, l.End)
				w.WriteString(l.GroupID)
				w.WriteString(l.Strand)
				w.WriteInt64(int64(l.Source))
				writePos(w, l.CumDelta, l.StartAdj, l.EndAdj)
				if err := w.EndLine(); err != nil {
					return err
				}
			}
		}
		return nil
	}); err != nil {
		return err
	}

	ticks, origTicks := shrink.RecalcAxis(results.Regions())
	tickHeader := []string{ChromCol, TickCol, OrigTickCol}
	if err := writeTable(ctx, TablePath(prefix, TicksSuffix, opts), opts.Gzip, tickHeader, func(w *tsv.Writer) error {
		for _, chrom := range chroms {
			for i, tick := range ticks[chrom] {
				w.WriteString(chrom)
				writePos(w, tick, origTicks[chrom][i])
				if err := w.EndLine(); err != nil {
					return err
				}
			}
		}
		return nil
	}); err != nil {
		return err
	}
	log.Printf("results for %d chromosome(s) written to %s.{exons,regions,fil,ticks}.tsv", len(chroms), prefix)
	return nil
}
