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

// See doc.go for documentation

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/rangeplot/interval"
	"github.com/grailbio/rangeplot/layout"
	"github.com/grailbio/rangeplot/shrink"
	"github.com/grailbio/rangeplot/track"
)

type cmdFlags struct {
	threshold  int
	idCol      string
	format     string
	region     string
	regionsBED string
	packed     bool
	out        string
	gzip       bool
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] table...\n", os.Args[0])
	flag.PrintDefaults()
	os.Exit(2)
}

// readInputs reads every input table, giving each its own source index.
func readInputs(ctx context.Context, paths []string, flags cmdFlags) ([]shrink.Interval, error) {
	var intervals []shrink.Interval
	for source, path := range paths {
		var (
			ivs []shrink.Interval
			err error
		)
		switch flags.format {
		case "tsv":
			ivs, err = track.ReadTable(ctx, path, track.TableOpts{IDCol: flags.idCol, Source: source})
		case "gtf":
			ivs, err = track.ReadGTF(ctx, path, track.GTFOpts{
				Feature: track.DefaultGTFOpts.Feature,
				IDAttr:  flags.idCol,
				Source:  source,
			})
		default:
			err = fmt.Errorf("unknown -format %q, expected tsv or gtf", flags.format)
		}
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, ivs...)
	}
	return intervals, nil
}

func run(ctx context.Context, paths []string, flags cmdFlags) error {
	if flags.threshold > interval.PosTypeMax {
		return fmt.Errorf("-threshold %d is larger than %d", flags.threshold, interval.PosTypeMax)
	}
	intervals, err := readInputs(ctx, paths, flags)
	if err != nil {
		return err
	}
	sel, err := newSelection(flags.region, flags.regionsBED)
	if err != nil {
		return err
	}
	intervals = selectGroups(intervals, sel)

	opts := shrink.DefaultOpts
	opts.Threshold = shrink.PosType(flags.threshold)
	results, err := shrink.Shrink(intervals, opts)
	if err != nil {
		return err
	}
	rows := layout.PackAll(results, flags.packed)
	return track.WriteResults(ctx, flags.out, results, rows, track.WriteOpts{IDCol: flags.idCol, Gzip: flags.gzip})
}

// registerFlags binds flags to fs.
func registerFlags(fs *flag.FlagSet, flags *cmdFlags) {
	fs.IntVar(&flags.threshold, "threshold", int(shrink.DefaultOpts.Threshold),
		"Gaps between exons longer than this many bases are shrunk to this length.")
	fs.StringVar(&flags.idCol, "id-col", track.DefaultTableOpts.IDCol,
		"Column (tsv) or attribute (gtf) holding the group id.")
	fs.StringVar(&flags.format, "format", "tsv", "Input format, tsv or gtf.")
	fs.StringVar(&flags.region, "region", "", `Only keep groups intersecting this region, e.g. "chr17:43044295-43125483".`)
	fs.StringVar(&flags.regionsBED, "regions-bed", "", "Only keep groups intersecting this BED file.")
	fs.BoolVar(&flags.packed, "packed", true, "Place non-overlapping groups on a shared track row. Use -packed=false for one row per group.")
	fs.StringVar(&flags.out, "out", "./shrunk", "Prefix of the output tables.")
	fs.BoolVar(&flags.gzip, "gzip", false, "Gzip the output tables.")
}

func main() {
	flag.Usage = usage
	flags := cmdFlags{}
	registerFlags(flag.CommandLine, &flags)

	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()

	if flag.NArg() == 0 {
		log.Fatal("at least one input table is required")
	}
	if err := run(ctx, flag.Args(), flags); err != nil {
		log.Fatal(err)
	}
	log.Printf("All done")
}
