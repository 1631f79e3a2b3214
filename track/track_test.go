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
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/rangeplot/layout"
	"github.com/grailbio/rangeplot/shrink"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTable = `# exported annotation
Chromosome	Start	End	Strand	gene	transcript_id
1	0	10	+	g1	t1
1	20	35	+	g1	t1
1	40	50	+	g1	t1
2	100	200	-	g2	t2
`

func TestParseTable(t *testing.T) {
	intervals, err := ParseTable(strings.NewReader(testTable), "test", TableOpts{IDCol: "transcript_id", Source: 3})
	require.NoError(t, err)
	require.Len(t, intervals, 4)
	expect.EQ(t, intervals[1], shrink.Interval{Chrom: "1", Start: 20, End: 35, GroupID: "t1", Strand: "+", Source: 3})
	expect.EQ(t, intervals[3], shrink.Interval{Chrom: "2", Start: 100, End: 200, GroupID: "t2", Strand: "-", Source: 3})

	// Any column can serve as the group id.
	intervals, err = ParseTable(strings.NewReader(testTable), "test", TableOpts{IDCol: "gene"})
	require.NoError(t, err)
	expect.EQ(t, intervals[0].GroupID, "g1")
}

func TestParseTableErrors(t *testing.T) {
	tests := []struct {
		name, table, errSubstr string
	}{
		{"empty", "", "empty table"},
		{"missing id", "Chromosome\tStart\tEnd\n1\t0\t10\n", `missing column "transcript_id"`},
		{"missing start", "Chromosome\tEnd\ttranscript_id\n1\t10\tt1\n", `missing column "Start"`},
		{"bad start", "Chromosome\tStart\tEnd\ttranscript_id\n1\tx\t10\tt1\n", "row 1: Start"},
		{"short row", "Chromosome\tStart\tEnd\ttranscript_id\n1\t0\t10\n", "row 1"},
	}
	for _, tt := range tests {
		_, err := ParseTable(strings.NewReader(tt.table), "test", DefaultTableOpts)
		require.Error(t, err, tt.name)
		assert.Contains(t, err.Error(), tt.errSubstr, tt.name)
	}
}

const testGTF = `##description: test
chr1	HAVANA	gene	100	400	.	-	.	gene_id "G1"; gene_name "A";
chr1	HAVANA	transcript	100	400	.	-	.	gene_id "G1"; transcript_id "T1";
chr1	HAVANA	exon	301	400	.	-	.	gene_id "G1"; transcript_id "T1"; exon_number 1;
chr1	HAVANA	exon	100	150	.	-	.	gene_id "G1"; transcript_id "T1"; exon_number 2;
chr1	HAVANA	exon	120	180	.	.	.	gene_id "G1"; transcript_id "T2";
chr1	HAVANA	CDS	310	390	.	-	0	gene_id "G1"; transcript_id "T1";
`

func TestParseGTF(t *testing.T) {
	intervals, err := ParseGTF(strings.NewReader(testGTF), "test", DefaultGTFOpts)
	require.NoError(t, err)
	expect.EQ(t, intervals, []shrink.Interval{
		{Chrom: "chr1", Start: 99, End: 150, GroupID: "T1", Feature: "exon", Strand: "-"},
		{Chrom: "chr1", Start: 300, End: 400, GroupID: "T1", Feature: "exon", Strand: "-"},
		{Chrom: "chr1", Start: 119, End: 180, GroupID: "T2", Feature: "exon"},
	})

	intervals, err = ParseGTF(strings.NewReader(testGTF), "test", GTFOpts{Feature: "exon", IDAttr: "gene_id", Source: 1})
	require.NoError(t, err)
	require.Len(t, intervals, 3)
	for _, iv := range intervals {
		expect.EQ(t, iv.GroupID, "G1")
		expect.EQ(t, iv.Source, 1)
	}

	_, err = ParseGTF(strings.NewReader(testGTF), "test", GTFOpts{IDAttr: "protein_id"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no protein_id attribute")
}

func TestParseInfoFields(t *testing.T) {
	fields := map[string]string{"stale": "x"}
	parseInfoFields(fields, ` gene_id "G1"; tag "basic"; level 2; flag;`)
	expect.EQ(t, fields, map[string]string{"gene_id": "G1", "tag": "basic", "level": "2", "flag": ""})
}

func TestReadTable(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()

	path := filepath.Join(tempDir, "ranges.tsv")
	require.NoError(t, ioutil.WriteFile(path, []byte(testTable), 0644))
	intervals, err := ReadTable(ctx, path, DefaultTableOpts)
	require.NoError(t, err)
	assert.Len(t, intervals, 4)

	_, err = ReadTable(ctx, filepath.Join(tempDir, "missing.tsv"), DefaultTableOpts)
	assert.Error(t, err)
}

func readLines(t *testing.T, path string, gz bool) []string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close() // nolint: errcheck
	var data []byte
	if gz {
		r, err := gzip.NewReader(f)
		require.NoError(t, err)
		data, err = ioutil.ReadAll(r)
		require.NoError(t, err)
	} else {
		data, err = ioutil.ReadAll(f)
		require.NoError(t, err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestWriteResults(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()

	intervals := []shrink.Interval{
		{Chrom: "1", Start: 0, End: 10, GroupID: "t1", Feature: "exon", Strand: "+"},
		{Chrom: "1", Start: 40, End: 60, GroupID: "t2", Feature: "exon", Strand: "+"},
		{Chrom: "1", Start: 100, End: 110, GroupID: "t1", Feature: "exon", Strand: "+"},
	}
	results, err := shrink.Shrink(intervals, shrink.Opts{Threshold: 10})
	require.NoError(t, err)
	rows := layout.PackAll(results, true)

	for _, gz := range []bool{false, true} {
		prefix := filepath.Join(tempDir, "out")
		opts := WriteOpts{IDCol: "transcript_id", Gzip: gz}
		require.NoError(t, WriteResults(ctx, prefix, results, rows, opts))

		expect.EQ(t, readLines(t, TablePath(prefix, ExonsSuffix, opts), gz), []string{
			"Chromosome\tStart\tEnd\ttranscript_id\tFeature\tStrand\tsource\trow\tStart_adj\tEnd_adj\tdelta\tcumdelta\ttrack_row",
			"1\t0\t10\tt1\texon\t+\t0\t0\t0\t10\t0\t0\t0",
			"1\t40\t60\tt2\texon\t+\t0\t1\t20\t40\t20\t20\t1",
			"1\t100\t110\tt1\texon\t+\t0\t2\t50\t60\t30\t50\t0",
		})
		expect.EQ(t, readLines(t, TablePath(prefix, RegionsSuffix, opts), gz), []string{
			"Chromosome\tStart\tEnd\tdelta\tcumdelta\tStart_adj\tEnd_adj",
			"1\t10\t40\t20\t20\t10\t20",
			"1\t60\t100\t30\t50\t40\t50",
		})
		expect.EQ(t, readLines(t, TablePath(prefix, FixedSuffix, opts), gz), []string{
			"Chromosome\tStart\tEnd\ttranscript_id\tStrand\tsource\tcumdelta\tStart_adj\tEnd_adj",
			"1\t40\t60\tt1\t+\t0\t20\t20\t40",
		})
		expect.EQ(t, readLines(t, TablePath(prefix, TicksSuffix, opts), gz), []string{
			"Chromosome\ttick\toriginal_tick",
			"1\t10\t10",
			"1\t20\t40",
			"1\t40\t60",
			"1\t50\t100",
		})
	}
}
