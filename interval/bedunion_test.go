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

package interval

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBED = `# comment
chr1	2488104	2488172
chr1	2489165	2489273
chr1	2489200	2489907
chr2	100	200
chr1	2489907	2490000

chr3	50	50
`

func TestNewBEDUnion(t *testing.T) {
	u, err := NewBEDUnion(strings.NewReader(testBED))
	require.NoError(t, err)
	expect.EQ(t, u.Endpoints("chr1"), []PosType{2488104, 2488172, 2489165, 2490000})
	expect.EQ(t, u.Endpoints("chr2"), []PosType{100, 200})
	expect.EQ(t, u.Endpoints("chr3"), []PosType{})
	expect.EQ(t, u.ChrNames(), []string{"chr1", "chr2", "chr3"})

	assert.True(t, u.ContainsByName("chr1", 2488104))
	assert.False(t, u.ContainsByName("chr1", 2488172))
	assert.True(t, u.ContainsByName("chr1", 2489999))
	// Out-of-order query falls back to binary search.
	assert.True(t, u.ContainsByName("chr1", 2488105))
	assert.True(t, u.ContainsByName("chr2", 150))
	assert.False(t, u.ContainsByName("chr3", 50))
	assert.False(t, u.ContainsByName("chrX", 50))

	assert.True(t, u.IntersectsByName("chr2", 0, 101))
	assert.False(t, u.IntersectsByName("chr2", 0, 100))
	assert.False(t, u.IntersectsByName("chrX", 0, 1000))
}

func TestNewBEDUnionErrors(t *testing.T) {
	for _, bed := range []string{
		"chr1\t10\n",
		"chr1\t-1\t10\n",
		"chr1\t20\t10\n",
		"chr1\tx\t10\n",
	} {
		_, err := NewBEDUnion(strings.NewReader(bed))
		assert.Error(t, err, bed)
	}
}

func TestNewBEDUnionFromPath(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	path := filepath.Join(tempDir, "regions.bed.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := gzip.NewWriter(f)
	_, err = w.Write([]byte(testBED))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	u, err := NewBEDUnionFromPath(path)
	require.NoError(t, err)
	expect.EQ(t, u.Endpoints("chr2"), []PosType{100, 200})
}

func TestParseRegionString(t *testing.T) {
	tests := []struct {
		region  string
		chrName string
		start0  PosType
		end     PosType
	}{
		{"chr1:1-1000", "chr1", 0, 1000},
		{"chr1:1,001-2,000", "chr1", 1000, 2000},
		{"chr1:1000", "chr1", 999, 1000},
		{"chr1:5-5", "chr1", 4, 5},
		{"chr1", "chr1", 0, math.MaxInt32 - 1},
	}
	for _, tt := range tests {
		result, err := ParseRegionString(tt.region)
		expect.NoError(t, err)
		expect.EQ(t, result.ChrName, tt.chrName)
		expect.EQ(t, result.Start0, tt.start0)
		expect.EQ(t, result.End, tt.end)
	}

	for _, region := range []string{"", ":1-10", "chr1:0-10", "chr1:10-5", "chr1:a-b", "chr1:0"} {
		_, err := ParseRegionString(region)
		assert.Error(t, err, region)
	}
}
