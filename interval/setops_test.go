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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnion(t *testing.T) {
	tests := []struct {
		name   string
		ranges []Range
		want   []PosType
	}{
		{"empty", nil, []PosType{}},
		{"single", []Range{{5, 15}}, []PosType{5, 15}},
		{"overlapping", []Range{{5, 15}, {7, 17}, {20, 25}}, []PosType{5, 17, 20, 25}},
		{"unsorted", []Range{{20, 25}, {7, 17}, {5, 15}}, []PosType{5, 17, 20, 25}},
		{"touching", []Range{{0, 10}, {10, 20}}, []PosType{0, 20}},
		{"contained", []Range{{0, 30}, {10, 20}}, []PosType{0, 30}},
		{"empty ranges dropped", []Range{{3, 3}, {10, 20}, {25, 25}}, []PosType{10, 20}},
		{"one apart", []Range{{0, 10}, {11, 20}}, []PosType{0, 10, 11, 20}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Union(tt.ranges), tt.name)
	}
}

func TestSetOps(t *testing.T) {
	tests := []struct {
		name                     string
		a, b                     []PosType
		merge, subtract, overlap []PosType
	}{
		{
			name:     "disjoint",
			a:        []PosType{0, 10},
			b:        []PosType{20, 30},
			merge:    []PosType{0, 10, 20, 30},
			subtract: []PosType{0, 10},
			overlap:  nil,
		},
		{
			name:     "touching",
			a:        []PosType{0, 10},
			b:        []PosType{10, 30},
			merge:    []PosType{0, 30},
			subtract: []PosType{0, 10},
			overlap:  nil,
		},
		{
			name:     "b splits a",
			a:        []PosType{0, 100},
			b:        []PosType{10, 20, 50, 60},
			merge:    []PosType{0, 100},
			subtract: []PosType{0, 10, 20, 50, 60, 100},
			overlap:  []PosType{10, 20, 50, 60},
		},
		{
			name:     "b covers a",
			a:        []PosType{10, 20},
			b:        []PosType{0, 100},
			merge:    []PosType{0, 100},
			subtract: nil,
			overlap:  []PosType{10, 20},
		},
		{
			name:     "shared endpoints",
			a:        []PosType{0, 10, 20, 30},
			b:        []PosType{0, 5, 25, 30},
			merge:    []PosType{0, 10, 20, 30},
			subtract: []PosType{5, 10, 20, 25},
			overlap:  []PosType{0, 5, 25, 30},
		},
		{
			name:     "empty b",
			a:        []PosType{3, 7},
			b:        nil,
			merge:    []PosType{3, 7},
			subtract: []PosType{3, 7},
			overlap:  nil,
		},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.merge, Merge(tt.a, tt.b), "%s: merge", tt.name)
		assert.Equal(t, tt.subtract, Subtract(tt.a, tt.b), "%s: subtract", tt.name)
		assert.Equal(t, tt.overlap, Intersect(tt.a, tt.b), "%s: intersect", tt.name)
		// Union is symmetric.
		assert.Equal(t, tt.merge, Merge(tt.b, tt.a), "%s: merge reversed", tt.name)
		assert.Equal(t, tt.overlap, Intersect(tt.b, tt.a), "%s: intersect reversed", tt.name)
	}
}

func TestIntersectRange(t *testing.T) {
	endpoints := []PosType{10, 20, 30, 40, 50, 60}
	tests := []struct {
		r    Range
		want []Range
	}{
		{Range{0, 10}, nil},
		{Range{0, 11}, []Range{{10, 11}}},
		{Range{15, 35}, []Range{{15, 20}, {30, 35}}},
		{Range{20, 30}, nil},
		{Range{19, 51}, []Range{{19, 20}, {30, 40}, {50, 51}}},
		{Range{55, 100}, []Range{{55, 60}}},
		{Range{60, 100}, nil},
		{Range{35, 35}, nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IntersectRange(tt.r, endpoints), "range %v", tt.r)
	}
	assert.Nil(t, IntersectRange(Range{0, 100}, nil))
}

func TestRanges(t *testing.T) {
	assert.Equal(t, []Range{{1, 2}, {5, 9}}, Ranges([]PosType{1, 2, 5, 9}))
	assert.Equal(t, []Range{}, Ranges(nil))
	assert.Panics(t, func() { Ranges([]PosType{1}) })
}

func TestEndpointIndex(t *testing.T) {
	endpoints := []PosType{5, 17, 20, 25}
	for pos, want := range map[PosType]bool{
		4: false, 5: true, 16: true, 17: false, 19: false, 20: true, 24: true, 25: false,
	} {
		assert.Equal(t, want, NewEndpointIndex(pos, endpoints).Contained(), "pos %d", pos)
	}

	ei := NewEndpointIndex(0, endpoints)
	assert.False(t, ei.Contained())
	ei.Update(6, endpoints)
	assert.True(t, ei.Contained())
	assert.Equal(t, EndpointIndex(0), ei.Begin())
	ei.Update(22, endpoints)
	assert.Equal(t, EndpointIndex(2), ei.Begin())
	ei.Update(30, endpoints)
	assert.True(t, ei.Finished(endpoints))
}
