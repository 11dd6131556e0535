// Copyright 2025 go-stencil Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package stencil evaluates 3x3 filters on a single channel plane.
//
// Evaluation always reads from a read-only snapshot and writes into a
// separate destination plane, so neighbour reads never observe values
// produced by the same pass. Border pixels (first and last row, first and
// last column) are passed through unchanged.
package stencil

import (
	"math"

	"github.com/ajroetker/go-stencil/conv/image"
	"github.com/ajroetker/go-stencil/conv/kernel"
	"github.com/ajroetker/go-stencil/conv/partition"
)

// Mode selects how an accumulated value is converted back to a sample.
type Mode int

const (
	// Truncate truncates toward zero and keeps the low 8 bits. Results
	// outside [0, 255] wrap around instead of being clamped.
	Truncate Mode = iota

	// Saturate truncates toward zero and clamps to [0, maxval].
	Saturate
)

func (m Mode) String() string {
	switch m {
	case Truncate:
		return "truncate"
	case Saturate:
		return "saturate"
	}
	return "unknown"
}

// Evaluator computes output samples for one filter.
type Evaluator struct {
	Filter kernel.Filter
	Mode   Mode
	MaxVal int // ceiling used by Saturate; 0 means image.DefaultMaxVal
}

// Sample returns the filtered value at flattened index i of src, where
// (row, col) = (i / width, i % width).
func (e *Evaluator) Sample(src *image.Plane, i int) uint8 {
	w, h := src.Width(), src.Height()
	row, col := i/w, i%w
	if row == 0 || col == 0 || row == h-1 || col == w-1 {
		return src.Index(i)
	}

	var sum float64
	for dr := -1; dr <= 1; dr++ {
		line := src.Row(row + dr)
		for dc := -1; dc <= 1; dc++ {
			// The explicit conversion keeps the product from being fused
			// into an FMA, so every architecture rounds the same way.
			sum += float64(e.Filter.Weights[dr+1][dc+1] * float64(line[col+dc]))
		}
	}
	return e.convert(sum)
}

// convert truncates v toward zero and reduces it to a byte. Sums beyond the
// int32 range are clamped first, since converting such a float to int is
// implementation-defined; NaN maps to 0.
func (e *Evaluator) convert(v float64) uint8 {
	if v != v {
		v = 0
	}
	n := int(min(max(v, math.MinInt32), math.MaxInt32))
	if e.Mode == Saturate {
		ceil := e.MaxVal
		if ceil <= 0 || ceil > image.DefaultMaxVal {
			ceil = image.DefaultMaxVal
		}
		return uint8(min(max(n, 0), ceil))
	}
	return uint8(n)
}

// ApplyRange writes the filtered value of every index in r into dst, reading
// neighbourhoods from src. Indices outside r are left untouched. dst and src
// must have the same size and must not alias.
func (e *Evaluator) ApplyRange(dst, src *image.Plane, r partition.Range) {
	if r.Empty() {
		return
	}
	w := src.Width()
	for i := r.Lo; i < r.Hi; {
		row, col := i/w, i%w
		end := min(r.Hi, (row+1)*w)
		out := dst.Row(row)
		for ; i < end; i, col = i+1, col+1 {
			out[col] = e.Sample(src, i)
		}
	}
}

// Sample evaluates f at flattened index i of src using Truncate mode.
func Sample(src *image.Plane, i int, f kernel.Filter) uint8 {
	e := Evaluator{Filter: f}
	return e.Sample(src, i)
}

// Apply filters a whole plane into dst. It is the single worker case of the
// distributed pipeline and is used as its reference.
func Apply(dst, src *image.Plane, f kernel.Filter, mode Mode, maxval int) {
	e := Evaluator{Filter: f, Mode: mode, MaxVal: maxval}
	e.ApplyRange(dst, src, partition.For(src.Len(), 1, 0))
}
