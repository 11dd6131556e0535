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

package stencil

import (
	stdimage "image"
	"math"
	"math/rand"
	"testing"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-stencil/conv/image"
	"github.com/ajroetker/go-stencil/conv/kernel"
	"github.com/ajroetker/go-stencil/conv/partition"
)

func uniform(w, h int, v uint8) *image.Plane {
	p := image.NewPlane(w, h)
	p.Fill(v)
	return p
}

func random(w, h int, seed int64) *image.Plane {
	rng := rand.New(rand.NewSource(seed))
	p := image.NewPlane(w, h)
	for i := range p.Len() {
		p.SetIndex(i, uint8(rng.Intn(256)))
	}
	return p
}

func rows(p *image.Plane) [][]uint8 {
	out := make([][]uint8, p.Height())
	for y := range out {
		out[y] = append([]uint8(nil), p.Row(y)...)
	}
	return out
}

func TestUniformSmooth(t *testing.T) {
	src := uniform(5, 5, 100)
	dst := src.Clone()
	Apply(dst, src, kernel.Smooth, Truncate, 255)

	if diff := cmp.Diff(rows(src), rows(dst)); diff != "" {
		t.Errorf("smooth changed a uniform field (-want +got):\n%s", diff)
	}
}

func TestUniformEmboss(t *testing.T) {
	src := uniform(5, 5, 100)
	dst := src.Clone()
	Apply(dst, src, kernel.Emboss, Truncate, 255)

	for y := range 5 {
		for x := range 5 {
			want := uint8(100)
			if src.Interior().Contains(x, y) {
				want = 0
			}
			assert.Equal(t, want, dst.At(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestInteriorSum(t *testing.T) {
	// 3x3 plane: only the center is interior.
	src := image.NewPlane(3, 3)
	for i := range 9 {
		src.SetIndex(i, uint8(10*(i+1)))
	}

	// Blur: (10+2*20+30 + 2*40+4*50+2*60 + 70+2*80+90) / 16 = 800/16 = 50
	assert.Equal(t, uint8(50), Sample(src, 4, kernel.Blur))
	// Emboss: north - south = 20 - 80 = -60, wraps to 196.
	assert.Equal(t, uint8(196), Sample(src, 4, kernel.Emboss))
	// Mean removal keeps the center.
	assert.Equal(t, uint8(50), Sample(src, 4, kernel.Mean))
}

func TestHugeSums(t *testing.T) {
	src := image.NewPlane(3, 3)
	src.SetIndex(4, 1)

	tests := []struct {
		name   string
		center float64
		mode   Mode
		want   uint8
	}{
		{"positive wraps from int32 max", 1e12, Truncate, 0xff},
		{"negative wraps from int32 min", -1e12, Truncate, 0x00},
		{"positive saturates", 1e12, Saturate, 255},
		{"negative saturates", -1e12, Saturate, 0},
		{"infinite", math.Inf(1), Truncate, 0xff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w kernel.Weights
			w[1][1] = tt.center
			e := Evaluator{Filter: kernel.Filter{Name: "big", Weights: w}, Mode: tt.mode}
			assert.Equal(t, tt.want, e.Sample(src, 4))
		})
	}

	nan := kernel.Weights{{math.Inf(1)}, {0, math.Inf(-1)}}
	src.SetIndex(0, 1)
	e := Evaluator{Filter: kernel.Filter{Name: "nan", Weights: nan}}
	assert.Equal(t, uint8(0), e.Sample(src, 4))
}

// TestInteriorMatchesBild cross-checks symmetric non-negative kernels against
// an independent convolution. bild rounds and clamps where the evaluator
// truncates, so interior samples may differ by one.
func TestInteriorMatchesBild(t *testing.T) {
	src := random(17, 11, 3)
	gray := stdimage.NewGray(stdimage.Rect(0, 0, src.Width(), src.Height()))
	for y := range src.Height() {
		copy(gray.Pix[y*gray.Stride:], src.Row(y))
	}

	for _, f := range []kernel.Filter{kernel.Smooth, kernel.Blur, kernel.Mean} {
		t.Run(f.Name, func(t *testing.T) {
			k := convolution.NewKernel(3, 3)
			for r := range 3 {
				for c := range 3 {
					k.Matrix[r*3+c] = f.Weights[r][c]
				}
			}
			want := convolution.Convolve(gray, k, &convolution.Options{})

			dst := src.Clone()
			Apply(dst, src, f, Truncate, 255)

			in := src.Interior()
			for y := in.Y0; y < in.Y1; y++ {
				for x := in.X0; x < in.X1; x++ {
					got, ref := int(dst.At(x, y)), int(want.RGBAAt(x, y).R)
					if d := got - ref; d < -1 || d > 1 {
						t.Errorf("pixel (%d,%d) = %d, bild = %d", x, y, got, ref)
					}
				}
			}
		})
	}
}

func TestTruncationToward0(t *testing.T) {
	src := image.NewPlane(3, 3)
	src.SetIndex(1, 7) // north neighbour
	f := kernel.Filter{Name: "half-north", Weights: kernel.Weights{{0, 0.5, 0}}}

	// 3.5 truncates to 3.
	assert.Equal(t, uint8(3), Sample(src, 4, f))
}

func TestSaturate(t *testing.T) {
	src := image.NewPlane(3, 3)
	src.SetIndex(1, 20)
	src.SetIndex(7, 80)

	e := Evaluator{Filter: kernel.Emboss, Mode: Saturate}
	assert.Equal(t, uint8(0), e.Sample(src, 4), "negative results clamp to 0")

	src.SetIndex(1, 250)
	src.SetIndex(7, 0)
	e = Evaluator{Filter: kernel.Filter{Name: "double-north", Weights: kernel.Weights{{0, 2, 0}}}, Mode: Saturate, MaxVal: 200}
	assert.Equal(t, uint8(200), e.Sample(src, 4), "large results clamp to maxval")

	e.Mode = Truncate
	assert.Equal(t, uint8(500%256), e.Sample(src, 4))
}

func TestBorderInvariance(t *testing.T) {
	for _, f := range kernel.Builtins() {
		for _, size := range [][2]int{{1, 1}, {1, 7}, {7, 1}, {2, 2}, {6, 4}, {17, 9}} {
			w, h := size[0], size[1]
			src := random(w, h, int64(w*h))
			dst := image.NewPlane(w, h)
			Apply(dst, src, f, Truncate, 255)

			for y := range h {
				for x := range w {
					if src.Interior().Contains(x, y) {
						continue
					}
					require.Equal(t, src.At(x, y), dst.At(x, y), "%s %dx%d border (%d,%d)", f.Name, w, h, x, y)
				}
			}
		}
	}
}

func TestApplyRangeTouchesOnlyOwnedIndices(t *testing.T) {
	src := random(8, 6, 3)
	dst := image.NewPlane(8, 6)
	dst.Fill(1)

	r := partition.For(src.Len(), 3, 1)
	e := Evaluator{Filter: kernel.Sharpen}
	e.ApplyRange(dst, src, r)

	for i := range src.Len() {
		if r.Contains(i) {
			assert.Equal(t, e.Sample(src, i), dst.Index(i), "owned index %d", i)
		} else {
			assert.Equal(t, uint8(1), dst.Index(i), "foreign index %d", i)
		}
	}
}

func TestPartitionedEqualsWhole(t *testing.T) {
	src := random(13, 11, 42)
	want := image.NewPlane(13, 11)
	Apply(want, src, kernel.Blur, Truncate, 255)

	for workers := 1; workers <= 9; workers++ {
		got := image.NewPlane(13, 11)
		e := Evaluator{Filter: kernel.Blur}
		for _, r := range partition.All(src.Len(), workers) {
			e.ApplyRange(got, src, r)
		}
		assert.True(t, got.Equal(want), "workers=%d", workers)
	}
}

func BenchmarkApply(b *testing.B) {
	src := random(1920, 1080, 1)
	dst := image.NewPlane(1920, 1080)
	b.SetBytes(int64(src.Len()))
	b.ResetTimer()
	for range b.N {
		Apply(dst, src, kernel.Sharpen, Truncate, 255)
	}
}
