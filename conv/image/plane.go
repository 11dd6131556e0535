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

package image

// Plane is a single channel 2D array of 8-bit samples stored in one flat
// buffer. Row y starts at y*Stride().
type Plane struct {
	data   []uint8
	width  int
	height int
	stride int // elements per row
}

// NewPlane creates a zeroed plane with the specified dimensions.
// Non-positive dimensions yield an empty 0x0 plane.
func NewPlane(width, height int) *Plane {
	if width <= 0 || height <= 0 {
		return &Plane{}
	}
	return &Plane{
		data:   make([]uint8, width*height),
		width:  width,
		height: height,
		stride: width,
	}
}

// Width returns the plane width in pixels.
func (p *Plane) Width() int {
	return p.width
}

// Height returns the plane height in pixels.
func (p *Plane) Height() int {
	return p.height
}

// Stride returns the number of elements per row.
func (p *Plane) Stride() int {
	return p.stride
}

// Len returns the number of pixels, width*height.
func (p *Plane) Len() int {
	return p.width * p.height
}

// Row returns a mutable slice for the specified row, limited to the plane
// width. Out of range rows return nil.
func (p *Plane) Row(y int) []uint8 {
	if y < 0 || y >= p.height || p.data == nil {
		return nil
	}
	start := y * p.stride
	return p.data[start : start+p.width]
}

// At returns the sample at position (x, y), or zero when out of bounds.
func (p *Plane) At(x, y int) uint8 {
	if x < 0 || x >= p.width || y < 0 || y >= p.height || p.data == nil {
		return 0
	}
	return p.data[y*p.stride+x]
}

// Set sets the sample at position (x, y). Out of bounds writes are ignored.
func (p *Plane) Set(x, y int, value uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height || p.data == nil {
		return
	}
	p.data[y*p.stride+x] = value
}

// Index returns the sample at flattened index i = y*width + x.
func (p *Plane) Index(i int) uint8 {
	return p.data[(i/p.width)*p.stride+i%p.width]
}

// SetIndex sets the sample at flattened index i = y*width + x.
func (p *Plane) SetIndex(i int, value uint8) {
	p.data[(i/p.width)*p.stride+i%p.width] = value
}

// SameSize returns true if both planes have the same dimensions.
func SameSize(a, b *Plane) bool {
	return a.width == b.width && a.height == b.height
}

// Clone creates a deep copy of the plane.
func (p *Plane) Clone() *Plane {
	if p.data == nil {
		return NewPlane(0, 0)
	}
	clone := &Plane{
		data:   make([]uint8, len(p.data)),
		width:  p.width,
		height: p.height,
		stride: p.stride,
	}
	copy(clone.data, p.data)
	return clone
}

// CopyFrom overwrites p with the contents of src. Both planes must have the
// same size; otherwise CopyFrom panics.
func (p *Plane) CopyFrom(src *Plane) {
	if !SameSize(p, src) {
		panic("image: CopyFrom on planes of different size")
	}
	for y := range p.height {
		copy(p.Row(y), src.Row(y))
	}
}

// Equal reports whether both planes have the same size and samples.
func (p *Plane) Equal(other *Plane) bool {
	if !SameSize(p, other) {
		return false
	}
	for y := range p.height {
		a, b := p.Row(y), other.Row(y)
		for x := range a {
			if a[x] != b[x] {
				return false
			}
		}
	}
	return true
}

// Fill sets all pixels to the specified value.
func (p *Plane) Fill(value uint8) {
	for i := range p.data {
		p.data[i] = value
	}
}

// Rect defines a rectangular region within a plane.
type Rect struct {
	X0, Y0 int // Top-left corner (inclusive)
	X1, Y1 int // Bottom-right corner (exclusive)
}

// Width returns the rectangle width.
func (r Rect) Width() int {
	return r.X1 - r.X0
}

// Height returns the rectangle height.
func (r Rect) Height() int {
	return r.Y1 - r.Y0
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X0 && x < r.X1 && y >= r.Y0 && y < r.Y1
}

// Bounds returns the bounding rectangle of the plane.
func (p *Plane) Bounds() Rect {
	return Rect{X0: 0, Y0: 0, X1: p.width, Y1: p.height}
}

// Interior returns the rectangle of pixels that have a full 3x3
// neighbourhood, i.e. the bounds minus a one pixel border.
func (p *Plane) Interior() Rect {
	return Rect{X0: 1, Y0: 1, X1: p.width - 1, Y1: p.height - 1}
}
