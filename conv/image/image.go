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

import "fmt"

//go:generate go tool stringer -type=Kind

// Kind is the sample layout of an Image.
type Kind int

const (
	// Grayscale images have a single channel plane.
	Grayscale Kind = iota
	// Color images have red, green and blue channel planes.
	Color
)

// Channels returns the number of channel planes for the kind.
func (k Kind) Channels() int {
	if k == Color {
		return 3
	}
	return 1
}

// Channel indexes the planes of an Image.
type Channel int

// Channel indices. Gray aliases the only plane of a Grayscale image.
const (
	Gray  Channel = 0
	Red   Channel = 0
	Green Channel = 1
	Blue  Channel = 2
)

// DefaultMaxVal is the usual sample ceiling for 8-bit images.
const DefaultMaxVal = 255

// Image is a decoded raster: one plane for Grayscale, three same-sized planes
// for Color.
type Image struct {
	kind   Kind
	maxval int
	planes []*Plane
}

// New creates a zeroed image of the given kind and dimensions.
func New(kind Kind, width, height, maxval int) *Image {
	img := &Image{
		kind:   kind,
		maxval: maxval,
		planes: make([]*Plane, kind.Channels()),
	}
	for c := range img.planes {
		img.planes[c] = NewPlane(width, height)
	}
	return img
}

// Kind returns the image kind.
func (img *Image) Kind() Kind {
	return img.kind
}

// Width returns the image width (all planes have the same size).
func (img *Image) Width() int {
	return img.planes[0].Width()
}

// Height returns the image height.
func (img *Image) Height() int {
	return img.planes[0].Height()
}

// MaxVal returns the sample ceiling declared by the container.
func (img *Image) MaxVal() int {
	return img.maxval
}

// Channels returns the number of planes.
func (img *Image) Channels() int {
	return len(img.planes)
}

// Plane returns the plane for channel c, or nil if c is out of range.
func (img *Image) Plane(c Channel) *Plane {
	if c < 0 || int(c) >= len(img.planes) {
		return nil
	}
	return img.planes[c]
}

// Clone creates a deep copy of the image.
func (img *Image) Clone() *Image {
	clone := &Image{
		kind:   img.kind,
		maxval: img.maxval,
		planes: make([]*Plane, len(img.planes)),
	}
	for c, p := range img.planes {
		clone.planes[c] = p.Clone()
	}
	return clone
}

// Equal reports whether both images have the same kind, maxval and samples.
func (img *Image) Equal(other *Image) bool {
	if img.kind != other.kind || img.maxval != other.maxval || len(img.planes) != len(other.planes) {
		return false
	}
	for c := range img.planes {
		if !img.planes[c].Equal(other.planes[c]) {
			return false
		}
	}
	return true
}

// String returns a short description such as "Color 640x480 maxval=255".
func (img *Image) String() string {
	return fmt.Sprintf("%s %dx%d maxval=%d", img.kind, img.Width(), img.Height(), img.maxval)
}
