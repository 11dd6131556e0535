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

import (
	stdimage "image"
	"image/color"
)

// FromStd converts a standard library image. *image.Gray sources produce a
// Grayscale image; everything else is converted to Color through the RGBA
// color model, dropping alpha.
func FromStd(src stdimage.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if g, ok := src.(*stdimage.Gray); ok {
		img := New(Grayscale, w, h, DefaultMaxVal)
		p := img.planes[0]
		for y := range h {
			off := g.PixOffset(b.Min.X, b.Min.Y+y)
			copy(p.Row(y), g.Pix[off:off+w])
		}
		return img
	}

	img := New(Color, w, h, DefaultMaxVal)
	r, gr, bl := img.planes[Red], img.planes[Green], img.planes[Blue]
	for y := range h {
		rr, gg, bb := r.Row(y), gr.Row(y), bl.Row(y)
		for x := range w {
			c := color.RGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			rr[x], gg[x], bb[x] = c.R, c.G, c.B
		}
	}
	return img
}

// ToStd converts the image to *image.Gray (Grayscale) or an opaque
// *image.RGBA (Color). Samples are copied verbatim; maxval is not rescaled.
func (img *Image) ToStd() stdimage.Image {
	b := img.planes[0].Bounds()
	w, h := b.Width(), b.Height()
	rect := stdimage.Rect(b.X0, b.Y0, b.X1, b.Y1)

	if img.kind == Grayscale {
		g := stdimage.NewGray(rect)
		for y := range h {
			copy(g.Pix[y*g.Stride:y*g.Stride+w], img.planes[0].Row(y))
		}
		return g
	}

	out := stdimage.NewRGBA(rect)
	for y := range h {
		rr, gg, bb := img.planes[Red].Row(y), img.planes[Green].Row(y), img.planes[Blue].Row(y)
		row := out.Pix[y*out.Stride : y*out.Stride+4*w]
		for x := range w {
			row[4*x+0] = rr[x]
			row[4*x+1] = gg[x]
			row[4*x+2] = bb[x]
			row[4*x+3] = 0xff
		}
	}
	return out
}
