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
	"testing"
)

func TestNewPlane(t *testing.T) {
	p := NewPlane(100, 50)

	if p.Width() != 100 {
		t.Errorf("Width: got %d, want 100", p.Width())
	}
	if p.Height() != 50 {
		t.Errorf("Height: got %d, want 50", p.Height())
	}
	if p.Stride() < 100 {
		t.Errorf("Stride: got %d, want >= 100", p.Stride())
	}
	if p.Len() != 5000 {
		t.Errorf("Len: got %d, want 5000", p.Len())
	}
}

func TestNewPlane_ZeroDimensions(t *testing.T) {
	p := NewPlane(0, 0)
	if p.Width() != 0 || p.Height() != 0 {
		t.Errorf("Zero dimensions: got %dx%d, want 0x0", p.Width(), p.Height())
	}

	p = NewPlane(-1, 10)
	if p.Width() != 0 || p.Height() != 0 {
		t.Errorf("Negative width: got %dx%d, want 0x0", p.Width(), p.Height())
	}
}

func TestPlane_Row(t *testing.T) {
	p := NewPlane(10, 5)

	row0 := p.Row(0)
	for i := range 10 {
		row0[i] = uint8(i)
	}
	for i := range 10 {
		if got := p.At(i, 0); got != uint8(i) {
			t.Errorf("At(%d,0): got %d, want %d", i, got, i)
		}
	}

	// Different row should be independent
	row1 := p.Row(1)
	row1[0] = 99
	if row0[0] == 99 {
		t.Error("Rows should be independent")
	}

	if len(p.Row(4)) != 10 {
		t.Errorf("Row length: got %d, want 10", len(p.Row(4)))
	}
	if p.Row(-1) != nil {
		t.Error("Row(-1) should return nil")
	}
	if p.Row(5) != nil {
		t.Error("Row(5) should return nil")
	}
}

func TestPlane_AtSet(t *testing.T) {
	p := NewPlane(10, 10)

	p.Set(5, 7, 42)
	if got := p.At(5, 7); got != 42 {
		t.Errorf("At(5,7): got %v, want 42", got)
	}

	// Out of bounds should return zero
	if got := p.At(-1, 0); got != 0 {
		t.Errorf("At(-1,0): got %v, want 0", got)
	}
	if got := p.At(10, 0); got != 0 {
		t.Errorf("At(10,0): got %v, want 0", got)
	}

	// Set out of bounds should be no-op
	p.Set(-1, 0, 99)
	p.Set(10, 0, 99)
}

func TestPlane_Index(t *testing.T) {
	p := NewPlane(7, 3)
	p.Set(4, 2, 11)

	if got := p.Index(2*7 + 4); got != 11 {
		t.Errorf("Index: got %d, want 11", got)
	}

	p.SetIndex(7+6, 23)
	if got := p.At(6, 1); got != 23 {
		t.Errorf("At after SetIndex: got %d, want 23", got)
	}
}

func TestPlane_CloneAndCopyFrom(t *testing.T) {
	p := NewPlane(10, 10)
	p.Set(5, 5, 42)

	clone := p.Clone()
	if !clone.Equal(p) {
		t.Fatal("Clone should equal source")
	}

	// Modifying clone shouldn't affect original
	clone.Set(5, 5, 7)
	if p.At(5, 5) != 42 {
		t.Error("Modifying clone affected original")
	}

	p.CopyFrom(clone)
	if p.At(5, 5) != 7 {
		t.Errorf("CopyFrom: got %d, want 7", p.At(5, 5))
	}
}

func TestPlane_CopyFromSizeMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("CopyFrom with different sizes should panic")
		}
	}()
	NewPlane(3, 3).CopyFrom(NewPlane(4, 3))
}

func TestPlane_Fill(t *testing.T) {
	p := NewPlane(10, 10)
	p.Fill(100)

	for y := range 10 {
		for x := range 10 {
			if got := p.At(x, y); got != 100 {
				t.Fatalf("At(%d,%d): got %d, want 100", x, y, got)
			}
		}
	}
}

func TestPlane_Bounds(t *testing.T) {
	b := NewPlane(5, 4).Bounds()
	if b.X0 != 0 || b.Y0 != 0 || b.Width() != 5 || b.Height() != 4 {
		t.Errorf("Bounds = %+v, want 5x4 at origin", b)
	}
	if !b.Contains(4, 3) || b.Contains(5, 0) {
		t.Error("Bounds should contain exactly the plane's pixels")
	}
}

func TestPlane_Interior(t *testing.T) {
	p := NewPlane(5, 4)
	in := p.Interior()
	if in.Width() != 3 || in.Height() != 2 {
		t.Errorf("Interior: got %dx%d, want 3x2", in.Width(), in.Height())
	}
	if in.Contains(0, 1) || !in.Contains(1, 1) || in.Contains(4, 2) {
		t.Error("Interior should exclude the one pixel border")
	}

	if !NewPlane(2, 2).Interior().IsEmpty() {
		t.Error("2x2 plane should have an empty interior")
	}
}

func TestNew(t *testing.T) {
	gray := New(Grayscale, 4, 3, 255)
	if gray.Channels() != 1 {
		t.Errorf("Grayscale channels: got %d, want 1", gray.Channels())
	}

	img := New(Color, 4, 3, 200)
	if img.Channels() != 3 {
		t.Errorf("Color channels: got %d, want 3", img.Channels())
	}
	if img.Width() != 4 || img.Height() != 3 || img.MaxVal() != 200 {
		t.Errorf("Geometry: got %dx%d maxval=%d, want 4x3 maxval=200", img.Width(), img.Height(), img.MaxVal())
	}
	for c := Red; c <= Blue; c++ {
		if !SameSize(img.Plane(c), img.Plane(Red)) {
			t.Errorf("Plane %d has a different size", c)
		}
	}
	if img.Plane(3) != nil || img.Plane(-1) != nil {
		t.Error("Plane out of range should return nil")
	}
	if got := img.String(); got != "Color 4x3 maxval=200" {
		t.Errorf("String: got %q", got)
	}
}

func TestImage_CloneEqual(t *testing.T) {
	img := New(Color, 3, 3, 255)
	img.Plane(Green).Set(1, 1, 9)

	clone := img.Clone()
	if !clone.Equal(img) {
		t.Fatal("Clone should equal source")
	}
	clone.Plane(Green).Set(1, 1, 10)
	if clone.Equal(img) {
		t.Error("Equal should detect a differing sample")
	}
	if img.Equal(New(Grayscale, 3, 3, 255)) {
		t.Error("Equal should compare kinds")
	}
}

func TestKindString(t *testing.T) {
	if Grayscale.String() != "Grayscale" || Color.String() != "Color" {
		t.Errorf("String: got %q and %q", Grayscale, Color)
	}
	if got := Kind(7).String(); got != "Kind(7)" {
		t.Errorf("String of unknown kind: got %q", got)
	}
}

func TestStdRoundTrip(t *testing.T) {
	g := stdimage.NewGray(stdimage.Rect(0, 0, 3, 2))
	g.SetGray(2, 1, color.Gray{Y: 77})

	img := FromStd(g)
	if img.Kind() != Grayscale {
		t.Fatalf("Kind: got %v, want Grayscale", img.Kind())
	}
	if got := img.Plane(Gray).At(2, 1); got != 77 {
		t.Errorf("Gray sample: got %d, want 77", got)
	}

	rgba := stdimage.NewRGBA(stdimage.Rect(0, 0, 2, 2))
	rgba.Set(1, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	img = FromStd(rgba)
	if img.Kind() != Color {
		t.Fatalf("Kind: got %v, want Color", img.Kind())
	}
	if r, gr, b := img.Plane(Red).At(1, 0), img.Plane(Green).At(1, 0), img.Plane(Blue).At(1, 0); r != 10 || gr != 20 || b != 30 {
		t.Errorf("RGB sample: got (%d,%d,%d), want (10,20,30)", r, gr, b)
	}

	back, ok := img.ToStd().(*stdimage.RGBA)
	if !ok {
		t.Fatalf("ToStd: got %T, want *image.RGBA", img.ToStd())
	}
	if c := back.RGBAAt(1, 0); c != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("ToStd sample: got %v", c)
	}
}
