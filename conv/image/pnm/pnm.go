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

// Package pnm reads and writes the binary netpbm containers used by the
// convolution tool: P5 (grayscale) and P6 (RGB).
//
// A container starts with a two character magic token, followed by
// whitespace separated width, height and maxval, a single whitespace byte and
// the raw samples. Comments starting with '#' are allowed between header
// tokens. Only 8-bit samples (maxval <= 255) are supported.
//
// The package registers itself with the standard image package, so a blank
// import makes image.Decode understand P5 and P6 streams.
package pnm

import (
	"bufio"
	"errors"
	"fmt"
	stdimage "image"
	"image/color"
	"io"
	"os"
	"strconv"

	"github.com/ajroetker/go-stencil/conv/image"
)

var (
	// ErrMalformedHeader is returned when the container header cannot be
	// parsed within its bounds.
	ErrMalformedHeader = errors.New("pnm: malformed header")

	// ErrUnsupportedFormat is returned for magic tokens other than P5 and P6.
	ErrUnsupportedFormat = errors.New("pnm: unsupported format")
)

const (
	magicGray  = "P5"
	magicColor = "P6"

	// maxTokenLen bounds every numeric header field.
	maxTokenLen = 10

	// MaxPixels caps width*height so a header cannot request an allocation
	// larger than the tool is willing to make before any sample is read.
	MaxPixels = 1 << 28
)

// Header is the decoded container header.
type Header struct {
	Kind   image.Kind
	Width  int
	Height int
	MaxVal int
}

func init() {
	stdimage.RegisterFormat("pnm", "P5", decodeStd, decodeConfig)
	stdimage.RegisterFormat("pnm", "P6", decodeStd, decodeConfig)
}

// ReadHeader parses the container header from r. On success r is positioned
// at the first sample byte.
func ReadHeader(r *bufio.Reader) (Header, error) {
	var h Header

	magic := make([]byte, 2)
	if _, err := io.ReadFull(r, magic); err != nil {
		return h, fmt.Errorf("%w: reading magic: %w", ErrMalformedHeader, err)
	}
	switch string(magic) {
	case magicGray:
		h.Kind = image.Grayscale
	case magicColor:
		h.Kind = image.Color
	default:
		return h, fmt.Errorf("%w: magic %q", ErrUnsupportedFormat, magic)
	}

	fields := []struct {
		name string
		dst  *int
		max  int
	}{
		{"width", &h.Width, 0},
		{"height", &h.Height, 0},
		{"maxval", &h.MaxVal, image.DefaultMaxVal},
	}
	for _, f := range fields {
		v, err := readUint(r)
		if err != nil {
			return h, fmt.Errorf("%w: %s: %w", ErrMalformedHeader, f.name, err)
		}
		if v <= 0 || (f.max > 0 && v > f.max) {
			return h, fmt.Errorf("%w: %s %d out of range", ErrMalformedHeader, f.name, v)
		}
		*f.dst = v
	}
	if h.Width > MaxPixels/h.Height {
		return h, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrMalformedHeader, h.Width, h.Height, MaxPixels)
	}
	return h, nil
}

// readUint skips whitespace and comments, then reads one decimal token and
// consumes the single whitespace byte terminating it.
func readUint(r *bufio.Reader) (int, error) {
	c, err := skipSpace(r)
	if err != nil {
		return 0, err
	}

	buf := make([]byte, 0, maxTokenLen)
	for {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("unexpected byte %q", c)
		}
		if len(buf) == maxTokenLen {
			return 0, fmt.Errorf("token longer than %d digits", maxTokenLen)
		}
		buf = append(buf, c)

		c, err = r.ReadByte()
		if err != nil {
			return 0, err
		}
		if isSpace(c) {
			break
		}
	}
	return strconv.Atoi(string(buf))
}

func skipSpace(r *bufio.Reader) (byte, error) {
	for {
		c, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		switch {
		case c == '#':
			if err := skipLine(r); err != nil {
				return 0, err
			}
		case isSpace(c):
		default:
			return c, nil
		}
	}
}

func skipLine(r *bufio.Reader) error {
	for {
		_, err := r.ReadSlice('\n')
		if !errors.Is(err, bufio.ErrBufferFull) {
			return err
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// Decode reads a P5 or P6 container.
func Decode(r io.Reader) (*image.Image, error) {
	br := bufio.NewReader(r)
	h, err := ReadHeader(br)
	if err != nil {
		return nil, err
	}

	img := image.New(h.Kind, h.Width, h.Height, h.MaxVal)
	switch h.Kind {
	case image.Grayscale:
		p := img.Plane(image.Gray)
		for y := range h.Height {
			if _, err := io.ReadFull(br, p.Row(y)); err != nil {
				return nil, fmt.Errorf("pnm: reading row %d: %w", y, noEOF(err))
			}
		}
	case image.Color:
		line := make([]byte, 3*h.Width)
		red, green, blue := img.Plane(image.Red), img.Plane(image.Green), img.Plane(image.Blue)
		for y := range h.Height {
			if _, err := io.ReadFull(br, line); err != nil {
				return nil, fmt.Errorf("pnm: reading row %d: %w", y, noEOF(err))
			}
			rr, gg, bb := red.Row(y), green.Row(y), blue.Row(y)
			for x := range h.Width {
				rr[x], gg[x], bb[x] = line[3*x], line[3*x+1], line[3*x+2]
			}
		}
	}
	return img, nil
}

// noEOF turns a clean EOF inside the sample data into io.ErrUnexpectedEOF.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Encode writes img as P5 (Grayscale) or P6 (Color).
func Encode(w io.Writer, img *image.Image) error {
	bw := bufio.NewWriter(w)

	magic := magicGray
	if img.Kind() == image.Color {
		magic = magicColor
	}
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", magic, img.Width(), img.Height(), img.MaxVal()); err != nil {
		return err
	}

	switch img.Kind() {
	case image.Grayscale:
		p := img.Plane(image.Gray)
		for y := range img.Height() {
			if _, err := bw.Write(p.Row(y)); err != nil {
				return err
			}
		}
	default:
		line := make([]byte, 3*img.Width())
		red, green, blue := img.Plane(image.Red), img.Plane(image.Green), img.Plane(image.Blue)
		for y := range img.Height() {
			rr, gg, bb := red.Row(y), green.Row(y), blue.Row(y)
			for x := range img.Width() {
				line[3*x], line[3*x+1], line[3*x+2] = rr[x], gg[x], bb[x]
			}
			if _, err := bw.Write(line); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// ReadFile decodes the container stored at path.
func ReadFile(path string) (*image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// WriteFile encodes img to path, creating or truncating it.
func WriteFile(path string, img *image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

func decodeStd(r io.Reader) (stdimage.Image, error) {
	img, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return img.ToStd(), nil
}

func decodeConfig(r io.Reader) (stdimage.Config, error) {
	h, err := ReadHeader(bufio.NewReader(r))
	if err != nil {
		return stdimage.Config{}, err
	}
	model := color.GrayModel
	if h.Kind == image.Color {
		model = color.RGBAModel
	}
	return stdimage.Config{ColorModel: model, Width: h.Width, Height: h.Height}, nil
}
