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

package main

import (
	"errors"
	"fmt"
	stdimage "image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ajroetker/go-stencil/conv/image"
	"github.com/ajroetker/go-stencil/conv/image/pnm"
)

var errFormat = errors.New("unsupported output format")

type encodeFunc func(io.Writer, *image.Image) error

func stdEncoder(enc func(io.Writer, stdimage.Image) error) encodeFunc {
	return func(w io.Writer, img *image.Image) error {
		return enc(w, img.ToStd())
	}
}

var encoders = map[string]encodeFunc{
	".pgm": pnm.Encode,
	".ppm": pnm.Encode,
	".pnm": pnm.Encode,
	".png": stdEncoder(png.Encode),
	".jpg": stdEncoder(func(w io.Writer, m stdimage.Image) error {
		return jpeg.Encode(w, m, &jpeg.Options{Quality: 95})
	}),
	".jpeg": stdEncoder(func(w io.Writer, m stdimage.Image) error {
		return jpeg.Encode(w, m, &jpeg.Options{Quality: 95})
	}),
	".gif": stdEncoder(func(w io.Writer, m stdimage.Image) error {
		return gif.Encode(w, m, nil)
	}),
	".bmp": stdEncoder(bmp.Encode),
	".tif": stdEncoder(func(w io.Writer, m stdimage.Image) error {
		return tiff.Encode(w, m, nil)
	}),
	".tiff": stdEncoder(func(w io.Writer, m stdimage.Image) error {
		return tiff.Encode(w, m, nil)
	}),
}

func isPNM(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pgm", ".ppm", ".pnm":
		return true
	}
	return false
}

// encoderFor returns the encoder selected by the extension of path.
func encoderFor(path string) (encodeFunc, error) {
	ext := strings.ToLower(filepath.Ext(path))
	enc, ok := encoders[ext]
	if !ok {
		return nil, fmt.Errorf("%s: %w %q", path, errFormat, ext)
	}
	return enc, nil
}

// readImage decodes path. PNM files keep their maxval; everything else goes
// through the standard image decoders and is converted.
func readImage(path string) (*image.Image, error) {
	if isPNM(path) {
		return pnm.ReadFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := stdimage.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return image.FromStd(src), nil
}

const outputMode = 0o644

// writeImage encodes img to path. The data goes to a temporary file in the
// same directory that is renamed into place only once fully written, so a
// failure never leaves a partial output.
func writeImage(path string, img *image.Image, enc encodeFunc) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".convolve-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = enc(tmp, img); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	// CreateTemp opens the file 0600 and Rename keeps it.
	if err = tmp.Chmod(outputMode); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
