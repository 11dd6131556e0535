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

// Package image provides the in-memory raster model used by the convolution
// pipeline.
//
// An Image holds one channel plane (Grayscale) or three channel planes
// (Color: red, green, blue). Each Plane is a single flat buffer of 8-bit
// samples indexed by row stride, so a whole plane can be snapshotted,
// transferred and merged without per-row bookkeeping.
//
// # Usage Example
//
//	img := image.New(image.Color, 640, 480, 255)
//	red := img.Plane(image.Red)
//	red.Set(10, 20, 200)
//
//	// Flattened access, as used by the work partitioner
//	i := 20*red.Width() + 10
//	_ = red.Index(i) // 200
//
// # Interop
//
// FromStd and ToStd convert to and from the standard library image types
// (*image.Gray for Grayscale, *image.RGBA for Color).
package image
