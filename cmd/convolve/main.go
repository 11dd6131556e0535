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

// Command convolve applies a chain of 3x3 convolution filters to an image,
// splitting the pixel work across a group of cooperating workers.
//
// Usage:
//
//	convolve [flags] <input> <output> [filter ...]
//	convolve filters                      # list known filter names
//
// Examples:
//
//	convolve in.pgm out.pgm smooth sharpen
//	convolve -w 8 photo.png out.png blur blur emboss
//	convolve -c convolve.toml in.ppm out.ppm edge
//
// Filters run in the order given. Unknown filter names are skipped with a
// warning. PGM/PPM (P5/P6) files are read and written natively; PNG, JPEG,
// GIF, BMP, TIFF and WebP inputs and PNG, JPEG, GIF, BMP and TIFF outputs are
// converted on the way in and out.
//
// The optional TOML configuration file supplies defaults for every flag, a
// default filter chain and custom named kernels:
//
//	workers = 4
//	saturate = false
//	filters = ["blur", "sharpen"]
//	log_level = "info"
//	log_format = "auto"
//
//	[kernels.edge]
//	weights = [[-1, -1, -1], [-1, 8, -1], [-1, -1, -1]]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "convolve: %v\n", err)
		os.Exit(1)
	}
}
