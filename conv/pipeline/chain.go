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

package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/ajroetker/go-stencil/conv/group"
	"github.com/ajroetker/go-stencil/conv/image"
	"github.com/ajroetker/go-stencil/conv/kernel"
	"github.com/ajroetker/go-stencil/conv/stencil"
)

// Apply runs the named filters, in order, over img. Every worker of the group
// must call Apply with its own replica of the same image and the same names.
//
// Names missing from the filter table are skipped: the leader logs a warning
// wrapping kernel.ErrUnknownFilter and the image is left as it was for that
// name. On success img holds the cumulative result of all recognized filters,
// identically on every worker.
//
// An error is returned only when the group itself fails, e.g. because ctx was
// cancelled.
func Apply(ctx context.Context, img *image.Image, comm group.Comm, names []string, opts ...Option) error {
	o := newOptions(opts)
	filters, unknown := o.table.Resolve(names)

	if comm.Rank() == group.Root {
		for _, name := range unknown {
			o.logger.Warn("skipping filter", "error", fmt.Errorf("%w: %q", kernel.ErrUnknownFilter, name))
		}
	}

	for _, f := range filters {
		if err := applyFilter(ctx, img, comm, f, o); err != nil {
			return fmt.Errorf("filter %s: %w", f.Name, err)
		}
	}
	return nil
}

// ApplyFilter runs a single filter over every channel of img.
func ApplyFilter(ctx context.Context, img *image.Image, comm group.Comm, f kernel.Filter, opts ...Option) error {
	return applyFilter(ctx, img, comm, f, newOptions(opts))
}

func applyFilter(ctx context.Context, img *image.Image, comm group.Comm, f kernel.Filter, o *options) error {
	start := time.Now()
	eval := stencil.Evaluator{Filter: f, Mode: o.mode, MaxVal: img.MaxVal()}
	rd := newRound(comm, eval, img.Width(), img.Height(), o)

	// Channels are filtered, merged and broadcast one at a time.
	for c := range img.Channels() {
		if err := rd.run(ctx, c, img.Plane(image.Channel(c))); err != nil {
			return fmt.Errorf("%s channel: %w", channelName(img.Kind(), c), err)
		}
	}

	if comm.Rank() == group.Root {
		o.logger.Info("applied filter",
			"filter", f.Name,
			"workers", comm.Size(),
			"elapsed", time.Since(start))
	}
	return nil
}

// ApplyLocal runs Apply on an in-process group of workers goroutines
// (GOMAXPROCS when workers <= 0). The leader filters img itself; every other
// worker gets a private clone. On return img holds the result.
func ApplyLocal(ctx context.Context, img *image.Image, workers int, names []string, opts ...Option) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	replicas := make([]*image.Image, workers)
	replicas[group.Root] = img
	for r := range replicas {
		if r != group.Root {
			replicas[r] = img.Clone()
		}
	}

	return group.Run(ctx, workers, func(ctx context.Context, comm group.Comm) error {
		return Apply(ctx, replicas[comm.Rank()], comm, names, opts...)
	})
}

func channelName(kind image.Kind, c int) string {
	if kind == image.Grayscale {
		return "gray"
	}
	return [...]string{"red", "green", "blue"}[c]
}
