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

package group

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-stencil/conv/image"
)

// frame is one message on a link: a header announcing the plane geometry
// (y < 0) or a single row.
type frame struct {
	y      int
	width  int
	height int
	row    []uint8
}

// Local is an in-process group of goroutine workers. Every ordered pair of
// ranks is connected by unbuffered channels, so a send completes only when
// the receiver has taken the row.
type Local struct {
	size    int
	links   [][]chan frame // point-to-point, indexed [src][dst]
	bcast   [][]chan frame // broadcast, indexed [src][dst]
	barrier *barrier
}

// NewLocal creates a group of size workers. If size <= 0, GOMAXPROCS is
// used.
func NewLocal(size int) *Local {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	return &Local{
		size:    size,
		links:   newLinks(size),
		bcast:   newLinks(size),
		barrier: newBarrier(size),
	}
}

func newLinks(size int) [][]chan frame {
	links := make([][]chan frame, size)
	for src := range links {
		links[src] = make([]chan frame, size)
		for dst := range links[src] {
			if dst != src {
				links[src][dst] = make(chan frame)
			}
		}
	}
	return links
}

// Size returns the number of workers in the group.
func (l *Local) Size() int {
	return l.size
}

// Comm returns the handle of worker rank.
func (l *Local) Comm(rank int) (Comm, error) {
	if rank < 0 || rank >= l.size {
		return nil, fmt.Errorf("%w: %d of %d", ErrRankOutOfRange, rank, l.size)
	}
	return &localComm{world: l, rank: rank}, nil
}

// Run establishes a Local group of size workers and calls fn once per rank,
// each on its own goroutine. The first error cancels the context shared by
// all workers so that peers blocked in a barrier or transfer return instead
// of hanging. Run returns the first error, annotated with its rank.
func Run(ctx context.Context, size int, fn func(ctx context.Context, comm Comm) error) error {
	world := NewLocal(size)
	g, ctx := errgroup.WithContext(ctx)
	for rank := range world.size {
		comm := &localComm{world: world, rank: rank}
		g.Go(func() error {
			if err := fn(ctx, comm); err != nil {
				return fmt.Errorf("rank %d: %w", rank, err)
			}
			return nil
		})
	}
	return g.Wait()
}

type localComm struct {
	world *Local
	rank  int
}

func (c *localComm) Rank() int { return c.rank }
func (c *localComm) Size() int { return c.world.size }

func (c *localComm) Barrier(ctx context.Context) error {
	return c.world.barrier.wait(ctx)
}

func (c *localComm) peer(rank int) error {
	if rank < 0 || rank >= c.world.size {
		return fmt.Errorf("%w: %d of %d", ErrRankOutOfRange, rank, c.world.size)
	}
	if rank == c.rank {
		return fmt.Errorf("%w: rank %d", ErrSelfTransfer, rank)
	}
	return nil
}

func (c *localComm) Send(ctx context.Context, dst int, p *image.Plane) error {
	if err := c.peer(dst); err != nil {
		return err
	}
	return send(ctx, c.world.links[c.rank][dst], p)
}

func (c *localComm) Recv(ctx context.Context, src int, p *image.Plane) error {
	if err := c.peer(src); err != nil {
		return err
	}
	return recv(ctx, c.world.links[src][c.rank], p)
}

func (c *localComm) Broadcast(ctx context.Context, root int, p *image.Plane) error {
	if root < 0 || root >= c.world.size {
		return fmt.Errorf("%w: root %d of %d", ErrRankOutOfRange, root, c.world.size)
	}
	if c.rank != root {
		return recv(ctx, c.world.bcast[root][c.rank], p)
	}
	for dst := range c.world.size {
		if dst == root {
			continue
		}
		if err := send(ctx, c.world.bcast[root][dst], p); err != nil {
			return err
		}
	}
	return nil
}

func send(ctx context.Context, ch chan<- frame, p *image.Plane) error {
	header := frame{y: -1, width: p.Width(), height: p.Height()}
	if err := put(ctx, ch, header); err != nil {
		return err
	}
	for y := range p.Height() {
		row := append([]uint8(nil), p.Row(y)...)
		if err := put(ctx, ch, frame{y: y, row: row}); err != nil {
			return err
		}
	}
	return nil
}

func recv(ctx context.Context, ch <-chan frame, p *image.Plane) error {
	header, err := take(ctx, ch)
	if err != nil {
		return err
	}
	mismatch := header.width != p.Width() || header.height != p.Height()
	for range header.height {
		f, err := take(ctx, ch)
		if err != nil {
			return err
		}
		// On a mismatch the rows are still drained so the sender is not
		// left blocked.
		if !mismatch {
			copy(p.Row(f.y), f.row)
		}
	}
	if mismatch {
		return fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrGeometry, header.width, header.height, p.Width(), p.Height())
	}
	return nil
}

func put(ctx context.Context, ch chan<- frame, f frame) error {
	select {
	case ch <- f:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func take(ctx context.Context, ch <-chan frame) (frame, error) {
	select {
	case f := <-ch:
		return f, nil
	case <-ctx.Done():
		return frame{}, ctx.Err()
	}
}
