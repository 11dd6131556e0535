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
	"log/slog"

	"github.com/ajroetker/go-stencil/conv/group"
	"github.com/ajroetker/go-stencil/conv/image"
	"github.com/ajroetker/go-stencil/conv/partition"
	"github.com/ajroetker/go-stencil/conv/stencil"
)

// round runs the synchronization protocol for one filter over the planes of
// one worker's replica. snapshot and scratch are private buffers of the
// plane geometry, reused across channels.
type round struct {
	comm     group.Comm
	eval     stencil.Evaluator
	opts     *options
	logger   *slog.Logger
	snapshot *image.Plane
	scratch  *image.Plane
}

func newRound(comm group.Comm, eval stencil.Evaluator, width, height int, o *options) *round {
	rd := &round{
		comm:     comm,
		eval:     eval,
		opts:     o,
		logger:   o.logger.With("rank", comm.Rank(), "filter", eval.Filter.Name),
		snapshot: image.NewPlane(width, height),
	}
	if comm.Rank() == group.Root && comm.Size() > 1 {
		rd.scratch = image.NewPlane(width, height)
	}
	return rd
}

func (rd *round) enter(channel int, ph Phase) {
	rd.logger.Debug("phase", "channel", channel, "phase", ph)
	if rd.opts.trace != nil {
		rd.opts.trace(rd.comm.Rank(), rd.eval.Filter.Name, channel, ph)
	}
}

// run filters plane in place. On return every worker's plane holds the same
// fully filtered samples.
func (rd *round) run(ctx context.Context, channel int, plane *image.Plane) error {
	comm := rd.comm
	n := plane.Len()
	own := partition.For(n, comm.Size(), comm.Rank())

	rd.enter(channel, PhaseSnapshot)
	rd.snapshot.CopyFrom(plane)

	rd.enter(channel, PhaseBarrierA)
	if err := comm.Barrier(ctx); err != nil {
		return err
	}

	rd.enter(channel, PhaseLocalCompute)
	rd.eval.ApplyRange(plane, rd.snapshot, own)

	rd.enter(channel, PhaseBarrierB)
	if err := comm.Barrier(ctx); err != nil {
		return err
	}

	rd.enter(channel, PhaseGather)
	if comm.Rank() != group.Root {
		if err := comm.Send(ctx, group.Root, plane); err != nil {
			return fmt.Errorf("gather: %w", err)
		}
	} else {
		for _, src := range rd.senders() {
			if err := comm.Recv(ctx, src, rd.scratch); err != nil {
				return fmt.Errorf("gather from rank %d: %w", src, err)
			}
			rd.enter(channel, PhaseMerge)
			mergeOwned(plane, rd.scratch, partition.For(n, comm.Size(), src))
		}
	}

	rd.enter(channel, PhaseBroadcast)
	if err := comm.Broadcast(ctx, group.Root, plane); err != nil {
		return fmt.Errorf("broadcast: %w", err)
	}

	rd.enter(channel, PhaseBarrierC)
	if err := comm.Barrier(ctx); err != nil {
		return err
	}

	rd.enter(channel, PhaseDone)
	return nil
}

// senders returns the non-leader ranks in the order the leader receives
// them.
func (rd *round) senders() []int {
	size := rd.comm.Size()
	if rd.opts.gatherOrder != nil {
		return rd.opts.gatherOrder(size)
	}
	ranks := make([]int, 0, size-1)
	for r := range size {
		if r != group.Root {
			ranks = append(ranks, r)
		}
	}
	return ranks
}

// mergeOwned copies the indices of r from src into dst. Everything else in
// src is stale carry-over from before the round and is discarded.
func mergeOwned(dst, src *image.Plane, r partition.Range) {
	w := dst.Width()
	for i := r.Lo; i < r.Hi; {
		row, col := i/w, i%w
		end := min(r.Hi, (row+1)*w)
		span := end - i
		copy(dst.Row(row)[col:col+span], src.Row(row)[col:col+span])
		i = end
	}
}
