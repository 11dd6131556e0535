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

// Package group provides the fixed-size worker group used by the
// convolution pipeline: collective barriers, blocking point-to-point row
// transfers and a one-to-all broadcast.
//
// Comm is the per-worker handle. Local implements it for workers running as
// goroutines of one process, with unbuffered channels standing in for the
// network:
//
//	err := group.Run(ctx, 4, func(ctx context.Context, comm group.Comm) error {
//	    if err := comm.Barrier(ctx); err != nil {
//	        return err
//	    }
//	    if comm.Rank() == group.Root {
//	        // leader work
//	    }
//	    return nil
//	})
//
// Workers never share image memory: Send copies every row before handing it
// over, and receivers write rows into their own planes.
package group

import (
	"context"
	"errors"

	"github.com/ajroetker/go-stencil/conv/image"
)

// Root is the rank of the leader worker.
const Root = 0

var (
	// ErrRankOutOfRange is returned for peers outside [0, Size()).
	ErrRankOutOfRange = errors.New("group: rank out of range")

	// ErrSelfTransfer is returned when a worker addresses itself.
	ErrSelfTransfer = errors.New("group: transfer to self")

	// ErrGeometry is returned when a received plane does not match the
	// destination buffer.
	ErrGeometry = errors.New("group: plane geometry mismatch")
)

// Comm is one worker's view of the group. All methods block until the
// operation completes or ctx is done; a Comm whose operation was cancelled
// must not be used again.
type Comm interface {
	// Rank returns this worker's rank in [0, Size()).
	Rank() int

	// Size returns the number of workers in the group.
	Size() int

	// Barrier returns once every worker of the group has entered it.
	Barrier(ctx context.Context) error

	// Send transfers every row of p, in order, to worker dst.
	Send(ctx context.Context, dst int, p *image.Plane) error

	// Recv receives a plane sent by worker src into p, row by row.
	Recv(ctx context.Context, src int, p *image.Plane) error

	// Broadcast copies p from worker root to every other worker. On root p
	// is read; on every other worker p is overwritten.
	Broadcast(ctx context.Context, root int, p *image.Plane) error
}
