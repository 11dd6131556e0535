// Copyright 2025 The go-stencil Authors. SPDX-License-Identifier: Apache-2.0

// Package partition splits the flattened pixel domain [0, width*height) into
// contiguous, disjoint ranges, one per worker.
//
// Every worker recomputes the same partitions from shared geometry, so
// ranges never need to be transmitted:
//
//	n := img.Width() * img.Height()
//	own := partition.For(n, comm.Size(), comm.Rank())
//	for i := own.Lo; i < own.Hi; i++ {
//	    process(i)
//	}
package partition

import "fmt"

// Range is the half-open slice [Lo, Hi) of the flattened index space owned
// by Rank out of Workers.
type Range struct {
	Rank    int
	Workers int
	Lo      int // inclusive
	Hi      int // exclusive
}

// ChunkSize returns ceil(n/workers), the size of every range except possibly
// the trailing ones. Workers below 1 count as 1.
func ChunkSize(n, workers int) int {
	if n <= 0 {
		return 0
	}
	workers = max(workers, 1)
	return (n + workers - 1) / workers
}

// For returns the range owned by rank. When there are more workers than
// items, trailing ranks receive empty ranges positioned at n.
func For(n, workers, rank int) Range {
	workers = max(workers, 1)
	n = max(n, 0)
	chunk := ChunkSize(n, workers)
	lo := min(chunk*rank, n)
	hi := min(lo+chunk, n)
	return Range{Rank: rank, Workers: workers, Lo: lo, Hi: hi}
}

// All returns the ranges of every rank in rank order.
func All(n, workers int) []Range {
	workers = max(workers, 1)
	ranges := make([]Range, workers)
	for r := range workers {
		ranges[r] = For(n, workers, r)
	}
	return ranges
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.Hi - r.Lo
}

// Empty reports whether the range owns no indices.
func (r Range) Empty() bool {
	return r.Hi <= r.Lo
}

// Contains reports whether index i is owned by the range.
func (r Range) Contains(i int) bool {
	return i >= r.Lo && i < r.Hi
}

func (r Range) String() string {
	return fmt.Sprintf("rank %d/%d [%d,%d)", r.Rank, r.Workers, r.Lo, r.Hi)
}
