// SPDX-License-Identifier: MIT
// Package workers runs per-iteration tasks as a bounded parallel map.
//
// Every task receives its iteration index and must write only to memory owned
// by that index (its own Array3 slice). There is no shared accumulator, so the
// observable result does not depend on the number of workers or scheduling.
package workers

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Limit resolves a requested worker count: values <= 0 mean GOMAXPROCS.
func Limit(requested int) int {
	if requested <= 0 {
		return runtime.GOMAXPROCS(0)
	}

	return requested
}

// ForEach calls fn(i) for every i in [0, n) on at most Limit(limit)
// goroutines and returns the first error reported by any task.
func ForEach(n, limit int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	l := Limit(limit)
	if l == 1 || n == 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(l)
	for i := 0; i < n; i++ {
		g.Go(func() error { return fn(i) })
	}

	return g.Wait()
}
