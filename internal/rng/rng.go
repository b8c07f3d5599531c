// SPDX-License-Identifier: MIT
// Package rng - deterministic random streams shared by the sampling and
// prediction engines.
//
// Goals:
//   - Determinism: same seed ⇒ identical draws across platforms and worker counts.
//   - Encapsulation: a single source factory; no time-based sources hidden anywhere.
//   - Independence: every posterior iteration gets its own stream derived from
//     (seed, stream id), so parallel workers never share generator state.
//
// Concurrency:
//   - A rand.Source is NOT goroutine-safe. Create one per worker task via Stream.
package rng

import "math/rand/v2"

// DefaultSeed is the fixed seed used when callers pass seed==0.
const DefaultSeed uint64 = 1

// Stage identifiers keep the streams of different pipeline stages apart
// while sharing one user seed.
const (
	StageSigma uint64 = iota + 1
	StageLambda
	StageEta
	StageCounts
)

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed.
// SplitMix64 finalizer; small changes in inputs produce well-distributed outputs.
func deriveSeed(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return x
}

// normalize applies the seed==0 policy.
func normalize(seed uint64) uint64 {
	if seed == 0 {
		return DefaultSeed
	}

	return seed
}

// Stream returns an independent deterministic source for (seed, stage, index).
// Typical use: one call per posterior iteration inside a worker.
func Stream(seed, stage uint64, index int) rand.Source {
	s := normalize(seed)
	id := stage<<40 | uint64(index)

	return rand.NewPCG(deriveSeed(s, id), deriveSeed(^s, id))
}
