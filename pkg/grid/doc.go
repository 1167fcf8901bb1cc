// Package grid packs an arbitrary count of uniform square cells into a
// bounded rectangular frame.
//
// The package has three parts:
//
//   - Solver: [Solve] computes the densest feasible grid (largest cell size,
//     widest gap) for a given item count and frame, falling back to a
//     proportional packing when strict fitting is impossible.
//   - Placement: [Place] maps items onto the solved grid in row-major order.
//   - Overflow: [SplitVisible] bounds the visible item list and
//     [OverflowBadge] formats the remainder as a "+N" badge.
//
// All functions are pure: identical inputs produce identical outputs, no
// state is carried between calls, and degenerate inputs (zero counts,
// non-positive frames) resolve to the zero [Layout] rather than an error.
// This makes recomputation on every measurement event safe, including when
// a newer computation supersedes a stale in-flight one.
package grid
