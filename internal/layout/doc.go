// Package layout implements the measure/layout half of the update pipeline.
//
// A [Wrapper] pairs a node's [GeometryNode] and [Property] with an
// [Algorithm] for the duration of one pass. Constraints flow down through
// [Wrapper.Measure]; sizes and offsets flow back up through the shared
// geometry the wrapper aliases, so results are visible on the persistent
// tree as soon as the pass ends.
//
// Algorithms provided here: box (stack), linear (row/column), grid, scroll,
// relative (anchor-constraint solving) and custom (caller-supplied closures).
// Types are re-exported through the root ace package.
package layout
