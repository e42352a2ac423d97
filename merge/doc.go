// Package merge combines geometrically compatible word fragments on a page
// using position, orientation, angle, and font-size-ratio heuristics. See
// [Merger] and [DefaultMerger].
package merge
