// Package model provides the geometric and per-page data types shared by
// the rest of pdflayout: rectangles and intervals, font identity, and the
// Page/Word pair that every adapter produces and every pipeline stage
// consumes or refines.
//
// # Geometry
//
//   - [Point] - a 2D point
//   - [Interval] and [IntervalList] - half-open 1-D ranges and their
//     sorted, gap-aware collections
//   - [Rectangle] - an axis-aligned box with intersection, union, distance
//     and axis-projection gap calculations
//   - [TextRectangle] - a Rectangle with bounded text and a computed
//     [Orientation]
//
// # Words and pages
//
// [Word] pairs a TextRectangle with an optional [FontSpec] annotation.
// [Page] holds a page's words plus the distinct fonts observed on it, and
// implements the wire JSON contract used to persist and exchange page data
// (see MarshalJSON/UnmarshalJSON on [Page]).
package model
