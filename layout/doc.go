// Package layout reconstructs reading order from a page's words using
// recursive XY-cut segmentation, and assembles the resulting leaves back
// into paragraph text.
//
// # Document spaces
//
// A [DocumentSpace] holds a set of words together with their dominant
// [ReadingDirection]. [Cut] recursively splits a DocumentSpace into ordered
// [DocumentSpace.Subspaces] by alternating vertical and horizontal
// whitespace cuts, falling back to whitespace-gap clustering when no
// single wide cut divides the space cleanly.
//
// # Assembly
//
// Once Cut has produced a leaf tree, [Traverse] walks it in reading order
// and [Assemble] turns each leaf into one paragraph string via
// [ExtractWords], inserting line and paragraph breaks inside a leaf based
// on font changes and indentation.
package layout
