// Package text holds the word-joining rule used when concatenating word
// fragments back into lines: [ShouldInsertSpace] reports whether a space
// belongs between two fragments, based on whether the boundary characters
// are ASCII letters.
package text
