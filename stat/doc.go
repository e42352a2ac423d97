// Package stat reports count, average/variance, and median width/height
// plus orientation tallies for a slice of [model.TextRectangle] values. See
// [Compute].
package stat
