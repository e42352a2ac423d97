package layout

import (
	"strings"

	"github.com/tsawler/pdflayout/model"
	"github.com/tsawler/pdflayout/text"
)

// Traverse performs a depth-first walk of space, returning its leaves (the
// spaces with no further subspaces) in reading order.
func Traverse(space *DocumentSpace) []*DocumentSpace {
	if len(space.Subspaces) == 0 {
		return []*DocumentSpace{space}
	}
	var out []*DocumentSpace
	for _, sub := range space.Subspaces {
		out = append(out, Traverse(sub)...)
	}
	return out
}

// Assemble walks the leaves left by Cut in reading order and returns one
// paragraph string per non-empty leaf.
func Assemble(space *DocumentSpace) []string {
	var out []string
	for _, leaf := range Traverse(space) {
		if p := ExtractWords(leaf); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ExtractWords reconstructs the text of a single leaf space: its words are
// clustered into line segments across the reading axis, each segment's words
// are sorted along the reading axis and joined, and the segments are
// concatenated with a newline when the dominant font changes, a blank line
// when a segment is indented past the median lead coordinate, and a plain
// letter-boundary join otherwise.
func ExtractWords(leaf *DocumentSpace) string {
	if len(leaf.Words) == 0 {
		return ""
	}
	if len(leaf.Words) == 1 {
		return leaf.Words[0].Text
	}

	dir, err := leaf.ReadingDirection()
	if err != nil {
		// Unreachable for >=2 words; fall back to left-to-right.
		dir = LeftToRight
	}

	var (
		segments [][]model.Word
		extent   func(model.Word) float64
		leadOf   func(model.Word) float64
	)
	if dir == LeftToRight {
		segments = leaf.SegmentHorizontally(0, 0.5, 0)
		for i, seg := range segments {
			segments[i] = sortByX(seg)
		}
		extent = func(w model.Word) float64 { return w.W }
		leadOf = func(w model.Word) float64 { return w.X }
	} else {
		segments = leaf.SegmentVertically(0, 0.5, 0)
		for i, seg := range segments {
			segments[i] = sortByY(seg)
		}
		extent = func(w model.Word) float64 { return w.H }
		leadOf = func(w model.Word) float64 { return w.Y }
	}

	avgCharSize := averageCharSize(leaf.Words, extent)
	medianLead := medianSegmentLead(segments, leadOf)

	var b strings.Builder
	var prevFont *model.FontSpec
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		paragraph := concatWords(seg)
		if paragraph == "" {
			continue
		}

		font := dominantFont(seg, extent)
		switch {
		case !sameFont(prevFont, font):
			b.WriteString("\n")
			b.WriteString(paragraph)
			prevFont = font
		case leadOf(seg[0]) > medianLead+avgCharSize*0.75:
			b.WriteString("\n\n")
			b.WriteString(paragraph)
		default:
			joinSegments(&b, paragraph)
		}
	}
	return b.String()
}

// averageCharSize is the mean per-character extent along the reading axis
// over all of a leaf's words.
func averageCharSize(words []model.Word, extent func(model.Word) float64) float64 {
	var total float64
	var chars int
	for _, w := range words {
		total += extent(w)
		chars += len([]rune(w.Text))
	}
	if chars == 0 {
		return 0
	}
	return total / float64(chars)
}

// medianSegmentLead is the median lead coordinate (x for left-to-right, y
// for top-to-bottom) of each segment's first word.
func medianSegmentLead(segments [][]model.Word, leadOf func(model.Word) float64) float64 {
	var leads []float64
	for _, seg := range segments {
		if len(seg) > 0 {
			leads = append(leads, leadOf(seg[0]))
		}
	}
	if len(leads) == 0 {
		return 0
	}
	return median(leads)
}

// dominantFont is the fontspec of the segment word with the largest extent
// along the reading axis. A word without an annotation still competes; the
// result is nil when the longest word carries no fontspec.
func dominantFont(words []model.Word, extent func(model.Word) float64) *model.FontSpec {
	var best *model.FontSpec
	bestExtent := -1.0
	for _, w := range words {
		if e := extent(w); e > bestExtent {
			bestExtent = e
			best = w.Font
		}
	}
	return best
}

func sameFont(a, b *model.FontSpec) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// concatWords joins a segment's words in order, skipping empty texts and
// inserting a single space only when the adjoining characters on both sides
// of a boundary are ASCII letters.
func concatWords(words []model.Word) string {
	var b strings.Builder
	for _, w := range words {
		if w.Text == "" {
			continue
		}
		joinSegments(&b, w.Text)
	}
	return b.String()
}

func joinSegments(b *strings.Builder, next string) {
	prev := b.String()
	if text.ShouldInsertSpace(prev, next) {
		b.WriteString(" ")
	}
	b.WriteString(next)
}
