package layout

import (
	"fmt"
	"math"
	"sort"

	"github.com/tsawler/pdflayout/errs"
	"github.com/tsawler/pdflayout/model"
	"github.com/tsawler/pdflayout/stat"
)

// ReadingDirection is the dominant reading direction of the words inside a
// DocumentSpace.
type ReadingDirection int

const (
	LeftToRight ReadingDirection = iota
	TopToBottom
)

// DocumentSpace is a region of the page containing a set of words, with an
// optional further split into ordered subspaces.
type DocumentSpace struct {
	Words      []model.Word
	Subspaces  []*DocumentSpace
	stats      stat.WordStatistics
	readingDir *ReadingDirection
}

// NewDocumentSpace builds a leaf DocumentSpace over words.
func NewDocumentSpace(words []model.Word) *DocumentSpace {
	return &DocumentSpace{Words: words, stats: stat.Compute(textRectangles(words))}
}

func textRectangles(words []model.Word) []model.TextRectangle {
	out := make([]model.TextRectangle, len(words))
	for i, w := range words {
		out[i] = w.TextRectangle
	}
	return out
}

// Stats returns the word statistics for this space's direct words (not
// recursive into subspaces).
func (s *DocumentSpace) Stats() stat.WordStatistics {
	return s.stats
}

// ReadingDirection reports whether this space's words read predominantly
// left-to-right or top-to-bottom. Returns errs.ErrEmptySpace if there are no
// words, and errs.ErrUndetectableOrientation if there is exactly one word
// whose orientation is unknown.
func (s *DocumentSpace) ReadingDirection() (ReadingDirection, error) {
	if s.readingDir != nil {
		return *s.readingDir, nil
	}

	var dir ReadingDirection
	switch {
	case len(s.Words) == 0:
		return 0, fmt.Errorf("layout: %w", errs.ErrEmptySpace)
	case len(s.Words) == 1:
		switch s.Words[0].Orientation() {
		case model.OrientationLandscape:
			dir = LeftToRight
		case model.OrientationPortrait:
			dir = TopToBottom
		default:
			return 0, fmt.Errorf("layout: %w", errs.ErrUndetectableOrientation)
		}
	case s.stats.HorizontalWordCount > s.stats.VerticalWordCount:
		dir = LeftToRight
	default:
		dir = TopToBottom
	}

	s.readingDir = &dir
	return dir, nil
}

type worldBounds struct {
	minX, minY, maxX, maxY float64
}

func (s *DocumentSpace) bounds() worldBounds {
	b := worldBounds{minX: math.Inf(1), minY: math.Inf(1), maxX: math.Inf(-1), maxY: math.Inf(-1)}
	for _, w := range s.Words {
		if w.X < b.minX {
			b.minX = w.X
		}
		if w.X+w.W > b.maxX {
			b.maxX = w.X + w.W
		}
		if w.Y < b.minY {
			b.minY = w.Y
		}
		if w.Y+w.H > b.maxY {
			b.maxY = w.Y + w.H
		}
	}
	return b
}

func scaleInterval(iv model.Interval, scale, offset float64) model.Interval {
	if scale != 1 {
		begin, end := iv.Begin, iv.End
		iv.Begin = (begin*(1+scale) + end*(1-scale)) * 0.5
		iv.End = (begin*(1-scale) + end*(1+scale)) * 0.5
	}
	iv.Begin += offset
	iv.End += offset
	return iv
}

// EnumerateVerticalCuts returns candidate vertical whitespace gaps between
// words (each gap narrower than minSize is discarded), spanning the
// vertical extent of the space's words.
func (s *DocumentSpace) EnumerateVerticalCuts(minSize, scale, offset float64) []model.Rectangle {
	b := s.bounds()
	il := model.NewIntervalList()
	for _, w := range s.Words {
		il.Add(scaleInterval(model.Interval{Begin: w.X, End: w.X + w.W}, scale, offset))
	}

	var cuts []model.Rectangle
	for _, gap := range il.Gaps() {
		if gap.Length() < minSize {
			continue
		}
		cuts = append(cuts, model.Rectangle{X: gap.Begin, Y: b.minY, W: gap.Length(), H: b.maxY - b.minY})
	}
	return cuts
}

// EnumerateHorizontalCuts is the vertical-axis analogue of
// EnumerateVerticalCuts.
func (s *DocumentSpace) EnumerateHorizontalCuts(minSize, scale, offset float64) []model.Rectangle {
	b := s.bounds()
	il := model.NewIntervalList()
	for _, w := range s.Words {
		il.Add(scaleInterval(model.Interval{Begin: w.Y, End: w.Y + w.H}, scale, offset))
	}

	var cuts []model.Rectangle
	for _, gap := range il.Gaps() {
		if gap.Length() < minSize {
			continue
		}
		cuts = append(cuts, model.Rectangle{X: b.minX, Y: gap.Begin, W: b.maxX - b.minX, H: gap.Length()})
	}
	return cuts
}

// WidestVerticalCut returns the widest candidate vertical cut, if any.
func (s *DocumentSpace) WidestVerticalCut(minSize, scale, offset float64) (model.Rectangle, bool) {
	cuts := s.EnumerateVerticalCuts(minSize, scale, offset)
	if len(cuts) == 0 {
		return model.Rectangle{}, false
	}
	widest := cuts[0]
	for _, c := range cuts[1:] {
		if c.W > widest.W {
			widest = c
		}
	}
	return widest, true
}

// WidestHorizontalCut returns the tallest candidate horizontal cut, if any.
func (s *DocumentSpace) WidestHorizontalCut(minSize, scale, offset float64) (model.Rectangle, bool) {
	cuts := s.EnumerateHorizontalCuts(minSize, scale, offset)
	if len(cuts) == 0 {
		return model.Rectangle{}, false
	}
	widest := cuts[0]
	for _, c := range cuts[1:] {
		if c.H > widest.H {
			widest = c
		}
	}
	return widest, true
}

// CutVertically splits the space at cutPoint (an x coordinate) into two
// subspaces. leftFirst controls which subspace is visited first by
// Traverse. Returns errs.ErrCutThroughWord if a word's center falls exactly
// on cutPoint.
func (s *DocumentSpace) CutVertically(cutPoint float64, leftFirst bool) error {
	var left, right []model.Word
	for _, w := range s.Words {
		center := w.X + w.W/2
		switch {
		case center > cutPoint:
			right = append(right, w)
		case center < cutPoint:
			left = append(left, w)
		default:
			return fmt.Errorf("layout: %w: %q", errs.ErrCutThroughWord, w.Text)
		}
	}
	if leftFirst {
		s.Subspaces = []*DocumentSpace{NewDocumentSpace(left), NewDocumentSpace(right)}
	} else {
		s.Subspaces = []*DocumentSpace{NewDocumentSpace(right), NewDocumentSpace(left)}
	}
	return nil
}

// CutHorizontally splits the space at cutPoint (a y coordinate) into two
// subspaces. upFirst controls which subspace is visited first by Traverse.
func (s *DocumentSpace) CutHorizontally(cutPoint float64, upFirst bool) error {
	var up, down []model.Word
	for _, w := range s.Words {
		center := w.Y + w.H/2
		switch {
		case center > cutPoint:
			down = append(down, w)
		case center < cutPoint:
			up = append(up, w)
		default:
			return fmt.Errorf("layout: %w: %q", errs.ErrCutThroughWord, w.Text)
		}
	}
	if upFirst {
		s.Subspaces = []*DocumentSpace{NewDocumentSpace(up), NewDocumentSpace(down)}
	} else {
		s.Subspaces = []*DocumentSpace{NewDocumentSpace(down), NewDocumentSpace(up)}
	}
	return nil
}

// SegmentHorizontally groups words into top-to-bottom clusters separated by
// the space's horizontal whitespace gaps. With no usable gaps, the whole
// word set is returned as a single cluster.
func (s *DocumentSpace) SegmentHorizontally(minSize, scale, offset float64) [][]model.Word {
	cuts := s.EnumerateHorizontalCuts(minSize, scale, offset)
	if len(cuts) == 0 {
		return [][]model.Word{s.Words}
	}

	bounds := []float64{0}
	for _, c := range cuts {
		bounds = append(bounds, c.Y+c.H/2)
	}
	bounds = append(bounds, math.Inf(1))

	var clusters [][]model.Word
	for i := 0; i < len(bounds)-1; i++ {
		y1, y2 := bounds[i], bounds[i+1]
		var cluster []model.Word
		for _, w := range s.Words {
			mid := w.Y + w.H/2
			if y1 <= mid && mid <= y2 {
				cluster = append(cluster, w)
			}
		}
		clusters = append(clusters, cluster)
	}
	return clusters
}

// SegmentVertically groups words into right-to-left clusters separated by
// the space's vertical whitespace gaps.
func (s *DocumentSpace) SegmentVertically(minSize, scale, offset float64) [][]model.Word {
	cuts := s.EnumerateVerticalCuts(minSize, scale, offset)
	if len(cuts) == 0 {
		return [][]model.Word{s.Words}
	}

	bounds := []float64{0}
	for _, c := range cuts {
		bounds = append(bounds, c.X+c.W/2)
	}
	bounds = append(bounds, math.Inf(1))
	reverse(bounds)

	var clusters [][]model.Word
	for i := 0; i < len(bounds)-1; i++ {
		x1, x2 := bounds[i], bounds[i+1]
		var cluster []model.Word
		for _, w := range s.Words {
			mid := w.X + w.W/2
			if x2 <= mid && mid <= x1 {
				cluster = append(cluster, w)
			}
		}
		clusters = append(clusters, cluster)
	}
	return clusters
}

func reverse(xs []float64) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}

// sortByX returns a copy of words sorted by ascending X.
func sortByX(words []model.Word) []model.Word {
	out := append([]model.Word(nil), words...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

// sortByY returns a copy of words sorted by ascending Y.
func sortByY(words []model.Word) []model.Word {
	out := append([]model.Word(nil), words...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Y < out[j].Y })
	return out
}

func median(data []float64) float64 {
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	n := len(sorted)
	half := n / 2
	if n%2 == 0 {
		return (sorted[half-1] + sorted[half]) / 2
	}
	return sorted[half]
}
