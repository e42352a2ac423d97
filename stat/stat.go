package stat

import (
	"sort"

	"github.com/tsawler/pdflayout/model"
)

// WordStatistics reports aggregate width/height and orientation counts over
// a collection of words.
type WordStatistics struct {
	Count               int
	AvgWidth, AvgHeight float64
	VarWidth, VarHeight float64
	MedianWidth         float64
	MedianHeight        float64
	HorizontalWordCount int
	VerticalWordCount   int
}

// Compute builds a WordStatistics over the given words in a single pass,
// plus a sort for the medians.
func Compute(words []model.TextRectangle) WordStatistics {
	var s WordStatistics
	s.Count = len(words)
	if s.Count == 0 {
		return s
	}

	widths := make([]float64, s.Count)
	heights := make([]float64, s.Count)

	for i, w := range words {
		widths[i] = w.W
		heights[i] = w.H
		s.AvgWidth += w.W
		s.VarWidth += w.W * w.W
		s.AvgHeight += w.H
		s.VarHeight += w.H * w.H

		switch w.Orientation() {
		case model.OrientationLandscape:
			s.HorizontalWordCount++
		case model.OrientationPortrait:
			s.VerticalWordCount++
		}
	}

	n := float64(s.Count)
	s.AvgWidth /= n
	s.VarWidth = s.VarWidth/n - s.AvgWidth*s.AvgWidth
	s.AvgHeight /= n
	s.VarHeight = s.VarHeight/n - s.AvgHeight*s.AvgHeight

	sort.Float64s(widths)
	sort.Float64s(heights)
	s.MedianWidth = median(widths)
	s.MedianHeight = median(heights)

	return s
}

func median(sorted []float64) float64 {
	n := len(sorted)
	half := n / 2
	if n%2 == 0 {
		return (sorted[half-1] + sorted[half]) / 2
	}
	return sorted[half]
}
