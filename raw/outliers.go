package raw

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// discardOutliers tries to prune a stream's match set down to the subset
// that tiles the stream exactly (see mayReconstructBy), uses each word at
// most once, and whose matched words appear in the same left-to-right order
// in the stream as their x coordinates suggest on the page. Among such
// subsets it keeps the one with the lowest cost (|slope|+1e-6)*var(x) over
// the matched words' centroids -- discarding spurious matches that would
// otherwise block a merge. Exhaustive subset search is only
// attempted for streams with 3-30 matches; larger sets are too expensive.
func (r *Reconstructor) discardOutliers(streamIx int) bool {
	s := &r.streams[streamIx]

	cacheKey := discardCacheKey(s.text, s.matches)
	if cached, ok := r.discardCache[cacheKey]; ok {
		return cached
	}

	numMatches := len(s.matches)
	if numMatches < 3 || numMatches > 30 {
		r.discardCache[cacheKey] = false
		return false
	}

	centroids := make([]point, numMatches)
	for i, m := range s.matches {
		w := r.words[m.Index]
		centroids[i] = point{x: w.rect.X + w.rect.W/2, y: w.rect.Y + w.rect.H/2}
	}

	combos := enumerateWordCombinations(s.text, s.matches)

	bestCost := math.Inf(1)
	var best []int

	for _, indices := range combos {
		if len(indices) <= 1 {
			continue
		}
		if hasDuplicateWord(s.matches, indices) {
			continue
		}
		if !r.coMonotonic(s.matches, indices) {
			continue
		}

		pts := make([]point, len(indices))
		for i, ix := range indices {
			pts[i] = centroids[ix]
		}
		slope, ok := linearRegressionSlope(pts)
		if !ok {
			continue
		}
		xs := make([]float64, len(pts))
		for i, p := range pts {
			xs[i] = p.x
		}
		variance := populationVariance(xs)
		cost := (math.Abs(slope) + 1.0e-6) * variance

		if cost < bestCost {
			bestCost = cost
			best = indices
		}
	}

	if best == nil {
		r.discardCache[cacheKey] = false
		return false
	}

	pruned := make([]Match, len(best))
	for i, ix := range best {
		pruned[i] = s.matches[ix]
	}
	s.matches = pruned
	r.discardCache[cacheKey] = true
	return true
}

func discardCacheKey(text string, matches []Match) string {
	indices := make([]string, len(matches))
	for i, m := range matches {
		indices[i] = fmt.Sprintf("%d", m.Index)
	}
	return fmt.Sprintf("[%s][%s]", text, strings.Join(indices, ","))
}

type point struct{ x, y float64 }

// enumerateWordCombinations returns every subset of match indices whose
// spans in text tile exactly onto the non-space positions of text, built by
// backtracking: each subset starts from one match and is extended, in turn,
// by every later match (by index) that doesn't overlap an already-claimed
// position.
func enumerateWordCombinations(text string, matches []Match) [][]int {
	targetMask := make([]byte, len(text))
	for i := 0; i < len(text); i++ {
		if text[i] != ' ' {
			targetMask[i] = 1
		}
	}

	var result [][]int
	for matchIx := range matches {
		mask := make([]byte, len(targetMask))
		m := matches[matchIx]
		for i := m.Start; i < m.End; i++ {
			mask[i] = 1
		}
		recursiveFindCombination(matches, []int{matchIx}, mask, targetMask, matchIx+1, &result)
	}
	return result
}

func recursiveFindCombination(matches []Match, curr []int, currMask, targetMask []byte, nextIx int, result *[][]int) {
	if maskEqual(currMask, targetMask) {
		out := append([]int(nil), curr...)
		*result = append(*result, out)
		return
	}

	for matchIx := nextIx; matchIx < len(matches); matchIx++ {
		candidate := matches[matchIx]
		mask := append([]byte(nil), currMask...)
		ok := true
		for i := candidate.Start; i < candidate.End; i++ {
			if mask[i] != 0 {
				ok = false
				break
			}
			mask[i] = 1
		}
		if ok {
			next := append(append([]int(nil), curr...), matchIx)
			recursiveFindCombination(matches, next, mask, targetMask, matchIx+1, result)
		}
	}
}

func maskEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hasDuplicateWord(matches []Match, indices []int) bool {
	seen := make(map[int]bool, len(indices))
	for _, ix := range indices {
		seen[matches[ix].Index] = true
	}
	return len(seen) != len(indices)
}

// coMonotonic reports whether sorting the subset's matches by stream start
// position yields the same order as sorting them by page x coordinate --
// i.e. reading order in the stream agrees with left-to-right page order.
func (r *Reconstructor) coMonotonic(matches []Match, indices []int) bool {
	byStart := append([]int(nil), indices...)
	sort.SliceStable(byStart, func(i, j int) bool {
		return matches[byStart[i]].Start < matches[byStart[j]].Start
	})
	byX := append([]int(nil), indices...)
	sort.SliceStable(byX, func(i, j int) bool {
		return r.wordX(matches[byX[i]].Index) < r.wordX(matches[byX[j]].Index)
	})
	for i := range byStart {
		if byStart[i] != byX[i] {
			return false
		}
	}
	return true
}

func (r *Reconstructor) wordX(wordIx int) float64 {
	return r.words[wordIx].rect.X
}
