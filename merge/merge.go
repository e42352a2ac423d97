package merge

import (
	"math"

	"github.com/tsawler/pdflayout/model"
)

// similarity is cos(5 degrees): the minimum cosine between the line joining
// two word centers and the merge axis for the words to be considered
// collinear enough to merge.
const similarity = 0.9961946980917455

// Merger merges words whose facing edges are within minDist of each other
// along the merge axis, with a font-size ratio within [fontRatio, 1/fontRatio].
// normalizeWidth rescales the page to a fixed width before applying minDist
// (a page-resolution-independent threshold), then scales back after
// merging.
type Merger struct {
	NormalizeWidth float64
	MinDist        float64
	FontRatio      float64
}

// DefaultMerger returns a Merger with a 1000-unit normalized width, a
// 3-unit minimum merge distance, and a 0.9 font-size ratio floor.
func DefaultMerger() Merger {
	return Merger{NormalizeWidth: 1000, MinDist: 3, FontRatio: 0.9}
}

// Merge repeatedly merges compatible word pairs on the page until no more
// merges occur, and returns a new page with the merged words. Word order in
// the result is not meaningful; downstream layout stages do not depend on
// it.
func (m Merger) Merge(page model.Page) model.Page {
	scale := m.NormalizeWidth / page.Width
	words := make([]model.Word, len(page.Words))
	for i, w := range page.Words {
		words[i] = scaleWord(w, scale)
	}

	for {
		merged := make([]bool, len(words))
		var next []model.Word

		for i := range words {
			if merged[i] {
				continue
			}
			current := words[i]
			for j := i + 1; j < len(words); j++ {
				if merged[j] {
					continue
				}
				if combined, ok := m.merge(current, words[j]); ok {
					merged[j] = true
					current = combined
				}
			}
			next = append(next, current)
		}

		anyMerged := false
		for _, v := range merged {
			if v {
				anyMerged = true
				break
			}
		}
		words = next
		if !anyMerged {
			break
		}
	}

	out := model.Page{Number: page.Number, Width: page.Width, Height: page.Height, Fonts: page.Fonts}
	inv := 1 / scale
	for _, w := range words {
		out.AddWord(scaleWord(w, inv))
	}
	return out
}

func scaleWord(w model.Word, scale float64) model.Word {
	r := model.NewRectangle(w.X*scale, w.Y*scale, w.W*scale, w.H*scale)
	out := model.NewWord(r, w.Text)
	out.Font = w.Font
	return out
}

// merge attempts to merge word1 and word2, dispatching on their
// orientations: an explicit orientation on either side forces that axis's
// check; two unknowns try both axes and, if both qualify, tentatively
// unions the rectangles and redispatches on the union's own orientation.
func (m Merger) merge(word1, word2 model.Word) (model.Word, bool) {
	o1, o2 := word1.Orientation(), word2.Orientation()
	rect1, rect2 := word1.Rectangle, word2.Rectangle
	dx, dy := rect1.XNorm(rect2), rect1.YNorm(rect2)
	c1 := model.Point{X: rect1.X + rect1.W/2, Y: rect1.Y + rect1.H/2}
	c2 := model.Point{X: rect2.X + rect2.W/2, Y: rect2.Y + rect2.H/2}

	if o1 == model.OrientationUnknown && o2 == model.OrientationUnknown {
		mayPortrait := m.mayMergePortrait(o1, o2, dx, dy, c1, c2, rect1.W, rect2.W)
		mayLandscape := m.mayMergeLandscape(o1, o2, dx, dy, c1, c2, rect1.H, rect2.H)

		switch {
		case mayPortrait && mayLandscape:
			return m.naiveMerge(word1, word2), true
		case mayPortrait:
			return mergePortrait(word1, word2), true
		case mayLandscape:
			return mergeLandscape(word1, word2), true
		default:
			return model.Word{}, false
		}
	}

	if o1 == model.OrientationPortrait || o2 == model.OrientationPortrait {
		if m.mayMergePortrait(o1, o2, dx, dy, c1, c2, rect1.W, rect2.W) {
			return mergePortrait(word1, word2), true
		}
	}

	if o1 == model.OrientationLandscape || o2 == model.OrientationLandscape {
		if m.mayMergeLandscape(o1, o2, dx, dy, c1, c2, rect1.H, rect2.H) {
			return mergeLandscape(word1, word2), true
		}
	}

	return model.Word{}, false
}

func (m Merger) mayMergeLandscape(o1, o2 model.Orientation, dx, dy float64, c1, c2 model.Point, fontSize1, fontSize2 float64) bool {
	if o1 == model.OrientationPortrait || o2 == model.OrientationPortrait {
		return false
	}
	if dx > m.MinDist || dy != 0 {
		return false
	}
	vx, vy := c1.X-c2.X, c1.Y-c2.Y
	cos := math.Abs(vx) / math.Sqrt(vx*vx+vy*vy)
	if cos < similarity {
		return false
	}
	return m.fontRatioOK(fontSize1, fontSize2)
}

func (m Merger) mayMergePortrait(o1, o2 model.Orientation, dx, dy float64, c1, c2 model.Point, fontSize1, fontSize2 float64) bool {
	if o1 == model.OrientationLandscape || o2 == model.OrientationLandscape {
		return false
	}
	if dy > m.MinDist || dx != 0 {
		return false
	}
	vx, vy := c1.X-c2.X, c1.Y-c2.Y
	cos := math.Abs(vy) / math.Sqrt(vx*vx+vy*vy)
	if cos < similarity {
		return false
	}
	return m.fontRatioOK(fontSize1, fontSize2)
}

func (m Merger) fontRatioOK(a, b float64) bool {
	ratio := a / b
	return ratio >= m.FontRatio && ratio <= 1/m.FontRatio
}

func mergeLandscape(word1, word2 model.Word) model.Word {
	rect := word1.Union(word2.Rectangle)
	text := word1.Text + word2.Text
	if word1.X > word2.X {
		text = word2.Text + word1.Text
	}
	return model.NewWord(rect, text)
}

func mergePortrait(word1, word2 model.Word) model.Word {
	rect := word1.Union(word2.Rectangle)
	text := word1.Text + word2.Text
	if word1.Y > word2.Y {
		text = word2.Text + word1.Text
	}
	return model.NewWord(rect, text)
}

// naiveMerge is used when both words have unknown orientation and qualify
// for merging along either axis: it tentatively unions the rectangles and
// redispatches based on the union's own orientation.
func (m Merger) naiveMerge(word1, word2 model.Word) model.Word {
	rect := word1.Union(word2.Rectangle)
	probe := model.NewTextRectangle(rect, "xx")
	if probe.Orientation() == model.OrientationPortrait {
		return mergePortrait(word1, word2)
	}
	return mergeLandscape(word1, word2)
}
