package raw

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/pdflayout/errs"
	"github.com/tsawler/pdflayout/model"
)

// Match records that a word and a stream share a substring: Index is the
// counterpart's index (word index when stored on a stream, stream index
// when stored on a word), and Start/End bound the match within the stream.
type Match struct {
	Index      int
	Start, End int
}

type word struct {
	rect    model.Rectangle
	text    string
	matches []Match
}

type stream struct {
	text    string
	matches []Match
	merged  bool
}

// Reconstructor merges word fragments that form contiguous, space-separated
// substrings of a raw content stream into single words.
type Reconstructor struct {
	page         model.Page
	words        []word
	streams      []stream
	discardCache map[string]bool
}

// NewReconstructor builds a Reconstructor for page, given the raw
// content-stream text lines extracted for that page (one per line, in
// stream order). The cache of discard-outlier results is
// fresh per Reconstructor instance, i.e. per page, never shared across
// pages.
func NewReconstructor(page model.Page, rawStreams []string) *Reconstructor {
	r := &Reconstructor{
		page:         page,
		words:        make([]word, len(page.Words)),
		streams:      make([]stream, len(rawStreams)),
		discardCache: make(map[string]bool),
	}
	for i, w := range page.Words {
		r.words[i] = word{rect: w.Rectangle, text: w.Text}
	}
	for i, s := range rawStreams {
		r.streams[i] = stream{text: s}
	}
	r.associate()
	return r
}

func (r *Reconstructor) associate() {
	for wordIx := range r.words {
		for streamIx := range r.streams {
			for _, start := range findAllSubstrings(r.streams[streamIx].text, r.words[wordIx].text) {
				end := start + len(r.words[wordIx].text)
				r.words[wordIx].matches = append(r.words[wordIx].matches, Match{Index: streamIx, Start: start, End: end})
				r.streams[streamIx].matches = append(r.streams[streamIx].matches, Match{Index: wordIx, Start: start, End: end})
			}
		}
	}
}

// findAllSubstrings returns every starting byte offset of an occurrence of
// needle in haystack, including overlapping occurrences: the scan advances
// by 1 after every match, not by len(needle).
func findAllSubstrings(haystack, needle string) []int {
	if needle == "" {
		return nil
	}
	var out []int
	pos := 0
	for pos < len(haystack) {
		ix := strings.Index(haystack[pos:], needle)
		if ix == -1 {
			break
		}
		out = append(out, pos+ix)
		pos += ix + 1
	}
	return out
}

// Run merges every stream whose matches can be tiled into the stream text
// with nothing but spaces between them, repeatedly, until no further
// progress is made. Words consumed by a successful merge are replaced by a
// single merged word spanning their union rectangle with the stream's full
// text; words that are never consumed pass through unchanged.
func (r *Reconstructor) Run(ctx context.Context) (model.Page, error) {
	out := model.Page{Number: r.page.Number, Width: r.page.Width, Height: r.page.Height, Fonts: r.page.Fonts}

	mergedStreams := make(map[int]bool)
	keepMerging := true
	for keepMerging {
		if err := ctx.Err(); err != nil {
			return model.Page{}, err
		}
		keepMerging = false

		order := r.streamsByDescendingLength()
		for _, streamIx := range order {
			if mergedStreams[streamIx] {
				continue
			}
			if !r.mayMerge(streamIx) {
				r.discardOutliers(streamIx)
			}
			if r.mayMerge(streamIx) {
				mergedStreams[streamIx] = true
				w, err := r.mergeWordsOfStream(streamIx)
				if err != nil {
					return model.Page{}, err
				}
				out.AddWord(w)
				keepMerging = true
			}
		}
	}

	consumed := make([]bool, len(r.words))
	for streamIx := range mergedStreams {
		for _, m := range r.streams[streamIx].matches {
			consumed[m.Index] = true
		}
	}
	for i, w := range r.words {
		if !consumed[i] {
			out.AddWord(model.NewWord(w.rect, w.text))
		}
	}

	return out, nil
}

func (r *Reconstructor) streamsByDescendingLength() []int {
	order := make([]int, len(r.streams))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return len(r.streams[order[i]].text) > len(r.streams[order[j]].text)
	})
	return order
}

func (r *Reconstructor) mayMerge(streamIx int) bool {
	s := &r.streams[streamIx]
	if s.merged {
		return true
	}
	s.merged = mayReconstructBy(s.text, s.matches)
	return s.merged
}

// mayReconstructBy reports whether matches tile the stream exactly: every
// non-space position is covered by exactly one match, and no position is
// covered by more than one.
func mayReconstructBy(text string, matches []Match) bool {
	if len(matches) == 0 {
		return false
	}
	counter := make([]int, len(text))
	for _, m := range matches {
		for i := m.Start; i < m.End; i++ {
			counter[i]++
		}
	}
	for i := 0; i < len(text); i++ {
		if counter[i] > 1 {
			return false
		}
		if counter[i] == 0 && text[i] != ' ' {
			return false
		}
	}
	return true
}

func (r *Reconstructor) mergeWordsOfStream(streamIx int) (model.Word, error) {
	s := &r.streams[streamIx]

	wordIndices := make([]int, len(s.matches))
	for i, m := range s.matches {
		wordIndices[i] = m.Index
	}

	for _, wordIx := range wordIndices {
		r.words[wordIx].matches = filterMatches(r.words[wordIx].matches, func(m Match) bool {
			return m.Index == streamIx
		})
		for otherIx := range r.streams {
			if otherIx == streamIx {
				continue
			}
			r.streams[otherIx].matches = filterMatches(r.streams[otherIx].matches, func(m Match) bool {
				return !containsInt(wordIndices, m.Index)
			})
		}
	}

	if len(wordIndices) == 0 {
		return model.Word{}, fmt.Errorf("raw: %w: empty stream match set", errs.ErrInvalidState)
	}

	union := r.words[wordIndices[0]].rect
	for _, wordIx := range wordIndices[1:] {
		union = union.Union(r.words[wordIx].rect)
	}

	return model.NewWord(union, s.text), nil
}

func filterMatches(matches []Match, keep func(Match) bool) []Match {
	out := matches[:0:0]
	for _, m := range matches {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
