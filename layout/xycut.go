package layout

import (
	"context"

	"github.com/tsawler/pdflayout/model"
)

// Cut recursively splits space into an ordered tree of subspaces using the
// recursive XY-cut algorithm, threading ctx through every recursive step.
func Cut(ctx context.Context, space *DocumentSpace) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(space.Words) <= 1 {
		return nil
	}

	dir, err := space.ReadingDirection()
	if err != nil {
		// An undetectable orientation or an empty space cannot be cut
		// further; treat it as a leaf.
		return nil
	}

	if dir == LeftToRight {
		return cutLeftToRightDoc(ctx, space)
	}
	return cutTopToBottomDoc(ctx, space)
}

func cutLeftToRightDoc(ctx context.Context, space *DocumentSpace) error {
	medianHeight := space.Stats().MedianHeight

	if cut, ok := space.WidestVerticalCut(0, 0.9, 0); ok {
		if err := space.CutVertically(cut.X+cut.W/2, true); err != nil {
			return leafOnCutThroughWord(space)
		}
		return cutSubspaces(ctx, space)
	}

	if cut, ok := space.WidestHorizontalCut(2*medianHeight, 1, 0); ok {
		if err := space.CutHorizontally(cut.Y+cut.H/2, true); err != nil {
			return leafOnCutThroughWord(space)
		}
		return cutSubspaces(ctx, space)
	}

	clusters := space.SegmentHorizontally(0, 1, 0)
	if len(clusters) <= 1 {
		return nil
	}

	subspaces := coalesceClusters(clusters)
	if len(subspaces) <= 1 {
		return nil
	}

	space.Subspaces = subspaces
	return cutSubspaces(ctx, space)
}

func cutTopToBottomDoc(ctx context.Context, space *DocumentSpace) error {
	medianWidth := space.Stats().MedianWidth

	if cut, ok := space.WidestHorizontalCut(0, 0.9, 0); ok {
		if err := space.CutHorizontally(cut.Y+cut.H/2, true); err != nil {
			return leafOnCutThroughWord(space)
		}
		return cutSubspaces(ctx, space)
	}

	if cut, ok := space.WidestVerticalCut(2*medianWidth, 1, 0); ok {
		if err := space.CutVertically(cut.X+cut.W/2, false); err != nil {
			return leafOnCutThroughWord(space)
		}
		return cutSubspaces(ctx, space)
	}

	clusters := space.SegmentVertically(0, 1, 0)
	if len(clusters) <= 1 {
		return nil
	}

	subspaces := coalesceClusters(clusters)
	if len(subspaces) <= 1 {
		return nil
	}

	space.Subspaces = subspaces
	return cutSubspaces(ctx, space)
}

// leafOnCutThroughWord handles the rare case where a cut point lands exactly
// on a word's center: the space becomes an uncut leaf instead of propagating
// the cut-through-word condition as a hard failure.
func leafOnCutThroughWord(space *DocumentSpace) error {
	space.Subspaces = nil
	return nil
}

func cutSubspaces(ctx context.Context, space *DocumentSpace) error {
	for _, sub := range space.Subspaces {
		if err := Cut(ctx, sub); err != nil {
			return err
		}
	}
	return nil
}

// coalesceClusters merges adjacent clusters of the same cardinality class
// (both singleton, or both multi-word) into a single subspace; a solitary
// word stays separate from a neighboring multi-word cluster. The class
// decision always compares a cluster against its original neighbor, not
// against the group accumulated so far, so two coalesced solitaries do not
// start absorbing a following multi-word cluster.
func coalesceClusters(clusters [][]model.Word) []*DocumentSpace {
	if len(clusters) == 0 {
		return nil
	}
	groups := [][]model.Word{append([]model.Word(nil), clusters[0]...)}
	for i := 1; i < len(clusters); i++ {
		prev, curr := clusters[i-1], clusters[i]
		if (len(prev) == 1) == (len(curr) == 1) {
			last := len(groups) - 1
			groups[last] = append(groups[last], curr...)
		} else {
			groups = append(groups, append([]model.Word(nil), curr...))
		}
	}

	subspaces := make([]*DocumentSpace, len(groups))
	for i, g := range groups {
		subspaces[i] = NewDocumentSpace(g)
	}
	return subspaces
}
