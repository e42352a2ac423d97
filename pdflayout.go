// Package pdflayout reconstructs natural reading order from a PDF page's
// word geometry: it recovers words split across content-stream runs,
// merges geometrically adjacent fragments, annotates words with their
// fonts, and segments the page into an ordered sequence of paragraphs
// using recursive XY-cut layout analysis.
package pdflayout

import (
	"context"
	"fmt"

	"github.com/tsawler/pdflayout/adapter"
	"github.com/tsawler/pdflayout/layout"
	"github.com/tsawler/pdflayout/merge"
	"github.com/tsawler/pdflayout/model"
	"github.com/tsawler/pdflayout/raw"
)

// Pipeline extracts and reconstructs the reading order of a single PDF
// file's pages.
type Pipeline struct {
	// PDFPath is the absolute path of the PDF document to process.
	PDFPath string

	// Merger controls the geometric word-merging thresholds. The zero
	// value stands for merge.DefaultMerger().
	Merger merge.Merger
}

// New returns a Pipeline configured with merge.DefaultMerger().
func New(pdfPath string) *Pipeline {
	return &Pipeline{PDFPath: pdfPath, Merger: merge.DefaultMerger()}
}

// PageResult is the outcome of processing a single page. Err is set (and
// Paragraphs is nil) when that page failed, without aborting the rest of a
// ProcessPages batch.
type PageResult struct {
	Page       int
	Paragraphs []string
	Err        error
}

// ProcessPage extracts word geometry, font annotations, and raw
// content-stream text for pageNum, reconstructs and merges its words, and
// returns the page's text as an ordered list of paragraphs.
func (p *Pipeline) ProcessPage(ctx context.Context, pageNum int) ([]string, error) {
	page, err := adapter.ExtractBBoxText(ctx, p.PDFPath, pageNum)
	if err != nil {
		return nil, fmt.Errorf("pdflayout: page %d: %w", pageNum, err)
	}

	rawLines, err := adapter.ExtractRawText(ctx, p.PDFPath, pageNum)
	if err != nil {
		return nil, fmt.Errorf("pdflayout: page %d: %w", pageNum, err)
	}

	page, err = reconstruct(ctx, page, rawLines)
	if err != nil {
		return nil, fmt.Errorf("pdflayout: page %d: %w", pageNum, err)
	}

	page = p.merger().Merge(page)

	page, err = adapter.AnnotateFonts(ctx, p.PDFPath, page)
	if err != nil {
		return nil, fmt.Errorf("pdflayout: page %d: %w", pageNum, err)
	}

	paragraphs, err := assemble(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("pdflayout: page %d: %w", pageNum, err)
	}
	return paragraphs, nil
}

// ProcessPages processes each page independently: a failure on one page is
// recorded in its PageResult.Err rather than aborting the remaining pages.
func (p *Pipeline) ProcessPages(ctx context.Context, pageNums []int) []PageResult {
	results := make([]PageResult, len(pageNums))
	for i, n := range pageNums {
		paragraphs, err := p.ProcessPage(ctx, n)
		results[i] = PageResult{Page: n, Paragraphs: paragraphs, Err: err}
	}
	return results
}

func (p *Pipeline) merger() merge.Merger {
	if p.Merger == (merge.Merger{}) {
		return merge.DefaultMerger()
	}
	return p.Merger
}

func reconstruct(ctx context.Context, page model.Page, rawLines []string) (model.Page, error) {
	return raw.NewReconstructor(page, rawLines).Run(ctx)
}

func assemble(ctx context.Context, page model.Page) ([]string, error) {
	space := layout.NewDocumentSpace(page.Words)
	if err := layout.Cut(ctx, space); err != nil {
		return nil, err
	}
	return layout.Assemble(space), nil
}
