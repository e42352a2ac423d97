// Package adapter wraps the poppler/xpdf command-line tools used to pull
// raw material out of a PDF file for the rest of the pipeline:
//
//   - [ExtractBBoxText] runs `pdftotext -bbox` to get word geometry.
//   - [GetPageBoxes] runs `pdfinfo -box` to get page box geometry.
//   - [AnnotateFonts] runs `pdftohtml -xml` to assign each word a FontSpec.
//   - [ExtractRawText] runs `pdftotext -raw` to get content-stream-ordered
//     text for [github.com/tsawler/pdflayout/raw].
//
// Each adapter invokes its tool via os/exec with a context.Context and
// wraps failures in errs.ErrExternalToolFailed.
package adapter
