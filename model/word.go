package model

// Word is a single positioned token on a page: the text and its bounding
// box (via TextRectangle), plus an optional font annotation assigned by the
// font-XML adapter's plurality vote. Font is nil until annotation runs.
type Word struct {
	TextRectangle
	Font *FontSpec
}

// NewWord builds a Word with no font annotation.
func NewWord(r Rectangle, text string) Word {
	return Word{TextRectangle: NewTextRectangle(r, text)}
}

// WithFont returns a copy of the word annotated with the given font.
func (w Word) WithFont(f FontSpec) Word {
	w.Font = &f
	return w
}
