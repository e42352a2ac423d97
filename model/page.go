package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Page represents a single page of extracted PDF words, already translated
// into crop-box-local space by the bbox-text adapter using the page's crop
// box (see the adapter package). Width/Height are the crop box dimensions, not the raw MediaBox.
type Page struct {
	Number int
	Width  float64
	Height float64
	Words  []Word
	Fonts  []FontSpec
}

// NewPage creates an empty page with the given number and dimensions.
func NewPage(number int, width, height float64) *Page {
	return &Page{Number: number, Width: width, Height: height}
}

// AddWord appends a word to the page.
func (p *Page) AddWord(w Word) {
	p.Words = append(p.Words, w)
}

// ContentBBox returns the full-page rectangle.
func (p *Page) ContentBBox() Rectangle {
	return Rectangle{X: 0, Y: 0, W: p.Width, H: p.Height}
}

// wireWord mirrors the per-word JSON keys of the external wire format:
// x, y, w, h, t, font. font is omitted when the word has no annotation.
type wireWord struct {
	X    float64   `json:"x"`
	Y    float64   `json:"y"`
	W    float64   `json:"w"`
	H    float64   `json:"h"`
	T    string    `json:"t"`
	Font *wireFont `json:"font,omitempty"`
}

type wirePage struct {
	Page   int        `json:"page"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Data   []wireWord `json:"data"`
	Fonts  []wireFont `json:"fonts,omitempty"`
}

type wireFont struct {
	Size  int    `json:"size"`
	Color string `json:"color"`
}

// MarshalJSON implements the wire contract: top-level keys page, width,
// height, data, fonts; per-word keys x, y, w, h, t, font. Output is UTF-8
// clean (non-ASCII runes are not \uXXXX-escaped) and word order is
// preserved.
func (p Page) MarshalJSON() ([]byte, error) {
	wp := wirePage{
		Page:   p.Number,
		Width:  p.Width,
		Height: p.Height,
		Data:   make([]wireWord, 0, len(p.Words)),
	}
	for _, f := range p.Fonts {
		wp.Fonts = append(wp.Fonts, wireFont{Size: f.Size, Color: f.Color})
	}
	for _, w := range p.Words {
		ww := wireWord{X: w.X, Y: w.Y, W: w.W, H: w.H, T: w.Text}
		if w.Font != nil {
			ww.Font = &wireFont{Size: w.Font.Size, Color: w.Font.Color}
		}
		wp.Data = append(wp.Data, ww)
	}

	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(wp); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	if n := len(out); n > 0 && out[n-1] == '\n' {
		out = out[:n-1]
	}
	return out, nil
}

// UnmarshalJSON decodes the wire contract, tolerating a missing "font" on
// any word and a missing/empty "fonts" array.
func (p *Page) UnmarshalJSON(data []byte) error {
	var wp wirePage
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&wp); err != nil {
		return fmt.Errorf("model: decode page: %w", err)
	}

	fonts := make([]FontSpec, 0, len(wp.Fonts))
	for _, f := range wp.Fonts {
		fonts = append(fonts, FontSpec{Size: f.Size, Color: f.Color})
	}

	words := make([]Word, 0, len(wp.Data))
	for _, ww := range wp.Data {
		w := NewWord(Rectangle{X: ww.X, Y: ww.Y, W: ww.W, H: ww.H}, ww.T)
		if ww.Font != nil {
			fs := FontSpec{Size: ww.Font.Size, Color: ww.Font.Color}
			w.Font = &fs
		}
		words = append(words, w)
	}

	p.Number = wp.Page
	p.Width = wp.Width
	p.Height = wp.Height
	p.Words = words
	p.Fonts = fonts
	return nil
}
