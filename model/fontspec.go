package model

// FontSpec identifies a font as observed from the font-XML adapter: a point
// size and a six-hex-digit RGB color string (e.g. "000000"). Comparable, so
// it works directly as a map key.
type FontSpec struct {
	Size  int
	Color string
}

// NewFontSpec builds a FontSpec.
func NewFontSpec(size int, color string) FontSpec {
	return FontSpec{Size: size, Color: color}
}
