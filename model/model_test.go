package model

import (
	"encoding/json"
	"math"
	"testing"
)

func TestPointDistance(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   Point
		expected float64
	}{
		{"same point", Point{0, 0}, Point{0, 0}, 0},
		{"horizontal", Point{0, 0}, Point{3, 0}, 3},
		{"diagonal 3-4-5", Point{0, 0}, Point{3, 4}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p1.Distance(tt.p2)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("Distance() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestPointArithmetic(t *testing.T) {
	p := Point{3, 4}
	q := Point{1, -2}

	if got := p.Add(q); got != (Point{4, 2}) {
		t.Errorf("Add() = %+v, want {4 2}", got)
	}
	if got := p.Sub(q); got != (Point{2, 6}) {
		t.Errorf("Sub() = %+v, want {2 6}", got)
	}
	if got := p.Neg(); got != (Point{-3, -4}) {
		t.Errorf("Neg() = %+v, want {-3 -4}", got)
	}
	if got := p.Norm(); got != 5 {
		t.Errorf("Norm() = %v, want 5", got)
	}
	if got := p.DistanceSquared(Point{0, 0}); got != 25 {
		t.Errorf("DistanceSquared() = %v, want 25", got)
	}
}

func TestIntervalIntersect(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Interval
		wantIv Interval
		wantOK bool
	}{
		{"overlap", Interval{0, 10}, Interval{5, 15}, Interval{5, 10}, true},
		{"touching", Interval{0, 10}, Interval{10, 20}, Interval{10, 10}, true},
		{"disjoint", Interval{0, 10}, Interval{20, 30}, Interval{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersect(tt.b)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.wantIv {
				t.Errorf("Intersect() = %+v, want %+v", got, tt.wantIv)
			}
		})
	}
}

func TestIntervalListAddMergesTouchingAndOverlapping(t *testing.T) {
	il := NewIntervalList(Interval{0, 10}, Interval{10, 20}, Interval{40, 50})
	items := il.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 merged intervals, got %d: %+v", len(items), items)
	}
	if items[0] != (Interval{0, 20}) {
		t.Errorf("first interval = %+v, want {0 20}", items[0])
	}
	if items[1] != (Interval{40, 50}) {
		t.Errorf("second interval = %+v, want {40 50}", items[1])
	}
}

func TestIntervalListGaps(t *testing.T) {
	il := NewIntervalList(Interval{0, 10}, Interval{20, 30}, Interval{40, 50})
	gaps := il.Gaps()
	want := []Interval{{10, 20}, {30, 40}}
	if len(gaps) != len(want) {
		t.Fatalf("Gaps() = %+v, want %+v", gaps, want)
	}
	for i := range want {
		if gaps[i] != want[i] {
			t.Errorf("gap[%d] = %+v, want %+v", i, gaps[i], want[i])
		}
	}
}

func TestIntervalListGapsEmptyForSingleInterval(t *testing.T) {
	il := NewIntervalList(Interval{0, 10})
	if gaps := il.Gaps(); len(gaps) != 0 {
		t.Errorf("Gaps() on a single interval = %+v, want none", gaps)
	}
}

func TestRectangleIntersect(t *testing.T) {
	a := NewRectangle(0, 0, 10, 10)
	b := NewRectangle(5, 5, 10, 10)
	got, ok := a.Intersect(b)
	if !ok {
		t.Fatal("expected intersection")
	}
	want := NewRectangle(5, 5, 5, 5)
	if got != want {
		t.Errorf("Intersect() = %+v, want %+v", got, want)
	}

	c := NewRectangle(100, 100, 10, 10)
	if _, ok := a.Intersect(c); ok {
		t.Error("expected no intersection for disjoint rectangles")
	}
}

func TestRectangleUnion(t *testing.T) {
	a := NewRectangle(0, 0, 50, 50)
	b := NewRectangle(25, 25, 75, 75)
	got := a.Union(b)
	want := NewRectangle(0, 0, 100, 100)
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestRectangleDistance(t *testing.T) {
	a := NewRectangle(0, 0, 10, 10)

	t.Run("overlapping", func(t *testing.T) {
		b := NewRectangle(5, 5, 10, 10)
		if d := a.Distance(b); d != 0 {
			t.Errorf("Distance() = %v, want 0", d)
		}
	})

	t.Run("touching edge", func(t *testing.T) {
		b := NewRectangle(10, 0, 10, 10)
		if d := a.Distance(b); d != 0 {
			t.Errorf("Distance() = %v, want 0", d)
		}
	})

	t.Run("separated horizontally", func(t *testing.T) {
		b := NewRectangle(13, 0, 10, 10)
		if d := a.Distance(b); d != 9 {
			t.Errorf("Distance() = %v, want 9", d)
		}
	})
}

func TestRectangleXNormYNorm(t *testing.T) {
	a := NewRectangle(0, 0, 10, 10)
	b := NewRectangle(20, 0, 10, 10)

	if g := a.XNorm(b); g != 10 {
		t.Errorf("XNorm() = %v, want 10", g)
	}
	if g := a.YNorm(b); g != 0 {
		t.Errorf("YNorm() = %v, want 0 (y-projections overlap)", g)
	}
}

func TestTextRectangleOrientation(t *testing.T) {
	tests := []struct {
		name string
		r    Rectangle
		text string
		want Orientation
	}{
		{"empty text", NewRectangle(0, 0, 10, 5), "", OrientationUnknown},
		{"single char", NewRectangle(0, 0, 10, 5), "x", OrientationUnknown},
		{"square", NewRectangle(0, 0, 10, 10), "ab", OrientationUnknown},
		{"wide", NewRectangle(0, 0, 20, 5), "ab", OrientationLandscape},
		{"tall", NewRectangle(0, 0, 5, 20), "ab", OrientationPortrait},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTextRectangle(tt.r, tt.text)
			if got := tr.Orientation(); got != tt.want {
				t.Errorf("Orientation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntervalListStaysSortedAndDisjoint(t *testing.T) {
	// Deterministic pseudo-random adds; after every Add the list must stay
	// sorted with a strict gap between consecutive intervals.
	il := NewIntervalList()
	seed := uint64(1)
	for i := 0; i < 200; i++ {
		seed = seed*6364136223846793005 + 1442695040888963407
		begin := float64(seed % 1000)
		length := float64(seed%97) / 10
		il.Add(Interval{Begin: begin, End: begin + length})

		items := il.Items()
		for j := 1; j < len(items); j++ {
			if items[j].Begin <= items[j-1].End {
				t.Fatalf("after add %d: intervals %d and %d touch or overlap: %+v", i, j-1, j, items)
			}
		}
	}
}

func TestRectangleUnionAreaIsMonotonic(t *testing.T) {
	pairs := []struct{ a, b Rectangle }{
		{NewRectangle(0, 0, 10, 10), NewRectangle(100, 100, 1, 1)},
		{NewRectangle(0, 0, 10, 10), NewRectangle(2, 2, 3, 3)},
		{NewRectangle(5, 5, 0, 0), NewRectangle(1, 1, 2, 2)},
	}
	for _, p := range pairs {
		u := p.a.Union(p.b)
		if u.Area() < p.a.Area() || u.Area() < p.b.Area() {
			t.Errorf("Union(%+v, %+v).Area() = %v, smaller than an operand", p.a, p.b, u.Area())
		}
	}
}

func TestRectangleDistanceZeroIffIntersecting(t *testing.T) {
	pairs := []struct{ a, b Rectangle }{
		{NewRectangle(0, 0, 10, 10), NewRectangle(5, 5, 10, 10)},
		{NewRectangle(0, 0, 10, 10), NewRectangle(10, 0, 10, 10)},
		{NewRectangle(0, 0, 10, 10), NewRectangle(30, 0, 10, 10)},
		{NewRectangle(0, 0, 10, 10), NewRectangle(15, 15, 10, 10)},
	}
	for _, p := range pairs {
		_, intersects := p.a.Intersect(p.b)
		d := p.a.Distance(p.b)
		if intersects != (d == 0) {
			t.Errorf("intersect=%v but Distance(%+v, %+v)=%v", intersects, p.a, p.b, d)
		}
	}
}

func TestPageJSONRoundTrip(t *testing.T) {
	p := Page{
		Number: 1,
		Width:  612,
		Height: 792,
		Fonts:  []FontSpec{{Size: 12, Color: "000000"}},
	}
	bold := FontSpec{Size: 12, Color: "000000"}
	p.AddWord(NewWord(NewRectangle(10, 20, 30, 12), "héllo").WithFont(bold))
	p.AddWord(NewWord(NewRectangle(50, 20, 20, 12), "world"))

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got Page
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got.Number != p.Number || got.Width != p.Width || got.Height != p.Height {
		t.Errorf("page fields = %+v, want %+v", got, p)
	}
	if len(got.Words) != 2 {
		t.Fatalf("words = %d, want 2", len(got.Words))
	}
	if got.Words[0].Text != "héllo" {
		t.Errorf("word[0].Text = %q, want héllo", got.Words[0].Text)
	}
	if got.Words[0].Font == nil || *got.Words[0].Font != bold {
		t.Errorf("word[0].Font = %+v, want %+v", got.Words[0].Font, bold)
	}
	if got.Words[1].Font != nil {
		t.Errorf("word[1].Font = %+v, want nil", got.Words[1].Font)
	}
}

func TestPageUnmarshalToleratesMissingFontsAndFont(t *testing.T) {
	raw := []byte(`{"page":1,"width":100,"height":100,"data":[{"x":0,"y":0,"w":10,"h":10,"t":"hi"}]}`)
	var p Page
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(p.Words) != 1 || p.Words[0].Font != nil {
		t.Errorf("p = %+v, want one unannotated word", p)
	}
	if len(p.Fonts) != 0 {
		t.Errorf("Fonts = %+v, want none", p.Fonts)
	}
}

func TestPageMarshalIsUTF8Clean(t *testing.T) {
	p := Page{Number: 1, Width: 10, Height: 10}
	p.AddWord(NewWord(NewRectangle(0, 0, 1, 1), "日本語"))
	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !containsBytes(raw, []byte("日本語")) {
		t.Errorf("expected literal UTF-8 text in output, got %s", raw)
	}
}

func containsBytes(haystack, needle []byte) bool {
	return len(haystack) >= len(needle) && string(haystack) != "" &&
		indexOf(haystack, needle) >= 0
}

func indexOf(haystack, needle []byte) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if string(haystack[i:i+len(needle)]) == string(needle) {
			return i
		}
	}
	return -1
}
