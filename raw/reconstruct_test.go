package raw

import (
	"context"
	"testing"

	"github.com/tsawler/pdflayout/model"
)

func TestFindAllSubstringsOverlapping(t *testing.T) {
	got := findAllSubstrings("aaaa", "aa")
	want := []int{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("findAllSubstrings() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestMayReconstructBy(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		matches []Match
		want    bool
	}{
		{"exact tiling with space", "Hello World", []Match{{Start: 0, End: 5}, {Start: 6, End: 11}}, true},
		{"gap with non-space", "HelloWorld", []Match{{Start: 0, End: 5}}, false},
		{"overlap", "Hello", []Match{{Start: 0, End: 3}, {Start: 2, End: 5}}, false},
		{"no matches", "Hello", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mayReconstructBy(tt.text, tt.matches); got != tt.want {
				t.Errorf("mayReconstructBy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReconstructorRunMergesSplitWord(t *testing.T) {
	page := model.Page{Number: 1, Width: 200, Height: 100}
	page.AddWord(model.NewWord(model.NewRectangle(0, 0, 20, 10), "Hel"))
	page.AddWord(model.NewWord(model.NewRectangle(20, 0, 20, 10), "lo"))
	page.AddWord(model.NewWord(model.NewRectangle(60, 0, 30, 10), "World"))

	r := NewReconstructor(page, []string{"Hello World"})
	out, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(out.Words) != 1 {
		t.Fatalf("expected the stream to merge into 1 word, got %d: %+v", len(out.Words), out.Words)
	}
	if out.Words[0].Text != "Hello World" {
		t.Errorf("merged text = %q, want %q", out.Words[0].Text, "Hello World")
	}
}

func TestReconstructorRunIsIdempotent(t *testing.T) {
	page := model.Page{Number: 1, Width: 200, Height: 100}
	page.AddWord(model.NewWord(model.NewRectangle(0, 0, 20, 10), "Hel"))
	page.AddWord(model.NewWord(model.NewRectangle(20, 0, 20, 10), "lo"))
	page.AddWord(model.NewWord(model.NewRectangle(60, 0, 30, 10), "World"))

	streams := []string{"Hello World"}
	once, err := NewReconstructor(page, streams).Run(context.Background())
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	twice, err := NewReconstructor(once, streams).Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if len(twice.Words) != len(once.Words) {
		t.Fatalf("second run changed word count: %d vs %d", len(twice.Words), len(once.Words))
	}
	for i := range once.Words {
		if once.Words[i].Text != twice.Words[i].Text || once.Words[i].Rectangle != twice.Words[i].Rectangle {
			t.Errorf("word %d changed on second run: %+v vs %+v", i, once.Words[i], twice.Words[i])
		}
	}
}

func TestReconstructorRunLeavesUnmatchedWordsAlone(t *testing.T) {
	page := model.Page{Number: 1, Width: 200, Height: 100}
	page.AddWord(model.NewWord(model.NewRectangle(0, 0, 20, 10), "Orphan"))

	r := NewReconstructor(page, nil)
	out, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(out.Words) != 1 || out.Words[0].Text != "Orphan" {
		t.Errorf("out.Words = %+v, want the original orphan word unchanged", out.Words)
	}
}

func TestReconstructorRunCancelled(t *testing.T) {
	page := model.Page{Number: 1, Width: 10, Height: 10}
	r := NewReconstructor(page, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Run(ctx); err == nil {
		t.Error("expected Run() to return an error for a cancelled context")
	}
}

func TestDiscardOutliersCachePerReconstructor(t *testing.T) {
	page := model.Page{Number: 1, Width: 200, Height: 100}
	for i := 0; i < 4; i++ {
		page.AddWord(model.NewWord(model.NewRectangle(float64(i*10), 0, 9, 10), "x"))
	}
	r1 := NewReconstructor(page, []string{"x x x x"})
	r2 := NewReconstructor(page, []string{"x x x x"})

	// Populating r1's cache must not affect r2 -- each page's Reconstructor
	// owns an independent discard cache.
	r1.discardOutliers(0)
	if len(r2.discardCache) != 0 {
		t.Error("discard cache leaked across Reconstructor instances")
	}
}
