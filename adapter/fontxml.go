package adapter

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/pdflayout/errs"
	"github.com/tsawler/pdflayout/model"
)

type fontTextElement struct {
	left, top, width, height float64
	fontID                   string
}

// AnnotateFonts runs `pdftohtml -xml` over one page, matches each of its
// text elements to a page word by bounding-box center containment, and
// assigns each word the plurality-voted FontSpec among its matches.
func AnnotateFonts(ctx context.Context, pdfPath string, page model.Page) (model.Page, error) {
	pageNum := strconv.Itoa(page.Number)
	out, err := run(ctx, "pdftohtml", "-i", "-xml", "-zoom", "1", "-f", pageNum, "-l", pageNum, "-stdout", pdfPath)
	if err != nil {
		return model.Page{}, err
	}

	fonts, elements, pageWidth, pageHeight, err := parseFontXML(string(out))
	if err != nil {
		return model.Page{}, err
	}

	boxes, err := GetPageBoxes(ctx, pdfPath, page.Number)
	if err != nil {
		return model.Page{}, err
	}
	return annotate(page, fonts, elements, pageWidth, pageHeight, boxes), nil
}

func parseFontXML(doc string) (map[string]model.FontSpec, []fontTextElement, float64, float64, error) {
	node, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, nil, 0, 0, fmt.Errorf("adapter: %w: parsing font xml: %v", errs.ErrExternalToolFailed, err)
	}

	fonts := map[string]model.FontSpec{}
	var elements []fontTextElement
	var pageWidth, pageHeight float64
	var sawPage bool

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "page":
				if !sawPage {
					pageWidth, _ = strconv.ParseFloat(attr(n, "width"), 64)
					pageHeight, _ = strconv.ParseFloat(attr(n, "height"), 64)
					sawPage = true
				}
			case "fontspec":
				size, _ := strconv.Atoi(attr(n, "size"))
				color := strings.TrimPrefix(attr(n, "color"), "#")
				fonts[attr(n, "id")] = model.NewFontSpec(size, color)
			case "text":
				top, _ := strconv.ParseFloat(attr(n, "top"), 64)
				left, _ := strconv.ParseFloat(attr(n, "left"), 64)
				width, _ := strconv.ParseFloat(attr(n, "width"), 64)
				height, _ := strconv.ParseFloat(attr(n, "height"), 64)
				if width == 0 {
					// pdftohtml occasionally reports a zero width for a
					// run; its height is a usable stand-in.
					width = height
				}
				elements = append(elements, fontTextElement{
					left: left, top: top, width: width, height: height,
					fontID: attr(n, "font"),
				})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)

	return fonts, elements, pageWidth, pageHeight, nil
}

// annotate matches each xml text element to the page word containing its
// center point, tallies font-id votes per word, and assigns each matched
// word its plurality font. Elements outside the xml page are dropped; the
// rest are translated into crop-box space before matching.
func annotate(page model.Page, fonts map[string]model.FontSpec, elements []fontTextElement, pageWidth, pageHeight float64, boxes BoxInfo) model.Page {
	votes := make([]map[string]int, len(page.Words))
	for i := range votes {
		votes[i] = map[string]int{}
	}

	for _, el := range elements {
		if el.top >= pageHeight || el.top+el.height <= 0 ||
			el.left+el.width <= 0 || el.left > pageWidth {
			continue
		}
		cx := el.left - boxes.Crop[0] + el.width/2
		cy := el.top - boxes.Crop[1] + el.height/2
		for i, w := range page.Words {
			if cx >= w.X && cx <= w.X+w.W && cy >= w.Y && cy <= w.Y+w.H {
				votes[i][el.fontID]++
				break
			}
		}
	}

	seenFonts := make([]model.FontSpec, 0, len(fonts))
	for _, f := range fonts {
		seenFonts = append(seenFonts, f)
	}
	sort.Slice(seenFonts, func(i, j int) bool {
		if seenFonts[i].Size != seenFonts[j].Size {
			return seenFonts[i].Size < seenFonts[j].Size
		}
		return seenFonts[i].Color < seenFonts[j].Color
	})

	out := model.Page{Number: page.Number, Width: page.Width, Height: page.Height, Fonts: seenFonts}
	for i, w := range page.Words {
		best, ok := plurality(votes[i])
		if ok {
			if f, ok := fonts[best]; ok {
				w = w.WithFont(f)
			}
		}
		out.AddWord(w)
	}
	return out
}

func plurality(counts map[string]int) (string, bool) {
	var best string
	var bestCount int
	for id, c := range counts {
		if c > bestCount {
			best, bestCount = id, c
		}
	}
	return best, bestCount > 0
}
