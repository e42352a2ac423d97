package adapter

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/pdflayout/errs"
	"github.com/tsawler/pdflayout/model"
)

// ExtractBBoxText runs `pdftotext -bbox` over one page of a PDF and returns
// its words as a model.Page, with coordinates already shifted into crop-box
// space and words outside the crop box discarded.
func ExtractBBoxText(ctx context.Context, pdfPath string, pageNum int) (model.Page, error) {
	page := strconv.Itoa(pageNum)
	out, err := withTempFile("pdflayout-bbox-", func(path string) error {
		_, err := run(ctx, "pdftotext", "-bbox", "-f", page, "-l", page, pdfPath, path)
		return err
	})
	if err != nil {
		return model.Page{}, err
	}

	// pdftotext was limited to this one page, so it is the first <page>
	// element of its output.
	raw, err := parseBBoxHTML(out, 1)
	if err != nil {
		return model.Page{}, err
	}
	raw.Number = pageNum

	boxes, err := GetPageBoxes(ctx, pdfPath, pageNum)
	if err != nil {
		return model.Page{}, err
	}
	return transformToCropBox(raw, boxes), nil
}

// parseBBoxHTML parses pdftotext -bbox's HTML-ish output into a Page, using
// a lenient HTML parser since the emitted markup is not strict XML.
func parseBBoxHTML(doc string, pageNum int) (model.Page, error) {
	node, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return model.Page{}, fmt.Errorf("adapter: %w: parsing bbox output: %v", errs.ErrExternalToolFailed, err)
	}

	var page model.Page
	var pageIx int
	var found bool

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "page" {
			pageIx++
			if pageIx == pageNum || (pageNum == 0 && pageIx == 1) {
				found = true
				page = buildPageFromNode(n, pageNum)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)

	if !found {
		return model.Page{}, fmt.Errorf("adapter: %w: page %d not found in bbox output", errs.ErrExternalToolFailed, pageNum)
	}
	return page, nil
}

func buildPageFromNode(pageNode *html.Node, pageNum int) model.Page {
	width, _ := strconv.ParseFloat(attr(pageNode, "width"), 64)
	height, _ := strconv.ParseFloat(attr(pageNode, "height"), 64)
	page := model.Page{Number: pageNum, Width: width, Height: height}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "word" {
			minX := parseFirstAttr(n, "xmin", "xMin")
			maxX := parseFirstAttr(n, "xmax", "xMax")
			minY := parseFirstAttr(n, "ymin", "yMin")
			maxY := parseFirstAttr(n, "ymax", "yMax")
			// The raw-text adapter NFC-normalizes its output; word text
			// must match it byte for byte for stream matching to work.
			text := norm.NFC.String(textContent(n))
			rect := model.NewRectangle(minX, minY, maxX-minX, maxY-minY)
			page.AddWord(model.NewWord(rect, text))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(pageNode)
	return page
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

func parseFirstAttr(n *html.Node, names ...string) float64 {
	for _, name := range names {
		if v := attr(n, name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err == nil {
				return f
			}
		}
	}
	return 0
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// transformToCropBox shifts word coordinates into crop-box space and drops
// words that fall entirely outside the visible page.
func transformToCropBox(page model.Page, boxes BoxInfo) model.Page {
	out := model.Page{Number: page.Number}
	out.Width = boxes.Crop[2] - boxes.Crop[0]
	out.Height = boxes.Crop[3] - boxes.Crop[1]
	if out.Width == 0 {
		out.Width = page.Width
	}
	if out.Height == 0 {
		out.Height = page.Height
	}

	world := model.NewRectangle(0, 0, out.Width, out.Height)
	for _, w := range page.Words {
		shifted := model.NewRectangle(w.X-boxes.Crop[0], w.Y-boxes.Crop[1], w.W, w.H)
		if _, ok := shifted.Intersect(world); !ok {
			continue
		}
		out.AddWord(model.NewWord(shifted, w.Text))
	}
	return out
}
