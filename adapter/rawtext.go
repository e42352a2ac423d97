package adapter

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ExtractRawText runs `pdftotext -raw` over one page and returns its lines
// in content-stream order, NFC-normalized.
func ExtractRawText(ctx context.Context, pdfPath string, pageNum int) ([]string, error) {
	page := strconv.Itoa(pageNum)
	out, err := run(ctx, "pdftotext", "-raw", "-f", page, "-l", page, pdfPath, "-")
	if err != nil {
		return nil, err
	}

	text := norm.NFC.String(string(out))
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}
