package adapter

import (
	"context"
	"strconv"
	"strings"
)

// BoxInfo holds the geometry boxes `pdfinfo -box` reports for a page:
// media, crop, bleed, trim, and art boxes, each as [x0, y0, x1, y1].
type BoxInfo struct {
	Media [4]float64
	Crop  [4]float64
	Bleed [4]float64
	Trim  [4]float64
	Art   [4]float64
}

// GetPageBoxes runs `pdfinfo -box` for one page and parses its box
// geometry.
func GetPageBoxes(ctx context.Context, pdfPath string, pageNum int) (BoxInfo, error) {
	page := strconv.Itoa(pageNum)
	out, err := run(ctx, "pdfinfo", "-box", "-f", page, "-l", page, pdfPath)
	if err != nil {
		return BoxInfo{}, err
	}
	return parsePageBoxes(string(out)), nil
}

func parsePageBoxes(output string) BoxInfo {
	var info BoxInfo
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		var dst *[4]float64
		switch fields[0] {
		case "MediaBox:":
			dst = &info.Media
		case "CropBox:":
			dst = &info.Crop
		case "BleedBox:":
			dst = &info.Bleed
		case "TrimBox:":
			dst = &info.Trim
		case "ArtBox:":
			dst = &info.Art
		default:
			continue
		}
		for i := 0; i < 4; i++ {
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				continue
			}
			dst[i] = v
		}
	}
	if info.Crop == ([4]float64{}) {
		info.Crop = info.Media
	}
	return info
}
