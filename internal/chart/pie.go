package chart

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/cf-tools/cf-insight/internal/domain/shared"
	"github.com/cf-tools/cf-insight/internal/domain/stats"
)

// verdictColors is the fixed palette for well-known verdict labels.
// Unrecognized labels, including the synthetic Others bucket, fall back to
// grey; verdicts are an open set and the chart never rejects a label.
var verdictColors = map[string]color.RGBA{
	"OK":                    {R: 0x4C, G: 0xAF, B: 0x50, A: 255},
	"WRONG_ANSWER":          {R: 0xF4, G: 0x43, B: 0x36, A: 255},
	"TIME_LIMIT_EXCEEDED":   {R: 0xFF, G: 0xC1, B: 0x07, A: 255},
	"MEMORY_LIMIT_EXCEEDED": {R: 0xFF, G: 0x98, B: 0x00, A: 255},
	"RUNTIME_ERROR":         {R: 0x9C, G: 0x27, B: 0xB0, A: 255},
	"COMPILATION_ERROR":     {R: 0x79, G: 0x55, B: 0x48, A: 255},
	"FAILED":                {R: 0x60, G: 0x7D, B: 0x8B, A: 255},
	"PARTIAL":               {R: 0x21, G: 0x96, B: 0xF3, A: 255},
	"SKIPPED":               {R: 0x9E, G: 0x9E, B: 0x9E, A: 255},
	"CHALLENGED":            {R: 0xE9, G: 0x1E, B: 0x63, A: 255},
	"REJECTED":              {R: 0xF4, G: 0x43, B: 0x36, A: 255},
}

var fallbackVerdictColor = color.RGBA{R: 0x9E, G: 0x9E, B: 0x9E, A: 255}

func verdictColor(label string) color.RGBA {
	if c, ok := verdictColors[label]; ok {
		return c
	}
	return fallbackVerdictColor
}

// VerdictPie renders the verdict distribution pie for one histogram. The
// legend carries the total submission count; an Others slice lists the
// verdicts it absorbed.
func VerdictPie(h *stats.Histogram) ([]byte, error) {
	if h == nil || h.Total == 0 || len(h.Buckets) == 0 {
		return nil, shared.NewDomainError("chart", "VerdictPie",
			shared.ErrEmptyDataset, "histogram has no buckets")
	}

	titleFace, labelFace, smallFace, err := faces()
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(pieChartWidth, pieChartHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetFontFace(titleFace)
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored("Submission Verdicts Distribution", pieChartWidth/2, 45, 0.5, 0.5)

	// Pie on the left, legend on the right.
	cx := pieChartWidth * 0.34
	cy := pieChartHeight * 0.54
	radius := math.Min(pieChartWidth, pieChartHeight) * 0.30

	start := -math.Pi / 2
	for _, b := range h.Buckets {
		sweep := 2 * math.Pi * float64(b.Count) / float64(h.Total)
		end := start + sweep

		dc.SetColor(verdictColor(b.Label))
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, radius, start, end)
		dc.ClosePath()
		dc.Fill()

		dc.SetRGB(1, 1, 1)
		dc.SetLineWidth(2)
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, radius, start, end)
		dc.ClosePath()
		dc.Stroke()

		mid := (start + end) / 2

		// Slice caption outside the rim, percentage inside.
		dc.SetFontFace(labelFace)
		dc.SetRGB(0.1, 0.1, 0.1)
		lx := cx + math.Cos(mid)*radius*1.16
		ly := cy + math.Sin(mid)*radius*1.16
		dc.DrawStringAnchored(fmt.Sprintf("%s (%d)", b.Label, b.Count), lx, ly, anchorFor(mid), 0.5)

		if b.Share >= 0.03 {
			dc.SetFontFace(smallFace)
			dc.SetRGB(1, 1, 1)
			px := cx + math.Cos(mid)*radius*0.66
			py := cy + math.Sin(mid)*radius*0.66
			dc.DrawStringAnchored(fmt.Sprintf("%.1f%%", b.Share*100), px, py, 0.5, 0.5)
		}

		start = end
	}

	drawPieLegend(dc, h, labelFace, smallFace)

	return encodePNG(dc)
}

// anchorFor keeps slice captions from crossing into the pie: labels on the
// right half are left-anchored and vice versa.
func anchorFor(angle float64) float64 {
	if math.Cos(angle) >= 0 {
		return 0
	}
	return 1
}

func drawPieLegend(dc *gg.Context, h *stats.Histogram, labelFace, smallFace font.Face) {
	x := pieChartWidth * 0.68
	y := pieChartHeight * 0.22
	const rowH = 38.0
	const swatch = 18.0

	dc.SetFontFace(labelFace)
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored(fmt.Sprintf("Total Submissions: %d", h.Total), x, y-rowH, 0, 0.5)

	for i, b := range h.Buckets {
		rowY := y + float64(i)*rowH
		dc.SetColor(verdictColor(b.Label))
		dc.DrawRectangle(x, rowY-swatch/2, swatch, swatch)
		dc.Fill()

		dc.SetFontFace(labelFace)
		dc.SetRGB(0.1, 0.1, 0.1)
		dc.DrawStringAnchored(fmt.Sprintf("%s (%d)", b.Label, b.Count), x+swatch+10, rowY, 0, 0.4)

		if len(b.Absorbed) > 0 {
			parts := make([]string, 0, len(b.Absorbed))
			for _, vc := range b.Absorbed {
				parts = append(parts, fmt.Sprintf("%s(%d)", vc.Verdict, vc.Count))
			}
			dc.SetFontFace(smallFace)
			dc.SetRGB(0.35, 0.35, 0.35)
			dc.DrawStringAnchored(strings.Join(parts, ", "), x+swatch+10, rowY+18, 0, 0.4)
		}
	}
}
