package chart

import (
	"image/color"
	"math"
	"strconv"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/cf-tools/cf-insight/internal/domain/profile"
)

// Subject is one bar-chart participant. Absent ratings render as zero-height
// bars; the profile itself stays untouched.
type Subject struct {
	Handle    string
	Rating    *int
	MaxRating *int
}

// SubjectFromProfile extracts the bar chart inputs from a profile.
func SubjectFromProfile(p *profile.UserProfile) Subject {
	return Subject{Handle: p.Handle, Rating: p.Rating, MaxRating: p.MaxRating}
}

var (
	currentBarColor = color.RGBA{R: 65, G: 105, B: 225, A: 255}  // royal blue
	maxBarColor     = color.RGBA{R: 240, G: 128, B: 128, A: 255} // light coral
)

// RatingBars renders the grouped current-vs-max rating bar chart. A
// comparison subject whose handle equals the primary's is silently dropped.
func RatingBars(primary Subject, comparisons []Subject) ([]byte, error) {
	titleFace, labelFace, smallFace, err := faces()
	if err != nil {
		return nil, err
	}

	subjects := dedupSubjects(primary, comparisons)

	dc := gg.NewContext(barChartWidth, barChartHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	area := plotArea{
		x0: marginLeft,
		y0: marginTop,
		x1: barChartWidth - marginRight,
		y1: barChartHeight - marginBottom,
	}

	ymax := 100.0
	for _, s := range subjects {
		ymax = math.Max(ymax, float64(ratingOrZero(s.Rating)))
		ymax = math.Max(ymax, float64(ratingOrZero(s.MaxRating)))
	}
	ymax *= 1.15

	drawYGrid(dc, area, 0, ymax, smallFace)
	drawTierLines(dc, area, ymax, smallFace)
	drawFrame(dc, area, "Rating Comparison", titleFace, labelFace)

	// Bars: each subject gets one slot, two bars side by side inside it.
	slot := area.width() / float64(len(subjects))
	barW := slot * 0.35

	dc.SetFontFace(smallFace)
	for i, s := range subjects {
		center := area.x0 + slot*(float64(i)+0.5)
		current := float64(ratingOrZero(s.Rating))
		peak := float64(ratingOrZero(s.MaxRating))

		drawBar(dc, area, center-barW, barW, current, ymax, currentBarColor)
		drawBar(dc, area, center, barW, peak, ymax, maxBarColor)

		dc.SetRGB(0.1, 0.1, 0.1)
		dc.DrawStringAnchored(strconv.Itoa(int(current)), center-barW/2,
			area.scaleY(current, 0, ymax)-10, 0.5, 0.5)
		dc.DrawStringAnchored(strconv.Itoa(int(peak)), center+barW/2,
			area.scaleY(peak, 0, ymax)-10, 0.5, 0.5)

		dc.SetFontFace(labelFace)
		dc.DrawStringAnchored(s.Handle, center, area.y1+30, 0.5, 0.5)
		dc.SetFontFace(smallFace)
	}

	drawLegend(dc, area.x0+14, area.y0+14, []legendEntry{
		{label: "Current Rating", color: currentBarColor},
		{label: "Max Rating", color: maxBarColor},
	}, smallFace)

	return encodePNG(dc)
}

// dedupSubjects mirrors dedupSeries for the bar chart.
func dedupSubjects(primary Subject, comparisons []Subject) []Subject {
	out := []Subject{primary}
	for _, s := range comparisons {
		if s.Handle == primary.Handle {
			continue
		}
		out = append(out, s)
	}
	return out
}

func drawBar(dc *gg.Context, area plotArea, x, w, value, ymax float64, c color.RGBA) {
	top := area.scaleY(value, 0, ymax)
	dc.SetColor(c)
	dc.DrawRectangle(x, top, w, area.y1-top)
	dc.Fill()
}

// drawTierLines draws each tier threshold inside the visible range as a
// dashed horizontal reference line with its label at the right edge.
func drawTierLines(dc *gg.Context, area plotArea, ymax float64, smallFace font.Face) {
	dc.SetFontFace(smallFace)
	for _, tier := range tierBands() {
		if tier.min <= 0 || float64(tier.min) > ymax {
			continue
		}
		y := area.scaleY(float64(tier.min), 0, ymax)

		c := tier.color
		dc.SetRGBA255(int(c.R), int(c.G), int(c.B), 90)
		dc.SetLineWidth(1.5)
		dc.SetDash(6, 6)
		dc.DrawLine(area.x0, y, area.x1, y)
		dc.Stroke()
		dc.SetDash()

		dc.SetRGB(0.25, 0.25, 0.25)
		dc.DrawStringAnchored(tier.name, area.x1+8, y-2, 0, 1)
	}
}

func ratingOrZero(r *int) int {
	if r == nil {
		return 0
	}
	return *r
}
