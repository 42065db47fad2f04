// Package chart renders the comparison visualizations as PNG buffers:
// rating trajectories, current-vs-max rating bars, and verdict pies.
// Layouts and the tier-band shading follow the classic Codeforces look.
// The package draws everything itself on a gg canvas; callers receive an
// opaque encoded image and decide how to deliver it.
package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Canvas sizes. 150 px/inch over the original 12x6in and 10x8in figures
// keeps text legible when the image is embedded and scaled down.
const (
	lineChartWidth  = 1800
	lineChartHeight = 900
	barChartWidth   = 1800
	barChartHeight  = 900
	pieChartWidth   = 1500
	pieChartHeight  = 1200
)

// Plot margins shared by the two axis-based charts. The right margin
// leaves room for tier labels printed at the edge of the plot area.
const (
	marginLeft   = 100.0
	marginRight  = 250.0
	marginTop    = 80.0
	marginBottom = 100.0
)

const tierBandAlpha = 26 // ~0.1 opacity, matches the subtle band shading

// seriesPalette colors one plotted subject each, cycling when exhausted.
var seriesPalette = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
	{R: 140, G: 86, B: 75, A: 255},
	{R: 227, G: 119, B: 194, A: 255},
	{R: 127, G: 127, B: 127, A: 255},
	{R: 188, G: 189, B: 34, A: 255},
	{R: 23, G: 190, B: 207, A: 255},
}

func seriesColor(i int) color.RGBA {
	return seriesPalette[i%len(seriesPalette)]
}

var (
	fontOnce sync.Once
	fontErr  error
	baseFont *truetype.Font
)

// faces returns title, label and small font faces. The embedded Go font
// avoids any dependency on system font paths.
func faces() (title, label, small font.Face, err error) {
	fontOnce.Do(func() {
		baseFont, fontErr = truetype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, nil, nil, fmt.Errorf("parse font: %w", fontErr)
	}
	title = truetype.NewFace(baseFont, &truetype.Options{Size: 32})
	label = truetype.NewFace(baseFont, &truetype.Options{Size: 22})
	small = truetype.NewFace(baseFont, &truetype.Options{Size: 18})
	return title, label, small, nil
}

// plotArea is the axis rectangle of a chart in canvas coordinates.
type plotArea struct {
	x0, y0, x1, y1 float64
}

func (a plotArea) width() float64  { return a.x1 - a.x0 }
func (a plotArea) height() float64 { return a.y1 - a.y0 }

// scaleY maps a rating to a canvas y coordinate (top-left origin).
func (a plotArea) scaleY(v, vmin, vmax float64) float64 {
	if vmax == vmin {
		return a.y1
	}
	return a.y1 - (v-vmin)/(vmax-vmin)*a.height()
}

// scaleX maps a value to a canvas x coordinate.
func (a plotArea) scaleX(v, vmin, vmax float64) float64 {
	if vmax == vmin {
		return a.x0
	}
	return a.x0 + (v-vmin)/(vmax-vmin)*a.width()
}

// niceStep picks a 1/2/5-scaled step that yields roughly targetTicks
// intervals over span.
func niceStep(span float64, targetTicks int) float64 {
	if span <= 0 || targetTicks <= 0 {
		return 1
	}
	raw := span / float64(targetTicks)
	magnitude := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if raw <= m*magnitude {
			return m * magnitude
		}
	}
	return 10 * magnitude
}

// drawTierBands shades the rating bands intersecting [ymin, ymax] inside
// the plot area and prints each band's label at the right edge.
func drawTierBands(dc *gg.Context, area plotArea, ymin, ymax float64, labelFace font.Face) {
	dc.SetFontFace(labelFace)
	for _, tier := range tierBands() {
		lo := math.Max(float64(tier.min), ymin)
		hi := math.Min(float64(tier.max), ymax)
		if lo >= hi {
			continue
		}
		top := area.scaleY(hi, ymin, ymax)
		bottom := area.scaleY(lo, ymin, ymax)

		c := tier.color
		dc.SetRGBA255(int(c.R), int(c.G), int(c.B), tierBandAlpha)
		dc.DrawRectangle(area.x0, top, area.width(), bottom-top)
		dc.Fill()

		dc.SetRGB(0.25, 0.25, 0.25)
		dc.DrawStringAnchored(tier.name, area.x1+8, (top+bottom)/2, 0, 0.4)
	}
}

// drawYGrid draws dashed horizontal grid lines with rating tick labels.
func drawYGrid(dc *gg.Context, area plotArea, ymin, ymax float64, smallFace font.Face) {
	step := niceStep(ymax-ymin, 8)
	dc.SetFontFace(smallFace)
	for v := math.Ceil(ymin/step) * step; v <= ymax; v += step {
		y := area.scaleY(v, ymin, ymax)
		dc.SetRGBA255(140, 140, 140, 120)
		dc.SetLineWidth(1)
		dc.SetDash(5, 5)
		dc.DrawLine(area.x0, y, area.x1, y)
		dc.Stroke()
		dc.SetDash()
		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", v), area.x0-10, y, 1, 0.4)
	}
}

// drawFrame draws the plot border, title and the y axis caption.
func drawFrame(dc *gg.Context, area plotArea, title string, titleFace, labelFace font.Face) {
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.SetLineWidth(1.5)
	dc.DrawRectangle(area.x0, area.y0, area.width(), area.height())
	dc.Stroke()

	dc.SetFontFace(titleFace)
	dc.DrawStringAnchored(title, (area.x0+area.x1)/2, area.y0/2, 0.5, 0.5)

	dc.Push()
	dc.SetFontFace(labelFace)
	dc.RotateAbout(-math.Pi/2, 32, (area.y0+area.y1)/2)
	dc.DrawStringAnchored("Rating", 32, (area.y0+area.y1)/2, 0.5, 0.5)
	dc.Pop()
}

// legendEntry is one swatch plus caption in a chart legend.
type legendEntry struct {
	label string
	color color.RGBA
}

// drawLegend renders a legend box anchored at (x, y), top-left.
func drawLegend(dc *gg.Context, x, y float64, entries []legendEntry, face font.Face) {
	const rowH = 30.0
	const swatch = 16.0

	dc.SetFontFace(face)
	maxW := 0.0
	for _, e := range entries {
		w, _ := dc.MeasureString(e.label)
		if w > maxW {
			maxW = w
		}
	}
	boxW := swatch + 14 + maxW + 20
	boxH := rowH*float64(len(entries)) + 10

	dc.SetRGBA255(255, 255, 255, 230)
	dc.DrawRectangle(x, y, boxW, boxH)
	dc.Fill()
	dc.SetRGB(0.4, 0.4, 0.4)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x, y, boxW, boxH)
	dc.Stroke()

	for i, e := range entries {
		rowY := y + 10 + float64(i)*rowH
		dc.SetColor(e.color)
		dc.DrawRectangle(x+10, rowY, swatch, swatch)
		dc.Fill()
		dc.SetRGB(0.1, 0.1, 0.1)
		dc.DrawStringAnchored(e.label, x+10+swatch+8, rowY+swatch/2, 0, 0.4)
	}
}

// encodePNG flattens the canvas into an encoded PNG buffer.
func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
