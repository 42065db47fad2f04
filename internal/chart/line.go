package chart

import (
	"math"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/cf-tools/cf-insight/internal/domain/contest"
)

// Series is one subject's rating trajectory: the handle and its
// rating-change events. Points are plotted at their own timestamps; no
// resampling to a common grid happens.
type Series struct {
	Handle string
	Points []Point
}

// Point is one rating-change event on the trajectory.
type Point struct {
	At     time.Time
	Rating int
}

// SeriesFromRatingChanges builds a Series from a handle's rating-change
// sequence, ordering events chronologically.
func SeriesFromRatingChanges(handle string, changes []contest.RatingChange) Series {
	points := make([]Point, 0, len(changes))
	for _, rc := range changes {
		points = append(points, Point{At: rc.UpdatedAt, Rating: rc.NewRating})
	}
	for i := 1; i < len(points); i++ {
		for j := i; j > 0 && points[j].At.Before(points[j-1].At); j-- {
			points[j], points[j-1] = points[j-1], points[j]
		}
	}
	return Series{Handle: handle, Points: points}
}

// RatingTrajectory renders the multi-subject rating line chart. A
// comparison series whose handle equals the primary's is dropped so the
// primary is rendered exactly once. A series with no points contributes
// nothing but does not abort the render.
func RatingTrajectory(primary Series, comparisons []Series) ([]byte, error) {
	titleFace, labelFace, smallFace, err := faces()
	if err != nil {
		return nil, err
	}

	series := dedupSeries(primary, comparisons)

	dc := gg.NewContext(lineChartWidth, lineChartHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	area := plotArea{
		x0: marginLeft,
		y0: marginTop,
		x1: lineChartWidth - marginRight,
		y1: lineChartHeight - marginBottom,
	}

	tmin, tmax, ymin, ymax := trajectoryRange(series)

	drawTierBands(dc, area, ymin, ymax, smallFace)
	drawYGrid(dc, area, ymin, ymax, smallFace)
	drawTimeAxis(dc, area, tmin, tmax, smallFace)
	drawFrame(dc, area, "Rating Comparison", titleFace, labelFace)

	var legend []legendEntry
	for i, s := range series {
		c := seriesColor(i)
		legend = append(legend, legendEntry{label: s.Handle, color: c})
		if len(s.Points) == 0 {
			continue
		}

		dc.SetColor(c)
		dc.SetLineWidth(2.5)
		for j := 1; j < len(s.Points); j++ {
			x1 := area.scaleX(float64(s.Points[j-1].At.Unix()), tmin, tmax)
			y1 := area.scaleY(float64(s.Points[j-1].Rating), ymin, ymax)
			x2 := area.scaleX(float64(s.Points[j].At.Unix()), tmin, tmax)
			y2 := area.scaleY(float64(s.Points[j].Rating), ymin, ymax)
			dc.DrawLine(x1, y1, x2, y2)
			dc.Stroke()
		}
		for _, p := range s.Points {
			x := area.scaleX(float64(p.At.Unix()), tmin, tmax)
			y := area.scaleY(float64(p.Rating), ymin, ymax)
			dc.DrawCircle(x, y, 4)
			dc.Fill()
		}
	}

	drawLegend(dc, area.x0+14, area.y0+14, legend, smallFace)

	return encodePNG(dc)
}

// dedupSeries returns the primary followed by comparisons, silently
// dropping any comparison that duplicates the primary's handle.
func dedupSeries(primary Series, comparisons []Series) []Series {
	out := []Series{primary}
	for _, s := range comparisons {
		if s.Handle == primary.Handle {
			continue
		}
		out = append(out, s)
	}
	return out
}

// trajectoryRange computes padded time and rating bounds over all points.
// With no points at all it falls back to the last year and the full band
// spread, so an event-free chart still renders.
func trajectoryRange(series []Series) (tmin, tmax, ymin, ymax float64) {
	first := true
	for _, s := range series {
		for _, p := range s.Points {
			t := float64(p.At.Unix())
			r := float64(p.Rating)
			if first {
				tmin, tmax, ymin, ymax = t, t, r, r
				first = false
				continue
			}
			tmin = math.Min(tmin, t)
			tmax = math.Max(tmax, t)
			ymin = math.Min(ymin, r)
			ymax = math.Max(ymax, r)
		}
	}

	if first {
		now := time.Now()
		return float64(now.AddDate(-1, 0, 0).Unix()), float64(now.Unix()), 0, 3500
	}

	const day = 86400.0
	if tmax-tmin < day {
		tmin -= day
		tmax += day
	}
	pad := (tmax - tmin) * 0.02
	tmin -= pad
	tmax += pad

	ymin -= 150
	ymax += 150
	return tmin, tmax, ymin, ymax
}

// drawTimeAxis prints date tick labels along the bottom edge.
func drawTimeAxis(dc *gg.Context, area plotArea, tmin, tmax float64, smallFace font.Face) {
	const ticks = 6
	dc.SetFontFace(smallFace)
	for i := 0; i <= ticks; i++ {
		t := tmin + (tmax-tmin)*float64(i)/float64(ticks)
		x := area.scaleX(t, tmin, tmax)

		dc.SetRGBA255(140, 140, 140, 120)
		dc.SetLineWidth(1)
		dc.SetDash(5, 5)
		dc.DrawLine(x, area.y0, x, area.y1)
		dc.Stroke()
		dc.SetDash()

		label := time.Unix(int64(t), 0).UTC().Format("2006-01-02")
		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawStringAnchored(label, x, area.y1+24, 0.5, 0.5)
	}
}
