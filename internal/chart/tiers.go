package chart

import (
	"image/color"
	"math"

	"github.com/cf-tools/cf-insight/internal/domain/profile"
)

// band is one shaded tier region. The outermost bands are unbounded; the
// plot intersects them with the visible rating range.
type band struct {
	name     string
	min, max int
	color    color.RGBA
}

func tierBands() []band {
	tiers := profile.Tiers
	bands := make([]band, len(tiers))
	for i, t := range tiers {
		bands[i] = band{name: t.Name, min: t.MinRating, max: t.MaxRating, color: t.Color}
	}
	bands[0].max = math.MaxInt32
	bands[len(bands)-1].min = math.MinInt32
	return bands
}
