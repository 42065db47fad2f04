package profile

import "image/color"

// Tier is one of the ten fixed rating bands used for classification and
// chart shading. Bands are closed at the lower bound: a rating exactly on
// a boundary belongs to the higher tier.
type Tier struct {
	// Name is the display label of the band.
	Name string

	// MinRating is the inclusive lower bound. The lowest band ignores it.
	MinRating int

	// MaxRating is the exclusive upper bound. The highest band ignores it.
	MaxRating int

	// Color is the band color used for chart shading.
	Color color.RGBA
}

// Tiers lists the ten bands in descending order of rating.
var Tiers = []Tier{
	{Name: "Legendary Grandmaster", MinRating: 3000, MaxRating: 4500, Color: color.RGBA{R: 255, A: 255}},
	{Name: "International Grandmaster", MinRating: 2600, MaxRating: 3000, Color: color.RGBA{R: 255, A: 255}},
	{Name: "Grandmaster", MinRating: 2400, MaxRating: 2600, Color: color.RGBA{R: 255, A: 255}},
	{Name: "International Master", MinRating: 2300, MaxRating: 2400, Color: color.RGBA{R: 255, G: 165, A: 255}},
	{Name: "Master", MinRating: 2100, MaxRating: 2300, Color: color.RGBA{R: 255, G: 165, A: 255}},
	{Name: "Candidate Master", MinRating: 1900, MaxRating: 2100, Color: color.RGBA{R: 238, G: 130, B: 238, A: 255}},
	{Name: "Expert", MinRating: 1600, MaxRating: 1900, Color: color.RGBA{B: 255, A: 255}},
	{Name: "Specialist", MinRating: 1400, MaxRating: 1600, Color: color.RGBA{G: 255, B: 255, A: 255}},
	{Name: "Pupil", MinRating: 1200, MaxRating: 1400, Color: color.RGBA{G: 128, A: 255}},
	{Name: "Newbie", MinRating: 0, MaxRating: 1200, Color: color.RGBA{R: 128, G: 128, B: 128, A: 255}},
}

// TierFor returns the band a rating falls into. Anything below the Pupil
// threshold, negative ratings included, is Newbie; anything at or above
// 3000 is Legendary Grandmaster.
func TierFor(rating int) Tier {
	for _, t := range Tiers[:len(Tiers)-1] {
		if rating >= t.MinRating {
			return t
		}
	}
	return Tiers[len(Tiers)-1]
}
