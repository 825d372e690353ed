package placement

import "math"

// Affordance is how the overlay text should look on the scaled surface.
type Affordance struct {
	FontSize      float64
	LetterSpacing float64
}

// Affordances scales the text preview by the surface's display ratio.
// The stored fractional point is never affected by scale.
func Affordances(fontSize, letterSpacing, scale float64) Affordance {
	if scale <= 0 || math.IsNaN(scale) {
		scale = 1
	}
	return Affordance{
		FontSize:      math.Max(1, fontSize*scale),
		LetterSpacing: letterSpacing * scale,
	}
}

// GuideSet flags which alignment guides the marker is close to.
type GuideSet struct {
	CenterX, CenterY         bool
	Left, Right, Top, Bottom bool
}

const guideTolerance = 0.01

// Guides reports the guides p snaps visually to.
func Guides(p Point) GuideSet {
	return GuideSet{
		CenterX: math.Abs(p.X-0.5) <= guideTolerance,
		CenterY: math.Abs(p.Y-0.5) <= guideTolerance,
		Left:    p.X <= guideTolerance,
		Right:   p.X >= 1-guideTolerance,
		Top:     p.Y <= guideTolerance,
		Bottom:  p.Y >= 1-guideTolerance,
	}
}
