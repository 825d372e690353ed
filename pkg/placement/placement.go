// Package placement keeps the overlay position as a fraction of the template
// surface, independent of the surface's on-screen pixel size.
package placement

import "math"

// Point is a resolution-independent position in [0,1]x[0,1].
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Center is where a fresh or reset placement sits.
var Center = Point{X: 0.5, Y: 0.5}

// Clamp01 limits v to [0,1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Surface is the on-screen bounding box of the host the marker sits on,
// plus the native resolution of the template it displays.
type Surface struct {
	Left, Top     float64
	Width, Height float64

	NativeWidth, NativeHeight float64
}

func (s Surface) usable() bool {
	return s.Width > 0 && s.Height > 0
}

// Fraction converts a viewport coordinate into surface-relative fractions.
// The result is not clamped.
func (s Surface) Fraction(px, py float64) (float64, float64) {
	return (px - s.Left) / s.Width, (py - s.Top) / s.Height
}

// Scale is the displayed-over-native width ratio used for visual
// affordances. It is 1 when the native size is unknown.
func (s Surface) Scale() float64 {
	if s.NativeWidth <= 0 || s.Width <= 0 {
		return 1
	}
	return s.Width / s.NativeWidth
}

// Model owns the placement point. Every producer goes through Place so the
// point always stays inside the unit square.
type Model struct {
	point    Point
	dragging bool
}

// New returns a model centred on the surface.
func New() *Model {
	return &Model{point: Center}
}

// Point returns the committed position.
func (m *Model) Point() Point {
	return m.point
}

// Place clamps x and y to [0,1] and commits them.
func (m *Model) Place(x, y float64) Point {
	m.point = Point{X: Clamp01(x), Y: Clamp01(y)}
	return m.point
}

// Reset moves the marker back to the exact centre.
func (m *Model) Reset() Point {
	return m.Place(Center.X, Center.Y)
}

// ClickAt places the marker where the pointer hit the surface.
func (m *Model) ClickAt(s Surface, px, py float64) Point {
	if !s.usable() {
		return m.point
	}
	return m.Place(s.Fraction(px, py))
}

// BeginDrag starts tracking pointer motion.
func (m *Model) BeginDrag() {
	m.dragging = true
}

// DragTo commits the pointer position while a drag is active. Positions
// outside the surface clamp to its edges, so a drag survives the pointer
// leaving the surface.
func (m *Model) DragTo(s Surface, px, py float64) (Point, bool) {
	if !m.dragging || !s.usable() {
		return m.point, false
	}
	return m.Place(s.Fraction(px, py)), true
}

// EndDrag stops tracking pointer motion.
func (m *Model) EndDrag() {
	m.dragging = false
}

// Dragging reports whether a drag is in progress.
func (m *Model) Dragging() bool {
	return m.dragging
}
