package placement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceClamps(t *testing.T) {
	m := New()

	tests := []struct {
		x, y float64
		want Point
	}{
		{-5, 3, Point{0, 1}},
		{0.25, 0.75, Point{0.25, 0.75}},
		{1.0001, -0.0001, Point{1, 0}},
		{math.NaN(), math.Inf(1), Point{0, 1}},
		{math.Inf(-1), 0.5, Point{0, 0.5}},
	}
	for _, tt := range tests {
		got := m.Place(tt.x, tt.y)
		assert.Equal(t, tt.want, got, "Place(%v, %v)", tt.x, tt.y)
		assert.Equal(t, got, m.Point())
	}
}

func TestResetIsExactCenter(t *testing.T) {
	m := New()
	m.Place(0.1, 0.9)
	assert.Equal(t, Point{0.5, 0.5}, m.Reset())
	assert.Equal(t, Center, m.Point())
}

func TestClickAt(t *testing.T) {
	m := New()
	s := Surface{Left: 100, Top: 50, Width: 200, Height: 100}

	assert.Equal(t, Point{0.25, 0.5}, m.ClickAt(s, 150, 100))
	assert.Equal(t, Point{0, 1}, m.ClickAt(s, 10, 400), "clicks outside clamp")

	before := m.Point()
	assert.Equal(t, before, m.ClickAt(Surface{}, 10, 10), "zero-size surface is ignored")
}

func TestDrag(t *testing.T) {
	m := New()
	s := Surface{Width: 100, Height: 100}

	_, moved := m.DragTo(s, 10, 10)
	assert.False(t, moved, "motion without a drag is ignored")
	assert.Equal(t, Center, m.Point())

	m.BeginDrag()
	assert.True(t, m.Dragging())
	p, moved := m.DragTo(s, 20, 80)
	assert.True(t, moved)
	assert.Equal(t, Point{0.2, 0.8}, p)

	// pointer leaves the surface: drag keeps tracking and clamps
	p, _ = m.DragTo(s, 500, -30)
	assert.Equal(t, Point{1, 0}, p)

	m.EndDrag()
	assert.False(t, m.Dragging())
	_, moved = m.DragTo(s, 50, 50)
	assert.False(t, moved)
	assert.Equal(t, Point{1, 0}, m.Point())
}

func TestNudge(t *testing.T) {
	s := Surface{Width: 200, Height: 100}

	tests := []struct {
		name string
		dir  Direction
		mod  Modifier
		want Point
	}{
		{"right one pixel", Right, ModNone, Point{0.505, 0.5}},
		{"left coarse", Left, ModCoarse, Point{0.45, 0.5}},
		{"down fine", Down, ModFine, Point{0.5, 0.505}},
		{"up default", Up, ModNone, Point{0.5, 0.49}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			assert.True(t, m.Nudge(s, tt.dir, tt.mod))
			assert.InDelta(t, tt.want.X, m.Point().X, 1e-9)
			assert.InDelta(t, tt.want.Y, m.Point().Y, 1e-9)
		})
	}
}

func TestNudgeClampsAtEdges(t *testing.T) {
	m := New()
	m.Place(0.999, 0)
	s := Surface{Width: 10, Height: 10}

	m.Nudge(s, Right, ModCoarse)
	m.Nudge(s, Up, ModCoarse)
	assert.Equal(t, Point{1, 0}, m.Point())

	assert.False(t, m.Nudge(Surface{}, Left, ModNone), "unusable surface is not handled")
	assert.False(t, m.Nudge(s, Direction(99), ModNone))
}

func TestParseDirection(t *testing.T) {
	for key, want := range map[string]Direction{"left": Left, "ArrowRight": Right, "up": Up, "ArrowDown": Down} {
		got, ok := ParseDirection(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
	_, ok := ParseDirection("enter")
	assert.False(t, ok)
}

func TestScaleAndAffordances(t *testing.T) {
	s := Surface{Width: 600, Height: 424, NativeWidth: 2000, NativeHeight: 1414}
	assert.InDelta(t, 0.3, s.Scale(), 1e-9)
	assert.Equal(t, 1.0, Surface{Width: 600}.Scale())

	a := Affordances(48, 2, s.Scale())
	assert.InDelta(t, 14.4, a.FontSize, 1e-9)
	assert.InDelta(t, 0.6, a.LetterSpacing, 1e-9)

	tiny := Affordances(2, 0, 0.01)
	assert.Equal(t, 1.0, tiny.FontSize, "font preview never drops below 1px")
	assert.Equal(t, 48.0, Affordances(48, 0, -1).FontSize)
}

func TestGuides(t *testing.T) {
	g := Guides(Center)
	assert.True(t, g.CenterX)
	assert.True(t, g.CenterY)
	assert.False(t, g.Left)

	g = Guides(Point{0.005, 0.995})
	assert.True(t, g.Left)
	assert.True(t, g.Bottom)
	assert.False(t, g.CenterX)
	assert.False(t, g.Top)
}
