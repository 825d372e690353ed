package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/pluqqy/certadmin/pkg/placement"
)

// A terminal cell is roughly twice as tall as it is wide.
const cellAspect = 2.0

// Landscape A4 proportions stand in until a template size is known.
const (
	fallbackNativeWidth  = 1414
	fallbackNativeHeight = 1000
)

// canvas maps the template surface onto a block of terminal cells. Each
// cell counts as one displayed pixel for placement purposes.
type canvas struct {
	left, top     int
	width, height int

	nativeW, nativeH int
	showGuides       bool
}

// SetArea sets the screen cells available to the surface.
func (c *canvas) SetArea(left, top, width, height int) {
	c.left, c.top = left, top
	c.width, c.height = width, height
}

// SetNative records the template's native pixel size; zero means unknown.
func (c *canvas) SetNative(w, h int) {
	c.nativeW, c.nativeH = w, h
}

func (c *canvas) native() (float64, float64) {
	if c.nativeW > 0 && c.nativeH > 0 {
		return float64(c.nativeW), float64(c.nativeH)
	}
	return fallbackNativeWidth, fallbackNativeHeight
}

// Surface fits the template's aspect ratio into the area.
func (c *canvas) Surface() placement.Surface {
	nw, nh := c.native()
	if c.width <= 0 || c.height <= 0 {
		return placement.Surface{NativeWidth: nw, NativeHeight: nh}
	}
	sw := float64(c.width)
	sh := sw * nh / nw / cellAspect
	if sh > float64(c.height) {
		sh = float64(c.height)
		sw = sh * cellAspect * nw / nh
	}
	return placement.Surface{
		Left:         float64(c.left),
		Top:          float64(c.top),
		Width:        math.Max(1, math.Floor(sw)),
		Height:       math.Max(1, math.Floor(sh)),
		NativeWidth:  nw,
		NativeHeight: nh,
	}
}

// markerCell is the surface-relative cell holding p.
func markerCell(surf placement.Surface, p placement.Point) (int, int) {
	w, h := int(surf.Width), int(surf.Height)
	col := int(p.X * surf.Width)
	row := int(p.Y * surf.Height)
	if col >= w {
		col = w - 1
	}
	if row >= h {
		row = h - 1
	}
	return col, row
}

func (c *canvas) inside(surf placement.Surface, x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= surf.Left && fx < surf.Left+surf.Width &&
		fy >= surf.Top && fy < surf.Top+surf.Height
}

// HandleMouse applies a pointer event to m and reports whether the
// placement changed. Pressing on the marker starts a drag; pressing
// elsewhere on the surface places it there.
func (c *canvas) HandleMouse(msg tea.MouseMsg, m *placement.Model) bool {
	surf := c.Surface()
	px, py := float64(msg.X)+0.5, float64(msg.Y)+0.5

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !c.inside(surf, msg.X, msg.Y) {
			return false
		}
		col, row := markerCell(surf, m.Point())
		if abs(msg.X-(int(surf.Left)+col)) <= 1 && msg.Y == int(surf.Top)+row {
			m.BeginDrag()
			return false
		}
		m.ClickAt(surf, px, py)
		return true
	case tea.MouseActionMotion:
		_, moved := m.DragTo(surf, px, py)
		return moved
	case tea.MouseActionRelease:
		m.EndDrag()
	}
	return false
}

// HandleKey nudges the marker with the arrow keys. Shift moves in coarse
// steps and alt in fine steps.
func (c *canvas) HandleKey(key string, m *placement.Model) bool {
	mod := placement.ModNone
	switch {
	case strings.HasPrefix(key, "shift+"):
		mod = placement.ModCoarse
		key = strings.TrimPrefix(key, "shift+")
	case strings.HasPrefix(key, "alt+"):
		mod = placement.ModFine
		key = strings.TrimPrefix(key, "alt+")
	}
	dir, ok := placement.ParseDirection(key)
	if !ok {
		return false
	}
	return m.Nudge(c.Surface(), dir, mod)
}

type cellKind int

const (
	cellBlank cellKind = iota
	cellGuide
	cellMarker
)

// View draws the surface with the marker, the sample name and any
// alignment guides the marker sits on.
func (c *canvas) View(p placement.Point, name, color string) string {
	surf := c.Surface()
	w, h := int(surf.Width), int(surf.Height)
	if c.width <= 0 || c.height <= 0 {
		return ""
	}

	runes := make([][]rune, h)
	kinds := make([][]cellKind, h)
	for y := range runes {
		runes[y] = []rune(strings.Repeat("·", w))
		kinds[y] = make([]cellKind, w)
	}

	if c.showGuides {
		g := placement.Guides(p)
		vertical := func(x int) {
			for y := 0; y < h; y++ {
				runes[y][x], kinds[y][x] = '┆', cellGuide
			}
		}
		horizontal := func(y int) {
			for x := 0; x < w; x++ {
				runes[y][x], kinds[y][x] = '┄', cellGuide
			}
		}
		if g.CenterX {
			vertical(w / 2)
		}
		if g.Left {
			vertical(0)
		}
		if g.Right {
			vertical(w - 1)
		}
		if g.CenterY {
			horizontal(h / 2)
		}
		if g.Top {
			horizontal(0)
		}
		if g.Bottom {
			horizontal(h - 1)
		}
	}

	col, row := markerCell(surf, p)
	runes[row][col], kinds[row][col] = '✛', cellMarker

	nameRow := row - 1
	if nameRow < 0 {
		nameRow = row + 1
	}

	lines := make([]string, h)
	for y := 0; y < h; y++ {
		if y == nameRow && name != "" && h > 1 {
			lines[y] = c.nameLine(runes[y], kinds[y], name, col, color)
			continue
		}
		lines[y] = renderCells(runes[y], kinds[y])
	}
	return strings.Join(lines, "\n")
}

// nameLine centres name over column col, keeping it inside the row.
func (c *canvas) nameLine(runes []rune, kinds []cellKind, name string, col int, color string) string {
	w := len(runes)
	name = truncate.StringWithTail(name, uint(w), "…")
	nw := lipgloss.Width(name)
	start := col - nw/2
	if start < 0 {
		start = 0
	}
	if start+nw > w {
		start = w - nw
	}
	style := lipgloss.NewStyle().Bold(true)
	if color != "" {
		style = style.Foreground(lipgloss.Color(color))
	}
	return renderCells(runes[:start], kinds[:start]) +
		style.Render(name) +
		renderCells(runes[start+nw:], kinds[start+nw:])
}

// renderCells styles runs of same-kind cells together.
func renderCells(runes []rune, kinds []cellKind) string {
	var b strings.Builder
	for i := 0; i < len(runes); {
		j := i
		for j < len(runes) && kinds[j] == kinds[i] {
			j++
		}
		seg := string(runes[i:j])
		switch kinds[i] {
		case cellGuide:
			b.WriteString(GuideStyle.Render(seg))
		case cellMarker:
			b.WriteString(MarkerStyle.Render(seg))
		default:
			b.WriteString(SurfaceStyle.Render(seg))
		}
		i = j
	}
	return b.String()
}

// Footer describes the placement and how the text scales on the surface.
func (c *canvas) Footer(p placement.Point, fontSize, spacing float64) string {
	a := placement.Affordances(fontSize, spacing, c.Surface().Scale())
	return fmt.Sprintf("x %.3f  y %.3f  ·  size %g → %.1f  spacing %g → %.2f",
		p.X, p.Y, fontSize, a.FontSize, spacing, a.LetterSpacing)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
