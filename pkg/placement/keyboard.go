package placement

// Direction is an arrow key.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Modifier scales the nudge step.
type Modifier int

const (
	ModNone   Modifier = iota
	ModCoarse          // shift
	ModFine            // alt
)

// Step sizes in displayed pixels.
const (
	StepDefault = 1.0
	StepCoarse  = 10.0
	StepFine    = 0.5
)

// StepFor returns the pixel step for a modifier.
func StepFor(mod Modifier) float64 {
	switch mod {
	case ModCoarse:
		return StepCoarse
	case ModFine:
		return StepFine
	default:
		return StepDefault
	}
}

// ParseDirection maps key names ("left", "ArrowUp", ...) to a Direction.
func ParseDirection(key string) (Direction, bool) {
	switch key {
	case "left", "ArrowLeft":
		return Left, true
	case "right", "ArrowRight":
		return Right, true
	case "up", "ArrowUp":
		return Up, true
	case "down", "ArrowDown":
		return Down, true
	}
	return 0, false
}

// Nudge moves the marker by one step in dir, converting the pixel step to
// a fraction of the displayed surface. It reports whether the key was
// handled; callers suppress the key's default behaviour when it was.
func (m *Model) Nudge(s Surface, dir Direction, mod Modifier) bool {
	if !s.usable() {
		return false
	}
	step := StepFor(mod)
	dx, dy := step/s.Width, step/s.Height
	p := m.point
	switch dir {
	case Left:
		m.Place(p.X-dx, p.Y)
	case Right:
		m.Place(p.X+dx, p.Y)
	case Up:
		m.Place(p.X, p.Y-dy)
	case Down:
		m.Place(p.X, p.Y+dy)
	default:
		return false
	}
	return true
}
