package layouts

import (
	"math"
)

// Canvas geometry constants, in canvas units (CSS pixels at zoom 1)
const (
	TableRadius = 36.0 // round table glyph
	SeatRadius  = 14.0 // seat glyph
	SeatMargin  = 8.0  // gap between table edge and seat centre ring
	CounterSeatPitch = 40.0 // centre-to-centre spacing along a counter

	AutoFitMargin   = 48.0
	MinCanvasWidth  = 640.0
	MinCanvasHeight = 480.0
)

// Position is a seat-local coordinate relative to the section offset
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CanvasSize is a floor canvas extent
type CanvasSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Fixed canvas presets, plus "auto" which triggers AutoFit
var CanvasPresets = map[string]CanvasSize{
	"small":  {Width: 800, Height: 600},
	"medium": {Width: 1200, Height: 900},
	"large":  {Width: 1600, Height: 1200},
}

// SynthesizeSeatPositions computes local seat positions for a section.
// Tables place seats evenly on a ring starting at the top and proceeding
// clockwise; counters place them at fixed pitch along one axis. A seat
// count of zero yields an empty slice, not an error.
func SynthesizeSeatPositions(kind SectionKind, seatCount int, orientation Orientation) []Position {
	if seatCount <= 0 {
		return []Position{}
	}

	positions := make([]Position, 0, seatCount)

	switch kind {
	case KindCounter:
		for i := 0; i < seatCount; i++ {
			if orientation == OrientationVertical {
				positions = append(positions, Position{X: 0, Y: float64(i) * CounterSeatPitch})
			} else {
				positions = append(positions, Position{X: float64(i) * CounterSeatPitch, Y: 0})
			}
		}
	default:
		// Ring radius keeps every seat clear of the table glyph
		// regardless of count.
		radius := TableRadius + SeatRadius + SeatMargin
		step := 2 * math.Pi / float64(seatCount)
		for i := 0; i < seatCount; i++ {
			// Start at the top (-90°); increasing angle is clockwise in
			// screen coordinates (y grows downwards).
			theta := -math.Pi/2 + float64(i)*step
			positions = append(positions, Position{
				X: radius * math.Cos(theta),
				Y: radius * math.Sin(theta),
			})
		}
	}

	return positions
}

// Bounds is an axis-aligned canvas rectangle
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Contains reports whether the point lies inside the bounds
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// AutoFitBounds computes the bounding box over every seat on the given
// floor: absolute position = section offset + seat local position,
// expanded by the seat glyph, plus the table glyph for table sections.
// A fixed margin is added and the result clamped to the minimum canvas
// size. Sections with no seats still contribute their glyph.
func AutoFitBounds(sections []Section, floor int) Bounds {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	grow := func(x, y, r float64) {
		minX = math.Min(minX, x-r)
		minY = math.Min(minY, y-r)
		maxX = math.Max(maxX, x+r)
		maxY = math.Max(maxY, y+r)
	}

	for si := range sections {
		sec := &sections[si]
		if sec.Floor != floor {
			continue
		}
		if sec.Kind == KindTable {
			grow(sec.OffsetX, sec.OffsetY, TableRadius)
		}
		for pi := range sec.Seats {
			x, y := sec.Seats[pi].AbsolutePosition(sec)
			grow(x, y, SeatRadius)
		}
	}

	if math.IsInf(minX, 1) {
		// Empty floor: just the minimum canvas anchored at origin
		return Bounds{MinX: 0, MinY: 0, MaxX: MinCanvasWidth, MaxY: MinCanvasHeight}
	}

	bounds := Bounds{
		MinX: minX - AutoFitMargin,
		MinY: minY - AutoFitMargin,
		MaxX: maxX + AutoFitMargin,
		MaxY: maxY + AutoFitMargin,
	}

	// Clamp to minimum size, expanding symmetrically around the content
	if bounds.Width() < MinCanvasWidth {
		pad := (MinCanvasWidth - bounds.Width()) / 2
		bounds.MinX -= pad
		bounds.MaxX += pad
	}
	if bounds.Height() < MinCanvasHeight {
		pad := (MinCanvasHeight - bounds.Height()) / 2
		bounds.MinY -= pad
		bounds.MaxY += pad
	}

	return bounds
}

// CanvasSizeFor resolves a sizing mode to a concrete canvas size.
// "auto" derives from the floor's auto-fit bounds; anything else
// falls back through the presets to "medium".
func CanvasSizeFor(mode string, sections []Section, floor int) CanvasSize {
	if mode == "auto" {
		b := AutoFitBounds(sections, floor)
		return CanvasSize{Width: b.Width(), Height: b.Height()}
	}
	if preset, ok := CanvasPresets[mode]; ok {
		return preset
	}
	return CanvasPresets["medium"]
}
