package layouts

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeSeatPositions_ZeroSeats(t *testing.T) {
	positions := SynthesizeSeatPositions(KindTable, 0, "")
	require.NotNil(t, positions)
	assert.Empty(t, positions)

	positions = SynthesizeSeatPositions(KindCounter, 0, OrientationHorizontal)
	require.NotNil(t, positions)
	assert.Empty(t, positions)
}

func TestSynthesizeSeatPositions_TableRing(t *testing.T) {
	radius := TableRadius + SeatRadius + SeatMargin

	for n := 1; n <= 12; n++ {
		positions := SynthesizeSeatPositions(KindTable, n, "")
		require.Len(t, positions, n, "seat count %d", n)

		// Every seat sits exactly on the ring
		for i, p := range positions {
			assert.InDelta(t, radius, math.Hypot(p.X, p.Y), 1e-9,
				"seat %d of %d should be equidistant from the table centre", i, n)
		}

		// Angular spacing is exactly 360/n degrees
		step := 2 * math.Pi / float64(n)
		for i, p := range positions {
			want := -math.Pi/2 + float64(i)*step
			got := math.Atan2(p.Y, p.X)
			diff := math.Abs(math.Atan2(math.Sin(got-want), math.Cos(got-want)))
			assert.InDelta(t, 0, diff, 1e-9, "seat %d of %d angle", i, n)
		}

		// First seat is at the top of the glyph (y grows downwards)
		assert.InDelta(t, 0, positions[0].X, 1e-9)
		assert.InDelta(t, -radius, positions[0].Y, 1e-9)
	}
}

func TestSynthesizeSeatPositions_NoGlyphOverlap(t *testing.T) {
	// Adjacent seats must not overlap for any realistic count
	for n := 1; n <= 12; n++ {
		positions := SynthesizeSeatPositions(KindTable, n, "")
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				d := math.Hypot(positions[i].X-positions[j].X, positions[i].Y-positions[j].Y)
				assert.GreaterOrEqual(t, d, 2*SeatRadius-1e-9,
					"seats %d and %d overlap at count %d", i, j, n)
			}
		}
	}
}

func TestSynthesizeSeatPositions_FourSeatTable(t *testing.T) {
	// A 4-seat table reads top, right, bottom, left when walking the
	// seats clockwise on screen.
	radius := TableRadius + SeatRadius + SeatMargin
	positions := SynthesizeSeatPositions(KindTable, 4, "")
	require.Len(t, positions, 4)

	expected := []Position{
		{X: 0, Y: -radius},
		{X: radius, Y: 0},
		{X: 0, Y: radius},
		{X: -radius, Y: 0},
	}
	for i, want := range expected {
		assert.InDelta(t, want.X, positions[i].X, 1e-9, "seat %d x", i)
		assert.InDelta(t, want.Y, positions[i].Y, 1e-9, "seat %d y", i)
	}
}

func TestSynthesizeSeatPositions_Counter(t *testing.T) {
	horizontal := SynthesizeSeatPositions(KindCounter, 4, OrientationHorizontal)
	require.Len(t, horizontal, 4)
	for i, p := range horizontal {
		assert.InDelta(t, float64(i)*CounterSeatPitch, p.X, 1e-9)
		assert.InDelta(t, 0, p.Y, 1e-9)
	}

	vertical := SynthesizeSeatPositions(KindCounter, 3, OrientationVertical)
	require.Len(t, vertical, 3)
	for i, p := range vertical {
		assert.InDelta(t, 0, p.X, 1e-9)
		assert.InDelta(t, float64(i)*CounterSeatPitch, p.Y, 1e-9)
	}
}

func makeTableSection(name string, floor int, offsetX, offsetY float64, seatCount int) Section {
	sec := Section{
		Name:    name,
		Kind:    KindTable,
		Floor:   floor,
		OffsetX: offsetX,
		OffsetY: offsetY,
	}
	for i, pos := range SynthesizeSeatPositions(KindTable, seatCount, "") {
		sec.Seats = append(sec.Seats, Seat{
			Label:    defaultSeatLabel(name, i),
			X:        pos.X,
			Y:        pos.Y,
			Position: i,
		})
	}
	return sec
}

func TestAutoFitBounds_ContainsEverySeat(t *testing.T) {
	sections := []Section{
		makeTableSection("T1", 1, 140, 160, 4),
		makeTableSection("T2", 1, 420, 300, 6),
		makeTableSection("T3", 2, 100, 100, 2), // other floor, ignored
	}

	bounds := AutoFitBounds(sections, 1)

	for _, sec := range sections {
		if sec.Floor != 1 {
			continue
		}
		for _, seat := range sec.Seats {
			x, y := seat.AbsolutePosition(&sec)
			assert.True(t, bounds.Contains(x, y), "seat %s outside auto-fit bounds", seat.Label)
			// The full glyph fits, not just the centre
			assert.True(t, bounds.Contains(x-SeatRadius, y), "seat %s glyph clipped left", seat.Label)
			assert.True(t, bounds.Contains(x+SeatRadius, y), "seat %s glyph clipped right", seat.Label)
		}
		// Table glyph included too
		assert.True(t, bounds.Contains(sec.OffsetX-TableRadius, sec.OffsetY))
		assert.True(t, bounds.Contains(sec.OffsetX+TableRadius, sec.OffsetY))
	}
}

func TestAutoFitBounds_MinimumClamp(t *testing.T) {
	// A single tiny table still yields at least the minimum canvas
	sections := []Section{makeTableSection("T1", 1, 100, 100, 1)}

	bounds := AutoFitBounds(sections, 1)
	assert.GreaterOrEqual(t, bounds.Width(), MinCanvasWidth)
	assert.GreaterOrEqual(t, bounds.Height(), MinCanvasHeight)

	// Clamp expands symmetrically around the content
	centerX := (bounds.MinX + bounds.MaxX) / 2
	assert.InDelta(t, 100, centerX, 1e-9)
}

func TestAutoFitBounds_EmptyFloor(t *testing.T) {
	bounds := AutoFitBounds(nil, 1)
	assert.Equal(t, Bounds{MinX: 0, MinY: 0, MaxX: MinCanvasWidth, MaxY: MinCanvasHeight}, bounds)
}

func TestCanvasSizeFor(t *testing.T) {
	sections := []Section{makeTableSection("T1", 1, 0, 0, 4)}

	assert.Equal(t, CanvasPresets["small"], CanvasSizeFor("small", sections, 1))
	assert.Equal(t, CanvasPresets["large"], CanvasSizeFor("large", sections, 1))

	// Unknown mode falls back to medium
	assert.Equal(t, CanvasPresets["medium"], CanvasSizeFor("huge", sections, 1))

	auto := CanvasSizeFor("auto", sections, 1)
	bounds := AutoFitBounds(sections, 1)
	assert.Equal(t, bounds.Width(), auto.Width)
	assert.Equal(t, bounds.Height(), auto.Height)
}
