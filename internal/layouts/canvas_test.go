package layouts

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeHitFixture() []Section {
	t1 := makeTableSection("T1", 1, 200, 200, 4)
	t1.ID = uuid.New()
	for i := range t1.Seats {
		t1.Seats[i].ID = uuid.New()
	}

	c1 := Section{
		ID:      uuid.New(),
		Name:    "C1",
		Kind:    KindCounter,
		Floor:   1,
		OffsetX: 400,
		OffsetY: 80,
	}
	for i, pos := range SynthesizeSeatPositions(KindCounter, 3, OrientationHorizontal) {
		c1.Seats = append(c1.Seats, Seat{
			ID:       uuid.New(),
			Label:    defaultSeatLabel("C1", i),
			X:        pos.X,
			Y:        pos.Y,
			Position: i,
		})
	}

	return []Section{t1, c1}
}

func TestHitTest_SeatBeforeSection(t *testing.T) {
	sections := makeHitFixture()
	t1 := sections[0]

	// Top seat of T1 sits at (200, 200-ring)
	ring := TableRadius + SeatRadius + SeatMargin
	hit := HitTest(sections, 1, 200, 200-ring)
	require.Equal(t, HitSeat, hit.Kind)
	assert.Equal(t, t1.ID, hit.SectionID)
	assert.Equal(t, t1.Seats[0].ID, hit.SeatID)

	// Table centre hits the section glyph
	hit = HitTest(sections, 1, 200, 200)
	require.Equal(t, HitSection, hit.Kind)
	assert.Equal(t, t1.ID, hit.SectionID)
}

func TestHitTest_CounterRun(t *testing.T) {
	sections := makeHitFixture()
	c1 := sections[1]

	// Between two counter seats still lands on the section run
	hit := HitTest(sections, 1, 400+CounterSeatPitch/2, 80)
	require.Equal(t, HitSection, hit.Kind)
	assert.Equal(t, c1.ID, hit.SectionID)

	// Directly on the middle seat
	hit = HitTest(sections, 1, 400+CounterSeatPitch, 80)
	require.Equal(t, HitSeat, hit.Kind)
	assert.Equal(t, c1.Seats[1].ID, hit.SeatID)
}

func TestHitTest_MissAndWrongFloor(t *testing.T) {
	sections := makeHitFixture()

	hit := HitTest(sections, 1, 700, 700)
	assert.Equal(t, HitNone, hit.Kind)

	// Same coordinates on another floor hit nothing
	hit = HitTest(sections, 2, 200, 200)
	assert.Equal(t, HitNone, hit.Kind)
}

func TestApplyDrag_MovesOffsetOnly(t *testing.T) {
	sec := makeTableSection("T1", 1, 100, 100, 4)
	localBefore := make([]Position, len(sec.Seats))
	for i, seat := range sec.Seats {
		localBefore[i] = Position{X: seat.X, Y: seat.Y}
	}

	ApplyDrag(&sec, 30, -20)

	assert.Equal(t, 130.0, sec.OffsetX)
	assert.Equal(t, 80.0, sec.OffsetY)
	for i, seat := range sec.Seats {
		assert.Equal(t, localBefore[i].X, seat.X, "seat %d local x changed", i)
		assert.Equal(t, localBefore[i].Y, seat.Y, "seat %d local y changed", i)
	}
}
