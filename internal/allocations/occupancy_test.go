package allocations

import (
	"testing"
	"time"

	"seatly/internal/layouts"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSnapshotLayout() *layouts.Layout {
	sec := layouts.Section{
		ID:    uuid.New(),
		Name:  "T1",
		Kind:  layouts.KindTable,
		Floor: 1,
	}
	for _, label := range []string{"T1-A", "T1-B", "T1-C", "T1-D"} {
		sec.Seats = append(sec.Seats, layouts.Seat{ID: uuid.New(), Label: label})
	}
	return &layouts.Layout{ID: uuid.New(), Name: "Main", Active: true, Sections: []layouts.Section{sec}}
}

func makeAllocation(seat layouts.Seat, status Status, released bool) SeatAllocation {
	alloc := SeatAllocation{
		ID:           uuid.New(),
		SeatID:       seat.ID,
		SeatLabel:    seat.Label,
		OccupantType: OccupantReservation,
		OccupantID:   uuid.New(),
		OccupantName: "Sato Yuki",
		PartySize:    2,
		Status:       status,
		StartTime:    time.Now(),
		EndTime:      time.Now().Add(time.Hour),
	}
	if released {
		now := time.Now()
		alloc.ReleasedAt = &now
	}
	return alloc
}

func TestBuildSnapshot_AllFreeWithoutAllocations(t *testing.T) {
	layout := makeSnapshotLayout()

	snap := BuildSnapshot("2026-09-01", layout, nil)

	require.Len(t, snap.States, 4)
	for _, seat := range layout.Sections[0].Seats {
		assert.True(t, snap.IsFree(seat.ID))
		assert.True(t, snap.IsLabelFree(seat.Label))
	}
}

func TestBuildSnapshot_StatusVerbatim(t *testing.T) {
	layout := makeSnapshotLayout()
	seats := layout.Sections[0].Seats

	allocs := []SeatAllocation{
		makeAllocation(seats[0], StatusReserved, false),
		makeAllocation(seats[1], StatusOccupied, false),
	}

	snap := BuildSnapshot("2026-09-01", layout, allocs)

	stateA, ok := snap.StateFor(seats[0].ID)
	require.True(t, ok)
	assert.Equal(t, SeatReserved, stateA.Status)
	assert.Equal(t, "Sato Yuki", stateA.OccupantName)
	assert.Equal(t, 2, stateA.PartySize)

	stateB, ok := snap.StateFor(seats[1].ID)
	require.True(t, ok)
	assert.Equal(t, SeatOccupied, stateB.Status)

	assert.True(t, snap.IsFree(seats[2].ID))
	assert.True(t, snap.IsFree(seats[3].ID))
}

func TestBuildSnapshot_ReleasedAllocationFreesSeat(t *testing.T) {
	layout := makeSnapshotLayout()
	seat := layout.Sections[0].Seats[0]

	// Before release: taken
	snap := BuildSnapshot("2026-09-01", layout, []SeatAllocation{makeAllocation(seat, StatusOccupied, false)})
	assert.False(t, snap.IsLabelFree(seat.Label))

	// After release: free again
	snap = BuildSnapshot("2026-09-01", layout, []SeatAllocation{makeAllocation(seat, StatusOccupied, true)})
	assert.True(t, snap.IsLabelFree(seat.Label))
}

func TestBuildSnapshot_FirstActiveAllocationWins(t *testing.T) {
	layout := makeSnapshotLayout()
	seat := layout.Sections[0].Seats[0]

	first := makeAllocation(seat, StatusReserved, false)
	second := makeAllocation(seat, StatusOccupied, false)

	snap := BuildSnapshot("2026-09-01", layout, []SeatAllocation{first, second})

	state, ok := snap.StateFor(seat.ID)
	require.True(t, ok)
	assert.Equal(t, SeatReserved, state.Status)
	assert.Equal(t, first.OccupantID.String(), state.OccupantID)
}

func TestBuildSnapshot_UnknownSeatSkipped(t *testing.T) {
	layout := makeSnapshotLayout()
	ghost := layouts.Seat{ID: uuid.New(), Label: "T9-A"}

	snap := BuildSnapshot("2026-09-01", layout, []SeatAllocation{makeAllocation(ghost, StatusOccupied, false)})

	assert.Len(t, snap.States, 4)
	assert.False(t, snap.IsFree(ghost.ID))
}

func TestSnapshot_UnknownLabelNeverFree(t *testing.T) {
	layout := makeSnapshotLayout()
	snap := BuildSnapshot("2026-09-01", layout, nil)

	assert.False(t, snap.IsLabelFree("T9-A"))
	_, ok := snap.SeatIDForLabel("T9-A")
	assert.False(t, ok)
}
