package reservations

import (
	"testing"
	"time"

	"seatly/internal/allocations"
	"seatly/internal/layouts"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeMatcherLayout() *layouts.Layout {
	t1 := layouts.Section{ID: uuid.New(), Name: "T1", Kind: layouts.KindTable, Floor: 1}
	for _, label := range []string{"T1-A", "T1-B"} {
		t1.Seats = append(t1.Seats, layouts.Seat{ID: uuid.New(), Label: label})
	}
	t2 := layouts.Section{ID: uuid.New(), Name: "T2", Kind: layouts.KindTable, Floor: 1}
	for _, label := range []string{"T2-A", "T2-B"} {
		t2.Seats = append(t2.Seats, layouts.Seat{ID: uuid.New(), Label: label})
	}
	return &layouts.Layout{ID: uuid.New(), Name: "Main", Active: true, Sections: []layouts.Section{t1, t2}}
}

func takeSeat(layout *layouts.Layout, label string, released bool) allocations.SeatAllocation {
	var seat layouts.Seat
	for _, sec := range layout.Sections {
		for _, s := range sec.Seats {
			if s.Label == label {
				seat = s
			}
		}
	}
	alloc := allocations.SeatAllocation{
		ID:           uuid.New(),
		SeatID:       seat.ID,
		SeatLabel:    seat.Label,
		OccupantType: allocations.OccupantWaitlist,
		OccupantID:   uuid.New(),
		OccupantName: "Suzuki Ren",
		PartySize:    1,
		Status:       allocations.StatusOccupied,
		StartTime:    time.Now(),
		EndTime:      time.Now().Add(time.Hour),
	}
	if released {
		now := time.Now()
		alloc.ReleasedAt = &now
	}
	return alloc
}

func TestEvaluatePreferences_AllFree(t *testing.T) {
	layout := makeMatcherLayout()
	snap := allocations.BuildSnapshot("2026-09-01", layout, nil)

	prefs := SeatPreferences{{"T1-A", "T1-B"}, {"T2-A", "T2-B"}}
	options := EvaluatePreferences(prefs, snap)

	require.Len(t, options, 2)
	for _, opt := range options {
		assert.True(t, opt.Assignable, "rank %d", opt.Rank)
		assert.Empty(t, opt.TakenLabels)
		assert.Empty(t, opt.Reason)
	}
}

func TestEvaluatePreferences_PartiallyTakenNotAssignable(t *testing.T) {
	layout := makeMatcherLayout()
	snap := allocations.BuildSnapshot("2026-09-01", layout, []allocations.SeatAllocation{
		takeSeat(layout, "T1-A", false),
	})

	prefs := SeatPreferences{{"T1-A", "T1-B"}, {}, {"T2-A"}}
	options := EvaluatePreferences(prefs, snap)
	require.Len(t, options, 3)

	// Rank 0: one seat taken, the whole option is off the table
	assert.False(t, options[0].Assignable)
	assert.Equal(t, []string{"T1-A"}, options[0].TakenLabels)
	assert.Equal(t, "some seats taken", options[0].Reason)

	// Rank 1: empty list is never assignable
	assert.False(t, options[1].Assignable)
	assert.Equal(t, "no seats listed", options[1].Reason)

	// Rank 2: untouched seats stay assignable, but there is no
	// automatic fallback; the caller picks explicitly.
	assert.True(t, options[2].Assignable)
}

func TestEvaluatePreferences_FreeAgainAfterRelease(t *testing.T) {
	layout := makeMatcherLayout()
	prefs := SeatPreferences{{"T1-A", "T1-B"}}

	taken := allocations.BuildSnapshot("2026-09-01", layout, []allocations.SeatAllocation{
		takeSeat(layout, "T1-A", false),
	})
	options := EvaluatePreferences(prefs, taken)
	require.False(t, options[0].Assignable)

	// The same preference flips to assignable once the seat's
	// allocation is released and the snapshot rebuilt.
	released := allocations.BuildSnapshot("2026-09-01", layout, []allocations.SeatAllocation{
		takeSeat(layout, "T1-A", true),
	})
	options = EvaluatePreferences(prefs, released)
	assert.True(t, options[0].Assignable)
}

func TestEvaluatePreferences_UnknownLabelCountsAsTaken(t *testing.T) {
	layout := makeMatcherLayout()
	snap := allocations.BuildSnapshot("2026-09-01", layout, nil)

	options := EvaluatePreferences(SeatPreferences{{"T1-A", "T9-Z"}}, snap)
	require.Len(t, options, 1)
	assert.False(t, options[0].Assignable)
	assert.Equal(t, []string{"T9-Z"}, options[0].TakenLabels)
}

func TestValidatePreferences(t *testing.T) {
	assert.NoError(t, validatePreferences(nil, 2))
	assert.NoError(t, validatePreferences(SeatPreferences{{"T1-A", "T1-B"}}, 2))

	// More ranks than allowed
	err := validatePreferences(SeatPreferences{{"a"}, {"b"}, {"c"}, {"d"}}, 4)
	assert.Error(t, err)

	// A rank longer than the party size
	err = validatePreferences(SeatPreferences{{"T1-A", "T1-B", "T2-A"}}, 2)
	assert.Error(t, err)

	// Empty label
	err = validatePreferences(SeatPreferences{{""}}, 2)
	assert.Error(t, err)
}
