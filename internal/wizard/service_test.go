package wizard

import (
	"context"
	"testing"
	"time"

	"seatly/internal/allocations"
	"seatly/internal/layouts"
	"seatly/internal/shared/config"
	"seatly/internal/shared/utils/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAllocator records every remote call so tests can assert that
// local rejections never reach the allocation layer.
type fakeAllocator struct {
	snapshot *allocations.Snapshot

	seatNowCalls []allocations.CommitRequest
	reserveCalls []allocations.CommitRequest
	refreshCalls []string

	commitErr error
}

func (f *fakeAllocator) Occupancy(_ context.Context, _ string) (*allocations.Snapshot, error) {
	return f.snapshot, nil
}

func (f *fakeAllocator) RefreshDay(_ context.Context, date string) (*allocations.Snapshot, error) {
	f.refreshCalls = append(f.refreshCalls, date)
	return f.snapshot, nil
}

func (f *fakeAllocator) SeatNow(_ context.Context, req allocations.CommitRequest) ([]allocations.SeatAllocation, error) {
	f.seatNowCalls = append(f.seatNowCalls, req)
	if f.commitErr != nil {
		return nil, f.commitErr
	}
	return f.makeAllocations(req, allocations.StatusOccupied), nil
}

func (f *fakeAllocator) Reserve(_ context.Context, req allocations.CommitRequest) ([]allocations.SeatAllocation, error) {
	f.reserveCalls = append(f.reserveCalls, req)
	if f.commitErr != nil {
		return nil, f.commitErr
	}
	return f.makeAllocations(req, allocations.StatusReserved), nil
}

func (f *fakeAllocator) makeAllocations(req allocations.CommitRequest, status allocations.Status) []allocations.SeatAllocation {
	allocs := make([]allocations.SeatAllocation, 0, len(req.SeatIDs))
	for _, seatID := range req.SeatIDs {
		allocs = append(allocs, allocations.SeatAllocation{
			ID:           uuid.New(),
			SeatID:       seatID,
			OccupantType: req.OccupantType,
			OccupantID:   req.OccupantID,
			Status:       status,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
		})
	}
	return allocs
}

type fakeCandidates struct {
	reservations map[uuid.UUID]*Candidate
	entries      map[uuid.UUID]*Candidate
}

func (f *fakeCandidates) Reservation(_ context.Context, id uuid.UUID) (*Candidate, error) {
	if c, ok := f.reservations[id]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("reservation not found")
}

func (f *fakeCandidates) WaitlistEntry(_ context.Context, id uuid.UUID) (*Candidate, error) {
	if c, ok := f.entries[id]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("waitlist entry not found")
}

type wizardFixture struct {
	service   Service
	store     Store
	allocator *fakeAllocator
	seats     []layouts.Seat

	reservationID uuid.UUID
	waitlistID    uuid.UUID
}

func newWizardFixture(t *testing.T, partySize int) *wizardFixture {
	t.Helper()

	sec := layouts.Section{ID: uuid.New(), Name: "T1", Kind: layouts.KindTable, Floor: 1}
	for _, label := range []string{"T1-A", "T1-B", "T1-C", "T1-D"} {
		sec.Seats = append(sec.Seats, layouts.Seat{ID: uuid.New(), Label: label})
	}
	layout := &layouts.Layout{ID: uuid.New(), Name: "Main", Active: true, Sections: []layouts.Section{sec}}

	today := time.Now().UTC().Format("2006-01-02")
	allocator := &fakeAllocator{snapshot: allocations.BuildSnapshot(today, layout, nil)}

	reservationID := uuid.New()
	waitlistID := uuid.New()
	start := time.Now().Add(2 * time.Hour)
	candidates := &fakeCandidates{
		reservations: map[uuid.UUID]*Candidate{
			reservationID: {Name: "Sato Yuki", PartySize: partySize, Status: "booked", StartTime: &start},
		},
		entries: map[uuid.UUID]*Candidate{
			waitlistID: {Name: "Suzuki Ren", PartySize: partySize, Status: "waiting"},
		},
	}

	cfg := &config.Config{
		Seating: config.SeatingConfig{
			Timezone:            "UTC",
			DefaultStartHour:    18,
			DefaultDuration:     90 * time.Minute,
			ReservationDuration: 60 * time.Minute,
			CommitTimeout:       10 * time.Second,
		},
	}

	store := NewMemoryStore()
	return &wizardFixture{
		service:       NewService(store, allocator, candidates, cfg),
		store:         store,
		allocator:     allocator,
		seats:         sec.Seats,
		reservationID: reservationID,
		waitlistID:    waitlistID,
	}
}

func (f *wizardFixture) startWaitlist(t *testing.T) *Session {
	t.Helper()
	session, err := f.service.Start(context.Background(), StartRequest{
		OccupantType: "waitlist",
		OccupantID:   f.waitlistID.String(),
	})
	require.NoError(t, err)
	return session
}

func (f *wizardFixture) toggle(t *testing.T, sessionID string, seat layouts.Seat) *Session {
	t.Helper()
	session, err := f.service.ToggleSeat(context.Background(), sessionID, seat.ID.String())
	require.NoError(t, err)
	return session
}

func TestStart_OnlySeatableCandidates(t *testing.T) {
	f := newWizardFixture(t, 2)

	session := f.startWaitlist(t)
	assert.Equal(t, StateOccupantSelected, session.State)
	assert.Equal(t, "Suzuki Ren", session.GuestName)
	assert.Equal(t, 2, session.PartySize)

	// A seated party cannot start another session
	seated := uuid.New()
	f.allocator.snapshot.Date = session.Date
	fc := &fakeCandidates{entries: map[uuid.UUID]*Candidate{seated: {Name: "X", PartySize: 2, Status: "seated"}}}
	svc := NewService(f.store, f.allocator, fc, &config.Config{Seating: config.SeatingConfig{Timezone: "UTC", CommitTimeout: time.Second}})
	_, err := svc.Start(context.Background(), StartRequest{OccupantType: "waitlist", OccupantID: seated.String()})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestToggleSeat_SelectAndDeselect(t *testing.T) {
	f := newWizardFixture(t, 2)
	session := f.startWaitlist(t)

	session = f.toggle(t, session.ID.String(), f.seats[0])
	assert.Equal(t, StateSeatsPicking, session.State)
	require.Len(t, session.Selected, 1)
	assert.Equal(t, "T1-A", session.Selected[0].Label)

	// Toggling again deselects and falls back to occupant-selected
	session = f.toggle(t, session.ID.String(), f.seats[0])
	assert.Empty(t, session.Selected)
	assert.Equal(t, StateOccupantSelected, session.State)
}

func TestToggleSeat_RejectsTakenSeat(t *testing.T) {
	f := newWizardFixture(t, 2)
	session := f.startWaitlist(t)

	// Mark T1-A occupied in the snapshot
	state := f.allocator.snapshot.States[f.seats[0].ID.String()]
	state.Status = allocations.SeatOccupied
	f.allocator.snapshot.States[f.seats[0].ID.String()] = state

	_, err := f.service.ToggleSeat(context.Background(), session.ID.String(), f.seats[0].ID.String())
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestToggleSeat_NeverExceedsPartySize(t *testing.T) {
	// Party of 3: a third pick is fine, a fourth is rejected outright
	f := newWizardFixture(t, 3)
	session := f.startWaitlist(t)

	f.toggle(t, session.ID.String(), f.seats[0])
	f.toggle(t, session.ID.String(), f.seats[1])
	f.toggle(t, session.ID.String(), f.seats[2])

	_, err := f.service.ToggleSeat(context.Background(), session.ID.String(), f.seats[3].ID.String())
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Contains(t, err.Error(), "Need exactly 3 seat(s)")

	// Selection untouched, never clamped
	current, err := f.service.Get(context.Background(), session.ID.String())
	require.NoError(t, err)
	assert.Len(t, current.Selected, 3)
}

func TestCommit_RequiresExactSeatCount(t *testing.T) {
	// Party of 3 with only 2 seats picked: rejected locally, the
	// allocator is never called.
	f := newWizardFixture(t, 3)
	session := f.startWaitlist(t)

	f.toggle(t, session.ID.String(), f.seats[0])
	f.toggle(t, session.ID.String(), f.seats[1])

	_, err := f.service.Commit(context.Background(), session.ID.String(), ModeSeatNow)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Contains(t, err.Error(), "Need exactly 3 seat(s), 2 selected")

	assert.Empty(t, f.allocator.seatNowCalls)
	assert.Empty(t, f.allocator.reserveCalls)
}

func TestCommit_SeatNowSuccess(t *testing.T) {
	f := newWizardFixture(t, 2)
	session := f.startWaitlist(t)

	f.toggle(t, session.ID.String(), f.seats[0])
	f.toggle(t, session.ID.String(), f.seats[1])

	result, err := f.service.Commit(context.Background(), session.ID.String(), ModeSeatNow)
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, result.Session.State)
	assert.Len(t, result.Allocations, 2)

	require.Len(t, f.allocator.seatNowCalls, 1)
	call := f.allocator.seatNowCalls[0]
	assert.Equal(t, allocations.OccupantWaitlist, call.OccupantType)
	assert.ElementsMatch(t, []uuid.UUID{f.seats[0].ID, f.seats[1].ID}, call.SeatIDs)
	assert.True(t, call.EndTime.After(call.StartTime))
}

func TestCommit_ReserveOnlyForReservations(t *testing.T) {
	f := newWizardFixture(t, 2)
	session := f.startWaitlist(t)

	f.toggle(t, session.ID.String(), f.seats[0])
	f.toggle(t, session.ID.String(), f.seats[1])

	_, err := f.service.Commit(context.Background(), session.ID.String(), ModeReserve)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Empty(t, f.allocator.reserveCalls)
}

func TestCommit_ReserveUsesReservationStart(t *testing.T) {
	f := newWizardFixture(t, 2)
	session, err := f.service.Start(context.Background(), StartRequest{
		OccupantType: "reservation",
		OccupantID:   f.reservationID.String(),
	})
	require.NoError(t, err)

	f.toggle(t, session.ID.String(), f.seats[0])
	f.toggle(t, session.ID.String(), f.seats[1])

	result, err := f.service.Commit(context.Background(), session.ID.String(), ModeReserve)
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, result.Session.State)

	require.Len(t, f.allocator.reserveCalls, 1)
	call := f.allocator.reserveCalls[0]
	require.NotNil(t, session.TargetStart)
	assert.True(t, call.StartTime.Equal(*session.TargetStart))
	assert.Equal(t, 60*time.Minute, call.EndTime.Sub(call.StartTime))
}

func TestCommit_ConflictResetsSessionAndRefreshesOnce(t *testing.T) {
	f := newWizardFixture(t, 2)
	session := f.startWaitlist(t)

	f.toggle(t, session.ID.String(), f.seats[0])
	f.toggle(t, session.ID.String(), f.seats[1])

	f.allocator.commitErr = apperr.Conflict("seats no longer available", []string{"T1-A"})

	_, err := f.service.Commit(context.Background(), session.ID.String(), ModeSeatNow)
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	// Exactly one refetch, never a retry
	assert.Len(t, f.allocator.refreshCalls, 1)
	assert.Len(t, f.allocator.seatNowCalls, 1)

	// Session is back to idle with nothing selected
	reset, err := f.service.Get(context.Background(), session.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StateIdle, reset.State)
	assert.Empty(t, reset.Selected)
	assert.Empty(t, reset.OccupantID)
}

func TestCommit_TransientPreservesSession(t *testing.T) {
	f := newWizardFixture(t, 2)
	session := f.startWaitlist(t)

	f.toggle(t, session.ID.String(), f.seats[0])
	f.toggle(t, session.ID.String(), f.seats[1])

	f.allocator.commitErr = apperr.Transient("network down", nil)

	_, err := f.service.Commit(context.Background(), session.ID.String(), ModeSeatNow)
	require.Error(t, err)
	assert.True(t, apperr.IsTransient(err))
	assert.Empty(t, f.allocator.refreshCalls)

	// Selection survives for a manual retry
	kept, err := f.service.Get(context.Background(), session.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StateSeatsPicking, kept.State)
	assert.Len(t, kept.Selected, 2)

	// The fence was released; a retry is possible
	f.allocator.commitErr = nil
	result, err := f.service.Commit(context.Background(), session.ID.String(), ModeSeatNow)
	require.NoError(t, err)
	assert.Equal(t, StateCommitted, result.Session.State)
}

func TestCommit_SingleInFlightCommit(t *testing.T) {
	f := newWizardFixture(t, 2)
	session := f.startWaitlist(t)

	f.toggle(t, session.ID.String(), f.seats[0])
	f.toggle(t, session.ID.String(), f.seats[1])

	// Simulate an in-flight commit holding the fence
	held, err := f.store.AcquireCommit(context.Background(), session.ID.String(), "other-token", time.Minute)
	require.NoError(t, err)
	require.True(t, held)

	_, err = f.service.Commit(context.Background(), session.ID.String(), ModeSeatNow)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Contains(t, err.Error(), "already in progress")
	assert.Empty(t, f.allocator.seatNowCalls)
}

func TestCancel_NoSideEffects(t *testing.T) {
	f := newWizardFixture(t, 2)
	session := f.startWaitlist(t)
	f.toggle(t, session.ID.String(), f.seats[0])

	require.NoError(t, f.service.Cancel(context.Background(), session.ID.String()))

	assert.Empty(t, f.allocator.seatNowCalls)
	assert.Empty(t, f.allocator.reserveCalls)
	assert.Empty(t, f.allocator.refreshCalls)

	_, err := f.service.Get(context.Background(), session.ID.String())
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}
