package routes

import (
	"context"

	"seatly/internal/allocations"
	"seatly/internal/reservations"
	"seatly/internal/shared/utils/apperr"
	"seatly/internal/waitlist"
	"seatly/internal/wizard"

	"github.com/google/uuid"
)

// occupantDirectory bridges the allocation layer and the seating
// wizard to the booking side. Allocations stay ignorant of reservation
// and waitlist internals; everything crosses through here.
type occupantDirectory struct {
	reservations reservations.Service
	waitlist     waitlist.Service
}

func newOccupantDirectory(res reservations.Service, wl waitlist.Service) *occupantDirectory {
	return &occupantDirectory{reservations: res, waitlist: wl}
}

func (d *occupantDirectory) Lookup(ctx context.Context, occupantType allocations.OccupantType, occupantID uuid.UUID) (*allocations.OccupantInfo, error) {
	if occupantType == allocations.OccupantReservation {
		return d.reservations.Lookup(ctx, occupantID)
	}
	return d.waitlist.Lookup(ctx, occupantID)
}

func (d *occupantDirectory) MarkSeated(ctx context.Context, occupantType allocations.OccupantType, occupantID uuid.UUID) error {
	if occupantType == allocations.OccupantReservation {
		return d.reservations.MarkSeated(ctx, occupantID)
	}
	return d.waitlist.MarkSeated(ctx, occupantID)
}

func (d *occupantDirectory) MarkReserved(ctx context.Context, occupantType allocations.OccupantType, occupantID uuid.UUID) error {
	if occupantType == allocations.OccupantReservation {
		return d.reservations.MarkReserved(ctx, occupantID)
	}
	return apperr.Validation("walk-in parties cannot hold seats ahead of arrival")
}

func (d *occupantDirectory) MarkFinished(ctx context.Context, occupantType allocations.OccupantType, occupantID uuid.UUID) error {
	if occupantType == allocations.OccupantReservation {
		return d.reservations.MarkFinished(ctx, occupantID)
	}
	// A seated walk-in stays seated on its entry; finishing only
	// releases the seats.
	return nil
}

func (d *occupantDirectory) MarkNoShow(ctx context.Context, occupantType allocations.OccupantType, occupantID uuid.UUID) error {
	if occupantType == allocations.OccupantReservation {
		return d.reservations.MarkNoShow(ctx, occupantID)
	}
	return d.waitlist.MarkNoShow(ctx, occupantID)
}

func (d *occupantDirectory) MarkCanceled(ctx context.Context, occupantType allocations.OccupantType, occupantID uuid.UUID) error {
	if occupantType == allocations.OccupantReservation {
		return d.reservations.MarkCanceled(ctx, occupantID)
	}
	return d.waitlist.MarkRemoved(ctx, occupantID)
}

// Reservation and WaitlistEntry satisfy the wizard's candidate source

func (d *occupantDirectory) Reservation(ctx context.Context, id uuid.UUID) (*wizard.Candidate, error) {
	reservation, err := d.reservations.GetReservation(ctx, id.String())
	if err != nil {
		return nil, err
	}
	start := reservation.StartTime
	return &wizard.Candidate{
		Name:      reservation.GuestName,
		PartySize: reservation.PartySize,
		Status:    string(reservation.Status),
		StartTime: &start,
	}, nil
}

func (d *occupantDirectory) WaitlistEntry(ctx context.Context, id uuid.UUID) (*wizard.Candidate, error) {
	entry, err := d.waitlist.GetEntry(ctx, id.String())
	if err != nil {
		return nil, err
	}
	return &wizard.Candidate{
		Name:      entry.GuestName,
		PartySize: entry.PartySize,
		Status:    string(entry.Status),
	}, nil
}
