package reservations

import (
	"context"
	"errors"
	"time"

	"seatly/internal/allocations"
	"seatly/internal/availability"
	"seatly/internal/shared/config"
	"seatly/internal/shared/utils/apperr"
	"seatly/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	CreateReservation(ctx context.Context, req CreateReservationRequest) (*Reservation, error)
	GetReservation(ctx context.Context, id string) (*Reservation, error)
	ListByDate(ctx context.Context, date string) ([]Reservation, error)
	UpdateReservation(ctx context.Context, id string, req UpdateReservationRequest) (*Reservation, error)
	DeleteReservation(ctx context.Context, id string) error

	Slots(ctx context.Context, date string, partySize int) ([]availability.Slot, error)
	EvaluatePreferences(ctx context.Context, id string) (*PreferenceEvaluation, error)
	AssignPreference(ctx context.Context, id string, rank int) (*Reservation, error)

	// Occupant directory hooks, called through the allocation layer's
	// directory adapter.
	Lookup(ctx context.Context, id uuid.UUID) (*allocations.OccupantInfo, error)
	MarkReserved(ctx context.Context, id uuid.UUID) error
	MarkSeated(ctx context.Context, id uuid.UUID) error
	MarkFinished(ctx context.Context, id uuid.UUID) error
	MarkNoShow(ctx context.Context, id uuid.UUID) error
	MarkCanceled(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo         Repository
	allocService allocations.Service
	client       availability.Client
	seating      config.SeatingConfig
	loc          *time.Location
}

func NewService(repo Repository, allocService allocations.Service, client availability.Client, cfg *config.Config) Service {
	return &service{
		repo:         repo,
		allocService: allocService,
		client:       client,
		seating:      cfg.Seating,
		loc:          cfg.Location(),
	}
}

// CreateReservation books through the availability subsystem first;
// the local row mirrors what the subsystem accepted.
func (s *service) CreateReservation(ctx context.Context, req CreateReservationRequest) (*Reservation, error) {
	if err := validatePreferences(req.SeatPreferences, req.PartySize); err != nil {
		return nil, err
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = int(s.seating.ReservationDuration.Minutes())
	}

	created, err := s.client.CreateReservation(ctx, availability.CreateReservationRequest{
		GuestName:       req.GuestName,
		Phone:           req.Phone,
		PartySize:       req.PartySize,
		StartTime:       req.StartTime,
		DurationMinutes: duration,
		SeatPreferences: req.SeatPreferences,
		Notes:           req.Notes,
	})
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(created.ID)
	if err != nil {
		return nil, apperr.Transient("availability returned an invalid reservation id", err)
	}

	reservation := &Reservation{
		ID:              id,
		GuestName:       req.GuestName,
		Phone:           req.Phone,
		PartySize:       req.PartySize,
		Status:          StatusBooked,
		StartTime:       created.StartTime,
		DurationMinutes: duration,
		SeatPreferences: req.SeatPreferences,
		Notes:           req.Notes,
	}

	if err := s.repo.Create(ctx, reservation); err != nil {
		return nil, apperr.Transient("failed to store reservation", err)
	}

	logger.GetDefault().Info("reservation created",
		"reservation_id", reservation.ID.String(),
		"party_size", reservation.PartySize,
		"start_time", reservation.StartTime)

	return reservation, nil
}

func (s *service) GetReservation(ctx context.Context, id string) (*Reservation, error) {
	return s.getByStringID(ctx, id)
}

func (s *service) ListByDate(ctx context.Context, date string) ([]Reservation, error) {
	day, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return nil, apperr.Validation("invalid date: %s", date)
	}

	reservations, err := s.repo.ListByWindow(ctx, day, day.Add(24*time.Hour))
	if err != nil {
		return nil, apperr.Transient("failed to list reservations", err)
	}
	return reservations, nil
}

func (s *service) UpdateReservation(ctx context.Context, id string, req UpdateReservationRequest) (*Reservation, error) {
	reservation, err := s.getByStringID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation.Status.IsTerminal() {
		return nil, apperr.Validation("reservation is already %s", reservation.Status)
	}

	if req.GuestName != nil {
		reservation.GuestName = *req.GuestName
	}
	if req.Phone != nil {
		reservation.Phone = *req.Phone
	}
	if req.PartySize != nil {
		if *req.PartySize < 1 {
			return nil, apperr.Validation("party size must be at least 1")
		}
		reservation.PartySize = *req.PartySize
	}
	if req.StartTime != nil {
		reservation.StartTime = *req.StartTime
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes < 1 {
			return nil, apperr.Validation("duration must be at least 1 minute")
		}
		reservation.DurationMinutes = *req.DurationMinutes
	}
	if req.Notes != nil {
		reservation.Notes = *req.Notes
	}
	if req.SeatPreferences != nil {
		reservation.SeatPreferences = *req.SeatPreferences
	}

	if err := validatePreferences(reservation.SeatPreferences, reservation.PartySize); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, reservation); err != nil {
		return nil, apperr.Transient("failed to update reservation", err)
	}
	return reservation, nil
}

// DeleteReservation removes the record outright. Reservations holding
// seats must be released through a transition first.
func (s *service) DeleteReservation(ctx context.Context, id string) error {
	reservation, err := s.getByStringID(ctx, id)
	if err != nil {
		return err
	}
	if reservation.Status == StatusReserved || reservation.Status == StatusSeated {
		return apperr.Validation("reservation still holds seats; cancel or finish it first")
	}

	if err := s.repo.Delete(ctx, reservation.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("reservation not found")
		}
		return apperr.Transient("failed to delete reservation", err)
	}
	return nil
}

func (s *service) Slots(ctx context.Context, date string, partySize int) ([]availability.Slot, error) {
	if partySize < 1 {
		return nil, apperr.Validation("party size must be at least 1")
	}
	return s.client.Slots(ctx, date, partySize)
}

// EvaluatePreferences grades the reservation's ranked preferences
// against the occupancy snapshot of its own date.
func (s *service) EvaluatePreferences(ctx context.Context, id string) (*PreferenceEvaluation, error) {
	reservation, err := s.getByStringID(ctx, id)
	if err != nil {
		return nil, err
	}

	date := reservation.StartTime.In(s.loc).Format("2006-01-02")
	snapshot, err := s.allocService.Occupancy(ctx, date)
	if err != nil {
		return nil, err
	}

	return &PreferenceEvaluation{
		ReservationID: reservation.ID.String(),
		Date:          date,
		Options:       EvaluatePreferences(reservation.SeatPreferences, snapshot),
	}, nil
}

// AssignPreference reserves exactly the labels of the chosen rank for
// the reservation's own window. It never falls back to another rank;
// a Conflict from the allocation layer propagates untouched.
func (s *service) AssignPreference(ctx context.Context, id string, rank int) (*Reservation, error) {
	reservation, err := s.getByStringID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation.Status != StatusBooked {
		return nil, apperr.Validation("reservation is %s, only booked reservations can be assigned", reservation.Status)
	}
	if rank < 0 || rank >= len(reservation.SeatPreferences) {
		return nil, apperr.Validation("preference rank %d does not exist", rank)
	}
	labels := reservation.SeatPreferences[rank]
	if len(labels) == 0 {
		return nil, apperr.Validation("preference rank %d lists no seats", rank)
	}

	end := reservation.StartTime.Add(time.Duration(reservation.DurationMinutes) * time.Minute)
	_, err = s.allocService.Reserve(ctx, allocations.CommitRequest{
		OccupantType: allocations.OccupantReservation,
		OccupantID:   reservation.ID,
		SeatLabels:   labels,
		StartTime:    reservation.StartTime,
		EndTime:      end,
	})
	if err != nil {
		return nil, err
	}

	// Reserve flips the status through the directory; refresh the
	// denormalized labels and reload.
	if err := s.repo.UpdateSeatLabels(ctx, reservation.ID, SeatLabelList(labels)); err != nil {
		return nil, apperr.Transient("failed to record assigned seats", err)
	}

	return s.repo.GetByID(ctx, reservation.ID)
}

func (s *service) Lookup(ctx context.Context, id uuid.UUID) (*allocations.OccupantInfo, error) {
	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("reservation not found")
		}
		return nil, apperr.Transient("failed to load reservation", err)
	}

	start := reservation.StartTime
	return &allocations.OccupantInfo{
		Name:      reservation.GuestName,
		PartySize: reservation.PartySize,
		StartTime: &start,
	}, nil
}

func (s *service) MarkReserved(ctx context.Context, id uuid.UUID) error {
	return s.markStatus(ctx, id, StatusReserved, false)
}

func (s *service) MarkSeated(ctx context.Context, id uuid.UUID) error {
	return s.markStatus(ctx, id, StatusSeated, false)
}

func (s *service) MarkFinished(ctx context.Context, id uuid.UUID) error {
	return s.markStatus(ctx, id, StatusFinished, true)
}

func (s *service) MarkNoShow(ctx context.Context, id uuid.UUID) error {
	return s.markStatus(ctx, id, StatusNoShow, true)
}

func (s *service) MarkCanceled(ctx context.Context, id uuid.UUID) error {
	return s.markStatus(ctx, id, StatusCanceled, true)
}

func (s *service) markStatus(ctx context.Context, id uuid.UUID, status Status, clearLabels bool) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("reservation not found")
		}
		return apperr.Transient("failed to update reservation status", err)
	}
	if clearLabels {
		if err := s.repo.UpdateSeatLabels(ctx, id, nil); err != nil {
			return apperr.Transient("failed to clear assigned seats", err)
		}
	}
	return nil
}

func (s *service) getByStringID(ctx context.Context, id string) (*Reservation, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid reservation id: %s", id)
	}

	reservation, err := s.repo.GetByID(ctx, parsed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("reservation not found")
		}
		return nil, apperr.Transient("failed to load reservation", err)
	}
	return reservation, nil
}

// validatePreferences enforces at most three ranked lists, each no
// longer than the party size.
func validatePreferences(prefs SeatPreferences, partySize int) error {
	if len(prefs) > MaxPreferenceRanks {
		return apperr.Validation("at most %d seat preferences allowed", MaxPreferenceRanks)
	}
	for rank, labels := range prefs {
		if len(labels) > partySize {
			return apperr.Validation("preference rank %d lists more seats than the party size", rank)
		}
		for _, label := range labels {
			if label == "" {
				return apperr.Validation("preference rank %d contains an empty seat label", rank)
			}
		}
	}
	return nil
}
