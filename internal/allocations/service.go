package allocations

import (
	"context"
	"time"

	"seatly/internal/layouts"
	"seatly/internal/shared/constants"
	"seatly/internal/shared/utils/apperr"
	"seatly/pkg/cache"
	"seatly/pkg/logger"

	"github.com/google/uuid"
)

// OccupantDirectory resolves the tagged occupant reference to display
// data and applies status transitions on the owning entity. Implemented
// by an adapter over the reservation and waitlist services; allocations
// never own occupants.
type OccupantDirectory interface {
	Lookup(ctx context.Context, occupantType OccupantType, occupantID uuid.UUID) (*OccupantInfo, error)
	MarkSeated(ctx context.Context, occupantType OccupantType, occupantID uuid.UUID) error
	MarkReserved(ctx context.Context, occupantType OccupantType, occupantID uuid.UUID) error
	MarkFinished(ctx context.Context, occupantType OccupantType, occupantID uuid.UUID) error
	MarkNoShow(ctx context.Context, occupantType OccupantType, occupantID uuid.UUID) error
	MarkCanceled(ctx context.Context, occupantType OccupantType, occupantID uuid.UUID) error
}

// EventPublisher feeds the table-status stream. May be nil when the
// stream is disabled.
type EventPublisher interface {
	PublishTableStatus(ctx context.Context, event TableStatusEvent) error
}

type Service interface {
	GetDay(ctx context.Context, date string) ([]SeatAllocation, error)
	Occupancy(ctx context.Context, date string) (*Snapshot, error)
	RefreshDay(ctx context.Context, date string) (*Snapshot, error)

	SeatNow(ctx context.Context, req CommitRequest) ([]SeatAllocation, error)
	Reserve(ctx context.Context, req CommitRequest) ([]SeatAllocation, error)
	Transition(ctx context.Context, occupantType OccupantType, occupantID uuid.UUID, action TransitionAction) error
}

// CommitRequest is a seat-now or reserve commit. Seats may be given by
// id or, for reserve-by-preference, by label against the active layout.
type CommitRequest struct {
	OccupantType OccupantType
	OccupantID   uuid.UUID
	SeatIDs      []uuid.UUID
	SeatLabels   []string
	StartTime    time.Time
	EndTime      time.Time
}

type service struct {
	repo         Repository
	layoutSvc    layouts.Service
	directory    OccupantDirectory
	publisher    EventPublisher
	cacheService cache.Service
	loc          *time.Location
}

func NewService(repo Repository, layoutSvc layouts.Service, loc *time.Location) *service {
	return &service{
		repo:      repo,
		layoutSvc: layoutSvc,
		loc:       loc,
	}
}

func (s *service) SetDirectory(directory OccupantDirectory)   { s.directory = directory }
func (s *service) SetPublisher(publisher EventPublisher)      { s.publisher = publisher }
func (s *service) SetCacheService(cacheService cache.Service) { s.cacheService = cacheService }

// dayWindow resolves a YYYY-MM-DD date to its bounds in the
// restaurant's timezone.
func (s *service) dayWindow(date string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation("invalid date: %s", date)
	}
	return day, day.Add(24 * time.Hour), nil
}

func (s *service) GetDay(ctx context.Context, date string) ([]SeatAllocation, error) {
	from, to, err := s.dayWindow(date)
	if err != nil {
		return nil, err
	}

	cacheKey := constants.BuildAllocationDayKey(date)
	if s.cacheService != nil {
		var cached []SeatAllocation
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	allocs, err := s.repo.GetAllocationsForWindow(ctx, from, to)
	if err != nil {
		return nil, apperr.Transient("failed to load allocations", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, allocs, constants.TTL_ALLOCATION_DAY); err != nil {
			logger.GetDefault().Debug("failed to cache allocations", "date", date, "error", err)
		}
	}

	return allocs, nil
}

// Occupancy derives the per-seat snapshot for a date from the active
// layout and the day's allocation set.
func (s *service) Occupancy(ctx context.Context, date string) (*Snapshot, error) {
	layout, err := s.layoutSvc.GetActiveLayout(ctx)
	if err != nil {
		return nil, err
	}

	allocs, err := s.GetDay(ctx, date)
	if err != nil {
		return nil, err
	}

	return BuildSnapshot(date, layout, allocs), nil
}

// RefreshDay drops the day's cached allocation set and rebuilds the
// snapshot from the database. Called after every mutation and after
// every conflict; there is no incremental patching.
func (s *service) RefreshDay(ctx context.Context, date string) (*Snapshot, error) {
	s.invalidateDay(ctx, date)
	return s.Occupancy(ctx, date)
}

// SeatNow claims the seats immediately: resulting status occupied
func (s *service) SeatNow(ctx context.Context, req CommitRequest) ([]SeatAllocation, error) {
	return s.commit(ctx, req, StatusOccupied)
}

// Reserve claims the seats ahead of arrival: resulting status reserved.
// Semantically distinct from SeatNow; the occupant transitions to its
// reserved state rather than seated.
func (s *service) Reserve(ctx context.Context, req CommitRequest) ([]SeatAllocation, error) {
	return s.commit(ctx, req, StatusReserved)
}

func (s *service) commit(ctx context.Context, req CommitRequest, status Status) ([]SeatAllocation, error) {
	if !req.OccupantType.IsValid() {
		return nil, apperr.Validation("invalid occupant type: %s", req.OccupantType)
	}
	if status == StatusReserved && req.OccupantType != OccupantReservation && len(req.SeatLabels) > 0 {
		return nil, apperr.Validation("label-based reserve is only valid for reservations")
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, apperr.Validation("end time must be after start time")
	}

	info, err := s.directory.Lookup(ctx, req.OccupantType, req.OccupantID)
	if err != nil {
		return nil, err
	}

	layout, err := s.layoutSvc.GetActiveLayout(ctx)
	if err != nil {
		return nil, err
	}

	seats, err := resolveSeats(layout, req.SeatIDs, req.SeatLabels)
	if err != nil {
		return nil, err
	}
	if len(seats) == 0 {
		return nil, apperr.Validation("no seats specified")
	}

	allocs := make([]SeatAllocation, 0, len(seats))
	labels := make([]string, 0, len(seats))
	for _, seat := range seats {
		allocs = append(allocs, SeatAllocation{
			ID:           uuid.New(),
			SeatID:       seat.ID,
			SeatLabel:    seat.Label,
			OccupantType: req.OccupantType,
			OccupantID:   req.OccupantID,
			OccupantName: info.Name,
			PartySize:    info.PartySize,
			Status:       status,
			StartTime:    req.StartTime,
			EndTime:      req.EndTime,
		})
		labels = append(labels, seat.Label)
	}

	if err := s.repo.CreateAllocations(ctx, allocs); err != nil {
		if apperr.IsConflict(err) {
			logger.GetDefault().LogAllocationConflict(ctx, string(req.OccupantType), req.OccupantID.String(), labels)
			return nil, err
		}
		return nil, apperr.Transient("failed to create allocations", err)
	}

	if status == StatusOccupied {
		err = s.directory.MarkSeated(ctx, req.OccupantType, req.OccupantID)
	} else {
		err = s.directory.MarkReserved(ctx, req.OccupantType, req.OccupantID)
	}
	if err != nil {
		return nil, err
	}

	date := req.StartTime.In(s.loc).Format("2006-01-02")
	s.invalidateDay(ctx, date)
	logger.GetDefault().LogAllocationCreated(ctx, string(req.OccupantType), req.OccupantID.String(), len(allocs), string(status))
	s.publish(ctx, eventTypeFor(status), req, labels, date)

	return allocs, nil
}

// Transition applies a lifecycle action to the occupant's active
// allocations: arrive promotes reserved seats to occupied, the rest
// release the seats and settle the occupant's status.
func (s *service) Transition(ctx context.Context, occupantType OccupantType, occupantID uuid.UUID, action TransitionAction) error {
	if !occupantType.IsValid() {
		return apperr.Validation("invalid occupant type: %s", occupantType)
	}
	if !action.IsValid() {
		return apperr.Validation("invalid transition action: %s", action)
	}

	active, err := s.repo.GetActiveByOccupant(ctx, occupantType, occupantID)
	if err != nil {
		return apperr.Transient("failed to load active allocations", err)
	}
	if len(active) == 0 {
		return apperr.NotFound("no active allocations for occupant")
	}

	if action == ActionArrive {
		if _, err := s.repo.UpdateStatusByOccupant(ctx, occupantType, occupantID, StatusOccupied); err != nil {
			return apperr.Transient("failed to mark allocations occupied", err)
		}
		if err := s.directory.MarkSeated(ctx, occupantType, occupantID); err != nil {
			return err
		}
	} else {
		if _, err := s.repo.ReleaseByOccupant(ctx, occupantType, occupantID, time.Now()); err != nil {
			return apperr.Transient("failed to release allocations", err)
		}
		var markErr error
		switch action {
		case ActionFinish:
			markErr = s.directory.MarkFinished(ctx, occupantType, occupantID)
		case ActionNoShow:
			markErr = s.directory.MarkNoShow(ctx, occupantType, occupantID)
		case ActionCancel:
			markErr = s.directory.MarkCanceled(ctx, occupantType, occupantID)
		}
		if markErr != nil {
			return markErr
		}
		logger.GetDefault().LogAllocationReleased(ctx, string(occupantType), occupantID.String(), string(action))
	}

	labels := make([]string, 0, len(active))
	seenDates := make(map[string]bool)
	for _, alloc := range active {
		labels = append(labels, alloc.SeatLabel)
		seenDates[alloc.StartTime.In(s.loc).Format("2006-01-02")] = true
	}

	// An occupant's allocations may span dates; every touched day's
	// cache goes stale
	for day := range seenDates {
		s.invalidateDay(ctx, day)
	}

	date := active[0].StartTime.In(s.loc).Format("2006-01-02")

	eventType := "released"
	if action == ActionArrive {
		eventType = "seated"
	}
	s.publish(ctx, eventType, CommitRequest{OccupantType: occupantType, OccupantID: occupantID}, labels, date)

	return nil
}

func (s *service) invalidateDay(ctx context.Context, date string) {
	if s.cacheService == nil {
		return
	}
	for _, key := range []string{
		constants.BuildAllocationDayKey(date),
		constants.BuildOccupancyDayKey(date),
	} {
		if err := s.cacheService.Delete(ctx, key); err != nil {
			logger.GetDefault().Debug("failed to invalidate day cache", "key", key, "error", err)
		}
	}
}

func (s *service) publish(ctx context.Context, eventType string, req CommitRequest, labels []string, date string) {
	if s.publisher == nil {
		return
	}
	event := TableStatusEvent{
		EventType:    eventType,
		OccupantType: string(req.OccupantType),
		OccupantID:   req.OccupantID.String(),
		SeatLabels:   labels,
		Date:         date,
		OccurredAt:   time.Now(),
	}
	if err := s.publisher.PublishTableStatus(ctx, event); err != nil {
		logger.GetDefault().Debug("failed to publish table-status event", "error", err)
	}
}

func eventTypeFor(status Status) string {
	if status == StatusOccupied {
		return "seated"
	}
	return "reserved"
}

// resolveSeats maps seat ids and labels onto the active layout's seats.
// Unknown ids and labels are validation errors; the layout is the only
// source of truth for what can be allocated.
func resolveSeats(layout *layouts.Layout, seatIDs []uuid.UUID, seatLabels []string) ([]layouts.Seat, error) {
	byID := make(map[uuid.UUID]layouts.Seat)
	byLabel := make(map[string]layouts.Seat)
	for _, sec := range layout.Sections {
		for _, seat := range sec.Seats {
			byID[seat.ID] = seat
			byLabel[seat.Label] = seat
		}
	}

	seen := make(map[uuid.UUID]bool)
	var seats []layouts.Seat
	for _, id := range seatIDs {
		seat, ok := byID[id]
		if !ok {
			return nil, apperr.Validation("seat not in active layout: %s", id)
		}
		if seen[seat.ID] {
			return nil, apperr.Validation("seat %s is listed more than once", seat.Label)
		}
		seen[seat.ID] = true
		seats = append(seats, seat)
	}
	for _, label := range seatLabels {
		seat, ok := byLabel[label]
		if !ok {
			return nil, apperr.Validation("seat label not in active layout: %s", label)
		}
		if seen[seat.ID] {
			return nil, apperr.Validation("seat %s is listed more than once", seat.Label)
		}
		seen[seat.ID] = true
		seats = append(seats, seat)
	}
	return seats, nil
}
