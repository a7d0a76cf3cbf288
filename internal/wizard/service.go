package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"seatly/internal/allocations"
	"seatly/internal/shared/config"
	"seatly/internal/shared/utils/apperr"
	"seatly/pkg/logger"

	"github.com/google/uuid"
)

// Allocator is the slice of the allocation service the wizard drives.
// The wizard never talks to seat storage directly; every commit and
// every refresh goes through here.
type Allocator interface {
	Occupancy(ctx context.Context, date string) (*allocations.Snapshot, error)
	RefreshDay(ctx context.Context, date string) (*allocations.Snapshot, error)
	SeatNow(ctx context.Context, req allocations.CommitRequest) ([]allocations.SeatAllocation, error)
	Reserve(ctx context.Context, req allocations.CommitRequest) ([]allocations.SeatAllocation, error)
}

// Candidate is an occupant considered for seating
type Candidate struct {
	Name      string
	PartySize int
	Status    string
	StartTime *time.Time // reservations only
}

// CandidateSource resolves seating candidates from the booking side
type CandidateSource interface {
	Reservation(ctx context.Context, id uuid.UUID) (*Candidate, error)
	WaitlistEntry(ctx context.Context, id uuid.UUID) (*Candidate, error)
}

type Service interface {
	Start(ctx context.Context, req StartRequest) (*Session, error)
	Get(ctx context.Context, sessionID string) (*Session, error)
	ToggleSeat(ctx context.Context, sessionID, seatID string) (*Session, error)
	Commit(ctx context.Context, sessionID string, mode CommitMode) (*CommitResult, error)
	Cancel(ctx context.Context, sessionID string) error
}

type service struct {
	store      Store
	allocator  Allocator
	candidates CandidateSource
	seating    config.SeatingConfig
	loc        *time.Location
}

func NewService(store Store, allocator Allocator, candidates CandidateSource, cfg *config.Config) Service {
	return &service{
		store:      store,
		allocator:  allocator,
		candidates: candidates,
		seating:    cfg.Seating,
		loc:        cfg.Location(),
	}
}

// Start opens a session for an occupant that is actually seatable:
// a booked reservation or a waiting walk-in. Anything else is rejected
// before any state is created.
func (s *service) Start(ctx context.Context, req StartRequest) (*Session, error) {
	occupantID, err := uuid.Parse(req.OccupantID)
	if err != nil {
		return nil, apperr.Validation("invalid occupant id: %s", req.OccupantID)
	}

	var candidate *Candidate
	switch allocations.OccupantType(req.OccupantType) {
	case allocations.OccupantReservation:
		candidate, err = s.candidates.Reservation(ctx, occupantID)
		if err != nil {
			return nil, err
		}
		if candidate.Status != "booked" {
			return nil, apperr.Validation("reservation is %s, only booked reservations can be seated", candidate.Status)
		}
	case allocations.OccupantWaitlist:
		candidate, err = s.candidates.WaitlistEntry(ctx, occupantID)
		if err != nil {
			return nil, err
		}
		if candidate.Status != "waiting" {
			return nil, apperr.Validation("party is %s, only waiting parties can be seated", candidate.Status)
		}
	default:
		return nil, apperr.Validation("invalid occupant type: %s", req.OccupantType)
	}

	date := time.Now().In(s.loc).Format("2006-01-02")
	if candidate.StartTime != nil {
		date = candidate.StartTime.In(s.loc).Format("2006-01-02")
	}

	now := time.Now()
	session := &Session{
		ID:           uuid.New(),
		State:        StateOccupantSelected,
		OccupantType: req.OccupantType,
		OccupantID:   req.OccupantID,
		GuestName:    candidate.Name,
		PartySize:    candidate.PartySize,
		Date:         date,
		TargetStart:  candidate.StartTime,
		Selected:     []SeatPick{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*Session, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, apperr.NotFound("wizard session not found")
		}
		return nil, err
	}
	return session, nil
}

// ToggleSeat selects or deselects one seat. Selection is validated
// against live occupancy and against the party size: picking a taken
// seat or exceeding the party size is rejected outright, never
// clamped. Deselection is always allowed.
func (s *service) ToggleSeat(ctx context.Context, sessionID, seatID string) (*Session, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != StateOccupantSelected && session.State != StateSeatsPicking {
		return nil, apperr.Validation("session is %s, seats cannot be changed", session.State)
	}

	if session.IsSelected(seatID) {
		session.Deselect(seatID)
		if len(session.Selected) == 0 {
			session.State = StateOccupantSelected
		}
		if err := s.store.Save(ctx, session); err != nil {
			return nil, err
		}
		return session, nil
	}

	if len(session.Selected) >= session.PartySize {
		return nil, apperr.Validation("Need exactly %d seat(s) for this party", session.PartySize)
	}

	snapshot, err := s.allocator.Occupancy(ctx, session.Date)
	if err != nil {
		return nil, err
	}
	state, known := snapshot.States[seatID]
	if !known {
		return nil, apperr.Validation("seat not in active layout: %s", seatID)
	}
	if state.Status != allocations.SeatFree {
		return nil, apperr.Validation("seat %s is %s", state.Label, state.Status)
	}

	session.Selected = append(session.Selected, SeatPick{SeatID: seatID, Label: state.Label})
	session.State = StateSeatsPicking

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Commit claims the selected seats. The selected count must equal the
// party size exactly; otherwise the commit is rejected locally and no
// allocation call is made. A session has at most one in-flight commit,
// guarded by the store's fence. On a seat conflict the session resets
// to idle and the day is refreshed exactly once; on a transient
// failure the session is preserved for retry.
func (s *service) Commit(ctx context.Context, sessionID string, mode CommitMode) (*CommitResult, error) {
	if !mode.IsValid() {
		return nil, apperr.Validation("invalid commit mode: %s", mode)
	}

	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != StateSeatsPicking {
		return nil, apperr.Validation("session is %s, nothing to commit", session.State)
	}
	if len(session.Selected) != session.PartySize {
		return nil, apperr.Validation("Need exactly %d seat(s), %d selected", session.PartySize, len(session.Selected))
	}

	occupantType := allocations.OccupantType(session.OccupantType)
	if mode == ModeReserve && occupantType != allocations.OccupantReservation {
		return nil, apperr.Validation("only reservations can be reserved ahead of arrival")
	}

	start, end, err := s.commitWindow(session, mode, time.Now())
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	acquired, err := s.store.AcquireCommit(ctx, sessionID, token, s.seating.CommitTimeout)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, apperr.Validation("a commit is already in progress for this session")
	}

	commitCtx, cancel := context.WithTimeout(ctx, s.seating.CommitTimeout)
	defer cancel()

	commitReq := allocations.CommitRequest{
		OccupantType: occupantType,
		OccupantID:   uuid.MustParse(session.OccupantID),
		SeatIDs:      parseSeatIDs(session.SelectedSeatIDs()),
		StartTime:    start,
		EndTime:      end,
	}

	var allocs []allocations.SeatAllocation
	if mode == ModeSeatNow {
		allocs, err = s.allocator.SeatNow(commitCtx, commitReq)
	} else {
		allocs, err = s.allocator.Reserve(commitCtx, commitReq)
	}

	if err != nil {
		if _, relErr := s.store.ReleaseCommit(ctx, sessionID, token); relErr != nil {
			logger.GetDefault().Debug("failed to release commit fence", "session_id", sessionID, "error", relErr)
		}

		if apperr.IsConflict(err) {
			return nil, s.handleConflict(ctx, session, err)
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(commitCtx.Err(), context.DeadlineExceeded) {
			return nil, apperr.Transient(fmt.Sprintf("commit timed out after %s; seats may or may not be held, refresh before retrying", s.seating.CommitTimeout), err)
		}
		// Transient or validation from below: session preserved.
		return nil, err
	}

	released, err := s.store.ReleaseCommit(ctx, sessionID, token)
	if err != nil {
		logger.GetDefault().Debug("failed to release commit fence", "session_id", sessionID, "error", err)
	}
	if !released {
		// The fence expired while the commit was in flight. The seats
		// are held server-side but this response is stale; refresh and
		// let the staff member see the authoritative state.
		if _, err := s.allocator.RefreshDay(ctx, session.Date); err != nil {
			logger.GetDefault().Debug("failed to refresh day after stale commit", "date", session.Date, "error", err)
		}
		return nil, apperr.Transient("commit finished after its window; the day has been refreshed", nil)
	}

	session.State = StateCommitted
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	return &CommitResult{Session: session, Allocations: allocs}, nil
}

// handleConflict resets the session to idle and refreshes the day's
// occupancy exactly once. The conflict itself propagates to the
// caller; the staff member re-decides against fresh state, the commit
// is never retried automatically.
func (s *service) handleConflict(ctx context.Context, session *Session, conflict error) error {
	date := session.Date

	session.Reset()
	if err := s.store.Save(ctx, session); err != nil {
		logger.GetDefault().Debug("failed to reset wizard session", "session_id", session.ID.String(), "error", err)
	}

	if _, err := s.allocator.RefreshDay(ctx, date); err != nil {
		logger.GetDefault().Debug("failed to refresh day after conflict", "date", date, "error", err)
	}

	return conflict
}

// Cancel discards the session with no side effects
func (s *service) Cancel(ctx context.Context, sessionID string) error {
	if _, err := s.Get(ctx, sessionID); err != nil {
		return err
	}
	return s.store.Delete(ctx, sessionID)
}

// commitWindow derives the allocation window. Seat-now on the target
// date itself starts immediately; seat-now for another day and every
// reserve fall back to the reservation's own start or the default
// service start hour.
func (s *service) commitWindow(session *Session, mode CommitMode, now time.Time) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", session.Date, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation("invalid session date: %s", session.Date)
	}

	if mode == ModeSeatNow {
		today := now.In(s.loc).Format("2006-01-02")
		if session.Date == today {
			return now, now.Add(s.seating.DefaultDuration), nil
		}
		start := day.Add(time.Duration(s.seating.DefaultStartHour) * time.Hour)
		return start, start.Add(s.seating.DefaultDuration), nil
	}

	start := day.Add(time.Duration(s.seating.DefaultStartHour) * time.Hour)
	if session.TargetStart != nil {
		start = *session.TargetStart
	}
	return start, start.Add(s.seating.ReservationDuration), nil
}

func parseSeatIDs(ids []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		parsed, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		out = append(out, parsed)
	}
	return out
}
