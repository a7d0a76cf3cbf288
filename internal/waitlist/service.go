package waitlist

import (
	"context"
	"errors"
	"time"

	"seatly/internal/allocations"
	"seatly/internal/shared/utils/apperr"
	"seatly/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	Join(ctx context.Context, req JoinRequest) (*WaitlistEntry, error)
	GetEntry(ctx context.Context, id string) (*WaitlistEntry, error)
	ListWaiting(ctx context.Context) ([]QueueEntry, error)
	Remove(ctx context.Context, id string) error

	// Occupant directory hooks, called through the allocation layer's
	// directory adapter.
	Lookup(ctx context.Context, id uuid.UUID) (*allocations.OccupantInfo, error)
	MarkSeated(ctx context.Context, id uuid.UUID) error
	MarkNoShow(ctx context.Context, id uuid.UUID) error
	MarkRemoved(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Join(ctx context.Context, req JoinRequest) (*WaitlistEntry, error) {
	entry := &WaitlistEntry{
		ID:          uuid.New(),
		GuestName:   req.GuestName,
		Phone:       req.Phone,
		PartySize:   req.PartySize,
		Status:      StatusWaiting,
		CheckInTime: time.Now(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, apperr.Transient("failed to join waitlist", err)
	}

	logger.GetDefault().Info("party joined waitlist",
		"entry_id", entry.ID.String(),
		"party_size", entry.PartySize)

	return entry, nil
}

func (s *service) GetEntry(ctx context.Context, id string) (*WaitlistEntry, error) {
	return s.getByStringID(ctx, id)
}

func (s *service) ListWaiting(ctx context.Context) ([]QueueEntry, error) {
	entries, err := s.repo.ListWaiting(ctx)
	if err != nil {
		return nil, apperr.Transient("failed to list waitlist", err)
	}

	now := time.Now()
	queue := make([]QueueEntry, 0, len(entries))
	for i, entry := range entries {
		queue = append(queue, QueueEntry{
			WaitlistEntry:   entry,
			Position:        i + 1,
			WaitTimeMinutes: int(entry.WaitTime(now).Minutes()),
		})
	}
	return queue, nil
}

// Remove takes a still-waiting party out of the queue. Seated parties
// go through the allocation transition instead.
func (s *service) Remove(ctx context.Context, id string) error {
	entry, err := s.getByStringID(ctx, id)
	if err != nil {
		return err
	}
	if entry.Status != StatusWaiting {
		return apperr.Validation("entry is %s, only waiting entries can be removed", entry.Status)
	}

	return s.updateStatus(ctx, entry.ID, StatusRemoved)
}

func (s *service) Lookup(ctx context.Context, id uuid.UUID) (*allocations.OccupantInfo, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("waitlist entry not found")
		}
		return nil, apperr.Transient("failed to load waitlist entry", err)
	}

	return &allocations.OccupantInfo{
		Name:      entry.GuestName,
		PartySize: entry.PartySize,
	}, nil
}

func (s *service) MarkSeated(ctx context.Context, id uuid.UUID) error {
	return s.updateStatus(ctx, id, StatusSeated)
}

func (s *service) MarkNoShow(ctx context.Context, id uuid.UUID) error {
	return s.updateStatus(ctx, id, StatusNoShow)
}

func (s *service) MarkRemoved(ctx context.Context, id uuid.UUID) error {
	return s.updateStatus(ctx, id, StatusRemoved)
}

func (s *service) updateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("waitlist entry not found")
		}
		return apperr.Transient("failed to update waitlist status", err)
	}
	return nil
}

func (s *service) getByStringID(ctx context.Context, id string) (*WaitlistEntry, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid waitlist entry id: %s", id)
	}

	entry, err := s.repo.GetByID(ctx, parsed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("waitlist entry not found")
		}
		return nil, apperr.Transient("failed to load waitlist entry", err)
	}
	return entry, nil
}
