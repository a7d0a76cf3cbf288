package allocations

import (
	"context"
	"time"

	"seatly/internal/shared/utils/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository interface for allocation persistence
type Repository interface {
	GetAllocationsForWindow(ctx context.Context, from, to time.Time) ([]SeatAllocation, error)
	GetActiveByOccupant(ctx context.Context, occupantType OccupantType, occupantID uuid.UUID) ([]SeatAllocation, error)

	// CreateAllocations inserts the rows only if none of the seats has a
	// conflicting active allocation; returns apperr.Conflict otherwise.
	CreateAllocations(ctx context.Context, allocs []SeatAllocation) error

	UpdateStatusByOccupant(ctx context.Context, occupantType OccupantType, occupantID uuid.UUID, status Status) (int64, error)
	ReleaseByOccupant(ctx context.Context, occupantType OccupantType, occupantID uuid.UUID, at time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new allocation repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAllocationsForWindow(ctx context.Context, from, to time.Time) ([]SeatAllocation, error) {
	var allocs []SeatAllocation
	err := r.db.WithContext(ctx).
		Where("start_time < ? AND end_time > ?", to, from).
		Order("created_at ASC").
		Find(&allocs).Error
	return allocs, err
}

func (r *repository) GetActiveByOccupant(ctx context.Context, occupantType OccupantType, occupantID uuid.UUID) ([]SeatAllocation, error) {
	var allocs []SeatAllocation
	err := r.db.WithContext(ctx).
		Where("occupant_type = ? AND occupant_id = ? AND released_at IS NULL", occupantType, occupantID).
		Find(&allocs).Error
	return allocs, err
}

// CreateAllocations runs the conflict check and the inserts in one
// transaction. Conflicting rows are locked so two concurrent commits
// for the same seat serialize; the loser sees the winner's row and
// gets a conflict. The btree_gist exclusion constraint backstops this
// at the storage layer.
func (r *repository) CreateAllocations(ctx context.Context, allocs []SeatAllocation) error {
	if len(allocs) == 0 {
		return nil
	}
	if labels := intraBatchOverlaps(allocs); len(labels) > 0 {
		return apperr.Conflict("seats no longer available", labels)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conflictLabels []string

		for i := range allocs {
			var existing []SeatAllocation
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("seat_id = ? AND released_at IS NULL AND start_time < ? AND end_time > ?",
					allocs[i].SeatID, allocs[i].EndTime, allocs[i].StartTime).
				Find(&existing).Error
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				conflictLabels = append(conflictLabels, allocs[i].SeatLabel)
			}
		}

		if len(conflictLabels) > 0 {
			return apperr.Conflict("seats no longer available", conflictLabels)
		}

		for i := range allocs {
			if err := tx.Create(&allocs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// intraBatchOverlaps reports seat labels that collide within the batch
// itself. The lock probe only sees committed rows, so a batch carrying
// the same seat twice has to be rejected before it reaches the db.
func intraBatchOverlaps(allocs []SeatAllocation) []string {
	var labels []string
	for i := range allocs {
		for j := i + 1; j < len(allocs); j++ {
			if allocs[i].SeatID == allocs[j].SeatID &&
				allocs[i].StartTime.Before(allocs[j].EndTime) &&
				allocs[i].EndTime.After(allocs[j].StartTime) {
				labels = append(labels, allocs[j].SeatLabel)
			}
		}
	}
	return labels
}

func (r *repository) UpdateStatusByOccupant(ctx context.Context, occupantType OccupantType, occupantID uuid.UUID, status Status) (int64, error) {
	res := r.db.WithContext(ctx).Model(&SeatAllocation{}).
		Where("occupant_type = ? AND occupant_id = ? AND released_at IS NULL", occupantType, occupantID).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *repository) ReleaseByOccupant(ctx context.Context, occupantType OccupantType, occupantID uuid.UUID, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&SeatAllocation{}).
		Where("occupant_type = ? AND occupant_id = ? AND released_at IS NULL", occupantType, occupantID).
		Update("released_at", at)
	return res.RowsAffected, res.Error
}
