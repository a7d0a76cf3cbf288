package waitlist

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, entry *WaitlistEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*WaitlistEntry, error)
	ListWaiting(ctx context.Context) ([]WaitlistEntry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *WaitlistEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*WaitlistEntry, error) {
	var entry WaitlistEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListWaiting returns the live queue in check-in order
func (r *repository) ListWaiting(ctx context.Context) ([]WaitlistEntry, error) {
	var entries []WaitlistEntry
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusWaiting).
		Order("check_in_time ASC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	result := r.db.WithContext(ctx).Model(&WaitlistEntry{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
