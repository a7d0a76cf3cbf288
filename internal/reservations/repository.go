package reservations

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, reservation *Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	ListByWindow(ctx context.Context, from, to time.Time) ([]Reservation, error)
	Update(ctx context.Context, reservation *Reservation) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	UpdateSeatLabels(ctx context.Context, id uuid.UUID, labels SeatLabelList) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, reservation *Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var reservation Reservation
	if err := r.db.WithContext(ctx).First(&reservation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *repository) ListByWindow(ctx context.Context, from, to time.Time) ([]Reservation, error) {
	var reservations []Reservation
	err := r.db.WithContext(ctx).
		Where("start_time >= ? AND start_time < ?", from, to).
		Order("start_time ASC").
		Find(&reservations).Error
	return reservations, err
}

func (r *repository) Update(ctx context.Context, reservation *Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	result := r.db.WithContext(ctx).Model(&Reservation{}).
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

func (r *repository) UpdateSeatLabels(ctx context.Context, id uuid.UUID, labels SeatLabelList) error {
	return r.db.WithContext(ctx).Model(&Reservation{}).
		Where("id = ?", id).
		Update("seat_labels", labels).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Reservation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
