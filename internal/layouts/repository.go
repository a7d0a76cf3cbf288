package layouts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface for layout persistence
type Repository interface {
	CreateLayout(ctx context.Context, layout *Layout) error
	GetLayoutByID(ctx context.Context, id uuid.UUID) (*Layout, error)
	GetActiveLayout(ctx context.Context) (*Layout, error)
	ListLayouts(ctx context.Context) ([]Layout, error)
	ReplaceLayoutTree(ctx context.Context, layout *Layout) error
	DeleteLayout(ctx context.Context, id uuid.UUID) error
	ActivateLayout(ctx context.Context, id uuid.UUID) error

	UpdateSeatLabels(ctx context.Context, sectionID uuid.UUID, labels map[uuid.UUID]string) error
	GetSeatsByIDs(ctx context.Context, ids []uuid.UUID) ([]Seat, error)
	GetSectionByID(ctx context.Context, id uuid.UUID) (*Section, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new layout repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateLayout(ctx context.Context, layout *Layout) error {
	return r.db.WithContext(ctx).Create(layout).Error
}

func (r *repository) GetLayoutByID(ctx context.Context, id uuid.UUID) (*Layout, error) {
	var layout Layout
	err := r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sections.position ASC")
		}).
		Preload("Sections.Seats", func(db *gorm.DB) *gorm.DB {
			return db.Order("seats.position ASC")
		}).
		First(&layout, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &layout, nil
}

func (r *repository) GetActiveLayout(ctx context.Context) (*Layout, error) {
	var layout Layout
	err := r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sections.position ASC")
		}).
		Preload("Sections.Seats", func(db *gorm.DB) *gorm.DB {
			return db.Order("seats.position ASC")
		}).
		First(&layout, "active = ?", true).Error
	if err != nil {
		return nil, err
	}
	return &layout, nil
}

func (r *repository) ListLayouts(ctx context.Context) ([]Layout, error) {
	var list []Layout
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error
	return list, err
}

// ReplaceLayoutTree persists a whole draft in one transaction: the
// layout row is updated and the section/seat tree swapped wholesale.
// Persisted ids survive because the draft carries them back in.
func (r *repository) ReplaceLayoutTree(ctx context.Context, layout *Layout) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Layout{}).Where("id = ?", layout.ID).
			Updates(map[string]interface{}{
				"name":    layout.Name,
				"version": layout.Version,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var sectionIDs []uuid.UUID
		if err := tx.Model(&Section{}).Where("layout_id = ?", layout.ID).
			Pluck("id", &sectionIDs).Error; err != nil {
			return err
		}
		if len(sectionIDs) > 0 {
			if err := tx.Where("section_id IN ?", sectionIDs).Delete(&Seat{}).Error; err != nil {
				return err
			}
			if err := tx.Where("layout_id = ?", layout.ID).Delete(&Section{}).Error; err != nil {
				return err
			}
		}

		for si := range layout.Sections {
			layout.Sections[si].LayoutID = layout.ID
			if err := tx.Create(&layout.Sections[si]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) DeleteLayout(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sectionIDs []uuid.UUID
		if err := tx.Model(&Section{}).Where("layout_id = ?", id).
			Pluck("id", &sectionIDs).Error; err != nil {
			return err
		}
		if len(sectionIDs) > 0 {
			if err := tx.Where("section_id IN ?", sectionIDs).Delete(&Seat{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("layout_id = ?", id).Delete(&Section{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Layout{}, "id = ?", id).Error
	})
}

// ActivateLayout flips the single active pointer in one transaction
func (r *repository) ActivateLayout(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Layout{}).Where("active = ?", true).
			Update("active", false).Error; err != nil {
			return err
		}
		res := tx.Model(&Layout{}).Where("id = ?", id).Update("active", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// UpdateSeatLabels renames seats in bulk, scoped to one section
func (r *repository) UpdateSeatLabels(ctx context.Context, sectionID uuid.UUID, labels map[uuid.UUID]string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for seatID, label := range labels {
			res := tx.Model(&Seat{}).
				Where("id = ? AND section_id = ?", seatID, sectionID).
				Update("label", label)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

func (r *repository) GetSeatsByIDs(ctx context.Context, ids []uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&seats).Error
	return seats, err
}

func (r *repository) GetSectionByID(ctx context.Context, id uuid.UUID) (*Section, error) {
	var section Section
	err := r.db.WithContext(ctx).
		Preload("Seats", func(db *gorm.DB) *gorm.DB {
			return db.Order("seats.position ASC")
		}).
		First(&section, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}
