package layouts

import "github.com/google/uuid"

// SeatDraft carries one seat of an authoring draft. A nil ID marks a
// transient seat that gets a persisted id on save.
type SeatDraft struct {
	ID       *uuid.UUID `json:"id"`
	Label    string     `json:"label"`
	Capacity int        `json:"capacity" binding:"omitempty,min=1"`
}

// SectionDraft carries one section of an authoring draft
type SectionDraft struct {
	ID          *uuid.UUID  `json:"id"`
	Name        string      `json:"name" binding:"required"`
	Kind        SectionKind `json:"kind" binding:"required,oneof=table counter"`
	Orientation Orientation `json:"orientation" binding:"omitempty,oneof=horizontal vertical"`
	Floor       int         `json:"floor" binding:"required,min=1"`
	OffsetX     float64     `json:"offset_x"`
	OffsetY     float64     `json:"offset_y"`
	SeatCount   int         `json:"seat_count" binding:"min=0"`
	Seats       []SeatDraft `json:"seats" binding:"omitempty"`
}

type CreateLayoutRequest struct {
	Name     string         `json:"name" binding:"required"`
	Sections []SectionDraft `json:"sections" binding:"omitempty,dive"`
}

type UpdateLayoutRequest struct {
	Name     string         `json:"name" binding:"required"`
	Sections []SectionDraft `json:"sections" binding:"omitempty,dive"`
}

type RenameSeatsRequest struct {
	Labels map[string]string `json:"labels" binding:"required,min=1"` // seat id -> new label
}
