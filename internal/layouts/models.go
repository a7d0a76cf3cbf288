package layouts

import (
	"time"

	"github.com/google/uuid"
)

// SectionKind distinguishes round tables from linear counters
type SectionKind string

const (
	KindTable   SectionKind = "table"
	KindCounter SectionKind = "counter"
)

func (k SectionKind) IsValid() bool {
	return k == KindTable || k == KindCounter
}

// Orientation applies to counters only
type Orientation string

const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
)

func (o Orientation) IsValid() bool {
	return o == OrientationHorizontal || o == OrientationVertical
}

// Layout is a versioned floor plan. Exactly one layout may be active;
// drafts are edited and saved freely and go live only through Activate.
type Layout struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Version   int       `gorm:"not null;default:1" json:"version"`
	Active    bool      `gorm:"not null;default:false" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Sections []Section `json:"sections" gorm:"foreignKey:LayoutID;constraint:OnDelete:CASCADE;"`
}

func (Layout) TableName() string {
	return "layouts"
}

// Section is a physical seating unit (table or counter) on a floor.
// Floors are derived from the Floor field; there is no Floor entity.
type Section struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LayoutID    uuid.UUID   `gorm:"type:uuid;index;not null" json:"layout_id"`
	Name        string      `gorm:"not null" json:"name"`
	Kind        SectionKind `gorm:"type:varchar(10);not null" json:"kind"`
	Orientation Orientation `gorm:"type:varchar(10);default:'horizontal'" json:"orientation"`
	Floor       int         `gorm:"not null;default:1" json:"floor"`
	OffsetX     float64     `gorm:"not null;default:0" json:"offset_x"`
	OffsetY     float64     `gorm:"not null;default:0" json:"offset_y"`
	Position    int         `gorm:"not null;default:0" json:"position"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Seats []Seat `json:"seats" gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE;"`
}

func (Section) TableName() string {
	return "sections"
}

// SeatLabels returns the section's seat labels in seat order
func (s *Section) SeatLabels() []string {
	labels := make([]string, 0, len(s.Seats))
	for _, seat := range s.Seats {
		labels = append(labels, seat.Label)
	}
	return labels
}

// Seat is an individually allocatable position within a section. The
// label must be unique within a layout; preference matching relies on it.
type Seat struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SectionID uuid.UUID `gorm:"type:uuid;index;not null" json:"section_id"`
	Label     string    `gorm:"not null" json:"label"`
	X         float64   `gorm:"not null;default:0" json:"x"`
	Y         float64   `gorm:"not null;default:0" json:"y"`
	Capacity  int       `gorm:"not null;default:1" json:"capacity"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Seat) TableName() string {
	return "seats"
}

// AbsolutePosition returns the seat position in canvas coordinates
func (s *Seat) AbsolutePosition(section *Section) (float64, float64) {
	return section.OffsetX + s.X, section.OffsetY + s.Y
}

// FloorsOf groups sections by floor number, ascending. Purely derived;
// introducing a new floor number on a section creates the floor.
func FloorsOf(sections []Section) map[int][]Section {
	floors := make(map[int][]Section)
	for _, sec := range sections {
		floors[sec.Floor] = append(floors[sec.Floor], sec)
	}
	return floors
}

// SeatLabels returns every seat label in the layout, in section order
func (l *Layout) SeatLabels() []string {
	var labels []string
	for _, sec := range l.Sections {
		for _, seat := range sec.Seats {
			labels = append(labels, seat.Label)
		}
	}
	return labels
}

// SeatByLabel resolves a label to its seat, or nil
func (l *Layout) SeatByLabel(label string) *Seat {
	for si := range l.Sections {
		for pi := range l.Sections[si].Seats {
			if l.Sections[si].Seats[pi].Label == label {
				return &l.Sections[si].Seats[pi]
			}
		}
	}
	return nil
}
