package layouts

import (
	"math"

	"github.com/google/uuid"
)

// HitKind identifies what a canvas point landed on
type HitKind string

const (
	HitNone    HitKind = "none"
	HitSeat    HitKind = "seat"
	HitSection HitKind = "section"
)

// Hit is the result of canvas hit-testing
type Hit struct {
	Kind      HitKind
	SectionID uuid.UUID
	SeatID    uuid.UUID
}

// HitTest resolves a canvas point against the given floor. Seats win
// over their section glyph so a click on a seat never drags the table.
func HitTest(sections []Section, floor int, x, y float64) Hit {
	// Seats first, in reverse paint order (later sections draw on top)
	for si := len(sections) - 1; si >= 0; si-- {
		sec := &sections[si]
		if sec.Floor != floor {
			continue
		}
		for pi := range sec.Seats {
			sx, sy := sec.Seats[pi].AbsolutePosition(sec)
			if dist(x, y, sx, sy) <= SeatRadius {
				return Hit{Kind: HitSeat, SectionID: sec.ID, SeatID: sec.Seats[pi].ID}
			}
		}
	}

	for si := len(sections) - 1; si >= 0; si-- {
		sec := &sections[si]
		if sec.Floor != floor {
			continue
		}
		if sectionHit(sec, x, y) {
			return Hit{Kind: HitSection, SectionID: sec.ID}
		}
	}

	return Hit{Kind: HitNone}
}

// sectionHit tests the section glyph: a disc for tables, the seat-run
// bounding box for counters.
func sectionHit(sec *Section, x, y float64) bool {
	if sec.Kind == KindTable {
		return dist(x, y, sec.OffsetX, sec.OffsetY) <= TableRadius
	}

	if len(sec.Seats) == 0 {
		return dist(x, y, sec.OffsetX, sec.OffsetY) <= SeatRadius
	}

	bounds := Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for pi := range sec.Seats {
		sx, sy := sec.Seats[pi].AbsolutePosition(sec)
		bounds.MinX = math.Min(bounds.MinX, sx-SeatRadius)
		bounds.MinY = math.Min(bounds.MinY, sy-SeatRadius)
		bounds.MaxX = math.Max(bounds.MaxX, sx+SeatRadius)
		bounds.MaxY = math.Max(bounds.MaxY, sy+SeatRadius)
	}
	return bounds.Contains(x, y)
}

// ApplyDrag moves a section by a canvas delta. Only the section offset
// changes; seat local positions are never touched by dragging.
func ApplyDrag(sec *Section, dx, dy float64) {
	sec.OffsetX += dx
	sec.OffsetY += dy
}

func dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
