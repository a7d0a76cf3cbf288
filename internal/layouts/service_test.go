package layouts

import (
	"context"
	"testing"

	"seatly/internal/shared/utils/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRepository keeps layouts in memory for service-level tests
type fakeRepository struct {
	layouts map[uuid.UUID]*Layout
	active  uuid.UUID
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{layouts: make(map[uuid.UUID]*Layout)}
}

func (f *fakeRepository) CreateLayout(_ context.Context, layout *Layout) error {
	for si := range layout.Sections {
		layout.Sections[si].LayoutID = layout.ID
	}
	copied := *layout
	f.layouts[layout.ID] = &copied
	return nil
}

func (f *fakeRepository) GetLayoutByID(_ context.Context, id uuid.UUID) (*Layout, error) {
	layout, ok := f.layouts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *layout
	return &copied, nil
}

func (f *fakeRepository) GetActiveLayout(_ context.Context) (*Layout, error) {
	layout, ok := f.layouts[f.active]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *layout
	return &copied, nil
}

func (f *fakeRepository) ListLayouts(_ context.Context) ([]Layout, error) {
	var list []Layout
	for _, layout := range f.layouts {
		list = append(list, *layout)
	}
	return list, nil
}

func (f *fakeRepository) ReplaceLayoutTree(_ context.Context, layout *Layout) error {
	if _, ok := f.layouts[layout.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for si := range layout.Sections {
		layout.Sections[si].LayoutID = layout.ID
	}
	copied := *layout
	f.layouts[layout.ID] = &copied
	return nil
}

func (f *fakeRepository) DeleteLayout(_ context.Context, id uuid.UUID) error {
	delete(f.layouts, id)
	return nil
}

func (f *fakeRepository) ActivateLayout(_ context.Context, id uuid.UUID) error {
	if prev, ok := f.layouts[f.active]; ok {
		prev.Active = false
	}
	layout, ok := f.layouts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	layout.Active = true
	f.active = id
	return nil
}

func (f *fakeRepository) UpdateSeatLabels(_ context.Context, sectionID uuid.UUID, labels map[uuid.UUID]string) error {
	for _, layout := range f.layouts {
		for si := range layout.Sections {
			if layout.Sections[si].ID != sectionID {
				continue
			}
			for pi := range layout.Sections[si].Seats {
				if label, ok := labels[layout.Sections[si].Seats[pi].ID]; ok {
					layout.Sections[si].Seats[pi].Label = label
				}
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepository) GetSeatsByIDs(_ context.Context, ids []uuid.UUID) ([]Seat, error) {
	var seats []Seat
	for _, layout := range f.layouts {
		for _, sec := range layout.Sections {
			for _, seat := range sec.Seats {
				for _, id := range ids {
					if seat.ID == id {
						seats = append(seats, seat)
					}
				}
			}
		}
	}
	return seats, nil
}

func (f *fakeRepository) GetSectionByID(_ context.Context, id uuid.UUID) (*Section, error) {
	for _, layout := range f.layouts {
		for si := range layout.Sections {
			if layout.Sections[si].ID == id {
				copied := layout.Sections[si]
				return &copied, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func createFixtureLayout(t *testing.T, svc Service) *Layout {
	t.Helper()
	layout, err := svc.CreateLayout(context.Background(), CreateLayoutRequest{
		Name: "Main",
		Sections: []SectionDraft{
			{Name: "T1", Kind: KindTable, Floor: 1, OffsetX: 100, OffsetY: 100, SeatCount: 4},
		},
	})
	require.NoError(t, err)
	return layout
}

func TestCreateLayout_SynthesizesSeats(t *testing.T) {
	svc := NewService(newFakeRepository())
	layout := createFixtureLayout(t, svc)

	require.Len(t, layout.Sections, 1)
	sec := layout.Sections[0]
	require.Len(t, sec.Seats, 4)

	assert.Equal(t, []string{"T1-A", "T1-B", "T1-C", "T1-D"}, sec.SeatLabels())
	for _, seat := range sec.Seats {
		assert.NotEqual(t, uuid.Nil, seat.ID)
	}
}

func TestUpdateLayout_PreservesLabelsUpToPreviousCount(t *testing.T) {
	svc := NewService(newFakeRepository())
	layout := createFixtureLayout(t, svc)

	// Rename a seat so preservation is observable
	sec := layout.Sections[0]
	err := svc.RenameSeats(context.Background(), sec.ID.String(), RenameSeatsRequest{
		Labels: map[string]string{sec.Seats[1].ID.String(): "Window"},
	})
	require.NoError(t, err)

	// Grow the table from 4 to 6 seats
	updated, err := svc.UpdateLayout(context.Background(), layout.ID.String(), UpdateLayoutRequest{
		Name: "Main",
		Sections: []SectionDraft{
			{ID: &sec.ID, Name: "T1", Kind: KindTable, Floor: 1, OffsetX: 100, OffsetY: 100, SeatCount: 6},
		},
	})
	require.NoError(t, err)

	grown := updated.Sections[0]
	require.Len(t, grown.Seats, 6)
	assert.Equal(t, 2, updated.Version)

	// Existing seats keep their ids and labels; new seats get defaults
	assert.Equal(t, sec.Seats[0].ID, grown.Seats[0].ID)
	assert.Equal(t, "T1-A", grown.Seats[0].Label)
	assert.Equal(t, "Window", grown.Seats[1].Label)
	assert.Equal(t, "T1-E", grown.Seats[4].Label)
	assert.Equal(t, "T1-F", grown.Seats[5].Label)

	// Positions were re-synthesized for the new count
	want := SynthesizeSeatPositions(KindTable, 6, "")
	for i, seat := range grown.Seats {
		assert.InDelta(t, want[i].X, seat.X, 1e-9)
		assert.InDelta(t, want[i].Y, seat.Y, 1e-9)
	}
}

func TestUpdateLayout_ShrinkDropsTrailingSeats(t *testing.T) {
	svc := NewService(newFakeRepository())
	layout := createFixtureLayout(t, svc)
	sec := layout.Sections[0]

	updated, err := svc.UpdateLayout(context.Background(), layout.ID.String(), UpdateLayoutRequest{
		Name: "Main",
		Sections: []SectionDraft{
			{ID: &sec.ID, Name: "T1", Kind: KindTable, Floor: 1, SeatCount: 2},
		},
	})
	require.NoError(t, err)

	shrunk := updated.Sections[0]
	require.Len(t, shrunk.Seats, 2)
	assert.Equal(t, []string{"T1-A", "T1-B"}, shrunk.SeatLabels())
	assert.Equal(t, sec.Seats[0].ID, shrunk.Seats[0].ID)
}

func TestRenameSeats_RejectsDuplicateAcrossLayout(t *testing.T) {
	svc := NewService(newFakeRepository())
	layout, err := svc.CreateLayout(context.Background(), CreateLayoutRequest{
		Name: "Main",
		Sections: []SectionDraft{
			{Name: "T1", Kind: KindTable, Floor: 1, SeatCount: 2},
			{Name: "T2", Kind: KindTable, Floor: 1, SeatCount: 2},
		},
	})
	require.NoError(t, err)

	t2 := layout.Sections[1]
	err = svc.RenameSeats(context.Background(), t2.ID.String(), RenameSeatsRequest{
		Labels: map[string]string{t2.Seats[0].ID.String(): "T1-A"},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestGetActiveLayout_NotFound(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.GetActiveLayout(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteLayout_BlocksActive(t *testing.T) {
	svc := NewService(newFakeRepository())
	layout := createFixtureLayout(t, svc)

	require.NoError(t, svc.ActivateLayout(context.Background(), layout.ID.String()))

	err := svc.DeleteLayout(context.Background(), layout.ID.String())
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestFloors_GroupsByFloor(t *testing.T) {
	svc := NewService(newFakeRepository())
	layout, err := svc.CreateLayout(context.Background(), CreateLayoutRequest{
		Name: "Two Floors",
		Sections: []SectionDraft{
			{Name: "T1", Kind: KindTable, Floor: 1, SeatCount: 2},
			{Name: "T2", Kind: KindTable, Floor: 2, SeatCount: 2},
			{Name: "C1", Kind: KindCounter, Orientation: OrientationHorizontal, Floor: 1, SeatCount: 3},
		},
	})
	require.NoError(t, err)

	floors, err := svc.Floors(context.Background(), layout.ID.String())
	require.NoError(t, err)
	require.Len(t, floors, 2)

	assert.Equal(t, 1, floors[0].Floor)
	assert.Len(t, floors[0].Sections, 2)
	assert.Equal(t, 2, floors[1].Floor)
	assert.Len(t, floors[1].Sections, 1)
}
