package layouts

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"seatly/internal/shared/constants"
	"seatly/internal/shared/utils/apperr"
	"seatly/pkg/cache"
	"seatly/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	CreateLayout(ctx context.Context, req CreateLayoutRequest) (*Layout, error)
	GetLayout(ctx context.Context, id string) (*Layout, error)
	GetActiveLayout(ctx context.Context) (*Layout, error)
	ListLayouts(ctx context.Context) ([]LayoutSummary, error)
	UpdateLayout(ctx context.Context, id string, req UpdateLayoutRequest) (*Layout, error)
	DeleteLayout(ctx context.Context, id string) error
	ActivateLayout(ctx context.Context, id string) error

	RenameSeats(ctx context.Context, sectionID string, req RenameSeatsRequest) error
	Floors(ctx context.Context, layoutID string) ([]FloorResponse, error)
	CanvasFor(ctx context.Context, layoutID string, floor int, mode string) (CanvasSize, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateLayout(ctx context.Context, req CreateLayoutRequest) (*Layout, error) {
	layout := &Layout{
		ID:      uuid.New(),
		Name:    req.Name,
		Version: 1,
	}

	sections, err := buildSections(req.Sections, nil)
	if err != nil {
		return nil, err
	}
	layout.Sections = sections

	if err := validateSeatLabels(layout); err != nil {
		return nil, err
	}

	if err := s.repo.CreateLayout(ctx, layout); err != nil {
		return nil, apperr.Transient("failed to create layout", err)
	}

	s.invalidateLayoutCaches(ctx, layout.ID.String())
	return layout, nil
}

func (s *service) GetLayout(ctx context.Context, id string) (*Layout, error) {
	layoutID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid layout ID: %s", id)
	}

	cacheKey := constants.BuildLayoutDetailKey(id)
	if s.cacheService != nil {
		var cached Layout
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	layout, err := s.repo.GetLayoutByID(ctx, layoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("layout not found")
		}
		return nil, apperr.Transient("failed to get layout", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, cacheKey, layout, constants.TTL_LAYOUT_DETAIL); err != nil {
			logger.GetDefault().Debug("failed to cache layout", "key", cacheKey, "error", err)
		}
	}

	return layout, nil
}

func (s *service) GetActiveLayout(ctx context.Context) (*Layout, error) {
	if s.cacheService != nil {
		var cached Layout
		if err := s.cacheService.Get(ctx, constants.CACHE_KEY_LAYOUT_ACTIVE, &cached); err == nil {
			return &cached, nil
		}
	}

	layout, err := s.repo.GetActiveLayout(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Renders as an empty call-to-action state, never a hard failure
			return nil, apperr.NotFound("no active layout")
		}
		return nil, apperr.Transient("failed to get active layout", err)
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, constants.CACHE_KEY_LAYOUT_ACTIVE, layout, constants.TTL_LAYOUT_ACTIVE); err != nil {
			logger.GetDefault().Debug("failed to cache active layout", "error", err)
		}
	}

	return layout, nil
}

func (s *service) ListLayouts(ctx context.Context) ([]LayoutSummary, error) {
	list, err := s.repo.ListLayouts(ctx)
	if err != nil {
		return nil, apperr.Transient("failed to list layouts", err)
	}

	summaries := make([]LayoutSummary, len(list))
	for i := range list {
		summaries[i] = list[i].ToSummary()
	}
	return summaries, nil
}

func (s *service) UpdateLayout(ctx context.Context, id string, req UpdateLayoutRequest) (*Layout, error) {
	layoutID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.Validation("invalid layout ID: %s", id)
	}

	existing, err := s.repo.GetLayoutByID(ctx, layoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("layout not found")
		}
		return nil, apperr.Transient("failed to get layout", err)
	}

	sections, err := buildSections(req.Sections, existing.Sections)
	if err != nil {
		return nil, err
	}

	updated := &Layout{
		ID:       layoutID,
		Name:     req.Name,
		Version:  existing.Version + 1,
		Active:   existing.Active,
		Sections: sections,
	}

	if err := validateSeatLabels(updated); err != nil {
		return nil, err
	}

	if err := s.repo.ReplaceLayoutTree(ctx, updated); err != nil {
		return nil, apperr.Transient("failed to save layout", err)
	}

	s.invalidateLayoutCaches(ctx, id)
	return updated, nil
}

func (s *service) DeleteLayout(ctx context.Context, id string) error {
	layoutID, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("invalid layout ID: %s", id)
	}

	layout, err := s.repo.GetLayoutByID(ctx, layoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("layout not found")
		}
		return apperr.Transient("failed to get layout", err)
	}
	if layout.Active {
		return apperr.Validation("cannot delete the active layout")
	}

	if err := s.repo.DeleteLayout(ctx, layoutID); err != nil {
		return apperr.Transient("failed to delete layout", err)
	}

	s.invalidateLayoutCaches(ctx, id)
	return nil
}

// ActivateLayout sets the restaurant's active-layout pointer. Saved
// drafts are not live until this explicit call.
func (s *service) ActivateLayout(ctx context.Context, id string) error {
	layoutID, err := uuid.Parse(id)
	if err != nil {
		return apperr.Validation("invalid layout ID: %s", id)
	}

	if err := s.repo.ActivateLayout(ctx, layoutID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("layout not found")
		}
		return apperr.Transient("failed to activate layout", err)
	}

	layout, err := s.repo.GetLayoutByID(ctx, layoutID)
	if err == nil {
		logger.GetDefault().LogLayoutActivated(ctx, id, layout.Version)
	}

	s.invalidateLayoutCaches(ctx, id)
	return nil
}

// RenameSeats is a bulk rename scoped to one section
func (s *service) RenameSeats(ctx context.Context, sectionID string, req RenameSeatsRequest) error {
	secID, err := uuid.Parse(sectionID)
	if err != nil {
		return apperr.Validation("invalid section ID: %s", sectionID)
	}

	section, err := s.repo.GetSectionByID(ctx, secID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("section not found")
		}
		return apperr.Transient("failed to get section", err)
	}

	labels := make(map[uuid.UUID]string, len(req.Labels))
	for idStr, label := range req.Labels {
		seatID, err := uuid.Parse(idStr)
		if err != nil {
			return apperr.Validation("invalid seat ID: %s", idStr)
		}
		if label == "" {
			return apperr.Validation("seat label cannot be empty")
		}
		labels[seatID] = label
	}

	// New labels must stay unique within the layout
	layout, err := s.repo.GetLayoutByID(ctx, section.LayoutID)
	if err != nil {
		return apperr.Transient("failed to get layout", err)
	}
	seen := make(map[string]bool)
	for _, sec := range layout.Sections {
		for _, seat := range sec.Seats {
			if renamed, ok := labels[seat.ID]; ok {
				if seen[renamed] {
					return apperr.Validation("duplicate seat label: %s", renamed)
				}
				seen[renamed] = true
				continue
			}
			if seen[seat.Label] {
				return apperr.Validation("duplicate seat label: %s", seat.Label)
			}
			seen[seat.Label] = true
		}
	}
	if err := s.repo.UpdateSeatLabels(ctx, secID, labels); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("seat not found in section")
		}
		return apperr.Transient("failed to rename seats", err)
	}

	s.invalidateLayoutCaches(ctx, section.LayoutID.String())
	return nil
}

// Floors returns the derived floor grouping with per-floor auto-fit
func (s *service) Floors(ctx context.Context, layoutID string) ([]FloorResponse, error) {
	layout, err := s.GetLayout(ctx, layoutID)
	if err != nil {
		return nil, err
	}

	grouped := FloorsOf(layout.Sections)
	numbers := make([]int, 0, len(grouped))
	for n := range grouped {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	floors := make([]FloorResponse, 0, len(numbers))
	for _, n := range numbers {
		floors = append(floors, FloorResponse{
			Floor:    n,
			Sections: grouped[n],
			AutoFit:  AutoFitBounds(layout.Sections, n),
		})
	}
	return floors, nil
}

func (s *service) CanvasFor(ctx context.Context, layoutID string, floor int, mode string) (CanvasSize, error) {
	layout, err := s.GetLayout(ctx, layoutID)
	if err != nil {
		return CanvasSize{}, err
	}
	return CanvasSizeFor(mode, layout.Sections, floor), nil
}

func (s *service) invalidateLayoutCaches(ctx context.Context, layoutID string) {
	if s.cacheService == nil {
		return
	}
	for _, key := range []string{
		constants.BuildLayoutDetailKey(layoutID),
		constants.CACHE_KEY_LAYOUT_ACTIVE,
		constants.CACHE_KEY_LAYOUT_LIST,
	} {
		if err := s.cacheService.Delete(ctx, key); err != nil {
			logger.GetDefault().Debug("failed to invalidate layout cache", "key", key, "error", err)
		}
	}
}

//  DRAFT RECONCILIATION

// buildSections turns authoring drafts into a persistable section tree,
// synthesizing geometry and reconciling against the previous revision.
func buildSections(drafts []SectionDraft, previous []Section) ([]Section, error) {
	prevByID := make(map[uuid.UUID]*Section, len(previous))
	for i := range previous {
		prevByID[previous[i].ID] = &previous[i]
	}

	sections := make([]Section, 0, len(drafts))
	for i, draft := range drafts {
		if !draft.Kind.IsValid() {
			return nil, apperr.Validation("invalid section kind: %s", draft.Kind)
		}
		orientation := draft.Orientation
		if orientation == "" {
			orientation = OrientationHorizontal
		}
		if !orientation.IsValid() {
			return nil, apperr.Validation("invalid orientation: %s", orientation)
		}
		if draft.Floor < 1 {
			return nil, apperr.Validation("floor must be at least 1")
		}

		sec := Section{
			Name:        draft.Name,
			Kind:        draft.Kind,
			Orientation: orientation,
			Floor:       draft.Floor,
			OffsetX:     draft.OffsetX,
			OffsetY:     draft.OffsetY,
			Position:    i,
		}
		if draft.ID != nil {
			sec.ID = *draft.ID
		} else {
			sec.ID = uuid.New()
		}

		var prevSeats []Seat
		if prev, ok := prevByID[sec.ID]; ok {
			prevSeats = prev.Seats
		}

		seats, err := reconcileSeats(&sec, draft, prevSeats)
		if err != nil {
			return nil, err
		}
		sec.Seats = seats
		sections = append(sections, sec)
	}

	return sections, nil
}

// reconcileSeats produces the section's seat list for a draft save.
// Geometry is always re-synthesized; identities and custom labels are
// preserved up to the previous count, and seats beyond it get generated
// labels. Labels past a shrunken count are discarded with the seats.
func reconcileSeats(sec *Section, draft SectionDraft, previous []Seat) ([]Seat, error) {
	count := draft.SeatCount
	if len(draft.Seats) > 0 {
		count = len(draft.Seats)
	}
	if count < 0 {
		return nil, apperr.Validation("seat count cannot be negative")
	}

	positions := SynthesizeSeatPositions(sec.Kind, count, sec.Orientation)
	seats := make([]Seat, 0, count)

	for i := 0; i < count; i++ {
		seat := Seat{
			SectionID: sec.ID,
			X:         positions[i].X,
			Y:         positions[i].Y,
			Capacity:  1,
			Position:  i,
		}

		switch {
		case i < len(draft.Seats):
			d := draft.Seats[i]
			if d.ID != nil {
				seat.ID = *d.ID
			} else {
				seat.ID = uuid.New()
			}
			seat.Label = d.Label
			if d.Capacity > 0 {
				seat.Capacity = d.Capacity
			}
		case i < len(previous):
			seat.ID = previous[i].ID
			seat.Label = previous[i].Label
			seat.Capacity = previous[i].Capacity
		default:
			seat.ID = uuid.New()
		}

		if seat.Label == "" {
			seat.Label = defaultSeatLabel(sec.Name, i)
		}
		if seat.Capacity < 1 {
			return nil, apperr.Validation("seat capacity must be at least 1")
		}
		seats = append(seats, seat)
	}

	return seats, nil
}

// defaultSeatLabel generates "T1-A" style labels, falling back to
// numbers past Z.
func defaultSeatLabel(sectionName string, index int) string {
	if index < 26 {
		return fmt.Sprintf("%s-%c", sectionName, 'A'+index)
	}
	return fmt.Sprintf("%s-%s", sectionName, strconv.Itoa(index+1))
}

// validateSeatLabels enforces layout-wide label uniqueness, which the
// preference matcher depends on.
func validateSeatLabels(layout *Layout) error {
	seen := make(map[string]bool)
	for _, sec := range layout.Sections {
		for _, seat := range sec.Seats {
			if seat.Label == "" {
				return apperr.Validation("seat label cannot be empty")
			}
			if seen[seat.Label] {
				return apperr.Validation("duplicate seat label: %s", seat.Label)
			}
			seen[seat.Label] = true
		}
	}
	return nil
}
