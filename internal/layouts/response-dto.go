package layouts

// LayoutSummary is the list-view shape
type LayoutSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version int    `json:"version"`
	Active  bool   `json:"active"`
}

func (l *Layout) ToSummary() LayoutSummary {
	return LayoutSummary{
		ID:      l.ID.String(),
		Name:    l.Name,
		Version: l.Version,
		Active:  l.Active,
	}
}

// FloorResponse groups a layout's sections for one derived floor
type FloorResponse struct {
	Floor    int       `json:"floor"`
	Sections []Section `json:"sections"`
	AutoFit  Bounds    `json:"auto_fit"`
}
