package reservations

import (
	"seatly/internal/allocations"
)

// PreferenceOption is one ranked preference evaluated against a day's
// occupancy snapshot. An option is assignable only when it names at
// least one seat and every named seat is currently free; there is no
// partial assignment and no automatic fallback to a lower rank.
type PreferenceOption struct {
	Rank        int      `json:"rank"`
	Labels      []string `json:"labels"`
	Assignable  bool     `json:"assignable"`
	TakenLabels []string `json:"taken_labels,omitempty"`
	Reason      string   `json:"reason,omitempty"`
}

// EvaluatePreferences grades each ranked label list against the
// snapshot. A label that does not resolve to a seat in the active
// layout counts as taken; absence is never availability.
func EvaluatePreferences(prefs SeatPreferences, snapshot *allocations.Snapshot) []PreferenceOption {
	options := make([]PreferenceOption, 0, len(prefs))
	for rank, labels := range prefs {
		option := PreferenceOption{Rank: rank, Labels: labels}

		if len(labels) == 0 {
			option.Reason = "no seats listed"
			options = append(options, option)
			continue
		}

		for _, label := range labels {
			if !snapshot.IsLabelFree(label) {
				option.TakenLabels = append(option.TakenLabels, label)
			}
		}

		if len(option.TakenLabels) == 0 {
			option.Assignable = true
		} else {
			option.Reason = "some seats taken"
		}

		options = append(options, option)
	}
	return options
}
