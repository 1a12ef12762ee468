package entities

import "sort"

// Warning codes for conditions that degrade an estimate without failing the run
const (
	WarnUnknownLocation     = "unknown_location"
	WarnUnknownZone         = "unknown_zone"
	WarnMissingGeometry     = "missing_geometry"
	WarnLocationNotInLayout = "location_not_in_layout"
	WarnDroppedRow          = "dropped_row"
	WarnAdvisoryFallback    = "advisory_fallback"
)

// Warning represents an estimation fallback recorded during a run
type Warning struct {
	Code    string `json:"code"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// SortWarnings orders warnings by code then subject so results are reproducible
func SortWarnings(warnings []Warning) {
	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Code != warnings[j].Code {
			return warnings[i].Code < warnings[j].Code
		}
		return warnings[i].Subject < warnings[j].Subject
	})
}
