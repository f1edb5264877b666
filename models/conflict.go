package models

import "time"

// ConflictItem describes one conflicting booking or external event, reduced
// to what the caller needs for reporting.
type ConflictItem struct {
	ID      string    `json:"id,omitempty"`
	Summary string    `json:"summary"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// ConflictResult is the transient output of an overlap check.
type ConflictResult struct {
	HasConflict bool           `json:"hasConflict"`
	Items       []ConflictItem `json:"items,omitempty"`
}

// First returns the first conflicting item, or a zero value if none exist.
func (r ConflictResult) First() ConflictItem {
	if len(r.Items) == 0 {
		return ConflictItem{}
	}
	return r.Items[0]
}
