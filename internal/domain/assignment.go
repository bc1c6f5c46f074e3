package domain

import "time"

// AssignmentValue is one candidate (and, once chosen, committed) triple for
// a variable. A full-day or consecutive-pair assignment implicitly
// occupies more than one slot; TimeslotIndex is always the first slot of
// that span (see catalog.Indexer.OccupiedSlots).
type AssignmentValue struct {
	TimeslotIndex int    `json:"timeslot_index"`
	RoomID        string `json:"room_id"`
	StaffID       string `json:"staff_id"`
}

// CSPResult is the terminal outcome of a solve.
type CSPResult struct {
	Success        bool                       `json:"success"`
	Assignments    map[string]AssignmentValue `json:"assignments,omitempty"`
	HardViolations int                        `json:"hard_violations,omitempty"`
	SoftCost       int                        `json:"soft_cost,omitempty"`
	SolveSeconds   float64                    `json:"solve_seconds"`
}

// NewFailedResult builds a failure CSPResult with the given violation
// count, used by both the empty-domain pre-check and DFS exhaustion.
func NewFailedResult(hardViolations int, elapsed time.Duration) CSPResult {
	return CSPResult{
		Success:        false,
		Assignments:    map[string]AssignmentValue{},
		HardViolations: hardViolations,
		SoftCost:       0,
		SolveSeconds:   elapsed.Seconds(),
	}
}
