// Package cost computes the reported-but-not-minimized soft cost of a
// completed assignment (spec.md §4.3 soft cost). Grounded on
// original_source/solver/csp_solver.py's compute_soft_cost.
package cost

import (
	"github.com/cs-faculty/timetable-csp/internal/catalog"
	"github.com/cs-faculty/timetable-csp/internal/domain"
)

const (
	earliestStartPenalty      = 5
	sameCourseSameDayPenalty  = 2
)

// Compute sums the earliest-start penalty (earliestStartPenalty for every
// session that lands in the first slot of its day) and the
// same-course-same-day-repeat penalty (sameCourseSameDayPenalty for every
// session of a course that lands on a day after the first session of that
// course on the same day).
func Compute(idx *catalog.Indexer, vars []domain.Variable, assignments map[string]domain.AssignmentValue) int {
	total := 0

	positionInDay := make(map[int]int)
	for _, day := range domain.Weekdays {
		for pos, slotIdx := range idx.DaySlots(day) {
			positionInDay[slotIdx] = pos
		}
	}

	courseDayCount := make(map[string]int)

	for _, v := range vars {
		a, ok := assignments[v.VarID]
		if !ok {
			continue
		}
		day := idx.SlotDay(a.TimeslotIndex)
		if positionInDay[a.TimeslotIndex] == 0 {
			total += earliestStartPenalty
		}

		if v.CourseID == "" {
			continue
		}
		key := v.CourseID + "|" + day
		courseDayCount[key]++
		if courseDayCount[key] > 1 {
			total += sameCourseSameDayPenalty
		}
	}

	return total
}
