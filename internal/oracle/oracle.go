// Package oracle implements the pure hard-conflict predicate between two
// committed assignments (spec.md §4.3). Grounded on
// original_source/solver/csp_solver.py's is_hard_conflict.
package oracle

import (
	"github.com/cs-faculty/timetable-csp/internal/catalog"
	"github.com/cs-faculty/timetable-csp/internal/domain"
)

// Conflicts reports whether assigning value `a` to variable `va` and
// value `b` to variable `vb` would violate a hard constraint: a course
// taught by two different professors across its own lecture sessions
// (checked regardless of slot overlap), or — when the occupied slots do
// overlap — a shared staff member, a shared room, a shared (year, group)
// cohort (except when both are distinct lab sections), or a shared
// (year, specialization) cohort.
func Conflicts(idx *catalog.Indexer, va domain.Variable, a domain.AssignmentValue, vb domain.Variable, b domain.AssignmentValue) bool {
	if courseProfessorConflict(va, a, vb, b) {
		return true
	}
	if !slotsOverlap(idx, va, a, vb, b) {
		return false
	}

	if a.StaffID != "" && a.StaffID == b.StaffID {
		return true
	}
	if a.RoomID != "" && a.RoomID == b.RoomID {
		return true
	}
	if cohortConflict(va, vb) {
		return true
	}
	if specializationConflict(va, vb) {
		return true
	}
	return false
}

func slotsOverlap(idx *catalog.Indexer, va domain.Variable, a domain.AssignmentValue, vb domain.Variable, b domain.AssignmentValue) bool {
	slotsA, ok := idx.OccupiedSlots(va, a.TimeslotIndex)
	if !ok {
		return false
	}
	slotsB, ok := idx.OccupiedSlots(vb, b.TimeslotIndex)
	if !ok {
		return false
	}
	setA := make(map[int]bool, len(slotsA))
	for _, s := range slotsA {
		setA[s] = true
	}
	for _, s := range slotsB {
		if setA[s] {
			return true
		}
	}
	return false
}

// cohortConflict reports a (year, group) collision, except between two
// distinct lab sections of the same group (different sections of a lab may
// run concurrently in different rooms).
func cohortConflict(va, vb domain.Variable) bool {
	if va.Year == 0 || vb.Year == 0 || va.Year != vb.Year || va.GroupID != vb.GroupID {
		return false
	}
	if va.GroupID == 0 {
		return false
	}
	bothLabSections := va.SessionType == domain.Lab && vb.SessionType == domain.Lab &&
		va.SectionID != 0 && vb.SectionID != 0 && va.SectionID != vb.SectionID
	return !bothLabSections
}

// specializationConflict reports a (year, specialization) collision for
// non-common specialization-scoped sessions that share no group (e.g. two
// specialization-wide lectures).
func specializationConflict(va, vb domain.Variable) bool {
	if va.Specialization == "" || vb.Specialization == "" {
		return false
	}
	if va.Specialization == domain.SpecializationCommon || vb.Specialization == domain.SpecializationCommon {
		return false
	}
	return va.Year == vb.Year && va.Specialization == vb.Specialization
}

// courseProfessorConflict enforces that every lecture session of the same
// course is taught by the same professor (spec.md §4.3 course-professor
// consistency), independent of whether their slots overlap.
func courseProfessorConflict(va domain.Variable, a domain.AssignmentValue, vb domain.Variable, b domain.AssignmentValue) bool {
	if va.SessionType != domain.Lecture || vb.SessionType != domain.Lecture {
		return false
	}
	if va.CourseID == "" || va.CourseID != vb.CourseID {
		return false
	}
	return a.StaffID != "" && b.StaffID != "" && a.StaffID != b.StaffID
}
