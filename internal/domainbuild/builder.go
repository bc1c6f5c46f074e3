// Package domainbuild enumerates the legal (time, room, staff) candidate
// triples for each session variable (spec.md §4.2). Grounded on
// original_source/solver/csp_solver.py's build_domains and
// original_source/timetable_generator.py's room/slot filtering.
package domainbuild

import (
	"github.com/cs-faculty/timetable-csp/internal/catalog"
	"github.com/cs-faculty/timetable-csp/internal/domain"
)

// rosterIndex speeds up the capacity-floor check: (year, group, section,
// specialization) -> student count. A roster entry with SectionID 0
// represents the whole group.
type rosterIndex map[rosterKey]int

type rosterKey struct {
	year      int
	groupID   int
	sectionID int
	spec      string
}

func buildRosterIndex(cohorts []domain.CohortRoster) rosterIndex {
	idx := make(rosterIndex, len(cohorts))
	for _, r := range cohorts {
		idx[rosterKey{r.Year, r.GroupID, r.SectionID, r.Specialization}] = r.StudentCount
	}
	return idx
}

func (ri rosterIndex) studentCount(v domain.Variable) (int, bool) {
	if count, ok := ri[rosterKey{v.Year, v.GroupID, v.SectionID, v.Specialization}]; ok {
		return count, true
	}
	if v.SectionID != 0 {
		if count, ok := ri[rosterKey{v.Year, v.GroupID, 0, v.Specialization}]; ok {
			return count, true
		}
	}
	return 0, false
}

// Build constructs a Problem from the already-generated variable list: for
// each variable it enumerates every (timeslot, room, staff) triple that
// passes the slot-length, room-type, capacity, and staff-qualification
// rules of spec.md §4.2. A variable with no legal candidates yields an
// empty domain entry; the caller (the orchestrator) is responsible for
// treating that as an immediate infeasibility per invariant 1.
func Build(input domain.ScheduleInput, vars []domain.Variable, idx *catalog.Indexer) domain.Problem {
	roster := buildRosterIndex(input.Cohorts)

	domains := make([][]domain.AssignmentValue, len(vars))
	for i, v := range vars {
		domains[i] = candidatesFor(v, idx, roster)
	}

	return domain.Problem{
		Input:     input,
		Variables: vars,
		Domains:   domains,
	}
}

func candidatesFor(v domain.Variable, idx *catalog.Indexer, roster rosterIndex) []domain.AssignmentValue {
	rooms := roomsFor(v, idx, roster)
	staffIDs := staffFor(v, idx)
	if len(rooms) == 0 || len(staffIDs) == 0 {
		return nil
	}

	var out []domain.AssignmentValue
	for i, slot := range idx.Slots() {
		if _, ok := idx.OccupiedSlots(v, i); !ok {
			continue
		}
		if v.LengthMin > 0 && !v.IsFullDay && !v.RequiresConsecutivePair && slot.DurationMin() < v.LengthMin {
			continue
		}
		for _, room := range rooms {
			for _, staffID := range staffIDs {
				out = append(out, domain.AssignmentValue{
					TimeslotIndex: i,
					RoomID:        room.ID,
					StaffID:       staffID,
				})
			}
		}
	}
	return out
}

// roomsFor applies the room-type rule (LAB sessions land in a Lab or
// Classroom, everything else — lecture, tutorial, and grad-project —
// avoids Lab rooms entirely) and the capacity floor derived from the
// cohort roster, when one is available. A physics-lab course is pinned to
// a physics-marked room; every other course is barred from physics-only
// rooms, symmetrically.
func roomsFor(v domain.Variable, idx *catalog.Indexer, roster rosterIndex) []domain.Room {
	needsPhysicsLab := v.SessionType == domain.Lab && v.CourseID != "" && courseIsPhysics(v, idx)
	minCapacity, hasCapacity := roster.studentCount(v)

	var out []domain.Room
	for _, room := range idx.AllRooms() {
		if hasCapacity && room.Capacity < minCapacity {
			continue
		}
		if needsPhysicsLab {
			if !room.IsPhysicsLab() {
				continue
			}
		} else if room.IsPhysicsLab() {
			continue
		}
		switch v.SessionType {
		case domain.Lab:
			if room.Type != domain.RoomLab && room.Type != domain.RoomClassroom {
				continue
			}
		default:
			if room.Type == domain.RoomLab {
				continue
			}
		}
		out = append(out, room)
	}
	return out
}

// courseIsPhysics reports whether the variable's course is a physics
// course by its catalog ID prefix, mirroring the original generator's
// PHY-prefixed course naming convention.
func courseIsPhysics(v domain.Variable, idx *catalog.Indexer) bool {
	c, ok := idx.Course(v.CourseID)
	if !ok {
		return false
	}
	return len(c.ID) >= 3 && c.ID[:3] == "PHY"
}

// staffFor applies the role/qualification rule: a lecture or full-day
// graduation project needs a qualified Professor, falling back to any
// Professor when none is qualified; a lab or tutorial needs a qualified
// teaching assistant or assistant professor, falling back the same way
// (spec.md §4.2, original_source/solver/csp_solver.py's instructor
// fallback chain).
func staffFor(v domain.Variable, idx *catalog.Indexer) []string {
	switch v.SessionType {
	case domain.Lecture, domain.GradProject:
		return staffWithFallback(v, idx, domain.RoleProfessor)
	default:
		if staff := qualifiedAnyOf(v, idx, domain.RoleTA, domain.RoleAssistantProfessor); len(staff) > 0 {
			return staff
		}
		return roleAnyOf(idx, domain.RoleTA, domain.RoleAssistantProfessor)
	}
}

func staffWithFallback(v domain.Variable, idx *catalog.Indexer, role domain.Role) []string {
	if qualified := idx.QualifiedStaff(v.CourseID, role); len(qualified) > 0 {
		return qualified
	}
	return idx.StaffByRole(role)
}

func qualifiedAnyOf(v domain.Variable, idx *catalog.Indexer, roles ...domain.Role) []string {
	var out []string
	for _, role := range roles {
		out = append(out, idx.QualifiedStaff(v.CourseID, role)...)
	}
	return out
}

func roleAnyOf(idx *catalog.Indexer, roles ...domain.Role) []string {
	var out []string
	for _, role := range roles {
		out = append(out, idx.StaffByRole(role)...)
	}
	return out
}
