// Package catalog builds the lookup tables the variable generator and
// domain builder need: course→id, course→qualified-staff (with a
// comma-delimited fallback parse), slot→day, day→slot-list, and the
// consecutive-slot relation. Grounded on
// original_source/solver/csp_solver.py's course_to_instructors build loop
// and its fallback parser.
package catalog

import (
	"strings"

	"go.uber.org/zap"

	"github.com/cs-faculty/timetable-csp/internal/domain"
)

// Indexer holds the read-only lookup tables derived from a ScheduleInput.
// It is built once per solve and never mutated afterward.
type Indexer struct {
	input domain.ScheduleInput

	coursesByID map[string]domain.Course
	staffByID   map[string]domain.Staff
	roomsByID   map[string]domain.Room

	// courseToStaff maps a course ID to the staff IDs qualified to teach
	// it, irrespective of role; QualifiedStaff filters by role.
	courseToStaff map[string][]string

	slots        []domain.TimeSlot
	daySlots     map[string][]int // day -> ordered slot indices
	slotToDay    map[int]string
	consecutive  map[int]int // slot index -> index of the slot immediately following it on the same day, or -1
}

// Build constructs an Indexer from the given input. usedFallback reports
// whether the qualification-string fallback parser was invoked (the
// instructor-course join table was empty).
func Build(input domain.ScheduleInput, logger *zap.Logger) (*Indexer, bool) {
	if logger == nil {
		logger = zap.NewNop()
	}

	idx := &Indexer{
		input:         input,
		coursesByID:   make(map[string]domain.Course, len(input.Courses)),
		staffByID:     make(map[string]domain.Staff, len(input.Staff)),
		roomsByID:     make(map[string]domain.Room, len(input.Rooms)),
		courseToStaff: make(map[string][]string),
		slots:         input.TimeSlots,
		daySlots:      make(map[string][]int),
		slotToDay:     make(map[int]string),
		consecutive:   make(map[int]int),
	}

	for _, c := range input.Courses {
		idx.coursesByID[c.ID] = c
	}
	for _, s := range input.Staff {
		idx.staffByID[s.ID] = s
	}
	for _, r := range input.Rooms {
		idx.roomsByID[r.ID] = r
	}

	usedFallback := false
	if len(input.StaffCourses) > 0 {
		for _, join := range input.StaffCourses {
			idx.courseToStaff[join.CourseID] = append(idx.courseToStaff[join.CourseID], join.StaffID)
		}
	} else {
		usedFallback = true
		logger.Warn("instructor-course join table empty, falling back to qualification-string parse")
		for _, s := range input.Staff {
			for _, courseID := range parseQualifiedCourses(s.QualifiedCoursesRaw) {
				idx.courseToStaff[courseID] = append(idx.courseToStaff[courseID], s.ID)
			}
			for _, courseID := range s.QualifiedCourses {
				idx.courseToStaff[courseID] = append(idx.courseToStaff[courseID], s.ID)
			}
		}
	}

	for i, slot := range input.TimeSlots {
		idx.daySlots[slot.Day] = append(idx.daySlots[slot.Day], i)
		idx.slotToDay[i] = slot.Day
	}
	for _, ordered := range idx.daySlots {
		for pos, slotIdx := range ordered {
			idx.consecutive[slotIdx] = -1
			if pos+1 < len(ordered) {
				next := ordered[pos+1]
				if input.TimeSlots[slotIdx].ConsecutiveWith(input.TimeSlots[next]) {
					idx.consecutive[slotIdx] = next
				}
			}
		}
	}

	return idx, usedFallback
}

// parseQualifiedCourses splits a comma-delimited qualification string,
// trimming whitespace and ignoring empty tokens. Data-recovery path only,
// not exercised on well-formed input (spec.md §9).
func parseQualifiedCourses(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Course looks up a course by ID.
func (idx *Indexer) Course(id string) (domain.Course, bool) {
	c, ok := idx.coursesByID[id]
	return c, ok
}

// Staff looks up a staff member by ID.
func (idx *Indexer) Staff(id string) (domain.Staff, bool) {
	s, ok := idx.staffByID[id]
	return s, ok
}

// Room looks up a room by ID.
func (idx *Indexer) Room(id string) (domain.Room, bool) {
	r, ok := idx.roomsByID[id]
	return r, ok
}

// AllStaff returns every staff record, in input order.
func (idx *Indexer) AllStaff() []domain.Staff {
	out := make([]domain.Staff, 0, len(idx.staffByID))
	for _, s := range idx.input.Staff {
		out = append(out, s)
	}
	return out
}

// AllCourses returns every course record, in input order.
func (idx *Indexer) AllCourses() []domain.Course {
	out := make([]domain.Course, 0, len(idx.coursesByID))
	for _, c := range idx.input.Courses {
		out = append(out, c)
	}
	return out
}

// AllRooms returns every room record, in input order.
func (idx *Indexer) AllRooms() []domain.Room {
	out := make([]domain.Room, 0, len(idx.roomsByID))
	for _, r := range idx.input.Rooms {
		out = append(out, r)
	}
	return out
}

// QualifiedStaff returns the staff IDs qualified for courseID matching
// role.
func (idx *Indexer) QualifiedStaff(courseID string, role domain.Role) []string {
	var out []string
	for _, staffID := range idx.courseToStaff[courseID] {
		s, ok := idx.staffByID[staffID]
		if ok && s.Role == role {
			out = append(out, staffID)
		}
	}
	return out
}

// StaffByRole returns every staff ID with the given role, regardless of
// qualification — the fallback used when no qualified staff exists.
func (idx *Indexer) StaffByRole(role domain.Role) []string {
	var out []string
	for _, s := range idx.staffByID {
		if s.Role == role {
			out = append(out, s.ID)
		}
	}
	return out
}

// Slots returns the full ordered slot list.
func (idx *Indexer) Slots() []domain.TimeSlot {
	return idx.slots
}

// SlotDay returns the day of the slot at index i.
func (idx *Indexer) SlotDay(i int) string {
	return idx.slotToDay[i]
}

// DaySlots returns the ordered slot indices for a given day.
func (idx *Indexer) DaySlots(day string) []int {
	return idx.daySlots[day]
}

// NextConsecutive returns the index of the slot immediately following slot
// i on the same day, or -1 if none exists.
func (idx *Indexer) NextConsecutive(i int) int {
	if next, ok := idx.consecutive[i]; ok {
		return next
	}
	return -1
}

// ConsecutiveChain returns true and the slot index chain of length n
// starting at i if i begins a run of n consecutive slots on the same day.
func (idx *Indexer) ConsecutiveChain(i, n int) ([]int, bool) {
	chain := make([]int, 0, n)
	cur := i
	for len(chain) < n {
		if cur == -1 {
			return nil, false
		}
		chain = append(chain, cur)
		if len(chain) == n {
			break
		}
		cur = idx.NextConsecutive(cur)
	}
	return chain, len(chain) == n
}

// OccupiedSlots returns the full set of slot indices a variable occupies
// once assigned to start at timeslotIndex: a single slot normally, a
// consecutive pair when the variable requires one, or the eight-slot
// full-day chain for a graduation project. ok is false if the required
// chain does not exist starting at timeslotIndex.
func (idx *Indexer) OccupiedSlots(v domain.Variable, timeslotIndex int) ([]int, bool) {
	switch {
	case v.IsFullDay:
		return idx.ConsecutiveChain(timeslotIndex, domain.FullDaySlotCount)
	case v.RequiresConsecutivePair:
		return idx.ConsecutiveChain(timeslotIndex, 2)
	default:
		return []int{timeslotIndex}, true
	}
}
