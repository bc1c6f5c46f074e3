package orchestrator

import (
	"fmt"
	"strconv"

	"github.com/cs-faculty/timetable-csp/internal/catalog"
	"github.com/cs-faculty/timetable-csp/internal/domain"
)

// ScheduleOutput is the wire format returned by both cmd/solve and the
// POST /solve API (spec.md §6), grounded byte-for-byte on
// original_source/gui/main_window.py's generate_json. Schedule is keyed by
// the bare year, then by a cohort tag: "G<n>" for years 1-2, the
// specialization tag (or "G1") for years 3-4.
type ScheduleOutput struct {
	Success  bool                            `json:"success"`
	Stats    *Stats                          `json:"stats,omitempty"`
	Schedule map[string]map[string][]Session `json:"schedule,omitempty"`
	Error    string                          `json:"error,omitempty"`
}

// Stats summarizes one solve for the exported viewer.
type Stats struct {
	TotalCourses  int     `json:"totalCourses"`
	TotalSessions int     `json:"totalSessions"`
	Violations    int     `json:"violations"`
	SolveTime     float64 `json:"solveTime"`
}

// Session is one rendered schedule entry.
type Session struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Day        string `json:"day"`
	Time       string `json:"time"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Instructor string `json:"instructor"`
	Room       string `json:"room"`
}

// minTo12Hour converts a minutes-since-midnight value into "hh:mmAM/PM",
// grounded on original_source/solver/csp_solver.py's min_to_12_hour.
func minTo12Hour(mins int) string {
	h := mins / 60
	m := mins % 60
	pm := h >= 12
	hh := h % 12
	if hh == 0 {
		hh = 12
	}
	suffix := "AM"
	if pm {
		suffix = "PM"
	}
	return fmt.Sprintf("%02d:%02d%s", hh, m, suffix)
}

// fullDayTimeRange is the fixed display window original_source hard-codes
// for an eight-slot graduation-project day.
const (
	fullDayStart = "09:00AM"
	fullDayEnd   = "03:45PM"
)

// RenderOutput turns a successful CSPResult into the wire format, grouping
// sessions by (year, cohort tag).
func RenderOutput(idx *catalog.Indexer, vars []domain.Variable, result domain.CSPResult) ScheduleOutput {
	totalCourses := 0
	for _, c := range idx.AllCourses() {
		if c.Year >= 1 && c.Year <= 4 {
			totalCourses++
		}
	}

	out := ScheduleOutput{
		Success: result.Success,
		Stats: &Stats{
			TotalCourses:  totalCourses,
			TotalSessions: len(vars),
			Violations:    result.HardViolations,
			SolveTime:     result.SolveSeconds,
		},
	}
	if !result.Success {
		return out
	}

	out.Schedule = make(map[string]map[string][]Session)

	for _, v := range vars {
		assignment, ok := result.Assignments[v.VarID]
		if !ok {
			continue
		}

		var startTime, endTime, timeStr, day string
		if v.IsFullDay {
			startTime, endTime = fullDayStart, fullDayEnd
			timeStr = fullDayStart + " - " + fullDayEnd
			day = idx.SlotDay(assignment.TimeslotIndex)
		} else {
			slots, slotsOK := idx.OccupiedSlots(v, assignment.TimeslotIndex)
			if !slotsOK || len(slots) == 0 {
				continue
			}
			firstSlot := idx.Slots()[slots[0]]
			lastSlot := idx.Slots()[slots[len(slots)-1]]
			startTime = minTo12Hour(firstSlot.StartMin)
			endTime = minTo12Hour(lastSlot.EndMin)
			timeStr = startTime + " - " + endTime
			day = firstSlot.Day
		}

		session := Session{
			Code:       v.CourseID,
			Name:       courseName(idx, v.CourseID),
			Type:       sessionTypeLabel(v),
			Day:        day,
			Time:       timeStr,
			StartTime:  startTime,
			EndTime:    endTime,
			Instructor: instructorLabel(idx, assignment.StaffID),
			Room:       roomLabel(idx, assignment.RoomID),
		}

		yearKey := strconv.Itoa(v.Year)
		cohortTag := cohortTagFor(v)

		if out.Schedule[yearKey] == nil {
			out.Schedule[yearKey] = make(map[string][]Session)
		}
		out.Schedule[yearKey][cohortTag] = append(out.Schedule[yearKey][cohortTag], session)
	}

	return out
}

// courseName resolves a course ID to its catalog name, falling back to the
// ID itself when the course is not found.
func courseName(idx *catalog.Indexer, courseID string) string {
	if c, ok := idx.Course(courseID); ok {
		return c.Name
	}
	return courseID
}

// instructorLabel resolves a staff ID to its catalog name, falling back to
// the ID when the staff member is unknown and to the literal "null" when no
// staff was assigned at all.
func instructorLabel(idx *catalog.Indexer, staffID string) string {
	if staffID == "" {
		return "null"
	}
	if s, ok := idx.Staff(staffID); ok {
		return s.Name
	}
	return staffID
}

// roomLabel renders "<room name> (<building>)", falling back to the room ID
// when the room is unknown.
func roomLabel(idx *catalog.Indexer, roomID string) string {
	r, ok := idx.Room(roomID)
	if !ok {
		return fmt.Sprintf("%s ()", roomID)
	}
	return fmt.Sprintf("%s (%s)", r.Name, r.Building)
}

// sessionTypeLabel renders the human-readable type tag original_source's
// exporter produces: a specialization or group label for lectures, a
// specialization/group/section label for labs (with a full-day suffix for
// graduation projects), and the bare session type for tutorials.
func sessionTypeLabel(v domain.Variable) string {
	switch v.SessionType {
	case domain.Lecture:
		if (v.Year == 3 || v.Year == 4) && v.Specialization != "" {
			return v.Specialization + " Lecture"
		}
		if v.SectionID > 0 && v.GroupID > 0 {
			return fmt.Sprintf("G%d Section %d", v.GroupID, v.SectionID)
		}
		return fmt.Sprintf("G%d Lecture", v.GroupID)
	case domain.Lab:
		label := "Lab"
		switch {
		case v.Specialization != "" && v.SectionID > 0:
			label = v.Specialization + " Lab"
		case v.GroupID > 0 && v.SectionID > 0:
			label = fmt.Sprintf("G%d S%d Lab", v.GroupID, v.SectionID)
		}
		if v.IsFullDay {
			label += " (Full Day)"
		}
		return label
	case domain.GradProject:
		return "Graduation Project (Full Day)"
	default:
		return string(v.SessionType)
	}
}

// cohortTagFor picks the grouping key for one variable per spec.md §6:
// "G<n>" for years 1-2, the specialization tag for years 3-4 (falling back
// to "G1" when the variable carries no specialization).
func cohortTagFor(v domain.Variable) string {
	if v.Year <= 2 {
		return fmt.Sprintf("G%d", v.GroupID)
	}
	if v.Specialization != "" {
		return v.Specialization
	}
	return "G1"
}
