package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cs-faculty/timetable-csp/internal/domain"
)

func sampleInput() domain.ScheduleInput {
	return domain.ScheduleInput{
		Courses: []domain.Course{{ID: "CSC111", Year: 1}},
		Staff: []domain.Staff{
			{ID: "p1", Role: domain.RoleProfessor, QualifiedCoursesRaw: "CSC111, MTH111"},
			{ID: "p2", Role: domain.RoleProfessor},
		},
		Rooms: []domain.Room{{ID: "R1", Type: domain.RoomClassroom}},
		TimeSlots: []domain.TimeSlot{
			{ID: 0, Day: domain.Sunday, StartMin: 480, EndMin: 570},
			{ID: 1, Day: domain.Sunday, StartMin: 570, EndMin: 660},
			{ID: 2, Day: domain.Monday, StartMin: 480, EndMin: 570},
		},
	}
}

func TestBuildFallbackParsesQualifications(t *testing.T) {
	idx, usedFallback := Build(sampleInput(), nil)
	require.True(t, usedFallback)
	require.ElementsMatch(t, []string{"p1"}, idx.QualifiedStaff("CSC111", domain.RoleProfessor))
	require.Empty(t, idx.QualifiedStaff("PHY113", domain.RoleProfessor))
}

func TestBuildPrefersJoinTableOverFallback(t *testing.T) {
	input := sampleInput()
	input.StaffCourses = []domain.InstructorCourseJoin{{StaffID: "p2", CourseID: "CSC111"}}
	idx, usedFallback := Build(input, nil)
	require.False(t, usedFallback)
	require.ElementsMatch(t, []string{"p2"}, idx.QualifiedStaff("CSC111", domain.RoleProfessor))
}

func TestConsecutiveSlotRelation(t *testing.T) {
	idx, _ := Build(sampleInput(), nil)
	require.Equal(t, 1, idx.NextConsecutive(0))
	require.Equal(t, -1, idx.NextConsecutive(1))
	require.Equal(t, -1, idx.NextConsecutive(2))

	chain, ok := idx.ConsecutiveChain(0, 2)
	require.True(t, ok)
	require.Equal(t, []int{0, 1}, chain)

	_, ok = idx.ConsecutiveChain(0, 3)
	require.False(t, ok)
}

func TestDaySlotsOrdering(t *testing.T) {
	idx, _ := Build(sampleInput(), nil)
	require.Equal(t, []int{0, 1}, idx.DaySlots(domain.Sunday))
	require.Equal(t, []int{2}, idx.DaySlots(domain.Monday))
}
