package cost

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cs-faculty/timetable-csp/internal/catalog"
	"github.com/cs-faculty/timetable-csp/internal/domain"
)

func TestComputeOnlyPenalizesEarliestSlot(t *testing.T) {
	input := domain.ScheduleInput{
		TimeSlots: []domain.TimeSlot{
			{ID: 0, Day: domain.Sunday, StartMin: 480, EndMin: 570},
			{ID: 1, Day: domain.Sunday, StartMin: 570, EndMin: 660},
			{ID: 2, Day: domain.Sunday, StartMin: 660, EndMin: 750},
		},
	}
	idx, _ := catalog.Build(input, nil)
	vars := []domain.Variable{{VarID: "v1", CourseID: "CSC111"}}

	require.Equal(t, 5, Compute(idx, vars, map[string]domain.AssignmentValue{"v1": {TimeslotIndex: 0}}))
	require.Equal(t, 0, Compute(idx, vars, map[string]domain.AssignmentValue{"v1": {TimeslotIndex: 1}}))
	require.Equal(t, 0, Compute(idx, vars, map[string]domain.AssignmentValue{"v1": {TimeslotIndex: 2}}))
}

func TestComputePenalizesSameCourseSameDayRepeat(t *testing.T) {
	input := domain.ScheduleInput{
		TimeSlots: []domain.TimeSlot{
			{ID: 0, Day: domain.Sunday, StartMin: 480, EndMin: 570},
			{ID: 1, Day: domain.Sunday, StartMin: 570, EndMin: 660},
		},
	}
	idx, _ := catalog.Build(input, nil)
	vars := []domain.Variable{
		{VarID: "v1", CourseID: "CSC111"},
		{VarID: "v2", CourseID: "CSC111"},
	}
	assignments := map[string]domain.AssignmentValue{
		"v1": {TimeslotIndex: 0},
		"v2": {TimeslotIndex: 1},
	}
	require.Equal(t, 5+2, Compute(idx, vars, assignments))
}

func TestComputeZeroForEmptyAssignments(t *testing.T) {
	idx, _ := catalog.Build(domain.ScheduleInput{}, nil)
	require.Equal(t, 0, Compute(idx, nil, nil))
}
