package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cs-faculty/timetable-csp/internal/domain"
	"github.com/cs-faculty/timetable-csp/pkg/config"
)

func smallInput() domain.ScheduleInput {
	return domain.ScheduleInput{
		Courses: []domain.Course{{ID: "CSC111", Year: 1}},
		Staff: []domain.Staff{
			{ID: "p1", Role: domain.RoleProfessor, QualifiedCoursesRaw: "CSC111"},
		},
		Rooms: []domain.Room{
			{ID: "R1", Type: domain.RoomClassroom, Capacity: 40},
		},
		TimeSlots: []domain.TimeSlot{
			{ID: 0, Day: domain.Sunday, StartMin: 480, EndMin: 570},
			{ID: 1, Day: domain.Sunday, StartMin: 570, EndMin: 660},
			{ID: 2, Day: domain.Sunday, StartMin: 660, EndMin: 750},
		},
	}
}

func TestSolveSucceedsOnTrivialInput(t *testing.T) {
	o := New(config.SolverConfig{PreferForwardCh: true}, nil, nil, nil)
	result, err := o.Solve(context.Background(), smallInput())
	require.NoError(t, err)
	require.True(t, result.Output.Success)
	require.NotEmpty(t, result.RunID)
}

func TestSolveRejectsEmptyInput(t *testing.T) {
	o := New(config.SolverConfig{}, nil, nil, nil)
	_, err := o.Solve(context.Background(), domain.ScheduleInput{})
	require.Error(t, err)
}

func TestSolveAsyncReportsProgressAndResult(t *testing.T) {
	o := New(config.SolverConfig{PreferForwardCh: true}, nil, nil, nil)
	progressCh, errCh, doneCh := o.SolveAsync(context.Background(), smallInput())

	var sawProgress bool
	for range progressCh {
		sawProgress = true
	}
	require.True(t, sawProgress)

	select {
	case err := <-errCh:
		require.NoError(t, err)
	default:
	}

	result := <-doneCh
	require.True(t, result.Output.Success)
}
