package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cs-faculty/timetable-csp/internal/catalog"
	"github.com/cs-faculty/timetable-csp/internal/domain"
)

func trivialProblem(idx *catalog.Indexer) domain.Problem {
	v := domain.Variable{VarID: "V1", CourseID: "CSC111", Year: 1, SessionType: domain.Lecture}
	return domain.Problem{
		Variables: []domain.Variable{v},
		Domains: [][]domain.AssignmentValue{
			{{TimeslotIndex: 0, RoomID: "R1", StaffID: "p1"}},
		},
	}
}

func newTestIndexer(t *testing.T) *catalog.Indexer {
	t.Helper()
	input := domain.ScheduleInput{
		TimeSlots: []domain.TimeSlot{
			{ID: 0, Day: domain.Sunday, StartMin: 480, EndMin: 570},
			{ID: 1, Day: domain.Sunday, StartMin: 570, EndMin: 660},
		},
	}
	idx, _ := catalog.Build(input, nil)
	return idx
}

func TestBacktrackTrivialFeasible(t *testing.T) {
	idx := newTestIndexer(t)
	result, _ := Backtrack(context.Background(), idx, trivialProblem(idx), Options{PreferForwardChecking: true})
	require.True(t, result.Success)
	require.Equal(t, "R1", result.Assignments["V1"].RoomID)
}

func TestBacktrackRoomContentionForcesDifferentSlot(t *testing.T) {
	idx := newTestIndexer(t)
	va := domain.Variable{VarID: "A", SessionType: domain.Lecture}
	vb := domain.Variable{VarID: "B", SessionType: domain.Lecture}
	problem := domain.Problem{
		Variables: []domain.Variable{va, vb},
		Domains: [][]domain.AssignmentValue{
			{{TimeslotIndex: 0, RoomID: "R1", StaffID: "p1"}},
			{{TimeslotIndex: 0, RoomID: "R1", StaffID: "p2"}, {TimeslotIndex: 1, RoomID: "R1", StaffID: "p2"}},
		},
	}
	result, _ := Backtrack(context.Background(), idx, problem, Options{PreferForwardChecking: true})
	require.True(t, result.Success)
	require.Equal(t, 1, result.Assignments["B"].TimeslotIndex)
}

func TestBacktrackLabSectionsSplitConcurrently(t *testing.T) {
	idx := newTestIndexer(t)
	va := domain.Variable{VarID: "LabA", Year: 1, GroupID: 1, SectionID: 1, SessionType: domain.Lab}
	vb := domain.Variable{VarID: "LabB", Year: 1, GroupID: 1, SectionID: 2, SessionType: domain.Lab}
	problem := domain.Problem{
		Variables: []domain.Variable{va, vb},
		Domains: [][]domain.AssignmentValue{
			{{TimeslotIndex: 0, RoomID: "L1", StaffID: "ta1"}},
			{{TimeslotIndex: 0, RoomID: "L2", StaffID: "ta2"}},
		},
	}
	result, _ := Backtrack(context.Background(), idx, problem, Options{PreferForwardChecking: true})
	require.True(t, result.Success)
}

func TestBacktrackGradProjectFullDay(t *testing.T) {
	input := domain.ScheduleInput{
		TimeSlots: make([]domain.TimeSlot, 0, 8),
	}
	for i := 0; i < 8; i++ {
		input.TimeSlots = append(input.TimeSlots, domain.TimeSlot{
			ID: i, Day: domain.Sunday, StartMin: 480 + i*45, EndMin: 480 + (i+1)*45,
		})
	}
	idx, _ := catalog.Build(input, nil)

	v := domain.Variable{VarID: "Grad", SessionType: domain.GradProject, IsFullDay: true}
	problem := domain.Problem{
		Variables: []domain.Variable{v},
		Domains: [][]domain.AssignmentValue{
			{{TimeslotIndex: 0, RoomID: "L1", StaffID: "p1"}},
		},
	}
	result, _ := Backtrack(context.Background(), idx, problem, Options{})
	require.True(t, result.Success)
}

func TestBacktrackCourseProfessorConsistencyRejectsSplit(t *testing.T) {
	idx := newTestIndexer(t)
	va := domain.Variable{VarID: "Lec1", CourseID: "CSC111", SessionType: domain.Lecture}
	vb := domain.Variable{VarID: "Lec2", CourseID: "CSC111", SessionType: domain.Lecture}
	problem := domain.Problem{
		Variables: []domain.Variable{va, vb},
		Domains: [][]domain.AssignmentValue{
			{{TimeslotIndex: 0, RoomID: "R1", StaffID: "p1"}},
			{{TimeslotIndex: 1, RoomID: "R1", StaffID: "p2"}},
		},
	}
	result, _ := Backtrack(context.Background(), idx, problem, Options{PreferForwardChecking: true})
	require.False(t, result.Success)
}

func TestBacktrackEmptyDomainFailsImmediately(t *testing.T) {
	idx := newTestIndexer(t)
	v := domain.Variable{VarID: "V1"}
	problem := domain.Problem{
		Variables: []domain.Variable{v},
		Domains:   [][]domain.AssignmentValue{nil},
	}
	result, _ := Backtrack(context.Background(), idx, problem, Options{})
	require.False(t, result.Success)
	require.Equal(t, 1, result.HardViolations)
}

func TestBacktrackIsDeterministicAcrossRuns(t *testing.T) {
	idx := newTestIndexer(t)
	problem := trivialProblem(idx)
	r1, _ := Backtrack(context.Background(), idx, problem, Options{PreferForwardChecking: true})
	r2, _ := Backtrack(context.Background(), idx, problem, Options{PreferForwardChecking: true})
	require.Equal(t, r1.Assignments, r2.Assignments)
}

func TestBacktrackMonotoneInfeasibilityOnEmptyDomain(t *testing.T) {
	idx := newTestIndexer(t)
	problem := trivialProblem(idx)
	problem.Domains = append(problem.Domains, nil)
	problem.Variables = append(problem.Variables, domain.Variable{VarID: "V2"})
	result, _ := Backtrack(context.Background(), idx, problem, Options{PreferForwardChecking: true})
	require.False(t, result.Success)
}

func TestPropagateAgreesWithBacktrackOnTrivialProblem(t *testing.T) {
	idx := newTestIndexer(t)
	problem := trivialProblem(idx)
	btResult, _ := Backtrack(context.Background(), idx, problem, Options{PreferForwardChecking: true})
	propResult, _ := Propagate(context.Background(), idx, problem, nil)
	require.Equal(t, btResult.Success, propResult.Success)
	require.Equal(t, btResult.Assignments, propResult.Assignments)
}

func TestBacktrackRespectsCancellation(t *testing.T) {
	idx := newTestIndexer(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)
	result, _ := Backtrack(ctx, idx, trivialProblem(idx), Options{PreferForwardChecking: true})
	require.False(t, result.Success)
}

func TestPropagateRoomContentionForcesDifferentSlot(t *testing.T) {
	idx := newTestIndexer(t)
	va := domain.Variable{VarID: "A", SessionType: domain.Lecture}
	vb := domain.Variable{VarID: "B", SessionType: domain.Lecture}
	problem := domain.Problem{
		Variables: []domain.Variable{va, vb},
		Domains: [][]domain.AssignmentValue{
			{{TimeslotIndex: 0, RoomID: "R1", StaffID: "p1"}},
			{{TimeslotIndex: 0, RoomID: "R1", StaffID: "p2"}, {TimeslotIndex: 1, RoomID: "R1", StaffID: "p2"}},
		},
	}
	result, _ := Propagate(context.Background(), idx, problem, nil)
	require.True(t, result.Success)
	require.Equal(t, 1, result.Assignments["B"].TimeslotIndex)
}
