package variable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cs-faculty/timetable-csp/internal/domain"
)

func TestGenerateSimpleSkipsNonWhitelistedCourse(t *testing.T) {
	input := domain.ScheduleInput{
		Courses: []domain.Course{{ID: "ZZZ999", Year: 1}},
	}
	vars := GenerateSimple(input, DefaultWhitelistConfig())
	require.Empty(t, vars)
}

func TestGenerateSimpleYear1JapaneseExplodesNine(t *testing.T) {
	input := domain.ScheduleInput{
		Courses: []domain.Course{{ID: "LRA401", Year: 1}},
	}
	vars := GenerateSimple(input, DefaultWhitelistConfig())
	require.Len(t, vars, 9)
	seen := map[string]bool{}
	for _, v := range vars {
		require.Equal(t, domain.Lecture, v.SessionType)
		seen[v.VarID] = true
	}
	require.Len(t, seen, 9)
}

func TestGenerateSimpleYear1NonJapaneseExplodesThree(t *testing.T) {
	input := domain.ScheduleInput{
		Courses: []domain.Course{{ID: "CSC111", Year: 1}},
	}
	vars := GenerateSimple(input, DefaultWhitelistConfig())
	require.Len(t, vars, 3)
}

func TestGenerateSimpleYear3CommonSpecializationExplodesToClosedSet(t *testing.T) {
	input := domain.ScheduleInput{
		Courses: []domain.Course{{ID: "AID311", Year: 3}},
	}
	vars := GenerateSimple(input, DefaultWhitelistConfig())
	require.Len(t, vars, len(domain.ClosedSpecializations))
}

func TestGenerateSimpleYear3SpecificSpecializationStaysSingle(t *testing.T) {
	input := domain.ScheduleInput{
		Courses: []domain.Course{{ID: "AID311", Year: 3, Specialization: "AID"}},
	}
	vars := GenerateSimple(input, DefaultWhitelistConfig())
	require.Len(t, vars, 1)
	require.Equal(t, "AID", vars[0].Specialization)
}

func TestGenerateSimpleGradProjectProducesFullDayLab(t *testing.T) {
	input := domain.ScheduleInput{
		Courses: []domain.Course{{ID: "CSC413", Year: 4, IsGradProject: true, Specialization: "CSC"}},
	}
	vars := GenerateSimple(input, DefaultWhitelistConfig())
	require.Len(t, vars, 1)
	require.Equal(t, domain.Lab, vars[0].SessionType)
	require.True(t, vars[0].IsFullDay)
}

func TestGenerateSimpleVarIDsAreUnique(t *testing.T) {
	input := domain.ScheduleInput{
		Courses: []domain.Course{
			{ID: "LRA401", Year: 1},
			{ID: "CSC111", Year: 1, HasLab: true},
			{ID: "AID311", Year: 3, Specialization: "AID"},
		},
	}
	vars := GenerateSimple(input, DefaultWhitelistConfig())
	seen := map[string]bool{}
	for _, v := range vars {
		require.False(t, seen[v.VarID], "duplicate var id %s", v.VarID)
		seen[v.VarID] = true
	}
}

func TestGenerateRichLectureAtGroupGranularity(t *testing.T) {
	input := domain.ScheduleInput{
		Courses: []domain.Course{{ID: "CSC201", Year: 2, LecCount: 2, LecDuration: 2}},
		Cohorts: []domain.CohortRoster{
			{Year: 2, GroupID: 1}, {Year: 2, GroupID: 2},
		},
	}
	vars := GenerateRich(input)
	require.Len(t, vars, 4)
	for _, v := range vars {
		require.Equal(t, domain.Lecture, v.SessionType)
		require.Equal(t, 90, v.LengthMin)
	}
}

func TestGenerateRichLectureFiltersGroupsBySpecialization(t *testing.T) {
	input := domain.ScheduleInput{
		Courses: []domain.Course{{ID: "AID311", Year: 3, Specialization: "AID", LecCount: 1}},
		Cohorts: []domain.CohortRoster{
			{Year: 3, GroupID: 1, Specialization: "AID"},
			{Year: 3, GroupID: 2, Specialization: "Security"},
		},
	}
	vars := GenerateRich(input)
	require.Len(t, vars, 1)
	require.Equal(t, 1, vars[0].GroupID)
}

func TestGenerateRichTutorialRequiresPairWhenDoubled(t *testing.T) {
	input := domain.ScheduleInput{
		Courses: []domain.Course{{ID: "CSC201", Year: 2, TutCount: 1, TutDuration: 2}},
		Cohorts: []domain.CohortRoster{
			{Year: 2, GroupID: 1, SectionID: 1},
		},
	}
	vars := GenerateRich(input)
	require.Len(t, vars, 1)
	require.True(t, vars[0].RequiresConsecutivePair)
}

func TestGenerateRichGradProjectFullDayAtGroupGranularity(t *testing.T) {
	input := domain.ScheduleInput{
		Courses: []domain.Course{{ID: "CSC413", Year: 4, IsGradProject: true}},
		Cohorts: []domain.CohortRoster{
			{Year: 4, GroupID: 1},
		},
	}
	vars := GenerateRich(input)
	require.Len(t, vars, 1)
	require.True(t, vars[0].IsFullDay)
	require.Equal(t, domain.GradProject, vars[0].SessionType)
}

func TestGenerateRichVarIDsAreUnique(t *testing.T) {
	input := domain.ScheduleInput{
		Courses: []domain.Course{
			{ID: "CSC201", Year: 2, LecCount: 1, TutCount: 1, LabCount: 1},
		},
		Cohorts: []domain.CohortRoster{
			{Year: 2, GroupID: 1, SectionID: 1},
			{Year: 2, GroupID: 1, SectionID: 2},
		},
	}
	vars := GenerateRich(input)
	seen := map[string]bool{}
	for _, v := range vars {
		require.False(t, seen[v.VarID], "duplicate var id %s", v.VarID)
		seen[v.VarID] = true
	}
}
