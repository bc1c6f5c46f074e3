package variable

import (
	"fmt"
	"sort"

	"github.com/cs-faculty/timetable-csp/internal/domain"
)

// groupKey identifies one (year, group, specialization) cohort; sectionKey
// adds the section dimension.
type groupKey struct {
	year           int
	groupID        int
	specialization string
}

type sectionKey struct {
	groupKey
	sectionID int
}

// GenerateRich implements the richer catalog variant of spec.md §4.1:
// lecture variables at group granularity for a course's LecCount sessions,
// tutorial variables at section granularity for TutCount sessions (doubled
// tutorials require a consecutive-slot pair), lab variables at section
// granularity (group granularity for a WholeGroupLab course), and
// graduation-project variables at group granularity occupying eight
// consecutive intra-day slots. Grounded on
// original_source/timetable_generator.py.
func GenerateRich(input domain.ScheduleInput) []domain.Variable {
	groups, sections := cohortsByCourse(input.Cohorts)

	var vars []domain.Variable
	for _, c := range input.Courses {
		if c.Year < 1 || c.Year > 4 {
			continue
		}

		matchingGroups := matchingGroupKeys(groups, c)
		matchingSections := matchingSectionKeys(sections, c)

		if c.IsGradProject {
			for _, gk := range matchingGroups {
				vars = append(vars, domain.Variable{
					VarID:       fmt.Sprintf("%s_Y%d_G%d_GRAD", c.ID, gk.year, gk.groupID),
					CourseID:    c.ID,
					Year:        gk.year,
					GroupID:     gk.groupID,
					SessionType: domain.GradProject,
					LengthMin:   domain.FullDaySlotCount * 45,
					IsFullDay:   true,
				})
			}
			continue
		}

		if c.LecCount > 0 {
			for _, gk := range matchingGroups {
				for n := 1; n <= c.LecCount; n++ {
					vars = append(vars, domain.Variable{
						VarID:       fmt.Sprintf("%s_Y%d_G%d_LEC%d", c.ID, gk.year, gk.groupID, n),
						CourseID:    c.ID,
						Year:        gk.year,
						GroupID:     gk.groupID,
						SessionType: domain.Lecture,
						LengthMin:   lengthFor(c.LecDuration, 90),
					})
				}
			}
		}

		if c.TutCount > 0 {
			doubled := c.TutDuration > 1
			for _, sk := range matchingSections {
				for n := 1; n <= c.TutCount; n++ {
					vars = append(vars, domain.Variable{
						VarID:                   fmt.Sprintf("%s_Y%d_G%d_S%d_TUT%d", c.ID, sk.year, sk.groupID, sk.sectionID, n),
						CourseID:                c.ID,
						Year:                    sk.year,
						GroupID:                 sk.groupID,
						SectionID:               sk.sectionID,
						SessionType:             domain.Tutorial,
						LengthMin:               lengthFor(c.TutDuration, 45),
						RequiresConsecutivePair: doubled,
					})
				}
			}
		}

		if c.LabCount > 0 {
			if c.WholeGroupLab {
				for _, gk := range matchingGroups {
					for n := 1; n <= c.LabCount; n++ {
						vars = append(vars, domain.Variable{
							VarID:                   fmt.Sprintf("%s_Y%d_G%d_LAB%d", c.ID, gk.year, gk.groupID, n),
							CourseID:                c.ID,
							Year:                    gk.year,
							GroupID:                 gk.groupID,
							SessionType:             domain.Lab,
							LengthMin:               lengthFor(c.LabDuration, 90),
							RequiresConsecutivePair: true,
						})
					}
				}
			} else {
				for _, sk := range matchingSections {
					for n := 1; n <= c.LabCount; n++ {
						vars = append(vars, domain.Variable{
							VarID:                   fmt.Sprintf("%s_Y%d_G%d_S%d_LAB%d", c.ID, sk.year, sk.groupID, sk.sectionID, n),
							CourseID:                c.ID,
							Year:                    sk.year,
							GroupID:                 sk.groupID,
							SectionID:               sk.sectionID,
							SessionType:             domain.Lab,
							LengthMin:               lengthFor(c.LabDuration, 90),
							RequiresConsecutivePair: true,
						})
					}
				}
			}
		}
	}

	return vars
}

func lengthFor(raw, fallback int) int {
	if raw <= 0 {
		return fallback
	}
	return raw * 45
}

// normalizedSpec treats an empty specialization as the shared "Common"
// cohort, mirroring domain.Course.EffectiveSpecialization so a course and a
// roster entry agree on what "no specialization" means.
func normalizedSpec(spec string) string {
	if spec == "" {
		return domain.SpecializationCommon
	}
	return spec
}

func cohortsByCourse(rosters []domain.CohortRoster) (map[int][]groupKey, map[int][]sectionKey) {
	groupsByYear := make(map[int]map[groupKey]bool)
	sectionsByYear := make(map[int]map[sectionKey]bool)

	for _, r := range rosters {
		if groupsByYear[r.Year] == nil {
			groupsByYear[r.Year] = make(map[groupKey]bool)
		}
		if sectionsByYear[r.Year] == nil {
			sectionsByYear[r.Year] = make(map[sectionKey]bool)
		}
		gk := groupKey{year: r.Year, groupID: r.GroupID, specialization: normalizedSpec(r.Specialization)}
		groupsByYear[r.Year][gk] = true
		if r.SectionID > 0 {
			sectionsByYear[r.Year][sectionKey{groupKey: gk, sectionID: r.SectionID}] = true
		}
	}

	groups := make(map[int][]groupKey, len(groupsByYear))
	for year, set := range groupsByYear {
		for gk := range set {
			groups[year] = append(groups[year], gk)
		}
		sort.Slice(groups[year], func(i, j int) bool { return groups[year][i].groupID < groups[year][j].groupID })
	}

	sections := make(map[int][]sectionKey, len(sectionsByYear))
	for year, set := range sectionsByYear {
		for sk := range set {
			sections[year] = append(sections[year], sk)
		}
		sort.Slice(sections[year], func(i, j int) bool {
			if sections[year][i].groupID != sections[year][j].groupID {
				return sections[year][i].groupID < sections[year][j].groupID
			}
			return sections[year][i].sectionID < sections[year][j].sectionID
		})
	}

	return groups, sections
}

// matchingGroupKeys returns the groups of the course's year that also share
// its effective specialization (spec.md §4.1: lecture variables are
// generated over all groups matching the course's (year, specialization)).
func matchingGroupKeys(groups map[int][]groupKey, c domain.Course) []groupKey {
	spec := c.EffectiveSpecialization()
	var out []groupKey
	for _, gk := range groups[c.Year] {
		if gk.specialization == spec {
			out = append(out, gk)
		}
	}
	return out
}

func matchingSectionKeys(sections map[int][]sectionKey, c domain.Course) []sectionKey {
	spec := c.EffectiveSpecialization()
	var out []sectionKey
	for _, sk := range sections[c.Year] {
		if sk.specialization == spec {
			out = append(out, sk)
		}
	}
	return out
}
