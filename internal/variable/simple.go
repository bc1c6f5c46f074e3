// Package variable derives the ordered list of session variables from the
// course catalog and cohort rules (spec.md §4.1). GenerateSimple implements
// the whitelist-driven variant grounded on
// original_source/solver/csp_solver.py's build_lecture_variables; GenerateRich
// implements the richer group/section/tutorial-aware variant grounded on
// original_source/timetable_generator.py.
package variable

import (
	"fmt"

	"github.com/cs-faculty/timetable-csp/internal/domain"
)

// GenerateSimple produces the exact variable set of spec.md §4.1's first
// table: whitelist-gated lecture variables plus lab variables for courses
// with HasLab or IsGradProject. All lecture variables come first, then all
// lab variables, each in the iteration order of input.Courses.
func GenerateSimple(input domain.ScheduleInput, cfg WhitelistConfig) []domain.Variable {
	var vars []domain.Variable

	for _, c := range input.Courses {
		if c.Year < 1 || c.Year > 4 || c.IsGradProject {
			continue
		}
		if wl := cfg.whitelistFor(c.Year); wl != nil && !contains(wl, c.ID) {
			continue
		}

		vars = append(vars, lectureVariables(c, cfg)...)
	}

	for _, c := range input.Courses {
		if c.Year < 1 || c.Year > 4 {
			continue
		}
		if !c.HasLab && !c.IsGradProject {
			continue
		}
		vars = append(vars, labVariables(c)...)
	}

	return vars
}

func lectureVariables(c domain.Course, cfg WhitelistConfig) []domain.Variable {
	year := c.Year
	if year == 3 || year == 4 {
		spec := c.Specialization
		if spec == "" || spec == domain.SpecializationCommon {
			out := make([]domain.Variable, 0, len(domain.ClosedSpecializations))
			for _, s := range domain.ClosedSpecializations {
				out = append(out, domain.Variable{
					VarID:          fmt.Sprintf("%s_Y%d_%s_LEC", c.ID, year, s),
					CourseID:       c.ID,
					Year:           year,
					Specialization: s,
					SessionType:    domain.Lecture,
					LengthMin:      90,
				})
			}
			return out
		}
		return []domain.Variable{{
			VarID:          fmt.Sprintf("%s_Y%d_%s_LEC", c.ID, year, spec),
			CourseID:       c.ID,
			Year:           year,
			Specialization: spec,
			SessionType:    domain.Lecture,
			LengthMin:      90,
		}}
	}

	if cfg.isJapanese(c.ID) {
		out := make([]domain.Variable, 0, 9)
		for grp := 1; grp <= 3; grp++ {
			for sec := 1; sec <= 3; sec++ {
				out = append(out, domain.Variable{
					VarID:       fmt.Sprintf("%s_Y%d_G%d_S%d", c.ID, year, grp, sec),
					CourseID:    c.ID,
					Year:        year,
					GroupID:     grp,
					SectionID:   sec,
					SessionType: domain.Lecture,
					LengthMin:   90,
				})
			}
		}
		return out
	}

	out := make([]domain.Variable, 0, 3)
	for grp := 1; grp <= 3; grp++ {
		out = append(out, domain.Variable{
			VarID:       fmt.Sprintf("%s_Y%d_G%d_LEC", c.ID, year, grp),
			CourseID:    c.ID,
			Year:        year,
			GroupID:     grp,
			SessionType: domain.Lecture,
			LengthMin:   90,
		})
	}
	return out
}

func labVariables(c domain.Course) []domain.Variable {
	year := c.Year
	fullDay := c.IsGradProject

	if year == 1 || year == 2 {
		out := make([]domain.Variable, 0, 9)
		for grp := 1; grp <= 3; grp++ {
			for sec := 1; sec <= 3; sec++ {
				out = append(out, domain.Variable{
					VarID:       fmt.Sprintf("%s_Y%d_G%d_S%d_LAB", c.ID, year, grp, sec),
					CourseID:    c.ID,
					Year:        year,
					GroupID:     grp,
					SectionID:   sec,
					SessionType: domain.Lab,
					LengthMin:   90,
					IsFullDay:   fullDay,
				})
			}
		}
		return out
	}

	spec := c.Specialization
	if spec == "" || spec == domain.SpecializationCommon {
		out := make([]domain.Variable, 0, len(domain.ClosedSpecializations))
		for _, s := range domain.ClosedSpecializations {
			out = append(out, domain.Variable{
				VarID:          fmt.Sprintf("%s_Y%d_%s_S1_LAB", c.ID, year, s),
				CourseID:       c.ID,
				Year:           year,
				SectionID:      1,
				Specialization: s,
				SessionType:    domain.Lab,
				LengthMin:      90,
				IsFullDay:      fullDay,
			})
		}
		return out
	}
	return []domain.Variable{{
		VarID:          fmt.Sprintf("%s_Y%d_%s_S1_LAB", c.ID, year, spec),
		CourseID:       c.ID,
		Year:           year,
		SectionID:      1,
		Specialization: spec,
		SessionType:    domain.Lab,
		LengthMin:      90,
		IsFullDay:      fullDay,
	}}
}
