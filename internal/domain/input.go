package domain

// InstructorCourseJoin links a staff member to a course they may teach. An
// empty slice of joins triggers the catalog indexer's qualification-string
// fallback parser (spec.md §9).
type InstructorCourseJoin struct {
	StaffID  string `json:"staff_id"`
	CourseID string `json:"course_id"`
}

// CohortRoster optionally supplies student counts per (year, group,
// section, specialization), used by the domain builder's capacity floor
// check. A zero-value roster (no entries) disables the capacity filter.
type CohortRoster struct {
	Year           int    `json:"year"`
	GroupID        int    `json:"group_id,omitempty"`
	SectionID      int    `json:"section_id,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	StudentCount   int    `json:"student_count,omitempty"`
}

// ScheduleInput bundles everything the orchestrator needs to build a
// Problem. All slices are read-only for the lifetime of a solve.
type ScheduleInput struct {
	Courses      []Course               `json:"courses" validate:"required,dive"`
	Staff        []Staff                `json:"staff" validate:"required,dive"`
	StaffCourses []InstructorCourseJoin `json:"staff_courses,omitempty" validate:"dive"`
	Rooms        []Room                 `json:"rooms" validate:"required,dive"`
	TimeSlots    []TimeSlot             `json:"time_slots" validate:"required,dive"`
	Cohorts      []CohortRoster         `json:"cohorts,omitempty" validate:"dive"`

	// UseRichGenerator selects the second (group/section granularity,
	// tutorial-aware) variable generator variant of spec.md §4.1 instead
	// of the whitelist-driven simple variant.
	UseRichGenerator bool `json:"use_rich_generator,omitempty"`
}
