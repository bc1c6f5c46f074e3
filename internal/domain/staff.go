package domain

// Role enumerates the staff roles the domain builder and conflict oracle
// reason about.
type Role string

const (
	RoleProfessor          Role = "Professor"
	RoleAssistantProfessor Role = "AssistantProfessor"
	RoleTA                 Role = "TA"
)

// Staff is an instructor or teaching assistant. QualifiedCourses is the
// ordered list of course IDs this person may teach, normally derived from
// an instructor-course join table; when that join is empty the catalog
// indexer falls back to parsing QualifiedCoursesRaw (spec.md §9).
type Staff struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Role                Role     `json:"role"`
	QualifiedCourses    []string `json:"qualified_courses,omitempty"`
	QualifiedCoursesRaw string   `json:"qualified_courses_raw,omitempty"`
}
