package variable

// WhitelistConfig supplies the fixed per-year course whitelists and the
// Japanese-language course set that govern which courses emit lecture
// variables (spec.md §4.1). Grounded on
// original_source/solver/csp_solver.py's year1/year2/year3/japanese_languages
// literals, externalized here as configuration per spec.md's "provided as
// configuration" instruction.
type WhitelistConfig struct {
	Year1                  []string
	Year2                  []string
	Year3                  []string
	JapaneseLanguageCourses []string
}

// DefaultWhitelistConfig reproduces the original scheduler's literal
// whitelists, usable as-is or as a starting point for a different faculty.
func DefaultWhitelistConfig() WhitelistConfig {
	return WhitelistConfig{
		Year1: []string{"LRA401", "CSC111", "MTH111", "PHY113", "ECE111", "LRA101", "LRA104", "LRA105"},
		Year2: []string{"MTH212", "ACM215", "LRA403", "CSC211", "CNC111", "CSC114", "CSE214", "LRA306"},
		Year3: []string{"AID311", "AID312", "BIF311", "CNC311", "CNC312", "CNC314", "CSC314", "CSC317", "ECE324"},
		JapaneseLanguageCourses: []string{"LRA401", "LRA403"},
	}
}

func (c WhitelistConfig) whitelistFor(year int) []string {
	switch year {
	case 1:
		return c.Year1
	case 2:
		return c.Year2
	case 3:
		return c.Year3
	default:
		return nil
	}
}

func contains(list []string, needle string) bool {
	for _, v := range list {
		if v == needle {
			return true
		}
	}
	return false
}

func (c WhitelistConfig) isJapanese(courseID string) bool {
	return contains(c.JapaneseLanguageCourses, courseID)
}
