package domain

// Problem is the built-but-unsolved CSP instance returned by build(): the
// ordered variable list plus each variable's legal domain, alongside the
// read-only entity tables the solver needs for lookups (rooms, staff,
// slots). Variables and domains are discarded when the solve ends; the
// input catalog is read-only and may be shared across concurrent solves.
type Problem struct {
	Input     ScheduleInput
	Variables []Variable
	// Domains parallels Variables by index: Domains[i] holds the legal
	// candidates for Variables[i] at build time. An empty Domains[i]
	// marks the problem infeasible per invariant 1.
	Domains [][]AssignmentValue
}

// EmptyDomainVarID returns the VarID of the first variable with an empty
// domain, and ok=true, or ("", false) if every variable has candidates.
func (p Problem) EmptyDomainVarID() (string, bool) {
	for i, v := range p.Variables {
		if len(p.Domains[i]) == 0 {
			return v.VarID, true
		}
	}
	return "", false
}
