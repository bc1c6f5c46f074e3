package solver

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cs-faculty/timetable-csp/internal/catalog"
	"github.com/cs-faculty/timetable-csp/internal/domain"
	"github.com/cs-faculty/timetable-csp/internal/oracle"
)

// literal identifies one boolean decision variable: "session variable
// varIndex takes candIndex, the candIndex-th entry of its domain".
type literal struct {
	varIndex  int
	candIndex int
}

// clause is a disjunction of literals that must NOT all be simultaneously
// false when positive, expressed here as a set of (literal, negated) pairs.
// Every clause this encoding produces is either an exactly-one clause (all
// positive) or a pairwise at-most-one clause (both negated), so a simple
// pair representation suffices without a general SAT clause type.
type clause struct {
	lits    []literal
	negated []bool
}

// Propagate implements the alternative formulation of spec.md §4.5: one
// boolean decision variable per (session variable, candidate) pair, an
// exactly-one clause per session variable, and a pairwise at-most-one
// clause for every pair of candidates the conflict oracle rules out. It is
// solved with unit propagation and chronological backtracking (a small
// DPLL loop), since the pack carries no CP-SAT binding to reuse directly.
func Propagate(ctx context.Context, idx *catalog.Indexer, problem domain.Problem, logger *zap.Logger) (domain.CSPResult, Stats) {
	start := time.Now()
	if logger == nil {
		logger = zap.NewNop()
	}

	if id, empty := problem.EmptyDomainVarID(); empty {
		logger.Warn("empty domain at build time", zap.String("var_id", id))
		return domain.NewFailedResult(1, time.Since(start)), Stats{}
	}

	enc := buildEncoding(idx, problem)
	assignment := make([]int8, len(enc.literals)) // -1 unset, 0 false, 1 true
	for i := range assignment {
		assignment[i] = -1
	}

	stats := Stats{}
	ok := dpll(ctx, enc, assignment, &stats)
	elapsed := time.Since(start)

	if !ok {
		return domain.NewFailedResult(1, elapsed), stats
	}

	assignments := make(map[string]domain.AssignmentValue, len(problem.Variables))
	for litIdx, lit := range enc.literals {
		if assignment[litIdx] == 1 {
			v := problem.Variables[lit.varIndex]
			assignments[v.VarID] = problem.Domains[lit.varIndex][lit.candIndex]
		}
	}

	return domain.CSPResult{
		Success:      true,
		Assignments:  assignments,
		SolveSeconds: elapsed.Seconds(),
	}, stats
}

type encoding struct {
	literals   []literal
	litIndex   map[literal]int
	clauses    []clause
	byVarFirst map[int]int // varIndex -> first literal index for that variable, for exactly-one
	byVarCount map[int]int
}

func buildEncoding(idx *catalog.Indexer, problem domain.Problem) *encoding {
	enc := &encoding{
		litIndex:   make(map[literal]int),
		byVarFirst: make(map[int]int),
		byVarCount: make(map[int]int),
	}

	for i, candidates := range problem.Domains {
		enc.byVarFirst[i] = len(enc.literals)
		enc.byVarCount[i] = len(candidates)
		for k := range candidates {
			lit := literal{varIndex: i, candIndex: k}
			enc.litIndex[lit] = len(enc.literals)
			enc.literals = append(enc.literals, lit)
		}

		// exactly-one: at least one candidate true, plus pairwise
		// at-most-one.
		atLeastOne := clause{}
		for k := range candidates {
			atLeastOne.lits = append(atLeastOne.lits, literal{i, k})
			atLeastOne.negated = append(atLeastOne.negated, false)
		}
		enc.clauses = append(enc.clauses, atLeastOne)

		for a := 0; a < len(candidates); a++ {
			for b := a + 1; b < len(candidates); b++ {
				enc.clauses = append(enc.clauses, clause{
					lits:    []literal{{i, a}, {i, b}},
					negated: []bool{true, true},
				})
			}
		}
	}

	for i := range problem.Domains {
		for j := i + 1; j < len(problem.Domains); j++ {
			for a, candA := range problem.Domains[i] {
				for b, candB := range problem.Domains[j] {
					if oracle.Conflicts(idx, problem.Variables[i], candA, problem.Variables[j], candB) {
						enc.clauses = append(enc.clauses, clause{
							lits:    []literal{{i, a}, {j, b}},
							negated: []bool{true, true},
						})
					}
				}
			}
		}
	}

	return enc
}

// dpll performs chronological backtracking search with full unit
// propagation at each node. Variables are branched in literal order, one
// session variable's candidates at a time.
func dpll(ctx context.Context, enc *encoding, assignment []int8, stats *Stats) bool {
	select {
	case <-ctx.Done():
		return false
	default:
	}

	trail, ok := propagateUnits(enc, assignment)
	if !ok {
		undoTrail(assignment, trail)
		return false
	}

	next, found := nextUnassigned(enc, assignment)
	if !found {
		return true
	}

	stats.NodesExplored++
	for _, value := range [2]int8{1, 0} {
		assignment[next] = value
		if dpll(ctx, enc, assignment, stats) {
			return true
		}
		assignment[next] = -1
		stats.Backtracks++
	}

	undoTrail(assignment, trail)
	return false
}

// propagateUnits repeatedly finds clauses with exactly one unassigned
// literal and forces it, until fixpoint or a contradiction. It returns the
// trail of literal indices it assigned, for the caller to undo.
func propagateUnits(enc *encoding, assignment []int8) ([]int, bool) {
	var trail []int
	changed := true
	for changed {
		changed = false
		for _, c := range enc.clauses {
			unassignedIdx := -1
			unassignedCount := 0
			satisfied := false
			for i, lit := range c.lits {
				litIdx := enc.litIndex[lit]
				val := assignment[litIdx]
				if val == -1 {
					unassignedCount++
					unassignedIdx = i
					continue
				}
				truthy := val == 1
				if c.negated[i] {
					truthy = val == 0
				}
				if truthy {
					satisfied = true
				}
			}
			if satisfied {
				continue
			}
			if unassignedCount == 0 {
				return trail, false
			}
			if unassignedCount == 1 {
				lit := c.lits[unassignedIdx]
				litIdx := enc.litIndex[lit]
				forced := int8(1)
				if c.negated[unassignedIdx] {
					forced = 0
				}
				assignment[litIdx] = forced
				trail = append(trail, litIdx)
				changed = true
			}
		}
	}
	return trail, true
}

func undoTrail(assignment []int8, trail []int) {
	for _, idx := range trail {
		assignment[idx] = -1
	}
}

func nextUnassigned(enc *encoding, assignment []int8) (int, bool) {
	for i := range assignment {
		if assignment[i] == -1 {
			return i, true
		}
	}
	return 0, false
}
