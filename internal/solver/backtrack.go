// Package solver implements the backtracking search over a built Problem
// (spec.md §4.4), plus an alternative Boolean propagation formulation
// (spec.md §4.5). Grounded on
// original_source/solver/csp_solver.py's backtrack_search (MRV + forward
// checking, undo log).
package solver

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cs-faculty/timetable-csp/internal/catalog"
	"github.com/cs-faculty/timetable-csp/internal/domain"
	"github.com/cs-faculty/timetable-csp/internal/oracle"
)

// Options tunes the search. PreferForwardChecking selects forward checking
// (prune neighboring domains on each assignment) over plain chronological
// backtracking, which only checks each candidate against the variables
// already assigned.
type Options struct {
	PreferForwardChecking bool
	Logger                *zap.Logger
}

// Stats reports search effort alongside the result, used by pkg/metrics.
type Stats struct {
	NodesExplored int
	Backtracks    int
}

// removal records one domain-value elimination so it can be undone when
// the search backtracks past the assignment that caused it.
type removal struct {
	varIndex   int
	value      domain.AssignmentValue
}

type state struct {
	idx       *catalog.Indexer
	vars      []domain.Variable
	domains   [][]domain.AssignmentValue
	assigned  []bool
	values    []domain.AssignmentValue
	opts      Options
	stats     Stats
	logger    *zap.Logger
}

// Backtrack runs the MRV + forward-checking search described in spec.md
// §4.4. It returns a CSPResult and search Stats. The search checks ctx for
// cancellation once per recursive call.
func Backtrack(ctx context.Context, idx *catalog.Indexer, problem domain.Problem, opts Options) (domain.CSPResult, Stats) {
	start := time.Now()
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if id, empty := problem.EmptyDomainVarID(); empty {
		logger.Warn("empty domain at build time", zap.String("var_id", id))
		return domain.NewFailedResult(1, time.Since(start)), Stats{}
	}

	domains := make([][]domain.AssignmentValue, len(problem.Domains))
	for i, d := range problem.Domains {
		domains[i] = append([]domain.AssignmentValue(nil), d...)
	}

	st := &state{
		idx:      idx,
		vars:     problem.Variables,
		domains:  domains,
		assigned: make([]bool, len(problem.Variables)),
		values:   make([]domain.AssignmentValue, len(problem.Variables)),
		opts:     opts,
		logger:   logger,
	}

	ok, err := st.search(ctx)
	elapsed := time.Since(start)

	if err != nil {
		logger.Warn("solve cancelled", zap.Error(err))
		return domain.NewFailedResult(0, elapsed), st.stats
	}
	if !ok {
		return domain.NewFailedResult(1, elapsed), st.stats
	}

	assignments := make(map[string]domain.AssignmentValue, len(st.vars))
	for i, v := range st.vars {
		assignments[v.VarID] = st.values[i]
	}
	return domain.CSPResult{
		Success:      true,
		Assignments:  assignments,
		SolveSeconds: elapsed.Seconds(),
	}, st.stats
}

// search finds the next unassigned variable by MRV, tries each of its
// remaining candidate values, and recurses. It returns an error only when
// ctx is cancelled, in which case the partial state must be discarded by
// the caller.
func (st *state) search(ctx context.Context) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	varIdx, ok := st.selectUnassignedMRV()
	if !ok {
		return true, nil
	}

	st.stats.NodesExplored++
	candidates := st.domains[varIdx]

	for _, candidate := range candidates {
		if !st.consistentWithAssigned(varIdx, candidate) {
			continue
		}

		st.assigned[varIdx] = true
		st.values[varIdx] = candidate

		var removed []removal
		pruneOK := true
		if st.opts.PreferForwardChecking {
			removed, pruneOK = st.forwardCheck(varIdx, candidate)
		}

		if pruneOK {
			found, err := st.search(ctx)
			if err != nil {
				st.undo(removed)
				st.assigned[varIdx] = false
				return false, err
			}
			if found {
				return true, nil
			}
		}

		st.undo(removed)
		st.assigned[varIdx] = false
		st.stats.Backtracks++
	}

	return false, nil
}

// selectUnassignedMRV returns the index of the unassigned variable with
// the fewest remaining candidates (minimum-remaining-values heuristic),
// breaking ties by variable order.
func (st *state) selectUnassignedMRV() (int, bool) {
	best := -1
	bestSize := -1
	for i, assigned := range st.assigned {
		if assigned {
			continue
		}
		size := len(st.domains[i])
		if best == -1 || size < bestSize {
			best = i
			bestSize = size
		}
	}
	return best, best != -1
}

// consistentWithAssigned reports whether assigning candidate to varIdx
// conflicts with any already-committed variable. Always run, independent
// of forward checking, since forward checking only prunes domains of
// variables not yet visited in this branch.
func (st *state) consistentWithAssigned(varIdx int, candidate domain.AssignmentValue) bool {
	for i, assigned := range st.assigned {
		if !assigned || i == varIdx {
			continue
		}
		if oracle.Conflicts(st.idx, st.vars[varIdx], candidate, st.vars[i], st.values[i]) {
			return false
		}
	}
	return true
}

// forwardCheck removes, from every unassigned variable's domain, every
// candidate that would conflict with the just-made assignment. It reports
// false if any unassigned variable's domain becomes empty as a result.
func (st *state) forwardCheck(varIdx int, candidate domain.AssignmentValue) ([]removal, bool) {
	var removed []removal
	ok := true

	for j, assigned := range st.assigned {
		if assigned || j == varIdx {
			continue
		}
		kept := st.domains[j][:0:0]
		for _, cand := range st.domains[j] {
			if oracle.Conflicts(st.idx, st.vars[varIdx], candidate, st.vars[j], cand) {
				removed = append(removed, removal{varIndex: j, value: cand})
				continue
			}
			kept = append(kept, cand)
		}
		st.domains[j] = kept
		if len(kept) == 0 {
			ok = false
		}
	}

	return removed, ok
}

// undo restores every value removed by a forward-checking pass, in
// reverse order, so unrelated domains are unaffected by a failed branch.
func (st *state) undo(removed []removal) {
	for i := len(removed) - 1; i >= 0; i-- {
		r := removed[i]
		st.domains[r.varIndex] = append(st.domains[r.varIndex], r.value)
	}
}
