// Package orchestrator wires the catalog indexer, variable generator,
// domain builder, solver, and soft-cost accountant into the single build()
// / solve() pipeline spec.md §5 describes, plus the optional goroutine
// off-load with progress/completion channels. Grounded on the teacher's
// internal/service/schedule_generator_service.go request lifecycle and
// pkg/jobs/queue.go's worker/cancellation pattern.
package orchestrator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cs-faculty/timetable-csp/internal/catalog"
	"github.com/cs-faculty/timetable-csp/internal/cost"
	"github.com/cs-faculty/timetable-csp/internal/domain"
	"github.com/cs-faculty/timetable-csp/internal/domainbuild"
	"github.com/cs-faculty/timetable-csp/internal/solver"
	"github.com/cs-faculty/timetable-csp/internal/variable"
	"github.com/cs-faculty/timetable-csp/pkg/config"
	apperrors "github.com/cs-faculty/timetable-csp/pkg/errors"
	"github.com/cs-faculty/timetable-csp/pkg/metrics"
)

// Orchestrator ties every CSP engine component together behind a single
// entry point.
type Orchestrator struct {
	cfg       config.SolverConfig
	logger    *zap.Logger
	validate  *validator.Validate
	cache     *redis.Client
	metrics   *metrics.Metrics
	whitelist variable.WhitelistConfig
}

// New constructs an Orchestrator. cache and m may both be nil: a nil
// cache disables solve memoization, a nil m disables metric recording.
func New(cfg config.SolverConfig, logger *zap.Logger, cache *redis.Client, m *metrics.Metrics) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		cfg:       cfg,
		logger:    logger,
		validate:  validator.New(),
		cache:     cache,
		metrics:   m,
		whitelist: variable.DefaultWhitelistConfig(),
	}
}

// Result bundles the rendered output with the run identifier that produced
// it, for correlation in logs emitted by the caller.
type Result struct {
	RunID  string
	Output ScheduleOutput
}

// Progress reports one phase transition of a solve, for callers using
// SolveAsync.
type Progress struct {
	RunID string
	Phase string
}

// Solve runs the full pipeline synchronously: validate, check the
// memoized-solve cache, build variables and domains, search, score, and
// render.
func (o *Orchestrator) Solve(ctx context.Context, input domain.ScheduleInput) (Result, error) {
	runID := uuid.New().String()
	logger := o.logger.With(zap.String("run_id", runID))

	if err := o.validate.Struct(input); err != nil {
		logger.Warn("input validation failed", zap.Error(err))
		return Result{}, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, apperrors.ErrValidation.Message)
	}

	cacheKey := inputCacheKey(input)
	if cached, ok := o.lookupCache(ctx, cacheKey, logger); ok {
		return Result{RunID: runID, Output: cached}, nil
	}

	solveCtx := ctx
	var cancel context.CancelFunc
	if o.cfg.Timeout > 0 {
		solveCtx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	logger.Info("building variables")
	idx, usedFallback := catalog.Build(input, logger)
	if usedFallback {
		logger.Warn("qualification fallback parser used")
	}

	vars := o.generateVariables(input)
	if len(vars) == 0 {
		return Result{}, apperrors.Wrap(nil, apperrors.ErrInput.Code, apperrors.ErrInput.Status, "no session variables could be generated from the given courses")
	}

	logger.Info("building domains", zap.Int("variable_count", len(vars)))
	problem := domainbuild.Build(input, vars, idx)

	if id, empty := problem.EmptyDomainVarID(); empty {
		logger.Warn("empty domain", zap.String("var_id", id))
		return Result{}, apperrors.Wrap(nil, apperrors.ErrEmptyDomain.Code, apperrors.ErrEmptyDomain.Status, apperrors.ErrEmptyDomain.Message)
	}

	logger.Info("solving", zap.Bool("forward_checking", o.cfg.PreferForwardCh))
	result, stats := solver.Backtrack(solveCtx, idx, problem, solver.Options{
		PreferForwardChecking: o.cfg.PreferForwardCh,
		Logger:                logger,
	})

	if !result.Success {
		o.metrics.ObserveSolve(false, time.Duration(result.SolveSeconds*float64(time.Second)), stats.NodesExplored, stats.Backtracks, 0)
		if solveCtx.Err() != nil {
			return Result{}, apperrors.Wrap(solveCtx.Err(), apperrors.ErrCancelled.Code, apperrors.ErrCancelled.Status, apperrors.ErrCancelled.Message)
		}
		return Result{}, apperrors.Wrap(nil, apperrors.ErrUnsatisfiable.Code, apperrors.ErrUnsatisfiable.Status, apperrors.ErrUnsatisfiable.Message)
	}

	result.SoftCost = cost.Compute(idx, vars, result.Assignments)
	o.metrics.ObserveSolve(true, time.Duration(result.SolveSeconds*float64(time.Second)), stats.NodesExplored, stats.Backtracks, result.SoftCost)

	output := RenderOutput(idx, vars, result)
	o.storeCache(ctx, cacheKey, output, logger)

	logger.Info("solve complete",
		zap.Int("nodes_explored", stats.NodesExplored),
		zap.Int("backtracks", stats.Backtracks),
		zap.Int("soft_cost", result.SoftCost),
	)

	return Result{RunID: runID, Output: output}, nil
}

// SolveAsync off-loads Solve onto a goroutine, reporting phase transitions
// on the returned progress channel, a failure on the error channel, and a
// successful result on the done channel. All three channels are closed
// once the solve finishes; cancelling ctx stops the search cooperatively
// (spec.md §5).
func (o *Orchestrator) SolveAsync(ctx context.Context, input domain.ScheduleInput) (<-chan Progress, <-chan error, <-chan Result) {
	progressCh := make(chan Progress, 4)
	doneCh := make(chan Result, 1)
	errCh := make(chan error, 1)

	go func() {
		defer close(progressCh)
		defer close(doneCh)
		defer close(errCh)

		runID := uuid.New().String()
		send := func(phase string) {
			select {
			case progressCh <- Progress{RunID: runID, Phase: phase}:
			case <-ctx.Done():
			}
		}

		send("validating")
		result, err := o.Solve(ctx, input)
		if err != nil {
			errCh <- err
			return
		}
		send("complete")
		doneCh <- result
	}()

	return progressCh, errCh, doneCh
}

func (o *Orchestrator) generateVariables(input domain.ScheduleInput) []domain.Variable {
	if input.UseRichGenerator {
		return variable.GenerateRich(input)
	}
	return variable.GenerateSimple(input, o.whitelist)
}

// inputCacheKey hashes the canonical JSON encoding of the input so
// identical schedule requests hit the memoization cache.
func inputCacheKey(input domain.ScheduleInput) string {
	b, err := json.Marshal(input)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return "solve:" + hex.EncodeToString(sum[:])
}

func (o *Orchestrator) lookupCache(ctx context.Context, key string, logger *zap.Logger) (ScheduleOutput, bool) {
	if !o.cfg.UseRedisCache || o.cache == nil || key == "" {
		return ScheduleOutput{}, false
	}
	raw, err := o.cache.Get(ctx, key).Result()
	if err != nil {
		o.metrics.RecordCacheLookup(false)
		return ScheduleOutput{}, false
	}
	var out ScheduleOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		logger.Warn("failed to decode cached solve", zap.Error(err))
		return ScheduleOutput{}, false
	}
	o.metrics.RecordCacheLookup(true)
	logger.Info("memoized solve cache hit")
	return out, true
}

func (o *Orchestrator) storeCache(ctx context.Context, key string, output ScheduleOutput, logger *zap.Logger) {
	if !o.cfg.UseRedisCache || o.cache == nil || key == "" {
		return
	}
	b, err := json.Marshal(output)
	if err != nil {
		return
	}
	if err := o.cache.Set(ctx, key, b, o.cfg.CacheTTL).Err(); err != nil {
		logger.Warn("failed to write memoized solve cache", zap.Error(err))
	}
}
