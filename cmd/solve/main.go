// Command solve runs one timetable solve from a JSON ScheduleInput file and
// writes the rendered ScheduleOutput to a JSON file. Exit codes: 0 success,
// 1 infeasible (or cancelled) solve, 2 input error.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cs-faculty/timetable-csp/internal/domain"
	"github.com/cs-faculty/timetable-csp/internal/orchestrator"
	"github.com/cs-faculty/timetable-csp/pkg/cache"
	"github.com/cs-faculty/timetable-csp/pkg/config"
	apperrors "github.com/cs-faculty/timetable-csp/pkg/errors"
	"github.com/cs-faculty/timetable-csp/pkg/logger"
	"github.com/cs-faculty/timetable-csp/pkg/metrics"
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: solve <input-path> <output-path>")
		return 2
	}
	inputPath, outputPath := os.Args[1], os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 2
	}

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		return 2
	}
	defer log.Sync()

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		log.Error("failed to read input file", zap.Error(err))
		return 2
	}

	var input domain.ScheduleInput
	if err := json.Unmarshal(raw, &input); err != nil {
		log.Error("failed to parse schedule input", zap.Error(err))
		return 2
	}

	var redisClient *redis.Client
	if cfg.Solver.UseRedisCache {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			log.Warn("redis cache unavailable, continuing without memoization", zap.Error(err))
		} else {
			redisClient = client
			defer redisClient.Close()
		}
	}

	m := metrics.New()
	orch := orchestrator.New(cfg.Solver, log, redisClient, m)

	result, err := orch.Solve(context.Background(), input)
	if err != nil {
		appErr := apperrors.FromError(err)
		log.Error("solve failed", zap.String("code", appErr.Code), zap.Error(err))
		writeOutput(outputPath, orchestrator.ScheduleOutput{Success: false, Error: appErr.Message}, log)
		if appErr.Code == apperrors.ErrInput.Code || appErr.Code == apperrors.ErrValidation.Code {
			return 2
		}
		return 1
	}

	writeOutput(outputPath, result.Output, log)
	log.Info("solve succeeded", zap.String("run_id", result.RunID))
	return 0
}

func writeOutput(path string, output orchestrator.ScheduleOutput, log *zap.Logger) {
	b, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		log.Error("failed to marshal output", zap.Error(err))
		return
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		log.Error("failed to write output file", zap.Error(err))
	}
}
