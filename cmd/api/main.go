// Command api exposes the CSP engine over HTTP: POST /solve, GET
// /healthz, GET /metrics. A thin gin wrapper around internal/orchestrator,
// grounded on the teacher's cmd/api-gateway bootstrap (router, logger, and
// middleware wiring) without its authentication/CRUD surface.
package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cs-faculty/timetable-csp/internal/domain"
	"github.com/cs-faculty/timetable-csp/internal/orchestrator"
	"github.com/cs-faculty/timetable-csp/pkg/cache"
	"github.com/cs-faculty/timetable-csp/pkg/config"
	"github.com/cs-faculty/timetable-csp/pkg/logger"
	"github.com/cs-faculty/timetable-csp/pkg/metrics"
	"github.com/cs-faculty/timetable-csp/pkg/middleware/cors"
	"github.com/cs-faculty/timetable-csp/pkg/middleware/requestid"
	"github.com/cs-faculty/timetable-csp/pkg/response"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.Middleware())
	router.Use(logger.GinMiddleware(log))
	router.Use(cors.New(cfg.CORS.AllowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	api := router.Group(cfg.APIPrefix)
	api.POST("/solve", solveHandler(orch))
	api.POST("/solve/batch", batchSolveHandler(orch))

	addr := ":" + strconv.Itoa(cfg.Port)
	log.Info("starting api server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func solveHandler(orch *orchestrator.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input domain.ScheduleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, err)
			return
		}

		result, err := orch.Solve(c.Request.Context(), input)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.JSON(c, http.StatusOK, result.Output, map[string]interface{}{"run_id": result.RunID})
	}
}

// batchSolveHandler solves several independent schedule requests
// concurrently, one worker per CPU-bound solve, via the worker-pool queue.
func batchSolveHandler(orch *orchestrator.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var inputs []domain.ScheduleInput
		if err := c.ShouldBindJSON(&inputs); err != nil {
			response.Error(c, err)
			return
		}

		results := orch.RunBatch(c.Request.Context(), inputs, 4)

		type batchEntry struct {
			RunID  string                      `json:"run_id,omitempty"`
			Output orchestrator.ScheduleOutput `json:"output,omitempty"`
			Error  string                      `json:"error,omitempty"`
		}

		out := make([]batchEntry, len(results))
		for i, r := range results {
			if r.Err != nil {
				out[i] = batchEntry{Error: r.Err.Error()}
				continue
			}
			out[i] = batchEntry{RunID: r.Result.RunID, Output: r.Result.Output}
		}

		response.JSON(c, http.StatusOK, out)
	}
}
