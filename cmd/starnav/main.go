package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/sternensim/StarNavigation/internal/catalog"
	"github.com/sternensim/StarNavigation/internal/ephemeris"
	"github.com/sternensim/StarNavigation/internal/metrics"
	"github.com/sternensim/StarNavigation/internal/navigation"
	"github.com/sternensim/StarNavigation/internal/routecache"
	"github.com/sternensim/StarNavigation/internal/routeset"
	"github.com/sternensim/StarNavigation/internal/sky"
	"github.com/sternensim/StarNavigation/internal/tracing"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("STARNAV_LOG_LEVEL")),
	}))

	catCfg := loadCatalogConfig(logger)
	planCfg := loadPlanConfig(logger)

	fsFlags := flag.NewFlagSet("starnav", flag.ContinueOnError)
	var (
		startFlag   = fsFlags.String("start", "", "start position as lat,lon[,alt]")
		targetFlag  = fsFlags.String("target", "", "target position as lat,lon[,alt]")
		timeFlag    = fsFlags.String("time", "", "observation time, RFC 3339 (default now)")
		stepKm      = fsFlags.Float64("step", planCfg.StepKm, "leg step size in km")
		maxIter     = fsFlags.Int("max-iterations", planCfg.MaxIterations, "maximum planner iterations")
		maxRoutes   = fsFlags.Int("max-routes", planCfg.MaxRoutes, "number of alternative routes (1-5)")
		prioritize  = fsFlags.Bool("prioritize-major", false, "prefer planets, Sun and Moon")
		planetsOnly = fsFlags.Bool("planets-only", false, "use only planets, Sun and Moon")
		policyFlag  = fsFlags.String("policy", string(navigation.ClosestBearing), "selection policy: closest-bearing or altitude-weighted")
		pretty      = fsFlags.Bool("pretty", false, "indent JSON output")
	)
	if err := fsFlags.Parse(args); err != nil {
		return 2
	}

	out := json.NewEncoder(stdout)
	if *pretty {
		out.SetIndent("", "  ")
	}

	req, err := buildRequest(*startFlag, *targetFlag, *timeFlag)
	if err != nil {
		writeError(out, fmt.Errorf("%w: %v", navigation.ErrInvalidInput, err))
		return exitCode(navigation.ErrInvalidInput)
	}
	policy, err := navigation.ParsePolicy(*policyFlag)
	if err != nil {
		writeError(out, fmt.Errorf("%w: %v", navigation.ErrInvalidInput, err))
		return exitCode(navigation.ErrInvalidInput)
	}
	req.StepKm = *stepKm
	req.MaxIterations = *maxIter
	req.LegStepLimit = planCfg.LegStepLimit
	req.MaxRoutes = *maxRoutes
	req.PrioritizeMajor = *prioritize
	req.PlanetsOnly = *planetsOnly
	req.Policy = policy

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, tracing.LoadConfig(logger), logger)
	if err != nil {
		logger.Error("tracing setup failed", "error", err)
		return 1
	}
	defer tracing.ShutdownWithTimeout(context.Background(), shutdownTracing, logger)

	ds, err := catalog.LoadFile(catCfg.File, logger)
	if err != nil {
		logger.Error("catalog load failed", "path", catCfg.File, "error", err)
		return 1
	}
	store := catalog.NewStore()
	store.Set(ds)
	logger.Info("catalog loaded", "source", ds.Source, "objects", len(ds.Objects))

	var provider catalog.Provider = store
	catalogID := ds.Source
	if !catCfg.DisableEphemeris {
		provider = catalog.Merge(store, ephemeris.NewProvider(logger))
		catalogID += "+ephemeris"
	}
	provider = catalog.NewCachedProvider(provider, logger)

	filter := sky.NewFilter(provider, sky.Config{
		MaxMagnitude: catCfg.MaxMagnitude,
		Timeout:      catCfg.Timeout,
	}, logger)
	planner := navigation.NewPlanner(filter, logger)

	cache, closeCache := openCache(ctx, loadCacheConfig(logger), logger)
	defer closeCache()

	builder := routeset.NewBuilder(planner, routeset.Options{
		Cache:     cache,
		CatalogID: catalogID,
	}, logger)

	set, err := builder.Build(ctx, req)
	code := 0
	if err != nil {
		logger.Error("route computation failed", "error", err)
		writeError(out, err)
		code = exitCode(err)
	} else if err := out.Encode(set); err != nil {
		logger.Error("writing result failed", "error", err)
		code = 1
	}

	if path := os.Getenv("STARNAV_METRICS_FILE"); path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			logger.Warn("metrics textfile write failed", "path", path, "error", err)
		}
	}
	return code
}

// openCache returns the configured route cache and a function releasing it.
// An unreachable backend degrades to running without a cache.
func openCache(ctx context.Context, cfg cacheConfig, logger *slog.Logger) (routeset.Cache, func()) {
	switch cfg.Backend {
	case "memory":
		return routecache.NewMemory(cfg.TTL, cfg.MaxEntries, logger), func() {}
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		rc := routecache.NewRedis(client, cfg.TTL)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := rc.Ping(pingCtx); err != nil {
			logger.Warn("redis route cache unavailable, continuing without cache", "addr", cfg.RedisAddr, "error", err)
			client.Close()
			return nil, func() {}
		}
		logger.Info("route cache initialized", "backend", "redis", "addr", cfg.RedisAddr, "ttl_seconds", cfg.TTL.Seconds())
		return rc, func() { client.Close() }
	case "postgres":
		openCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		db, err := routecache.OpenPostgres(openCtx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn("postgres route cache unavailable, continuing without cache", "error", err)
			return nil, func() {}
		}
		pc := routecache.NewPostgres(db, cfg.TTL)
		if err := pc.EnsureSchema(openCtx); err != nil {
			logger.Warn("postgres route cache schema setup failed, continuing without cache", "error", err)
			db.Close()
			return nil, func() {}
		}
		logger.Info("route cache initialized", "backend", "postgres", "ttl_seconds", cfg.TTL.Seconds())
		return pc, func() { db.Close() }
	default:
		return nil, func() {}
	}
}
