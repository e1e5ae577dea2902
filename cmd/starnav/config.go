package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sternensim/StarNavigation/internal/navigation"
	"github.com/sternensim/StarNavigation/internal/routecache"
	"github.com/sternensim/StarNavigation/internal/routeset"
	"github.com/sternensim/StarNavigation/internal/sky"
)

type catalogConfig struct {
	File             string
	MaxMagnitude     float64
	Timeout          time.Duration
	DisableEphemeris bool
}

type planConfig struct {
	StepKm        float64
	MaxIterations int
	LegStepLimit  int
	MaxRoutes     int
}

type cacheConfig struct {
	Backend     string // none | memory | redis | postgres
	TTL         time.Duration
	MaxEntries  int
	RedisAddr   string
	DatabaseURL string
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func loadCatalogConfig(logger *slog.Logger) catalogConfig {
	cfg := catalogConfig{
		File:         os.Getenv("STARNAV_CATALOG_FILE"),
		MaxMagnitude: sky.DefaultMaxMagnitude,
		Timeout:      5 * time.Second,
	}

	if v := os.Getenv("STARNAV_MAX_MAGNITUDE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			logger.Warn("invalid STARNAV_MAX_MAGNITUDE value, using default", "value", v, "default", cfg.MaxMagnitude)
		} else {
			cfg.MaxMagnitude = f
		}
	}

	if v := os.Getenv("STARNAV_CATALOG_TIMEOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid STARNAV_CATALOG_TIMEOUT value, using default", "value", v, "default", 5)
		} else {
			cfg.Timeout = time.Duration(n) * time.Second
		}
	}

	if v := os.Getenv("STARNAV_DISABLE_EPHEMERIS"); v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			logger.Warn("invalid STARNAV_DISABLE_EPHEMERIS value, keeping ephemeris enabled", "value", v)
		} else {
			cfg.DisableEphemeris = disabled
		}
	}

	logger.Info("catalog config",
		"file", cfg.File,
		"max_magnitude", cfg.MaxMagnitude,
		"timeout_seconds", cfg.Timeout.Seconds(),
		"ephemeris", !cfg.DisableEphemeris,
	)

	return cfg
}

func loadPlanConfig(logger *slog.Logger) planConfig {
	cfg := planConfig{
		StepKm:        navigation.DefaultStepKm,
		MaxIterations: navigation.DefaultMaxIterations,
		LegStepLimit:  navigation.DefaultLegStepLimit,
		MaxRoutes:     routeset.DefaultMaxRoutes,
	}

	if v := os.Getenv("STARNAV_STEP_KM"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			logger.Warn("invalid STARNAV_STEP_KM value, using default", "value", v, "default", cfg.StepKm)
		} else {
			cfg.StepKm = f
		}
	}

	if v := os.Getenv("STARNAV_MAX_ITERATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid STARNAV_MAX_ITERATIONS value, using default", "value", v, "default", cfg.MaxIterations)
		} else {
			cfg.MaxIterations = n
		}
	}

	if v := os.Getenv("STARNAV_LEG_STEP_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid STARNAV_LEG_STEP_LIMIT value, using default", "value", v, "default", cfg.LegStepLimit)
		} else {
			cfg.LegStepLimit = n
		}
	}

	if v := os.Getenv("STARNAV_MAX_ROUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > routeset.MaxRoutesLimit {
			logger.Warn("invalid STARNAV_MAX_ROUTES value, using default", "value", v, "default", cfg.MaxRoutes)
		} else {
			cfg.MaxRoutes = n
		}
	}

	logger.Info("planner config",
		"step_km", cfg.StepKm,
		"max_iterations", cfg.MaxIterations,
		"leg_step_limit", cfg.LegStepLimit,
		"max_routes", cfg.MaxRoutes,
	)

	return cfg
}

func loadCacheConfig(logger *slog.Logger) cacheConfig {
	cfg := cacheConfig{
		Backend:    "none",
		TTL:        routecache.DefaultTTL,
		MaxEntries: routecache.DefaultMaxEntries,
		RedisAddr:  "localhost:6379",
	}

	if v := strings.ToLower(os.Getenv("STARNAV_CACHE")); v != "" {
		switch v {
		case "none", "memory", "redis", "postgres":
			cfg.Backend = v
		default:
			logger.Warn("invalid STARNAV_CACHE value, caching disabled", "value", v)
		}
	}

	if v := os.Getenv("STARNAV_CACHE_TTL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Warn("invalid STARNAV_CACHE_TTL value, using default", "value", v, "default", cfg.TTL.Seconds())
		} else {
			cfg.TTL = time.Duration(n) * time.Second
		}
	}

	if v := os.Getenv("STARNAV_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}

	cfg.DatabaseURL = os.Getenv("STARNAV_DATABASE_URL")
	if cfg.Backend == "postgres" && cfg.DatabaseURL == "" {
		logger.Warn("STARNAV_CACHE=postgres requires STARNAV_DATABASE_URL, caching disabled")
		cfg.Backend = "none"
	}

	logger.Info("cache config",
		"backend", cfg.Backend,
		"ttl_seconds", cfg.TTL.Seconds(),
		"redis_addr", cfg.RedisAddr,
	)

	return cfg
}
