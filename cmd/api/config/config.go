package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DataDir   string
	JwtSecret string
	Env       string

	MaxConcurrentBuilds int
	BuildTimeout        time.Duration
	// ResolveBaseImages pins FROM images to registry digests before building
	ResolveBaseImages bool
	BuildOnStartup    bool

	DefaultCPULimit    string
	DefaultMemoryLimit string
	MaxOutputSize      datasize.ByteSize
	ExecutionTimeout   time.Duration
	QuickConcurrency   int64
	QuickTimeout       time.Duration

	SandboxMaxAge   time.Duration
	CleanupInterval time.Duration

	OtelEnabled     bool
	OtelEndpoint    string
	OtelServiceName string
	OtelInsecure    bool
}

// Load loads configuration from environment variables
// Automatically loads .env file if present
func Load() (*Config, error) {
	// Try to load .env file (fail silently if not present)
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		DataDir:            getEnv("DATA_DIR", "/var/lib/sandboxd"),
		JwtSecret:          getEnv("JWT_SECRET", ""),
		Env:                getEnv("ENV", "development"),
		DefaultCPULimit:    getEnv("DEFAULT_CPU_LIMIT", "1"),
		DefaultMemoryLimit: getEnv("DEFAULT_MEMORY_LIMIT", "512m"),
		OtelEndpoint:       getEnv("OTEL_ENDPOINT", "localhost:4317"),
		OtelServiceName:    getEnv("OTEL_SERVICE_NAME", "sandboxd"),
	}

	var err error
	if cfg.MaxConcurrentBuilds, err = getInt("MAX_CONCURRENT_BUILDS", 2); err != nil {
		return nil, err
	}
	if cfg.BuildTimeout, err = getDuration("BUILD_TIMEOUT", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ResolveBaseImages, err = getBool("RESOLVE_BASE_IMAGES", false); err != nil {
		return nil, err
	}
	if cfg.BuildOnStartup, err = getBool("BUILD_ON_STARTUP", false); err != nil {
		return nil, err
	}
	if err := cfg.MaxOutputSize.UnmarshalText([]byte(getEnv("MAX_OUTPUT_SIZE", "1MB"))); err != nil {
		return nil, fmt.Errorf("MAX_OUTPUT_SIZE: %w", err)
	}
	if cfg.ExecutionTimeout, err = getDuration("EXECUTION_TIMEOUT", 10*time.Minute); err != nil {
		return nil, err
	}
	quick, err := getInt("QUICK_CONCURRENCY", 4)
	if err != nil {
		return nil, err
	}
	cfg.QuickConcurrency = int64(quick)
	if cfg.QuickTimeout, err = getDuration("QUICK_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.SandboxMaxAge, err = getDuration("SANDBOX_MAX_AGE", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CleanupInterval, err = getDuration("CLEANUP_INTERVAL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.OtelEnabled, err = getBool("OTEL_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.OtelInsecure, err = getBool("OTEL_INSECURE", true); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
