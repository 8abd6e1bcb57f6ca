package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"load-route-service/internal/geo"
	"load-route-service/internal/search"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	SQLitePath  string
	LoadsPath   string
	SeedPath    string

	RedisAddr     string
	RouteCacheTTL time.Duration

	AMQPURL      string
	AMQPExchange string

	FuelCostPerMile     float64
	AverageSpeedMPH     float64
	EarthRadiusMeters   float64
	CoordPrecision      int
	MaxExpansions       int
	SearchTimeout       time.Duration
	PruneNegativeProfit bool
	PlannerWorkers      int
}

// Load reads a .env file when present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (Config, error) {
	var (
		cfg Config
		err error
	)

	cfg.Port = Get("PORT", "8080")
	cfg.DatabaseURL = Get("DATABASE_URL", "")
	cfg.SQLitePath = Get("SQLITE_PATH", "")
	cfg.LoadsPath = Get("LOADS_PATH", "data/loads.json")
	cfg.SeedPath = Get("SEED_PATH", "data/loads.json")
	cfg.RedisAddr = Get("REDIS_ADDR", "")
	cfg.AMQPURL = Get("AMQP_URL", "")
	cfg.AMQPExchange = Get("AMQP_EXCHANGE", "route_results")

	if cfg.RouteCacheTTL, err = GetDuration("ROUTE_CACHE_TTL", 10*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.FuelCostPerMile, err = GetFloat("FUEL_COST_PER_MILE", search.DefaultFuelCostPerMile); err != nil {
		return Config{}, err
	}
	if cfg.AverageSpeedMPH, err = GetFloat("AVERAGE_SPEED_MPH", search.DefaultAverageSpeedMPH); err != nil {
		return Config{}, err
	}
	if cfg.EarthRadiusMeters, err = GetFloat("EARTH_RADIUS_METERS", geo.DefaultEarthRadiusMeters); err != nil {
		return Config{}, err
	}
	if cfg.CoordPrecision, err = GetInt("COORD_PRECISION", 0); err != nil {
		return Config{}, err
	}
	if cfg.MaxExpansions, err = GetInt("MAX_EXPANSIONS", 0); err != nil {
		return Config{}, err
	}
	if cfg.SearchTimeout, err = GetDuration("SEARCH_TIMEOUT", 0); err != nil {
		return Config{}, err
	}
	if cfg.PruneNegativeProfit, err = GetBool("PRUNE_NEGATIVE_PROFIT", false); err != nil {
		return Config{}, err
	}
	if cfg.PlannerWorkers, err = GetInt("PLANNER_WORKERS", 4); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.EarthRadiusMeters <= 0 {
		return fmt.Errorf("config: EARTH_RADIUS_METERS must be positive, got %v", c.EarthRadiusMeters)
	}
	if c.CoordPrecision < 0 || c.CoordPrecision > 12 {
		return fmt.Errorf("config: COORD_PRECISION must be between 0 and 12, got %d", c.CoordPrecision)
	}
	if c.PlannerWorkers < 1 {
		return fmt.Errorf("config: PLANNER_WORKERS must be at least 1, got %d", c.PlannerWorkers)
	}
	if c.SearchTimeout < 0 || c.RouteCacheTTL < 0 {
		return fmt.Errorf("config: durations must be non-negative")
	}
	if err := c.SearchParams().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// SearchParams returns the engine cost model and policy.
func (c Config) SearchParams() search.Params {
	return search.Params{
		FuelCostPerMile:     c.FuelCostPerMile,
		AverageSpeedMPH:     c.AverageSpeedMPH,
		MaxExpansions:       c.MaxExpansions,
		PruneNegativeProfit: c.PruneNegativeProfit,
	}
}

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, v, err)
	}
	return f, nil
}

func GetInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, v, err)
	}
	return n, nil
}

func GetBool(key string, fallback bool) (bool, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: parse %s=%q: %w", key, v, err)
	}
	return b, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, v, err)
	}
	return d, nil
}
