package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Port)
	}
	if cfg.FuelCostPerMile != 0.40 {
		t.Errorf("fuel cost = %v, want 0.40", cfg.FuelCostPerMile)
	}
	if cfg.AverageSpeedMPH != 55 {
		t.Errorf("speed = %v, want 55", cfg.AverageSpeedMPH)
	}
	if cfg.EarthRadiusMeters != 6371000 {
		t.Errorf("radius = %v, want 6371000", cfg.EarthRadiusMeters)
	}
	if cfg.RouteCacheTTL != 10*time.Minute {
		t.Errorf("cache ttl = %v, want 10m", cfg.RouteCacheTTL)
	}
	if cfg.PlannerWorkers != 4 {
		t.Errorf("workers = %d, want 4", cfg.PlannerWorkers)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("FUEL_COST_PER_MILE", "0.55")
	t.Setenv("AVERAGE_SPEED_MPH", "60")
	t.Setenv("COORD_PRECISION", "5")
	t.Setenv("SEARCH_TIMEOUT", "2s")
	t.Setenv("PRUNE_NEGATIVE_PROFIT", "true")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := cfg.SearchParams()
	if p.FuelCostPerMile != 0.55 || p.AverageSpeedMPH != 60 || !p.PruneNegativeProfit {
		t.Fatalf("search params = %+v", p)
	}
	if cfg.CoordPrecision != 5 {
		t.Errorf("precision = %d, want 5", cfg.CoordPrecision)
	}
	if cfg.SearchTimeout != 2*time.Second {
		t.Errorf("search timeout = %v, want 2s", cfg.SearchTimeout)
	}
}

func TestFromEnvRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"AVERAGE_SPEED_MPH":  "0",
		"FUEL_COST_PER_MILE": "abc",
		"COORD_PRECISION":    "-1",
		"PLANNER_WORKERS":    "0",
		"SEARCH_TIMEOUT":     "soon",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := FromEnv(); err == nil {
				t.Fatalf("%s=%q: expected error", key, value)
			}
		})
	}
}
