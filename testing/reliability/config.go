package reliability

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
)

// ReliabilityConfig holds configuration for reliability testing.
type ReliabilityConfig struct {
	Level         string        `env:"LEVEL"`                           // "basic" or "stress"
	Duration      time.Duration `env:"DURATION" envDefault:"30s"`       // Test duration for stress tests
	MaxGoroutines int           `env:"MAX_GOROUTINES" envDefault:"100"` // Logical threads for concurrent tests
	MaxDepth      int           `env:"MAX_DEPTH" envDefault:"1000"`     // Nesting depth for cascade tests
}

// getReliabilityConfig reads SCOPEZ_RELIABILITY_* environment variables.
func getReliabilityConfig(t *testing.T) ReliabilityConfig {
	t.Helper()
	var config ReliabilityConfig
	if err := env.ParseWithOptions(&config, env.Options{Prefix: "SCOPEZ_RELIABILITY_"}); err != nil {
		t.Fatalf("parse reliability config: %v", err)
	}
	return config
}
