package config

import "os"

// Sink captures the reference backend's configuration.
type Sink struct {
	Addr string
	// DatabaseURL selects the Postgres record store; empty means in-memory.
	DatabaseURL string
	MetricsAddr string
}

// FromEnv builds a Sink config from environment variables so main stays lean.
func FromEnv() Sink {
	addr := os.Getenv("REVENEW_SINK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	metricsAddr := os.Getenv("REVENEW_SINK_METRICS_ADDR")
	if metricsAddr == "" {
		metricsAddr = ":9090"
	}

	return Sink{
		Addr:        addr,
		DatabaseURL: os.Getenv("REVENEW_SINK_DATABASE_URL"),
		MetricsAddr: metricsAddr,
	}
}
