package config

import (
	"flag"
	"os"
	"strconv"
)

// Config holds all daemon configuration.
type Config struct {
	Interface   string
	Domain      string // regulatory domain: world, fcc, etsi, telec
	DBPath      string // survey database; empty disables persistence
	CertDir     string // certificate store directory
	MetricsAddr string // prometheus endpoint; empty disables it
	Debug       bool
}

// Load populates Config from environment variables and command line
// flags. Flags take precedence.
func Load() *Config {
	cfg := &Config{}

	// Defaults and Environment Variables
	cfg.Interface = getEnv("WLAND_INTERFACE", "wlan0")
	cfg.Domain = getEnv("WLAND_DOMAIN", "world")
	cfg.DBPath = getEnv("WLAND_DB", "")
	cfg.CertDir = getEnv("WLAND_CERTS", "certs")
	cfg.MetricsAddr = getEnv("WLAND_METRICS", "")
	cfg.Debug = getEnvBool("WLAND_DEBUG", false)

	// Command Line Flags (Override Env)
	flag.StringVar(&cfg.Interface, "i", cfg.Interface, "WLAN interface name")
	flag.StringVar(&cfg.Domain, "domain", cfg.Domain, "Regulatory domain (world, fcc, etsi, telec)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to survey SQLite database (empty to disable)")
	flag.StringVar(&cfg.CertDir, "certs", cfg.CertDir, "Certificate store directory")
	flag.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "Prometheus listen address (empty to disable)")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Enable verbose debug logging")

	flag.Parse()

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
