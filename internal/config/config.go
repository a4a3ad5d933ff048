package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Config carries everything the client needs to reach the expense service
// and keep its local cache.
type Config struct {
	// Remote expense API
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Persisted local cache
	CacheDBPath string

	// Optional change-event broker
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Logging
	LogLevel string
}

// Load reads configuration from the environment, applying defaults.
func Load() *Config {
	return &Config{
		APIBaseURL:  getEnv("API_BASE_URL", "http://127.0.0.1:8000"),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 30*time.Second),

		CacheDBPath: getEnv("CACHE_DB_PATH", "./data/spendlog.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "spendlog"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_events"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid API base URL %q", c.APIBaseURL))
	}
	if c.HTTPTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid HTTP timeout %s: must be positive", c.HTTPTimeout))
	}
	if strings.TrimSpace(c.CacheDBPath) == "" {
		problems = append(problems, "cache database path must not be empty")
	}
	if c.AMQPURL != "" {
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange is required when AMQP_URL is set")
		}
		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP queue is required when AMQP_URL is set")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
