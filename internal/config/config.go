package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Inference API.
	PredictAPIURL  string
	PredictTimeout time.Duration

	// Assessment event stream. Publishing is off unless KAFKA_ENABLED=true.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	predictTimeout, err := ParseTimeout(sharedcfg.EnvOrDefault("PREDICT_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PREDICT_TIMEOUT: %w", err)
	}

	apiURL, err := ParseBaseURL(sharedcfg.EnvOrDefault("PREDICT_API_URL", "http://localhost:8000"))
	if err != nil {
		return nil, fmt.Errorf("invalid PREDICT_API_URL: %w", err)
	}

	kafkaEnabled := false
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		switch strings.ToLower(v) {
		case "true", "1":
			kafkaEnabled = true
		case "false", "0":
		default:
			return nil, fmt.Errorf("invalid KAFKA_ENABLED %q", v)
		}
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		PredictAPIURL:  apiURL,
		PredictTimeout: predictTimeout,

		KafkaEnabled: kafkaEnabled,
		KafkaBrokers: sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "prediction-assessments"),
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_ENABLED is true")
	}

	return cfg, nil
}

// ParseBaseURL checks that s is an absolute http(s) URL and strips any
// trailing slash so endpoint paths can be appended directly.
func ParseBaseURL(s string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.New("missing host")
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// ParseTimeout parses a positive duration such as "10s" or "1500ms".
func ParseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", d)
	}
	return d, nil
}
