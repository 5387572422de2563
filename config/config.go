package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalidValue is returned when an environment variable cannot be parsed.
var ErrInvalidValue = errors.New("invalid configuration value")

// Config is the process configuration, read from the environment.
type Config struct {
	Port            string
	ShutdownTimeout time.Duration

	WikiLang        string
	ActionAPIURL    string
	RestAPIURL      string
	UpstreamTimeout time.Duration
	UserAgent       string
	ParagraphLimit  int
	Extractor       string

	LogLevel  string
	LogFormat string

	Events EventConfig
}

// EventConfig configures the lookup event sinks.
type EventConfig struct {
	Sinks     []string
	QueueSize int
	Workers   int

	RedisURL    string
	RedisStream string

	KafkaBrokers []string
	KafkaTopic   string

	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Prefix       string
	S3UsePathStyle bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present.
func Load() (*Config, error) {
	// Non-fatal if missing
	_ = godotenv.Load()

	cfg := &Config{
		Port:      GetEnvOrDefault("PORT", DefaultPort),
		WikiLang:  GetEnvOrDefault("WIKI_LANG", DefaultWikiLang),
		UserAgent: GetEnvOrDefault("HTTP_USER_AGENT", DefaultUserAgent),
		Extractor: strings.ToLower(GetEnvOrDefault("EXTRACTOR", DefaultExtractor)),
		LogLevel:  strings.ToLower(GetEnvOrDefault("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(GetEnvOrDefault("LOG_FORMAT", "json")),
	}

	action, rest := ResolveWikiURLs(cfg.WikiLang)
	cfg.ActionAPIURL = strings.TrimRight(GetEnvOrDefault("WIKI_ACTION_API_URL", action), "/")
	cfg.RestAPIURL = strings.TrimRight(GetEnvOrDefault("WIKI_REST_API_URL", rest), "/")

	var err error
	if cfg.ShutdownTimeout, err = envDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout); err != nil {
		return nil, err
	}
	if cfg.UpstreamTimeout, err = envDuration("UPSTREAM_TIMEOUT", DefaultUpstreamTimeout); err != nil {
		return nil, err
	}
	if cfg.ParagraphLimit, err = envPositiveInt("PARAGRAPH_LIMIT", DefaultParagraphLimit); err != nil {
		return nil, err
	}

	events, err := loadEventConfig()
	if err != nil {
		return nil, err
	}
	cfg.Events = events

	return cfg, nil
}

func loadEventConfig() (EventConfig, error) {
	ec := EventConfig{
		Sinks:          splitList(strings.ToLower(GetEnvOrDefault("EVENT_SINKS", DefaultEventSinks))),
		RedisURL:       strings.TrimSpace(os.Getenv("REDIS_URL")),
		RedisStream:    GetEnvOrDefault("REDIS_STREAM", DefaultRedisStream),
		KafkaBrokers:   splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:     GetEnvOrDefault("KAFKA_TOPIC", DefaultKafkaTopic),
		S3Bucket:       strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
	}

	if prefix := strings.TrimSpace(os.Getenv("S3_PREFIX")); prefix != "" {
		ec.S3Prefix = strings.Trim(prefix, "/") + "/"
	}

	var err error
	if ec.QueueSize, err = envPositiveInt("EVENT_QUEUE_SIZE", DefaultEventQueueSize); err != nil {
		return ec, err
	}
	if ec.Workers, err = envPositiveInt("EVENT_WORKERS", DefaultEventWorkers); err != nil {
		return ec, err
	}
	return ec, nil
}

// ResolveWikiURLs returns the action API and REST API base URLs for a
// language edition, e.g. "fr" -> https://fr.wikipedia.org/...
func ResolveWikiURLs(lang string) (actionURL, restURL string) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = DefaultWikiLang
	}
	host := fmt.Sprintf("https://%s.wikipedia.org", lang)
	return host + "/w/api.php", host + "/api/rest_v1"
}

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, raw)
	}
	return d, nil
}

func envPositiveInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, raw)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
