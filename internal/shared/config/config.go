package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full application configuration, assembled once at startup
// from environment variables.
type Config struct {
	// HTTP server
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Kafka     KafkaConfig
	RateLimit RateLimitConfig
	Booking   BookingConfig

	LogLevel string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string
}

type JWTConfig struct {
	Secret           string
	JWTExpiresIn     time.Duration
	RefreshExpiresIn time.Duration
}

// KafkaConfig drives the ticket notification pipeline
type KafkaConfig struct {
	Enabled           bool
	Brokers           []string
	NotificationTopic string
	ConsumerGroup     string
}

// RateLimitConfig holds the per-route-class request budgets
type RateLimitConfig struct {
	Enabled         bool          `json:"enabled"`
	WindowDuration  time.Duration `json:"window_duration"`
	DefaultRequests int           `json:"default_requests"`
	PublicRequests  int           `json:"public_requests"`
	AuthRequests    int           `json:"auth_requests"`
	BookingRequests int           `json:"booking_requests"`
	AdminRequests   int           `json:"admin_requests"`
	WhitelistedIPs  []string      `json:"whitelisted_ips"`
}

// BookingConfig holds the knobs of the booking flow itself
type BookingConfig struct {
	// Simulated payment processing delay; the simulated gateway cannot fail
	PaymentDelay time.Duration

	// Rolling window of synthesized showtime dates
	ShowtimeWindowDays int
}

// Load reads every setting from the environment, falling back to
// development defaults so a bare `go run` works against local services.
func Load() *Config {
	cfg := &Config{
		Port:           envString("PORT", "8080"),
		GinMode:        envString("GIN_MODE", "debug"),
		APIVersion:     envString("API_VERSION", "v1"),
		APIPrefix:      envString("API_PREFIX", "/api"),
		ReadTimeout:    envDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   envDuration("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    envDuration("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: envInt("MAX_HEADER_BYTES", 1<<20),

		Database: DatabaseConfig{
			Host:     envString("DB_HOST", "localhost"),
			Port:     envString("DB_PORT", "5432"),
			Name:     envString("DB_NAME", "cinebook_db"),
			User:     envString("DB_USER", "cinebook_user"),
			Password: envString("DB_PASSWORD", "cinebook_password"),
			SSLMode:  envString("DB_SSLMODE", "disable"),
		},

		Redis: RedisConfig{
			Host:     envString("REDIS_HOST", "localhost"),
			Port:     envString("REDIS_PORT", "6379"),
			Password: envString("REDIS_PASSWORD", ""),
			DB:       envInt("REDIS_DB", 0),
		},

		JWT: JWTConfig{
			Secret:           envString("JWT_SECRET", "your-super-secret-jwt-key"),
			JWTExpiresIn:     envSeconds("JWT_EXPIRES_IN", 15*time.Minute),
			RefreshExpiresIn: envSeconds("JWT_REFRESH_EXPIRES_IN", 24*time.Hour),
		},

		Kafka: KafkaConfig{
			Enabled:           envBool("KAFKA_ENABLED", false),
			Brokers:           envList("KAFKA_BROKERS", []string{"localhost:9092"}),
			NotificationTopic: envString("KAFKA_NOTIFICATION_TOPIC", "ticket-notifications"),
			ConsumerGroup:     envString("KAFKA_CONSUMER_GROUP", "cinebook-notification-workers"),
		},

		RateLimit: RateLimitConfig{
			Enabled:         envBool("RATE_LIMIT_ENABLED", true),
			WindowDuration:  envDuration("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests: envInt("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			PublicRequests:  envInt("RATE_LIMIT_PUBLIC_REQUESTS", 100),
			AuthRequests:    envInt("RATE_LIMIT_AUTH_REQUESTS", 10),
			BookingRequests: envInt("RATE_LIMIT_BOOKING_REQUESTS", 20),
			AdminRequests:   envInt("RATE_LIMIT_ADMIN_REQUESTS", 200),
			WhitelistedIPs:  envList("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		Booking: BookingConfig{
			PaymentDelay:       envDuration("PAYMENT_DELAY", 2*time.Second),
			ShowtimeWindowDays: envInt("SHOWTIME_WINDOW_DAYS", 5),
		},

		LogLevel: envString("LOG_LEVEL", "debug"),
	}

	cfg.Database.DSN = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.Name, cfg.Database.SSLMode)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// envSeconds reads a bare integer number of seconds, the convention for
// the JWT expiry variables
func envSeconds(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// envList splits a comma-separated variable, dropping empty entries
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	var out []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the versioned API prefix, e.g. /api/v1
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
