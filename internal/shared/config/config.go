package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the seating service
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// Kafka table-status stream
	Kafka KafkaConfig

	// JWT configuration
	JWT JWTConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// Seating behaviour
	Seating SeatingConfig

	// Availability subsystem (external collaborator)
	Availability AvailabilityConfig

	// Logging
	LogLevel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	// TTL values for different operations
	WizardSessionTTL time.Duration
	OccupancyTTL     time.Duration
	CacheTTL         time.Duration
}

// KafkaConfig holds table-status stream configuration
type KafkaConfig struct {
	Enabled          bool
	Brokers          []string
	TableStatusTopic string
	RetryMax         int
	TimeoutMs        int
}

// JWTConfig holds staff token validation configuration
type JWTConfig struct {
	Secret       string
	StaffKeyHash string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled         bool          `json:"enabled"`
	WindowDuration  time.Duration `json:"window_duration"`
	DefaultRequests int           `json:"default_requests"`
	PublicRequests  int           `json:"public_requests"`
	SeatingRequests int           `json:"seating_requests"`
	AdminRequests   int           `json:"admin_requests"`
	HealthRequests  int           `json:"health_requests"`
	WhitelistedIPs  []string      `json:"whitelisted_ips"`
}

// SeatingConfig holds restaurant seating behaviour knobs
type SeatingConfig struct {
	Timezone            string        // IANA zone the restaurant operates in
	DefaultStartHour    int           // fallback start hour for non-today seatings
	DefaultDuration     time.Duration // default allocation length
	ReservationDuration time.Duration // window reserved from a reservation's own start
	CommitTimeout       time.Duration // upper bound on an in-flight wizard commit
}

// AvailabilityConfig holds the opaque availability subsystem endpoint
type AvailabilityConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		// Database configuration
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "seatly_db"),
			User:     getEnv("DB_USER", "seatly_user"),
			Password: getEnv("DB_PASSWORD", "seatly_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		// Redis configuration
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),

			WizardSessionTTL: getDurationEnv("REDIS_WIZARD_SESSION_TTL", 30*time.Minute),
			OccupancyTTL:     getDurationEnv("REDIS_OCCUPANCY_TTL", 30*time.Second),
			CacheTTL:         getDurationEnv("REDIS_CACHE_TTL", 1*time.Hour),
		},

		// Kafka configuration
		Kafka: KafkaConfig{
			Enabled:          getBoolEnv("KAFKA_ENABLED", false),
			Brokers:          getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			TableStatusTopic: getEnv("KAFKA_TABLE_STATUS_TOPIC", "table-status"),
			RetryMax:         getIntEnv("KAFKA_RETRY_MAX", 3),
			TimeoutMs:        getIntEnv("KAFKA_TIMEOUT_MS", 10000),
		},

		// JWT configuration
		JWT: JWTConfig{
			Secret:       getEnv("JWT_SECRET", "your-super-secret-jwt-key"),
			StaffKeyHash: getEnv("STAFF_KEY_HASH", ""),
		},

		// Rate limiting
		RateLimit: RateLimitConfig{
			Enabled:         getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:  getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests: getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			PublicRequests:  getIntEnv("RATE_LIMIT_PUBLIC_REQUESTS", 100),
			SeatingRequests: getIntEnv("RATE_LIMIT_SEATING_REQUESTS", 30),
			AdminRequests:   getIntEnv("RATE_LIMIT_ADMIN_REQUESTS", 200),
			HealthRequests:  getIntEnv("RATE_LIMIT_HEALTH_REQUESTS", 120),
			WhitelistedIPs:  getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		// Seating behaviour
		Seating: SeatingConfig{
			Timezone:            getEnv("RESTAURANT_TIMEZONE", "Asia/Tokyo"),
			DefaultStartHour:    getIntEnv("SEATING_DEFAULT_START_HOUR", 18),
			DefaultDuration:     getDurationEnv("SEATING_DEFAULT_DURATION", 90*time.Minute),
			ReservationDuration: getDurationEnv("SEATING_RESERVATION_DURATION", 60*time.Minute),
			CommitTimeout:       getDurationEnv("WIZARD_COMMIT_TIMEOUT", 10*time.Second),
		},

		// Availability subsystem
		Availability: AvailabilityConfig{
			BaseURL: getEnv("AVAILABILITY_BASE_URL", "http://localhost:8081"),
			Timeout: getDurationEnv("AVAILABILITY_TIMEOUT", 5*time.Second),
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// Location resolves the restaurant's timezone, falling back to UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Seating.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
