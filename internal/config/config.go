package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App    AppConfig
	Server ServerConfig
	Mongo  MongoConfig
	JWT    JWTConfig
	Stream StreamConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Port        string
	Debug       bool
}

type ServerConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
	RateLimitRPS   int
	RateLimitBurst int
}

type MongoConfig struct {
	URI             string
	Database        string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

type JWTConfig struct {
	Secret     string
	ExpiryHour int
	Issuer     string
	CookieName string
}

// StreamConfig carries the credentials of the external video/chat provider.
// The provider owns transport and signaling; this service only issues room
// ids and provider tokens.
type StreamConfig struct {
	APIKey     string
	APISecret  string
	RoomPrefix string
}

func Load() *Config {
	return &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "GoGrind"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("PORT", "8080"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", "15s"),
			IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
			RateLimitRPS:   getEnvAsInt("RATE_LIMIT_RPS", 20),
			RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 40),
		},
		Mongo: MongoConfig{
			URI:             getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:        getEnv("MONGODB_DATABASE", "gogrind"),
			MaxPoolSize:     getEnvAsUint64("MONGODB_MAX_POOL_SIZE", 100),
			MinPoolSize:     getEnvAsUint64("MONGODB_MIN_POOL_SIZE", 5),
			MaxConnIdleTime: getEnvAsDuration("MONGODB_MAX_IDLE_TIME", "30m"),
			ConnectTimeout:  getEnvAsDuration("MONGODB_CONNECT_TIMEOUT", "10s"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "gogrind-dev-secret"),
			ExpiryHour: getEnvAsInt("JWT_EXPIRY_HOUR", 72),
			Issuer:     getEnv("JWT_ISSUER", "gogrind-backend"),
			CookieName: getEnv("JWT_COOKIE_NAME", "gogrind_token"),
		},
		Stream: StreamConfig{
			APIKey:     getEnv("STREAM_API_KEY", ""),
			APISecret:  getEnv("STREAM_API_SECRET", ""),
			RoomPrefix: getEnv("STREAM_ROOM_PREFIX", "gogrind"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseUint(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsSlice(key string, defaultValue string) []string {
	value := getEnv(key, defaultValue)
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
