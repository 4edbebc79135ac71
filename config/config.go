package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AllowedOrigins    string `mapstructure:"ALLOWED_ORIGINS"`

	// Remote inventory / submission backend.
	GatewayBaseURL string        `mapstructure:"GATEWAY_BASE_URL"`
	GatewayTimeout time.Duration `mapstructure:"GATEWAY_TIMEOUT"`

	// Session and catalog storage.
	SessionBackend string        `mapstructure:"SESSION_BACKEND"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`
	CacheBackend   string        `mapstructure:"CACHE_BACKEND"`
	CatalogTTL     time.Duration `mapstructure:"CATALOG_TTL"`
	// Zero disables the background catalog refresh.
	CatalogRefresh time.Duration `mapstructure:"CATALOG_REFRESH_INTERVAL"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
}

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("GATEWAY_BASE_URL", "https://backend-inven-fab24.onrender.com/api/v1")
	viper.SetDefault("GATEWAY_TIMEOUT", 15*time.Second)
	viper.SetDefault("SESSION_BACKEND", BackendMemory)
	viper.SetDefault("SESSION_TTL", 2*time.Hour)
	viper.SetDefault("CACHE_BACKEND", BackendMemory)
	viper.SetDefault("CATALOG_TTL", 5*time.Minute)
	viper.SetDefault("CATALOG_REFRESH_INTERVAL", 4*time.Minute)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_CACHE_DB", 1)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// Origins splits ALLOWED_ORIGINS on commas.
func Origins() []string {
	var out []string
	for _, o := range strings.Split(AppConfig.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// UsesRedis reports whether any store is configured to use redis.
func UsesRedis() bool {
	return AppConfig.SessionBackend == BackendRedis || AppConfig.CacheBackend == BackendRedis
}
