package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Store backends selectable via STORE_BACKEND.
const (
	StoreBackendPostgres = "postgres"
	StoreBackendRedis    = "redis"
	StoreBackendMemory   = "memory"
)

type Config struct {
	ServerPort   int
	LogLevel     string
	StoreBackend string
	Database     DatabaseConfig
	Redis        RedisConfig
	OpenWeather  OpenWeatherConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// OpenWeatherConfig holds credentials and endpoints for the OpenWeatherMap API.
// The clients receive it at construction and never read the environment at call time.
type OpenWeatherConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

func LoadConfig() (Config, error) {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnvInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "userweather"),
		Password: getEnv("DB_PASSWORD", "password"),
		DBName:   getEnv("DB_NAME", "userweather_db"),
		UseSSL:   getEnv("DB_SSL", "false") == "true",
	}

	redisConfig := RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	timeoutStr := getEnv("OPENWEATHER_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		return Config{}, errors.New("invalid OPENWEATHER_TIMEOUT")
	}

	owConfig := OpenWeatherConfig{
		APIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		BaseURL: getEnv("OPENWEATHER_BASE_URL", "https://api.openweathermap.org"),
		Timeout: timeout,
	}
	if owConfig.APIKey == "" {
		return Config{}, errors.New("OPENWEATHER_API_KEY is required")
	}

	backend := getEnv("STORE_BACKEND", StoreBackendPostgres)
	switch backend {
	case StoreBackendPostgres, StoreBackendRedis, StoreBackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", backend)
	}

	return Config{
		ServerPort:   getEnvInt("SERVER_PORT", 8080),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		StoreBackend: backend,
		Database:     dbConfig,
		Redis:        redisConfig,
		OpenWeather:  owConfig,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}
