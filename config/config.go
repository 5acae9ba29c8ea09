package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	APIURL         string
	PollInterval   time.Duration
	RequestTimeout time.Duration
	DefaultPeriod  string
	// Collector configuration
	SerialPort string
	SerialBaud uint
	MaxRetries int
	RetryDelay time.Duration
}

func LoadConfig() Config {
	// Optional .env for local development; system environment wins.
	_ = godotenv.Load()

	return Config{
		Port:           getEnv("PORT", "8080"),
		APIURL:         getEnv("API_URL", "http://127.0.0.1:8000"),
		PollInterval:   getEnvDuration("POLL_INTERVAL", 2*time.Second),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 1500*time.Millisecond),
		DefaultPeriod:  getEnv("DEFAULT_PERIOD", "1day"),
		// Collector configuration
		SerialPort: getEnv("SERIAL_PORT", "/dev/ttyUSB0"),
		SerialBaud: getEnvUint("SERIAL_BAUD", 9600),
		MaxRetries: getEnvInt("MAX_RETRIES", 3),
		RetryDelay: getEnvDuration("RETRY_DELAY", 2*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvUint(key string, defaultValue uint) uint {
	if value := os.Getenv(key); value != "" {
		if uintVal, err := strconv.ParseUint(value, 10, 32); err == nil {
			return uint(uintVal)
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
