package config

import (
	"os"
	"testing"
	"time"
)

func unsetEnvVars() {
	vars := []string{
		"PORT", "API_URL", "POLL_INTERVAL", "REQUEST_TIMEOUT", "DEFAULT_PERIOD",
		"SERIAL_PORT", "SERIAL_BAUD", "MAX_RETRIES", "RETRY_DELAY",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	unsetEnvVars()

	cfg := LoadConfig()

	if cfg.Port != "8080" {
		t.Errorf("expected Port to be '8080', got '%s'", cfg.Port)
	}
	if cfg.APIURL != "http://127.0.0.1:8000" {
		t.Errorf("unexpected default APIURL: %s", cfg.APIURL)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Errorf("expected PollInterval to be 2s, got %v", cfg.PollInterval)
	}
	if cfg.RequestTimeout != 1500*time.Millisecond {
		t.Errorf("expected RequestTimeout to be 1.5s, got %v", cfg.RequestTimeout)
	}
	if cfg.DefaultPeriod != "1day" {
		t.Errorf("expected DefaultPeriod to be '1day', got '%s'", cfg.DefaultPeriod)
	}
	if cfg.SerialPort != "/dev/ttyUSB0" {
		t.Errorf("expected SerialPort to be '/dev/ttyUSB0', got '%s'", cfg.SerialPort)
	}
	if cfg.SerialBaud != 9600 {
		t.Errorf("expected SerialBaud to be 9600, got %d", cfg.SerialBaud)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("expected MaxRetries to be 3, got %d", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("expected RetryDelay to be 2s, got %v", cfg.RetryDelay)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	unsetEnvVars()

	os.Setenv("PORT", "9090")
	os.Setenv("API_URL", "http://backend:8000")
	os.Setenv("POLL_INTERVAL", "500ms")
	os.Setenv("REQUEST_TIMEOUT", "3s")
	os.Setenv("DEFAULT_PERIOD", "1month")
	os.Setenv("SERIAL_PORT", "/dev/ttyACM0")
	os.Setenv("SERIAL_BAUD", "115200")
	os.Setenv("MAX_RETRIES", "5")
	os.Setenv("RETRY_DELAY", "1s")
	defer unsetEnvVars()

	cfg := LoadConfig()

	if cfg.Port != "9090" {
		t.Errorf("expected Port to be '9090', got '%s'", cfg.Port)
	}
	if cfg.APIURL != "http://backend:8000" {
		t.Errorf("expected APIURL to be 'http://backend:8000', got '%s'", cfg.APIURL)
	}
	if cfg.PollInterval != 500*time.Millisecond {
		t.Errorf("expected PollInterval to be 500ms, got %v", cfg.PollInterval)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Errorf("expected RequestTimeout to be 3s, got %v", cfg.RequestTimeout)
	}
	if cfg.DefaultPeriod != "1month" {
		t.Errorf("expected DefaultPeriod to be '1month', got '%s'", cfg.DefaultPeriod)
	}
	if cfg.SerialPort != "/dev/ttyACM0" {
		t.Errorf("expected SerialPort to be '/dev/ttyACM0', got '%s'", cfg.SerialPort)
	}
	if cfg.SerialBaud != 115200 {
		t.Errorf("expected SerialBaud to be 115200, got %d", cfg.SerialBaud)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("expected MaxRetries to be 5, got %d", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 1*time.Second {
		t.Errorf("expected RetryDelay to be 1s, got %v", cfg.RetryDelay)
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	unsetEnvVars()

	// Unparseable values fall back to defaults rather than failing startup.
	os.Setenv("POLL_INTERVAL", "not-a-duration")
	os.Setenv("SERIAL_BAUD", "fast")
	os.Setenv("MAX_RETRIES", "many")
	defer unsetEnvVars()

	cfg := LoadConfig()

	if cfg.PollInterval != 2*time.Second {
		t.Errorf("expected PollInterval fallback 2s, got %v", cfg.PollInterval)
	}
	if cfg.SerialBaud != 9600 {
		t.Errorf("expected SerialBaud fallback 9600, got %d", cfg.SerialBaud)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("expected MaxRetries fallback 3, got %d", cfg.MaxRetries)
	}
}
