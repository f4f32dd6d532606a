package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultTimezone = "Asia/Jakarta"

// GetOperatingTimezone is the single zone all stored wall clock dates are
// expressed in.
func GetOperatingTimezone() string {
	return getEnvOr("APP_TIMEZONE", defaultTimezone)
}

func GetOperatingLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(GetOperatingTimezone())
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", GetOperatingTimezone(), err)
	}
	return loc, nil
}

func GetJWTSecret() (string, error) {
	v := os.Getenv("JWT_SECRET")
	if v == "" {
		return "", fmt.Errorf("JWT_SECRET is missing")
	}
	return v, nil
}

func GetUseCaseTimeout() time.Duration {
	return durationEnvOr("USECASE_TIMEOUT", 10) * time.Second
}

// GetAutoFillInterval returns how often the sleep auto-fill job runs. Zero
// disables it.
func GetAutoFillInterval() time.Duration {
	return durationEnvOr("AUTOFILL_INTERVAL_MINUTES", 60) * time.Minute
}

func durationEnvOr(key string, fallback int) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(fallback)
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		GetLogrusInstance().Warnf("invalid %s=%q, using %d", key, v, fallback)
		return time.Duration(fallback)
	}
	return time.Duration(n)
}
