package config

import (
	"os"
	"strconv"
)

// Operating hours form a single daily window: bookings may start at or after
// OpenHour and strictly before CloseHour.
const (
	defaultOpenHour  = 9
	defaultCloseHour = 18
)

func OpenHour() int {
	return hourFromEnv("OPEN_HOUR", defaultOpenHour)
}

func CloseHour() int {
	return hourFromEnv("CLOSE_HOUR", defaultCloseHour)
}

func hourFromEnv(key string, fallback int) int {
	if env := os.Getenv(key); env != "" {
		if h, err := strconv.Atoi(env); err == nil && h >= 0 && h <= 24 {
			return h
		}
	}
	return fallback
}
