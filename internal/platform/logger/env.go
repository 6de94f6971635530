package logger

import (
	"os"
	"strconv"
	"strings"
)

// config imports this package, so LOG_* is read straight from the environment

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envBool accepts 1, true and yes in any case; anything else set is false
func envBool(key string, def bool) bool {
	switch v := strings.ToLower(envString(key, "")); v {
	case "":
		return def
	case "1", "true", "yes":
		return true
	}
	return false
}

// envInt falls back to def for anything but a non-negative integer
func envInt(key string, def int) int {
	n, err := strconv.Atoi(envString(key, ""))
	if err != nil || n < 0 {
		return def
	}
	return n
}
