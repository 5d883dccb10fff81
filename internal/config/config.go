package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr    string
	CORSOrigins []string

	// Optional bearer-token gate for the API. When enabled, clients obtain a
	// guest token from /auth/guest and send it on every call.
	EnableGuestAuth bool
	AuthSecret      string

	// Setup-screen defaults applied when a session request omits them.
	DefaultCount   int
	DefaultMinutes int
}

func FromEnv() Config {
	return Config{
		HTTPAddr:        envOr("HTTP_ADDR", ":8080"),
		CORSOrigins:     csvOr("CORS_ORIGINS", "http://localhost:3000"),
		EnableGuestAuth: envBool("ENABLE_GUEST_AUTH", false),
		AuthSecret:      envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		DefaultCount:    envInt("DEFAULT_QUESTION_COUNT", 10),
		DefaultMinutes:  envInt("DEFAULT_MINUTES", 10),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
