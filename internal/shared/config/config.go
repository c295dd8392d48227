package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port             string
	CORSAllowOrigin  []string
	DatabaseURL      string
	Env              string
	LLMProvider      string
	LLMModel         string
	ResumesDir       string
	FeedURLs         []string
	LookbackDays     int
	ScanIntervalHrs  int
	GmailCredentials string
	GmailToken       string
	TargetCity       string
	TargetRegion     string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:      dbURL,
		Env:              env,
		LLMProvider:      getEnv("LLM_PROVIDER", "anthropic"),
		LLMModel:         getEnv("LLM_MODEL", "claude-sonnet-4-20250514"),
		ResumesDir:       getEnv("RESUMES_DIR", "./resumes"),
		FeedURLs:         splitAndTrim(getEnv("FEED_URLS", "")),
		LookbackDays:     getEnvInt("LOOKBACK_DAYS", 7),
		ScanIntervalHrs:  getEnvInt("SCAN_INTERVAL_HOURS", 6),
		GmailCredentials: getEnv("GMAIL_CREDENTIALS_FILE", "./credentials.json"),
		GmailToken:       getEnv("GMAIL_TOKEN_FILE", "./token.json"),
		TargetCity:       getEnv("TARGET_CITY", ""),
		TargetRegion:     getEnv("TARGET_REGION", ""),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		log.Printf("%s: invalid value %q, using %d", key, raw, def)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
