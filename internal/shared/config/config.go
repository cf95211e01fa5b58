package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	DatabaseURL     string

	// RequirementsSource selects where the required-document list comes
	// from: "static" (built-in table) or "monday" (missing-document feed).
	RequirementsSource string

	MondayToken               string
	MondayBoardID             string
	MondayAPIURL              string
	MondayApplicantIDColumn   string
	MondayApplicantTypeColumn string

	WebhookURL         string
	WebhookTimeout     time.Duration
	DefaultReferenceID string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is empty; documents will not survive restarts")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		DatabaseURL:     dbURL,

		RequirementsSource: normalizeSource(getEnv("REQUIREMENTS_SOURCE", "static")),

		MondayToken:               getEnv("MONDAY_TOKEN", ""),
		MondayBoardID:             getEnv("MONDAY_BOARD_ID", ""),
		MondayAPIURL:              getEnv("MONDAY_API_URL", "https://api.monday.com/v2"),
		MondayApplicantIDColumn:   getEnv("MONDAY_APPLICANT_ID_COLUMN", "text_mksxyax3"),
		MondayApplicantTypeColumn: getEnv("MONDAY_APPLICANT_TYPE_COLUMN", "color_mksyqx5h"),

		WebhookURL:         getEnv("WEBHOOK_URL", ""),
		WebhookTimeout:     getEnvSeconds("WEBHOOK_TIMEOUT_SECONDS", 30*time.Second),
		DefaultReferenceID: getEnv("DEFAULT_REFERENCE_ID", "default"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvSeconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return def
	}
	return time.Duration(parsed) * time.Second
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
	default:
		return "dev"
	}
}

func normalizeSource(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "monday":
		return "monday"
	default:
		return "static"
	}
}
