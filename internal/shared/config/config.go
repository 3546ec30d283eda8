package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIBaseURL is used when no API URL is configured.
const DefaultAPIBaseURL = "http://localhost:5000/api"

// Config holds application configuration.
type Config struct {
	APIBaseURL      string
	APIToken        string
	RequestTimeout  time.Duration
	MaxUploadBytes  int64
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
	DatabaseURL     string
	Env             string
	Port            string
	CORSAllowOrigin []string
	MockAPIToken    string
	// MockGenerateRate and MockGenerateBurst throttle agreement generation on
	// the stand-in backend. A zero rate disables the limit.
	MockGenerateRate  float64
	MockGenerateBurst int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	apiURL := getEnv("LEGALEASE_API_URL", "")
	if apiURL == "" {
		apiURL = getEnv("NEXT_PUBLIC_API_URL", DefaultAPIBaseURL)
	}

	return Config{
		APIBaseURL:      strings.TrimRight(strings.TrimSpace(apiURL), "/"),
		APIToken:        getEnv("LEGALEASE_API_TOKEN", ""),
		RequestTimeout:  getEnvDuration("LEGALEASE_TIMEOUT", 0),
		MaxUploadBytes:  getEnvInt64("LEGALEASE_MAX_UPLOAD_BYTES", 0),
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./downloads"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		Port:            getEnv("PORT", "5000"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		MockAPIToken:    getEnv("MOCK_API_TOKEN", ""),

		MockGenerateRate:  getEnvFloat("MOCK_GENERATE_RATE", 0),
		MockGenerateBurst: int(getEnvInt64("MOCK_GENERATE_BURST", 5)),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val < 0 {
		log.Printf("config %s invalid duration %q, using default", key, raw)
		return def
	}
	return val
}

func getEnvInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || val < 0 {
		log.Printf("config %s invalid integer %q, using default", key, raw)
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val < 0 {
		log.Printf("config %s invalid number %q, using default", key, raw)
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

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
