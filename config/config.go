package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string

	// DBUrl selects the store by scheme: mongodb:// or mongodb+srv:// for MongoDB,
	// postgres:// or postgresql:// for Postgres.
	DBUrl  string
	DBName string

	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	UploadDir     string
	PublicBaseURL string
	HomeDir       string

	RevalidateURL    string
	RevalidateSecret string

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	EventsCacheTTL time.Duration

	CORSAllowedOrigins []string
	RequestTimeout     time.Duration

	EmailProvider         string
	EmailFromAddress      string
	EmailFromName         string
	AWSRegion             string
	AWSAccessKeyID        string
	AWSSecretAccessKey    string
	SESInsecureSkipVerify bool
}

// ErrMissingDBUrl is returned by Load when neither MONGODB_URI nor DATABASE_URL is set.
var ErrMissingDBUrl = errors.New("MONGODB_URI or DATABASE_URL must be set")

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production .env might not exist and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:           env,
		Port:                  getEnv("PORT", "8080"),
		DBUrl:                 firstEnv("MONGODB_URI", "DATABASE_URL"),
		DBName:                getEnv("MONGODB_DB", "devevent"),
		CloudinaryURL:         os.Getenv("CLOUDINARY_URL"),
		CloudinaryCloudName:   os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:      os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:   os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:      getEnv("CLOUDINARY_FOLDER", "DevEvent"),
		UploadDir:             getEnv("UPLOAD_DIR", "public/uploads"),
		PublicBaseURL:         firstEnv("PUBLIC_BASE_URL", "NEXT_PUBLIC_BASE_URL"),
		HomeDir:               getEnv("HOME", "/"),
		RevalidateURL:         os.Getenv("REVALIDATE_URL"),
		RevalidateSecret:      os.Getenv("REVALIDATE_SECRET"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvInt("REDIS_DB", 0),
		EventsCacheTTL:        getEnvDuration("EVENTS_CACHE_TTL", 60*time.Second),
		CORSAllowedOrigins:    splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		RequestTimeout:        getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		EmailProvider:         getEnv("EMAIL_PROVIDER", "noop"),
		EmailFromAddress:      os.Getenv("EMAIL_FROM_ADDRESS"),
		EmailFromName:         getEnv("EMAIL_FROM_NAME", "DevEvent"),
		AWSRegion:             os.Getenv("AWS_REGION"),
		AWSAccessKeyID:        os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey:    os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SESInsecureSkipVerify: os.Getenv("SES_INSECURE_SKIP_VERIFY") == "true",
	}

	if cfg.DBUrl == "" {
		return nil, ErrMissingDBUrl
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:" + cfg.Port
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")
	if cfg.RevalidateURL == "" {
		cfg.RevalidateURL = cfg.PublicBaseURL + "/revalidate"
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func getEnvInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return n
}

// getEnvDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
