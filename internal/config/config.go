package config

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

const (
	BlobBackendR2    = "r2"
	BlobBackendLocal = "local"
)

// DevJWTSecret is the signing secret used when JWT_SECRET is unset. It is
// refused in production.
const DevJWTSecret = "not-so-secret-now-is-it?"

var ErrInsecureJWTSecret = errors.New("JWT_SECRET must be set in production")

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	Endpoint        string // overrides the account endpoint, e.g. for MinIO
	PublicBaseURL   string
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type Config struct {
	DB_URL        string
	Port          string
	JWTSecret     string
	TokenTTL      time.Duration
	Environment   string
	LogLevel      string
	BlobBackend   string
	LocalBlobDir  string
	PublicBaseURL string // base for fileURL when BlobBackend is local
	MaxUploadSize int64
	AuditInterval time.Duration
	CorsConfig    cors.Options
	R2            R2Config
	Google        GoogleConfig
}

// Load reads ENV_FILE (default .env) if present and builds a Config from the
// process environment.
func Load() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.WithField("env_file", envFile).Debug("no env file found")
	}

	port := getEnv("PORT", "5001")
	return Config{
		DB_URL:        getEnv("DB_URL", "sqlite:sharevault.db"),
		Port:          port,
		JWTSecret:     getEnv("JWT_SECRET", DevJWTSecret),
		TokenTTL:      getDuration("TOKEN_TTL", time.Hour),
		Environment:   getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		BlobBackend:   getEnv("BLOB_BACKEND", BlobBackendLocal),
		LocalBlobDir:  getEnv("LOCAL_BLOB_DIR", "uploads"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:"+port+"/blobs"),
		MaxUploadSize: getInt64("MAX_UPLOAD_SIZE", 100<<20),
		AuditInterval: getDuration("AUDIT_INTERVAL", 0),
		CorsConfig:    CorsConfig(getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"})),
		R2: R2Config{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("R2_BUCKET_NAME", ""),
			Region:          getEnv("R2_REGION", "auto"),
			Endpoint:        getEnv("R2_ENDPOINT", ""),
			PublicBaseURL:   getEnv("R2_PUBLIC_BASE_URL", ""),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:"+port+"/auth/google/callback"),
		},
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate rejects settings that are only acceptable during development.
func (c Config) Validate() error {
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == DevJWTSecret) {
		return ErrInsecureJWTSecret
	}
	return nil
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	v, err := strconv.ParseInt(getEnv(key, ""), 10, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func getList(key string, fallback []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func CorsConfig(origins []string) cors.Options {
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	}
}
