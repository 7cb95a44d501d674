package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"resume-intake/internal/shared/telemetry"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

// Archive backends.
const (
	ArchiveNone  = "none"
	ArchiveLocal = "local"
	ArchiveS3    = "s3"
	ArchiveMinio = "minio"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	CORSAllowOrigin []string
	ShutdownTimeout time.Duration

	StoreDriver     string
	DatabaseURL     string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	UploadDir        string
	MaxUploadBytes   int64
	UploadRatePerSec float64
	UploadRateBurst  int

	ArchiveStore    string
	ArchiveLocalDir string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
	MinioEndpoint   string
	MinioAccessKey  string
	MinioSecretKey  string
	MinioBucket     string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files; real environment always wins.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	mongoURI := os.Getenv("MONGO_URI")

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		Env:              env,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ShutdownTimeout:  getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		StoreDriver:      normalizeStoreDriver(os.Getenv("STORE_DRIVER"), dbURL, mongoURI),
		DatabaseURL:      dbURL,
		MongoURI:         mongoURI,
		MongoDatabase:    getEnv("MONGO_DATABASE", "job_scraping_db"),
		MongoCollection:  getEnv("MONGO_COLLECTION", "resumes"),
		UploadDir:        getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes:   getEnvAsInt64("MAX_UPLOAD_BYTES", 10<<20),
		UploadRatePerSec: getEnvAsFloat("UPLOAD_RATE_PER_SEC", 0),
		UploadRateBurst:  int(getEnvAsInt64("UPLOAD_RATE_BURST", 5)),
		ArchiveStore:     normalizeArchiveStore(getEnv("ARCHIVE_STORE", ArchiveNone)),
		ArchiveLocalDir:  getEnv("ARCHIVE_LOCAL_DIR", "./data/archive"),
		AWSRegion:        getEnv("AWS_REGION", ""),
		S3Bucket:         getEnv("S3_BUCKET", ""),
		S3Prefix:         getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:      getEnv("SSE_KMS_KEY_ID", ""),
		MinioEndpoint:    getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey:   getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:   getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:      getEnv("MINIO_BUCKET", ""),
	}

	if env == "production" && cfg.StoreDriver == StoreMemory {
		telemetry.Warn("config.production_memory_store", map[string]any{
			"hint": "set DATABASE_URL or MONGO_URI",
		})
	}

	return cfg
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			telemetry.Warn("config.env_file_invalid", map[string]any{"path": path, "err": err.Error()})
		}
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvAsInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return val
}

func getEnvAsFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return val
}

func getEnvAsDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
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
	default:
		return "dev"
	}
}

// normalizeStoreDriver picks the explicit driver when valid, otherwise infers
// it from whichever connection string is present.
func normalizeStoreDriver(raw, dbURL, mongoURI string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "postgresql", "pg":
		return StorePostgres
	case "mongo", "mongodb":
		return StoreMongo
	case "memory", "mem":
		return StoreMemory
	}
	switch {
	case strings.TrimSpace(dbURL) != "":
		return StorePostgres
	case strings.TrimSpace(mongoURI) != "":
		return StoreMongo
	default:
		return StoreMemory
	}
}

func normalizeArchiveStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "local":
		return ArchiveLocal
	case "s3":
		return ArchiveS3
	case "minio":
		return ArchiveMinio
	default:
		return ArchiveNone
	}
}

// IsDevLike reports whether the environment tolerates falling back to
// in-memory storage when the configured store is unreachable.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}
