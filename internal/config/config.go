package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Store  StoreConfig
	DB     DBConfig
	S3     S3Config
	OCR    OCRConfig
	CORS   CORSConfig
	Upload UploadConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StoreConfig selects the document store backend.
type StoreConfig struct {
	Backend string `mapstructure:"backend"` // "memory" or "postgres"
}

// DBConfig holds PostgreSQL connection settings for the durable store.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for upload archiving. An empty Bucket
// disables archiving.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// OCRConfig holds settings for the external OCR binaries.
type OCRConfig struct {
	Tesseract   string `mapstructure:"tesseract"`
	Pdftoppm    string `mapstructure:"pdftoppm"`
	Language    string `mapstructure:"language"`
	DPI         int    `mapstructure:"dpi"`
	MaxPages    int    `mapstructure:"max_pages"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UploadConfig holds upload validation settings.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// Load reads configuration from environment variables with the
// CLAIMLENS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CLAIMLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Store defaults
	v.SetDefault("store.backend", "memory")

	// DB defaults (used only when store.backend = postgres)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "claimlens")
	v.SetDefault("db.password", "claimlens_secret")
	v.SetDefault("db.name", "claimlens_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults (archiving disabled unless a bucket is set)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")

	// OCR defaults
	v.SetDefault("ocr.tesseract", "tesseract")
	v.SetDefault("ocr.pdftoppm", "pdftoppm")
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.dpi", 300)
	v.SetDefault("ocr.max_pages", 0)
	v.SetDefault("ocr.timeout_secs", 120)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 20)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "CLAIMLENS_SERVER_PORT",
		"server.read_timeout":     "CLAIMLENS_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "CLAIMLENS_SERVER_WRITE_TIMEOUT",
		"server.environment":      "CLAIMLENS_SERVER_ENVIRONMENT",
		"log.level":               "CLAIMLENS_LOG_LEVEL",
		"log.format":              "CLAIMLENS_LOG_FORMAT",
		"store.backend":           "CLAIMLENS_STORE_BACKEND",
		"db.host":                 "CLAIMLENS_DB_HOST",
		"db.port":                 "CLAIMLENS_DB_PORT",
		"db.user":                 "CLAIMLENS_DB_USER",
		"db.password":             "CLAIMLENS_DB_PASSWORD",
		"db.name":                 "CLAIMLENS_DB_NAME",
		"db.sslmode":              "CLAIMLENS_DB_SSLMODE",
		"db.max_open":             "CLAIMLENS_DB_MAX_OPEN",
		"db.max_idle":             "CLAIMLENS_DB_MAX_IDLE",
		"s3.region":               "CLAIMLENS_S3_REGION",
		"s3.bucket":               "CLAIMLENS_S3_BUCKET",
		"s3.endpoint":             "CLAIMLENS_S3_ENDPOINT",
		"s3.access_key":           "CLAIMLENS_S3_ACCESS_KEY",
		"s3.secret_key":           "CLAIMLENS_S3_SECRET_KEY",
		"ocr.tesseract":           "CLAIMLENS_OCR_TESSERACT",
		"ocr.pdftoppm":            "CLAIMLENS_OCR_PDFTOPPM",
		"ocr.language":            "CLAIMLENS_OCR_LANGUAGE",
		"ocr.dpi":                 "CLAIMLENS_OCR_DPI",
		"ocr.max_pages":           "CLAIMLENS_OCR_MAX_PAGES",
		"ocr.timeout_secs":        "CLAIMLENS_OCR_TIMEOUT_SECS",
		"cors.allowed_origins":    "CLAIMLENS_CORS_ALLOWED_ORIGINS",
		"upload.max_file_size_mb": "CLAIMLENS_UPLOAD_MAX_FILE_SIZE_MB",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if
	// CLAIMLENS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CLAIMLENS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Store = StoreConfig{
		Backend: v.GetString("store.backend"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.OCR = OCRConfig{
		Tesseract:   v.GetString("ocr.tesseract"),
		Pdftoppm:    v.GetString("ocr.pdftoppm"),
		Language:    v.GetString("ocr.language"),
		DPI:         v.GetInt("ocr.dpi"),
		MaxPages:    v.GetInt("ocr.max_pages"),
		TimeoutSecs: v.GetInt("ocr.timeout_secs"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}

	return cfg, nil
}
