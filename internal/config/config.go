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
	Server  ServerConfig
	DB      DBConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Engine  EngineConfig
	Extract ExtractConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
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

// S3Config holds AWS S3 settings for stored bill images.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EngineProviderConfig holds settings for a single recognition engine.
type EngineProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
	BinaryPath   string `mapstructure:"binary_path"`
}

// EngineConfig holds recognition engine settings with primary/secondary
// fallback support.
type EngineConfig struct {
	Primary   EngineProviderConfig `mapstructure:"primary"`
	Secondary EngineProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary engine config, or nil if not configured.
func (e *EngineConfig) SecondaryConfig() *EngineProviderConfig {
	if e.Secondary.Provider != "" {
		return &e.Secondary
	}
	return nil
}

// ExtractConfig tunes the text extraction pipeline heuristics.
type ExtractConfig struct {
	MathTolerance  float64 `mapstructure:"math_tolerance"`
	MinItemNumbers int     `mapstructure:"min_item_numbers"`
}

// Load reads configuration from environment variables with the BILLSCAN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "billscan")
	v.SetDefault("db.password", "billscan_secret")
	v.SetDefault("db.name", "billscan_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "billscan-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 20)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Engine defaults: local tesseract transcription, no fallback
	v.SetDefault("engine.primary.provider", "tesseract")
	v.SetDefault("engine.primary.api_key", "")
	v.SetDefault("engine.primary.default_model", "")
	v.SetDefault("engine.primary.timeout_secs", 60)
	v.SetDefault("engine.primary.binary_path", "tesseract")
	v.SetDefault("engine.secondary.provider", "")
	v.SetDefault("engine.secondary.api_key", "")
	v.SetDefault("engine.secondary.default_model", "")
	v.SetDefault("engine.secondary.timeout_secs", 120)
	v.SetDefault("engine.secondary.binary_path", "")

	// Extract defaults mirror the documented pipeline constants
	v.SetDefault("extract.math_tolerance", 1.0)
	v.SetDefault("extract.min_item_numbers", 3)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "BILLSCAN_SERVER_PORT",
		"server.read_timeout":            "BILLSCAN_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "BILLSCAN_SERVER_WRITE_TIMEOUT",
		"server.environment":             "BILLSCAN_SERVER_ENVIRONMENT",
		"db.host":                        "BILLSCAN_DB_HOST",
		"db.port":                        "BILLSCAN_DB_PORT",
		"db.user":                        "BILLSCAN_DB_USER",
		"db.password":                    "BILLSCAN_DB_PASSWORD",
		"db.name":                        "BILLSCAN_DB_NAME",
		"db.sslmode":                     "BILLSCAN_DB_SSLMODE",
		"db.max_open":                    "BILLSCAN_DB_MAX_OPEN",
		"db.max_idle":                    "BILLSCAN_DB_MAX_IDLE",
		"s3.region":                      "BILLSCAN_S3_REGION",
		"s3.bucket":                      "BILLSCAN_S3_BUCKET",
		"s3.endpoint":                    "BILLSCAN_S3_ENDPOINT",
		"s3.access_key":                  "BILLSCAN_S3_ACCESS_KEY",
		"s3.secret_key":                  "BILLSCAN_S3_SECRET_KEY",
		"s3.max_file_size_mb":            "BILLSCAN_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":              "BILLSCAN_S3_PRESIGN_EXPIRY",
		"log.level":                      "BILLSCAN_LOG_LEVEL",
		"log.format":                     "BILLSCAN_LOG_FORMAT",
		"cors.allowed_origins":           "BILLSCAN_CORS_ALLOWED_ORIGINS",
		"engine.primary.provider":        "BILLSCAN_ENGINE_PRIMARY_PROVIDER",
		"engine.primary.api_key":         "BILLSCAN_ENGINE_PRIMARY_API_KEY",
		"engine.primary.default_model":   "BILLSCAN_ENGINE_PRIMARY_DEFAULT_MODEL",
		"engine.primary.timeout_secs":    "BILLSCAN_ENGINE_PRIMARY_TIMEOUT_SECS",
		"engine.primary.binary_path":     "BILLSCAN_ENGINE_PRIMARY_BINARY_PATH",
		"engine.secondary.provider":      "BILLSCAN_ENGINE_SECONDARY_PROVIDER",
		"engine.secondary.api_key":       "BILLSCAN_ENGINE_SECONDARY_API_KEY",
		"engine.secondary.default_model": "BILLSCAN_ENGINE_SECONDARY_DEFAULT_MODEL",
		"engine.secondary.timeout_secs":  "BILLSCAN_ENGINE_SECONDARY_TIMEOUT_SECS",
		"engine.secondary.binary_path":   "BILLSCAN_ENGINE_SECONDARY_BINARY_PATH",
		"extract.math_tolerance":         "BILLSCAN_EXTRACT_MATH_TOLERANCE",
		"extract.min_item_numbers":       "BILLSCAN_EXTRACT_MIN_ITEM_NUMBERS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BILLSCAN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BILLSCAN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
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
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Engine = EngineConfig{
		Primary: EngineProviderConfig{
			Provider:     v.GetString("engine.primary.provider"),
			APIKey:       v.GetString("engine.primary.api_key"),
			DefaultModel: v.GetString("engine.primary.default_model"),
			TimeoutSecs:  v.GetInt("engine.primary.timeout_secs"),
			BinaryPath:   v.GetString("engine.primary.binary_path"),
		},
		Secondary: EngineProviderConfig{
			Provider:     v.GetString("engine.secondary.provider"),
			APIKey:       v.GetString("engine.secondary.api_key"),
			DefaultModel: v.GetString("engine.secondary.default_model"),
			TimeoutSecs:  v.GetInt("engine.secondary.timeout_secs"),
			BinaryPath:   v.GetString("engine.secondary.binary_path"),
		},
	}

	cfg.Extract = ExtractConfig{
		MathTolerance:  v.GetFloat64("extract.math_tolerance"),
		MinItemNumbers: v.GetInt("extract.min_item_numbers"),
	}

	return cfg, nil
}
