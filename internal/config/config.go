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
	Upload UploadConfig
	CORS   CORSConfig
	Vision VisionConfig
	DB     DBConfig
	S3     S3Config
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// UploadConfig holds statement upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload ceiling in bytes.
func (u *UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// VisionProviderConfig holds settings for a single AI vision provider.
type VisionProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// VisionConfig holds the AI vision fallback settings. TimeoutSecs bounds a
// whole extraction across every provider in the chain.
type VisionConfig struct {
	TimeoutSecs int `mapstructure:"timeout_secs"`

	Primary   VisionProviderConfig `mapstructure:"primary"`
	Secondary VisionProviderConfig `mapstructure:"secondary"`
	Tertiary  VisionProviderConfig `mapstructure:"tertiary"`
}

// Timeout returns the overall extraction timeout.
func (v *VisionConfig) Timeout() time.Duration {
	return time.Duration(v.TimeoutSecs) * time.Second
}

// Enabled reports whether at least the primary provider is configured.
func (v *VisionConfig) Enabled() bool {
	return v.PrimaryConfig() != nil
}

// PrimaryConfig returns the primary provider config, or nil if not configured.
func (v *VisionConfig) PrimaryConfig() *VisionProviderConfig {
	if v.Primary.Provider != "" {
		return &v.Primary
	}
	return nil
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (v *VisionConfig) SecondaryConfig() *VisionProviderConfig {
	if v.Secondary.Provider != "" {
		return &v.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (v *VisionConfig) TertiaryConfig() *VisionProviderConfig {
	if v.Tertiary.Provider != "" {
		return &v.Tertiary
	}
	return nil
}

// DBConfig holds PostgreSQL connection settings for the analysis history.
type DBConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
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

// S3Config holds settings for the source file archive.
type S3Config struct {
	Enabled       bool   `mapstructure:"enabled"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// Load reads configuration from environment variables with the EQUITYLENS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("EQUITYLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	v.SetDefault("upload.max_file_size_mb", 16)

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Vision defaults; every provider is off until configured
	v.SetDefault("vision.timeout_secs", 90)
	for _, slot := range []string{"primary", "secondary", "tertiary"} {
		v.SetDefault("vision."+slot+".provider", "")
		v.SetDefault("vision."+slot+".api_key", "")
		v.SetDefault("vision."+slot+".default_model", "")
		v.SetDefault("vision."+slot+".timeout_secs", 60)
	}

	// DB defaults
	v.SetDefault("db.enabled", false)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "equitylens")
	v.SetDefault("db.password", "equitylens_secret")
	v.SetDefault("db.name", "equitylens_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "equitylens-statements")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "EQUITYLENS_SERVER_PORT",
		"server.read_timeout":            "EQUITYLENS_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "EQUITYLENS_SERVER_WRITE_TIMEOUT",
		"server.environment":             "EQUITYLENS_SERVER_ENVIRONMENT",
		"upload.max_file_size_mb":        "EQUITYLENS_UPLOAD_MAX_FILE_SIZE_MB",
		"cors.allowed_origins":           "EQUITYLENS_CORS_ALLOWED_ORIGINS",
		"vision.timeout_secs":            "EQUITYLENS_VISION_TIMEOUT_SECS",
		"vision.primary.provider":        "EQUITYLENS_VISION_PRIMARY_PROVIDER",
		"vision.primary.api_key":         "EQUITYLENS_VISION_PRIMARY_API_KEY",
		"vision.primary.default_model":   "EQUITYLENS_VISION_PRIMARY_DEFAULT_MODEL",
		"vision.primary.timeout_secs":    "EQUITYLENS_VISION_PRIMARY_TIMEOUT_SECS",
		"vision.secondary.provider":      "EQUITYLENS_VISION_SECONDARY_PROVIDER",
		"vision.secondary.api_key":       "EQUITYLENS_VISION_SECONDARY_API_KEY",
		"vision.secondary.default_model": "EQUITYLENS_VISION_SECONDARY_DEFAULT_MODEL",
		"vision.secondary.timeout_secs":  "EQUITYLENS_VISION_SECONDARY_TIMEOUT_SECS",
		"vision.tertiary.provider":       "EQUITYLENS_VISION_TERTIARY_PROVIDER",
		"vision.tertiary.api_key":        "EQUITYLENS_VISION_TERTIARY_API_KEY",
		"vision.tertiary.default_model":  "EQUITYLENS_VISION_TERTIARY_DEFAULT_MODEL",
		"vision.tertiary.timeout_secs":   "EQUITYLENS_VISION_TERTIARY_TIMEOUT_SECS",
		"db.enabled":                     "EQUITYLENS_DB_ENABLED",
		"db.host":                        "EQUITYLENS_DB_HOST",
		"db.port":                        "EQUITYLENS_DB_PORT",
		"db.user":                        "EQUITYLENS_DB_USER",
		"db.password":                    "EQUITYLENS_DB_PASSWORD",
		"db.name":                        "EQUITYLENS_DB_NAME",
		"db.sslmode":                     "EQUITYLENS_DB_SSLMODE",
		"db.max_open":                    "EQUITYLENS_DB_MAX_OPEN",
		"db.max_idle":                    "EQUITYLENS_DB_MAX_IDLE",
		"s3.enabled":                     "EQUITYLENS_S3_ENABLED",
		"s3.region":                      "EQUITYLENS_S3_REGION",
		"s3.bucket":                      "EQUITYLENS_S3_BUCKET",
		"s3.endpoint":                    "EQUITYLENS_S3_ENDPOINT",
		"s3.access_key":                  "EQUITYLENS_S3_ACCESS_KEY",
		"s3.secret_key":                  "EQUITYLENS_S3_SECRET_KEY",
		"s3.presign_expiry":              "EQUITYLENS_S3_PRESIGN_EXPIRY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if EQUITYLENS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("EQUITYLENS_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	if cfg.Upload.MaxFileSizeMB <= 0 {
		return nil, fmt.Errorf("upload.max_file_size_mb must be positive, got %d", cfg.Upload.MaxFileSizeMB)
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

	cfg.Vision = VisionConfig{
		TimeoutSecs: v.GetInt("vision.timeout_secs"),
		Primary:     providerConfig(v, "primary"),
		Secondary:   providerConfig(v, "secondary"),
		Tertiary:    providerConfig(v, "tertiary"),
	}

	cfg.DB = DBConfig{
		Enabled:  v.GetBool("db.enabled"),
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
		Enabled:       v.GetBool("s3.enabled"),
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}

	return cfg, nil
}

func providerConfig(v *viper.Viper, slot string) VisionProviderConfig {
	prefix := "vision." + slot + "."
	return VisionProviderConfig{
		Provider:     strings.ToLower(strings.TrimSpace(v.GetString(prefix + "provider"))),
		APIKey:       v.GetString(prefix + "api_key"),
		DefaultModel: v.GetString(prefix + "default_model"),
		TimeoutSecs:  v.GetInt(prefix + "timeout_secs"),
	}
}
