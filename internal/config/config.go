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
	JWT     JWTConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Redis   RedisConfig
	Email   EmailConfig
	Pricing PricingConfig
	Metrics MetricsConfig
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

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds object storage settings for uploaded images.
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
	Output string `mapstructure:"output"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RedisConfig holds the product lookup cache settings. An empty Addr disables the cache.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// EmailConfig holds purchase-order mail delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// PricingConfig holds VAT settings.
type PricingConfig struct {
	DomesticJurisdictions []string `mapstructure:"domestic_jurisdictions"`
	DefaultVATRate        float64  `mapstructure:"default_vat_rate"`
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from environment variables with the BACKOFFICE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BACKOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "backoffice")
	v.SetDefault("db.password", "backoffice_secret")
	v.SetDefault("db.name", "backoffice_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "backoffice")

	v.SetDefault("s3.region", "eu-west-1")
	v.SetDefault("s3.bucket", "backoffice-images")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 10)
	v.SetDefault("s3.presign_expiry", 3600)

	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "10m")

	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-west-1")
	v.SetDefault("email.from_address", "inkoop@example.nl")
	v.SetDefault("email.from_name", "Inkoop")

	v.SetDefault("pricing.domestic_jurisdictions", "NL,NLD,Netherlands,Nederland,The Netherlands")
	v.SetDefault("pricing.default_vat_rate", 21)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "BACKOFFICE_SERVER_PORT",
		"server.read_timeout":            "BACKOFFICE_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "BACKOFFICE_SERVER_WRITE_TIMEOUT",
		"server.environment":             "BACKOFFICE_SERVER_ENVIRONMENT",
		"db.host":                        "BACKOFFICE_DB_HOST",
		"db.port":                        "BACKOFFICE_DB_PORT",
		"db.user":                        "BACKOFFICE_DB_USER",
		"db.password":                    "BACKOFFICE_DB_PASSWORD",
		"db.name":                        "BACKOFFICE_DB_NAME",
		"db.sslmode":                     "BACKOFFICE_DB_SSLMODE",
		"db.max_open":                    "BACKOFFICE_DB_MAX_OPEN",
		"db.max_idle":                    "BACKOFFICE_DB_MAX_IDLE",
		"jwt.secret":                     "BACKOFFICE_JWT_SECRET",
		"jwt.access_expiry":              "BACKOFFICE_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":             "BACKOFFICE_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                     "BACKOFFICE_JWT_ISSUER",
		"s3.region":                      "BACKOFFICE_S3_REGION",
		"s3.bucket":                      "BACKOFFICE_S3_BUCKET",
		"s3.endpoint":                    "BACKOFFICE_S3_ENDPOINT",
		"s3.access_key":                  "BACKOFFICE_S3_ACCESS_KEY",
		"s3.secret_key":                  "BACKOFFICE_S3_SECRET_KEY",
		"s3.max_file_size_mb":            "BACKOFFICE_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":              "BACKOFFICE_S3_PRESIGN_EXPIRY",
		"log.level":                      "BACKOFFICE_LOG_LEVEL",
		"log.format":                     "BACKOFFICE_LOG_FORMAT",
		"log.output":                     "BACKOFFICE_LOG_OUTPUT",
		"cors.allowed_origins":           "BACKOFFICE_CORS_ALLOWED_ORIGINS",
		"redis.addr":                     "BACKOFFICE_REDIS_ADDR",
		"redis.password":                 "BACKOFFICE_REDIS_PASSWORD",
		"redis.db":                       "BACKOFFICE_REDIS_DB",
		"redis.ttl":                      "BACKOFFICE_REDIS_TTL",
		"email.provider":                 "BACKOFFICE_EMAIL_PROVIDER",
		"email.region":                   "BACKOFFICE_EMAIL_REGION",
		"email.from_address":             "BACKOFFICE_EMAIL_FROM_ADDRESS",
		"email.from_name":                "BACKOFFICE_EMAIL_FROM_NAME",
		"pricing.domestic_jurisdictions": "BACKOFFICE_PRICING_DOMESTIC_JURISDICTIONS",
		"pricing.default_vat_rate":       "BACKOFFICE_PRICING_DEFAULT_VAT_RATE",
		"metrics.enabled":                "BACKOFFICE_METRICS_ENABLED",
		"metrics.path":                   "BACKOFFICE_METRICS_PATH",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BACKOFFICE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BACKOFFICE_SERVER_PORT") == "" {
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
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
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
		Output: v.GetString("log.output"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Redis = RedisConfig{
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
		TTL:      v.GetDuration("redis.ttl"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Pricing = PricingConfig{
		DomesticJurisdictions: splitList(v.GetString("pricing.domestic_jurisdictions")),
		DefaultVATRate:        v.GetFloat64("pricing.default_vat_rate"),
	}
	if cfg.Pricing.DefaultVATRate < 0 || cfg.Pricing.DefaultVATRate > 100 {
		return nil, fmt.Errorf("pricing.default_vat_rate must be between 0 and 100, got %v", cfg.Pricing.DefaultVATRate)
	}
	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("metrics.enabled"),
		Path:    v.GetString("metrics.path"),
	}

	return cfg, nil
}

// splitList parses a comma-separated string, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
