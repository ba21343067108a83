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
	Server   ServerConfig
	DB       DBConfig
	JWT      JWTConfig
	S3       S3Config
	AI       AIConfig
	CORS     CORSConfig
	Reminder ReminderConfig
	Email    EmailConfig
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

// S3Config holds AWS S3 settings. NoticeBucket holds tax-authority notices;
// DocumentBucket holds everything else.
type S3Config struct {
	Region         string `mapstructure:"region"`
	DocumentBucket string `mapstructure:"document_bucket"`
	NoticeBucket   string `mapstructure:"notice_bucket"`
	Endpoint       string `mapstructure:"endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	PresignExpiry  int64  `mapstructure:"presign_expiry"`
}

// AIProviderConfig holds settings for one upstream AI endpoint.
type AIProviderConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// AIConfig holds the AI provider settings for each pipeline stage.
type AIConfig struct {
	Classifier AIProviderConfig `mapstructure:"classifier"`
	Extractor  AIProviderConfig `mapstructure:"extractor"`
	Financial  AIProviderConfig `mapstructure:"financial"`
	Identity   AIProviderConfig `mapstructure:"identity"`
	Summarizer AIProviderConfig `mapstructure:"summarizer"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ReminderConfig holds notice deadline reminder worker settings.
type ReminderConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	LookaheadDays    int `mapstructure:"lookahead_days"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// Load reads configuration from environment variables with the FIRMDESK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FIRMDESK")
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
	v.SetDefault("db.user", "firmdesk")
	v.SetDefault("db.password", "firmdesk_secret")
	v.SetDefault("db.name", "firmdesk_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "firmdesk")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.document_bucket", "client-documents")
	v.SetDefault("s3.notice_bucket", "irs-notices")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Reminder worker defaults
	v.SetDefault("reminder.poll_interval_secs", 3600)
	v.SetDefault("reminder.lookahead_days", 7)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@firmdesk.app")
	v.SetDefault("email.from_name", "FirmDesk")

	// AI provider defaults
	v.SetDefault("ai.classifier.api_key", "")
	v.SetDefault("ai.classifier.model", "claude-sonnet-4-20250514")
	v.SetDefault("ai.classifier.timeout_secs", 60)
	v.SetDefault("ai.extractor.api_key", "")
	v.SetDefault("ai.extractor.model", "")
	v.SetDefault("ai.extractor.timeout_secs", 60)
	v.SetDefault("ai.financial.api_key", "")
	v.SetDefault("ai.financial.model", "")
	v.SetDefault("ai.financial.timeout_secs", 120)
	v.SetDefault("ai.identity.api_key", "")
	v.SetDefault("ai.identity.model", "")
	v.SetDefault("ai.identity.timeout_secs", 60)
	v.SetDefault("ai.summarizer.api_key", "")
	v.SetDefault("ai.summarizer.model", "")
	v.SetDefault("ai.summarizer.timeout_secs", 30)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "FIRMDESK_SERVER_PORT",
		"server.read_timeout":        "FIRMDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "FIRMDESK_SERVER_WRITE_TIMEOUT",
		"server.environment":         "FIRMDESK_SERVER_ENVIRONMENT",
		"db.host":                    "FIRMDESK_DB_HOST",
		"db.port":                    "FIRMDESK_DB_PORT",
		"db.user":                    "FIRMDESK_DB_USER",
		"db.password":                "FIRMDESK_DB_PASSWORD",
		"db.name":                    "FIRMDESK_DB_NAME",
		"db.sslmode":                 "FIRMDESK_DB_SSLMODE",
		"db.max_open":                "FIRMDESK_DB_MAX_OPEN",
		"db.max_idle":                "FIRMDESK_DB_MAX_IDLE",
		"jwt.secret":                 "FIRMDESK_JWT_SECRET",
		"jwt.access_expiry":          "FIRMDESK_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":         "FIRMDESK_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                 "FIRMDESK_JWT_ISSUER",
		"s3.region":                  "FIRMDESK_S3_REGION",
		"s3.document_bucket":         "FIRMDESK_S3_DOCUMENT_BUCKET",
		"s3.notice_bucket":           "FIRMDESK_S3_NOTICE_BUCKET",
		"s3.endpoint":                "FIRMDESK_S3_ENDPOINT",
		"s3.access_key":              "FIRMDESK_S3_ACCESS_KEY",
		"s3.secret_key":              "FIRMDESK_S3_SECRET_KEY",
		"s3.presign_expiry":          "FIRMDESK_S3_PRESIGN_EXPIRY",
		"cors.allowed_origins":       "FIRMDESK_CORS_ALLOWED_ORIGINS",
		"reminder.poll_interval_secs": "FIRMDESK_REMINDER_POLL_INTERVAL_SECS",
		"reminder.lookahead_days":    "FIRMDESK_REMINDER_LOOKAHEAD_DAYS",
		"email.provider":             "FIRMDESK_EMAIL_PROVIDER",
		"email.region":               "FIRMDESK_EMAIL_REGION",
		"email.from_address":         "FIRMDESK_EMAIL_FROM_ADDRESS",
		"email.from_name":            "FIRMDESK_EMAIL_FROM_NAME",
		"ai.classifier.api_key":      "FIRMDESK_AI_CLASSIFIER_API_KEY",
		"ai.classifier.model":        "FIRMDESK_AI_CLASSIFIER_MODEL",
		"ai.classifier.timeout_secs": "FIRMDESK_AI_CLASSIFIER_TIMEOUT_SECS",
		"ai.extractor.api_key":       "FIRMDESK_AI_EXTRACTOR_API_KEY",
		"ai.extractor.model":         "FIRMDESK_AI_EXTRACTOR_MODEL",
		"ai.extractor.timeout_secs":  "FIRMDESK_AI_EXTRACTOR_TIMEOUT_SECS",
		"ai.financial.api_key":       "FIRMDESK_AI_FINANCIAL_API_KEY",
		"ai.financial.model":         "FIRMDESK_AI_FINANCIAL_MODEL",
		"ai.financial.timeout_secs":  "FIRMDESK_AI_FINANCIAL_TIMEOUT_SECS",
		"ai.identity.api_key":        "FIRMDESK_AI_IDENTITY_API_KEY",
		"ai.identity.model":          "FIRMDESK_AI_IDENTITY_MODEL",
		"ai.identity.timeout_secs":   "FIRMDESK_AI_IDENTITY_TIMEOUT_SECS",
		"ai.summarizer.api_key":      "FIRMDESK_AI_SUMMARIZER_API_KEY",
		"ai.summarizer.model":        "FIRMDESK_AI_SUMMARIZER_MODEL",
		"ai.summarizer.timeout_secs": "FIRMDESK_AI_SUMMARIZER_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it unless FIRMDESK_SERVER_PORT is set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("FIRMDESK_SERVER_PORT") == "" {
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
		Region:         v.GetString("s3.region"),
		DocumentBucket: v.GetString("s3.document_bucket"),
		NoticeBucket:   v.GetString("s3.notice_bucket"),
		Endpoint:       v.GetString("s3.endpoint"),
		AccessKey:      v.GetString("s3.access_key"),
		SecretKey:      v.GetString("s3.secret_key"),
		PresignExpiry:  v.GetInt64("s3.presign_expiry"),
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

	cfg.AI = AIConfig{
		Classifier: loadProvider(v, "ai.classifier"),
		Extractor:  loadProvider(v, "ai.extractor"),
		Financial:  loadProvider(v, "ai.financial"),
		Identity:   loadProvider(v, "ai.identity"),
		Summarizer: loadProvider(v, "ai.summarizer"),
	}

	cfg.Reminder = ReminderConfig{
		PollIntervalSecs: v.GetInt("reminder.poll_interval_secs"),
		LookaheadDays:    v.GetInt("reminder.lookahead_days"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	return cfg, nil
}

func loadProvider(v *viper.Viper, prefix string) AIProviderConfig {
	return AIProviderConfig{
		APIKey:      v.GetString(prefix + ".api_key"),
		Model:       v.GetString(prefix + ".model"),
		TimeoutSecs: v.GetInt(prefix + ".timeout_secs"),
	}
}
