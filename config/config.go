package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string        `mapstructure:"APP_PORT"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DatabaseName      string        `mapstructure:"DATABASE_NAME"`
	Env               string        `mapstructure:"ENV"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	JWTTTL            time.Duration `mapstructure:"JWT_TTL"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`
	DebugEndpoints    bool          `mapstructure:"DEBUG_ENDPOINTS"`

	// Redis configuration. An empty address keeps real-time push in process.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisPubSubDB int    `mapstructure:"REDIS_PUBSUB_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Reminder scheduling.
	SchedulerMode      string        `mapstructure:"SCHEDULER_MODE"`
	ReminderSchedule   string        `mapstructure:"REMINDER_SCHEDULE"`
	ReminderWindow     time.Duration `mapstructure:"REMINDER_WINDOW"`
	Timezone           string        `mapstructure:"TIMEZONE"`
	DefaultCountryCode string        `mapstructure:"DEFAULT_COUNTRY_CODE"`
	ChannelTimeout     time.Duration `mapstructure:"CHANNEL_TIMEOUT"`

	// Email (SMTP).
	SMTPHost string `mapstructure:"SMTP_HOST"`
	SMTPPort int    `mapstructure:"SMTP_PORT"`
	SMTPUser string `mapstructure:"SMTP_USER"`
	SMTPPass string `mapstructure:"SMTP_PASS"`
	SMTPFrom string `mapstructure:"SMTP_FROM"`

	// SMS (Twilio).
	TwilioAccountSID string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioFrom       string `mapstructure:"TWILIO_FROM"`

	// Mobile push (Firebase Cloud Messaging).
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Medical record attachments.
	StorageBackend          string `mapstructure:"STORAGE_BACKEND"`
	UploadDir               string `mapstructure:"UPLOAD_DIR"`
	MaxUploadMB             int64  `mapstructure:"MAX_UPLOAD_MB"`
	StorageBucket           string `mapstructure:"STORAGE_BUCKET"`
	AttachmentEncryptionKey string `mapstructure:"ATTACHMENT_ENCRYPTION_KEY"`
	CloudinaryCloudName     string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
}

const (
	SchedulerModeLocal = "local"
	SchedulerModeAsynq = "asynq"

	StorageDisk       = "disk"
	StorageCloudinary = "cloudinary"
	StorageGCS        = "gcs"

	// DevJWTSecret is the development default and is refused in production.
	DevJWTSecret = "dev-secret-change-me"
)

// LoadConfig reads .env (if present), an optional config.yaml and the
// environment, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, continuing")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	// Debug endpoints are unauthenticated, so production only gets them on request.
	if !v.IsSet("DEBUG_ENDPOINTS") {
		cfg.DebugEndpoints = !cfg.IsProduction()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "4000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	_ = v.BindEnv("DEBUG_ENDPOINTS")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "sahayata")
	v.SetDefault("JWT_SECRET", DevJWTSecret)
	v.SetDefault("JWT_TTL", "168h")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_PUBSUB_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)

	v.SetDefault("SCHEDULER_MODE", SchedulerModeLocal)
	v.SetDefault("REMINDER_SCHEDULE", "*/5 * * * *")
	v.SetDefault("REMINDER_WINDOW", "60m")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("DEFAULT_COUNTRY_CODE", "91")
	v.SetDefault("CHANNEL_TIMEOUT", "10s")

	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASS", "")
	v.SetDefault("SMTP_FROM", "no-reply@sahayata.local")

	// Unmarshal only sees env vars for keys viper already knows about.
	v.SetDefault("TWILIO_ACCOUNT_SID", "")
	v.SetDefault("TWILIO_AUTH_TOKEN", "")
	v.SetDefault("TWILIO_FROM", "")

	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("STORAGE_BACKEND", StorageDisk)
	v.SetDefault("UPLOAD_DIR", "uploads/medical-records")
	v.SetDefault("STORAGE_BUCKET", "")
	v.SetDefault("ATTACHMENT_ENCRYPTION_KEY", "")
	v.SetDefault("MAX_UPLOAD_MB", 10)
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
}

func (c *Config) validate() error {
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == DevJWTSecret) {
		return fmt.Errorf("config: JWT_SECRET must be set in production")
	}
	switch c.SchedulerMode {
	case SchedulerModeLocal:
	case SchedulerModeAsynq:
		if c.RedisAddr == "" {
			return fmt.Errorf("config: SCHEDULER_MODE=asynq requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("config: unknown SCHEDULER_MODE %q", c.SchedulerMode)
	}
	if c.ReminderWindow <= 0 {
		return fmt.Errorf("config: REMINDER_WINDOW must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	switch c.StorageBackend {
	case "", StorageDisk:
	case StorageCloudinary:
		if !c.CloudinaryConfigured() {
			return fmt.Errorf("config: STORAGE_BACKEND=cloudinary requires CLOUDINARY_* credentials")
		}
	case StorageGCS:
		if c.StorageBucket == "" {
			return fmt.Errorf("config: STORAGE_BACKEND=gcs requires STORAGE_BUCKET")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	return nil
}

// Location resolves TIMEZONE. Every date/time pair stored on appointments and
// routines is interpreted in this location.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// SMSConfigured mirrors the provider's own account-SID sanity check.
func (c *Config) SMSConfigured() bool {
	return strings.HasPrefix(c.TwilioAccountSID, "AC") && c.TwilioAuthToken != "" && c.TwilioFrom != ""
}

func (c *Config) CloudinaryConfigured() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}
