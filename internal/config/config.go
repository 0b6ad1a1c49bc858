package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	HTTPTimeout     time.Duration `json:"http_timeout"`
	StaticDir       string        `json:"static_dir"`
	AllowedOrigins  string        `json:"allowed_origins"`
	BodyLimit       int           `json:"body_limit"`

	// Redis configuration
	RedisURL    string        `json:"redis_url"`
	RedisPrefix string        `json:"redis_prefix"`
	DedupeTTL   time.Duration `json:"dedupe_ttl"`

	// CloudFlare R2 Configuration
	R2Endpoint  string `json:"r2_endpoint"`
	R2AccessKey string `json:"r2_access_key"`
	R2SecretKey string `json:"r2_secret_key"`
	R2Bucket    string `json:"r2_bucket"`
	R2AccountID string `json:"r2_account_id"`

	// Contact form
	RecaptchaSecret   string        `json:"recaptcha_secret"`
	SkipRecaptcha     bool          `json:"skip_recaptcha"`
	RecaptchaTimeout  time.Duration `json:"recaptcha_timeout"`
	SendGridAPIKey    string        `json:"sendgrid_api_key"`
	SenderEmail       string        `json:"sender_email"`
	SenderName        string        `json:"sender_name"`
	ContactRecipients []string      `json:"contact_recipients"`

	// Storage
	StoragePath string `json:"storage_path"`

	// Logging
	LogLevel  string `json:"log_level"`
	LogFile   string `json:"log_file"`
	LogPretty bool   `json:"log_pretty"`

	// Security
	AdminAPIKey string `json:"admin_api_key"`
}

// Load loads configuration from environment variables and validates it
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := FromEnv()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// FromEnv reads the configuration from the process environment only
func FromEnv() *Config {
	return &Config{
		// Server configuration
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
		StaticDir:       getEnv("STATIC_DIR", "./web/dist"),
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "*"),
		BodyLimit:       getEnvAsInt("BODY_LIMIT", 1<<20), // 1MB

		// Redis configuration
		RedisURL:    getEnv("REDIS_URL", ""),
		RedisPrefix: getEnv("REDIS_PREFIX", "lawgate:contact:"),
		DedupeTTL:   getEnvAsDuration("CONTACT_DEDUPE_TTL", 10*time.Minute),

		// CloudFlare R2 Configuration
		R2Endpoint:  getEnv("R2_ENDPOINT", ""),
		R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:    getEnv("R2_BUCKET", "lawgate-contact"),
		R2AccountID: getEnv("CLOUDFLARE_ACCOUNT_ID", ""),

		// Contact form
		RecaptchaSecret:   getEnv("RECAPTCHA_SECRET_KEY", ""),
		SkipRecaptcha:     getEnvAsBool("SKIP_RECAPTCHA", false),
		RecaptchaTimeout:  getEnvAsDuration("RECAPTCHA_TIMEOUT", 5*time.Second),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SenderEmail:       getEnv("SENDER_EMAIL", "DoNotReply@lawgate.in"),
		SenderName:        getEnv("SENDER_NAME", "Lawgate Website"),
		ContactRecipients: getEnvAsSlice("CONTACT_RECIPIENTS", []string{"shishir@lawgate.in"}),

		// Storage
		StoragePath: getEnv("STORAGE_PATH", "./data"),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFile:   getEnv("LOG_FILE", ""),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),

		// Security
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}
}

// R2Enabled reports whether submissions should be archived in R2
func (c *Config) R2Enabled() bool {
	return c.R2AccessKey != "" && c.R2SecretKey != ""
}

// IsProduction reports whether the app runs with APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if c.R2Enabled() && c.R2Endpoint == "" && c.R2AccountID == "" {
		return fmt.Errorf("R2 credentials are set but neither R2_ENDPOINT nor CLOUDFLARE_ACCOUNT_ID is")
	}
	if len(c.ContactRecipients) == 0 {
		return fmt.Errorf("CONTACT_RECIPIENTS must list at least one address")
	}
	if c.IsProduction() && c.SkipRecaptcha {
		return fmt.Errorf("SKIP_RECAPTCHA cannot be enabled in production")
	}
	return nil
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsBool(name string, defaultVal bool) bool {
	switch strings.ToLower(getEnv(name, "")) {
	case "":
		return defaultVal
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		log.Printf("Invalid %s value, using default: %t", name, defaultVal)
		return defaultVal
	}
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsSlice(name string, defaultVal []string) []string {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
