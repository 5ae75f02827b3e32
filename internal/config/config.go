package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DbHost    string
	DbPort    string
	DbUser    string
	DbPass    string
	DbName    string
	DbSSLMode string

	JWTSecret      string
	AccessTokenTTL string

	AdminUsername     string
	AdminPasswordHash string

	Log      string
	LogLevel string
	LogDir   string
	Env      string // dev|prod

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	ContactTo    string

	CORSOrigins []string

	StoreRetryMax     int
	StoreRetryTimeout time.Duration
}

// LoadConfig loads .env, reads the environment and applies defaults.
// It does not log, so the logger can be built from its result.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	retryMax, err := strconv.Atoi(def(os.Getenv("STORE_RETRY_MAX"), "3"))
	if err != nil {
		return nil, fmt.Errorf("STORE_RETRY_MAX: %w", err)
	}
	retryTimeout, err := time.ParseDuration(def(os.Getenv("STORE_RETRY_TIMEOUT"), "5s"))
	if err != nil {
		return nil, fmt.Errorf("STORE_RETRY_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Port:      def(os.Getenv("PORT"), "5000"),
		DbHost:    os.Getenv("DB_HOST"),
		DbPort:    def(os.Getenv("DB_PORT"), "5432"),
		DbUser:    os.Getenv("DB_USER"),
		DbPass:    os.Getenv("DB_PASSWORD"),
		DbName:    def(os.Getenv("DB_NAME"), "blog"),
		DbSSLMode: def(os.Getenv("DB_SSLMODE"), "disable"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: def(os.Getenv("ACCESS_TOKEN_EXPIRY"), "12h"),

		AdminUsername:     def(os.Getenv("ADMIN_USERNAME"), "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		LogDir:   def(os.Getenv("LOG_DIR"), "logs"),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     def(os.Getenv("SMTP_PORT"), "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		ContactTo:    os.Getenv("CONTACT_TO"),

		CORSOrigins: splitList(def(os.Getenv("CORS_ORIGINS"), "*")),

		StoreRetryMax:     retryMax,
		StoreRetryTimeout: retryTimeout,
	}

	return cfg, nil
}

// Validate returns non-fatal warnings, or an error when the service cannot start.
func (c *Config) Validate() (warnings []string, err error) {
	if c.DbHost == "" || c.DbUser == "" || c.DbName == "" {
		return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
	}
	if _, err := time.ParseDuration(c.AccessTokenTTL); err != nil {
		return nil, fmt.Errorf("ACCESS_TOKEN_EXPIRY: %w", err)
	}
	if c.StoreRetryMax < 0 {
		return nil, fmt.Errorf("STORE_RETRY_MAX must not be negative")
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		warnings = append(warnings, "JWT_SECRET is empty")
	}
	if c.AdminPasswordHash == "" {
		warnings = append(warnings, "ADMIN_PASSWORD_HASH is empty, operator login is disabled")
	}
	if c.SMTPHost == "" || c.SMTPUser == "" {
		warnings = append(warnings, "SMTP is not fully configured")
	}
	if c.ContactTo == "" {
		warnings = append(warnings, "CONTACT_TO is empty, contact messages go to SMTP_USER")
	}

	return warnings, nil
}

// AccessTTL returns the parsed token lifetime. Call after Validate.
func (c *Config) AccessTTL() time.Duration {
	d, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil {
		return 12 * time.Hour
	}
	return d
}

// GetDSN returns the full DSN, password included.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe returns the DSN with the password masked, for logs.
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
