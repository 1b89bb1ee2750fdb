package config

import (
	"os"
	"strings"
)

type Config struct {
	Port        string
	Environment string // ENV: production, development, etc.
	Host        string // Raw HOST env (e.g. https://api.zidalco.com)
	AllowedHost string // Hostname only for strict host check (production only)

	DatabaseURL string
	DBMock      bool   // force the file-backed store even when DATABASE_URL is set
	DataFile    string // path of the file store snapshot
	RedisURI    string

	JWTSecret      string
	AdminEmail     string
	AdminName      string
	AdminPassword  string
	AdminAllowlist []string
	SignupEnabled  bool

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	MailAdminTo  string

	ResetRedirectURL string
	FrontendURL      string
	AllowedOrigins   []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL

	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))
	host := getEnv("HOST", "http://localhost:8080")

	// Host check is skipped in development
	var allowedHost string
	if env == "production" {
		allowedHost = bareHost(host)
	}

	allowedOrigins := splitList(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		if u := strings.TrimSpace(getEnv("FRONTEND_URL", "http://localhost:3000")); u != "" {
			allowedOrigins = append(allowedOrigins, u)
		}
	}

	adminEmail := getEnv("ADMIN_EMAIL", "admin@zidalco.com")
	allowlist := splitList(getEnv("ADMIN_ALLOWLIST", ""))
	if len(allowlist) == 0 {
		allowlist = []string{adminEmail}
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		Host:        host,
		AllowedHost: allowedHost,

		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBMock:      boolEnv("DB_MOCK", false),
		DataFile:    getEnv("DATA_FILE", "data/store.json"),
		RedisURI:    getEnv("REDIS_URI", ""),

		JWTSecret:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		AdminEmail:     adminEmail,
		AdminName:      getEnv("ADMIN_NAME", "Admin"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		AdminAllowlist: allowlist,
		SignupEnabled:  boolEnv("SIGNUP_ENABLED", false),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASS", ""),
		MailFrom:     getEnv("MAIL_FROM", ""),
		MailAdminTo:  getEnv("MAIL_ADMIN_TO", adminEmail),

		ResetRedirectURL: getEnv("RESET_REDIRECT_URL", ""),
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins:   allowedOrigins,

		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
	}
}

// bareHost strips the scheme, path and port from a URL-ish host value.
func bareHost(host string) string {
	for _, prefix := range []string{"https://", "http://"} {
		host = strings.TrimPrefix(host, prefix)
	}
	if idx := strings.Index(host, "/"); idx != -1 {
		host = host[:idx]
	}
	if idx := strings.Index(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return strings.TrimSpace(host)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func boolEnv(key string, defaultValue bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch v {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}
