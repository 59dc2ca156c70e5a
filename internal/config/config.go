package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"notiguard/internal/completion"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string
	SeedDevData bool // Insert sample notices and popups on startup

	// TLS/mTLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// Completion service
	CompletionProvider string // "http" or "gemini"
	CompletionAPIKey   string // env: COMPLETION_API_KEY, falls back to POTENS_API_KEY
	CompletionAPIURL   string
	ResponseTimeout    time.Duration // env: RESPONSE_TIMEOUT, in seconds
	GeminiModel        string

	// Prompt context
	ContextNoticeLimit int
	ContextBodyLimit   int

	// OIDC
	OIDCIssuer          string
	OIDCClientID        string
	OIDCClientSecret    string
	OIDCRedirectURL     string
	OIDCEmployeeIDClaim string // Claim holding the employee number, default "preferred_username"
	OIDCDepartmentClaim string // default "department"
	OIDCTeamClaim       string // default "team"

	// Identity via header (for a trusted gateway), e.g. "X-Employee-ID"
	IdentityHeader string

	// Employee IDs granted the admin role on login, comma-separated
	AdminIDs []string

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)
	RedisURL      string // Session storage; in-memory when empty

	// CORS
	CORSOrigins string // Comma-separated allowed origins, e.g. "https://example.com,https://app.example.com"

	// SMTP
	SMTPEnabled  bool
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTLS      string // "tls", "starttls" or "none"

	// Departments
	DepartmentsFile string // env: DEPARTMENTS_FILE, default: "departments.yaml"

	// Jobs
	InquiryDigestTime string // "HH:MM", "off" disables the digest
	Timezone          string

	// Site Branding
	SiteTitle string // env: SITE_TITLE, default: "NotiGuard"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/notiguard?sslmode=disable"),
		SeedDevData: getEnv("SEED_DEV_DATA", "") != "",
		TLSEnabled:  getEnv("TLS_ENABLED", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:   getEnv("TLS_CA_FILE", ""),

		CompletionProvider: getEnv("COMPLETION_PROVIDER", completion.ProviderHTTP),
		CompletionAPIKey:   getEnv("COMPLETION_API_KEY", getEnv("POTENS_API_KEY", "")),
		CompletionAPIURL:   getEnv("COMPLETION_API_URL", "https://ai.potens.ai/api/chat"),
		ResponseTimeout:    time.Duration(getEnvInt("RESPONSE_TIMEOUT", 30)) * time.Second,
		GeminiModel:        getEnv("GEMINI_MODEL", completion.DefaultModel),
		ContextNoticeLimit: getEnvInt("CONTEXT_NOTICE_LIMIT", 100),
		ContextBodyLimit:   getEnvInt("CONTEXT_BODY_LIMIT", 1500),

		OIDCIssuer:          getEnv("OIDC_ISSUER", ""),
		OIDCClientID:        getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret:    getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:     getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),
		OIDCEmployeeIDClaim: getEnv("OIDC_EMPLOYEE_ID_CLAIM", "preferred_username"),
		OIDCDepartmentClaim: getEnv("OIDC_DEPARTMENT_CLAIM", "department"),
		OIDCTeamClaim:       getEnv("OIDC_TEAM_CLAIM", "team"),
		IdentityHeader:      getEnv("IDENTITY_HEADER", ""),
		AdminIDs:            splitList(getEnv("ADMIN_IDS", "admin")),
		SessionSecret:       getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		RedisURL:            getEnv("REDIS_URL", ""),
		CORSOrigins:         getEnv("CORS_ORIGINS", ""),

		SMTPEnabled:  getEnv("SMTP_ENABLED", "") != "",
		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "NotiGuard"),
		SMTPTLS:      getEnv("SMTP_TLS", "starttls"),

		DepartmentsFile:   getEnv("DEPARTMENTS_FILE", "departments.yaml"),
		InquiryDigestTime: getEnv("INQUIRY_DIGEST_TIME", "09:00"),
		Timezone:          getEnv("TIMEZONE", "Asia/Seoul"),

		SiteTitle: getEnv("SITE_TITLE", "NotiGuard"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}

// IsEmailEnabled returns true if SMTP is enabled and has a host and sender.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPEnabled && c.SMTPHost != "" && c.SMTPFrom != ""
}

// IsDigestEnabled reports whether the pending-inquiry digest should be scheduled.
func (c *Config) IsDigestEnabled() bool {
	return c.InquiryDigestTime != "" && !strings.EqualFold(c.InquiryDigestTime, "off")
}

// IsAdminID reports whether employeeID is listed in ADMIN_IDS.
func (c *Config) IsAdminID(employeeID string) bool {
	for _, id := range c.AdminIDs {
		if id == employeeID {
			return true
		}
	}
	return false
}

// Completion returns the completion client configuration.
func (c *Config) Completion() completion.Config {
	return completion.Config{
		Provider: c.CompletionProvider,
		APIKey:   c.CompletionAPIKey,
		URL:      c.CompletionAPIURL,
		Timeout:  c.ResponseTimeout,
		Model:    c.GeminiModel,
	}
}
