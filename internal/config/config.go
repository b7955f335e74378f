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

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline applied by the router

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SiteURL     string   // public site base used in the sitemap (ex: https://creatorailab.com)
	CORSOrigins []string // origins allowed to call the JSON API from a browser

	// Database (optional: empty DSN => read side serves the fallback catalog, writes fail)
	DatabaseURL       string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	DBLogLevel        string // gorm log level: "silent" | "error" | "warn" | "info"

	// Audit
	AuditDisabled bool // ADMIN_AUDIT_DISABLED=1 switches every audit write off

	// Redis (optional: empty addr => rate limiting skipped, page cache disabled)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisPoolSize       int
	RedisDialTimeout    time.Duration
	RedisIOTimeout      time.Duration // read and write
	RedisConnectTimeout time.Duration // startup wait for the first PING

	// Rate limiting
	RateLimitBackend     string // "redis" | "memory" | "" (disabled)
	SubscribeIPLimit     int
	SubscribeIPWindow    time.Duration
	SubscribeEmailLimit  int
	SubscribeEmailWindow time.Duration
	APIRateLimit         int // read API requests per APIRateWindow per client IP (0 = off)
	APIRateWindow        time.Duration
	LimiterSweepInterval time.Duration // pruning of idle in-memory limiter keys

	// Bot heuristics
	MinFormFillTime time.Duration

	// Page cache
	PageCacheTTL time.Duration

	// Email (optional: empty key => no welcome email)
	ResendAPIKey string
	MailFrom     string
	MailSubject  string

	// Identity provider
	AuthJWTSecret  string
	AuthIssuer     string
	AuthCookieName string

	// Fallback catalog
	CatalogFile           string        // YAML catalog of popular tools (empty => no fallback)
	CatalogReloadInterval time.Duration // interval to reload the catalog file

	// Access restrictions for operational endpoints
	AllowedHosts []string
	AllowedCIDRS []string
	TrustProxy   bool // true => resolve client IP from proxy headers
}

func Load() *Config {
	// .env is a development convenience; production injects real env vars.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] failed to load .env: %v", err)
	}

	redisAddr := getenv("REDIS_ADDR", "")

	cfg := &Config{
		ListenPort:      getenv("LISTEN_ADDR", ":8080"),
		ShutdownTimeout: mustDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("REQUEST_TIMEOUT", 10*time.Second),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		PrettyLog: mustBool("PRETTY_LOG", false),

		SiteURL:     strings.TrimRight(getenv("SITE_URL", "http://localhost:3000"), "/"),
		CORSOrigins: splitAndTrim(getenv("CORS_ORIGINS", "")),

		DatabaseURL:       getenv("DATABASE_URL", ""),
		DBMaxOpenConns:    getenvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:    getenvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: mustDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		DBLogLevel:        getenv("DB_LOG_LEVEL", "warn"),

		AuditDisabled: mustBool("ADMIN_AUDIT_DISABLED", false),

		RedisAddr:           redisAddr,
		RedisUser:           getenv("REDIS_USERNAME", ""),
		RedisPassword:       getenv("REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("REDIS_DB", 0),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisDialTimeout:    mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisIOTimeout:      mustDuration("REDIS_IO_TIMEOUT", 3*time.Second),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 10*time.Second),

		RateLimitBackend:     rateLimitBackend(getenv("RATE_LIMIT_BACKEND", ""), redisAddr),
		SubscribeIPLimit:     getenvInt("SUBSCRIBE_IP_LIMIT", 5),
		SubscribeIPWindow:    mustDuration("SUBSCRIBE_IP_WINDOW", 10*time.Minute),
		SubscribeEmailLimit:  getenvInt("SUBSCRIBE_EMAIL_LIMIT", 3),
		SubscribeEmailWindow: mustDuration("SUBSCRIBE_EMAIL_WINDOW", 24*time.Hour),
		APIRateLimit:         getenvInt("API_RATE_LIMIT", 120),
		APIRateWindow:        mustDuration("API_RATE_WINDOW", time.Minute),
		LimiterSweepInterval: mustDuration("LIMITER_SWEEP_INTERVAL", 5*time.Minute),

		MinFormFillTime: mustDuration("MIN_FORM_FILL_TIME", 1200*time.Millisecond),

		PageCacheTTL: mustDuration("PAGE_CACHE_TTL", 10*time.Minute),

		ResendAPIKey: getenv("RESEND_API_KEY", ""),
		MailFrom:     getenv("MAIL_FROM", "CreatorAILab <onboarding@resend.dev>"),
		MailSubject:  getenv("MAIL_SUBJECT", "Your CreatorAILab AI Tools Newsletter"),

		AuthJWTSecret:  getenv("AUTH_JWT_SECRET", ""),
		AuthIssuer:     getenv("AUTH_ISSUER", ""),
		AuthCookieName: getenv("AUTH_COOKIE_NAME", "__session"),

		CatalogFile:           getenv("CATALOG_FILE", ""),
		CatalogReloadInterval: mustDuration("CATALOG_RELOAD_INTERVAL", time.Hour),

		AllowedHosts: splitAndTrim(getenv("ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("TRUST_PROXY", true),
	}

	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = redact(cfg.RedisPassword)
		cfgCopy.DatabaseURL = redact(cfg.DatabaseURL)
		cfgCopy.ResendAPIKey = redact(cfg.ResendAPIKey)
		cfgCopy.AuthJWTSecret = redact(cfg.AuthJWTSecret)
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// Validate reports configuration combinations that cannot work at runtime.
func (c *Config) Validate() error {
	if c.RateLimitBackend == "redis" && c.RedisAddr == "" {
		return fmt.Errorf("RATE_LIMIT_BACKEND=redis requires REDIS_ADDR")
	}
	if c.SubscribeIPLimit < 1 || c.SubscribeEmailLimit < 1 {
		return fmt.Errorf("subscribe rate limits must be >= 1")
	}
	if c.SubscribeIPWindow <= 0 || c.SubscribeEmailWindow <= 0 {
		return fmt.Errorf("subscribe rate limit windows must be > 0")
	}
	return nil
}

// rateLimitBackend picks redis when an address is configured and no explicit backend is set.
func rateLimitBackend(explicit, redisAddr string) string {
	switch strings.ToLower(strings.TrimSpace(explicit)) {
	case "redis":
		return "redis"
	case "memory":
		return "memory"
	case "off", "none", "disabled":
		return ""
	}
	if redisAddr != "" {
		return "redis"
	}
	return ""
}

func redact(v string) string {
	if v == "" {
		return ""
	}
	return "***REDACTED***"
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
