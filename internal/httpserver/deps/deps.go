package deps

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zainmh-10/CreateAILab/internal/admin"
	"github.com/zainmh-10/CreateAILab/internal/audit"
	"github.com/zainmh-10/CreateAILab/internal/auth"
	"github.com/zainmh-10/CreateAILab/internal/cache"
	"github.com/zainmh-10/CreateAILab/internal/content"
	"github.com/zainmh-10/CreateAILab/internal/domain"
	"github.com/zainmh-10/CreateAILab/internal/index"
	"github.com/zainmh-10/CreateAILab/internal/logger"
	"github.com/zainmh-10/CreateAILab/internal/ratelimit"
	"github.com/zainmh-10/CreateAILab/internal/subscribe"
)

// AuditLog is the read side of the audit store.
type AuditLog interface {
	List(ctx context.Context, f audit.Filter) ([]domain.AuditEntry, error)
	Facets(ctx context.Context) (audit.Facets, error)
	Enabled() bool
}

// Pinger is anything readiness can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time // for testing, defaults to time.Now
	RequestTimeout time.Duration    // per-request deadline
	SiteURL        string           // public site base for the sitemap
	CORSOrigins    []string         // browser origins allowed on the JSON API
	AllowedHosts   []string         // Host headers allowed on operational endpoints
	AllowedCIDRS   []string         // IPs allowed on operational endpoints
	TrustProxy     bool             // true if running behind a trusted reverse proxy

	Verifier       *auth.Verifier // nil => every request is anonymous
	AuthCookieName string

	Admin     *admin.Service
	AuditLog  AuditLog
	Subscribe *subscribe.Service
	Content   *content.Service

	Pages        cache.Pages       // rendered API responses by page path
	PageCacheTTL time.Duration     // 0 => responses are not cached
	Limiter      ratelimit.Limiter // nil => read API is not rate limited
	APIRate      ratelimit.Policy

	Database      Pinger        // nil when no DATABASE_URL
	RedisClient   *redis.Client // nil when no REDIS_ADDR
	MemoryIndex   *index.MemoryIndex
	ReloadTrigger chan struct{} // manual catalog reload
}

func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
