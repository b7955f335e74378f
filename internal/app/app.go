package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/zainmh-10/CreateAILab/internal/admin"
	"github.com/zainmh-10/CreateAILab/internal/audit"
	"github.com/zainmh-10/CreateAILab/internal/auth"
	"github.com/zainmh-10/CreateAILab/internal/cache"
	"github.com/zainmh-10/CreateAILab/internal/config"
	"github.com/zainmh-10/CreateAILab/internal/content"
	"github.com/zainmh-10/CreateAILab/internal/db"
	"github.com/zainmh-10/CreateAILab/internal/httpserver"
	"github.com/zainmh-10/CreateAILab/internal/httpserver/deps"
	"github.com/zainmh-10/CreateAILab/internal/index"
	"github.com/zainmh-10/CreateAILab/internal/logger"
	"github.com/zainmh-10/CreateAILab/internal/mailer"
	"github.com/zainmh-10/CreateAILab/internal/ratelimit"
	"github.com/zainmh-10/CreateAILab/internal/redis"
	"github.com/zainmh-10/CreateAILab/internal/scheduler"
	"github.com/zainmh-10/CreateAILab/internal/store/postgres"
	"github.com/zainmh-10/CreateAILab/internal/subscribe"
	"github.com/zainmh-10/CreateAILab/internal/utils"
	"github.com/zainmh-10/CreateAILab/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	database    *db.DB
	redisClient *goredis.Client
	reloader    *scheduler.CatalogReloader // nil without CATALOG_FILE
	sweeper     *scheduler.LimiterSweeper  // nil unless the memory limiter is used
}

func New() (*App, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	database, err := db.New(db.Options{
		DSN:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		LogLevel:        cfg.DBLogLevel,
	}, loggerClient)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if database == nil {
		loggerClient.Warn("DATABASE_URL not set: serving the catalog fallback, admin writes will fail")
	}

	redisClient := redis.Connect(context.Background(), redis.Options{
		Addr:           cfg.RedisAddr,
		Username:       cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		PoolSize:       cfg.RedisPoolSize,
		DialTimeout:    cfg.RedisDialTimeout,
		IOTimeout:      cfg.RedisIOTimeout,
		ConnectTimeout: cfg.RedisConnectTimeout,
	}, loggerClient)

	store := postgres.NewStore(database)

	recorder := newRecorder(database, cfg.AuditDisabled, loggerClient)

	var pages cache.Pages = cache.Noop{}
	if redisClient != nil {
		pages = cache.NewRedis(redisClient)
	}

	limiter, sweeper := newLimiter(cfg, redisClient, loggerClient)

	memIndex := index.NewMemoryIndex()
	var reloader *scheduler.CatalogReloader
	var reloadTrigger chan struct{}
	if cfg.CatalogFile != "" {
		reloadTrigger = make(chan struct{}, 1)
		reloader = scheduler.NewCatalogReloader(
			cfg.CatalogFile,
			memIndex,
			pages,
			loggerClient,
			cfg.CatalogReloadInterval,
			reloadTrigger,
		)
	} else {
		loggerClient.Info("CATALOG_FILE not set, no fallback tool catalog")
	}

	// A nil *Resend must not become a non-nil interface.
	var newsletter subscribe.Mailer
	if m := mailer.NewResend(mailer.Options{
		APIKey:  cfg.ResendAPIKey,
		From:    cfg.MailFrom,
		Subject: cfg.MailSubject,
	}, memIndex, loggerClient); m != nil {
		newsletter = m
	}

	adminSvc := admin.NewService(admin.Stores{
		Tools:       store.Tools,
		Workflows:   store.Workflows,
		Prompts:     store.Prompts,
		Comparisons: store.Comparisons,
	}, recorder, pages, loggerClient)

	subscribeSvc := subscribe.NewService(store.Subscribers, limiter, newsletter, subscribe.Options{
		Policies: subscribe.Policies{
			IP:    ratelimit.Policy{Name: "subscribe_ip", Limit: cfg.SubscribeIPLimit, Window: cfg.SubscribeIPWindow},
			Email: ratelimit.Policy{Name: "subscribe_email", Limit: cfg.SubscribeEmailLimit, Window: cfg.SubscribeEmailWindow},
		},
		MinFillTime: cfg.MinFormFillTime,
	}, loggerClient)

	contentSvc := content.NewService(content.Deps{
		Tools:           store.Tools,
		Workflows:       store.Workflows,
		Prompts:         store.Prompts,
		Comparisons:     store.Comparisons,
		Catalog:         memIndex,
		DatabaseEnabled: store.Configured(),
	}, loggerClient)

	build := version.Current()
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        build.Version,
		Commit:         build.Commit,
		BuildDate:      build.BuildDate,
		GoVersion:      build.GoVersion,
		TimeNow:        time.Now,
		RequestTimeout: cfg.RequestTimeout,
		SiteURL:        cfg.SiteURL,
		CORSOrigins:    cfg.CORSOrigins,
		AllowedHosts:   cfg.AllowedHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
		Verifier:       auth.NewVerifier(cfg.AuthJWTSecret, cfg.AuthIssuer),
		AuthCookieName: cfg.AuthCookieName,
		Admin:          adminSvc,
		AuditLog:       recorder,
		Subscribe:      subscribeSvc,
		Content:        contentSvc,
		Pages:          pages,
		PageCacheTTL:   cfg.PageCacheTTL,
		Limiter:        limiter,
		APIRate:        ratelimit.Policy{Name: "api", Limit: cfg.APIRateLimit, Window: cfg.APIRateWindow},
		RedisClient:    redisClient,
		MemoryIndex:    memIndex,
		ReloadTrigger:  reloadTrigger,
	}
	if database != nil {
		d.Database = database
	}
	if d.Verifier == nil {
		loggerClient.Warn("AUTH_JWT_SECRET not set: every request is anonymous, admin routes answer 401")
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		database:    database,
		redisClient: redisClient,
		reloader:    reloader,
		sweeper:     sweeper,
	}, nil
}

func newRecorder(database *db.DB, disabled bool, log logger.Logger) *audit.Recorder {
	if database == nil {
		return audit.NewRecorder(nil, disabled, log)
	}
	return audit.NewRecorder(database.DB, disabled, log)
}

// newLimiter builds the configured rate-limit backend. The sweeper is only
// needed for the in-process store.
func newLimiter(cfg *config.Config, client *goredis.Client, log logger.Logger) (ratelimit.Limiter, *scheduler.LimiterSweeper) {
	switch cfg.RateLimitBackend {
	case "redis":
		if client == nil {
			log.Warn("redis rate limiting requested without a client, rate limiting disabled")
			return nil, nil
		}
		log.Info("rate limiting backed by redis")
		return ratelimit.NewRedisLimiter(client), nil
	case "memory":
		log.Info("rate limiting kept in process memory")
		mem := ratelimit.NewMemoryLimiter()
		return mem, scheduler.NewLimiterSweeper(mem, log, cfg.LimiterSweepInterval)
	default:
		log.Warn("rate limiting disabled")
		return nil, nil
	}
}

func (a *App) Run() error {
	a.logger.Infof("Starting CreatorAILab v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("CreatorAILab %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start catalog reloader: %w", err)
		}
		a.logger.Info("catalog reloader started",
			logger.Duration("interval", a.cfg.CatalogReloadInterval))
	}

	if a.sweeper != nil {
		a.sweeper.Start(ctx)
		a.logger.Info("rate limiter sweeper started",
			logger.Duration("interval", a.cfg.LimiterSweepInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.reloader != nil {
		a.reloader.Stop()
	}
	if a.sweeper != nil {
		a.sweeper.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		utils.CloseLogged(a.logger, "redis", a.redisClient)
	}
	if a.database != nil {
		utils.CloseLogged(a.logger, "postgres", a.database)
	}

	a.logger.Info("CreatorAILab stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
