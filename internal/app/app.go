package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/theboringdotapp/newsletter-builder/internal/config"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/deps"
	"github.com/theboringdotapp/newsletter-builder/internal/logger"
	"github.com/theboringdotapp/newsletter-builder/internal/prompts"
	"github.com/theboringdotapp/newsletter-builder/internal/redis"
	"github.com/theboringdotapp/newsletter-builder/internal/scheduler"
	redisstore "github.com/theboringdotapp/newsletter-builder/internal/store/redis"
	"github.com/theboringdotapp/newsletter-builder/internal/summarize"
	"github.com/theboringdotapp/newsletter-builder/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	reloader    *scheduler.PromptReloader
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Redis only backs the summary cache: run without it when unset.
	var redisClient *goredis.Client
	var summaryCache summarize.Cache
	if cfg.RedisEnabled() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(context.Background(), redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, logger.Component(loggerClient, "redis"))
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		redisClient = client
		summaryCache = redisstore.NewSummaryCache(client, cfg.SummaryTTL)
	} else {
		loggerClient.Info("redis not configured, summary cache disabled")
	}

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	registry := prompts.NewRegistry()
	reloader := scheduler.NewPromptReloader(
		prompts.NewLoader(cfg.PromptFile),
		registry,
		logger.Component(loggerClient, "prompts"),
		cfg.PromptReloadInterval,
		reloadTrigger,
	)

	// Deadlines come from the request context.
	upstream := &http.Client{}
	now := func() time.Time { return time.Now().In(cfg.Location) }

	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Build:           version.Get(),
		TimeNow:         now,
		AllowedOrigins:  cfg.AllowedOrigins,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		RateLimitBurst:  cfg.RateLimitBurst,
		RateLimitRefill: cfg.RateLimitRefillPerMin,
		KitTemplateID:   cfg.KitTemplateID,
		Stores:          deps.GitHubStores(cfg.GitHubAPIURL, cfg.Location, upstream),
		Models:          deps.OpenAIModels(cfg.ModelName, cfg.ModelBaseURL, upstream),
		Publishers:      deps.KitPublishers(cfg.KitBaseURL, cfg.KitTemplateID, upstream),
		Fetcher:         summarize.NewFetcher(upstream, cfg.FetchTimeout),
		SummaryCache:    summaryCache,
		RedisClient:     redisClient,
		Prompts:         registry,
		ReloadTrigger:   reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		reloader:    reloader,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting newsletter-builder v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("%s %s", version.Name, version.Get())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start prompt reloader (loads prompts and starts periodic refresh)
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start prompt reloader: %w", err)
	}
	a.logger.Info("prompt reloader started",
		logger.Duration("interval", a.cfg.PromptReloadInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ newsletter-builder stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
