package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	pgRepo "plannerx/internal/infra/adapter/persistence/postgres"
	"plannerx/internal/infra/db"
	"plannerx/internal/infra/feed"
	"plannerx/internal/infra/nameday"
	"plannerx/internal/infra/newscache"
	"plannerx/internal/infra/notifier"
	"plannerx/internal/infra/render"
	"plannerx/internal/infra/summarizer"
	workerPkg "plannerx/internal/infra/worker"
	"plannerx/internal/observability/logging"
	"plannerx/internal/observability/metrics"
	"plannerx/internal/pkg/config"
	digestUC "plannerx/internal/usecase/digest"
	newsUC "plannerx/internal/usecase/news"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := db.Open()
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	if err := db.MigrateUp(database); err != nil {
		logger.Error("database migration failed", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Worker configuration is fail-open: a bad env value degrades to the
	// default rather than refusing to start.
	workerMetrics := workerPkg.NewMetrics()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("digest_timeout", workerConfig.DigestTimeout),
		slog.Duration("news_cache_ttl", workerConfig.NewsCacheTTL),
		slog.Int("health_port", workerConfig.HealthPort))

	runner := setupRunner(logger, database, workerConfig)

	go pollDBStats(ctx, database)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	scheduler := workerPkg.NewScheduler(workerConfig.Location(), logger)
	if err := scheduler.AddJob(workerConfig.CronSchedule, "daily-digest", func() {
		runDigestJob(logger, runner, workerConfig, workerMetrics)
	}); err != nil {
		logger.Error("failed to schedule digest job", slog.Any("error", err))
		os.Exit(1)
	}
	scheduler.Start()
	healthServer.SetReady(true)
	logger.Info("digest worker started",
		slog.String("schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Time("next_run", scheduler.NextRun()))

	// One immediate run on demand, for deploys that should not wait for
	// the next cron activation.
	if config.LoadEnvBool("DIGEST_RUN_ON_START", false).Value.(bool) {
		go runDigestJob(logger, runner, workerConfig, workerMetrics)
	}

	<-ctx.Done()
	logger.Info("shutdown signal received")

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := scheduler.Stop(stopCtx); err != nil {
		logger.Error("scheduler shutdown incomplete", slog.Any("error", err))
	}
}

// setupRunner wires the digest batch runner: stores, news pipeline,
// renderer and delivery channels.
func setupRunner(logger *slog.Logger, database *sql.DB, cfg *workerPkg.Config) *digestUC.Runner {
	sources := feed.LoadSources(config.LoadEnvString("RSS_FEEDS_FILE", "data/rss_feeds.yaml"))
	logger.Info("feed sources loaded", slog.Int("count", len(sources)))

	cache := newscache.New(config.LoadEnvString("RSS_CACHE_FILE", "data/news_cache.json"))

	ranker, generator := createSummarizers(logger)
	newsService := newsUC.NewService(
		feed.NewFetcher(createHTTPClient(), sources),
		cache,
		ranker,
		generator,
	)

	nameDays := nameday.Load(config.LoadEnvString("NAME_DAYS_FILE", "data/name_days.sk.json"))

	digestService := &digestUC.Service{
		Tasks:    pgRepo.NewTaskRepo(database),
		Events:   pgRepo.NewEventRepo(database),
		Contacts: pgRepo.NewContactRepo(database),
		Projects: pgRepo.NewProjectRepo(database),
		News:     newsService,
		NameDays: nameDays,
		Location: cfg.Location(),
		CacheTTL: cfg.NewsCacheTTL,
	}

	renderer, err := render.NewHTMLRenderer()
	if err != nil {
		logger.Error("failed to initialize digest renderer", slog.Any("error", err))
		os.Exit(1)
	}

	return &digestUC.Runner{
		Users:    pgRepo.NewUserRepo(database),
		Digests:  digestService,
		Renderer: renderer,
		Mailer:   createMailer(logger),
		SMS:      createSMSSender(logger),
	}
}

// createSummarizers selects the AI clients based on SUMMARIZER_TYPE.
// Ranking always goes through OpenAI when a key is present; the narrative
// generator is Claude by default and OpenAI on request. "none" disables
// both, which degrades every digest to the templated news summary.
func createSummarizers(logger *slog.Logger) (newsUC.Ranker, newsUC.Generator) {
	sumConfig := summarizer.LoadConfig()

	var ranker newsUC.Ranker = summarizer.NewNoOp()
	openAIKey := os.Getenv("OPENAI_API_KEY")
	if openAIKey != "" {
		ranker = summarizer.NewOpenAI(openAIKey, sumConfig)
		logger.Info("headline ranking enabled", slog.String("model", sumConfig.RankModel))
	} else {
		logger.Info("OPENAI_API_KEY not set, headline ranking disabled")
	}

	summarizerType := os.Getenv("SUMMARIZER_TYPE")
	if summarizerType == "" {
		summarizerType = "claude"
	}

	switch summarizerType {
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			logger.Error("ANTHROPIC_API_KEY is required when SUMMARIZER_TYPE=claude")
			os.Exit(1)
		}
		logger.Info("Using Claude API for narrative generation", slog.String("type", "claude"))
		return ranker, summarizer.NewClaude(apiKey, sumConfig)
	case "openai":
		if openAIKey == "" {
			logger.Error("OPENAI_API_KEY is required when SUMMARIZER_TYPE=openai")
			os.Exit(1)
		}
		logger.Info("Using OpenAI API for narrative generation",
			slog.String("type", "openai"),
			slog.String("model", sumConfig.NarrativeModel))
		return ranker, summarizer.NewOpenAI(openAIKey, sumConfig)
	case "none":
		logger.Info("AI narrative generation disabled, digests use templated news summary")
		return ranker, summarizer.NewNoOp()
	default:
		logger.Error("Invalid SUMMARIZER_TYPE",
			slog.String("type", summarizerType),
			slog.String("expected", "claude, openai or none"))
		os.Exit(1)
		return nil, nil
	}
}

// createMailer returns the SMTP mailer, or a no-op when SMTP is not
// configured so the rest of the pipeline can still be exercised.
func createMailer(logger *slog.Logger) notifier.Mailer {
	smtpConfig := notifier.LoadSMTPConfig()
	if !smtpConfig.Configured() {
		logger.Warn("SMTP not configured, email delivery disabled")
		return notifier.NewNoOp()
	}
	logger.Info("SMTP mailer initialized",
		slog.String("host", smtpConfig.Host),
		slog.Int("port", smtpConfig.Port))
	return notifier.NewSMTPMailer(smtpConfig)
}

// createSMSSender returns the Twilio sender, or nil when Twilio is not
// configured; the runner treats a nil sender as "SMS disabled".
func createSMSSender(logger *slog.Logger) notifier.SMSSender {
	twilioConfig := notifier.LoadTwilioConfig()
	if !twilioConfig.Configured() {
		logger.Info("Twilio not configured, SMS delivery disabled")
		return nil
	}
	logger.Info("Twilio SMS sender initialized",
		slog.String("from", twilioConfig.FromNumber))
	return notifier.NewTwilioSender(twilioConfig, createHTTPClient())
}

// createHTTPClient creates an HTTP client with timeouts and connection
// pooling. TLS 1.2+ is enforced.
func createHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}

// pollDBStats feeds the connection pool gauges every 30 seconds.
func pollDBStats(ctx context.Context, database *sql.DB) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := database.Stats()
			metrics.UpdateDBConnections(stats.InUse, stats.Idle)
		}
	}
}

// runDigestJob executes one digest batch run with timeout and metrics.
func runDigestJob(logger *slog.Logger, runner *digestUC.Runner, cfg *workerPkg.Config, workerMetrics *workerPkg.Metrics) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DigestTimeout)
	defer cancel()

	stats, err := runner.Run(ctx)
	workerMetrics.RecordRunDuration(time.Since(start).Seconds())
	if err != nil {
		logger.Error("digest job failed", slog.Any("error", err))
		workerMetrics.RecordRun("failure")
		return
	}

	workerMetrics.RecordRun("success")
	workerMetrics.RecordDeliveries(stats.Success, stats.Errors, stats.Skipped)
	workerMetrics.RecordLastSuccess()
}
