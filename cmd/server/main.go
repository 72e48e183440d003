package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	ledgerapp "github.com/teakhata/backend/internal/application/ledger"
	reminderapp "github.com/teakhata/backend/internal/application/reminder"
	reportapp "github.com/teakhata/backend/internal/application/report"
	"github.com/teakhata/backend/internal/infrastructure/auth"
	"github.com/teakhata/backend/internal/infrastructure/cache"
	"github.com/teakhata/backend/internal/infrastructure/config"
	"github.com/teakhata/backend/internal/infrastructure/listener"
	"github.com/teakhata/backend/internal/infrastructure/logger"
	"github.com/teakhata/backend/internal/infrastructure/messaging"
	"github.com/teakhata/backend/internal/infrastructure/persistence"
	"github.com/teakhata/backend/internal/infrastructure/render"
	"github.com/teakhata/backend/internal/infrastructure/storage"
	"github.com/teakhata/backend/internal/infrastructure/telemetry"
	"github.com/teakhata/backend/internal/interfaces/http/handler"
	"github.com/teakhata/backend/internal/interfaces/http/middleware"
	"github.com/teakhata/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "github.com/teakhata/backend/docs"
)

//	@title			TeaKhata Backend API
//	@version		1.0
//	@description	Reconciliation, reporting and reminder engine for a tea trading business. Reads the externally managed khata database and writes only through its bookkeeping procedures.

//	@contact.name	API Support
//	@contact.url	https://github.com/teakhata/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting TeaKhata Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Continuous profiling. NewProfiler returns a no-op profiler when
	// profiling is disabled, so Stop is always safe to defer.
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:             cfg.Telemetry.ProfilingEnabled,
		ServerAddress:       cfg.Telemetry.ProfilingAddress,
		ApplicationName:     cfg.App.Name,
		ProfileCPU:          true,
		ProfileAllocObjects: true,
		ProfileAllocSpace:   true,
		ProfileInuseObjects: true,
		ProfileInuseSpace:   true,
		ProfileGoroutines:   true,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		_ = profiler.Stop()
	}()

	// Distributed tracing (OTLP gRPC)
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tracerProvider.Shutdown(shutdownCtx)
	}()

	// Span profiles need the profiler running first
	if cfg.Telemetry.ProfilingEnabled {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	// Metrics (OTLP gRPC)
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = meterProvider.Shutdown(shutdownCtx)
	}()

	// Log export (OTLP gRPC). When enabled the zap logger is rebuilt with
	// a tee core so every log line also reaches the collector.
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loggerProvider.Shutdown(shutdownCtx)
	}()

	if loggerProvider.IsEnabled() {
		level, perr := zapcore.ParseLevel(cfg.Log.Level)
		if perr != nil {
			level = zapcore.InfoLevel
		}
		otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: loggerProvider,
			Level:          level,
		})
		log = telemetry.NewBridgedLogger(log.Core(), otelCore,
			zap.AddCaller(),
			zap.AddStacktrace(zapcore.ErrorLevel),
		)
		log.Info("Log export to OTEL collector enabled")
	}

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Database query tracing and slow query logging
	if cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Initialize repositories over the khata schema
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	entryRepo := persistence.NewGormLedgerEntryRepository(db.DB)
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	procedures := persistence.NewStoredProcedureCaller(db.DB)
	reminderLogRepo := persistence.NewGormReminderLogRepository(db.DB)
	reportRunRepo := persistence.NewGormReportRunRepository(db.DB)

	// Snapshot cache and reminder dedup store. Both prefer Redis and fall
	// back to in-process storage when it is unreachable.
	cacheFactory := cache.NewFactory(cfg.Redis, cache.WithLogger(log))
	snapshotCache, err := cacheFactory.CreateSnapshotCache(cfg.Snapshot.Retention)
	if err != nil {
		log.Fatal("Failed to create snapshot cache", zap.Error(err))
	}
	idempotencyStore, err := cacheFactory.CreateIdempotencyStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}

	// Initialize application services
	snapshotService := ledgerapp.NewSnapshotService(
		customerRepo, entryRepo, batchRepo,
		snapshotCache, cfg.Snapshot.FreshFor, log,
	)
	recordService := ledgerapp.NewRecordService(procedures, customerRepo, snapshotService, log)
	analyticsService := reportapp.NewAnalyticsService(
		snapshotService, cfg.Business.Name, cfg.Business.CountryCode, log,
	)

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// LISTEN/NOTIFY invalidation: other khata writers (the Android app,
	// the importer) fire ledger_changed, which drops our cached snapshot.
	ledgerListener := listener.NewLedgerListener(cfg.Database.DSN(), snapshotService,
		listener.WithListenerLogger(log),
	)
	go func() {
		if err := ledgerListener.Run(appCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Ledger listener stopped", zap.Error(err))
		}
	}()
	defer func() {
		_ = ledgerListener.Close()
	}()

	// Report rendering and object storage
	renderers, err := render.BuildRenderers(cfg.Render, log)
	if err != nil {
		log.Fatal("Failed to build report renderers", zap.Error(err))
	}
	defer func() {
		for _, rd := range renderers {
			if closer, ok := rd.(io.Closer); ok {
				_ = closer.Close()
			}
		}
	}()

	objectStorage, err := storage.NewS3ObjectStorage(&cfg.Storage,
		storage.WithLogger(log),
		storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
	)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	bucketCtx, bucketCancel := context.WithTimeout(ctx, 10*time.Second)
	if err := objectStorage.EnsureBucket(bucketCtx); err != nil {
		log.Warn("Report bucket not reachable, exports will fail until storage is up", zap.Error(err))
	}
	bucketCancel()

	exportService := reportapp.NewExportService(
		analyticsService, renderers, objectStorage,
		reportRunRepo, cfg.Storage.PresignExpiration, log,
	)

	// Reminder dispatch over WhatsApp. The noop sender keeps preview and
	// the log endpoints working when dispatch is turned off.
	var sender reminderapp.Sender
	if cfg.Reminder.Enabled && cfg.WhatsApp.Enabled {
		waSender, err := messaging.NewWhatsAppSender(cfg.WhatsApp, log)
		if err != nil {
			log.Fatal("Failed to initialize WhatsApp sender", zap.Error(err))
		}
		sender = waSender
		log.Info("WhatsApp reminder dispatch enabled", zap.Bool("dry_run", cfg.WhatsApp.DryRun))
	} else {
		sender = messaging.NewNoopSender(log)
		log.Info("Reminder dispatch disabled, using noop sender")
	}
	reminderService := reminderapp.NewService(
		snapshotService, reminderLogRepo, idempotencyStore, sender,
		cfg.Business.Name, cfg.Business.CountryCode, cfg.Reminder.DedupTTL, log,
	)

	// Application metrics: snapshot, report and reminder counters plus
	// periodic ledger size gauges.
	if meterProvider.IsEnabled() {
		appMetrics, err := telemetry.NewAppMetrics(telemetry.AppMetricsConfig{
			Meter:         meterProvider.Meter("github.com/teakhata/backend"),
			Logger:        log,
			StatsProvider: telemetry.NewGormLedgerStatsProvider(db.DB),
		})
		if err != nil {
			log.Warn("Failed to initialize application metrics", zap.Error(err))
		} else {
			appMetrics.StartPeriodicCollection(appCtx, 0)
			defer appMetrics.Stop()
			snapshotService.SetAppMetrics(appMetrics)
			exportService.SetAppMetrics(appMetrics)
			reminderService.SetAppMetrics(appMetrics)
		}
	}

	// Initialize HTTP handlers
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	customerHandler := handler.NewCustomerHandler(analyticsService)
	ledgerHandler := handler.NewLedgerHandler(recordService)
	portalHandler := handler.NewPortalHandler(analyticsService)
	reminderHandler := handler.NewReminderHandler(reminderService)
	reportHandler := handler.NewReportHandler(exportService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	// 8. Tracing - Per-request OTEL spans (if enabled)
	// 9. HTTPMetrics - Request duration and count metrics (if enabled)
	// 10. Profiling - pprof labels on request goroutines (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.HTTPMetricsWithMeter(
		meterProvider.Meter("github.com/teakhata/backend"),
		meterProvider.IsEnabled(),
	))
	engine.Use(middleware.ProfilingWithConfig(middleware.ProfilingConfig{
		Enabled:   cfg.Telemetry.ProfilingEnabled,
		SkipPaths: []string{"/health"},
	}))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Token verification. Tokens are minted by the external auth provider;
	// this backend only verifies signatures and checks the shared
	// revocation keys in Redis.
	tokenVerifier := auth.NewTokenVerifier(cfg.JWT)
	var revocationList auth.RevocationList
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, pingCancel := context.WithTimeout(ctx, 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable for revocation checks, using in-memory list", zap.Error(err))
		_ = redisClient.Close()
		revocationList = auth.NewInMemoryRevocationList()
	} else {
		revocationList = auth.NewRedisRevocationList(redisClient)
		defer func() {
			_ = redisClient.Close()
		}()
	}
	pingCancel()

	jwtMiddleware := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		Verifier:       tokenVerifier,
		RevocationList: revocationList,
		SkipPaths: []string{
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	})

	// Swagger documentation endpoint
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, jwtMiddleware),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	r.Use(jwtMiddleware)

	// Register domain route groups

	// Analytics views mounted directly under the API root
	analyticsRoutes := router.NewDomainGroup("analytics", "")
	analyticsRoutes.Use(middleware.RequireRole(auth.RoleAdmin))
	analyticsRoutes.GET("/dashboard/summary", analyticsHandler.GetDashboard)
	analyticsRoutes.GET("/collections", analyticsHandler.GetCollections)
	analyticsRoutes.GET("/outstanding", analyticsHandler.GetOutstanding)
	analyticsRoutes.GET("/inventory/pnl", analyticsHandler.GetInventoryPnl)

	// Customer listing and statements
	customerRoutes := router.NewDomainGroup("customers", "/customers")
	customerRoutes.Use(middleware.RequireRole(auth.RoleAdmin))
	customerRoutes.GET("", customerHandler.List)
	customerRoutes.GET("/:id/statement", customerHandler.GetStatement)

	// Ledger writes go through the khata bookkeeping procedures
	ledgerRoutes := router.NewDomainGroup("ledger", "/ledger")
	ledgerRoutes.Use(middleware.RequireRole(auth.RoleAdmin))
	if cfg.HTTP.WriteRateLimitEnabled {
		writeLimiter := middleware.NewRateLimiter(cfg.HTTP.WriteRateLimitRequests, cfg.HTTP.WriteRateLimitWindow)
		ledgerRoutes.Use(middleware.WriteRateLimit(writeLimiter))
		log.Info("Write rate limiting enabled",
			zap.Int("requests", cfg.HTTP.WriteRateLimitRequests),
			zap.Duration("window", cfg.HTTP.WriteRateLimitWindow),
		)
	}
	ledgerRoutes.POST("/sales", ledgerHandler.RecordSale)
	ledgerRoutes.POST("/payments", ledgerHandler.RecordPayment)

	// Report exports
	reportRoutes := router.NewDomainGroup("reports", "/reports")
	reportRoutes.Use(middleware.RequireRole(auth.RoleAdmin))
	reportRoutes.POST("", reportHandler.Export)
	reportRoutes.GET("/runs", reportHandler.ListRuns)
	reportRoutes.GET("/runs/:id/url", reportHandler.GetRunURL)

	// Payment reminders
	reminderRoutes := router.NewDomainGroup("reminders", "/reminders")
	reminderRoutes.Use(middleware.RequireRole(auth.RoleAdmin))
	reminderRoutes.GET("/preview", reminderHandler.Preview)
	reminderRoutes.POST("/dispatch", reminderHandler.Dispatch)
	reminderRoutes.GET("/log", reminderHandler.ListLog)

	// Partner portal, scoped to the customer id in the token
	portalRoutes := router.NewDomainGroup("portal", "/portal")
	portalRoutes.Use(middleware.RequireRole(auth.RolePartner))
	portalRoutes.GET("/me/summary", portalHandler.GetMySummary)
	portalRoutes.GET("/me/statement", portalHandler.GetMyStatement)

	// Register all domain groups
	r.Register(analyticsRoutes).
		Register(customerRoutes).
		Register(ledgerRoutes).
		Register(reportRoutes).
		Register(reminderRoutes).
		Register(portalRoutes)

	// Register system routes with swagger-documented handlers
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
