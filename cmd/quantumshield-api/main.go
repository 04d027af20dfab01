// cmd/quantumshield-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	v1 "github.com/LEVISHAWN/QUANTUMSHIELD/internal/api/rest/v1"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/api/ws"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/app"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/infrastructure/memstore"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/infrastructure/persistence"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/jobs"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/config"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/logger"
	"github.com/LEVISHAWN/QUANTUMSHIELD/internal/pkg/ratelimit"
)

const (
	statusBroadcastInterval    = 30 * time.Second
	dashboardBroadcastInterval = time.Minute
	threatMonitorKickoff       = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/api.yaml"
	}

	appConfig, err := config.InitializeAppConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&appConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(appConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(appConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	services   v1.Services
	hub        *ws.Hub
	wsHandler  *ws.Handler
	monitor    *jobs.ThreatMonitorJob
	schedulers []*jobs.JobScheduler
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.AppConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	userRepo, err := persistence.NewGormUserRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}
	configRepo, err := persistence.NewGormSystemConfigRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create system config repository: %w", err)
	}
	threatRepo, err := persistence.NewGormThreatRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create threat repository: %w", err)
	}
	historyRepo, err := persistence.NewGormRotationHistoryRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create rotation history repository: %w", err)
	}
	recRepo, err := persistence.NewGormRecommendationRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create recommendation repository: %w", err)
	}
	activityRepo, err := persistence.NewGormActivityLogRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity log repository: %w", err)
	}

	// Key records live in memory: key material is held by the customer's HSM
	// or KMS and the lifecycle metadata is rebuilt from rotation history.
	keyRepo, err := memstore.NewKeyStore(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key store: %w", err)
	}

	// Initialize the realtime hub before the services that publish into it
	hub := ws.NewHub(log)

	// Initialize services
	catalog, err := app.NewAlgorithmCatalog(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create algorithm catalog: %w", err)
	}

	mirror, err := persistence.NewGormAlgorithmMirror(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create algorithm mirror: %w", err)
	}
	if err := mirror.Seed(context.Background(), catalog); err != nil {
		return nil, fmt.Errorf("failed to seed algorithm mirror: %w", err)
	}

	seed := time.Now().UnixNano()
	threatLevel := app.NewSimulatedThreatLevel(seed)

	authService, err := app.NewAuthService(userRepo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	selectionService, err := app.NewSelectionService(catalog, recRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create selection service: %w", err)
	}

	lifecycleService, err := app.NewKeyLifecycleService(catalog, keyRepo, historyRepo, threatLevel, seed, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key lifecycle service: %w", err)
	}

	threatService, err := app.NewThreatService(threatRepo, hub, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create threat service: %w", err)
	}

	systemService, err := app.NewSystemService(configRepo, keyRepo, threatRepo, catalog, threatLevel, seed, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create system service: %w", err)
	}

	// Initialize the background jobs
	executor, err := jobs.NewRotationExecutor(lifecycleService, historyRepo, configRepo, hub, seed, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create rotation executor: %w", err)
	}
	rotationScan, err := jobs.NewRotationScanJob(configRepo, historyRepo, executor, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create rotation scan job: %w", err)
	}
	threatScan, err := jobs.NewThreatScanJob(configRepo, threatRepo, executor, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create threat scan job: %w", err)
	}
	monitor, err := jobs.NewThreatMonitorJob(app.NewRandomizedThreatDetector(seed, log), threatService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create threat monitor job: %w", err)
	}

	schedulers, err := initializeSchedulers(cfg.Scheduler, rotationScan, threatScan, monitor, log)
	if err != nil {
		return nil, err
	}

	return &appDependencies{
		services: v1.Services{
			Auth:      authService,
			Users:     userRepo,
			Catalog:   catalog,
			Selection: selectionService,
			Lifecycle: lifecycleService,
			History:   historyRepo,
			System:    systemService,
			Threats:   threatService,
			Activity:  activityRepo,
			Limiter:   ratelimit.NewLimiter(),
			Logger:    log,
		},
		hub:        hub,
		wsHandler:  ws.NewHandler(hub, authService),
		monitor:    monitor,
		schedulers: schedulers,
	}, nil
}

// initializeSchedulers wires the rotation and threat jobs onto cron schedules
func initializeSchedulers(
	cfg config.SchedulerSettings,
	rotationScan *jobs.RotationScanJob,
	threatScan *jobs.ThreatScanJob,
	monitor *jobs.ThreatMonitorJob,
	log logger.Logger,
) ([]*jobs.JobScheduler, error) {
	rotationScheduler, err := jobs.NewJobScheduler(cfg.Enabled, cfg.RotationScanFrequency, log, rotationScan)
	if err != nil {
		return nil, fmt.Errorf("failed to create rotation scan scheduler: %w", err)
	}
	threatScheduler, err := jobs.NewJobScheduler(cfg.Enabled, cfg.ThreatScanFrequency, log, threatScan)
	if err != nil {
		return nil, fmt.Errorf("failed to create threat scan scheduler: %w", err)
	}
	monitorScheduler, err := jobs.NewJobScheduler(cfg.Enabled, cfg.ThreatMonitorFrequency, log, monitor)
	if err != nil {
		return nil, fmt.Errorf("failed to create threat monitor scheduler: %w", err)
	}

	return []*jobs.JobScheduler{rotationScheduler, threatScheduler, monitorScheduler}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.AppConfig, deps *appDependencies, log logger.Logger) error {
	// Run the realtime hub and the periodic status/dashboard broadcasts
	go deps.hub.Run()
	defer deps.hub.Close()

	broadcastCtx, cancelBroadcast := context.WithCancel(context.Background())
	defer cancelBroadcast()
	go deps.hub.BroadcastStatus(broadcastCtx, deps.services.System, statusBroadcastInterval)
	go deps.hub.BroadcastDashboard(broadcastCtx, deps.services.Lifecycle, deps.services.Threats, dashboardBroadcastInterval)

	// Start the background schedulers
	for _, scheduler := range deps.schedulers {
		scheduler.Start()
		defer scheduler.Stop()
	}
	if cfg.Scheduler.Enabled {
		timer := deps.monitor.Kickoff(threatMonitorKickoff)
		defer timer.Stop()
	}

	// Setup router
	r := gin.Default()

	// Configure CORS
	allowOrigins := []string{"*"}
	if cfg.Server.FrontendURL != "" {
		allowOrigins = []string{cfg.Server.FrontendURL}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r, deps.services)

	// Realtime channel
	r.GET("/ws", deps.wsHandler.Serve)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
