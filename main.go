package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"sahayata/config"
	"sahayata/cron"
	"sahayata/database"
	"sahayata/database/repository"
	"sahayata/handlers"
	"sahayata/middleware"
	"sahayata/routes"
	"sahayata/services/care"
	"sahayata/services/channels"
	"sahayata/services/community"
	"sahayata/services/notification"
	"sahayata/services/profile"
	"sahayata/services/realtime"
	"sahayata/services/records"
	"sahayata/services/reminder"
	"sahayata/services/storage"
	"sahayata/services/user"
	"sahayata/utils"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("main: %v", err)
	}
	logger, err := utils.InitializeLogger(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("main: failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := utils.RegisterValidators(); err != nil {
		logger.Sugar().Fatalf("main: failed to register validators: %v", err)
	}
	loc, _ := cfg.Location()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	mongoClient, db, err := database.Connect(ctx, cfg.DatabaseURL, cfg.DatabaseName, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	defer database.Disconnect(mongoClient, logger)

	repos, err := repository.Open(db)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize repositories: %v", err)
	}

	// Real-time events go through Redis when it is configured so that every
	// instance sees them; otherwise they stay in process.
	var (
		broker       realtime.Broker
		redisClients []*redis.Client
	)
	if cfg.RedisAddr != "" {
		pubsubClient, err := utils.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisPubSubDB)
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		defer pubsubClient.Close()
		redisClients = append(redisClients, pubsubClient)
		broker = realtime.NewRedisBroker(pubsubClient, logger.Named("realtime"))
	} else {
		logger.Info("REDIS_ADDR not set - real-time events stay in process")
		broker = realtime.NewMemoryBroker()
	}

	notificationChannels := channels.NewFromConfig(ctx, cfg, logger)
	files, err := storage.NewFromConfig(ctx, cfg, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize attachment storage: %v", err)
	}

	// Reminder engine: one pipeline per kind over shared collaborators.
	deps := reminder.Deps{
		Notifications: repos.Notifications,
		Profiles:      repos.Profiles,
		Emitter:       broker,
		Channels:      notificationChannels,
		Logger:        logger.Named("reminder"),
	}
	opts := reminder.Options{Location: loc, Window: cfg.ReminderWindow}
	runners := []reminder.Runner{
		reminder.NewPipeline(reminder.AppointmentKind(), repos.Appointments, deps, opts),
		reminder.NewPipeline(reminder.RoutineKind(), repos.Routines, deps, opts),
	}
	confirmer := reminder.NewConfirmer(repos.Profiles, notificationChannels, cfg.ReminderWindow, logger.Named("confirmation"))

	scheduler, err := cron.NewScheduler(cfg, runners, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize reminder scheduler: %v", err)
	}
	if err := scheduler.Start(); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	defer scheduler.Stop()

	go utils.StartHealthMonitor(ctx, 30*time.Second, redisClients, mongoClient)

	// services.
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	userService := user.NewUserService(repos.Users, tokens)
	profileService := profile.NewProfileService(repos.Profiles, repos.Users)
	careService := care.NewCareService(repos.Appointments, repos.Routines, confirmer, logger.Named("care"))
	recordService := records.NewRecordService(repos.Records, files, logger.Named("records"))
	communityService := community.NewCommunityService(repos.Groups, repos.Chats, repos.Profiles, repos.Notifications, broker, logger.Named("community"))
	notificationService := notification.NewDefaultNotificationService(repos.Notifications, repos.Profiles, notificationChannels)

	handlerBundle := &handlers.HandlerBundle{
		Tokens:        tokens,
		Auth:          handlers.NewAuthHandler(userService),
		Profile:       handlers.NewProfileHandler(profileService),
		Care:          handlers.NewCareHandler(careService),
		Records:       handlers.NewRecordHandler(recordService, cfg.MaxUploadMB),
		Community:     handlers.NewCommunityHandler(communityService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Stream:        handlers.NewStreamHandler(broker),
	}
	if cfg.DebugEndpoints {
		handlerBundle.Debug = handlers.NewDebugHandler(runners, notificationService)
		logger.Warn("debug endpoints enabled", zap.String("prefix", "/api/debug"))
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadMB << 20
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))
	routes.RegisterRoutes(router, handlerBundle)

	// Requests inherit ctx so open event streams end when shutdown begins.
	srv := &http.Server{
		Addr:        "0.0.0.0:" + cfg.AppPort,
		Handler:     router,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	srv.RegisterOnShutdown(stop)

	logger.Info("Starting server",
		zap.String("addr", srv.Addr),
		zap.String("scheduler", cfg.SchedulerMode),
		zap.String("timezone", loc.String()),
		zap.Strings("kinds", kindNames(runners)))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}

func kindNames(runners []reminder.Runner) []string {
	names := make([]string, 0, len(runners))
	for _, r := range runners {
		names = append(names, string(r.Kind()))
	}
	return names
}
