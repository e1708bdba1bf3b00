package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"hoardify/config"
	"hoardify/cron"
	"hoardify/database"
	bookingRepo "hoardify/database/repository/booking"
	heroRepo "hoardify/database/repository/hero"
	hoardingRepo "hoardify/database/repository/hoarding"
	messageRepo "hoardify/database/repository/message"
	recordsRepo "hoardify/database/repository/records"
	userRepoPkg "hoardify/database/repository/user"
	workerRepo "hoardify/database/repository/worker"
	"hoardify/handlers"
	"hoardify/middleware"
	"hoardify/routes"
	"hoardify/services/account"
	"hoardify/services/booking"
	"hoardify/services/hero"
	"hoardify/services/hoarding"
	"hoardify/services/message"
	"hoardify/services/notification"
	"hoardify/services/report"
	"hoardify/services/storage"
	"hoardify/services/tasks"
	"hoardify/services/user"
	"hoardify/services/worker"
	"hoardify/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := utils.InitLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	policy, err := booking.ParseStatusPolicy(cfg.StatusPolicy)
	if err != nil {
		logger.Fatal("main: invalid status policy", zap.Error(err))
	}

	// external clients.
	fb, err := utils.FirebaseInit(ctx, cfg)
	if err != nil {
		logger.Fatal("main: failed to initialize firebase", zap.Error(err))
	}
	defer fb.Close()

	mongoClient, err := database.ConnectMongo(ctx, cfg)
	if err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())
	mongoDB := mongoClient.Database(cfg.MongoDatabase)
	if err := recordsRepo.EnsureIndexes(ctx, mongoDB); err != nil {
		logger.Warn("main: failed to ensure activity record indexes", zap.Error(err))
	}

	authCache, err := utils.InitCache(ctx, cfg)
	if err != nil {
		// admin tokens are then verified on every request
		logger.Warn("main: auth cache unavailable", zap.Error(err))
	} else {
		defer authCache.Close()
	}

	cld, err := utils.Cloudinary(cfg)
	if err != nil {
		logger.Fatal("main: failed to initialize cloudinary", zap.Error(err))
	}

	queue := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisQueueDB})
	defer queue.Close()

	// repositories.
	bookings := bookingRepo.NewFirestoreBookingRepo(fb.Firestore)
	users := userRepoPkg.NewFirestoreUserRepo(fb.Firestore)
	workers := workerRepo.NewFirestoreWorkerRepo(fb.Firestore)
	hoardings := hoardingRepo.NewFirestoreHoardingRepo(fb.Firestore)
	messages := messageRepo.NewFirestoreMessageRepo(fb.Firestore)
	slides := heroRepo.NewFirestoreHeroRepo(fb.Firestore)
	records := recordsRepo.NewMongoRecordRepo(mongoDB)

	// services.
	notificationService, err := notification.NewDefaultNotificationService(users, fb.Messaging, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize notifications", zap.Error(err))
	}

	bookingService := &booking.DefaultBookingService{
		Repo: bookings,
		Enricher: &booking.Enricher{
			Users:     users,
			Hoardings: hoardings,
			Logger:    logger,
		},
		Policy:   policy,
		View:     booking.NewView(),
		Records:  records,
		Notifier: &tasks.Dispatcher{Client: queue},
		Logger:   logger,
	}
	go bookingService.Run(ctx)

	messageService := message.NewDefaultMessageService(messages, logger)
	go messageService.Run(ctx)

	var cache redis.Cmdable
	if authCache != nil {
		cache = authCache
	}
	accountService := &account.DefaultAccountService{
		Auth:      fb.Auth,
		Roles:     users,
		Passwords: account.NewIdentityToolkit(cfg.FirebaseWebAPIKey),
		Records:   records,
		Cache:     cache,
		Logger:    logger,
	}
	userService := &user.DefaultUserService{
		Repo:     users,
		Accounts: user.FirebaseAccounts{Client: fb.Auth},
		Sessions: accountService,
		Records:  records,
		Logger:   logger,
	}
	workerService := &worker.DefaultWorkerService{Repo: workers, Records: records, Logger: logger}
	hoardingService := &hoarding.DefaultHoardingService{Repo: hoardings, Records: records, Logger: logger}
	heroService := &hero.DefaultHeroService{Repo: slides, Records: records, Logger: logger}
	reportService := &report.DefaultReportService{
		Bookings:  bookingService,
		Users:     userService,
		Workers:   workerService,
		Hoardings: hoardingService,
		Messages:  messageService,
		Records:   records,
		Logger:    logger,
	}
	storageService := storage.NewStorageService(&cld.Upload, cfg.CloudinaryFolder, logger)

	notifWorker := cron.InitNotificationWorker(ctx, cfg, notificationService, logger)

	monitor := utils.NewHealthMonitor(map[string]utils.HealthCheck{
		"mongo": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
		"redis": func(ctx context.Context) error {
			if authCache == nil {
				return errors.New("not connected")
			}
			return authCache.Ping(ctx).Err()
		},
		"firestore": func(ctx context.Context) error {
			_, err := fb.Firestore.Collection(database.BookingsCollection).Limit(1).Documents(ctx).GetAll()
			return err
		},
	})
	monitor.Start(ctx, 30*time.Second)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	handlerBundle := &handlers.HandlerBundle{
		Bookings:  handlers.NewBookingHandler(bookingService),
		Users:     handlers.NewUserHandler(userService),
		Workers:   handlers.NewWorkerHandler(workerService),
		Hoardings: handlers.NewHoardingHandler(hoardingService),
		Messages:  handlers.NewMessageHandler(messageService),
		Hero:      handlers.NewHeroHandler(heroService),
		Uploads:   handlers.NewUploadHandler(storageService),
		Settings:  handlers.NewSettingsHandler(accountService),
		Reports:   handlers.NewReportHandler(reportService),
	}
	adminAuth := middleware.AdminAuthMiddleware(accountService, cache, cfg.AuthCacheTTL, logger)
	router := newRouter(cfg, logger, handlerBundle, adminAuth, monitor)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}
	logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("statusPolicy", cfg.StatusPolicy))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	notifWorker.Shutdown()
	logger.Info("main: server stopped gracefully")
}

// newRouter builds the gin engine with the global middleware chain and every route.
func newRouter(cfg *config.Config, logger *zap.Logger, hb *handlers.HandlerBundle, adminAuth gin.HandlerFunc, monitor *utils.HealthMonitor) *gin.Engine {
	router := gin.New()
	router.Use(utils.ErrorHandler(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))
	routes.RegisterRoutes(router, hb, cfg.AllowedOrigins, adminAuth, monitor)
	return router
}
