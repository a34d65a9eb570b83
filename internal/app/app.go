package app

import (
	"campus_backend/internal/config"
	"campus_backend/internal/controller"
	"campus_backend/internal/repository"
	"campus_backend/internal/service"
	"campus_backend/pkg/database"
	"campus_backend/pkg/logger"
	"campus_backend/pkg/monitoring"
	"campus_backend/pkg/security"
	"campus_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	manual     *repository.ManualRepository
	result     *repository.ResultRepository
	credential *repository.CredentialRepository
	session    *repository.SessionRepository
}

type services struct {
	storage    *service.StorageService
	catalog    *service.CatalogService
	generation *service.GenerationService
	quiz       *service.QuizService
	stats      *service.StatsService
	result     *service.ResultService
	auth       *service.AuthService
	chat       *service.ChatService
}

type controllers struct {
	auth   *controller.AuthController
	manual *controller.ManualController
	quiz   *controller.QuizController
	result *controller.ResultController
	stats  *controller.StatsController
	chat   *controller.ChatController
	health *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		manual:     repository.NewManualRepository(db),
		result:     repository.NewResultRepository(db),
		credential: repository.NewCredentialRepository(db),
		session:    repository.NewSessionRepository(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg, logger.Log)
	s.catalog = service.NewCatalogService(repos.manual, s.storage, logger.Log)
	s.generation = service.NewGenerationService(cfg.AI, logger.Log)
	s.quiz = service.NewQuizService(repos.session, repos.result, s.generation, s.catalog, cfg.Quiz, logger.Log)
	s.stats = service.NewStatsService(repos.result)
	s.result = service.NewResultService(repos.result, logger.Log)
	s.auth = service.NewAuthService(repos.credential, cfg.JWT, logger.Log)
	s.chat = service.NewChatService(cfg.AI, s.catalog, logger.Log)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:   controller.NewAuthController(s.auth),
		manual: controller.NewManualController(s.catalog),
		quiz:   controller.NewQuizController(s.quiz),
		result: controller.NewResultController(s.result),
		stats:  controller.NewStatsController(s.stats),
		chat:   controller.NewChatController(s.chat),
		health: controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	logger.Log.Info("Redis connection established")

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("campus-portal", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/archive", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
