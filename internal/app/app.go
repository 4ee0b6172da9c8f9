package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"training_portal_backend/internal/config"
	"training_portal_backend/internal/controller"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/service"
	"training_portal_backend/pkg/database"
	"training_portal_backend/pkg/logger"
	"training_portal_backend/pkg/monitoring"
	"training_portal_backend/pkg/security"
	"training_portal_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user     *repository.UserRepository
	team     *repository.TeamRepository
	session  *repository.LoginSessionRepository
	attempt  *repository.QuizAttemptRepository
	progress *repository.VideoProgressRepository
	cache    *repository.LeaderboardCache
}

type services struct {
	auth     *service.AuthService
	content  *service.ContentService
	scoring  *service.ScoringService
	user     *service.UserService
	progress *service.ProgressService
	imports  *service.ImportService
	storage  service.StorageProvider
}

type controllers struct {
	auth      *controller.AuthController
	quiz      *controller.QuizController
	dashboard *controller.DashboardController
	manager   *controller.ManagerController
	progress  *controller.ProgressController
	admin     *controller.AdminController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		team:     repository.NewTeamRepository(db),
		session:  repository.NewLoginSessionRepository(db),
		attempt:  repository.NewQuizAttemptRepository(db),
		progress: repository.NewVideoProgressRepository(db),
		cache:    repository.NewLeaderboardCache(rdb, 0),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	content, err := service.NewContentService(cfg.Catalog.Path)
	if err != nil {
		logger.Log.Fatal("Failed to load training catalog", zap.String("path", cfg.Catalog.Path), zap.Error(err))
	}

	storage, err := service.NewStorageProvider(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage provider", zap.Error(err))
	}

	return &services{
		auth:    service.NewAuthService(repos.user, repos.team, repos.session, cfg),
		content: content,
		scoring: service.NewScoringService(
			content,
			repos.attempt,
			repos.session,
			repos.user,
			repos.progress,
			repos.cache,
			nil,
		),
		user:     service.NewUserService(repos.user, repos.team),
		progress: service.NewProgressService(repos.progress, content),
		imports:  service.NewImportService(repos.user, repos.team, storage),
		storage:  storage,
	}
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	isRelease := a.Config.Server.Mode == "release"
	return &controllers{
		auth:      controller.NewAuthController(s.auth, isRelease),
		quiz:      controller.NewQuizController(s.scoring),
		dashboard: controller.NewDashboardController(s.scoring),
		manager:   controller.NewManagerController(s.scoring),
		progress:  controller.NewProgressController(s.progress, s.content),
		admin:     controller.NewAdminController(s.user, s.imports),
		health:    controller.NewHealthController(db, s.content),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	// 定期清理过期的登录会话
	go func() {
		ticker := time.NewTicker(time.Hour)
		for range ticker.C {
			if err := s.auth.SweepExpiredSessions(); err != nil {
				logger.Log.Error("session sweep error", zap.Error(err))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode, cfg.ForceMigrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("training-portal", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, services, repos)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
