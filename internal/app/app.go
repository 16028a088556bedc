package app

import (
	"assessment_backend/internal/config"
	"assessment_backend/internal/controller"
	"assessment_backend/internal/repository"
	"assessment_backend/internal/repository/memory"
	"assessment_backend/internal/service"
	"assessment_backend/internal/util"
	"assessment_backend/pkg/configwatcher"
	"assessment_backend/pkg/database"
	"assessment_backend/pkg/logger"
	"assessment_backend/pkg/monitoring"
	"assessment_backend/pkg/security"
	"assessment_backend/pkg/tracing"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const configDir = "configs"

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Store  repository.Store

	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type services struct {
	access     *service.AccessResolver
	progress   *service.ProgressService
	assessment *service.AssessmentService
	analytics  *service.AnalyticsService
	storage    *service.StorageService
	report     *service.ReportService
	control    *service.ControlService
}

type controllers struct {
	assessment *controller.AssessmentController
	analytics  *controller.AnalyticsController
	report     *controller.ReportController
	health     *controller.HealthController
	control    *controller.ControlController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func policyFrom(cfg *config.Config) service.Policy {
	return service.Policy{
		ExposeAnswerKey: cfg.Assessment.ExposeAnswerKey,
		SingleAttempt:   cfg.Assessment.SingleAttempt,
	}
}

// initStore opens the configured backend. MySQL schemas are migrated outside
// release mode or when forced from the command line.
func (a *App) initStore(cfg *config.Config) (repository.Store, error) {
	switch cfg.Database.Driver {
	case util.DriverMemory:
		logger.Log.Info("Using in-memory store")
		return memory.NewStore(), nil
	case util.DriverMySQL:
		db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
		if err != nil {
			return nil, err
		}
		a.DB = db
		if cfg.ForceMigrate || cfg.Server.Mode != "release" {
			if err := database.Migrate(db); err != nil {
				return nil, err
			}
		}
		return repository.NewGormStore(db), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
}

// initLayoutCache prefers redis and falls back to process memory.
func (a *App) initLayoutCache(cfg *config.Config) repository.LayoutCache {
	if !cfg.Redis.Enabled {
		return repository.NewMemoryLayoutCache()
	}
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, attempt layouts kept in memory", zap.Error(err))
		return repository.NewMemoryLayoutCache()
	}
	a.Redis = rdb
	ttl := time.Duration(cfg.Redis.LayoutTTLHours) * time.Hour
	return repository.NewRedisLayoutCache(rdb, ttl)
}

func (a *App) seedStore(cfg *config.Config) {
	if cfg.Database.SeedFile == "" {
		return
	}
	seed, err := database.LoadSeed(cfg.Database.SeedFile)
	if err != nil {
		logger.Log.Fatal("Failed to load seed data", zap.Error(err))
	}
	n, err := database.ApplySeed(context.Background(), a.Store, seed)
	if err != nil {
		logger.Log.Fatal("Failed to apply seed data", zap.Error(err))
	}
	logger.Log.Info("Seed data applied", zap.String("file", cfg.Database.SeedFile), zap.Int("inserted", n))
}

func (a *App) initServices(cfg *config.Config, layouts repository.LayoutCache) *services {
	s := &services{}

	s.access = service.NewAccessResolver()
	s.progress = service.NewProgressService(a.Store)
	s.assessment = service.NewAssessmentService(a.Store, layouts, s.access, s.progress, policyFrom(cfg))
	s.analytics = service.NewAnalyticsService(a.Store, s.access)
	s.storage = service.NewStorageService(cfg)
	s.report = service.NewReportService(s.analytics, s.storage)
	s.control = service.NewControlService(a.Store)

	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.assessment.SetPolicy(policyFrom(newCfg))
	})

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		assessment: controller.NewAssessmentController(s.assessment, s.progress),
		analytics:  controller.NewAnalyticsController(s.analytics),
		report:     controller.NewReportController(s.report),
		health:     controller.NewHealthController(a.DB, a.Redis),
		control:    controller.NewControlController(s.control),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	app := &App{Config: cfg}
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetMode(newCfg.Server.Mode)
	})

	store, err := app.initStore(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize store", zap.Error(err))
	}
	app.Store = store
	if cfg.MigrateOnly {
		return app
	}
	app.seedStore(cfg)

	layouts := app.initLayoutCache(cfg)
	services := app.initServices(cfg, layouts)
	app.services = services
	controllers := app.initControllers(services)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	router := gin.Default()
	app.Router = router
	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal && strings.HasPrefix(cfg.Storage.PublicURL, "/") {
		router.Static(cfg.Storage.PublicURL, cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stopWatching := context.WithCancel(context.Background())
	defer stopWatching()
	go func() {
		path := filepath.Join(configDir, "config.yaml")
		if err := configwatcher.WatchConfig(ctx, path, a.applyConfig); err != nil {
			logger.Log.Warn("Config hot reload disabled", zap.Error(err))
		}
	}()

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
	_ = logger.Log.Sync()
}
