package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"study_quiz_backend/internal/config"
	"study_quiz_backend/internal/controller"
	"study_quiz_backend/internal/repository"
	"study_quiz_backend/internal/service"
	"study_quiz_backend/pkg/configwatcher"
	"study_quiz_backend/pkg/database"
	"study_quiz_backend/pkg/logger"
	"study_quiz_backend/pkg/monitoring"
	"study_quiz_backend/pkg/security"
	"study_quiz_backend/pkg/tracing"
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

	services *services
}

type repositories struct {
	user     *repository.UserRepository
	document *repository.DocumentRepository
	question *repository.QuestionRepository
	progress *repository.ProgressRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	llm        *service.LLMService
	generation *service.GenerationService
	evaluation *service.EvaluationService
	document   *service.DocumentService
	quiz       *service.QuizService
	store      *service.SessionStore
}

type controllers struct {
	auth     *controller.AuthController
	document *controller.DocumentController
	evaluate *controller.EvaluateController
	quiz     *controller.QuizController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		document: repository.NewDocumentRepository(db),
		question: repository.NewQuestionRepository(db),
		progress: repository.NewProgressRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	storage, err := service.NewStorageService(&cfg.Storage)
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage", zap.Error(err))
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.llm = service.NewLLMService(cfg.LLM)
	s.generation = service.NewGenerationService(s.llm)
	s.evaluation = service.NewEvaluationService(s.llm, repos.question, repos.progress)
	s.document = service.NewDocumentService(repos.document, repos.question, repos.progress, s.generation, s.storage, cfg.Quiz)
	s.store = service.NewSessionStore(rdb, cfg.Quiz.SessionTTL)
	s.quiz = service.NewQuizService(repos.document, repos.question, repos.progress, s.evaluation, s.store, cfg.Quiz)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		document: controller.NewDocumentController(s.document, s.generation),
		evaluate: controller.NewEvaluateController(s.evaluation, a.Config.Quiz),
		quiz:     controller.NewQuizController(s.quiz),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	// release 模式下只有显式 -migrate 才改表结构
	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.MigrateOnly {
		logger.Log.Info("Migration completed (migrate-only mode)")
		return &App{Config: cfg, DB: db}
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

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("study-quiz", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// 监听配置文件，热更新出题数、掌握阈值等默认参数
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		app.services.quiz.UpdateDefaults(newCfg.Quiz)
		app.services.document.UpdateDefaults(newCfg.Quiz)
		logger.Log.Info("Quiz defaults reloaded",
			zap.Int("questionCount", newCfg.Quiz.QuestionCount),
			zap.Int("requiredStreak", newCfg.Quiz.RequiredStreak))
	})

	return app
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
