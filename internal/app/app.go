package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"concept_edu_backend/internal/config"
	"concept_edu_backend/internal/controller"
	"concept_edu_backend/internal/repository"
	"concept_edu_backend/internal/service"
	"concept_edu_backend/pkg/database"
	"concept_edu_backend/pkg/logger"
	"concept_edu_backend/pkg/monitoring"
	"concept_edu_backend/pkg/security"
	"concept_edu_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	concept      *repository.ConceptRepository
	mastery      *repository.MasteryRepository
	course       *repository.CourseRepository
	learningPath *repository.LearningPathRepository
	quiz         *repository.QuizRepository
}

type services struct {
	auth    *service.AuthService
	user    *service.UserService
	concept *service.ConceptService
	course  *service.CourseService
	mastery *service.MasteryService
	path    *service.PathService
	quiz    *service.QuizService
}

type controllers struct {
	auth    *controller.AuthController
	user    *controller.UserController
	concept *controller.ConceptController
	course  *controller.CourseController
	mastery *controller.MasteryController
	path    *controller.PathController
	quiz    *controller.QuizController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		concept:      repository.NewConceptRepository(db),
		mastery:      repository.NewMasteryRepository(db),
		course:       repository.NewCourseRepository(db),
		learningPath: repository.NewLearningPathRepository(db, rdb),
		quiz:         repository.NewQuizRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.concept = service.NewConceptService(repos.concept)
	s.course = service.NewCourseService(repos.course, repos.concept, repos.mastery)
	s.mastery = service.NewMasteryService(repos.concept, repos.mastery, repos.course, repos.learningPath, cfg)
	s.path = service.NewPathService(repos.concept, repos.mastery, repos.learningPath, repos.course, cfg)
	s.quiz = service.NewQuizService(repos.quiz, repos.concept, s.mastery)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:    controller.NewAuthController(s.auth),
		user:    controller.NewUserController(s.user),
		concept: controller.NewConceptController(s.concept),
		course:  controller.NewCourseController(s.course),
		mastery: controller.NewMasteryController(s.mastery),
		path:    controller.NewPathController(s.path),
		quiz:    controller.NewQuizController(s.quiz),
		health:  controller.NewHealthController(db, rdb),
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

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("concept-mastery-platform", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

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
