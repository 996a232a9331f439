package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/config"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/controller"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/repository"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/internal/service"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/pkg/database"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/pkg/logger"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/pkg/monitoring"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/pkg/security"
	"github.com/Mitesh-Kumavat/exgen-ai-sub000/pkg/tracing"

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
	user        *repository.UserRepository
	exam        *repository.ExamRepository
	schema      *repository.SchemaRepository
	paper       *repository.PaperRepository
	answerSheet *repository.AnswerSheetRepository
	result      *repository.ResultRepository
	query       *repository.QueryRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	exam       *service.ExamService
	schema     *service.SchemaService
	paper      *service.PaperService
	evaluation *service.EvaluationService
	result     *service.ResultService
	query      *service.QueryService
	ai         *service.AIService
}

type controllers struct {
	auth   *controller.AuthController
	exam   *controller.ExamController
	schema *controller.SchemaController
	paper  *controller.PaperController
	answer *controller.AnswerController
	result *controller.ResultController
	query  *controller.QueryController
	user   *controller.UserController
	health *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		exam:        repository.NewExamRepository(db),
		schema:      repository.NewSchemaRepository(db),
		paper:       repository.NewPaperRepository(db),
		answerSheet: repository.NewAnswerSheetRepository(db),
		result:      repository.NewResultRepository(db),
		query:       repository.NewQueryRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.ai = service.NewAIService(cfg.AI)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.exam = service.NewExamService(repos.exam, repos.schema)
	s.schema = service.NewSchemaService(repos.schema, repos.exam)
	s.paper = service.NewPaperService(repos.paper, repos.exam, repos.schema, s.ai, rdb)
	s.evaluation = service.NewEvaluationService(repos.answerSheet, repos.result, repos.paper, repos.exam, repos.schema, s.ai, db)
	s.result = service.NewResultService(repos.result, repos.answerSheet, repos.exam)
	s.query = service.NewQueryService(repos.query, repos.result, s.evaluation)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:   controller.NewAuthController(s.auth, s.user),
		exam:   controller.NewExamController(s.exam, s.user),
		schema: controller.NewSchemaController(s.schema),
		paper:  controller.NewPaperController(s.paper),
		answer: controller.NewAnswerController(s.evaluation),
		result: controller.NewResultController(s.result),
		query:  controller.NewQueryController(s.query),
		user:   controller.NewUserController(s.user),
		health: controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

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
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Paper caching degrades gracefully without redis.
		logger.Log.Warn("Redis unavailable, paper caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("exgen-ai", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

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
