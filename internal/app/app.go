package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus_hub_backend/internal/config"
	"campus_hub_backend/internal/controller"
	"campus_hub_backend/internal/repository"
	"campus_hub_backend/internal/service"
	"campus_hub_backend/pkg/database"
	"campus_hub_backend/pkg/logger"
	"campus_hub_backend/pkg/monitoring"
	"campus_hub_backend/pkg/security"
	"campus_hub_backend/pkg/tracing"

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
	user       *repository.UserRepository
	professor  *repository.ProfessorRepository
	course     *repository.CourseRepository
	student    *repository.StudentRepository
	team       *repository.TeamRepository
	evaluation *repository.EvaluationRepository
	score      *repository.ScoreRepository
	question   *repository.QuestionRepository
	project    *repository.ProjectRepository
	schedule   *repository.ScheduleRepository
	problem    *repository.ProblemRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	course     *service.CourseService
	team       *service.TeamService
	evaluation *service.EvaluationService
	score      *service.ScoreService
	question   *service.QuestionService
	project    *service.ProjectService
	schedule   *service.ScheduleService
	judge      *service.JudgeService
	ai         *service.AIService
	storage    *service.StorageService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	course     *controller.CourseController
	team       *controller.TeamController
	evaluation *controller.EvaluationController
	question   *controller.QuestionController
	project    *controller.ProjectController
	schedule   *controller.ScheduleController
	problem    *controller.ProblemController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig fans a reloaded configuration out to registered callbacks.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		professor:  repository.NewProfessorRepository(db),
		course:     repository.NewCourseRepository(db),
		student:    repository.NewStudentRepository(db),
		team:       repository.NewTeamRepository(db),
		evaluation: repository.NewEvaluationRepository(db),
		score:      repository.NewScoreRepository(db),
		question:   repository.NewQuestionRepository(db),
		project:    repository.NewProjectRepository(db),
		schedule:   repository.NewScheduleRepository(db),
		problem:    repository.NewProblemRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*services, error) {
	s := &services{}

	score, err := service.NewScoreService(repos.score, db)
	if err != nil {
		return nil, err
	}
	s.score = score

	s.storage = service.NewStorageService(cfg)
	s.ai = service.NewAIService(cfg.AI)
	s.auth = service.NewAuthService(repos.user, repos.professor, repos.course, rdb, cfg)
	s.user = service.NewUserService(repos.user, repos.course, repos.student, cfg)
	s.course = service.NewCourseService(repos.course, repos.student, db)
	s.team = service.NewTeamService(repos.team, repos.user, db)
	s.evaluation = service.NewEvaluationService(repos.evaluation, repos.team, db)
	s.question = service.NewQuestionService(repos.question, repos.user, s.score, db)
	s.project = service.NewProjectService(repos.project, s.storage, s.ai, db)
	s.schedule = service.NewScheduleService(repos.schedule, repos.professor, repos.course, db)
	s.judge = service.NewJudgeService(repos.problem, cfg.Judge0)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, a.Config),
		user:       controller.NewUserController(s.user, a.Config),
		course:     controller.NewCourseController(s.course),
		team:       controller.NewTeamController(s.team),
		evaluation: controller.NewEvaluationController(s.evaluation),
		question:   controller.NewQuestionController(s.question, s.score, s.ai),
		project:    controller.NewProjectController(s.project),
		schedule:   controller.NewScheduleController(s.schedule),
		problem:    controller.NewProblemController(s.judge),
		health:     controller.NewHealthController(db),
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

	logger.Log.Info("logger initialized")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("campus-hub", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("server listening", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown:", err)
	}

	logger.Log.Info("server exited")
}
