package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talenthub_backend/internal/config"
	"talenthub_backend/internal/controller"
	"talenthub_backend/internal/repository"
	"talenthub_backend/internal/service"
	"talenthub_backend/pkg/configwatcher"
	"talenthub_backend/pkg/database"
	"talenthub_backend/pkg/logger"
	"talenthub_backend/pkg/monitoring"
	"talenthub_backend/pkg/security"
	"talenthub_backend/pkg/tracing"

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
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	candidate    *repository.CandidateRepository
	campaign     *repository.CampaignRepository
	interview    *repository.InterviewRepository
	questionBank *repository.QuestionBankRepository
	activity     *repository.ActivityLogRepository
}

type services struct {
	auth         *service.AuthService
	generation   *service.GenerationService
	resolver     *service.QuestionResolver
	eligibility  *service.EligibilityService
	scheduler    *service.SchedulerService
	interview    *service.InterviewService
	campaign     *service.CampaignService
	candidate    *service.CandidateService
	questionBank *service.QuestionBankService
	notifier     service.Notifier
}

type controllers struct {
	auth         *controller.AuthController
	campaign     *controller.CampaignController
	candidate    *controller.CandidateController
	interview    *controller.InterviewController
	schedule     *controller.ScheduleController
	questionBank *controller.QuestionBankController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		candidate:    repository.NewCandidateRepository(db),
		campaign:     repository.NewCampaignRepository(db),
		interview:    repository.NewInterviewRepository(db),
		questionBank: repository.NewQuestionBankRepository(db),
		activity:     repository.NewActivityLogRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.generation = service.NewGenerationService(cfg.AI)
	s.resolver = service.NewQuestionResolver(repos.questionBank, s.generation, rdb)
	s.eligibility = service.NewEligibilityService(repos.candidate, repos.campaign, repos.interview)
	s.notifier = service.NewSMTPNotifier(cfg.Mail)

	s.scheduler = service.NewSchedulerService(
		db,
		repos.candidate,
		repos.campaign,
		repos.interview,
		repos.activity,
		s.eligibility,
		s.resolver,
		s.notifier,
		cfg.Server.BaseURL,
	)

	s.interview = service.NewInterviewService(
		db,
		repos.interview,
		repos.candidate,
		repos.campaign,
		s.resolver,
		service.NewCompletionScorer(),
		cfg.Server.BaseURL,
	)

	s.campaign = service.NewCampaignService(repos.campaign, repos.interview)
	s.candidate = service.NewCandidateService(repos.candidate, s.scheduler)
	s.questionBank = service.NewQuestionBankService(repos.questionBank)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		campaign:     controller.NewCampaignController(s.campaign),
		candidate:    controller.NewCandidateController(s.candidate),
		interview:    controller.NewInterviewController(s.interview),
		schedule:     controller.NewScheduleController(s.scheduler, s.eligibility, repos.campaign, repos.activity),
		questionBank: controller.NewQuestionBankController(s.questionBank),
		health:       controller.NewHealthController(db),
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
		maxRequests = 1000
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

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("talenthub-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		c, ok := newCfg.(*config.Config)
		if !ok {
			return
		}
		app.Config = c
		for _, cb := range app.configCallbacks {
			cb(c)
		}
		logger.Log.Info("Configuration reloaded")
	})

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
