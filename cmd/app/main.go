package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/net/netutil"

	"sondeo-backend/internal/config"
	"sondeo-backend/internal/controller"
	"sondeo-backend/internal/db"
	"sondeo-backend/internal/model"
	"sondeo-backend/internal/repository"
	"sondeo-backend/internal/service"
	"sondeo-backend/pkg/middleware"
	"sondeo-backend/utilities"
)

func main() {
	seed := flag.Bool("seed", false, "seed the database with the base instruments and exit")
	flag.Parse()

	printStartUpBanner()

	// .env is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	// Load XML configuration from file.
	cfg, err := config.LoadConfig("config.xml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	utilities.InitLogging("logs")
	utilities.ConfigureJWT(cfg.Authentication.AccessSecret, cfg.Authentication.RefreshSecret)

	// Initialize DB using the loaded config.
	db.InitDBFromConfig(cfg)
	// Run migrations.
	if err := db.GetDB().AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Survey{},
		&model.Question{},
		&model.AnswerOption{},
		&model.Subscale{},
		&model.Result{},
		&model.Answer{},
	); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	if *seed {
		seedDatabase()
		return
	}

	// Create repositories.
	userRepo := repository.NewUserRepository()
	surveyRepo := repository.NewSurveyRepository()
	responseRepo := repository.NewResponseRepository()

	// Create services.
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	surveyService := service.NewSurveyService(surveyRepo)
	responseService := service.NewResponseService(responseRepo, surveyRepo, utilities.GlobalEventBus)
	exportService := service.NewExportService(responseRepo, surveyRepo, userRepo)
	service.InitExportEventListeners(responseRepo, surveyRepo, userRepo)
	utilities.GlobalEventBus.Subscribe(utilities.EventResultCreated, func(data interface{}) {
		utilities.Info("result %v stored", data)
	})

	// Initialize Gin router.
	r := gin.Default()

	// CORS configuration.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.RequestDump {
		r.Use(middleware.RequestDumpMiddleware())
	}
	if cfg.RateLimit.RequestsPerSecond > 0 {
		r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}

	controller.RegisterRoutes(r, authService, userService, surveyService, responseService, exportService)

	// Start server on the host and port specified in the XML config, capping
	// concurrent connections.
	addr := fmt.Sprintf("%s:%d", cfg.Context.Host, cfg.Context.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("failed to listen on %s: %v", addr, err)
	}
	if cfg.Context.MaxConns > 0 {
		listener = netutil.LimitListener(listener, cfg.Context.MaxConns)
	}

	utilities.Info("listening on %s", addr)
	if err := http.Serve(listener, r); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func printStartUpBanner() {
	myFigure := figure.NewFigure("SONDEO", "", true)
	myFigure.Print()

	fmt.Println("======================================================")
	fmt.Printf("SONDEO API (v%s)\n\n", "1.0.0")
}
