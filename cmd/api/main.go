package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	appcontext "github.com/SeakMengs/CourseCert/internal/app_context"
	"github.com/SeakMengs/CourseCert/internal/auth"
	"github.com/SeakMengs/CourseCert/internal/certificate"
	"github.com/SeakMengs/CourseCert/internal/config"
	"github.com/SeakMengs/CourseCert/internal/controller"
	"github.com/SeakMengs/CourseCert/internal/courseware"
	"github.com/SeakMengs/CourseCert/internal/database"
	"github.com/SeakMengs/CourseCert/internal/env"
	filestorage "github.com/SeakMengs/CourseCert/internal/file_storage"
	"github.com/SeakMengs/CourseCert/internal/middleware"
	"github.com/SeakMengs/CourseCert/internal/queue"
	ratelimiter "github.com/SeakMengs/CourseCert/internal/rate_limiter"
	"github.com/SeakMengs/CourseCert/internal/repository"
	"github.com/SeakMengs/CourseCert/internal/route"
	"github.com/SeakMengs/CourseCert/internal/util"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

func main() {
	cfg := config.GetConfig()

	logger := util.NewLogger(cfg.ENV)
	logger.Debugf("Configuration: %+v \n", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.ConnectReturnGormDB(cfg.DB)
	if err != nil {
		logger.Panic(err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		logger.Panic(err)
	}
	defer sqlDb.Close()
	logger.Info("Database connected \n")

	s3, err := filestorage.NewMinioClient(&cfg.Minio)
	if err != nil {
		logger.Error("Error connecting to minio")
		logger.Panic(err)
	}

	store, err := filestorage.NewMinioStore(ctx, s3, cfg.Minio.BUCKET)
	if err != nil {
		logger.Panic(err)
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.GetConnectionString())
	if err != nil {
		logger.Panic("Error connecting to RabbitMQ: ", err)
	}
	logger.Info("RabbitMQ connected \n")
	defer func() {
		if err := rabbitMQ.Close(); err != nil {
			logger.Errorf("Failed to close RabbitMQ connection: %v", err)
		}
	}()

	// Custom validation
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := util.RegisterCustomValidations(v); err != nil {
			logger.Panicf("Failed to register custom validations: %v", err)
		}
	}

	rateLimiter := ratelimiter.NewRateLimiter(cfg.RateLimiter, logger)
	jwtService := auth.NewJwt(cfg.Auth, logger)
	repo := repository.NewRepository(db, logger)
	certificates := certificate.NewService(&cfg, repo, logger, rabbitMQ, store)
	app := appcontext.Application{
		Config:       &cfg,
		Repository:   repo,
		Logger:       logger,
		JWTService:   jwtService,
		Publisher:    rabbitMQ,
		Certificates: certificates,
		Courseware:   courseware.NewService(&cfg, repo, certificates, logger),
	}

	_middleware := middleware.NewMiddleware(&app, rateLimiter)

	if cfg.IsProduction() {
		logger.Info("Running in production mode")
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	// docs: https://github.com/gin-contrib/cors?tab=readme-ov-file#using-defaultconfig-as-start-point
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontURL}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Requested-With", "Accept", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader, "Retry-After"}
	r.Use(cors.New(corsConfig))
	r.Use(_middleware.RequestIDMiddleware)
	r.Use(_middleware.RateLimiterMiddleware)

	route.Register(r, controller.NewController(&app), _middleware)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.Port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Panicf("Error running server: %v \n", err)
		}
	}()
	logger.Infof("Listening on %s", srv.Addr)

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}
}
