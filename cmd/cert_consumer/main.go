package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/SeakMengs/CourseCert/internal/certificate"
	"github.com/SeakMengs/CourseCert/internal/config"
	"github.com/SeakMengs/CourseCert/internal/database"
	"github.com/SeakMengs/CourseCert/internal/env"
	filestorage "github.com/SeakMengs/CourseCert/internal/file_storage"
	"github.com/SeakMengs/CourseCert/internal/queue"
	"github.com/SeakMengs/CourseCert/internal/repository"
	"github.com/SeakMengs/CourseCert/internal/util"
	"github.com/robfig/cron/v3"
)

// this function run before main
func init() {
	env.LoadEnv(".env")
}

const (
	MAX_WORKER = 3
)

func main() {
	cfg := config.GetConfig()
	logger := util.NewLogger(cfg.ENV)

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

	repo := repository.NewRepository(db, logger)
	certificates := certificate.NewService(&cfg, repo, logger, rabbitMQ, store)

	// Certificates left in generating by a crashed worker are marked as error.
	reaper := cron.New()
	if _, err := reaper.AddFunc(cfg.Certificate.ReaperSchedule, func() {
		if _, err := certificates.ReapStaleGenerations(ctx); err != nil {
			logger.Errorf("Failed to reap stale certificate generations: %v", err)
		}
	}); err != nil {
		logger.Panicf("Invalid CERT_REAPER_SCHEDULE %q: %v", cfg.Certificate.ReaperSchedule, err)
	}
	reaper.Start()

	wg, err := rabbitMQ.ConsumeCertificateGenerateJob(ctx, logger, certificates.HandleGenerateJob, MAX_WORKER)
	if err != nil {
		logger.Fatalf("Failed to consume certificate generate job: %v", err)
	}

	logger.Infof("Started consuming certificate generate job")

	<-ctx.Done()
	logger.Info("Shutting down, waiting for in flight certificate jobs")
	<-reaper.Stop().Done()
	wg.Wait()
}
