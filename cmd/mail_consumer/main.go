package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/SeakMengs/CourseCert/internal/config"
	"github.com/SeakMengs/CourseCert/internal/env"
	"github.com/SeakMengs/CourseCert/internal/mailer"
	"github.com/SeakMengs/CourseCert/internal/queue"
	"github.com/SeakMengs/CourseCert/internal/util"
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

	mail, err := mailer.NewClient(cfg.Mail, cfg.IsProduction(), logger)
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

	wg, err := rabbitMQ.ConsumeMailJob(ctx, logger, mailJobHandler(mail), MAX_WORKER)
	if err != nil {
		logger.Fatalf("Failed to consume mail job: %v", err)
	}

	logger.Infof("Started consuming mail job with %s", cfg.Mail.PROVIDER)

	<-ctx.Done()
	logger.Info("Shutting down, waiting for in flight mail")
	wg.Wait()
}

// Return shouldRequeue, err
func mailJobHandler(mail mailer.Client) queue.JobHandler[queue.MailJobPayload] {
	return func(ctx context.Context, jobPayload queue.MailJobPayload) (bool, error) {
		switch jobPayload.TemplateFile {
		case mailer.TemplateCertificateAvailable:
			var data mailer.CertificateAvailableData
			if err := json.Unmarshal(jobPayload.Data, &data); err != nil {
				return false, fmt.Errorf("failed to unmarshal CertificateAvailableData: %w", err)
			}

			status, err := mail.Send(jobPayload.TemplateFile, jobPayload.ToEmail, data)
			if err != nil {
				return true, fmt.Errorf("failed to send email: %w", err)
			}

			if status < http.StatusOK || status >= http.StatusMultipleChoices {
				return true, fmt.Errorf("email sending failed with status: %d", status)
			}

			return false, nil
		default:
			return false, fmt.Errorf("unsupported template: %s", jobPayload.TemplateFile)
		}
	}
}
