package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/SeakMengs/CourseCert/internal/mailer"
	"go.uber.org/zap"
)

type MailJobPayload struct {
	ToEmail      string                  `json:"to_email"`
	TemplateFile mailer.MailTemplateFile `json:"template_file"`
	Data         json.RawMessage         `json:"data"`
	CreatedAt    string                  `json:"created_at"`
	Try          int                     `json:"try" default:"0"`
}

func NewMailJobPayload[T any](toEmail string, templateFile mailer.MailTemplateFile, data T) (MailJobPayload, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return MailJobPayload{}, fmt.Errorf("failed to marshal data: %w", err)
	}

	return MailJobPayload{
		ToEmail:      toEmail,
		TemplateFile: templateFile,
		Data:         dataBytes,
		Try:          0,
		CreatedAt:    time.Now().Format(time.RFC3339),
	}, nil
}

func NewCertificateAvailableMailJob(toEmail string, data mailer.CertificateAvailableData) (MailJobPayload, error) {
	return NewMailJobPayload(toEmail, mailer.TemplateCertificateAvailable, data)
}

func (p *MailJobPayload) try() int { return p.Try }
func (p *MailJobPayload) nextTry() { p.Try++ }
func (p *MailJobPayload) describe() string {
	return fmt.Sprintf("mail job for recipient: %s, template: %s", p.ToEmail, p.TemplateFile)
}

func PublishMailJob(publisher Publisher, job MailJobPayload) error {
	return publishJSON(publisher, QueueMail, job)
}

func newMailWorker(publisher Publisher, logger *zap.SugaredLogger, handler JobHandler[MailJobPayload]) *worker[MailJobPayload, *MailJobPayload] {
	return &worker[MailJobPayload, *MailJobPayload]{
		name:      "Mail",
		queueName: QueueMail,
		publisher: publisher,
		logger:    logger,
		handler:   handler,
	}
}

func (r *RabbitMQ) ConsumeMailJob(ctx context.Context, logger *zap.SugaredLogger, handler JobHandler[MailJobPayload], maxWorker int) (*sync.WaitGroup, error) {
	msgs, err := r.Consume(QueueMail)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming mail jobs: %w", err)
	}

	return newMailWorker(r, logger, handler).start(ctx, msgs, maxWorker), nil
}
