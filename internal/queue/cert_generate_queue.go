package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

type CertificateGeneratePayload struct {
	UserID   string `json:"user_id"`
	CourseID string `json:"course_id"`
	// Source records what triggered the generation, e.g. a signal name.
	Source string `json:"source"`
	// Allowlist jobs generate regardless of the learner's grade.
	Allowlist bool   `json:"allowlist"`
	CreatedAt string `json:"created_at"`
	Try       int    `json:"try" default:"0"`
}

func NewCertificateGeneratePayload(userID, courseID, source string, allowlist bool) CertificateGeneratePayload {
	return CertificateGeneratePayload{
		UserID:    userID,
		CourseID:  courseID,
		Source:    source,
		Allowlist: allowlist,
		CreatedAt: time.Now().Format(time.RFC3339),
		Try:       0,
	}
}

func (p *CertificateGeneratePayload) try() int { return p.Try }
func (p *CertificateGeneratePayload) nextTry() { p.Try++ }
func (p *CertificateGeneratePayload) describe() string {
	return fmt.Sprintf("certificate job for UserID: %s, CourseID: %s", p.UserID, p.CourseID)
}

// QueueWaitDuration reports how long the job sat in the queue.
func (p CertificateGeneratePayload) QueueWaitDuration() string {
	createdAt, err := time.Parse(time.RFC3339, p.CreatedAt)
	if err != nil {
		return "unknown"
	}
	return time.Since(createdAt).String()
}

func PublishCertificateGenerateJob(publisher Publisher, job CertificateGeneratePayload) error {
	return publishJSON(publisher, QueueCertificateGenerate, job)
}

func newCertificateGenerateWorker(publisher Publisher, logger *zap.SugaredLogger, handler JobHandler[CertificateGeneratePayload]) *worker[CertificateGeneratePayload, *CertificateGeneratePayload] {
	return &worker[CertificateGeneratePayload, *CertificateGeneratePayload]{
		name:      "Certificate",
		queueName: QueueCertificateGenerate,
		publisher: publisher,
		logger:    logger,
		handler:   handler,
		onDrop: func(ctx context.Context, job CertificateGeneratePayload) {
			logger.Warnf("Dropped certificate job for UserID: %s, CourseID: %s, source: %s", job.UserID, job.CourseID, job.Source)
		},
	}
}

func (r *RabbitMQ) ConsumeCertificateGenerateJob(ctx context.Context, logger *zap.SugaredLogger, handler JobHandler[CertificateGeneratePayload], maxWorker int) (*sync.WaitGroup, error) {
	msgs, err := r.Consume(QueueCertificateGenerate)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming certificate generate jobs: %w", err)
	}

	return newCertificateGenerateWorker(r, logger, handler).start(ctx, msgs, maxWorker), nil
}
