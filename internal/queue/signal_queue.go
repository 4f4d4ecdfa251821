package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/SeakMengs/CourseCert/internal/signal"
	"go.uber.org/zap"
)

// SignalJob wraps a signal envelope so it can travel through the retrying worker.
type SignalJob struct {
	signal.Envelope
}

func (j *SignalJob) try() int { return j.Try }
func (j *SignalJob) nextTry() { j.Try++ }
func (j *SignalJob) describe() string {
	return fmt.Sprintf("signal %s sent at %s", j.Signal, j.SentAt)
}

func PublishSignal(publisher Publisher, event signal.Event) error {
	envelope, err := signal.NewEnvelope(event)
	if err != nil {
		return err
	}

	return publishJSON(publisher, QueueCertificateSignal, envelope)
}

func newSignalWorker(publisher Publisher, logger *zap.SugaredLogger, handler JobHandler[SignalJob]) *worker[SignalJob, *SignalJob] {
	return &worker[SignalJob, *SignalJob]{
		name:      "Signal",
		queueName: QueueCertificateSignal,
		publisher: publisher,
		logger:    logger,
		handler:   handler,
	}
}

func (r *RabbitMQ) ConsumeSignal(ctx context.Context, logger *zap.SugaredLogger, handler JobHandler[SignalJob], maxWorker int) (*sync.WaitGroup, error) {
	msgs, err := r.Consume(QueueCertificateSignal)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming signals: %w", err)
	}

	return newSignalWorker(r, logger, handler).start(ctx, msgs, maxWorker), nil
}
