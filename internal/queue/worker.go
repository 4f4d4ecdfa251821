package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// JobHandler processes one job. Return shouldRequeue, err.
type JobHandler[T any] func(ctx context.Context, job T) (bool, error)

// retryable is implemented by pointers to job payloads carrying a try counter.
type retryable[T any] interface {
	*T
	try() int
	nextTry()
	describe() string
}

// worker drains a delivery channel, retrying failed jobs by republishing them with an incremented counter.
type worker[T any, PT retryable[T]] struct {
	name      string
	queueName QueueName
	publisher Publisher
	logger    *zap.SugaredLogger
	handler   JobHandler[T]
	// onDrop runs when a failed job will not be retried.
	onDrop func(ctx context.Context, job T)
}

// start runs maxWorker goroutines until ctx is done or msgs is closed.
// The returned WaitGroup completes when every goroutine has returned.
func (w *worker[T, PT]) start(ctx context.Context, msgs <-chan amqp.Delivery, maxWorker int) *sync.WaitGroup {
	var wg sync.WaitGroup
	for i := 0; i < maxWorker; i++ {
		wg.Add(1)
		go func(workerNumber int) {
			defer wg.Done()
			w.run(ctx, workerNumber, msgs)
		}(i + 1)
	}
	return &wg
}

func (w *worker[T, PT]) run(ctx context.Context, workerNumber int, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			w.logger.Infof("[%s Worker %d] Shutting down", w.name, workerNumber)
			return
		case msg, ok := <-msgs:
			if !ok {
				w.logger.Infof("[%s Worker %d] Message channel closed", w.name, workerNumber)
				return
			}
			w.process(ctx, workerNumber, msg)
		}
	}
}

func (w *worker[T, PT]) process(ctx context.Context, workerNumber int, msg amqp.Delivery) {
	if msg.Body == nil {
		w.logger.Warnf("[%s Worker %d] Received empty message body", w.name, workerNumber)
		_ = msg.Nack(false, false)
		return
	}

	var job T
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		w.logger.Errorf("[%s Worker %d] Invalid payload: %v", w.name, workerNumber, err)
		_ = msg.Nack(false, false)
		return
	}

	pj := PT(&job)
	workerPrefix := fmt.Sprintf("[%s Worker %d: Retry %d]", w.name, workerNumber, pj.try())

	shouldRequeue, err := w.handler(ctx, job)
	if err != nil {
		w.logger.Errorf("%s Handler error processing %s: %v", workerPrefix, pj.describe(), err)

		if !shouldRequeue || pj.try() >= MAX_QUEUE_RETRY {
			w.logger.Warnf("%s Not requeuing %s (shouldRequeue: %v)", workerPrefix, pj.describe(), shouldRequeue)
			if w.onDrop != nil {
				w.onDrop(ctx, job)
			}
			_ = msg.Nack(false, false)
			return
		}

		w.requeue(workerPrefix, msg, pj)
		return
	}

	w.logger.Infof("%s Successfully processed %s", workerPrefix, pj.describe())
	_ = msg.Ack(false)
}

func (w *worker[T, PT]) requeue(workerPrefix string, msg amqp.Delivery, job PT) {
	job.nextTry()
	payloadBytes, err := json.Marshal(job)
	if err != nil {
		w.logger.Errorf("%s Failed to marshal payload for requeue: %v", workerPrefix, err)
		_ = msg.Nack(false, false)
		return
	}

	if err := w.publisher.Publish(w.queueName, payloadBytes); err != nil {
		w.logger.Errorf("%s Failed to requeue %s: %v", workerPrefix, job.describe(), err)
		_ = msg.Nack(false, false)
		return
	}

	w.logger.Infof("%s Requeued %s", workerPrefix, job.describe())
	_ = msg.Ack(false)
}

// publishJSON marshals payload and publishes it to queueName.
func publishJSON(publisher Publisher, queueName QueueName, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", queueName, err)
	}

	if err := publisher.Publish(queueName, body); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", queueName, err)
	}

	return nil
}
