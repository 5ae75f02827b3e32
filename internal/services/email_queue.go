package services

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"inkpost/internal/logger"
)

var ErrQueueFull = errors.New("email queue is full")

type EmailJob struct {
	To      []string
	ReplyTo string
	Subject string
	Body    string
	IsHTML  bool
}

// EmailQueue is a bounded in-memory queue drained by background workers.
// Delivery is best effort: jobs still queued at shutdown are sent, jobs
// rejected by Enqueue are lost.
type EmailQueue struct {
	jobs   chan EmailJob
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewEmailQueue(size int) *EmailQueue {
	if size <= 0 {
		size = 100
	}
	return &EmailQueue{jobs: make(chan EmailJob, size)}
}

// Enqueue never blocks.
func (q *EmailQueue) Enqueue(job EmailJob) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueFull
	}
	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start launches n workers delivering through m.
func (q *EmailQueue) Start(n int, m Mailer) {
	for i := 0; i < n; i++ {
		q.wg.Add(1)
		go func(worker int) {
			defer q.wg.Done()
			for job := range q.jobs {
				if err := m.Send(job); err != nil {
					logger.Log.Error("Failed to send email",
						zap.Int("worker", worker),
						zap.Strings("to", job.To),
						zap.String("subject", job.Subject),
						zap.Error(err),
					)
					continue
				}
				logger.Log.Debug("Email sent", zap.Int("worker", worker), zap.String("subject", job.Subject))
			}
		}(i)
	}
}

// Close stops accepting jobs and waits for the workers to drain the queue.
func (q *EmailQueue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()
	q.wg.Wait()
}
