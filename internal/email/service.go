package emailService

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultWorkers   = 2
	defaultQueueSize = 100
	sendTimeout      = 30 * time.Second
)

type EmailTask struct {
	to   string
	data EmailData
}

// EmailService renders and sends queued emails on a fixed pool of workers.
// Delivery is best effort: failures are logged and never reach the caller.
type EmailService struct {
	renderer  *Renderer
	transport Transport
	log       *zap.Logger

	mu        sync.RWMutex
	closed    bool
	taskQueue chan EmailTask
	wg        sync.WaitGroup
}

func NewEmailService(renderer *Renderer, transport Transport, workers, queueSize int, log *zap.Logger) *EmailService {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	s := &EmailService{
		renderer:  renderer,
		transport: transport,
		log:       log.With(zap.String("component", "email_service")),
		taskQueue: make(chan EmailTask, queueSize),
	}

	s.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go s.worker()
	}
	return s
}

func (s *EmailService) worker() {
	defer s.wg.Done()
	for task := range s.taskQueue {
		if err := s.sendTemplatedEmail(task.to, task.data); err != nil {
			s.log.Error("error sending email",
				zap.String("to", task.to),
				zap.String("template", task.data.TemplateFileName()),
				zap.Error(err),
			)
		}
	}
}

// QueueEmail never blocks. When the queue is full or the service is closed
// the email is dropped and the drop is logged.
func (s *EmailService) QueueEmail(to string, data EmailData) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		s.log.Warn("email service closed, dropping email", zap.String("to", to))
		return
	}

	select {
	case s.taskQueue <- EmailTask{to: to, data: data}:
	default:
		s.log.Error("email queue full, dropping email", zap.String("to", to))
	}
}

func (s *EmailService) sendTemplatedEmail(to string, data EmailData) error {
	body, err := s.renderer.Render(data.TemplateFileName(), data.TemplateData())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	return s.transport.Send(ctx, to, data.Subject(), body)
}

// Close stops accepting emails and waits for queued ones to be sent, or for
// ctx to be done.
func (s *EmailService) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.taskQueue)
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
