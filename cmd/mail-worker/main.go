package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sebuszqo/ExpenseTracker/internal/config"
	emailService "github.com/sebuszqo/ExpenseTracker/internal/email"
	"github.com/sebuszqo/ExpenseTracker/internal/logger"
	"github.com/sebuszqo/ExpenseTracker/internal/mailqueue"
	"go.uber.org/zap"
)

// mail-worker delivers the emails the API publishes when MAIL_BACKEND=amqp.
func main() {
	cfg := config.Load()
	if err := cfg.ValidateMailWorker(); err != nil {
		log.Fatalf("Missing configuration, update to start mail worker: %v", err)
	}

	appLog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Could not initialize logger: %v", err)
	}
	defer appLog.Sync()
	appLog = appLog.With(zap.String("service", "mail-worker"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := mailqueue.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, appLog)
	if err != nil {
		appLog.Fatal("could not connect to AMQP", zap.Error(err))
	}
	defer client.Close()

	smtpTransport := emailService.NewSMTPTransport(cfg.EmailAddress, cfg.EmailPassword, cfg.SMTPHost, cfg.SMTPPort)

	err = client.ConsumeMail(ctx, func(ctx context.Context, msg *mailqueue.MailMessage) error {
		return smtpTransport.Send(ctx, msg.To, msg.Subject, msg.Body)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		appLog.Error("mail consumer stopped", zap.Error(err))
		return
	}
	appLog.Info("mail worker stopped")
}
