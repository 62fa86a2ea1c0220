package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sebuszqo/ExpenseTracker/internal/auth"
	"github.com/sebuszqo/ExpenseTracker/internal/config"
	database "github.com/sebuszqo/ExpenseTracker/internal/db"
	emailService "github.com/sebuszqo/ExpenseTracker/internal/email"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/application"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/infrastructure"
	"github.com/sebuszqo/ExpenseTracker/internal/expense/interfaces"
	"github.com/sebuszqo/ExpenseTracker/internal/httputil"
	"github.com/sebuszqo/ExpenseTracker/internal/logger"
	"github.com/sebuszqo/ExpenseTracker/internal/mailqueue"
	"github.com/sebuszqo/ExpenseTracker/internal/reference"
	"github.com/sebuszqo/ExpenseTracker/internal/server"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	appLog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Could not initialize logger: %v", err)
	}
	defer appLog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbService, err := database.NewDBService(ctx, cfg.DBConnectionString, appLog)
	if err != nil {
		appLog.Fatal("could not initialize database", zap.Error(err))
	}
	defer dbService.Close()

	if cfg.MigrateOnStart {
		if err := database.RunMigrations(dbService.DB); err != nil {
			appLog.Fatal("could not run migrations", zap.Error(err))
		}
		appLog.Info("database migrations applied")
	}

	transport, closeTransport, err := newMailTransport(cfg, appLog)
	if err != nil {
		appLog.Fatal("could not initialize mail transport", zap.Error(err))
	}
	defer closeTransport()

	renderer, err := emailService.NewRenderer()
	if err != nil {
		appLog.Fatal("could not load email templates", zap.Error(err))
	}
	newEmailService := emailService.NewEmailService(renderer, transport, cfg.MailWorkers, cfg.MailQueueSize, appLog)

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo, newEmailService, user.Config{
		RequireActivation: cfg.RequireActivation,
		ActivationTTL:     cfg.ActivationTTL,
		ActivationURL:     cfg.ActivationURL,
	}, appLog)
	userHandler := user.NewHandler(userService, httputil.RespondJSON, httputil.RespondError)

	jwtManager := auth.NewJWTManager(cfg.SessionSecret, cfg.SessionDuration)
	cookie := auth.CookieConfig{Name: cfg.SessionCookieName, Secure: cfg.CookieSecure}
	authService := auth.NewAuthService(userService, jwtManager, cookie, appLog)
	authHandler := auth.NewHandler(authService, cookie, cfg.SessionDuration, httputil.RespondJSON, httputil.RespondError)

	referenceRepo := reference.NewReferenceRepository(dbService.DB)
	referenceService, err := reference.NewReferenceService(ctx, referenceRepo, appLog)
	if err != nil {
		appLog.Fatal("could not load reference data", zap.Error(err))
	}
	referenceHandler := reference.NewHandler(referenceService, httputil.RespondJSON, httputil.RespondError)

	expenseRepo := infrastructure.NewExpenseRepository(dbService.DB)
	expenseService := application.NewExpenseService(expenseRepo, referenceService, appLog)
	expenseHandler := interfaces.NewExpenseHandler(expenseService, httputil.RespondJSON, httputil.RespondError)

	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)
	transactionService := application.NewTransactionService(transactionRepo, expenseService, referenceService, appLog)
	transactionHandler := interfaces.NewTransactionHandler(transactionService, httputil.RespondJSON, httputil.RespondError)

	srv := server.NewServer(server.Handlers{
		Auth:        authHandler,
		User:        userHandler,
		Expense:     expenseHandler,
		Transaction: transactionHandler,
		Reference:   referenceHandler,
	}, authService, dbService, appLog)

	scheduler, err := reference.StartRefreshScheduler(cfg.ReferenceRefreshSchedule, referenceService, appLog)
	if err != nil {
		appLog.Fatal("scheduler didn't start, stopping the app", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       time.Minute,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLog.Info("server starting", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			appLog.Error("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		appLog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLog.Error("server shutdown failed", zap.Error(err))
	}
	<-scheduler.Stop().Done()
	if err := newEmailService.Close(shutdownCtx); err != nil {
		appLog.Warn("pending emails were not sent before shutdown", zap.Error(err))
	}
	appLog.Info("server stopped")
}

// newMailTransport picks where rendered emails go. The returned func releases
// the transport's resources.
func newMailTransport(cfg *config.Config, log *zap.Logger) (emailService.Transport, func(), error) {
	switch cfg.MailBackend {
	case config.MailBackendAMQP:
		client, err := mailqueue.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, log)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { _ = client.Close() }, nil
	case config.MailBackendLog:
		return emailService.NewLogTransport(log), func() {}, nil
	default:
		return emailService.NewSMTPTransport(cfg.EmailAddress, cfg.EmailPassword, cfg.SMTPHost, cfg.SMTPPort), func() {}, nil
	}
}
