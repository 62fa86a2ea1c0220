package emailService

import (
	"context"
	"fmt"
	"net"
	"net/smtp"

	"go.uber.org/zap"
)

// Transport delivers an already rendered message.
type Transport interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SMTPTransport struct {
	from     string
	password string
	host     string
	port     string
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPTransport(from, password, host, port string) *SMTPTransport {
	return &SMTPTransport{
		from:     from,
		password: password,
		host:     host,
		port:     port,
		sendMail: smtp.SendMail,
	}
}

func (t *SMTPTransport) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", t.from, t.password, t.host)
	err := t.sendMail(net.JoinHostPort(t.host, t.port), auth, t.from, []string{to}, buildMessage(t.from, to, subject, body))
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	return []byte("From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\";\r\n\r\n" +
		body)
}

// LogTransport writes messages to the log instead of sending them.
type LogTransport struct {
	log *zap.Logger
}

func NewLogTransport(log *zap.Logger) *LogTransport {
	return &LogTransport{log: log.With(zap.String("component", "log_transport"))}
}

func (t *LogTransport) Send(_ context.Context, to, subject, body string) error {
	t.log.Info("email",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
