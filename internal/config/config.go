package config

import (
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	MailBackendSMTP = "smtp"
	MailBackendAMQP = "amqp"
	MailBackendLog  = "log"

	minSessionSecretLength = 32
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	DBConnectionString string
	MigrateOnStart     bool

	// Session cookie
	SessionSecret     string
	SessionDuration   time.Duration
	SessionCookieName string
	CookieSecure      bool

	// Account activation
	RequireActivation bool
	ActivationTTL     time.Duration
	ActivationURL     string

	// Mail
	MailBackend   string
	MailWorkers   int
	MailQueueSize int
	EmailAddress  string
	EmailPassword string
	SMTPHost      string
	SMTPPort      string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Reference data
	ReferenceRefreshSchedule string

	// Logging
	LogLevel  string
	LogFormat string
}

func defaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db_connection_string", "")
	v.SetDefault("migrate_on_start", true)

	v.SetDefault("session_secret", "")
	v.SetDefault("session_duration", "720h")
	v.SetDefault("session_cookie_name", "session")
	v.SetDefault("cookie_secure", false)

	v.SetDefault("require_activation", true)
	v.SetDefault("activation_ttl", "24h")
	v.SetDefault("activation_url", "http://localhost:8080/user/activate")

	v.SetDefault("mail_backend", MailBackendSMTP)
	v.SetDefault("mail_workers", 2)
	v.SetDefault("mail_queue_size", 100)
	v.SetDefault("email_address", "")
	v.SetDefault("email_password", "")
	v.SetDefault("smtp_host", "smtp.gmail.com")
	v.SetDefault("smtp_port", "587")

	v.SetDefault("amqp_url", "")
	v.SetDefault("amqp_exchange", "expense_tracker")
	v.SetDefault("amqp_queue", "mail")

	v.SetDefault("reference_refresh_schedule", "@every 10m")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

// Load reads the .env file when present and builds the configuration from
// environment variables, falling back to defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Port:               v.GetString("port"),
		DBConnectionString: v.GetString("db_connection_string"),
		MigrateOnStart:     v.GetBool("migrate_on_start"),

		SessionSecret:     v.GetString("session_secret"),
		SessionDuration:   v.GetDuration("session_duration"),
		SessionCookieName: v.GetString("session_cookie_name"),
		CookieSecure:      v.GetBool("cookie_secure"),

		RequireActivation: v.GetBool("require_activation"),
		ActivationTTL:     v.GetDuration("activation_ttl"),
		ActivationURL:     strings.TrimRight(v.GetString("activation_url"), "/"),

		MailBackend:   strings.ToLower(v.GetString("mail_backend")),
		MailWorkers:   v.GetInt("mail_workers"),
		MailQueueSize: v.GetInt("mail_queue_size"),
		EmailAddress:  v.GetString("email_address"),
		EmailPassword: v.GetString("email_password"),
		SMTPHost:      v.GetString("smtp_host"),
		SMTPPort:      v.GetString("smtp_port"),

		AMQPURL:      v.GetString("amqp_url"),
		AMQPExchange: v.GetString("amqp_exchange"),
		AMQPQueue:    v.GetString("amqp_queue"),

		ReferenceRefreshSchedule: v.GetString("reference_refresh_schedule"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBConnectionString == "" {
		errors = append(errors, "missing DB_CONNECTION_STRING")
	}

	if len(c.SessionSecret) < minSessionSecretLength {
		errors = append(errors, fmt.Sprintf("SESSION_SECRET must be at least %d characters", minSessionSecretLength))
	}
	if c.SessionDuration <= 0 {
		errors = append(errors, fmt.Sprintf("invalid session duration %v: must be positive", c.SessionDuration))
	}
	if c.SessionCookieName == "" {
		errors = append(errors, "session cookie name cannot be empty")
	}

	if c.ActivationTTL <= 0 {
		errors = append(errors, fmt.Sprintf("invalid activation ttl %v: must be positive", c.ActivationTTL))
	}
	if _, err := url.ParseRequestURI(c.ActivationURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid activation URL '%s': %v", c.ActivationURL, err))
	}

	switch c.MailBackend {
	case MailBackendSMTP:
		if c.EmailAddress == "" || c.EmailPassword == "" {
			errors = append(errors, "EMAIL_ADDRESS and EMAIL_PASSWORD are required for the smtp mail backend")
		}
	case MailBackendAMQP:
		if c.AMQPURL == "" {
			errors = append(errors, "AMQP_URL is required for the amqp mail backend")
		}
	case MailBackendLog:
	default:
		errors = append(errors, fmt.Sprintf("invalid mail backend '%s': must be one of [%s %s %s]",
			c.MailBackend, MailBackendSMTP, MailBackendAMQP, MailBackendLog))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.MailWorkers < 1 {
		errors = append(errors, fmt.Sprintf("invalid mail workers %d: must be at least 1", c.MailWorkers))
	}
	if c.MailQueueSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid mail queue size %d: must be at least 1", c.MailQueueSize))
	}

	if c.ReferenceRefreshSchedule == "" {
		errors = append(errors, "reference refresh schedule cannot be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// ValidateMailWorker checks only what the mail worker needs: the queue to
// consume and the SMTP account to deliver through.
func (c *Config) ValidateMailWorker() error {
	var errors []string

	if c.AMQPURL == "" {
		errors = append(errors, "AMQP_URL is required")
	}
	if c.AMQPExchange == "" || c.AMQPQueue == "" {
		errors = append(errors, "AMQP exchange and queue names cannot be empty")
	}
	if c.EmailAddress == "" || c.EmailPassword == "" {
		errors = append(errors, "EMAIL_ADDRESS and EMAIL_PASSWORD are required")
	}
	if c.SMTPHost == "" || c.SMTPPort == "" {
		errors = append(errors, "SMTP_HOST and SMTP_PORT are required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}
