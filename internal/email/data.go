package emailService

import (
	"fmt"
	"time"
)

const (
	subjectActivation  = "Activate your Expense Tracker account"
	templateActivation = "activation.html"
)

type EmailData interface {
	TemplateFileName() string
	Subject() string
	TemplateData() map[string]interface{}
}

type EmailSender interface {
	QueueEmail(to string, data EmailData)
}

type ActivationEmailData struct {
	UserName       string
	ActivationLink string
	ValidFor       time.Duration
}

func (a ActivationEmailData) TemplateFileName() string {
	return templateActivation
}

func (a ActivationEmailData) Subject() string {
	return subjectActivation
}

func (a ActivationEmailData) TemplateData() map[string]interface{} {
	return map[string]interface{}{
		"UserName":       a.UserName,
		"ActivationLink": a.ActivationLink,
		"ExpiresIn":      formatValidity(a.ValidFor),
	}
}

// formatValidity renders a duration in the largest whole unit that fits it,
// e.g. "24 hours" or "2 days".
func formatValidity(d time.Duration) string {
	day := 24 * time.Hour
	switch {
	case d <= 0:
		return "a limited time"
	case d >= day && d%day == 0 && d != day:
		return plural(int64(d/day), "day")
	case d%time.Hour == 0:
		return plural(int64(d/time.Hour), "hour")
	default:
		return plural(int64((d+time.Minute-1)/time.Minute), "minute")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
