package mailqueue

import (
	"encoding/json"
	"errors"
	"time"
)

// MailMessage is a fully rendered email waiting for delivery.
type MailMessage struct {
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMailMessage(to, subject, body string) *MailMessage {
	return &MailMessage{
		To:        to,
		Subject:   subject,
		Body:      body,
		Timestamp: time.Now(),
	}
}

func (m *MailMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MailMessageFromJSON(data []byte) (*MailMessage, error) {
	var msg MailMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.To == "" {
		return nil, errors.New("mail message has no recipient")
	}
	return &msg, nil
}
