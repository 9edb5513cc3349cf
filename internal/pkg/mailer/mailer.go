package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/edupro/talentdesk/internal/app/models"
)

// Config holds transactional e-mail settings
type Config struct {
	APIKey    string
	FromName  string
	FromEmail string
}

// Message is a rendered e-mail ready to send
type Message struct {
	ToName  string
	ToEmail string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers e-mail messages
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SendGridSender delivers mail through the SendGrid v3 API
type SendGridSender struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

// NewSendGridSender creates a SendGrid backed sender
func NewSendGridSender(cfg Config) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(cfg.APIKey),
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromEmail),
	}
}

// Send delivers one message, returning an error on any non-2xx response
func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	to := sgmail.NewEmail(msg.ToName, msg.ToEmail)
	m := sgmail.NewSingleEmail(s.from, msg.Subject, to, msg.Text, msg.HTML)
	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// BuildMessage renders a notification record into a sendable message
func BuildMessage(n models.Notification) (Message, error) {
	html, text, err := renderTemplate(n.Template, n.Payload)
	if err != nil {
		return Message{}, err
	}
	return Message{
		ToName:  n.RecipientName,
		ToEmail: n.Recipient,
		Subject: n.Subject,
		HTML:    html,
		Text:    text,
	}, nil
}
