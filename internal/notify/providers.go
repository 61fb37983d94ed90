package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/thanFreecss/celebrity-salon/internal/config"
)

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewSender picks the provider named by cfg.Provider. A provider missing
// its required settings falls back to logging.
func NewSender(cfg config.NotifyConfig) Sender {
	switch cfg.Provider {
	case "noop":
		return NoopSender{}
	case "fail":
		return FailSender{}
	case "webhook":
		if cfg.WebhookURL == "" {
			return LogSender{}
		}
		return NewWebhookSender(cfg.WebhookURL, cfg.WebhookToken)
	case "smtp":
		if cfg.SMTPHost == "" || cfg.SMTPFrom == "" {
			return LogSender{}
		}
		return SMTPSender{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}
	default:
		return LogSender{}
	}
}

type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	logrus.WithFields(logrus.Fields{
		"kind":       msg.Kind,
		"booking_id": msg.BookingID,
		"to":         msg.To,
	}).Info(msg.Subject)
	return nil
}

type NoopSender struct{}

func (NoopSender) Send(ctx context.Context, msg Message) error { return nil }

type FailSender struct{}

func (FailSender) Send(ctx context.Context, msg Message) error {
	return errors.New("provider failure")
}

type WebhookSender struct {
	url    string
	token  string
	client *http.Client
}

func NewWebhookSender(url, token string) *WebhookSender {
	return &WebhookSender{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *WebhookSender) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook rejected notification: status %d", resp.StatusCode)
	}
	return nil
}

type SMTPSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func (s SMTPSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return errors.New("smtp: empty recipient")
	}
	port := s.Port
	if port == 0 {
		port = 587
	}
	addr := net.JoinHostPort(s.Host, strconv.Itoa(port))

	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Password, s.Host)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- smtp.SendMail(addr, auth, s.From, []string{msg.To}, s.render(msg))
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s SMTPSender) render(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}
