// Package mail implements the outbound mail collaborator over plain SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/devfolio/portfolio-api/internal/api/metrics"
)

// Config captures SMTP connection settings. All four fields are required for
// delivery; an incomplete configuration fails every Send call rather than the
// process, since mail is not on the serving path.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

type SMTPMailer struct {
	cfg Config
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers a plain-text message. The context deadline is honoured only
// before dialing; an in-flight SMTP exchange is allowed to complete.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.cfg.Host == "" || m.cfg.Username == "" || m.cfg.Password == "" {
		return errors.New("smtp configuration is incomplete")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := strings.Join([]string{
		"From: " + m.cfg.Username,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	start := time.Now()
	err := smtp.SendMail(addr, auth, m.cfg.Username, []string{to}, []byte(msg))

	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.MailSendDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())

	if err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
