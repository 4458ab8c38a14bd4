// Package notify delivers outbound email.
package notify

import (
	"crypto/tls"
	"fmt"
	"log"

	mail "github.com/go-mail/mail/v2"
)

// Mailer sends one HTML message.
type Mailer interface {
	Send(to []string, subject, html string) error
}

type SMTPConfig struct {
	Host          string
	Port          int
	User          string
	Pass          string
	From          string
	SkipTLSVerify bool
}

// SMTPMailer sends through an SMTP relay with mandatory STARTTLS.
type SMTPMailer struct {
	cfg  SMTPConfig
	send func(*mail.Dialer, ...*mail.Message) error
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPMailer{
		cfg: cfg,
		send: func(d *mail.Dialer, m ...*mail.Message) error {
			return d.DialAndSend(m...)
		},
	}
}

func (s *SMTPMailer) message(to []string, subject, html string) *mail.Message {
	m := mail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)
	return m
}

func (s *SMTPMailer) Send(to []string, subject, html string) error {
	if len(to) == 0 {
		return nil
	}
	if s.cfg.Host == "" || s.cfg.From == "" {
		return fmt.Errorf("smtp not configured (SMTP_HOST/SMTP_FROM)")
	}

	d := mail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Pass)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName:         s.cfg.Host,
		InsecureSkipVerify: s.cfg.SkipTLSVerify,
	}
	return s.send(d, s.message(to, subject, html))
}

// LogMailer writes messages to the log instead of sending them. Used when no
// SMTP relay is configured.
type LogMailer struct{}

func (LogMailer) Send(to []string, subject, html string) error {
	log.Printf("[mail] to=%v subject=%q\n%s", to, subject, html)
	return nil
}
