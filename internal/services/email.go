package services

import (
	"fmt"
	"net/smtp"

	"inkpost/internal/config"
	"inkpost/internal/utils"
)

// Mailer delivers a single message.
type Mailer interface {
	Send(job EmailJob) error
}

type EmailService struct {
	auth smtp.Auth
	from string
	host string
	port string
}

func NewEmailService(cfg *config.Config) *EmailService {
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	return &EmailService{
		auth: auth,
		from: cfg.SMTPUser,
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
	}
}

func (s *EmailService) Send(job EmailJob) error {
	if s.host == "" {
		return fmt.Errorf("send email: SMTP_HOST is not configured")
	}
	msg := utils.BuildMessage(s.from, job.To, job.ReplyTo, job.Subject, job.Body, job.IsHTML)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, s.auth, s.from, job.To, msg); err != nil {
		return fmt.Errorf("send email via %s: %w", addr, err)
	}
	return nil
}
