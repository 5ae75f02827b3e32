package services

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.uber.org/zap"

	"inkpost/internal/logger"
	"inkpost/internal/models"
	"inkpost/internal/utils/helpers"
)

var ErrContactDisabled = errors.New("contact form is not configured")

const (
	maxContactName    = 100
	maxContactMessage = 5000
)

// ContactService relays visitor messages to the blog owner via the email
// queue.
type ContactService struct {
	queue *EmailQueue
	to    string
	now   func() time.Time
}

func NewContactService(queue *EmailQueue, to string) *ContactService {
	return &ContactService{queue: queue, to: strings.TrimSpace(to), now: time.Now}
}

func (s *ContactService) Submit(ctx context.Context, req models.ContactRequest) error {
	log := logger.WithCtx(ctx)

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, maxContactName)),
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
		validation.Field(&req.Message, notBlank, validation.RuneLength(0, maxContactMessage)),
	)
	if err != nil {
		log.Warn("Contact form validation failed", zap.Error(err))
		return asValidationError("contact request", err)
	}

	if s.to == "" {
		log.Error("Contact message dropped, no recipient configured")
		return ErrContactDisabled
	}

	job := EmailJob{
		To:      []string{s.to},
		ReplyTo: req.Email,
		Subject: "Blog contact: " + req.Name,
		Body:    helpers.BuildContactHTML(req.Name, req.Email, req.Message, s.now()),
		IsHTML:  true,
	}
	if err := s.queue.Enqueue(job); err != nil {
		log.Error("Failed to enqueue contact email", zap.Error(err))
		return err
	}

	log.Info("Contact message queued", zap.String("from", req.Email))
	return nil
}
