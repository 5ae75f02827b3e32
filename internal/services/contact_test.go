package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpost/internal/apperr"
	"inkpost/internal/models"
)

type recordingMailer struct {
	mu   sync.Mutex
	jobs []EmailJob
}

func (m *recordingMailer) Send(job EmailJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, job)
	return nil
}

func TestContactSubmit_QueuesEmail(t *testing.T) {
	queue := NewEmailQueue(4)
	svc := NewContactService(queue, "owner@example.com")

	err := svc.Submit(context.Background(), models.ContactRequest{
		Name:    "  Ada ",
		Email:   "ada@example.com",
		Message: "Hello <there>",
	})
	require.NoError(t, err)

	mailer := &recordingMailer{}
	queue.Start(1, mailer)
	queue.Close()

	require.Len(t, mailer.jobs, 1)
	job := mailer.jobs[0]
	assert.Equal(t, []string{"owner@example.com"}, job.To)
	assert.Equal(t, "ada@example.com", job.ReplyTo)
	assert.Equal(t, "Blog contact: Ada", job.Subject)
	assert.True(t, job.IsHTML)
	assert.Contains(t, job.Body, "Hello &lt;there&gt;")
}

func TestContactSubmit_Validation(t *testing.T) {
	svc := NewContactService(NewEmailQueue(1), "owner@example.com")

	err := svc.Submit(context.Background(), models.ContactRequest{Email: "nope", Message: "  "})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "email")
	assert.Contains(t, ve.Fields, "message")
}

func TestContactSubmit_NoRecipient(t *testing.T) {
	svc := NewContactService(NewEmailQueue(1), "")

	err := svc.Submit(context.Background(), models.ContactRequest{Name: "Ada", Email: "ada@example.com", Message: "hi"})
	assert.ErrorIs(t, err, ErrContactDisabled)
}

func TestContactSubmit_QueueFull(t *testing.T) {
	svc := NewContactService(NewEmailQueue(1), "owner@example.com")
	req := models.ContactRequest{Name: "Ada", Email: "ada@example.com", Message: "hi"}

	require.NoError(t, svc.Submit(context.Background(), req))
	assert.ErrorIs(t, svc.Submit(context.Background(), req), ErrQueueFull)
}

func TestEmailQueue_RejectsAfterClose(t *testing.T) {
	queue := NewEmailQueue(1)
	queue.Start(1, &recordingMailer{})
	queue.Close()
	queue.Close()

	assert.ErrorIs(t, queue.Enqueue(EmailJob{To: []string{"a@example.com"}}), ErrQueueFull)
}
