// Package email queues transactional emails and delivers them through Resend.
package email

import (
	"context"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

const (
	passwordResetSubject = "Reset your password - Expense Tracker"
	welcomeSubject       = "Welcome to Expense Tracker"
)

// Service handles email queueing operations.
type Service struct {
	queue adapter.EmailQueueRepository
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository) *Service {
	return &Service{
		queue: queue,
	}
}

// QueuePasswordResetEmail queues a password reset email.
func (s *Service) QueuePasswordResetEmail(ctx context.Context, input adapter.QueuePasswordResetInput) error {
	templateData := map[string]interface{}{
		"user_name":  input.UserName,
		"reset_url":  input.ResetURL,
		"expires_in": input.ExpiresIn,
	}

	return s.enqueue(ctx, entity.TemplatePasswordReset, input.UserEmail, input.UserName, passwordResetSubject, templateData)
}

// QueueWelcomeEmail queues the welcome email sent after registration.
func (s *Service) QueueWelcomeEmail(ctx context.Context, input adapter.QueueWelcomeInput) error {
	templateData := map[string]interface{}{
		"user_name": input.UserName,
		"app_url":   input.AppURL,
	}

	return s.enqueue(ctx, entity.TemplateWelcome, input.UserEmail, input.UserName, welcomeSubject, templateData)
}

func (s *Service) enqueue(
	ctx context.Context,
	templateType entity.EmailTemplateType,
	email, name, subject string,
	data map[string]interface{},
) error {
	job := entity.NewEmailJob(templateType, email, name, subject, data)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue "+string(templateType)+" email",
			err,
		)
	}

	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
