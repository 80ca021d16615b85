package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
)

type fakeQueue struct {
	jobs         map[uuid.UUID]*entity.EmailJob
	deletedAfter int
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{jobs: map[uuid.UUID]*entity.EmailJob{}}
}

func (q *fakeQueue) Create(_ context.Context, job *entity.EmailJob) error {
	q.jobs[job.ID] = job
	return nil
}

func (q *fakeQueue) GetPendingJobs(_ context.Context, limit int) ([]*entity.EmailJob, error) {
	var out []*entity.EmailJob
	for _, j := range q.jobs {
		if j.Status == entity.EmailStatusPending && len(out) < limit {
			out = append(out, j)
		}
	}
	return out, nil
}

func (q *fakeQueue) Update(_ context.Context, job *entity.EmailJob) error {
	q.jobs[job.ID] = job
	return nil
}

func (q *fakeQueue) DeleteOldSentJobs(_ context.Context, olderThanDays int) (int64, error) {
	q.deletedAfter = olderThanDays
	return 0, nil
}

func newTestWorker(t *testing.T, queue adapter.EmailQueueRepository, sender adapter.EmailSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return NewWorker(queue, sender, renderer, DefaultWorkerConfig())
}

func TestWorkerSendsQueuedPasswordReset(t *testing.T) {
	queue := newFakeQueue()
	sender := NewMockEmailSender()
	service := NewService(queue)

	err := service.QueuePasswordResetEmail(context.Background(), adapter.QueuePasswordResetInput{
		UserEmail: "ana@example.com",
		UserName:  "Ana",
		ResetURL:  "http://localhost:3000/reset-password?token=abc",
		ExpiresIn: "1 hour",
	})
	if err != nil {
		t.Fatalf("QueuePasswordResetEmail() error = %v", err)
	}

	newTestWorker(t, queue, sender).ProcessNow(context.Background())

	if len(sender.SentEmails) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sender.SentEmails))
	}
	if sender.SentEmails[0].To != "ana@example.com" {
		t.Errorf("To = %q", sender.SentEmails[0].To)
	}
	for _, job := range queue.jobs {
		if job.Status != entity.EmailStatusSent || job.ResendID != "mock-1" {
			t.Errorf("job status = %s resend id = %q", job.Status, job.ResendID)
		}
	}
}

func TestWorkerFailureHandling(t *testing.T) {
	tests := []struct {
		name       string
		permanent  bool
		wantStatus entity.EmailStatus
	}{
		{name: "temporary failure is retried", permanent: false, wantStatus: entity.EmailStatusPending},
		{name: "permanent failure stops", permanent: true, wantStatus: entity.EmailStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := newFakeQueue()
			sender := NewMockEmailSender()
			sender.SetFailure(errors.New("boom"), tt.permanent)

			job := entity.NewEmailJob(entity.TemplateWelcome, "bob@example.com", "Bob", welcomeSubject, map[string]interface{}{
				"user_name": "Bob",
				"app_url":   "http://localhost:3000",
			})
			_ = queue.Create(context.Background(), job)

			newTestWorker(t, queue, sender).ProcessNow(context.Background())

			if job.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", job.Status, tt.wantStatus)
			}
			if job.Attempts != 1 {
				t.Errorf("attempts = %d, want 1", job.Attempts)
			}
		})
	}
}

type uncodedFailureSender struct{ calls int }

func (s *uncodedFailureSender) Send(context.Context, adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	s.calls++
	return nil, errors.New("connection reset by peer")
}

func TestWorkerUncodedSendFailureIsRetried(t *testing.T) {
	queue := newFakeQueue()
	sender := &uncodedFailureSender{}
	job := entity.NewEmailJob(entity.TemplateWelcome, "dee@example.com", "Dee", welcomeSubject, map[string]interface{}{
		"user_name": "Dee",
		"app_url":   "http://localhost:3000",
	})
	_ = queue.Create(context.Background(), job)

	newTestWorker(t, queue, sender).ProcessNow(context.Background())

	if sender.calls != 1 {
		t.Fatalf("send calls = %d, want 1", sender.calls)
	}
	if job.Status != entity.EmailStatusPending {
		t.Errorf("status = %s, want pending", job.Status)
	}
	if !strings.Contains(job.LastError, "failed to send email") || !strings.Contains(job.LastError, "connection reset by peer") {
		t.Errorf("last error = %q", job.LastError)
	}
}

func TestAsSendError(t *testing.T) {
	coded := domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "rejected", nil)
	if got := asSendError(fmt.Errorf("send: %w", coded)); got != coded {
		t.Errorf("asSendError() = %v, want the coded error", got)
	}

	got := asSendError(errors.New("timeout"))
	if got.Code != domainerror.ErrCodeEmailSendFailed || !errors.Is(got, domainerror.ErrEmailSendFailed) {
		t.Errorf("asSendError() = %+v", got)
	}
}

func TestWorkerUnknownTemplateFailsPermanently(t *testing.T) {
	queue := newFakeQueue()
	sender := NewMockEmailSender()
	job := entity.NewEmailJob("monthly_digest", "c@example.com", "C", "Hi", nil)
	_ = queue.Create(context.Background(), job)

	newTestWorker(t, queue, sender).ProcessNow(context.Background())

	if job.Status != entity.EmailStatusFailed {
		t.Errorf("status = %s, want failed", job.Status)
	}
	if len(sender.SentEmails) != 0 {
		t.Error("no email should be sent")
	}
}

func TestCleanupUsesRetention(t *testing.T) {
	queue := newFakeQueue()
	w := newTestWorker(t, queue, NewMockEmailSender())

	w.cleanupSentJobs(context.Background())

	if queue.deletedAfter != 30 {
		t.Errorf("retention days = %d, want 30", queue.deletedAfter)
	}
}
