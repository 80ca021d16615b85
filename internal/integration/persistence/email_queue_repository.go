package persistence

import (
	"context"
	"time"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// emailQueueRepository implements the adapter.EmailQueueRepository interface.
type emailQueueRepository struct {
	store *Store
}

// NewEmailQueueRepository creates a new email queue repository instance.
func NewEmailQueueRepository(store *Store) adapter.EmailQueueRepository {
	return &emailQueueRepository{
		store: store,
	}
}

// Create adds a new email job to the queue.
func (r *emailQueueRepository) Create(ctx context.Context, job *entity.EmailJob) error {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	emailModel := model.EmailQueueModelFromEntity(job)
	result := db.Create(emailModel)
	if result.Error != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to create email job",
			result.Error,
		)
	}
	return nil
}

// GetPendingJobs retrieves jobs ready to be processed.
func (r *emailQueueRepository) GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error) {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	var models []model.EmailQueueModel

	result := db.
		Where("status = ?", entity.EmailStatusPending).
		Where("scheduled_at <= ?", time.Now().UTC()).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&models)

	if result.Error != nil {
		return nil, classify(result.Error)
	}

	jobs := make([]*entity.EmailJob, len(models))
	for i, m := range models {
		jobs[i] = m.ToEntity()
	}

	return jobs, nil
}

// Update saves changes to an email job.
func (r *emailQueueRepository) Update(ctx context.Context, job *entity.EmailJob) error {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	emailModel := model.EmailQueueModelFromEntity(job)
	result := db.Save(emailModel)
	if result.Error != nil {
		return classify(result.Error)
	}
	return nil
}

// DeleteOldSentJobs removes sent jobs older than the specified duration.
func (r *emailQueueRepository) DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error) {
	db, cancel := r.store.Conn(ctx)
	defer cancel()

	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)

	result := db.
		Where("status = ?", entity.EmailStatusSent).
		Where("processed_at < ?", cutoff).
		Delete(&model.EmailQueueModel{})

	if result.Error != nil {
		return 0, classify(result.Error)
	}

	return result.RowsAffected, nil
}
