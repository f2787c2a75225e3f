package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/recapd/recapd-backend/internal/models"
	"github.com/recapd/recapd-backend/internal/repository"
)

// EmailLogRepository handles email log data access
type EmailLogRepository struct {
	db *sqlx.DB
}

// NewEmailLogRepository creates a new email log repository
func NewEmailLogRepository(db *sqlx.DB) repository.EmailLogRepository {
	return &EmailLogRepository{db: db}
}

// Insert records a share attempt and returns its generated id
func (r *EmailLogRepository) Insert(ctx context.Context, entry *models.EmailLog) (int, error) {
	if entry.Status == "" {
		entry.Status = models.EmailStatusSent
	}

	query := `
		INSERT INTO email_logs (summary_id, recipients, subject, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, sent_at
	`

	err := r.db.QueryRowContext(ctx, query,
		entry.SummaryID, entry.Recipients, entry.Subject, entry.Status,
	).Scan(&entry.ID, &entry.SentAt)
	if err != nil {
		return 0, err
	}

	return entry.ID, nil
}

// ListBySummary lists log entries referencing a summary, newest first
func (r *EmailLogRepository) ListBySummary(ctx context.Context, summaryID int) ([]*models.EmailLog, error) {
	entries := []*models.EmailLog{}
	query := `
		SELECT id, summary_id, recipients, subject, sent_at, status
		FROM email_logs
		WHERE summary_id = $1
		ORDER BY sent_at DESC
	`

	if err := r.db.SelectContext(ctx, &entries, query, summaryID); err != nil {
		return nil, err
	}

	return entries, nil
}
