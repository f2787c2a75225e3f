// Package repository defines the persistence contracts. Implementations
// live in subpackages (postgres).
package repository

import (
	"context"

	"github.com/recapd/recapd-backend/internal/models"
)

// SummaryRepository handles summary persistence.
// Get returns (nil, nil) when no row matches; callers decide whether that
// is an error.
type SummaryRepository interface {
	List(ctx context.Context) ([]*models.Summary, error)
	Get(ctx context.Context, id int) (*models.Summary, error)
	Create(ctx context.Context, summary *models.Summary) (int, error)
	Update(ctx context.Context, id int, updates map[string]interface{}) (int64, error)
	DeleteWithLogs(ctx context.Context, id int) error
}

// EmailLogRepository records share attempts.
type EmailLogRepository interface {
	Insert(ctx context.Context, entry *models.EmailLog) (int, error)
	ListBySummary(ctx context.Context, summaryID int) ([]*models.EmailLog, error)
}
