package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/recapd/recapd-backend/internal/models"
	"github.com/recapd/recapd-backend/internal/repository"
)

// SummaryRepository implements repository.SummaryRepository using PostgreSQL
type SummaryRepository struct {
	db *sqlx.DB
}

// NewSummaryRepository creates a new PostgreSQL summary repository
func NewSummaryRepository(db *sqlx.DB) repository.SummaryRepository {
	return &SummaryRepository{db: db}
}

// List retrieves all summaries, newest first
func (r *SummaryRepository) List(ctx context.Context) ([]*models.Summary, error) {
	summaries := []*models.Summary{}
	query := `
		SELECT id, title, original_text, custom_instruction, generated_summary,
		       edited_summary, created_at, updated_at
		FROM summaries
		ORDER BY created_at DESC
	`

	if err := r.db.SelectContext(ctx, &summaries, query); err != nil {
		return nil, err
	}

	return summaries, nil
}

// Get retrieves a summary by ID
func (r *SummaryRepository) Get(ctx context.Context, id int) (*models.Summary, error) {
	var summary models.Summary
	query := `
		SELECT id, title, original_text, custom_instruction, generated_summary,
		       edited_summary, created_at, updated_at
		FROM summaries
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &summary, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &summary, nil
}

// Create inserts a new summary and returns its generated id
func (r *SummaryRepository) Create(ctx context.Context, summary *models.Summary) (int, error) {
	query := `
		INSERT INTO summaries (title, original_text, custom_instruction, generated_summary, edited_summary)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		summary.Title, summary.OriginalText, summary.CustomInstruction,
		summary.GeneratedSummary, summary.EditedSummary,
	).Scan(&summary.ID, &summary.CreatedAt, &summary.UpdatedAt)
	if err != nil {
		return 0, err
	}

	return summary.ID, nil
}

// Update applies the given column updates and refreshes updated_at.
// Returns the number of rows affected.
func (r *SummaryRepository) Update(ctx context.Context, id int, updates map[string]interface{}) (int64, error) {
	updates["updated_at"] = time.Now()

	// Build dynamic update query
	setClause := ""
	params := map[string]interface{}{"id": id}

	for key, value := range updates {
		if setClause != "" {
			setClause += ", "
		}
		setClause += key + " = :" + key
		params[key] = value
	}

	query := "UPDATE summaries SET " + setClause + " WHERE id = :id"

	result, err := r.db.NamedExecContext(ctx, query, params)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// DeleteWithLogs deletes a summary together with its email logs in one
// transaction.
func (r *SummaryRepository) DeleteWithLogs(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM email_logs WHERE summary_id = $1", id); err != nil {
		return fmt.Errorf("delete email logs: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM summaries WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete summary: %w", err)
	}

	return tx.Commit()
}
