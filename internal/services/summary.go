package services

import (
	"context"
	"strings"

	"github.com/recapd/recapd-backend/internal/apperr"
	"github.com/recapd/recapd-backend/internal/models"
	"github.com/recapd/recapd-backend/internal/repository"
	"github.com/sirupsen/logrus"
)

// SummaryService provides CRUD operations over stored summaries.
type SummaryService struct {
	summaries repository.SummaryRepository
	logger    *logrus.Logger
}

func NewSummaryService(summaries repository.SummaryRepository, logger *logrus.Logger) *SummaryService {
	return &SummaryService{
		summaries: summaries,
		logger:    logger,
	}
}

// CreateSummaryInput carries the fields for a new summary record.
// EditedSummary may be empty, in which case it defaults to GeneratedSummary.
type CreateSummaryInput struct {
	Title             string
	OriginalText      string
	CustomInstruction *string
	GeneratedSummary  string
	EditedSummary     string
}

// List returns all summaries, newest first. The result set is unbounded.
func (s *SummaryService) List(ctx context.Context) ([]*models.Summary, error) {
	summaries, err := s.summaries.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to fetch summaries")
		return nil, apperr.Wrap(apperr.KindStorage, "Failed to fetch summaries", err)
	}
	return summaries, nil
}

// Get returns the summary with the given id.
func (s *SummaryService) Get(ctx context.Context, id int) (*models.Summary, error) {
	summary, err := s.summaries.Get(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("id", id).Error("Failed to fetch summary")
		return nil, apperr.Wrap(apperr.KindStorage, "Failed to fetch summary", err)
	}
	if summary == nil {
		return nil, apperr.New(apperr.KindNotFound, "Summary not found")
	}
	return summary, nil
}

// Create stores a new summary and returns its id.
func (s *SummaryService) Create(ctx context.Context, in CreateSummaryInput) (int, error) {
	if in.Title == "" || in.OriginalText == "" || in.GeneratedSummary == "" {
		return 0, apperr.New(apperr.KindBadRequest, "Title, original text, and generated summary are required")
	}

	edited := in.EditedSummary
	if edited == "" {
		edited = in.GeneratedSummary
	}

	summary := &models.Summary{
		Title:             in.Title,
		OriginalText:      in.OriginalText,
		CustomInstruction: in.CustomInstruction,
		GeneratedSummary:  in.GeneratedSummary,
		EditedSummary:     edited,
	}

	id, err := s.summaries.Create(ctx, summary)
	if err != nil {
		s.logger.WithError(err).Error("Failed to save summary")
		return 0, apperr.Wrap(apperr.KindStorage, "Failed to save summary", err)
	}
	return id, nil
}

// Update changes the title and/or edited summary of an existing record.
// A nil pointer means "leave the field untouched"; a provided empty value
// is rejected so the edited summary can never become empty.
func (s *SummaryService) Update(ctx context.Context, id int, title, editedSummary *string) error {
	if title == nil && editedSummary == nil {
		return apperr.New(apperr.KindBadRequest, "At least one field to update is required")
	}

	updates := make(map[string]interface{})
	if title != nil {
		if strings.TrimSpace(*title) == "" {
			return apperr.New(apperr.KindBadRequest, "Title cannot be empty")
		}
		updates["title"] = *title
	}
	if editedSummary != nil {
		if strings.TrimSpace(*editedSummary) == "" {
			return apperr.New(apperr.KindBadRequest, "Edited summary cannot be empty")
		}
		updates["edited_summary"] = *editedSummary
	}

	rows, err := s.summaries.Update(ctx, id, updates)
	if err != nil {
		s.logger.WithError(err).WithField("id", id).Error("Failed to update summary")
		return apperr.Wrap(apperr.KindStorage, "Failed to update summary", err)
	}
	if rows == 0 {
		return apperr.New(apperr.KindNotFound, "Summary not found")
	}
	return nil
}

// Delete permanently removes a summary and its email logs.
func (s *SummaryService) Delete(ctx context.Context, id int) error {
	existing, err := s.summaries.Get(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("id", id).Error("Failed to fetch summary for delete")
		return apperr.Wrap(apperr.KindStorage, "Failed to delete summary", err)
	}
	if existing == nil {
		return apperr.New(apperr.KindNotFound, "Summary not found")
	}

	if err := s.summaries.DeleteWithLogs(ctx, id); err != nil {
		s.logger.WithError(err).WithField("id", id).Error("Failed to delete summary")
		return apperr.Wrap(apperr.KindStorage, "Failed to delete summary", err)
	}
	return nil
}
