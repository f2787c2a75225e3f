package services

import (
	"github.com/recapd/recapd-backend/internal/config"
	"github.com/recapd/recapd-backend/internal/repository"
	"github.com/sirupsen/logrus"
)

// Services holds all service instances
type Services struct {
	Summary    *SummaryService
	Summarizer *SummarizerService
	Share      *ShareService
}

// NewServices creates all service instances with real external clients.
func NewServices(
	cfg *config.Config,
	logger *logrus.Logger,
	summaryRepo repository.SummaryRepository,
	emailLogRepo repository.EmailLogRepository,
) *Services {
	summaryService := NewSummaryService(summaryRepo, logger)

	summarizer := NewSummarizerService(
		NewCompletionClient(cfg.Groq),
		cfg.Groq,
		summaryService,
		logger,
	)

	share := NewShareService(
		cfg.SMTP,
		NewMailDialer(cfg.SMTP),
		emailLogRepo,
		logger,
	)

	return &Services{
		Summary:    summaryService,
		Summarizer: summarizer,
		Share:      share,
	}
}
