package services

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/recapd/recapd-backend/internal/apperr"
	"github.com/recapd/recapd-backend/internal/config"
	"github.com/recapd/recapd-backend/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	summarizerSystemPrompt = "You are an expert at summarizing meeting notes, transcripts, and documents. Provide clear, structured summaries that are easy to understand and actionable."
	fallbackSummary        = "No summary generated"
	defaultSummaryTitle    = "Untitled Summary"
)

// CompletionClient is the subset of the OpenAI-compatible client the
// summarizer uses.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewCompletionClient builds a chat completion client against the configured
// OpenAI-compatible endpoint (Groq by default).
func NewCompletionClient(cfg config.GroqConfig) CompletionClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return openai.NewClientWithConfig(clientCfg)
}

// SummarizerService turns raw transcript text into a stored summary via an
// external completion API. Single blocking call, no retry, no streaming.
type SummarizerService struct {
	client    CompletionClient
	cfg       config.GroqConfig
	summaries *SummaryService
	logger    *logrus.Logger
}

func NewSummarizerService(client CompletionClient, cfg config.GroqConfig, summaries *SummaryService, logger *logrus.Logger) *SummarizerService {
	return &SummarizerService{
		client:    client,
		cfg:       cfg,
		summaries: summaries,
		logger:    logger,
	}
}

// Configured reports whether an API key is available.
func (s *SummarizerService) Configured() bool {
	return s.cfg.APIKey != ""
}

// Summarize generates a summary for text, persists it and returns the stored
// record. Title defaults to "Untitled Summary" when absent.
func (s *SummarizerService) Summarize(ctx context.Context, text, customInstruction, title string) (*models.Summary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.New(apperr.KindBadRequest, "Text content is required")
	}

	if !s.Configured() {
		return nil, apperr.New(apperr.KindUnauthorized, "Invalid or missing Groq API key. Please check your configuration.")
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: summarizerSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(text, customInstruction),
			},
		},
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		s.logger.WithError(err).Error("Summarization request failed")
		return nil, s.classifyCompletionError(err)
	}

	generated := fallbackSummary
	if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != "" {
		generated = resp.Choices[0].Message.Content
	}

	if title == "" {
		title = defaultSummaryTitle
	}

	var instruction *string
	if strings.TrimSpace(customInstruction) != "" {
		instruction = &customInstruction
	}

	id, err := s.summaries.Create(ctx, CreateSummaryInput{
		Title:             title,
		OriginalText:      text,
		CustomInstruction: instruction,
		GeneratedSummary:  generated,
		EditedSummary:     generated,
	})
	if err != nil {
		return nil, err
	}

	return s.summaries.Get(ctx, id)
}

// buildPrompt assembles the fixed preamble, the optional custom-instruction
// clause and the verbatim input text.
func buildPrompt(text, customInstruction string) string {
	var b strings.Builder
	b.WriteString("Please provide a comprehensive summary of the following text")

	if strings.TrimSpace(customInstruction) != "" {
		b.WriteString("\n\nCustom Instructions: ")
		b.WriteString(customInstruction)
	}

	b.WriteString("\n\nText to summarize:\n")
	b.WriteString(text)

	return b.String()
}

// classifyCompletionError maps the client's structured error to a kind.
// Credential failures come back as HTTP 401/403 from the API.
func (s *SummarizerService) classifyCompletionError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 401, 403:
			return apperr.Wrap(apperr.KindUnauthorized, "Invalid or missing Groq API key. Please check your configuration.", err)
		}
	}
	return apperr.Wrap(apperr.KindUpstream, "Failed to generate summary", err)
}
