package services

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/textproto"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/recapd/recapd-backend/internal/apperr"
	"github.com/recapd/recapd-backend/internal/config"
	"github.com/recapd/recapd-backend/internal/models"
	"github.com/recapd/recapd-backend/internal/repository"
	"github.com/sirupsen/logrus"
	gomail "gopkg.in/gomail.v2"
)

const (
	defaultShareSubject = "Meeting Summary Shared"

	notConfiguredMessage = "Email service not configured. Please set up email credentials in your .env file."
	// SetupInstructions is the remediation hint returned alongside
	// NotConfigured failures.
	SetupInstructions = "Set EMAIL_USER and EMAIL_PASS in your .env file to enable email sharing."
)

// Same shape the web client validates against: local@domain.tld with no
// whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var shareBodyTemplate = template.Must(template.New("share").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">{{.Subject}}</h2>

  {{if .Message}}<p style="color: #666; margin-bottom: 20px;">{{.Message}}</p>{{end}}

  <div style="background-color: #f9f9f9; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="color: #444; margin-top: 0;">Summary</h3>
    <div style="white-space: pre-wrap; color: #333; line-height: 1.6;">
      {{.SummaryContent}}
    </div>
  </div>

  <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
  <p style="color: #999; font-size: 12px;">
    This summary was generated using AI Meeting Notes Summarizer.
  </p>
</div>
`))

// MailSender is the subset of *gomail.Dialer the share service uses.
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
	Dial() (gomail.SendCloser, error)
}

// NewMailDialer builds the SMTP dialer from configuration. No connection is
// made until a send or verify is attempted.
func NewMailDialer(cfg config.SMTPConfig) MailSender {
	return gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
}

// ShareService emails summary content to a list of recipients and audits
// successful sends.
type ShareService struct {
	cfg    config.SMTPConfig
	dialer MailSender
	logs   repository.EmailLogRepository
	logger *logrus.Logger
}

func NewShareService(cfg config.SMTPConfig, dialer MailSender, logs repository.EmailLogRepository, logger *logrus.Logger) *ShareService {
	return &ShareService{
		cfg:    cfg,
		dialer: dialer,
		logs:   logs,
		logger: logger,
	}
}

// ShareInput carries one share request. SummaryID is optional; when present
// a log row is written after a successful send.
type ShareInput struct {
	SummaryID      *int
	Recipients     []string
	Subject        string
	Message        string
	SummaryContent string
}

// ShareResult reports a completed send.
type ShareResult struct {
	MessageID  string
	Recipients []string
}

// Share validates the request, sends one email to all recipients and records
// the attempt. Failed sends are not logged.
func (s *ShareService) Share(ctx context.Context, in ShareInput) (*ShareResult, error) {
	if len(in.Recipients) == 0 {
		return nil, apperr.New(apperr.KindBadRequest, "At least one recipient is required")
	}
	if strings.TrimSpace(in.SummaryContent) == "" {
		return nil, apperr.New(apperr.KindBadRequest, "Summary content is required")
	}

	var invalid []string
	for _, addr := range in.Recipients {
		if !emailPattern.MatchString(addr) {
			invalid = append(invalid, addr)
		}
	}
	if len(invalid) > 0 {
		return nil, apperr.New(apperr.KindBadRequest, "Invalid email addresses").
			WithDetails(map[string]interface{}{"invalidEmails": invalid})
	}

	if !s.cfg.Configured() {
		return nil, apperr.New(apperr.KindNotConfigured, notConfiguredMessage)
	}

	subject := in.Subject
	if subject == "" {
		subject = defaultShareSubject
	}

	body, err := renderShareBody(subject, in.Message, in.SummaryContent)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "Failed to share summary", err)
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.New().String(), s.cfg.Host)

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.User)
	m.SetHeader("To", in.Recipients...)
	m.SetHeader("Subject", subject)
	m.SetHeader("Message-ID", messageID)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.WithError(err).Error("Email sharing failed")
		return nil, classifyMailError(err)
	}

	if in.SummaryID != nil {
		entry := &models.EmailLog{
			SummaryID:  in.SummaryID,
			Recipients: strings.Join(in.Recipients, ", "),
			Subject:    subject,
			Status:     models.EmailStatusSent,
		}
		if _, err := s.logs.Insert(ctx, entry); err != nil {
			s.logger.WithError(err).Error("Failed to record email log")
			return nil, apperr.Wrap(apperr.KindStorage, "Failed to record email log", err)
		}
	}

	return &ShareResult{
		MessageID:  messageID,
		Recipients: in.Recipients,
	}, nil
}

// TestConfiguration verifies SMTP credentials by dialing and authenticating
// without sending mail.
func (s *ShareService) TestConfiguration(ctx context.Context) error {
	if !s.cfg.Configured() {
		return apperr.New(apperr.KindNotConfigured, notConfiguredMessage)
	}

	sc, err := s.dialer.Dial()
	if err != nil {
		s.logger.WithError(err).Error("Email configuration test failed")
		return classifyMailError(err)
	}
	return sc.Close()
}

func renderShareBody(subject, message, summaryContent string) (string, error) {
	var b strings.Builder
	err := shareBodyTemplate.Execute(&b, struct {
		Subject        string
		Message        template.HTML
		SummaryContent template.HTML
	}{
		Subject: subject,
		// Both fields originate from this system and are treated as
		// trusted, matching the original rendering.
		Message:        template.HTML(message),
		SummaryContent: template.HTML(summaryContent),
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// classifyMailError maps transport errors to kinds. SMTP protocol failures
// surface as *textproto.Error with the server's reply code; everything at
// the socket level comes through as a net error.
func classifyMailError(err error) error {
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch protoErr.Code {
		case 530, 534, 535:
			return apperr.Wrap(apperr.KindAuthFailed, "Email authentication failed. Please check your email credentials.", err)
		}
		return apperr.Wrap(apperr.KindUpstream, "Failed to share summary", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return apperr.Wrap(apperr.KindConnectionFailed, "Failed to connect to email server. Please check your email configuration.", err)
	}

	return apperr.Wrap(apperr.KindUpstream, "Failed to share summary", err)
}
