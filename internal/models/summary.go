package models

import "time"

// Summary is a stored transcript with its generated and edited summaries.
// original_text and generated_summary are immutable after insert.
type Summary struct {
	ID                int       `db:"id" json:"id"`
	Title             string    `db:"title" json:"title"`
	OriginalText      string    `db:"original_text" json:"originalText"`
	CustomInstruction *string   `db:"custom_instruction" json:"customInstruction,omitempty"`
	GeneratedSummary  string    `db:"generated_summary" json:"generatedSummary"`
	EditedSummary     string    `db:"edited_summary" json:"editedSummary"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`
}

// Email log statuses. Only successful sends are recorded.
const (
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

// EmailLog records a successful share. SummaryID is a soft reference and
// may point at a summary that has since been deleted.
type EmailLog struct {
	ID         int       `db:"id" json:"id"`
	SummaryID  *int      `db:"summary_id" json:"summaryId,omitempty"`
	Recipients string    `db:"recipients" json:"recipients"`
	Subject    string    `db:"subject" json:"subject"`
	SentAt     time.Time `db:"sent_at" json:"sentAt"`
	Status     string    `db:"status" json:"status"`
}
