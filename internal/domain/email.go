package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// Email template names.
const (
	TemplateEventPublished = "event_published"
	TemplateEventCancelled = "event_cancelled"
)

// EventNoticeEmailData holds data for the publication and cancellation notices.
type EventNoticeEmailData struct {
	EventID     string
	EventName   string
	OrganizerID string
	Reason      string // cancellation only
}
