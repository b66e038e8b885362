package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventcatalog/internal/domain"
	"eventcatalog/pkg/logattr"
)

// EventNotifier mails a notice when an event enters or leaves the public catalog. It is
// an ordinary domain event subscriber; a failed send is logged by the publisher and does
// not affect the command that caused it.
type EventNotifier struct {
	mailer    domain.Mailer
	renderer  domain.EmailTemplateRenderer
	recipient string
	logger    *slog.Logger
}

// NewEventNotifier returns a notifier sending every notice to recipient.
func NewEventNotifier(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, recipient string, logger *slog.Logger) *EventNotifier {
	return &EventNotifier{
		mailer:    mailer,
		renderer:  renderer,
		recipient: recipient,
		logger:    logger.With(logattr.Component("services.EventNotifier")),
	}
}

// Register subscribes the notifier to publication and cancellation events.
func (n *EventNotifier) Register(publisher domain.DomainEventPublisher) {
	publisher.Subscribe(domain.EventPublished, n.HandlePublished)
	publisher.Subscribe(domain.EventCancelled, n.HandleCancelled)
}

// HandlePublished sends the "event_published" notice.
func (n *EventNotifier) HandlePublished(ctx context.Context, evt domain.DomainEvent) error {
	payload, ok := evt.Payload.(domain.EventPublishedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", evt.Payload, evt.Type)
	}
	return n.send(ctx, domain.TemplateEventPublished, &domain.EventNoticeEmailData{
		EventID:     payload.EventID.String(),
		EventName:   payload.EventName,
		OrganizerID: payload.OrganizerID.String(),
	})
}

// HandleCancelled sends the "event_cancelled" notice.
func (n *EventNotifier) HandleCancelled(ctx context.Context, evt domain.DomainEvent) error {
	payload, ok := evt.Payload.(domain.EventCancelledPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", evt.Payload, evt.Type)
	}
	return n.send(ctx, domain.TemplateEventCancelled, &domain.EventNoticeEmailData{
		EventID:     payload.EventID.String(),
		EventName:   payload.EventName,
		OrganizerID: payload.OrganizerID.String(),
		Reason:      payload.Reason,
	})
}

func (n *EventNotifier) send(ctx context.Context, template string, data *domain.EventNoticeEmailData) error {
	subject, htmlBody, textBody, err := n.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", template, err)
	}
	if err := n.mailer.Send(ctx, n.recipient, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", template, err)
	}
	n.logger.InfoContext(ctx, "event notice sent",
		slog.String("template", template),
		logattr.EventID(data.EventID),
		logattr.Recipient(n.recipient))
	return nil
}
