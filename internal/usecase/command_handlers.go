package usecase

import (
	"context"
	"log/slog"
	"time"

	"eventcatalog/internal/domain"
	"eventcatalog/pkg/logattr"
)

type HandlerOpt func(h *EventCommandHandlers)

// WithClock replaces time.Now as the source of "now" for validation and event stamps.
func WithClock(now func() time.Time) HandlerOpt {
	return func(h *EventCommandHandlers) {
		h.now = now
	}
}

// EventCommandHandlers runs the Event commands against the write repository. Each
// handler loads or creates the aggregate, applies one operation and saves it.
type EventCommandHandlers struct {
	repo           domain.EventCommandRepository
	logger         *slog.Logger
	now            func() time.Time
	contextTimeout time.Duration
}

func NewEventCommandHandlers(repo domain.EventCommandRepository, logger *slog.Logger, timeout time.Duration, opts ...HandlerOpt) *EventCommandHandlers {
	h := &EventCommandHandlers{
		repo:           repo,
		logger:         logger.With(logattr.Component("usecase.EventCommandHandlers")),
		now:            time.Now,
		contextTimeout: timeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handlers returns every command handler for NewCommandBus.
func (h *EventCommandHandlers) Handlers() CommandHandlers {
	return CommandHandlers{
		CreateEvent:  h.HandleCreateEvent,
		UpdateEvent:  h.HandleUpdateEvent,
		PublishEvent: h.HandlePublishEvent,
		CancelEvent:  h.HandleCancelEvent,
	}
}

func (h *EventCommandHandlers) HandleCreateEvent(ctx context.Context, cmd CreateEvent) CommandResult {
	ctx, cancel := context.WithTimeout(ctx, h.contextTimeout)
	defer cancel()

	details, err := cmd.details()
	if err != nil {
		return h.fail(ctx, cmd, err)
	}
	e, err := domain.CreateEvent(cmd.OrganizerID, details, h.now())
	if err != nil {
		return h.fail(ctx, cmd, err)
	}
	if err := h.repo.Save(ctx, e); err != nil {
		return h.fail(ctx, cmd, err)
	}
	h.logger.Info("event created",
		logattr.EventID(e.ID().String()),
		logattr.OrganizerID(e.OrganizerID().String()))
	return succeeded(CreateEventResult{EventID: e.ID().String()})
}

func (h *EventCommandHandlers) HandleUpdateEvent(ctx context.Context, cmd UpdateEvent) CommandResult {
	ctx, cancel := context.WithTimeout(ctx, h.contextTimeout)
	defer cancel()

	e, err := h.load(ctx, cmd.EventID, cmd.ActorID)
	if err != nil {
		return h.fail(ctx, cmd, err)
	}
	details, err := cmd.details()
	if err != nil {
		return h.fail(ctx, cmd, err)
	}
	changes, err := e.Update(details, h.now())
	if err != nil {
		return h.fail(ctx, cmd, err)
	}
	if err := h.repo.Save(ctx, e); err != nil {
		return h.fail(ctx, cmd, err)
	}
	if changes == nil {
		changes = []string{}
	}
	return succeeded(UpdateEventResult{EventID: e.ID().String(), Changes: changes})
}

func (h *EventCommandHandlers) HandlePublishEvent(ctx context.Context, cmd PublishEvent) CommandResult {
	ctx, cancel := context.WithTimeout(ctx, h.contextTimeout)
	defer cancel()

	e, err := h.load(ctx, cmd.EventID, cmd.ActorID)
	if err != nil {
		return h.fail(ctx, cmd, err)
	}
	// EventPublished is recorded by the aggregate only on an actual state change, and
	// Save delivers it to every subscriber.
	changed := e.Publish(h.now())
	if err := h.repo.Save(ctx, e); err != nil {
		return h.fail(ctx, cmd, err)
	}
	if changed {
		h.logger.Info("event published", logattr.EventID(e.ID().String()))
	}
	return succeeded(PublishEventResult{EventID: e.ID().String(), Published: changed})
}

func (h *EventCommandHandlers) HandleCancelEvent(ctx context.Context, cmd CancelEvent) CommandResult {
	ctx, cancel := context.WithTimeout(ctx, h.contextTimeout)
	defer cancel()

	e, err := h.load(ctx, cmd.EventID, cmd.ActorID)
	if err != nil {
		return h.fail(ctx, cmd, err)
	}
	changed := e.Cancel(cmd.Reason, h.now())
	if err := h.repo.Save(ctx, e); err != nil {
		return h.fail(ctx, cmd, err)
	}
	if changed {
		h.logger.Info("event cancelled", logattr.EventID(e.ID().String()))
	}
	return succeeded(CancelEventResult{EventID: e.ID().String(), Cancelled: changed})
}

func (h *EventCommandHandlers) load(ctx context.Context, id domain.EventID, actor domain.OrganizerID) (*domain.Event, error) {
	e, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor != "" && e.OrganizerID() != actor {
		return nil, domain.ErrForbidden
	}
	return e, nil
}

func (h *EventCommandHandlers) fail(ctx context.Context, cmd Command, err error) CommandResult {
	result, ok := failedFrom(err)
	if !ok {
		h.logger.ErrorContext(ctx, "command failed",
			logattr.Command(cmd.commandName()),
			logattr.Error(err.Error()))
		return result
	}
	h.logger.DebugContext(ctx, "command rejected",
		logattr.Command(cmd.commandName()),
		logattr.Error(result.Error))
	return result
}
