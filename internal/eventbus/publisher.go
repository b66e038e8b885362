package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"eventcatalog/internal/domain"
	"eventcatalog/pkg/logattr"
)

// DefaultHandlerTimeout bounds a single subscriber's run when no option overrides it.
const DefaultHandlerTimeout = 30 * time.Second

type PublisherOpts struct {
	handlerTimeout time.Duration
}

type PublisherOpt func(opts *PublisherOpts)

// WithHandlerTimeout sets how long each subscriber may run per event. Non-positive values
// keep the default.
func WithHandlerTimeout(timeout time.Duration) PublisherOpt {
	return func(opts *PublisherOpts) {
		if timeout > 0 {
			opts.handlerTimeout = timeout
		}
	}
}

// Publisher is an in-process domain.DomainEventPublisher. Subscribers of one event run
// concurrently and Publish returns once all of them finished, failed or timed out.
// Subscriber failures are logged and never reach the publishing side.
type Publisher struct {
	logger *slog.Logger
	opts   PublisherOpts

	mu       sync.RWMutex
	handlers map[domain.DomainEventType][]domain.DomainEventHandler
}

var _ domain.DomainEventPublisher = (*Publisher)(nil)

func NewPublisher(logger *slog.Logger, customOpts ...PublisherOpt) *Publisher {
	opts := PublisherOpts{handlerTimeout: DefaultHandlerTimeout}
	for _, customOpt := range customOpts {
		customOpt(&opts)
	}
	return &Publisher{
		logger:   logger.With(logattr.Component("eventbus.Publisher")),
		opts:     opts,
		handlers: make(map[domain.DomainEventType][]domain.DomainEventHandler),
	}
}

// Subscribe registers handler for eventType. Handlers accumulate; registering the same
// function twice makes it run twice.
func (p *Publisher) Subscribe(eventType domain.DomainEventType, handler domain.DomainEventHandler) {
	if handler == nil {
		panic(fmt.Sprintf("eventbus: nil handler subscribed to %s", eventType))
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[eventType] = append(p.handlers[eventType], handler)
}

// Publish delivers evt to every subscriber of its type and waits for all of them.
func (p *Publisher) Publish(ctx context.Context, evt domain.DomainEvent) {
	p.mu.RLock()
	handlers := append([]domain.DomainEventHandler(nil), p.handlers[evt.Type]...)
	p.mu.RUnlock()

	if len(handlers) == 0 {
		p.logger.Debug("no subscribers for domain event",
			logattr.DomainEventType(string(evt.Type)),
			logattr.DomainEventID(evt.ID))
		return
	}

	var wg sync.WaitGroup
	for i, handler := range handlers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.handleWithTimeout(ctx, i, handler, evt)
		}()
	}
	wg.Wait()
}

// PublishAll publishes evts concurrently and waits for every fan-out to finish. Order
// across evts is not preserved; callers that need causal order publish one at a time.
func (p *Publisher) PublishAll(ctx context.Context, evts []domain.DomainEvent) {
	var wg sync.WaitGroup
	for _, evt := range evts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Publish(ctx, evt)
		}()
	}
	wg.Wait()
}

func (p *Publisher) handleWithTimeout(ctx context.Context, index int, handler domain.DomainEventHandler, evt domain.DomainEvent) {
	ctxWithTimeout, cancelCtx := context.WithTimeout(ctx, p.opts.handlerTimeout)
	defer cancelCtx()

	// Buffered so a handler finishing after the deadline does not block forever.
	done := make(chan error, 1)
	go func() {
		done <- runHandler(ctxWithTimeout, handler, evt)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctxWithTimeout.Done():
		err = ctxWithTimeout.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("handler timed out after %s: %w", p.opts.handlerTimeout, err)
		}
	}
	if err != nil {
		p.logger.Error("domain event handler failed",
			logattr.DomainEventType(string(evt.Type)),
			logattr.DomainEventID(evt.ID),
			logattr.AggregateID(evt.AggregateID.String()),
			logattr.Subscriber(index),
			logattr.Error(err.Error()))
	}
}

func runHandler(ctx context.Context, handler domain.DomainEventHandler, evt domain.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler(ctx, evt)
}
