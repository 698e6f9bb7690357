package events

import (
	"context"
	"sync"

	"eduspace/infras/otel"
	"eduspace/shared/constant"

	"github.com/rs/zerolog/log"
)

// Publisher is the write-side capability handed to domain services. They can
// emit events but never observe subscribers, so a slow or failing dispatcher
// cannot affect the transactional result.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// Handler consumes a single event. Handlers run on their own goroutine per
// event; panics are recovered and logged.
type Handler func(ctx context.Context, event Event)

// Bus is an in-process publish/subscribe fan-out. There is no replay:
// subscribers registered after an event was published never see it, and
// late-joining observers must re-fetch state explicitly.
type Bus interface {
	Publisher
	Subscribe(name string, handler Handler)
}

type busImpl struct {
	mu       sync.RWMutex
	otel     otel.Otel
	handlers map[string]Handler
}

func NewBus(otel otel.Otel) Bus {
	return &busImpl{
		otel:     otel,
		handlers: map[string]Handler{},
	}
}

func (b *busImpl) Subscribe(name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[name] = handler

	log.Info().Str("subscriber", name).Msg("Event subscriber registered")
}

func (b *busImpl) Publish(ctx context.Context, event Event) {
	_, scope := b.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()

	scope.SetAttribute("event.type", event.Type)

	b.mu.RLock()
	defer b.mu.RUnlock()

	for name, handler := range b.handlers {
		// detached from the request lifecycle: the HTTP response must not
		// wait on, or fail because of, any subscriber
		go dispatch(context.WithoutCancel(ctx), name, handler, event)
	}
}

func dispatch(ctx context.Context, name string, handler Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("subscriber", name).
				Str("event", event.Type).
				Any("panic", r).
				Msg("Event subscriber panicked")
		}
	}()

	handler(ctx, event)
}
