package events

import (
	"context"

	"eduspace/config"
	"eduspace/infras/kafka"

	"github.com/rs/zerolog/log"
)

// KafkaMirror forwards bus events to a Kafka topic so external consumers
// (timetable dashboards, audit pipelines) can follow booking activity.
// Delivery is best-effort, same as every other subscriber.
type KafkaMirror struct {
	config *config.Config
	client kafka.Client
}

func NewKafkaMirror(cfg *config.Config, client kafka.Client, bus Bus) *KafkaMirror {
	mirror := &KafkaMirror{
		config: cfg,
		client: client,
	}

	if cfg.Events.Kafka.Enable {
		bus.Subscribe("kafka-mirror", mirror.Handle)
	}

	return mirror
}

func (m *KafkaMirror) Handle(ctx context.Context, event Event) {
	message := kafka.Message{
		Key:   event.Type,
		Value: event,
	}

	if err := m.client.SendMessages(ctx, m.config.Events.Kafka.Topic, message); err != nil {
		log.Error().Err(err).Str("event", event.Type).Msg("Failed to mirror event to Kafka")
	}
}
