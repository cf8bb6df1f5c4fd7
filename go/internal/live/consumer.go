package live

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mcdev12/bpl/go/internal/outbox"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

// Broadcaster receives decoded roster events. *Hub satisfies it.
type Broadcaster interface {
	Broadcast(env outbox.Envelope)
}

// EventConsumer reads roster.events.> from JetStream and hands each event to
// the hub. Every API instance runs its own ordered consumer starting at new
// messages, so no durable state is kept.
type EventConsumer struct {
	nc       *nats.Conn
	consumer jetstream.Consumer
	hub      Broadcaster
	config   outbox.JetStreamConfig
}

func NewEventConsumer(ctx context.Context, cfg outbox.JetStreamConfig, hub Broadcaster) (*EventConsumer, error) {
	nc, err := nats.Connect(cfg.URL, cfg.ConnectOptions("bpl-live")...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	consumer, err := js.OrderedConsumer(ctx, cfg.StreamName, jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{cfg.SubjectPrefix + ".>"},
		DeliverPolicy:  jetstream.DeliverNewPolicy,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create ordered consumer: %w", err)
	}

	log.Info().
		Str("stream", cfg.StreamName).
		Str("subjects", cfg.SubjectPrefix+".>").
		Msg("created JetStream consumer")

	return &EventConsumer{nc: nc, consumer: consumer, hub: hub, config: cfg}, nil
}

// Start consumes until ctx is done.
func (ec *EventConsumer) Start(ctx context.Context) error {
	consumeCtx, err := ec.consumer.Consume(func(msg jetstream.Msg) {
		if err := handleMessage(ec.hub, msg.Data()); err != nil {
			log.Error().Err(err).Str("subject", msg.Subject()).Msg("failed to process message")
		}
	})
	if err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}
	defer consumeCtx.Stop()

	log.Info().Str("stream", ec.config.StreamName).Msg("event consumer started")
	<-ctx.Done()
	log.Info().Msg("event consumer shutting down")
	return nil
}

func (ec *EventConsumer) Close() {
	if ec.nc != nil {
		ec.nc.Close()
	}
}

func handleMessage(hub Broadcaster, data []byte) error {
	var env outbox.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("unmarshal event envelope: %w", err)
	}

	log.Debug().
		Str("event_id", env.EventID.String()).
		Str("team_id", env.TeamID.String()).
		Str("event_type", string(env.EventType)).
		Msg("relaying event to websocket clients")

	hub.Broadcast(env)
	return nil
}
