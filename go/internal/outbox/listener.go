package outbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/lib/pq"
	"github.com/mcdev12/bpl/go/internal/models"
	"github.com/rs/zerolog/log"
)

// NotifyChannel is the channel the roster_outbox insert trigger notifies on.
const NotifyChannel = "roster_outbox_events"

type ListenerConfig struct {
	DatabaseURL      string        // Postgres DSN for LISTEN/NOTIFY
	NotifyChannel    string        // Channel name to LISTEN on
	FallbackInterval time.Duration // How often to poll for missed events
	PingInterval     time.Duration
	BatchSize        int32 // Max events to fetch per poll
}

func DefaultListenerConfig() ListenerConfig {
	return ListenerConfig{
		NotifyChannel:    NotifyChannel,
		FallbackInterval: 30 * time.Second,
		PingInterval:     90 * time.Second,
		BatchSize:        100,
	}
}

// Notifier delivers LISTEN notifications. A nil notification means the
// connection was re-established and notifications may have been missed.
type Notifier interface {
	Notifications() <-chan *pq.Notification
	Ping() error
	Close() error
}

type pqNotifier struct {
	l *pq.Listener
}

func (n pqNotifier) Notifications() <-chan *pq.Notification { return n.l.Notify }
func (n pqNotifier) Ping() error                             { return n.l.Ping() }
func (n pqNotifier) Close() error                            { return n.l.Close() }

// NewPQNotifier opens a lib/pq listener on cfg.NotifyChannel.
func NewPQNotifier(cfg ListenerConfig) (Notifier, error) {
	l := pq.NewListener(
		cfg.DatabaseURL,
		10*time.Second,
		time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				log.Error().Err(err).Msg("listener event")
			}
		},
	)
	if err := l.Listen(cfg.NotifyChannel); err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("failed to listen to channel: %w", err)
	}

	log.Info().
		Str("channel", cfg.NotifyChannel).
		Msg("listening for notifications")

	return pqNotifier{l: l}, nil
}

// Listener relays outbox rows to the publisher as they are committed. A
// publish failure leaves the row unsent; the fallback poll picks it up on its
// next tick.
type Listener struct {
	store     EventStore
	notifier  Notifier
	publisher Publisher
	clock     clockwork.Clock
	cfg       ListenerConfig

	mu        sync.Mutex
	running   bool
	processed uint64
	lastEvent time.Time
}

func NewListener(store EventStore, notifier Notifier, publisher Publisher, clock clockwork.Clock, cfg ListenerConfig) *Listener {
	return &Listener{
		store:     store,
		notifier:  notifier,
		publisher: publisher,
		clock:     clock,
		cfg:       cfg,
	}
}

// Start drains the backlog, then relays notifications until ctx is done.
func (l *Listener) Start(ctx context.Context) error {
	log.Info().
		Str("channel", l.cfg.NotifyChannel).
		Dur("ping_interval", l.cfg.PingInterval).
		Dur("fallback_interval", l.cfg.FallbackInterval).
		Msg("listener started")

	l.setRunning(true)
	defer l.setRunning(false)

	pingTicker := l.clock.NewTicker(l.cfg.PingInterval)
	fallbackTicker := l.clock.NewTicker(l.cfg.FallbackInterval)
	defer pingTicker.Stop()
	defer fallbackTicker.Stop()

	if err := l.processUnsent(ctx); err != nil {
		log.Error().Err(err).Msg("failed to process backlog")
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("listener shutting down")
			return l.notifier.Close()
		case note := <-l.notifier.Notifications():
			if note == nil {
				// reconnected; anything sent while down is only reachable by polling
				if err := l.processUnsent(ctx); err != nil {
					log.Error().Err(err).Msg("failed to process unsent events after reconnect")
				}
				continue
			}
			if err := l.handleNotification(ctx, note.Extra); err != nil {
				log.Error().Err(err).Msg("failed to handle notification")
			}
		case <-fallbackTicker.Chan():
			if err := l.processUnsent(ctx); err != nil {
				log.Error().Err(err).Msg("failed to process unsent events")
			}
		case <-pingTicker.Chan():
			if err := l.notifier.Ping(); err != nil {
				log.Error().Err(err).Msg("failed to ping listener")
			}
		}
	}
}

// Stats reports how many events were published and when the last one went out.
func (l *Listener) Stats() (processed uint64, lastEvent time.Time, running bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.processed, l.lastEvent, l.running
}

func (l *Listener) setRunning(v bool) {
	l.mu.Lock()
	l.running = v
	l.mu.Unlock()
}

// handleNotification publishes the event whose id is the notification payload.
func (l *Listener) handleNotification(ctx context.Context, extra string) error {
	id, err := uuid.Parse(extra)
	if err != nil {
		return fmt.Errorf("invalid event ID in notification: %w", err)
	}

	event, err := l.store.FetchByID(ctx, id)
	if errors.Is(err, ErrEventNotFound) {
		log.Warn().Str("event_id", id.String()).Msg("notified event no longer exists")
		return nil
	}
	if err != nil {
		return err
	}
	if event.SentAt != nil {
		log.Debug().Str("event_id", id.String()).Msg("event already sent")
		return nil
	}

	return l.publish(ctx, event)
}

// processUnsent publishes pending events oldest first. It stops at the first
// failure so a team's events never go out of order.
func (l *Listener) processUnsent(ctx context.Context) error {
	unsent, err := l.store.FetchUnsent(ctx, l.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, event := range unsent {
		if err := l.publish(ctx, event); err != nil {
			return err
		}
	}
	if len(unsent) > 0 {
		log.Info().Int("count", len(unsent)).Msg("published unsent events")
	}
	return nil
}

func (l *Listener) publish(ctx context.Context, event models.RosterEvent) error {
	if err := l.publisher.Publish(ctx, event); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.ID, err)
	}

	if err := l.store.MarkSent(ctx, event.ID); err != nil {
		return err
	}

	l.mu.Lock()
	l.processed++
	l.lastEvent = l.clock.Now()
	l.mu.Unlock()

	log.Info().
		Str("event_id", event.ID.String()).
		Str("event_type", string(event.EventType)).
		Msg("published and marked event as sent")
	return nil
}
