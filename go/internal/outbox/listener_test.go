package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/lib/pq"
	"github.com/mcdev12/bpl/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu     sync.Mutex
	events []models.RosterEvent
}

func (s *memStore) add(eventType models.EventType) models.RosterEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := models.RosterEvent{
		ID:        uuid.New(),
		TeamID:    uuid.New(),
		EventType: eventType,
		Payload:   json.RawMessage(`{"ok":true}`),
		CreatedAt: time.Now(),
	}
	s.events = append(s.events, ev)
	return ev
}

func (s *memStore) sent(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range s.events {
		if ev.ID == id {
			return ev.SentAt != nil
		}
	}
	return false
}

func (s *memStore) FetchByID(ctx context.Context, id uuid.UUID) (models.RosterEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range s.events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return models.RosterEvent{}, ErrEventNotFound
}

func (s *memStore) FetchUnsent(ctx context.Context, limit int32) ([]models.RosterEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.RosterEvent
	for _, ev := range s.events {
		if ev.SentAt == nil && int32(len(out)) < limit {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *memStore) MarkSent(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == id && s.events[i].SentAt == nil {
			now := time.Now()
			s.events[i].SentAt = &now
		}
	}
	return nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []uuid.UUID
	fail      map[uuid.UUID]bool
}

func (p *fakePublisher) Publish(ctx context.Context, event models.RosterEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail[event.ID] {
		return errors.New("nats unavailable")
	}
	p.published = append(p.published, event.ID)
	return nil
}

func (p *fakePublisher) setFail(id uuid.UUID, fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail == nil {
		p.fail = map[uuid.UUID]bool{}
	}
	p.fail[id] = fail
}

func (p *fakePublisher) ids() []uuid.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]uuid.UUID(nil), p.published...)
}

type fakeNotifier struct {
	ch     chan *pq.Notification
	mu     sync.Mutex
	closed bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{ch: make(chan *pq.Notification, 4)}
}

func (n *fakeNotifier) Notifications() <-chan *pq.Notification { return n.ch }
func (n *fakeNotifier) Ping() error                             { return nil }
func (n *fakeNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	return nil
}

func newTestListener(store EventStore, pub Publisher, clock clockwork.Clock) (*Listener, *fakeNotifier) {
	n := newFakeNotifier()
	return NewListener(store, n, pub, clock, DefaultListenerConfig()), n
}

func TestListener_HandleNotification(t *testing.T) {
	store := &memStore{}
	pub := &fakePublisher{}
	l, _ := newTestListener(store, pub, clockwork.NewFakeClock())
	ev := store.add(models.EventCaptainChanged)
	ctx := context.Background()

	require.NoError(t, l.handleNotification(ctx, ev.ID.String()))
	assert.True(t, store.sent(ev.ID))

	// a repeated notification for a sent event is ignored
	require.NoError(t, l.handleNotification(ctx, ev.ID.String()))
	assert.Equal(t, []uuid.UUID{ev.ID}, pub.ids())

	processed, last, _ := l.Stats()
	assert.Equal(t, uint64(1), processed)
	assert.False(t, last.IsZero())
}

func TestListener_HandleNotificationBadInput(t *testing.T) {
	store := &memStore{}
	pub := &fakePublisher{}
	l, _ := newTestListener(store, pub, clockwork.NewFakeClock())

	assert.Error(t, l.handleNotification(context.Background(), "not-a-uuid"))
	assert.NoError(t, l.handleNotification(context.Background(), uuid.NewString()))
	assert.Empty(t, pub.ids())
}

func TestListener_PublishFailureLeavesEventUnsent(t *testing.T) {
	store := &memStore{}
	pub := &fakePublisher{}
	l, _ := newTestListener(store, pub, clockwork.NewFakeClock())
	ev := store.add(models.EventPlayerCreated)
	pub.setFail(ev.ID, true)

	err := l.handleNotification(context.Background(), ev.ID.String())
	require.Error(t, err)
	assert.False(t, store.sent(ev.ID))

	pub.setFail(ev.ID, false)
	require.NoError(t, l.processUnsent(context.Background()))
	assert.True(t, store.sent(ev.ID))
}

func TestListener_ProcessUnsentStopsAtFirstFailure(t *testing.T) {
	store := &memStore{}
	pub := &fakePublisher{}
	l, _ := newTestListener(store, pub, clockwork.NewFakeClock())
	first := store.add(models.EventPlayerCreated)
	second := store.add(models.EventBattingOrderUpdated)
	third := store.add(models.EventCaptainChanged)
	pub.setFail(second.ID, true)

	require.Error(t, l.processUnsent(context.Background()))
	assert.Equal(t, []uuid.UUID{first.ID}, pub.ids())
	assert.False(t, store.sent(second.ID))
	assert.False(t, store.sent(third.ID))
}

func TestListener_Start(t *testing.T) {
	store := &memStore{}
	pub := &fakePublisher{}
	clock := clockwork.NewFakeClock()
	l, notifier := newTestListener(store, pub, clock)

	backlog := store.add(models.EventTeamCreated)
	pub.setFail(backlog.ID, true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Start(ctx) }()

	// both tickers registered
	require.NoError(t, clock.BlockUntilContext(ctx, 2))
	require.Eventually(t, func() bool {
		_, _, running := l.Stats()
		return running
	}, time.Second, 5*time.Millisecond)

	pub.setFail(backlog.ID, false)
	clock.Advance(DefaultListenerConfig().FallbackInterval)
	require.Eventually(t, func() bool { return store.sent(backlog.ID) }, time.Second, 5*time.Millisecond)

	ev := store.add(models.EventBattingOrderUpdated)
	notifier.ch <- &pq.Notification{Channel: NotifyChannel, Extra: ev.ID.String()}
	require.Eventually(t, func() bool { return store.sent(ev.ID) }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("listener did not stop")
	}
	notifier.mu.Lock()
	assert.True(t, notifier.closed)
	notifier.mu.Unlock()
	_, _, running := l.Stats()
	assert.False(t, running)
}

func TestNewMessage(t *testing.T) {
	cfg := DefaultJetStreamConfig()
	ev := models.RosterEvent{
		ID:        uuid.New(),
		TeamID:    uuid.New(),
		EventType: models.EventBattingOrderUpdated,
		Payload:   json.RawMessage(`{"assigned":11}`),
	}
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	msg, err := NewMessage(cfg, ev, now)
	require.NoError(t, err)
	assert.Equal(t, "roster.events.batting_order.updated", msg.Subject)
	assert.Equal(t, ev.TeamID.String(), msg.Header.Get(HeaderTeamID))
	assert.Equal(t, ev.ID.String(), msg.Header.Get(HeaderEventID))

	var env Envelope
	require.NoError(t, json.Unmarshal(msg.Data, &env))
	assert.Equal(t, ev.ID, env.EventID)
	assert.Equal(t, ev.TeamID, env.TeamID)
	assert.Equal(t, models.EventBattingOrderUpdated, env.EventType)
	assert.True(t, now.Equal(env.Timestamp))
	assert.JSONEq(t, `{"assigned":11}`, string(env.Payload))
}

type fakeBacklog struct {
	pingErr error
	pending int
}

func (b fakeBacklog) Ping(ctx context.Context) error                { return b.pingErr }
func (b fakeBacklog) PendingCount(ctx context.Context) (int, error) { return b.pending, nil }

type fakeConn bool

func (c fakeConn) IsConnected() bool { return bool(c) }

func TestHealthChecker(t *testing.T) {
	clock := clockwork.NewFakeClock()
	l, _ := newTestListener(&memStore{}, &fakePublisher{}, clock)

	t.Run("listener stopped", func(t *testing.T) {
		h := NewHealthChecker(l, fakeBacklog{}, fakeConn(true), clock, time.Minute)
		status := h.Check(context.Background())
		assert.False(t, status.Healthy)
		assert.Contains(t, status.Errors, "listener not active")
	})

	l.setRunning(true)

	t.Run("healthy", func(t *testing.T) {
		h := NewHealthChecker(l, fakeBacklog{pending: 3}, fakeConn(true), clock, time.Minute)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		var status HealthStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
		assert.True(t, status.Healthy)
		assert.Equal(t, 3, status.PendingEvents)
		assert.True(t, status.DatabaseConnected)
	})

	t.Run("nats down", func(t *testing.T) {
		h := NewHealthChecker(l, fakeBacklog{}, fakeConn(false), clock, time.Minute)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("database down", func(t *testing.T) {
		h := NewHealthChecker(l, fakeBacklog{pingErr: errors.New("refused")}, fakeConn(true), clock, time.Minute)
		status := h.Check(context.Background())
		assert.False(t, status.Healthy)
		assert.False(t, status.DatabaseConnected)
	})
}
