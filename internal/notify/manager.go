package notify

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/agno/worksphere/internal/api"
	"github.com/agno/worksphere/internal/model"
	"github.com/agno/worksphere/internal/store"
)

// Listener receives the full cached notification sequence after every
// update.
type Listener func([]model.Notification)

// BadgeListener receives the unread badge count whenever it changes.
type BadgeListener func(int)

// PushSource delivers server-pushed notification events. Subscribe
// registers a handler and returns an unsubscribe function. The push
// channel is optional; a Manager built without one simply relies on
// polling.
type PushSource interface {
	Subscribe(handler func(model.Notification)) (unsubscribe func())
}

// Manager keeps the last-fetched notification sequence, fans updates
// out to listeners, and runs two independent polling loops: a full
// refresh and a lightweight stats poll for the unread badge. Updates
// from the loops and the push source race; the last write wins, which
// is safe because each update is a complete snapshot or a prepend.
type Manager struct {
	svc   *Service
	cache store.Store // optional offline mirror, may be nil
	push  PushSource  // optional, may be nil
	clock Clock

	refreshEvery time.Duration
	statsEvery   time.Duration

	mu             sync.Mutex
	notifications  []model.Notification
	badge          int
	listeners      map[int]Listener
	badgeListeners map[int]BadgeListener
	nextListenerID int
	polling        bool
	stopCh         chan struct{}
	unsubscribe    func()
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithStore mirrors every snapshot into a local store so the panel has
// an offline view across restarts.
func WithStore(s store.Store) ManagerOption {
	return func(m *Manager) { m.cache = s }
}

// WithPushSource attaches an optional push channel. Incoming events
// are prepended to the cache without waiting for the next poll.
func WithPushSource(p PushSource) ManagerOption {
	return func(m *Manager) { m.push = p }
}

// WithClock substitutes the time source, for tests.
func WithClock(c Clock) ManagerOption {
	return func(m *Manager) { m.clock = c }
}

// WithIntervals overrides the refresh and stats polling periods.
func WithIntervals(refresh, stats time.Duration) ManagerOption {
	return func(m *Manager) {
		m.refreshEvery = refresh
		m.statsEvery = stats
	}
}

// NewManager creates a Manager over the given service. It does not
// start polling; call StartRealTime.
func NewManager(svc *Service, opts ...ManagerOption) *Manager {
	m := &Manager{
		svc:            svc,
		clock:          systemClock{},
		refreshEvery:   30 * time.Second,
		statsEvery:     20 * time.Second,
		listeners:      make(map[int]Listener),
		badgeListeners: make(map[int]BadgeListener),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// StartRealTime begins the refresh and stats polling loops and, when a
// push source is configured, subscribes to it. Calling it while
// already polling is a no-op.
func (m *Manager) StartRealTime() {
	m.mu.Lock()
	if m.polling {
		m.mu.Unlock()
		return
	}
	m.polling = true
	m.stopCh = make(chan struct{})
	stop := m.stopCh
	m.mu.Unlock()

	go m.refreshLoop(stop)
	go m.statsLoop(stop)

	if m.push != nil {
		unsubscribe := m.push.Subscribe(m.prepend)
		m.mu.Lock()
		m.unsubscribe = unsubscribe
		m.mu.Unlock()
	}
}

// StopRealTime halts both polling loops and detaches from the push
// source. Calling it while stopped is a no-op. In-flight fetches are
// not cancelled but their results are discarded.
func (m *Manager) StopRealTime() {
	m.mu.Lock()
	if !m.polling {
		m.mu.Unlock()
		return
	}
	close(m.stopCh)
	m.polling = false
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// AddListener registers a callback invoked with the cached sequence on
// every update. The returned function removes the listener.
func (m *Manager) AddListener(fn Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextListenerID
	m.nextListenerID++
	m.listeners[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// AddBadgeListener registers a callback invoked with the unread badge
// count whenever it changes. The returned function removes it.
func (m *Manager) AddBadgeListener(fn BadgeListener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextListenerID
	m.nextListenerID++
	m.badgeListeners[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.badgeListeners, id)
	}
}

// Notifications returns a copy of the cached sequence.
func (m *Manager) Notifications() []model.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Notification, len(m.notifications))
	copy(out, m.notifications)
	return out
}

// UnreadCount is derived from the cache on demand, never stored.
func (m *Manager) UnreadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return unread(m.notifications)
}

// BadgeCount returns the stats-driven unread count used for the badge.
// It may briefly lead or lag UnreadCount between polls.
func (m *Manager) BadgeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.badge
}

// Refresh performs one immediate full fetch, replacing the cache on
// success. The UI calls this on mount.
func (m *Manager) Refresh(ctx context.Context) Result[[]model.Notification] {
	result := m.svc.List(ctx, api.ListFilters{})
	if result.Success {
		m.replace(result.Data)
	}
	return result
}

// LoadCached seeds the in-memory sequence from the local store so the
// panel can render before the first fetch completes. A nil store or a
// read error leaves the cache empty.
func (m *Manager) LoadCached(ctx context.Context) {
	if m.cache == nil {
		return
	}
	notifications, err := m.cache.GetNotifications(ctx)
	if err != nil {
		log.Printf("loading cached notifications: %v", err)
		return
	}
	if len(notifications) > 0 {
		m.replace(notifications)
	}
}

// MarkRead marks one notification read remotely and, on success,
// updates the cached record and broadcasts.
func (m *Manager) MarkRead(ctx context.Context, id string) Status {
	result := m.svc.MarkRead(ctx, id)
	if !result.Success {
		return Status{Err: result.Err}
	}

	m.mu.Lock()
	for i := range m.notifications {
		if m.notifications[i].ID == id {
			m.notifications[i].Read = true
		}
	}
	m.badge = unread(m.notifications)
	m.mu.Unlock()

	if m.cache != nil {
		if err := m.cache.MarkNotificationRead(ctx, id); err != nil {
			log.Printf("marking cached notification read: %v", err)
		}
	}

	m.broadcast()
	return Status{Success: true}
}

// MarkAllRead marks every notification read remotely and locally.
func (m *Manager) MarkAllRead(ctx context.Context) Status {
	status := m.svc.MarkAllRead(ctx)
	if !status.Success {
		return status
	}

	m.mu.Lock()
	for i := range m.notifications {
		m.notifications[i].Read = true
	}
	m.badge = 0
	m.mu.Unlock()

	if m.cache != nil {
		if err := m.cache.MarkAllNotificationsRead(ctx); err != nil {
			log.Printf("marking cached notifications read: %v", err)
		}
	}

	m.broadcast()
	return Status{Success: true}
}

// Delete removes a notification remotely and from the cache.
func (m *Manager) Delete(ctx context.Context, id string) Status {
	status := m.svc.Delete(ctx, id)
	if !status.Success {
		return status
	}

	m.mu.Lock()
	kept := m.notifications[:0]
	for _, n := range m.notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	m.notifications = kept
	m.badge = unread(m.notifications)
	m.mu.Unlock()

	if m.cache != nil {
		if err := m.cache.DeleteNotification(ctx, id); err != nil {
			log.Printf("deleting cached notification: %v", err)
		}
	}

	m.broadcast()
	return Status{Success: true}
}

// refreshLoop re-fetches the full notification list at the refresh
// interval. Failures are logged and the next tick proceeds; there is
// no backoff and polling never stops on its own.
func (m *Manager) refreshLoop(stop <-chan struct{}) {
	ticker := m.clock.NewTicker(m.refreshEvery)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			select {
			case <-stop:
				return
			default:
			}
			m.pollOnce(stop)
		}
	}
}

// pollOnce performs one full fetch and applies it unless the loop was
// stopped while the request was in flight.
func (m *Manager) pollOnce(stop <-chan struct{}) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	result := m.svc.List(ctx, api.ListFilters{})
	if !result.Success {
		log.Printf("polling notifications: %v", result.Err)
		return
	}

	select {
	case <-stop:
		// Stopped during the fetch; drop the stale response.
		return
	default:
	}

	m.replace(result.Data)
}

// statsLoop polls the aggregate unread count at the stats interval to
// keep the badge fresh without transferring notification bodies.
func (m *Manager) statsLoop(stop <-chan struct{}) {
	ticker := m.clock.NewTicker(m.statsEvery)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
			select {
			case <-stop:
				return
			default:
			}
			ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
			result := m.svc.Stats(ctx)
			cancel()

			if !result.Success {
				log.Printf("polling notification stats: %v", result.Err)
				continue
			}

			select {
			case <-stop:
				return
			default:
			}

			m.mu.Lock()
			m.badge = result.Data.Unread
			m.mu.Unlock()
			m.broadcastBadge()
		}
	}
}

// replace swaps in a fresh snapshot, persists it, and broadcasts.
func (m *Manager) replace(notifications []model.Notification) {
	m.mu.Lock()
	m.notifications = notifications
	m.badge = unread(notifications)
	m.mu.Unlock()

	if m.cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		if err := m.cache.ReplaceNotifications(ctx, notifications); err != nil {
			log.Printf("persisting notification snapshot: %v", err)
		}
		cancel()
	}

	m.broadcast()
	m.broadcastBadge()
}

// prepend inserts a pushed notification at the head of the cache and
// bumps the badge, without waiting for the next poll.
func (m *Manager) prepend(n model.Notification) {
	m.mu.Lock()
	m.notifications = append([]model.Notification{n}, m.notifications...)
	if !n.Read {
		m.badge++
	}
	m.mu.Unlock()

	m.broadcast()
	m.broadcastBadge()
}

// broadcast invokes every listener with the current cache. Listener
// panics are contained so one bad subscriber cannot take down the
// polling loops.
func (m *Manager) broadcast() {
	m.mu.Lock()
	listeners := make([]Listener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		listeners = append(listeners, fn)
	}
	snapshot := make([]model.Notification, len(m.notifications))
	copy(snapshot, m.notifications)
	m.mu.Unlock()

	for _, fn := range listeners {
		safeCall(func() { fn(snapshot) })
	}
}

func (m *Manager) broadcastBadge() {
	m.mu.Lock()
	listeners := make([]BadgeListener, 0, len(m.badgeListeners))
	for _, fn := range m.badgeListeners {
		listeners = append(listeners, fn)
	}
	badge := m.badge
	m.mu.Unlock()

	for _, fn := range listeners {
		safeCall(func() { fn(badge) })
	}
}

func safeCall(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("notification listener panicked: %v", r)
		}
	}()
	fn()
}

func unread(notifications []model.Notification) int {
	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count
}
