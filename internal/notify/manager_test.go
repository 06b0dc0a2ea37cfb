package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agno/worksphere/internal/model"
	"github.com/agno/worksphere/internal/notify"
	"github.com/agno/worksphere/tests/testutil"
)

const (
	refreshEvery = 30 * time.Second
	statsEvery   = 20 * time.Second
)

func waitFor[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
		panic("unreachable")
	}
}

// tickerFor waits for the polling goroutine to create its ticker; the
// loops start asynchronously after StartRealTime.
func tickerFor(t *testing.T, clock *testutil.FakeClock, d time.Duration) *testutil.FakeTicker {
	t.Helper()
	require.Eventually(t, func() bool {
		return clock.Ticker(d) != nil
	}, 2*time.Second, 5*time.Millisecond)
	return clock.Ticker(d)
}

func newTestManager(
	t *testing.T,
	remote *testutil.FakeRemote,
	opts ...notify.ManagerOption,
) (*notify.Manager, *testutil.FakeClock) {
	t.Helper()

	clock := testutil.NewFakeClock(time.Now())
	opts = append(opts,
		notify.WithClock(clock),
		notify.WithIntervals(refreshEvery, statsEvery),
	)
	m := notify.NewManager(notify.NewService(remote), opts...)
	t.Cleanup(m.StopRealTime)
	return m, clock
}

func TestRefreshUpdatesCacheAndListeners(t *testing.T) {
	remote := testutil.NewFakeRemote(
		model.Notification{ID: "n1", Read: false},
		model.Notification{ID: "n2", Read: true},
	)
	m, _ := newTestManager(t, remote)

	updates := make(chan []model.Notification, 4)
	unsubscribe := m.AddListener(func(ns []model.Notification) {
		updates <- ns
	})

	result := m.Refresh(context.Background())
	require.True(t, result.Success)

	got := waitFor(t, updates)
	require.Len(t, got, 2)
	assert.Equal(t, 1, m.UnreadCount())

	// After unsubscribing the listener receives nothing further.
	unsubscribe()
	m.Refresh(context.Background())
	select {
	case <-updates:
		t.Fatal("listener called after unsubscribe")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRefreshFailureLeavesCache(t *testing.T) {
	remote := testutil.NewFakeRemote(model.Notification{ID: "n1"})
	m, _ := newTestManager(t, remote)

	require.True(t, m.Refresh(context.Background()).Success)
	require.Len(t, m.Notifications(), 1)

	remote.ListErr = assert.AnError
	result := m.Refresh(context.Background())
	assert.False(t, result.Success)

	// Last-known-good cache is preserved.
	assert.Len(t, m.Notifications(), 1)
}

func TestStartRealTimeIsIdempotent(t *testing.T) {
	remote := testutil.NewFakeRemote()
	m, clock := newTestManager(t, remote)

	m.StartRealTime()
	tickerFor(t, clock, refreshEvery)
	tickerFor(t, clock, statsEvery)
	assert.Equal(t, 2, clock.TickerCount())

	m.StartRealTime()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 2, clock.TickerCount())
}

func TestPollingTickFetchesAndBroadcasts(t *testing.T) {
	remote := testutil.NewFakeRemote(model.Notification{ID: "n1"})
	m, clock := newTestManager(t, remote)

	updates := make(chan []model.Notification, 4)
	m.AddListener(func(ns []model.Notification) { updates <- ns })

	m.StartRealTime()
	ticker := tickerFor(t, clock, refreshEvery)

	ticker.Fire(clock.Now())
	got := waitFor(t, updates)
	require.Len(t, got, 1)
	assert.Equal(t, "n1", got[0].ID)
}

func TestPollingFailureKeepsPolling(t *testing.T) {
	remote := testutil.NewFakeRemote(model.Notification{ID: "n1"})
	m, clock := newTestManager(t, remote)

	updates := make(chan []model.Notification, 4)
	m.AddListener(func(ns []model.Notification) { updates <- ns })

	m.StartRealTime()
	ticker := tickerFor(t, clock, refreshEvery)

	// A failing tick is logged and skipped.
	remote.ListErr = assert.AnError
	ticker.Fire(clock.Now())
	select {
	case <-updates:
		t.Fatal("broadcast on failed poll")
	case <-time.After(50 * time.Millisecond):
	}

	// The next tick succeeds as if nothing happened.
	remote.ListErr = nil
	ticker.Fire(clock.Now())
	got := waitFor(t, updates)
	assert.Len(t, got, 1)
}

func TestStopRealTimeHaltsPolling(t *testing.T) {
	remote := testutil.NewFakeRemote()
	m, clock := newTestManager(t, remote)

	m.StartRealTime()
	ticker := tickerFor(t, clock, refreshEvery)

	m.StopRealTime()
	// Give the loops a moment to observe the stop signal.
	time.Sleep(20 * time.Millisecond)
	listBefore, _ := remote.CallCounts()

	ticker.Fire(clock.Now())
	time.Sleep(50 * time.Millisecond)

	listAfter, _ := remote.CallCounts()
	assert.Equal(t, listBefore, listAfter)

	// Stopping again is a no-op.
	m.StopRealTime()
}

func TestStatsTickUpdatesBadge(t *testing.T) {
	remote := testutil.NewFakeRemote(
		model.Notification{ID: "n1", Read: false},
		model.Notification{ID: "n2", Read: false},
	)
	m, clock := newTestManager(t, remote)

	badges := make(chan int, 4)
	m.AddBadgeListener(func(count int) { badges <- count })

	m.StartRealTime()
	ticker := tickerFor(t, clock, statsEvery)

	ticker.Fire(clock.Now())
	assert.Equal(t, 2, waitFor(t, badges))
	assert.Equal(t, 2, m.BadgeCount())
}

func TestPushPrependsWithoutWaitingForPoll(t *testing.T) {
	remote := testutil.NewFakeRemote(model.Notification{ID: "n1", Read: true})
	push := testutil.NewFakePush()
	m, _ := newTestManager(t, remote, notify.WithPushSource(push))

	require.True(t, m.Refresh(context.Background()).Success)
	m.StartRealTime()

	updates := make(chan []model.Notification, 4)
	m.AddListener(func(ns []model.Notification) { updates <- ns })

	push.Emit(model.Notification{ID: "pushed", Read: false})

	got := waitFor(t, updates)
	require.Len(t, got, 2)
	assert.Equal(t, "pushed", got[0].ID)
	assert.Equal(t, 1, m.UnreadCount())
	assert.Equal(t, 1, m.BadgeCount())

	m.StopRealTime()
	assert.Equal(t, 1, push.Unsubscribes)
}

func TestMarkReadKeepsUnreadInvariant(t *testing.T) {
	remote := testutil.NewFakeRemote(
		model.Notification{ID: "n1", Read: false},
		model.Notification{ID: "n2", Read: false},
	)
	m, _ := newTestManager(t, remote)
	ctx := context.Background()

	require.True(t, m.Refresh(ctx).Success)
	require.Equal(t, 2, m.UnreadCount())

	require.True(t, m.MarkRead(ctx, "n1").Success)
	assert.Equal(t, 1, m.UnreadCount())
	assert.Equal(t, 1, m.BadgeCount())

	require.True(t, m.MarkAllRead(ctx).Success)
	assert.Equal(t, 0, m.UnreadCount())
}

func TestDeleteRemovesFromCache(t *testing.T) {
	remote := testutil.NewFakeRemote(
		model.Notification{ID: "n1", Read: false},
		model.Notification{ID: "n2", Read: true},
	)
	m, _ := newTestManager(t, remote)
	ctx := context.Background()

	require.True(t, m.Refresh(ctx).Success)
	require.True(t, m.Delete(ctx, "n1").Success)

	got := m.Notifications()
	require.Len(t, got, 1)
	assert.Equal(t, "n2", got[0].ID)
	assert.Equal(t, 0, m.UnreadCount())
}

func TestManagerPersistsSnapshotToStore(t *testing.T) {
	remote := testutil.NewFakeRemote(
		model.Notification{ID: "n1", Read: false, CreatedAt: time.Now().UTC()},
	)
	s := testutil.NewTestStore(t)
	m, _ := newTestManager(t, remote, notify.WithStore(s))
	ctx := context.Background()

	require.True(t, m.Refresh(ctx).Success)

	cached, err := s.GetNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "n1", cached[0].ID)

	// A fresh manager can seed its cache from the store.
	m2, _ := newTestManager(t, testutil.NewFakeRemote(), notify.WithStore(s))
	m2.LoadCached(ctx)
	assert.Len(t, m2.Notifications(), 1)
}
