package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/agno/worksphere/internal/api"
	"github.com/agno/worksphere/internal/model"
)

// FakeRemote is an in-memory implementation of the backend surface
// consumed by the notify package. Each operation can be forced to fail
// by setting the corresponding error field.
type FakeRemote struct {
	mu sync.Mutex

	Notifications []model.Notification

	ListErr    error
	CreateErr  error
	MarkErr    error
	MarkAllErr error
	DeleteErr  error
	StatsErr   error

	// ListCalls counts ListNotifications invocations, so tests can
	// assert how often polling fired.
	ListCalls  int
	StatsCalls int

	nextID int
}

// NewFakeRemote creates a FakeRemote seeded with the given notifications.
func NewFakeRemote(notifications ...model.Notification) *FakeRemote {
	return &FakeRemote{Notifications: notifications}
}

func (f *FakeRemote) ListNotifications(
	_ context.Context,
	filters api.ListFilters,
) ([]model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}

	out := make([]model.Notification, len(f.Notifications))
	copy(out, f.Notifications)
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

func (f *FakeRemote) CreateNotification(
	_ context.Context,
	draft model.NotificationDraft,
) (*model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.CreateErr != nil {
		return nil, f.CreateErr
	}

	f.nextID++
	created := model.Notification{
		ID:        fmt.Sprintf("created-%d", f.nextID),
		UserID:    draft.UserID,
		Type:      draft.Type,
		Priority:  draft.Priority,
		Title:     draft.Title,
		Message:   draft.Message,
		ActionURL: draft.ActionURL,
		Metadata:  draft.Metadata,
	}
	f.Notifications = append([]model.Notification{created}, f.Notifications...)
	return &created, nil
}

func (f *FakeRemote) MarkNotificationRead(
	_ context.Context,
	id string,
) (*model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.MarkErr != nil {
		return nil, f.MarkErr
	}

	for i := range f.Notifications {
		if f.Notifications[i].ID == id {
			f.Notifications[i].Read = true
			n := f.Notifications[i]
			return &n, nil
		}
	}
	return &model.Notification{ID: id, Read: true}, nil
}

func (f *FakeRemote) MarkAllNotificationsRead(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.MarkAllErr != nil {
		return f.MarkAllErr
	}
	for i := range f.Notifications {
		f.Notifications[i].Read = true
	}
	return nil
}

func (f *FakeRemote) DeleteNotification(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	kept := f.Notifications[:0]
	for _, n := range f.Notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	f.Notifications = kept
	return nil
}

func (f *FakeRemote) GetNotificationStats(
	_ context.Context,
) (*model.NotificationStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.StatsCalls++
	if f.StatsErr != nil {
		return nil, f.StatsErr
	}

	unread := 0
	for _, n := range f.Notifications {
		if !n.Read {
			unread++
		}
	}
	return &model.NotificationStats{Unread: unread}, nil
}

// CallCounts returns the list and stats call counters.
func (f *FakeRemote) CallCounts() (list, stats int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ListCalls, f.StatsCalls
}
