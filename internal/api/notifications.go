package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/agno/worksphere/internal/model"
)

// ListFilters narrows the notification list query.
type ListFilters struct {
	// Limit caps the number of records returned. Zero means the
	// backend default.
	Limit int

	// UnreadOnly restricts results to unread notifications.
	UnreadOnly bool
}

// query renders the filters as a URL query string, empty when no
// filter is set.
func (f ListFilters) query() string {
	v := url.Values{}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.UnreadOnly {
		v.Set("unread_only", "true")
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// ListNotifications retrieves the user's notifications, most recent
// first, optionally narrowed by filters.
func (c *Client) ListNotifications(
	ctx context.Context,
	filters ListFilters,
) ([]model.Notification, error) {
	var notifications []model.Notification
	path := "/api/v1/notifications" + filters.query()
	if err := c.Get(ctx, path, &notifications); err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return notifications, nil
}

// CreateNotification creates a notification for a user and returns the
// stored record.
func (c *Client) CreateNotification(
	ctx context.Context,
	draft model.NotificationDraft,
) (*model.Notification, error) {
	var created model.Notification
	if err := c.Post(ctx, "/api/v1/notifications", draft, &created); err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}
	return &created, nil
}

// MarkNotificationRead marks a single notification as read and returns
// the updated record.
func (c *Client) MarkNotificationRead(
	ctx context.Context,
	id string,
) (*model.Notification, error) {
	var updated model.Notification
	path := "/api/v1/notifications/" + url.PathEscape(id) + "/read"
	if err := c.Put(ctx, path, nil, &updated); err != nil {
		return nil, fmt.Errorf("marking notification %s read: %w", id, err)
	}
	return &updated, nil
}

// MarkAllNotificationsRead marks every notification for the current
// user as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	if err := c.Put(ctx, "/api/v1/notifications/read-all", nil, nil); err != nil {
		return fmt.Errorf("marking all notifications read: %w", err)
	}
	return nil
}

// DeleteNotification removes a notification permanently.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	path := "/api/v1/notifications/" + url.PathEscape(id)
	if err := c.Delete(ctx, path); err != nil {
		return fmt.Errorf("deleting notification %s: %w", id, err)
	}
	return nil
}

// GetNotificationStats retrieves the aggregate unread count without
// transferring full notification bodies.
func (c *Client) GetNotificationStats(
	ctx context.Context,
) (*model.NotificationStats, error) {
	var stats model.NotificationStats
	if err := c.Get(ctx, "/api/v1/notifications/stats", &stats); err != nil {
		return nil, fmt.Errorf("getting notification stats: %w", err)
	}
	return &stats, nil
}
