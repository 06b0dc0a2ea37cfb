package store

import (
	"context"

	"github.com/agno/worksphere/internal/model"
)

// Store is the local persistence interface for the notification cache.
// It mirrors the last-known server snapshot so the UI has an offline
// view and the unread badge survives restarts.
type Store interface {
	// ReplaceNotifications atomically swaps the cached snapshot for
	// the given sequence. Records absent from the new snapshot are
	// removed, matching server-side deletion semantics.
	ReplaceNotifications(ctx context.Context, notifications []model.Notification) error

	// GetNotifications returns the cached snapshot, most recent first.
	GetNotifications(ctx context.Context) ([]model.Notification, error)

	// GetUnreadCount counts cached notifications with read = false.
	GetUnreadCount(ctx context.Context) (int, error)

	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id string) error

	Close() error
}
