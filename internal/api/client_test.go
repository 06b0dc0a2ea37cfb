package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agno/worksphere/internal/model"
)

func TestListNotifications(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/v1/notifications", r.URL.Path)
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			assert.Equal(t, "5", r.URL.Query().Get("limit"))

			json.NewEncoder(w).Encode([]model.Notification{
				{ID: "n1", Title: "Task Assigned", Read: false},
				{ID: "n2", Title: "Welcome", Read: true},
			})
		},
	))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-1")
	got, err := c.ListNotifications(
		context.Background(), ListFilters{Limit: 5},
	)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "n1", got[0].ID)
	assert.False(t, got[0].Read)
	assert.True(t, got[1].Read)
}

func TestCreateNotification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var draft model.NotificationDraft
			require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
			assert.Equal(t, "u1", draft.UserID)
			assert.Equal(t, model.TypeTaskAssigned, draft.Type)

			json.NewEncoder(w).Encode(model.Notification{
				ID:       "n9",
				UserID:   draft.UserID,
				Type:     draft.Type,
				Title:    draft.Title,
				Priority: draft.Priority,
			})
		},
	))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-1")
	created, err := c.CreateNotification(context.Background(), model.NotificationDraft{
		UserID:   "u1",
		Title:    "Task Assigned",
		Type:     model.TypeTaskAssigned,
		Priority: model.PriorityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, "n9", created.ID)
}

func TestMarkReadAndDelete(t *testing.T) {
	var gotPaths []string
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			gotPaths = append(gotPaths, r.Method+" "+r.URL.Path)
			switch {
			case r.Method == http.MethodPut && r.URL.Path == "/api/v1/notifications/n1/read":
				json.NewEncoder(w).Encode(model.Notification{ID: "n1", Read: true})
			case r.Method == http.MethodPut && r.URL.Path == "/api/v1/notifications/read-all":
				w.WriteHeader(http.StatusNoContent)
			case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/notifications/n1":
				w.WriteHeader(http.StatusNoContent)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		},
	))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-1")
	ctx := context.Background()

	updated, err := c.MarkNotificationRead(ctx, "n1")
	require.NoError(t, err)
	assert.True(t, updated.Read)

	require.NoError(t, c.MarkAllNotificationsRead(ctx))
	require.NoError(t, c.DeleteNotification(ctx, "n1"))

	assert.Equal(t, []string{
		"PUT /api/v1/notifications/n1/read",
		"PUT /api/v1/notifications/read-all",
		"DELETE /api/v1/notifications/n1",
	}, gotPaths)
}

func TestGetNotificationStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/notifications/stats", r.URL.Path)
			json.NewEncoder(w).Encode(model.NotificationStats{Unread: 4})
		},
	))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-1")
	stats, err := c.GetNotificationStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Unread)
}

func TestUnauthorizedReturnsAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		},
	))
	defer srv.Close()

	c := NewClient(srv.URL, "expired")
	_, err := c.ListNotifications(context.Background(), ListFilters{})
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
}

func TestRateLimitRetries(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				w.Header().Set("Retry-After", "0")
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			json.NewEncoder(w).Encode([]model.Notification{})
		},
	))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-1")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := c.ListNotifications(ctx, ListFilters{})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestAPIErrorBodySurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "limit out of range"})
		},
	))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-1")
	_, err := c.ListNotifications(context.Background(), ListFilters{Limit: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit out of range")
}
