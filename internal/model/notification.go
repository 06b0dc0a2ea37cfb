package model

import "time"

// NotificationType classifies the domain event that produced a
// notification. The values are part of the wire contract with the
// backend and drive icon selection in the UI.
type NotificationType string

const (
	TypeProject         NotificationType = "project"
	TypeProjectCreated  NotificationType = "project_created"
	TypeTaskAssigned    NotificationType = "task_assigned"
	TypeTaskCompleted   NotificationType = "task_completed"
	TypeTaskUpdated     NotificationType = "task_updated"
	TypeTeamMemberAdded NotificationType = "team_member_added"
	TypeWelcome         NotificationType = "welcome"
	TypeGeneric         NotificationType = "generic"
)

// NotificationPriority controls badge colouring in the UI.
type NotificationPriority string

const (
	PriorityHigh   NotificationPriority = "high"
	PriorityMedium NotificationPriority = "medium"
	PriorityLow    NotificationPriority = "low"
)

// Notification represents one event surfaced to a user.
type Notification struct {
	// ID is the unique, stable identifier assigned by the backend.
	ID string `json:"id"`

	// UserID is the recipient of this notification.
	UserID string `json:"user_id"`

	// Type identifies the originating event kind.
	Type NotificationType `json:"type"`

	// Priority is one of high, medium, low.
	Priority NotificationPriority `json:"priority"`

	// Title is the short heading shown in the panel.
	Title string `json:"title"`

	// Message is the human-readable notification body.
	Message string `json:"message"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"read"`

	// ActionURL is an optional deep link into the product.
	ActionURL string `json:"action_url,omitempty"`

	// Metadata holds opaque event data attached by the producer.
	Metadata map[string]any `json:"notification_metadata,omitempty"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at"`
}

// NotificationDraft is the payload sent to the backend when creating
// a notification. The backend assigns ID, Read, and CreatedAt.
type NotificationDraft struct {
	UserID    string               `json:"user_id"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Type      NotificationType     `json:"type"`
	Priority  NotificationPriority `json:"priority"`
	ActionURL string               `json:"action_url,omitempty"`
	Metadata  map[string]any       `json:"notification_metadata,omitempty"`
}

// NotificationStats is the lightweight aggregate used to keep the
// unread badge fresh without transferring full notification bodies.
type NotificationStats struct {
	Unread int `json:"unread_notifications"`
}

// Member is an organization member who may appear as a task
// assignment target.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
