// Package notify maintains a locally-cached, eventually-consistent view
// of a user's notifications, sourced from the WorkSphere backend, and
// broadcasts changes to subscribers. Every public operation is
// fail-soft: remote failures are converted into tagged results so
// callers can degrade gracefully instead of crashing.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/agno/worksphere/internal/api"
	"github.com/agno/worksphere/internal/model"
)

// Remote is the backend surface this layer consumes. *api.Client
// satisfies it; tests substitute a fake.
type Remote interface {
	ListNotifications(ctx context.Context, filters api.ListFilters) ([]model.Notification, error)
	CreateNotification(ctx context.Context, draft model.NotificationDraft) (*model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) (*model.Notification, error)
	MarkAllNotificationsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id string) error
	GetNotificationStats(ctx context.Context) (*model.NotificationStats, error)
}

// Status is the outcome of a fail-soft operation without a payload.
type Status struct {
	Success bool
	Err     error
}

// Result is the outcome of a fail-soft operation carrying a payload.
// On failure Data holds the zero (or empty) value and Err the cause.
type Result[T any] struct {
	Success bool
	Data    T
	Err     error
}

func ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func fail[T any](data T, err error) Result[T] {
	return Result[T]{Data: data, Err: err}
}

// Service wraps the remote collaborator with fail-soft semantics and
// the notification construction conventions shared with the web client.
type Service struct {
	remote Remote
}

// NewService creates a Service backed by the given remote.
func NewService(remote Remote) *Service {
	return &Service{remote: remote}
}

// List fetches the user's notifications. On failure the result carries
// an empty sequence and the error; it never panics.
func (s *Service) List(ctx context.Context, filters api.ListFilters) Result[[]model.Notification] {
	notifications, err := s.remote.ListNotifications(ctx, filters)
	if err != nil {
		return fail([]model.Notification{}, fmt.Errorf("fetching notifications: %w", err))
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	return ok(notifications)
}

// Create submits a notification draft to the backend.
func (s *Service) Create(ctx context.Context, draft model.NotificationDraft) Result[*model.Notification] {
	created, err := s.remote.CreateNotification(ctx, draft)
	if err != nil {
		return fail[*model.Notification](nil, fmt.Errorf("creating notification: %w", err))
	}
	return ok(created)
}

// MarkRead marks a single notification as read.
func (s *Service) MarkRead(ctx context.Context, id string) Result[*model.Notification] {
	updated, err := s.remote.MarkNotificationRead(ctx, id)
	if err != nil {
		return fail[*model.Notification](nil, fmt.Errorf("marking notification read: %w", err))
	}
	return ok(updated)
}

// MarkAllRead marks every notification as read.
func (s *Service) MarkAllRead(ctx context.Context) Status {
	if err := s.remote.MarkAllNotificationsRead(ctx); err != nil {
		return Status{Err: fmt.Errorf("marking all notifications read: %w", err)}
	}
	return Status{Success: true}
}

// Delete removes a notification permanently.
func (s *Service) Delete(ctx context.Context, id string) Status {
	if err := s.remote.DeleteNotification(ctx, id); err != nil {
		return Status{Err: fmt.Errorf("deleting notification: %w", err)}
	}
	return Status{Success: true}
}

// Stats fetches the aggregate unread count.
func (s *Service) Stats(ctx context.Context) Result[model.NotificationStats] {
	stats, err := s.remote.GetNotificationStats(ctx)
	if err != nil {
		return fail(model.NotificationStats{}, fmt.Errorf("getting notification stats: %w", err))
	}
	return ok(*stats)
}

// CheckFirstTimeUser reports whether the user has no notifications yet,
// used to gate onboarding flows. Errors resolve to false so a transient
// failure never re-triggers onboarding.
func (s *Service) CheckFirstTimeUser(ctx context.Context) bool {
	result := s.List(ctx, api.ListFilters{Limit: 1})
	if !result.Success {
		return false
	}
	return len(result.Data) == 0
}

// ProjectInfo identifies a project in notification constructors.
type ProjectInfo struct {
	ID   string
	Name string
}

// TaskInfo identifies a task in notification constructors.
type TaskInfo struct {
	ID    string
	Title string
}

// The constructors below fix the type, priority, and action URL for
// each domain event. The web client maps these to icons and colours,
// so the conventions must not drift.

// ProjectCreated notifies the creator that their project exists.
func (s *Service) ProjectCreated(ctx context.Context, project ProjectInfo, creatorID string) Result[*model.Notification] {
	return s.Create(ctx, model.NotificationDraft{
		UserID:    creatorID,
		Title:     "Project Created",
		Message:   fmt.Sprintf("Your project %q has been created successfully.", project.Name),
		Type:      model.TypeProjectCreated,
		Priority:  model.PriorityMedium,
		ActionURL: "/projects/" + project.ID,
		Metadata:  map[string]any{"projectId": project.ID},
	})
}

// TaskAssigned notifies the assignee of a new task.
func (s *Service) TaskAssigned(ctx context.Context, task TaskInfo, assigneeID, assignerID string) Result[*model.Notification] {
	return s.Create(ctx, model.NotificationDraft{
		UserID:    assigneeID,
		Title:     "Task Assigned",
		Message:   fmt.Sprintf("You have been assigned a new task: %q.", task.Title),
		Type:      model.TypeTaskAssigned,
		Priority:  model.PriorityHigh,
		ActionURL: "/tasks/" + task.ID,
		Metadata:  map[string]any{"taskId": task.ID, "assignerId": assignerID},
	})
}

// TaskCompleted notifies the project owner that a task is done.
func (s *Service) TaskCompleted(ctx context.Context, task TaskInfo, projectOwnerID string) Result[*model.Notification] {
	return s.Create(ctx, model.NotificationDraft{
		UserID:    projectOwnerID,
		Title:     "Task Completed",
		Message:   fmt.Sprintf("Task %q has been completed.", task.Title),
		Type:      model.TypeTaskCompleted,
		Priority:  model.PriorityMedium,
		ActionURL: "/tasks/" + task.ID,
		Metadata:  map[string]any{"taskId": task.ID},
	})
}

// TaskUpdated notifies the project owner that a task changed.
func (s *Service) TaskUpdated(ctx context.Context, task TaskInfo, projectOwnerID string) Result[*model.Notification] {
	return s.Create(ctx, model.NotificationDraft{
		UserID:    projectOwnerID,
		Title:     "Task Updated",
		Message:   fmt.Sprintf("Task %q has been updated.", task.Title),
		Type:      model.TypeTaskUpdated,
		Priority:  model.PriorityLow,
		ActionURL: "/tasks/" + task.ID,
		Metadata:  map[string]any{"taskId": task.ID},
	})
}

// TeamMemberAdded notifies the project owner of a new team member.
func (s *Service) TeamMemberAdded(ctx context.Context, member model.Member, projectID, projectOwnerID string) Result[*model.Notification] {
	return s.Create(ctx, model.NotificationDraft{
		UserID:    projectOwnerID,
		Title:     "Team Member Added",
		Message:   fmt.Sprintf("%s has been added to your project.", member.Name),
		Type:      model.TypeTeamMemberAdded,
		Priority:  model.PriorityMedium,
		ActionURL: "/projects/" + projectID + "/members",
		Metadata:  map[string]any{"projectId": projectID, "memberId": member.ID},
	})
}

// Welcome creates the onboarding notification for a new user.
func (s *Service) Welcome(ctx context.Context, userID, organizationID, organizationName string) Result[*model.Notification] {
	return s.Create(ctx, model.NotificationDraft{
		UserID:    userID,
		Title:     "Welcome to WorkSphere!",
		Message:   fmt.Sprintf("Welcome to %s! Start by exploring your dashboard and setting up your first project.", organizationName),
		Type:      model.TypeWelcome,
		Priority:  model.PriorityHigh,
		ActionURL: "/role-based-dashboard",
		Metadata:  map[string]any{"isWelcome": true, "organizationId": organizationID},
	})
}

// fetchTimeout is the maximum time allowed for a single remote call
// made from a background loop.
const fetchTimeout = 30 * time.Second
