package notifpanel

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agno/worksphere/internal/keys"
	"github.com/agno/worksphere/internal/model"
	"github.com/agno/worksphere/internal/notify"
	"github.com/agno/worksphere/internal/theme"
)

// NotificationsMsg carries a fresh notification snapshot into the panel.
type NotificationsMsg struct {
	Notifications []model.Notification
}

// BadgeMsg carries an updated unread count for the badge.
type BadgeMsg struct {
	Count int
}

// StatusMsg sets a transient status line at the bottom of the panel.
type StatusMsg struct {
	Text string
}

// opTimeout bounds notification actions triggered from keypresses.
const opTimeout = 10 * time.Second

// Model is the notification panel view component.
type Model struct {
	list       list.Model
	manager    *notify.Manager
	keys       *keys.KeyMap
	unreadOnly bool
	badge      int
	status     string
	width      int
	height     int
}

// New creates a notification panel bound to the given manager.
func New(manager *notify.Manager, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Notifications"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:    l,
		manager: manager,
		keys:    k,
		width:   width,
		height:  height,
	}
}

// Init performs the immediate on-mount fetch.
func (m Model) Init() tea.Cmd {
	return m.refreshCmd()
}

// Update handles messages for the notification panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case NotificationsMsg:
		m.badge = unreadCount(msg.Notifications)
		cmd := m.setItems(msg.Notifications)
		return m, cmd

	case BadgeMsg:
		m.badge = msg.Count
		return m, nil

	case StatusMsg:
		m.status = msg.Text
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		m.status = "Refreshing..."
		return m, m.refreshCmd()

	case key.Matches(msg, m.keys.MarkRead):
		if n, ok := m.selected(); ok && !n.Read {
			return m, m.markReadCmd(n.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.MarkAllRead):
		return m, m.markAllReadCmd()

	case key.Matches(msg, m.keys.Delete):
		if n, ok := m.selected(); ok {
			return m, m.deleteCmd(n.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleUnread):
		m.unreadOnly = !m.unreadOnly
		return m, m.setItems(m.manager.Notifications())
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the panel: list, then a status bar with the badge.
func (m Model) View() string {
	badge := ""
	if m.badge > 0 {
		label := fmt.Sprintf("%d", m.badge)
		if m.badge > 9 {
			label = "9+"
		}
		badge = theme.BadgeStyle.Render(label)
	}

	status := m.status
	if status == "" {
		if len(m.list.Items()) == 0 {
			status = "No notifications yet"
		} else {
			status = fmt.Sprintf("%d unread", m.badge)
		}
	}

	bar := lipgloss.JoinHorizontal(
		lipgloss.Top,
		theme.StatusBarStyle.Render(status),
		" ",
		badge,
	)

	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), bar)
}

// Badge returns the current unread badge count.
func (m Model) Badge() int { return m.badge }

// selected returns the notification under the cursor.
func (m Model) selected() (model.Notification, bool) {
	item, ok := m.list.SelectedItem().(NotificationItem)
	if !ok {
		return model.Notification{}, false
	}
	return item.Notification, true
}

// setItems replaces the list contents, applying the unread-only filter.
func (m *Model) setItems(notifications []model.Notification) tea.Cmd {
	items := make([]list.Item, 0, len(notifications))
	for _, n := range notifications {
		if m.unreadOnly && n.Read {
			continue
		}
		items = append(items, NotificationItem{Notification: n})
	}
	return m.list.SetItems(items)
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		result := m.manager.Refresh(ctx)
		if !result.Success {
			return StatusMsg{Text: "Refresh failed; showing cached notifications"}
		}
		return NotificationsMsg{Notifications: result.Data}
	}
}

func (m Model) markReadCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		if status := m.manager.MarkRead(ctx, id); !status.Success {
			return StatusMsg{Text: "Could not mark notification read"}
		}
		return NotificationsMsg{Notifications: m.manager.Notifications()}
	}
}

func (m Model) markAllReadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		if status := m.manager.MarkAllRead(ctx); !status.Success {
			return StatusMsg{Text: "Could not mark all notifications read"}
		}
		return NotificationsMsg{Notifications: m.manager.Notifications()}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		if status := m.manager.Delete(ctx, id); !status.Success {
			return StatusMsg{Text: "Could not delete notification"}
		}
		return NotificationsMsg{Notifications: m.manager.Notifications()}
	}
}

func unreadCount(notifications []model.Notification) int {
	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count
}
