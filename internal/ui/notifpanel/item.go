package notifpanel

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agno/worksphere/internal/model"
	"github.com/agno/worksphere/internal/notify"
	"github.com/agno/worksphere/internal/theme"
)

// Icon returns the icon name for a notification type. The mapping is
// shared with the web client and must stay in sync with it.
func Icon(t model.NotificationType) string {
	switch t {
	case model.TypeProject, model.TypeProjectCreated:
		return "folder-plus"
	case model.TypeTaskAssigned:
		return "user-check"
	case model.TypeTaskCompleted:
		return "check-circle"
	case model.TypeTaskUpdated:
		return "edit"
	case model.TypeTeamMemberAdded:
		return "user-plus"
	case model.TypeWelcome:
		return "heart"
	default:
		return "bell"
	}
}

// glyph maps icon names to single-cell terminal symbols.
var glyphs = map[string]string{
	"folder-plus":  "▣",
	"user-check":   "◉",
	"check-circle": "✓",
	"edit":         "✎",
	"user-plus":    "+",
	"heart":        "♥",
	"bell":         "◆",
}

// NotificationItem wraps a model.Notification so it can be used in a
// bubbles/list.
type NotificationItem struct {
	Notification model.Notification
}

// FilterValue returns the string used for fuzzy filtering.
func (i NotificationItem) FilterValue() string {
	return i.Notification.Title + " " + i.Notification.Message
}

// Title returns the notification title for the list.
func (i NotificationItem) Title() string { return i.Notification.Title }

// Description returns a short summary line for the list.
func (i NotificationItem) Description() string {
	return i.Notification.Message
}

// ItemDelegate implements list.ItemDelegate for rendering notifications.
type ItemDelegate struct {
	// now supplies the reference time for relative ages; injected so
	// rendering is deterministic in tests.
	now func() time.Time
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single notification as two lines: an icon, title, and
// relative age, then the message body.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ni, ok := item.(NotificationItem)
	if !ok {
		return
	}

	n := ni.Notification
	now := time.Now()
	if d.now != nil {
		now = d.now()
	}

	glyph := glyphs[Icon(n.Type)]
	icon := theme.PriorityStyle(n.Priority).Render(glyph)

	title := n.Title
	if title == "" {
		title = string(n.Type)
	}
	if n.Read {
		title = theme.ReadTitleStyle.Render(title)
	} else {
		title = theme.UnreadTitleStyle.Render(title)
	}

	age := theme.TimestampStyle.Render(notify.TimeAgo(n.CreatedAt, now))
	head := fmt.Sprintf("%s %s %s", icon, title, age)

	message := n.Message
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		message = message[:idx]
	}

	line := theme.ListItemStyle
	body := theme.ListItemStyle.Foreground(theme.ColorGray)
	if index == m.Index() {
		line = theme.SelectedItemStyle
		body = theme.SelectedItemStyle.Bold(false)
	}

	fmt.Fprintf(w, "%s\n%s", line.Render(head), body.Render(message))
}
