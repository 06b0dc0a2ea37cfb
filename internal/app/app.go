// Package app wires the notification manager to the terminal UI and
// owns the Bubble Tea program lifecycle.
package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agno/worksphere/internal/keys"
	"github.com/agno/worksphere/internal/model"
	"github.com/agno/worksphere/internal/notify"
	"github.com/agno/worksphere/internal/theme"
	"github.com/agno/worksphere/internal/ui/notifpanel"
)

// defaultWidth and defaultHeight are used until the first
// WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// App is the root Bubble Tea model.
type App struct {
	panel  notifpanel.Model
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates the root model over an existing manager.
func New(manager *notify.Manager, k *keys.KeyMap) App {
	return App{
		panel: notifpanel.New(manager, k, defaultWidth, defaultHeight-1),
		keys:  k,
	}
}

// Init starts the panel's initial fetch.
func (a App) Init() tea.Cmd {
	return a.panel.Init()
}

// Update routes messages to the panel and handles global keys.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		var cmd tea.Cmd
		a.panel, cmd = a.panel.Update(tea.WindowSizeMsg{
			Width:  msg.Width,
			Height: msg.Height - 1,
		})
		return a, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	a.panel, cmd = a.panel.Update(msg)
	return a, cmd
}

// View renders the title bar and the panel.
func (a App) View() string {
	title := theme.HeaderStyle.Render("WorkSphere")
	return lipgloss.JoinVertical(lipgloss.Left, title, a.panel.View())
}

// Run builds the program, bridges manager updates into Bubble Tea
// messages, starts real-time polling, and blocks until the user quits.
// Polling and all listeners are torn down before returning.
func Run(manager *notify.Manager) error {
	k := keys.DefaultKeyMap()
	p := tea.NewProgram(New(manager, k), tea.WithAltScreen())

	removeListener := manager.AddListener(func(ns []model.Notification) {
		p.Send(notifpanel.NotificationsMsg{Notifications: ns})
	})
	defer removeListener()

	removeBadge := manager.AddBadgeListener(func(count int) {
		p.Send(notifpanel.BadgeMsg{Count: count})
	})
	defer removeBadge()

	manager.StartRealTime()
	defer manager.StopRealTime()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
