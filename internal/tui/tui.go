// Package tui renders the loaded digest as a tabbed terminal view: one
// tab per category plus an "All Categories" tab.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"yfetch/internal/categorization"
	"yfetch/internal/core"
)

const allTab = "All Categories"

// model holds the digest and the selected tab.
type model struct {
	tabs      []string
	digest    map[core.Category][]core.DigestEntry
	activeTab int
	width     int
	height    int
	quitting  bool
}

// InitialModel builds the TUI model from a loaded digest. Tabs follow the
// fixed category order; empty categories get no tab.
func InitialModel(digest map[core.Category][]core.DigestEntry) model {
	tabs := []string{allTab}
	for _, category := range categorization.Categories() {
		if len(digest[category]) > 0 {
			tabs = append(tabs, string(category))
		}
	}
	return model{
		tabs:   tabs,
		digest: digest,
	}
}

// Init is the first command run; none is needed.
func (m model) Init() tea.Cmd {
	return nil
}

// Update handles key and resize messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "right", "l", "tab":
			if m.activeTab < len(m.tabs)-1 {
				m.activeTab++
			}
		case "left", "h", "shift+tab":
			if m.activeTab > 0 {
				m.activeTab--
			}
		}
	}

	return m, nil
}

// View renders the tab bar and the entries of the selected tab.
func (m model) View() string {
	if m.quitting {
		return "Quitting...\n"
	}

	docStyle := lipgloss.NewStyle().Margin(1, 2)
	activeStyle := lipgloss.NewStyle().Bold(true).Underline(true).Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().Faint(true).Padding(0, 1)
	titleStyle := lipgloss.NewStyle().Bold(true)
	badgeStyle := lipgloss.NewStyle().Faint(true)
	categoryStyle := lipgloss.NewStyle().Bold(true).Underline(true)

	var tabBar []string
	for i, tab := range m.tabs {
		if i == m.activeTab {
			tabBar = append(tabBar, activeStyle.Render(tab))
		} else {
			tabBar = append(tabBar, inactiveStyle.Render(tab))
		}
	}

	var body strings.Builder
	if m.tabs[m.activeTab] == allTab {
		for _, category := range categorization.Categories() {
			entries := m.digest[category]
			if len(entries) == 0 {
				continue
			}
			body.WriteString(categoryStyle.Render(string(category)) + "\n\n")
			writeEntries(&body, entries, titleStyle, badgeStyle)
		}
	} else {
		entries := m.digest[core.Category(m.tabs[m.activeTab])]
		writeEntries(&body, entries, titleStyle, badgeStyle)
	}
	if body.Len() == 0 {
		body.WriteString("No digests yet. Enable AI summaries for your posts to get started!\n")
	}

	help := "[←/→] Switch tab | [q] Quit"

	return docStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Top, tabBar...) + "\n\n" + body.String() + "\n" + help)
}

func writeEntries(out *strings.Builder, entries []core.DigestEntry, titleStyle, badgeStyle lipgloss.Style) {
	for _, entry := range entries {
		created := time.UnixMilli(entry.CreatedAt).Format("Jan 2, 2006")
		out.WriteString(titleStyle.Render(entry.Title))
		out.WriteString("  " + badgeStyle.Render(entry.Source) + "\n")
		out.WriteString(entry.Summary + "\n")
		out.WriteString(badgeStyle.Render(fmt.Sprintf("Created on %s · %s", created, entry.URL)) + "\n\n")
	}
}

// Start runs the tabbed digest viewer until the user quits.
func Start(digest map[core.Category][]core.DigestEntry) error {
	p := tea.NewProgram(InitialModel(digest), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
