// Package tui provides the interactive skill browser built on BubbleTea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/klauern/skillshelf/internal/bundle"
	"github.com/klauern/skillshelf/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	statusStyle = lipgloss.NewStyle().Faint(true)
)

// skillItem adapts a model.Skill to the bubbles list.
type skillItem struct {
	skill model.Skill
}

func (i skillItem) Title() string { return i.skill.Name }

func (i skillItem) Description() string {
	desc := i.skill.Description
	if desc == "" {
		desc = "(no description)"
	}
	if len(i.skill.References) > 0 {
		desc += fmt.Sprintf(" · %d reference(s)", len(i.skill.References))
	}
	return desc
}

func (i skillItem) FilterValue() string { return i.skill.Name + " " + i.skill.Description }

type browseKeyMap struct {
	View key.Binding
	Back key.Binding
	Quit key.Binding
}

func defaultBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		View: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter/v", "view"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b/esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type browsePhase int

const (
	phaseList browsePhase = iota
	phaseDetail
)

// BrowseModel is the BubbleTea model for browsing a bundle.
type BrowseModel struct {
	list     list.Model
	viewport viewport.Model
	keys     browseKeyMap
	phase    browsePhase
	detail   model.Skill
	width    int
	height   int
	ready    bool
	quitting bool
}

// NewBrowse creates the browser for a loaded bundle.
func NewBrowse(b *model.Bundle) BrowseModel {
	items := make([]list.Item, 0, b.Len())
	for _, s := range b.Skills {
		items = append(items, skillItem{skill: s})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf("Skills in %s", b.Root)
	l.Styles.Title = titleStyle

	return BrowseModel{
		list: l,
		keys: defaultBrowseKeyMap(),
	}
}

// Init implements tea.Model.
func (m BrowseModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-1)
		m.viewport = viewport.New(msg.Width, msg.Height-2)
		m.ready = true
		if m.phase == phaseDetail {
			m.viewport.SetContent(m.detailContent())
		}
		return m, nil

	case tea.KeyMsg:
		// Never swallow quit, even while the list is filtering.
		if key.Matches(msg, m.keys.Quit) && !m.list.SettingFilter() {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.phase {
		case phaseList:
			if key.Matches(msg, m.keys.View) && !m.list.SettingFilter() {
				if item, ok := m.list.SelectedItem().(skillItem); ok {
					m.phase = phaseDetail
					m.detail = item.skill
					if m.ready {
						m.viewport.SetContent(m.detailContent())
						m.viewport.GotoTop()
					}
					return m, nil
				}
			}
		case phaseDetail:
			if key.Matches(msg, m.keys.Back) {
				m.phase = phaseList
				return m, nil
			}
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m BrowseModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return statusStyle.Render("loading...")
	}

	if m.phase == phaseDetail {
		header := titleStyle.Render(m.detail.Name)
		footer := statusStyle.Render("b/esc back · q quit")
		return header + "\n" + m.viewport.View() + "\n" + footer
	}
	return m.list.View() + "\n" + statusStyle.Render("enter view · / filter · q quit")
}

// detailContent renders the skill body plus its reference listing.
func (m BrowseModel) detailContent() string {
	var sb strings.Builder
	if m.detail.Description != "" {
		sb.WriteString(statusStyle.Render(m.detail.Description))
		sb.WriteString("\n\n")
	}
	sb.WriteString(m.detail.Body)

	if len(m.detail.References) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(titleStyle.Render("References"))
		sb.WriteString("\n")
		for _, ref := range m.detail.References {
			sb.WriteString("  " + ref.Path + "\n")
		}
	}
	return sb.String()
}

// Browse runs the interactive browser for a bundle root.
func Browse(root string) error {
	b, err := bundle.Load(root)
	if err != nil {
		return err
	}
	if b.Len() == 0 {
		return fmt.Errorf("no skills found under %q", b.Root)
	}

	_, err = tea.NewProgram(NewBrowse(b), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
