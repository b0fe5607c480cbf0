package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/klauern/skillshelf/internal/model"
)

func testModel() BrowseModel {
	return NewBrowse(&model.Bundle{
		Root: "/bundles",
		Skills: []model.Skill{
			{
				Name:        "laravel-12",
				Description: "Laravel 12 backend conventions",
				Body:        "# Laravel 12\n\nBody text.",
				References: []model.ReferenceFile{
					{Path: "references/eloquent.md"},
				},
			},
			{Name: "tailwind-v4", Description: "Tailwind CSS v4 styling"},
		},
	})
}

func sized(m BrowseModel) BrowseModel {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(BrowseModel)
}

func TestNewBrowse(t *testing.T) {
	m := testModel()
	if len(m.list.Items()) != 2 {
		t.Fatalf("items = %d, want 2", len(m.list.Items()))
	}
	item, ok := m.list.Items()[0].(skillItem)
	if !ok {
		t.Fatal("item is not a skillItem")
	}
	if item.Title() != "laravel-12" {
		t.Errorf("Title() = %q", item.Title())
	}
	if !strings.Contains(item.Description(), "1 reference(s)") {
		t.Errorf("Description() = %q, want reference count", item.Description())
	}
}

func TestBrowse_ViewBeforeSize(t *testing.T) {
	m := testModel()
	if !strings.Contains(m.View(), "loading") {
		t.Errorf("pre-size view = %q", m.View())
	}
}

func TestBrowse_EnterShowsDetail(t *testing.T) {
	m := sized(testModel())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(BrowseModel)

	if m.phase != phaseDetail {
		t.Fatalf("phase = %v, want detail", m.phase)
	}
	view := m.View()
	if !strings.Contains(view, "laravel-12") {
		t.Errorf("detail view missing skill name:\n%s", view)
	}

	// Back returns to the list.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}})
	m = next.(BrowseModel)
	if m.phase != phaseList {
		t.Errorf("phase = %v, want list after back", m.phase)
	}
}

func TestBrowse_QuitFromAnyPhase(t *testing.T) {
	m := sized(testModel())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(BrowseModel)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.View() != "" {
		t.Errorf("quitting view = %q, want empty", m.View())
	}
}

func TestDetailContent_ListsReferences(t *testing.T) {
	m := sized(testModel())
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(BrowseModel)

	content := m.detailContent()
	if !strings.Contains(content, "references/eloquent.md") {
		t.Errorf("detail content missing references:\n%s", content)
	}
	if !strings.Contains(content, "Body text.") {
		t.Errorf("detail content missing body:\n%s", content)
	}
}
