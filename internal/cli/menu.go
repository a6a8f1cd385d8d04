package cli

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type menuItem struct {
	name   string
	desc   string
	entity string
}

func (i menuItem) Title() string       { return i.name }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.name }

// MenuModel is the entry screen: pick an entity collection to manage.
type MenuModel struct {
	list list.Model
}

// NewMenu creates the main menu.
func NewMenu() *MenuModel {
	items := []list.Item{
		menuItem{name: "Authors", desc: "Manage book authors", entity: entityAuthors},
		menuItem{name: "Books", desc: "Manage the book catalog", entity: entityBooks},
		menuItem{name: "Members", desc: "Manage library members", entity: entityMembers},
		menuItem{name: "Borrowed", desc: "Manage borrow records", entity: entityBorrowed},
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "shelfr — Library Console"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return &MenuModel{list: l}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "enter":
			if item, ok := m.list.SelectedItem().(menuItem); ok {
				entity := item.entity

				return m, func() tea.Msg { return openListMsg{entity: entity} }
			}
		}
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m *MenuModel) View() string {
	return docStyle.Render(m.list.View())
}
