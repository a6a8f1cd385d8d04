// Package cli holds the Bubble Tea screens of the interactive console:
// the entity menu, the generic list screen, and the generic form screen.
// Screens render and translate keys; all list/form semantics live in the
// controller package.
package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/shelfr/internal/controller"
	"github.com/inovacc/shelfr/internal/model"
	"github.com/inovacc/shelfr/internal/notify"
	"github.com/inovacc/shelfr/internal/store"
)

const (
	entityAuthors  = "authors"
	entityBooks    = "books"
	entityMembers  = "members"
	entityBorrowed = "borrowed"
)

// Deps wires the console screens to the record store. Each screen builds
// its own controller instance; nothing is shared or cached between
// screens, so every transition re-fetches from the store.
type Deps struct {
	Ctx      context.Context
	Cfg      model.Config
	Notifier *notify.Dispatcher

	Authors *store.Resource[model.Author]
	Books   *store.Resource[model.Book]
	Members *store.Resource[model.Member]
	Borrows *store.Resource[model.BorrowRecord]
}

// AppModel is the top-level program: the menu plus the active screen,
// with the list → form → list navigation handoffs.
type AppModel struct {
	deps   Deps
	menu   *MenuModel
	active tea.Model
	entity string
}

// NewApp creates the console application model.
func NewApp(deps Deps) *AppModel {
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}

	return &AppModel{
		deps: deps,
		menu: NewMenu(),
	}
}

func (m *AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case openListMsg:
		m.entity = msg.entity
		m.active = m.newList(msg.entity)

		return m, m.active.Init()

	case openFormMsg:
		m.entity = msg.entity
		m.active = m.newForm(msg.entity, msg.id)

		return m, m.active.Init()

	case backToListMsg:
		m.active = m.newList(m.entity)

		return m, m.active.Init()

	case backToMenuMsg:
		m.active = nil

		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	if m.active != nil {
		var cmd tea.Cmd

		m.active, cmd = m.active.Update(msg)

		return m, cmd
	}

	updated, cmd := m.menu.Update(msg)
	if menu, ok := updated.(*MenuModel); ok {
		m.menu = menu
	}

	return m, cmd
}

func (m *AppModel) View() string {
	if m.active != nil {
		return m.active.View()
	}

	return m.menu.View()
}

func (m *AppModel) newList(entity string) tea.Model {
	switch entity {
	case entityBooks:
		ctrl := controller.NewListController(m.deps.Books, model.BookSchema(), m.deps.Notifier, m.deps.Cfg.PageSize)

		return NewListModel(m.deps.Ctx, entity, ctrl, bookListSpec())

	case entityMembers:
		ctrl := controller.NewListController(m.deps.Members, model.MemberSchema(), m.deps.Notifier, m.deps.Cfg.PageSize)

		return NewListModel(m.deps.Ctx, entity, ctrl, memberListSpec())

	case entityBorrowed:
		ctrl := controller.NewListController(m.deps.Borrows, model.BorrowSchema(), m.deps.Notifier, m.deps.Cfg.PageSize)

		return NewListModel(m.deps.Ctx, entity, ctrl, borrowListSpec())

	default:
		ctrl := controller.NewListController(m.deps.Authors, model.AuthorSchema(), m.deps.Notifier, m.deps.Cfg.PageSize)

		return NewListModel(m.deps.Ctx, entity, ctrl, authorListSpec())
	}
}

func (m *AppModel) newForm(entity, id string) tea.Model {
	switch entity {
	case entityBooks:
		ctrl := newFormController(m.deps.Books, model.BookSchema(), m.deps.Notifier, id)
		loaders := map[string]OptionLoader{
			"authorId": loadOptions(m.deps.Authors, func(a model.Author) string { return a.Name }),
		}

		return NewFormModel(m.deps.Ctx, entity, ctrl, loaders)

	case entityMembers:
		ctrl := newFormController(m.deps.Members, model.MemberSchema(), m.deps.Notifier, id)

		return NewFormModel(m.deps.Ctx, entity, ctrl, nil)

	case entityBorrowed:
		ctrl := newFormController(m.deps.Borrows, model.BorrowSchema(), m.deps.Notifier, id)
		loaders := map[string]OptionLoader{
			"bookId":   loadOptions(m.deps.Books, func(b model.Book) string { return b.Title }),
			"memberId": loadOptions(m.deps.Members, func(mm model.Member) string { return mm.Name }),
		}

		return NewFormModel(m.deps.Ctx, entity, ctrl, loaders)

	default:
		ctrl := newFormController(m.deps.Authors, model.AuthorSchema(), m.deps.Notifier, id)

		return NewFormModel(m.deps.Ctx, entity, ctrl, nil)
	}
}

func newFormController[E model.Entity](res *store.Resource[E], schema model.Schema[E], notifier *notify.Dispatcher, id string) *controller.FormController[E] {
	if id == "" {
		return controller.NewCreateForm[E](res, schema, notifier)
	}

	return controller.NewEditForm[E](res, schema, notifier, id)
}
