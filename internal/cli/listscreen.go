package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/shelfr/internal/controller"
	"github.com/inovacc/shelfr/internal/model"
)

const toastLifetime = 3 * time.Second

type listMode int

const (
	listBrowsing listMode = iota
	listSearching
	listEditing
	listConfirmingDelete
)

type listKeyMap struct {
	Search    key.Binding
	Clear     key.Binding
	Refresh   key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	Toggle    key.Binding
	SelectAll key.Binding
	Deselect  key.Binding
	Edit      key.Binding
	Open      key.Binding
	New       key.Binding
	Delete    key.Binding
	Back      key.Binding
	Help      key.Binding
}

func newListKeyMap() listKeyMap {
	return listKeyMap{
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear search")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		NextPage:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next page")),
		PrevPage:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev page")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select row")),
		SelectAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select page")),
		Deselect:  key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "clear selection")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit row")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open form")),
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete selected")),
		Back:      key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "back")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Toggle, k.Edit, k.New, k.Delete, k.Back, k.Help}
}

func (k listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Clear, k.Refresh},
		{k.NextPage, k.PrevPage},
		{k.Toggle, k.SelectAll, k.Deselect},
		{k.Edit, k.Open, k.New, k.Delete},
		{k.Back, k.Help},
	}
}

// ListModel is the generic list screen: a paginated table over one
// collection with search, checkbox selection, inline row editing, and a
// confirm-gated bulk delete. All state transitions happen in the
// controller; this model only renders and translates key presses.
type ListModel[E model.Entity] struct {
	ctrl   *controller.ListController[E]
	spec   ListSpec[E]
	entity string
	ctx    context.Context

	table  table.Model
	search textinput.Model
	spin   spinner.Model
	keys   listKeyMap
	help   help.Model

	mode listMode

	// Inline edit state: one input per editable column of the row.
	editRowID  string
	editFields []model.Field
	editInputs []textinput.Model
	editFocus  int

	toast *toastState

	width  int
	height int
}

type toastState struct {
	text string
	at   time.Time
}

// NewListModel builds the list screen for one entity.
func NewListModel[E model.Entity](ctx context.Context, entity string, ctrl *controller.ListController[E], spec ListSpec[E]) *ListModel[E] {
	columns := make([]table.Column, 0, len(spec.Columns)+1)
	columns = append(columns, table.Column{Title: " ", Width: 3})

	for _, col := range spec.Columns {
		columns = append(columns, table.Column{Title: col.Title, Width: col.Width})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(ctrl.PageSize()+1),
	)

	search := textinput.New()
	search.Placeholder = spec.SearchPrompt
	search.CharLimit = 100
	search.Width = 40

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &ListModel[E]{
		ctrl:   ctrl,
		spec:   spec,
		entity: entity,
		ctx:    ctx,
		table:  t,
		search: search,
		spin:   spin,
		keys:   newListKeyMap(),
		help:   help.New(),
	}
}

func (m *ListModel[E]) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.runEffect(m.ctrl.Refresh()))
}

func (m *ListModel[E]) runEffect(eff controller.Effect) tea.Cmd {
	if eff == nil {
		return nil
	}

	ctx := m.ctx

	return func() tea.Msg {
		return eff(ctx)
	}
}

func (m *ListModel[E]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Controller results first: refresh pages, edit and delete outcomes.
	if followUp, handled := m.ctrl.Apply(msg); handled {
		m.syncTable()

		return m, m.runEffect(followUp)
	}

	switch msg := msg.(type) {
	case ToastMsg:
		m.toast = &toastState{text: renderToast(msg.Event), at: time.Now()}

		return m, tea.Tick(toastLifetime, func(time.Time) tea.Msg { return toastExpiredMsg{} })

	case toastExpiredMsg:
		if m.toast != nil && time.Since(m.toast.at) >= toastLifetime {
			m.toast = nil
		}

		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Loading() {
			return m, nil
		}

		var cmd tea.Cmd

		m.spin, cmd = m.spin.Update(msg)

		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case listSearching:
			return m.updateSearching(msg)
		case listEditing:
			return m.updateEditing(msg)
		case listConfirmingDelete:
			return m.updateConfirming(msg)
		default:
			return m.updateBrowsing(msg)
		}
	}

	return m, nil
}

func (m *ListModel[E]) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.ctrl.Close()

		return m, func() tea.Msg { return backToMenuMsg{} }

	case key.Matches(msg, m.keys.Search):
		m.mode = listSearching
		m.search.SetValue(m.ctrl.Query())
		m.search.Focus()

		return m, textinput.Blink

	case key.Matches(msg, m.keys.Clear):
		m.search.Reset()

		return m, tea.Batch(m.spin.Tick, m.runEffect(m.ctrl.ClearQuery()))

	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(m.spin.Tick, m.runEffect(m.ctrl.Refresh()))

	case key.Matches(msg, m.keys.NextPage):
		if m.ctrl.Page()+1 < m.ctrl.TotalPages() {
			return m, tea.Batch(m.spin.Tick, m.runEffect(m.ctrl.SetPage(m.ctrl.Page()+1)))
		}

		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		if m.ctrl.Page() > 0 {
			return m, tea.Batch(m.spin.Tick, m.runEffect(m.ctrl.SetPage(m.ctrl.Page()-1)))
		}

		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if id, ok := m.cursorID(); ok {
			m.ctrl.ToggleSelection(id)
			m.syncTable()
		}

		return m, nil

	case key.Matches(msg, m.keys.SelectAll):
		m.ctrl.SelectAllOnPage()
		m.syncTable()

		return m, nil

	case key.Matches(msg, m.keys.Deselect):
		m.ctrl.ClearSelection()
		m.syncTable()

		return m, nil

	case key.Matches(msg, m.keys.Edit):
		return m.startInlineEdit()

	case key.Matches(msg, m.keys.Open):
		if id, ok := m.cursorID(); ok {
			m.ctrl.Close()

			return m, func() tea.Msg { return openFormMsg{entity: m.entity, id: id} }
		}

		return m, nil

	case key.Matches(msg, m.keys.New):
		m.ctrl.Close()

		return m, func() tea.Msg { return openFormMsg{entity: m.entity} }

	case key.Matches(msg, m.keys.Delete):
		if m.ctrl.SelectedCount() == 0 {
			return m, nil
		}

		m.mode = listConfirmingDelete

		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

		return m, nil
	}

	var cmd tea.Cmd

	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *ListModel[E]) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = listBrowsing
		m.search.Blur()
		m.ctrl.SetQuery(strings.TrimSpace(m.search.Value()))

		return m, tea.Batch(m.spin.Tick, m.runEffect(m.ctrl.SetPage(0)))

	case "esc":
		m.mode = listBrowsing
		m.search.Blur()
		m.search.SetValue(m.ctrl.Query())

		return m, nil
	}

	var cmd tea.Cmd

	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m *ListModel[E]) startInlineEdit() (tea.Model, tea.Cmd) {
	id, ok := m.cursorID()
	if !ok {
		return m, nil
	}

	row, ok := m.ctrl.Row(id)
	if !ok {
		return m, nil
	}

	values := m.ctrl.Schema().Values(row)

	m.editRowID = id
	m.editFields = nil
	m.editInputs = nil

	for _, col := range m.spec.Columns {
		if col.Field == "" {
			continue
		}

		field, ok := m.ctrl.Schema().Field(col.Field)
		if !ok {
			continue
		}

		input := textinput.New()
		input.Placeholder = field.Label
		input.SetValue(values[field.Name])
		input.CharLimit = 200
		input.Width = 30

		m.editFields = append(m.editFields, field)
		m.editInputs = append(m.editInputs, input)
	}

	if len(m.editInputs) == 0 {
		return m, nil
	}

	m.mode = listEditing
	m.editFocus = 0
	m.editInputs[0].Focus()

	return m, textinput.Blink
}

func (m *ListModel[E]) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = listBrowsing
		m.editInputs = nil
		m.editFields = nil

		return m, nil

	case "tab", "shift+tab":
		m.editInputs[m.editFocus].Blur()

		if msg.String() == "tab" {
			m.editFocus = (m.editFocus + 1) % len(m.editInputs)
		} else {
			m.editFocus = (m.editFocus - 1 + len(m.editInputs)) % len(m.editInputs)
		}

		m.editInputs[m.editFocus].Focus()

		return m, textinput.Blink

	case "enter":
		return m.commitInlineEdit()
	}

	var cmd tea.Cmd

	m.editInputs[m.editFocus], cmd = m.editInputs[m.editFocus].Update(msg)

	return m, cmd
}

func (m *ListModel[E]) commitInlineEdit() (tea.Model, tea.Cmd) {
	row, ok := m.ctrl.Row(m.editRowID)
	if !ok {
		m.mode = listBrowsing
		return m, nil
	}

	original := m.ctrl.Schema().Values(row)
	changed := make(map[string]any)

	for i, field := range m.editFields {
		value := strings.TrimSpace(m.editInputs[i].Value())
		if value != original[field.Name] {
			changed[field.Name] = value
		}
	}

	id := m.editRowID
	m.mode = listBrowsing
	m.editInputs = nil
	m.editFields = nil

	if len(changed) == 0 {
		return m, nil
	}

	eff, err := m.ctrl.CommitRowEdit(id, changed)
	if err != nil {
		m.toast = &toastState{text: errorStyle.Render("Error") + " " + err.Error(), at: time.Now()}

		return m, tea.Tick(toastLifetime, func(time.Time) tea.Msg { return toastExpiredMsg{} })
	}

	return m, tea.Batch(m.spin.Tick, m.runEffect(eff))
}

func (m *ListModel[E]) updateConfirming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = listBrowsing

	switch msg.String() {
	case "y", "Y":
		eff, err := m.ctrl.BulkDelete()
		if err != nil {
			return m, nil
		}

		return m, tea.Batch(m.spin.Tick, m.runEffect(eff))
	}

	return m, nil
}

func (m *ListModel[E]) cursorID() (string, bool) {
	rows := m.ctrl.Rows()

	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(rows) {
		return "", false
	}

	return rows[cursor].EntityID(), true
}

func (m *ListModel[E]) syncTable() {
	rows := m.ctrl.Rows()
	tableRows := make([]table.Row, len(rows))

	for i, row := range rows {
		cells := make([]string, 0, len(m.spec.Columns)+1)

		marker := "[ ]"
		if m.ctrl.IsSelected(row.EntityID()) {
			marker = selectedStyle.Render("[x]")
		}

		cells = append(cells, marker)

		for _, col := range m.spec.Columns {
			cells = append(cells, col.Value(row))
		}

		tableRows[i] = cells
	}

	m.table.SetRows(tableRows)

	if m.table.Cursor() >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m *ListModel[E]) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(m.spec.Title))

	if m.ctrl.Loading() {
		sb.WriteString("  " + m.spin.View())
	}

	sb.WriteString("\n\n")

	if m.mode == listSearching {
		sb.WriteString(m.search.View() + "\n\n")
	} else if q := m.ctrl.Query(); q != "" {
		sb.WriteString(subtleStyle.Render("filter: "+q) + "\n\n")
	}

	sb.WriteString(m.table.View() + "\n")

	sb.WriteString(subtleStyle.Render(fmt.Sprintf("page %d/%d · %d total · %d selected",
		m.ctrl.Page()+1, m.ctrl.TotalPages(), m.ctrl.TotalCount(), m.ctrl.SelectedCount())))
	sb.WriteString("\n")

	switch m.mode {
	case listEditing:
		sb.WriteString("\n" + titleStyle.Render("Edit row") + "  " +
			subtleStyle.Render("tab: next field · enter: save · esc: cancel") + "\n")

		for i, field := range m.editFields {
			label := field.Label
			if i == m.editFocus {
				label = titleStyle.Render(field.Label)
			}

			sb.WriteString(fmt.Sprintf("%s %s\n", label, m.editInputs[i].View()))
		}

	case listConfirmingDelete:
		sb.WriteString("\n" + confirmStyle.Render(fmt.Sprintf(
			"Are you sure you want to delete %d record(s)? [y/N]", m.ctrl.SelectedCount())) + "\n")
	}

	if m.toast != nil {
		sb.WriteString("\n" + m.toast.text + "\n")
	}

	sb.WriteString("\n" + m.help.View(m.keys))

	return docStyle.Render(sb.String())
}
