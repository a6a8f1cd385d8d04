package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/shelfr/internal/controller"
	"github.com/inovacc/shelfr/internal/model"
)

// FormModel is the generic create/edit screen: one input per schema
// field, reference fields rendered as option pickers fed from their
// collections, and per-field validation errors under the inputs.
type FormModel[E model.Entity] struct {
	ctrl   *controller.FormController[E]
	entity string
	ctx    context.Context

	inputs []textinput.Model
	focus  int

	// Reference pickers, keyed by field name. A field without loaded
	// options falls back to its raw id input.
	refLoaders map[string]OptionLoader
	refOptions map[string][]Option
	refIndex   map[string]int

	spin  spinner.Model
	toast *toastState
}

// NewFormModel builds the form screen for one entity. refLoaders feeds
// the pickers of FieldRef fields; entries are optional.
func NewFormModel[E model.Entity](ctx context.Context, entity string, ctrl *controller.FormController[E], refLoaders map[string]OptionLoader) *FormModel[E] {
	schema := ctrl.Schema()
	inputs := make([]textinput.Model, len(schema.Fields))

	for i, field := range schema.Fields {
		input := textinput.New()
		input.Placeholder = field.Label
		input.CharLimit = 300
		input.Width = 48

		if field.Kind == model.FieldDate {
			input.Placeholder = "YYYY-MM-DD"
			input.CharLimit = 10
			input.Width = 16
		}

		if i == 0 {
			input.Focus()
		}

		inputs[i] = input
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &FormModel[E]{
		ctrl:       ctrl,
		entity:     entity,
		ctx:        ctx,
		inputs:     inputs,
		refLoaders: refLoaders,
		refOptions: make(map[string][]Option),
		refIndex:   make(map[string]int),
		spin:       spin,
	}
}

func (m *FormModel[E]) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.runEffect(m.ctrl.Load())}

	if m.ctrl.Loading() {
		cmds = append(cmds, m.spin.Tick)
	}

	for name, loader := range m.refLoaders {
		cmds = append(cmds, m.loadRefOptions(name, loader))
	}

	return tea.Batch(cmds...)
}

func (m *FormModel[E]) runEffect(eff controller.Effect) tea.Cmd {
	if eff == nil {
		return nil
	}

	ctx := m.ctx

	return func() tea.Msg {
		return eff(ctx)
	}
}

func (m *FormModel[E]) loadRefOptions(field string, loader OptionLoader) tea.Cmd {
	ctx := m.ctx

	return func() tea.Msg {
		options, err := loader(ctx)

		return refOptionsMsg{field: field, options: options, err: err}
	}
}

func (m *FormModel[E]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.ctrl.Apply(msg) {
		if m.ctrl.Done() || m.ctrl.NotFound() {
			m.ctrl.Close()

			return m, func() tea.Msg { return backToListMsg{} }
		}

		m.syncInputs()

		return m, nil
	}

	switch msg := msg.(type) {
	case refOptionsMsg:
		if msg.err == nil {
			m.refOptions[msg.field] = msg.options
			m.alignRefIndex(msg.field)
		}

		return m, nil

	case ToastMsg:
		m.toast = &toastState{text: renderToast(msg.Event), at: time.Now()}

		return m, tea.Tick(toastLifetime, func(time.Time) tea.Msg { return toastExpiredMsg{} })

	case toastExpiredMsg:
		if m.toast != nil && time.Since(m.toast.at) >= toastLifetime {
			m.toast = nil
		}

		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Loading() && !m.ctrl.Submitting() {
			return m, nil
		}

		var cmd tea.Cmd

		m.spin, cmd = m.spin.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *FormModel[E]) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	schema := m.ctrl.Schema()

	switch msg.String() {
	case "esc":
		m.ctrl.Close()

		return m, func() tea.Msg { return backToListMsg{} }

	case "tab", "down":
		return m.moveFocus(1)

	case "shift+tab", "up":
		return m.moveFocus(-1)

	case "ctrl+s":
		return m.submit()

	case "enter":
		if m.focus == len(m.inputs)-1 {
			return m.submit()
		}

		return m.moveFocus(1)

	case "left", "right":
		field := schema.Fields[m.focus]

		options := m.refOptions[field.Name]
		if field.Kind == model.FieldRef && len(options) > 0 {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}

			idx := (m.refIndex[field.Name] + delta + len(options)) % len(options)
			m.refIndex[field.Name] = idx
			m.ctrl.SetField(field.Name, options[idx].ID)

			return m, nil
		}
	}

	field := schema.Fields[m.focus]

	if field.Kind == model.FieldRef && len(m.refOptions[field.Name]) > 0 {
		// Picker fields ignore free typing.
		return m, nil
	}

	var cmd tea.Cmd

	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.ctrl.SetField(field.Name, m.inputs[m.focus].Value())

	return m, cmd
}

func (m *FormModel[E]) moveFocus(delta int) (tea.Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()

	return m, textinput.Blink
}

func (m *FormModel[E]) submit() (tea.Model, tea.Cmd) {
	// Push the current input values before validating.
	for i, field := range m.ctrl.Schema().Fields {
		if field.Kind == model.FieldRef && len(m.refOptions[field.Name]) > 0 {
			continue
		}

		m.ctrl.SetField(field.Name, m.inputs[i].Value())
	}

	eff := m.ctrl.Submit()
	if eff == nil {
		return m, nil
	}

	return m, tea.Batch(m.spin.Tick, m.runEffect(eff))
}

// syncInputs pulls controller field values back into the inputs after a
// record load.
func (m *FormModel[E]) syncInputs() {
	for i, field := range m.ctrl.Schema().Fields {
		m.inputs[i].SetValue(m.ctrl.Field(field.Name))
		m.alignRefIndex(field.Name)
	}
}

// alignRefIndex points a picker at the option matching the current field
// value, e.g. after loading an existing record.
func (m *FormModel[E]) alignRefIndex(name string) {
	options, ok := m.refOptions[name]
	if !ok {
		return
	}

	value := m.ctrl.Field(name)

	for i, option := range options {
		if option.ID == value {
			m.refIndex[name] = i
			return
		}
	}

	if value == "" && len(options) > 0 {
		m.refIndex[name] = 0
	}
}

func (m *FormModel[E]) View() string {
	var sb strings.Builder

	schema := m.ctrl.Schema()

	title := "Add " + strings.Title(schema.Singular) //nolint:staticcheck // entity names are plain ASCII
	if m.ctrl.Mode() == controller.ModeEdit {
		title = "Edit " + strings.Title(schema.Singular) //nolint:staticcheck // entity names are plain ASCII
	}

	sb.WriteString(titleStyle.Render(title))

	if m.ctrl.Loading() || m.ctrl.Submitting() {
		sb.WriteString("  " + m.spin.View())
	}

	sb.WriteString("\n\n")

	for i, field := range schema.Fields {
		label := field.Label
		if field.Required {
			label += " *"
		}

		if i == m.focus {
			label = titleStyle.Render(label)
		}

		sb.WriteString(label + "\n")

		options := m.refOptions[field.Name]
		if field.Kind == model.FieldRef && len(options) > 0 {
			sb.WriteString(m.renderPicker(field.Name, options, i == m.focus) + "\n")
		} else {
			sb.WriteString(m.inputs[i].View() + "\n")
		}

		if message := m.ctrl.FieldError(field.Name); message != "" {
			sb.WriteString(fieldErrorStyle.Render(message) + "\n")
		}

		sb.WriteString("\n")
	}

	sb.WriteString(subtleStyle.Render("enter: next/submit · ctrl+s: submit · esc: cancel"))

	if m.toast != nil {
		sb.WriteString("\n\n" + m.toast.text)
	}

	return docStyle.Render(sb.String())
}

func (m *FormModel[E]) renderPicker(name string, options []Option, focused bool) string {
	if m.ctrl.Field(name) == "" {
		if focused {
			return subtleStyle.Render("◀ (none selected) ▶")
		}

		return subtleStyle.Render("(none selected)")
	}

	idx := m.refIndex[name]
	if idx >= len(options) {
		idx = 0
	}

	label := options[idx].Label

	if focused {
		return fmt.Sprintf("%s %s %s", subtleStyle.Render("◀"), selectedStyle.Render(label), subtleStyle.Render("▶"))
	}

	return label
}
