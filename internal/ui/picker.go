// Picker implements the optional interactive violation picker for
// `check --fix --interactive` (SPEC_FULL.md §11), built on
// charmbracelet/bubbles/list the same way progress.go builds on
// bubbles/spinner and bubbles/progress: a thin Bubble Tea model wrapping
// one bubbles component.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bulloak-go/bulloak/internal/match"
)

// violationItem adapts a match.Violation to list.Item, tracking whether
// the user has toggled it on for fixing.
type violationItem struct {
	violation match.Violation
	selected  bool
}

func (i violationItem) FilterValue() string { return i.violation.Name }

type pickerDelegate struct{}

func (pickerDelegate) Height() int                        { return 1 }
func (pickerDelegate) Spacing() int                       { return 0 }
func (pickerDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (pickerDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	item, ok := li.(violationItem)
	if !ok {
		return
	}
	box := "[ ]"
	if item.selected {
		box = "[x]"
	}
	line := fmt.Sprintf("%s %s", box, item.violation.Message)
	style := lipgloss.NewStyle()
	if index == m.Index() {
		style = style.Bold(true).Foreground(lipgloss.Color("6"))
		line = "> " + line
	} else {
		line = "  " + line
	}
	fmt.Fprint(w, style.Render(line))
}

// PickerModel lets a user toggle which violations to apply before
// fix.Apply runs, rather than fixing every fixable violation at once.
type PickerModel struct {
	list     list.Model
	quitting bool
	applied  bool
}

// NewPickerModel returns a Bubble Tea model listing every violation in
// violations, with the fixable ones pre-selected. Non-fixable violations are
// shown but cannot be toggled on, matching fix.Apply's own behavior of
// skipping them.
func NewPickerModel(title string, violations []match.Violation) *PickerModel {
	items := make([]list.Item, 0, len(violations))
	for _, v := range violations {
		items = append(items, violationItem{violation: v, selected: v.Fixable})
	}
	l := list.New(items, pickerDelegate{}, 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply selected")),
		}
	}
	return &PickerModel{list: l}
}

func (m *PickerModel) Init() tea.Cmd { return nil }

func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ":
			if it, ok := m.list.SelectedItem().(violationItem); ok && it.violation.Fixable {
				it.selected = !it.selected
				m.list.SetItem(m.list.Index(), it)
			}
			return m, nil
		case "enter":
			m.applied = true
			m.quitting = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *PickerModel) View() string {
	if m.quitting && !m.applied {
		return ""
	}
	return m.list.View()
}

// Selected reports which of the original violations the user left
// checked when the model quit via enter. Applied is false if the user
// cancelled (q/esc/ctrl+c), in which case Selected is always empty.
func (m *PickerModel) Selected() (selected []match.Violation, applied bool) {
	if !m.applied {
		return nil, false
	}
	for _, li := range m.list.Items() {
		if it, ok := li.(violationItem); ok && it.selected {
			selected = append(selected, it.violation)
		}
	}
	return selected, true
}
