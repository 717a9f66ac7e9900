// Package tui is the interactive checklist: one bubbles list per section,
// toggles go straight to the controller.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/farah/internal/checklist"
	"github.com/idilsaglam/farah/internal/model"
	"github.com/idilsaglam/farah/internal/ui"
)

// Options controls the cost line.
type Options struct {
	Locale   string
	Currency string
}

type keyMap struct {
	Toggle key.Binding
	Next   key.Binding
	Prev   key.Binding
}

var keys = keyMap{
	Toggle: key.NewBinding(key.WithKeys(" ", "enter", "x"), key.WithHelp("space", "toggle")),
	Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next section")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev section")),
}

// listItem adapts model.Item to bubbles/list.Item.
type listItem struct {
	index int
	item  model.Item
}

func (i listItem) FilterValue() string { return i.item.Text }

// itemDelegate renders one line per item, reading done state live from
// the controller.
type itemDelegate struct {
	ctl     *checklist.Checklist
	section string
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	box := t.Muted.Render(t.BoxUnchecked)
	text := it.item.Text
	if d.ctl.IsDone(d.section, it.index) {
		box = t.Success.Render(t.BoxChecked)
		text = t.DoneText.Render(text)
	}
	line := fmt.Sprintf("%s %s %s", box, it.item.Icon, text)
	if it.item.Price.Present() {
		line += "  " + t.Cost.Render(it.item.Price.Raw)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

// Model is the bubbletea model for the checklist.
type Model struct {
	ctl      *checklist.Checklist
	opts     Options
	sections []model.Section
	lists    []list.Model
	active   int
	width    int
	height   int
}

// New builds the model over every section of the controller's catalog.
func New(ctl *checklist.Checklist, opts Options) Model {
	m := Model{ctl: ctl, opts: opts, sections: ctl.Catalog().Sections}
	t := ui.Current()
	for _, s := range m.sections {
		items := make([]list.Item, 0, len(s.Items))
		for i, it := range s.Items {
			items = append(items, listItem{index: i, item: it})
		}
		l := list.New(items, itemDelegate{ctl: ctl, section: s.Name}, 0, 0)
		l.SetShowTitle(false)
		l.SetShowHelp(true)
		l.SetShowPagination(true)
		l.SetShowStatusBar(false)
		l.SetFilteringEnabled(false)
		l.Styles.HelpStyle = t.Muted
		l.Styles.PaginationStyle = t.Muted
		l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{keys.Toggle, keys.Next} }
		l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{keys.Toggle, keys.Next, keys.Prev} }
		m.lists = append(m.lists, l)
	}
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctl *checklist.Checklist, opts Options) error {
	_, err := tea.NewProgram(New(ctl, opts), tea.WithAltScreen()).Run()
	return err
}

// Active returns the name of the selected section.
func (m Model) Active() string {
	if len(m.sections) == 0 {
		return ""
	}
	return m.sections[m.active].Name
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.lists) == 0 {
		if k, ok := msg.(tea.KeyMsg); ok && (k.String() == "q" || k.String() == "ctrl+c") {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		switch {
		case msg.String() == "q" || msg.String() == "esc" || msg.String() == "ctrl+c":
			return m, tea.Quit
		case key.Matches(msg, keys.Toggle):
			i := m.lists[m.active].Index()
			if i >= 0 && i < len(m.sections[m.active].Items) {
				m.ctl.Toggle(m.sections[m.active].Name, i)
			}
			return m, nil
		case key.Matches(msg, keys.Next):
			m.active = (m.active + 1) % len(m.lists)
			return m, nil
		case key.Matches(msg, keys.Prev):
			m.active = (m.active - 1 + len(m.lists)) % len(m.lists)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.lists[m.active], cmd = m.lists[m.active].Update(msg)
	return m, cmd
}

// headerLines is the fixed part above the list of section i.
func (m Model) headerLines(active int) []string {
	t := ui.Current()
	s := m.sections[active]

	var tabs []string
	for i, sec := range m.sections {
		label := fmt.Sprintf(" %s %d%% ", sec.Title, m.ctl.Progress(sec.Name))
		if i == active {
			tabs = append(tabs, t.Selected.Render(label))
		} else {
			tabs = append(tabs, t.Muted.Render(label))
		}
	}

	lines := []string{
		t.Title.Render(m.ctl.Catalog().Title),
		strings.Join(tabs, " "),
		"",
		t.Accent.Render(s.Title) + "  " + t.Subtitle.Render(s.Subtitle),
		fmt.Sprintf("%s  %s %d/%d",
			ui.ProgressBar(m.ctl.Progress(s.Name), 28),
			t.Success.Render(t.SymDone), m.ctl.Done(s.Name), len(s.Items)),
	}
	if s.Budgeted {
		cost := ui.FormatCost(checklist.TotalCost(s.Items), m.opts.Locale, m.opts.Currency)
		lines = append(lines, t.Cost.Render("💰 "+cost))
	}
	return append(lines, "")
}

func (m *Model) resize() {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	for i := range m.lists {
		h := m.height - len(m.headerLines(i)) - 2
		if h < 3 {
			h = 3
		}
		m.lists[i].SetSize(w, h)
	}
}

func (m Model) View() string {
	if len(m.lists) == 0 {
		return ui.PanelString([]string{"no sections"})
	}
	content := strings.Join(m.headerLines(m.active), "\n") + "\n" + m.lists[m.active].View()
	panel := ui.PanelString([]string{content})
	if m.width > 0 {
		panel = lipgloss.NewStyle().MaxWidth(m.width).Render(panel)
	}
	return panel
}
