// Package browse is the interactive terminal front end: a bubbletea program
// that drives the navigation shell and the active view.
package browse

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	btable "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cdtdelta/insiderwatch/internal/model"
	"github.com/cdtdelta/insiderwatch/internal/nav"
	"github.com/cdtdelta/insiderwatch/internal/table"
	"github.com/cdtdelta/insiderwatch/internal/termui"
)

// chrome is the number of lines around the table: tabs, heading, search,
// cards, showing line and help.
const chrome = 12

// Model is the bubbletea model of the browser.
type Model struct {
	shell     *nav.Shell
	grid      btable.Model
	search    textinput.Model
	searching bool
	colCursor int
	styles    termui.Styles
	width     int
	height    int
	err       error
	quitting  bool
}

// NewModel returns a browser over shell, opening start when no view is
// active yet.
func NewModel(shell *nav.Shell, start model.DomainID) (Model, error) {
	if shell.Active() == nil {
		if err := shell.Select(start); err != nil {
			return Model{}, err
		}
	}

	ti := textinput.New()
	ti.Placeholder = "search"
	ti.Prompt = "/ "
	ti.CharLimit = 128

	grid := btable.New(btable.WithFocused(true), btable.WithHeight(15))
	s := btable.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(termui.ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(termui.ColorPrimary)
	s.Selected = s.Selected.
		Foreground(termui.ColorPrimary).
		Background(termui.ColorMuted).
		Bold(false)
	grid.SetStyles(s)

	m := Model{
		shell:  shell,
		grid:   grid,
		search: ti,
		styles: termui.DefaultStyles(),
		width:  120,
		height: 30,
	}
	m.refresh()
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.grid.SetWidth(msg.Width)
		m.grid.SetHeight(max(msg.Height-chrome, 3))
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Apply), key.Matches(msg, keys.Cancel):
		m.searching = false
		m.search.Blur()
		m.grid.Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.shell.View().SetQuery(m.search.Value())
	m.refresh()
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.shell.View()

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Search):
		m.searching = true
		m.grid.Blur()
		return m, m.search.Focus()

	case key.Matches(msg, keys.Filter):
		view.NextFilter()

	case key.Matches(msg, keys.Left):
		if m.colCursor > 0 {
			m.colCursor--
		}

	case key.Matches(msg, keys.Right):
		if m.colCursor < len(view.Schema().Columns)-1 {
			m.colCursor++
		}

	case key.Matches(msg, keys.Sort):
		view.ToggleSort(view.Schema().Columns[m.colCursor].Key)

	case key.Matches(msg, keys.NextView):
		m.switchTo(func() error { return m.shell.Step(1) })

	case key.Matches(msg, keys.PrevView):
		m.switchTo(func() error { return m.shell.Step(-1) })

	case key.Matches(msg, keys.JumpView):
		i := int(msg.String()[0] - '0')
		if i < len(model.DomainIDs) {
			id := model.DomainIDs[i]
			m.switchTo(func() error { return m.shell.Select(id) })
		}

	case key.Matches(msg, keys.Reset):
		view.Reset()
		m.search.SetValue("")

	default:
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)
		return m, cmd
	}

	m.refresh()
	return m, nil
}

// switchTo changes the active view. Query, filter, sort and column cursor
// start over in the new view.
func (m *Model) switchTo(step func() error) {
	if err := step(); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.colCursor = 0
	m.search.SetValue("")
	m.grid.SetCursor(0)
}

// refresh re-renders the active view into the table widget.
func (m *Model) refresh() {
	view := m.shell.View()
	vm := view.Render()

	cols := make([]btable.Column, len(vm.Columns))
	for i, c := range vm.Columns {
		title := c.Label
		if vm.Sort.Column == c.Key {
			if vm.Sort.Direction == table.Descending {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		if i == m.colCursor {
			title = "›" + title
		}
		cols[i] = btable.Column{Title: title, Width: lipgloss.Width(title)}
	}

	rows := make([]btable.Row, len(vm.Cells))
	for i, cells := range vm.Cells {
		row := make(btable.Row, len(cells))
		for j, c := range cells {
			row[j] = termui.CellText(c)
			cols[j].Width = max(cols[j].Width, lipgloss.Width(row[j]))
		}
		rows[i] = row
	}

	// Clear rows first so no old row is rendered against the new columns.
	m.grid.SetRows(nil)
	m.grid.SetColumns(cols)
	m.grid.SetRows(rows)
	if m.grid.Cursor() >= len(rows) {
		m.grid.SetCursor(max(len(rows)-1, 0))
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	d := m.shell.Active()
	view := m.shell.View()
	vm := view.Render()

	var sb strings.Builder
	sb.WriteString(m.tabs())
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Title.Render(d.Heading))
	sb.WriteString("  ")
	sb.WriteString(m.styles.Muted.Render(d.Description))
	sb.WriteString("\n")
	if m.searching || m.search.Value() != "" {
		sb.WriteString(m.search.View())
		sb.WriteString("\n")
	}
	if cards := termui.RenderSummary(view.Summary(), m.styles); cards != "" {
		sb.WriteString(cards)
		sb.WriteString("\n")
	}
	if len(vm.Cells) == 0 {
		sb.WriteString(m.styles.Muted.Render("No " + d.Noun + " match the current search and filter."))
		sb.WriteString("\n")
	} else {
		sb.WriteString(m.grid.View())
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Muted.Render(termui.ShowingLine(vm, d.Schema)))
	sb.WriteString("\n")
	if m.err != nil {
		sb.WriteString(lipgloss.NewStyle().Foreground(termui.ColorError).Render("Error: " + m.err.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString(m.help())
	return sb.String()
}

func (m Model) tabs() string {
	active := m.shell.Active()
	parts := make([]string, 0, len(model.DomainIDs))
	for i, id := range model.DomainIDs {
		d, err := m.shell.Catalog().Get(id)
		if err != nil {
			continue
		}
		label := fmt.Sprintf("%d %s", i, d.Title)
		if active != nil && active.ID == id {
			parts = append(parts, m.styles.Title.Render("["+label+"]"))
		} else {
			parts = append(parts, m.styles.Muted.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) help() string {
	parts := make([]string, 0, len(keys.help()))
	for _, b := range keys.help() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.styles.Muted.Render(strings.Join(parts, " • "))
}

// Searching reports whether the search box has focus.
func (m Model) Searching() bool {
	return m.searching
}

// ColumnCursor returns the index of the column the sort key acts on.
func (m Model) ColumnCursor() int {
	return m.colCursor
}

// Shell returns the navigation shell the browser drives.
func (m Model) Shell() *nav.Shell {
	return m.shell
}

// Run starts the browser on the given terminal streams.
func Run(shell *nav.Shell, start model.DomainID, input io.Reader, output io.Writer) error {
	m, err := NewModel(shell, start)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		m,
		tea.WithInput(input),
		tea.WithOutput(output),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
