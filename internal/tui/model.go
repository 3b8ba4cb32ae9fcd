// Package tui is an interactive browser for assembled workouts.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/otfkit/internal/models"
)

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Detail key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Detail, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Detail, k.Help, k.Quit}}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "details"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type Model struct {
	workouts   []models.Workout
	table      table.Model
	keys       KeyMap
	help       help.Model
	showDetail bool
	width      int
	height     int
}

var columnWidths = []int{16, 18, 16, 8, 6, 6, 6, 12}

func New(workouts []models.Workout) Model {
	cols := make([]table.Column, len(Headers))
	for i, h := range Headers {
		cols[i] = table.Column{Title: h, Width: columnWidths[i]}
	}
	rows := make([]table.Row, len(workouts))
	for i, w := range workouts {
		rows[i] = Row(w)
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 15)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)

	return Model{
		workouts: workouts,
		table:    t,
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if h := msg.Height - 12; h > 3 {
			m.table.SetHeight(min(h, len(m.workouts)+1))
		}
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Detail):
			m.showDetail = !m.showDetail
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the workout under the cursor.
func (m Model) Selected() (models.Workout, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.workouts) {
		return models.Workout{}, false
	}
	return m.workouts[i], true
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Workouts (%d)", len(m.workouts))))
	b.WriteString("\n\n")

	if len(m.workouts) == 0 {
		b.WriteString(warningStyle.Render("No workouts in this window."))
	} else {
		b.WriteString(m.table.View())
		if w, ok := m.Selected(); ok && m.showDetail {
			b.WriteString("\n")
			b.WriteString(detailStyle.Render(Detail(w)))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return docStyle.Render(b.String())
}

// Detail renders the per-workout breakdown shown under the table.
func Detail(w models.Workout) string {
	zt := w.ZoneTimeMinutes
	lines := [][2]string{
		{"Workout", w.PerformanceSummaryID},
		{"Class", w.OtfClass.Name},
		{"Starts", str(w.OtfClass.StartsAt)},
		{"Ends", str(w.OtfClass.EndsAt)},
		{"Coach", str(w.Coach)},
		{"Calories", num(w.CaloriesBurned)},
		{"Splat points", num(w.SplatPoints)},
		{"Steps", num(w.StepCount)},
		{"Active secs", num(w.ActiveTimeSeconds)},
		{"Heart rate", fmt.Sprintf("max %s  peak %s  avg %s",
			num(w.HeartRate.MaxHR), num(w.HeartRate.PeakHR), num(w.HeartRate.AvgHR))},
		{"Zones (min)", fmt.Sprintf("gray %d  blue %d  green %d  orange %d  red %d",
			zt.Gray, zt.Blue, zt.Green, zt.Orange, zt.Red)},
	}
	if w.Studio != nil {
		lines = append(lines, [2]string{"Studio", w.Studio.Name})
	}
	if w.Telemetry != nil {
		lines = append(lines, [2]string{"Samples", fmt.Sprintf("%d", len(w.Telemetry.Samples))})
	}

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = labelStyle.Render(l[0]) + l[1]
	}
	return strings.Join(out, "\n")
}

// Run starts the browser and blocks until the user quits.
func Run(workouts []models.Workout) error {
	_, err := tea.NewProgram(New(workouts), tea.WithAltScreen()).Run()
	return err
}
