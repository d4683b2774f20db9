package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"renshu/internal/datekey"
	"renshu/internal/progress"
	"renshu/internal/ui"
)

type boardModel struct {
	ctx    context.Context
	store  *progress.Store
	bridge *progress.Bridge

	width  int
	height int

	date     datekey.Key
	eff      progress.EffectiveDay
	settings progress.Settings
	week     []progress.DayProgressSummary

	selected int
	adding   bool
	input    textinput.Model

	changes   <-chan struct{}
	stopWatch func()
	lastLog   string
	loading   bool
	err       error
}

type loadedMsg struct {
	eff      progress.EffectiveDay
	settings progress.Settings
	week     []progress.DayProgressSummary
	err      error
}

type mutatedMsg struct {
	note string
	err  error
}

type changedMsg struct{}

type reconciledMsg struct {
	marked int
	err    error
}

func newBoardModel(ctx context.Context, store *progress.Store, bridge *progress.Bridge) boardModel {
	in := textinput.New()
	in.Placeholder = "new task label"
	in.CharLimit = 80

	m := boardModel{
		ctx:     ctx,
		store:   store,
		bridge:  bridge,
		date:    datekey.Today(),
		input:   in,
		loading: true,
		lastLog: "Loaded.",
	}
	m.changes, m.stopWatch = store.Watch(ctx)
	return m
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.reconcileCmd(), m.loadCmd(), m.waitChangeCmd())
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		m.store.SetSelectedDate(m.date)
		eff, settings, err := m.store.Effective(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		week, err := m.store.WeekProgress(m.ctx, m.date.AddDays(-6))
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{eff: eff, settings: settings, week: week}
	}
}

func (m boardModel) reconcileCmd() tea.Cmd {
	today := datekey.Today()
	if m.date != today {
		return nil
	}
	return func() tea.Msg {
		marked, err := m.bridge.Reconcile(m.ctx, today)
		return reconciledMsg{marked: marked, err: err}
	}
}

func (m boardModel) waitChangeCmd() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		if ch == nil {
			return nil
		}
		<-ch
		return changedMsg{}
	}
}

func (m boardModel) toggleCmd(line checkLine) tea.Cmd {
	return func() tea.Msg {
		m.store.SetSelectedDate(m.date)
		var err error
		if line.builtin != "" {
			if line.done {
				_, err = m.store.UncompleteItem(m.ctx, line.builtin)
			} else {
				_, err = m.store.CompleteItem(m.ctx, line.builtin)
			}
		} else {
			_, err = m.store.ToggleCustomTask(m.ctx, line.id)
		}
		return mutatedMsg{note: "Toggled " + line.label, err: err}
	}
}

func (m boardModel) addCmd(label string) tea.Cmd {
	return func() tea.Msg {
		m.store.SetSelectedDate(m.date)
		_, err := m.store.AddCustomTask(m.ctx, progress.AddTaskInput{
			Label:     label,
			TimeOfDay: progress.DefaultTimeOfDay,
		})
		return mutatedMsg{note: "Added " + label, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.eff = msg.eff
		m.settings = msg.settings
		m.week = msg.week
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case mutatedMsg:
		if msg.err != nil {
			m.lastLog = "Update failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = msg.note
		return m, m.loadCmd()
	case reconciledMsg:
		if msg.err != nil {
			m.lastLog = "Reconcile failed: " + msg.err.Error()
			return m, nil
		}
		if msg.marked > 0 {
			m.lastLog = fmt.Sprintf("Auto-completed %d item(s) from today's activity.", msg.marked)
			return m, m.loadCmd()
		}
		return m, nil
	case changedMsg:
		// Remote change; reload and keep listening.
		return m, tea.Batch(m.loadCmd(), m.waitChangeCmd())
	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m boardModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.input.Blur()
		m.lastLog = "Add cancelled."
		return m, nil
	case "enter":
		label := strings.TrimSpace(m.input.Value())
		m.adding = false
		m.input.Blur()
		m.input.SetValue("")
		if label == "" {
			m.lastLog = "Nothing to add."
			return m, nil
		}
		return m, m.addCmd(label)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m boardModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.stopWatch()
		return m, tea.Quit
	case "r":
		m.loading = true
		m.lastLog = "Refreshing…"
		return m, m.loadCmd()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		lines := m.checkLines()
		if m.selected < len(lines)-1 {
			m.selected++
		}
		return m, nil
	case "left", "h":
		m.date = m.date.AddDays(-1)
		m.loading = true
		return m, tea.Batch(m.loadCmd(), m.reconcileCmd())
	case "right", "l":
		m.date = m.date.AddDays(1)
		m.loading = true
		return m, tea.Batch(m.loadCmd(), m.reconcileCmd())
	case "t":
		m.date = datekey.Today()
		m.loading = true
		return m, tea.Batch(m.loadCmd(), m.reconcileCmd())
	case "a":
		m.adding = true
		m.input.Focus()
		m.lastLog = "Type a label, enter to add, esc to cancel."
		return m, textinput.Blink
	case "c", " ":
		lines := m.checkLines()
		if m.selected < 0 || m.selected >= len(lines) {
			return m, nil
		}
		line := lines[m.selected]
		m.lastLog = "Toggling " + line.label + "…"
		return m, m.toggleCmd(line)
	}
	return m, nil
}

type checkLine struct {
	id      string
	builtin progress.BuiltinID // empty for custom tasks
	label   string
	done    bool
	tod     progress.TimeOfDay
	loop    bool
	subs    []progress.SubCheckItem
}

var todOrder = map[progress.TimeOfDay]int{
	progress.TimeMorning:   0,
	progress.TimeAfternoon: 1,
	progress.TimeEvening:   2,
}

func (m boardModel) checkLines() []checkLine {
	var out []checkLine
	for _, it := range m.eff.Day.Items {
		out = append(out, checkLine{
			id: string(it.ID), builtin: it.ID, label: it.Label, done: it.Done(), tod: it.TimeOfDay,
		})
	}
	for _, t := range m.eff.Day.CustomItems {
		out = append(out, checkLine{
			id: t.ID, label: t.Label, done: t.Done(), tod: t.TimeOfDay, loop: t.Recurring, subs: t.SubChecklist,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return todOrder[out[i].tod] < todOrder[out[j].tod]
	})
	return out
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 20 {
			leftW = 20
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if !m.store.Loaded() {
		return "renshu — loading…"
	}
	completed, total := m.eff.Counts()
	bar := progressBar(completed, total, 24)
	title := m.date.String()
	if m.date == datekey.Today() {
		title += " (today)"
	}
	return fmt.Sprintf("renshu | %s | %s %s | %s", title, ui.ProgressFraction(completed, total), bar, ui.Streak(m.settings.StreakCount))
}

func (m boardModel) renderSidebar() string {
	lines := []string{"Week"}
	today := datekey.Today()
	for _, d := range m.week {
		marker := " "
		if d.Date == today {
			marker = ">"
		}
		dot := "·"
		if d.HasTasks {
			dot = "●"
		}
		lines = append(lines, fmt.Sprintf("%s %s %s %d/%d %s", marker, d.Date.Weekday().String()[:3], d.Date, d.Completed, d.Total, dot))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: toggle")
	lines = append(lines, "- ←/→: prev/next day, t: today")
	lines = append(lines, "- a: add task")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	out = append(out, "Checklist")

	lines := m.checkLines()
	if len(lines) == 0 {
		out = append(out, "(empty)")
	}
	lastTod := progress.TimeOfDay("")
	row := 0
	for _, cl := range lines {
		if cl.tod != lastTod {
			out = append(out, "")
			out = append(out, ui.TimeIcon(cl.tod)+" "+string(cl.tod))
			lastTod = cl.tod
		}
		cursor := "  "
		if row == m.selected {
			cursor = "> "
		}
		mark := "[ ]"
		if cl.done {
			mark = "[x]"
		}
		loop := ""
		if cl.loop {
			loop = " ⟳"
		}
		out = append(out, fmt.Sprintf("%s%s %s%s", cursor, mark, cl.label, loop))
		for _, sub := range cl.subs {
			box := "( )"
			if sub.Checked {
				box = "(x)"
			}
			out = append(out, fmt.Sprintf("      %s %s", box, sub.Text))
		}
		row++
	}

	if m.adding {
		out = append(out, "")
		out = append(out, "Add: "+m.input.View())
	}
	if m.eff.AllDone() {
		out = append(out, "")
		out = append(out, ui.BadgeAllDone)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
