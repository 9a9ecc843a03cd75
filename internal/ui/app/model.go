package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	activitydto "timetrack/internal/modules/activity/dto"
	exporterdto "timetrack/internal/modules/exporter/dto"
	sessiondto "timetrack/internal/modules/session/dto"
	apperrors "timetrack/internal/platform/errors"
	"timetrack/internal/ui/components"
	"timetrack/internal/ui/theme"
	statsview "timetrack/internal/ui/views/stats"
	trackerview "timetrack/internal/ui/views/tracker"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type sessionPort interface {
	Start(ctx context.Context, category, note string) (sessiondto.StartOutput, error)
	Stop(ctx context.Context) (sessiondto.StopOutput, error)
	Status(ctx context.Context) (sessiondto.StatusOutput, error)
}

type activityPort interface {
	List(ctx context.Context) ([]activitydto.RecordOutput, error)
	Rotate(ctx context.Context, weekEndOnly bool) (activitydto.RotateOutput, error)
	Reindex(ctx context.Context) error
}

type exporterPort interface {
	Export(ctx context.Context, exporterName, formatID, reportKind string, date time.Time, cwd string) (exporterdto.ExportOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTracker tabID = iota
	tabWeekly
	tabMonthly
	tabCount
)

var tabLabels = [tabCount]string{
	"Tracker", "Weekly", "Monthly",
}

// ─── async messages ───────────────────────────────────────────────────────────

type statusLoadedMsg struct {
	status sessiondto.StatusOutput
	err    error
}

type sessionStartedMsg struct {
	out sessiondto.StartOutput
	err error
}

type sessionStoppedMsg struct {
	out sessiondto.StopOutput
	err error
}

type rotateDoneMsg struct {
	out activitydto.RotateOutput
	err error
}

type reindexDoneMsg struct{ err error }

type exportDoneMsg struct {
	out exporterdto.ExportOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Start   key.Binding
	Stop    key.Binding
	Refresh key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start session")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop session")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Start, k.Stop},
		{k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, session state,
// the global help overlay, and the command palette. All business logic is
// delegated to port interfaces; all rendering is delegated to sub-views.
type Model struct {
	dataDir string

	session  sessionPort
	activity activityPort
	exporter exporterPort

	trackerView trackerview.Model
	weeklyView  statsview.Model
	monthlyView statsview.Model

	activeTab     tabID
	keys          keyMap
	help          help.Model
	showHelp      bool
	palette       components.Palette
	activeSession sessiondto.StatusOutput
	hasActive     bool
	status        string
	width         int
	height        int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	dataDir string,
	session sessionPort,
	activity activityPort,
	report statsview.ReportPort,
	exporter exporterPort,
	categories []trackerview.Category,
) Model {
	return Model{
		dataDir:     dataDir,
		session:     session,
		activity:    activity,
		exporter:    exporter,
		trackerView: trackerview.New(activity, categories),
		weeklyView:  statsview.New(report, statsview.KindWeek),
		monthlyView: statsview.New(report, statsview.KindMonth),
		activeTab:   tabTracker,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.trackerView.Init(),
		m.weeklyView.Init(),
		m.monthlyView.Init(),
		m.loadStatusCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case statusLoadedMsg:
		if msg.err != nil {
			if msg.err != apperrors.ErrNoActiveSession {
				m.status = "session check: " + msg.err.Error()
			}
			m.hasActive = false
		} else {
			m.hasActive = true
			m.activeSession = msg.status
			m.status = "session recovered: " + msg.status.Category
		}

	case sessionStartedMsg:
		if msg.err != nil {
			m.status = "session start failed: " + msg.err.Error()
		} else {
			m.status = "session started: " + msg.out.Category
			cmds = append(cmds, m.loadStatusCmd())
		}

	case sessionStoppedMsg:
		m.hasActive = false
		m.activeSession = sessiondto.StatusOutput{}
		if msg.err != nil {
			m.status = "session stop failed: " + msg.err.Error()
		} else if !msg.out.Persisted {
			m.status = fmt.Sprintf("session discarded (%s is below the minimum)", msg.out.Duration.Truncate(time.Second))
		} else {
			m.status = fmt.Sprintf("session stored: %s %s", msg.out.Category, msg.out.Duration.Truncate(time.Second))
			cmds = append(cmds, m.refreshAll()...)
		}

	case rotateDoneMsg:
		if msg.err != nil {
			m.status = "rotate failed: " + msg.err.Error()
		} else if !msg.out.Cleared {
			m.status = "rotate skipped: not the end of the week"
		} else {
			m.status = fmt.Sprintf("rotated: %d records cleared", msg.out.Removed)
			cmds = append(cmds, m.refreshAll()...)
		}

	case reindexDoneMsg:
		if msg.err != nil {
			m.status = "reindex failed: " + msg.err.Error()
		} else {
			m.status = "index rebuilt"
		}

	case exportDoneMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("export done: %s/%s (exit %d)", msg.out.ExporterName, msg.out.FormatID, msg.out.ExitCode)
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the tracker list when its search filter is active.
		if m.activeTab == tabTracker && m.trackerView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "s":
			if m.activeTab == tabTracker {
				if category, ok := m.trackerView.SelectedCategory(); ok {
					cmds = append(cmds, m.startSessionCmd(category, ""))
				}
			}
		case "x":
			cmds = append(cmds, m.stopSessionCmd())
		case "r":
			cmds = append(cmds, m.refreshAll()...)
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabTracker:
		m.trackerView, tabCmd = m.trackerView.Update(msg)
	case tabWeekly:
		m.weeklyView, tabCmd = m.weeklyView.Update(msg)
	case tabMonthly:
		m.monthlyView, tabCmd = m.monthlyView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTracker:
		return m.trackerView.View()
	case tabWeekly:
		return m.weeklyView.View()
	case tabMonthly:
		return m.monthlyView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "timetrack  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.hasActive {
		left = theme.Hot.Render("● "+m.activeSession.Category) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "session:start":
		category := ""
		if len(parts) >= 2 {
			category = parts[1]
		} else if selected, ok := m.trackerView.SelectedCategory(); ok {
			category = selected
		}
		if category == "" {
			m.status = "usage: session:start <category> [note]"
			return m, nil
		}
		note := ""
		if len(parts) >= 3 {
			note = strings.TrimSpace(strings.TrimPrefix(input, parts[0]+" "+parts[1]))
		}
		return m, m.startSessionCmd(category, note)

	case "session:stop":
		return m, m.stopSessionCmd()

	case "session:status":
		return m, m.loadStatusCmd()

	case "rotate":
		return m, m.rotateCmd(false)

	case "rotate:week-end":
		return m, m.rotateCmd(true)

	case "reindex":
		return m, m.reindexCmd()

	case "export":
		if len(parts) < 4 {
			m.status = "usage: export <exporter> <format> <week|month>"
			return m, nil
		}
		return m, m.exportCmd(parts[1], parts[2], parts[3])

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.trackerView, _ = m.trackerView.Update(sz)
	m.weeklyView, _ = m.weeklyView.Update(sz)
	m.monthlyView, _ = m.monthlyView.Update(sz)
}

func (m Model) refreshAll() []tea.Cmd {
	return []tea.Cmd{
		m.trackerView.Reload(),
		m.weeklyView.Reload(),
		m.monthlyView.Reload(),
	}
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadStatusCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.session.Status(context.Background())
		return statusLoadedMsg{status: status, err: err}
	}
}

func (m Model) startSessionCmd(category, note string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Start(context.Background(), category, note)
		return sessionStartedMsg{out: out, err: err}
	}
}

func (m Model) stopSessionCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Stop(context.Background())
		return sessionStoppedMsg{out: out, err: err}
	}
}

func (m Model) rotateCmd(weekEndOnly bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.activity.Rotate(context.Background(), weekEndOnly)
		return rotateDoneMsg{out: out, err: err}
	}
}

func (m Model) reindexCmd() tea.Cmd {
	return func() tea.Msg {
		return reindexDoneMsg{err: m.activity.Reindex(context.Background())}
	}
}

func (m Model) exportCmd(exporterName, formatID, reportKind string) tea.Cmd {
	return func() tea.Msg {
		if m.exporter == nil {
			return exportDoneMsg{err: fmt.Errorf("exporter adapter not configured")}
		}
		out, err := m.exporter.Export(context.Background(), exporterName, formatID, reportKind, time.Time{}, m.dataDir)
		return exportDoneMsg{out: out, err: err}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
