package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	activitydto "timetrack/internal/modules/activity/dto"
	"timetrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ActivityPort interface {
	List(ctx context.Context) ([]activitydto.RecordOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type RecordsLoadedMsg struct {
	Records []activitydto.RecordOutput
	Err     error
}

// ─── list item ───────────────────────────────────────────────────────────────

// Category pairs a taxonomy key with its localized display name.
type Category struct {
	Key   string
	Label string
}

type categoryItem struct {
	category Category
}

func (i categoryItem) Title() string       { return i.category.Label }
func (i categoryItem) Description() string { return i.category.Key }
func (i categoryItem) FilterValue() string { return i.category.Label }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    ActivityPort
	list    list.Model
	records []activitydto.RecordOutput
	labels  map[string]string
	log     viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port ActivityPort, categories []Category) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	items := make([]list.Item, len(categories))
	labels := make(map[string]string, len(categories))
	for i, category := range categories {
		items[i] = categoryItem{category: category}
		labels[category.Key] = category.Label
	}

	l := list.New(items, delegate, 0, 0)
	l.Title = "Categories"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		labels:  labels,
		log:     vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case RecordsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.log.SetContent(theme.Muted.Render("load records: " + msg.Err.Error()))
			return m, nil
		}
		m.records = msg.Records
		m.log.SetContent(m.renderRecords())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)

		var vCmd tea.Cmd
		m.log, vCmd = m.log.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading records…")
	}

	listW := m.width * 4 / 10
	logW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	logPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(logW - 2).
		Height(m.height - 2).
		Render(m.log.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, logPane)
}

// SelectedCategory returns the taxonomy key of the current selection.
func (m Model) SelectedCategory() (string, bool) {
	if item, ok := m.list.SelectedItem().(categoryItem); ok {
		return item.category.Key, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Reload fetches the stored records again.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		records, err := m.port.List(context.Background())
		return RecordsLoadedMsg{Records: records, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	logW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.log.Width = logW - 4
	m.log.Height = m.height - 4
}

func (m Model) renderRecords() string {
	if len(m.records) == 0 {
		return theme.Muted.Render("No records yet. Press s to start a session.")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Recorded activity") + "\n\n")
	// Newest first.
	for i := len(m.records) - 1; i >= 0; i-- {
		record := m.records[i]
		label := m.labels[record.Category]
		if label == "" {
			label = record.Category
		}
		sb.WriteString(fmt.Sprintf("%s  %s  %s",
			theme.Muted.Render(record.Start.Format("02.01 15:04")),
			theme.Hot.Render(label),
			record.Duration,
		))
		if record.Note != "" {
			sb.WriteString("  " + theme.Muted.Render(record.Note))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
