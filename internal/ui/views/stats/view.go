package stats

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reportdto "timetrack/internal/modules/report/dto"
	"timetrack/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ReportPort interface {
	Week(ctx context.Context, input reportdto.ReportInput) (reportdto.ReportOutput, error)
	Month(ctx context.Context, input reportdto.ReportInput) (reportdto.ReportOutput, error)
}

// Kind selects which aggregation this view renders.
type Kind int

const (
	KindWeek Kind = iota
	KindMonth
)

// ─── messages ────────────────────────────────────────────────────────────────

type ReportLoadedMsg struct {
	Kind   Kind
	Report reportdto.ReportOutput
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    ReportPort
	kind    Kind
	report  reportdto.ReportOutput
	chart   viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port ReportPort, kind Kind) Model {
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
		kind:    kind,
		chart:   vp,
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
		m.chart.Width = m.width - 4
		m.chart.Height = m.height - 4

	case ReportLoadedMsg:
		if msg.Kind != m.kind {
			break
		}
		m.loading = false
		if msg.Err != nil {
			m.chart.SetContent(theme.Muted.Render("load report: " + msg.Err.Error()))
			return m, nil
		}
		m.report = msg.Report
		m.chart.SetContent(m.renderChart())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var vCmd tea.Cmd
		m.chart, vCmd = m.chart.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Building report…")
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(m.width - 2).
		Height(m.height - 2).
		Render(m.chart.View())
}

// Reload rebuilds the report from the store.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		var report reportdto.ReportOutput
		var err error
		switch m.kind {
		case KindWeek:
			report, err = m.port.Week(context.Background(), reportdto.ReportInput{})
		case KindMonth:
			report, err = m.port.Month(context.Background(), reportdto.ReportInput{})
		}
		return ReportLoadedMsg{Kind: m.kind, Report: report, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderChart() string {
	rep := m.report
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(rep.Title) + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%s — %s",
		rep.From.Format("02.01.2006"), rep.To.Format("02.01.2006"))) + "\n\n")

	if rep.Total == 0 {
		sb.WriteString(theme.Muted.Render("Nothing recorded in this window."))
		return sb.String()
	}

	if rep.DayAxis != "" {
		sb.WriteString(theme.Muted.Render(rep.DayAxis) + "\n")
	}

	categories := make([]string, 0, len(rep.Series))
	for category := range rep.Series {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	barWidth := m.chart.Width - 28
	if barWidth < 10 {
		barWidth = 10
	}
	max := 0.0
	for _, row := range rep.Series {
		for _, h := range row {
			if h > max {
				max = h
			}
		}
	}
	for i, label := range rep.Labels {
		name := label
		printed := false
		for _, category := range categories {
			row := rep.Series[category]
			if i >= len(row) || row[i] == 0 {
				continue
			}
			width := 0
			if max > 0 {
				width = int(row[i] / max * float64(barWidth))
			}
			sb.WriteString(fmt.Sprintf("%4s %s %s %s\n",
				theme.Muted.Render(name),
				theme.Hot.Render(fmt.Sprintf("%-10s", category)),
				theme.Bar.Render(strings.Repeat("█", width)),
				fmt.Sprintf("%.2f", row[i]),
			))
			name = ""
			printed = true
		}
		if !printed {
			sb.WriteString(fmt.Sprintf("%4s\n", theme.Muted.Render(label)))
		}
	}

	sb.WriteString("\n" + theme.Muted.Render(rep.Axis) + fmt.Sprintf(": %.2f\n", rep.Total))
	for _, category := range categories {
		sb.WriteString(fmt.Sprintf("  %s %.2f %.1f%%\n",
			theme.Hot.Render(category), rep.Totals[category], rep.Shares[category]))
	}
	return sb.String()
}
